// Package dicomdir implements the DocumentSource port over folders of
// DICOM Structured Report files.
//
// Each .dcm file is parsed into a domain.Document: its ContentSequence
// becomes the content tree, and every dictionary concept that exists
// as a top-level attribute is read and coerced to a string. Files that
// fail to parse are reported per document; the scan continues.
package dicomdir

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"

	"github.com/clinphys/rdsr-cli/internal/core/domain"
	"github.com/clinphys/rdsr-cli/internal/core/ports/driven"
	"github.com/clinphys/rdsr-cli/internal/logger"
)

// DefaultExtensions are the file extensions scanned when none are
// configured.
var DefaultExtensions = []string{".dcm"}

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// Source scans folder hierarchies for dose report files.
type Source struct {
	extensions []string
}

// New creates a source scanning the given file extensions.
// An empty list means DefaultExtensions.
func New(extensions []string) *Source {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	lowered := make([]string, len(extensions))
	for i, ext := range extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		lowered[i] = strings.ToLower(ext)
	}
	return &Source{extensions: lowered}
}

// Scan walks folder recursively and parses every matching file, in
// lexical traversal order for determinism. Per-file parse failures go
// into the result; only an unwalkable root fails the scan.
func (s *Source) Scan(ctx context.Context, folder string) (*driven.ScanResult, error) {
	logger.Section("Scan")
	logger.Debug("Folder: %s", folder)

	var paths []string
	err := filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if s.matches(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", folder, err)
	}

	result := &driven.ScanResult{}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := s.parseFile(path)
		if err != nil {
			logger.Warn("cannot parse %s: %v", path, err)
			result.Failures = append(result.Failures, domain.DocumentFailure{Path: path, Err: err})
			continue
		}
		result.Documents = append(result.Documents, doc)
	}

	logger.Info("scanned %d files: %d parsed, %d failed",
		len(paths), len(result.Documents), len(result.Failures))
	return result, nil
}

func (s *Source) matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range s.extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// parseFile reads one DICOM file into a domain document.
func (s *Source) parseFile(path string) (domain.Document, error) {
	ds, err := dicom.ParseFile(path, nil, dicom.SkipPixelData())
	if err != nil {
		return domain.Document{}, fmt.Errorf("reading %s: %w", path, err)
	}

	doc := domain.Document{
		URI:        path,
		Attributes: topLevelAttributes(&ds),
	}

	if el, err := ds.FindElementByTag(tagContentSequence); err == nil {
		for _, item := range sequenceItems(el) {
			doc.Content = append(doc.Content, toNode(item))
		}
	}

	return doc, nil
}

// toNode converts one content item into a domain node. The value-kind
// precedence mirrors the extraction contract: a measured value wins
// over text, text over date-time, then identifier, then person name.
// An item carrying none of the five kinds yields an absent value.
func toNode(elements []*dicom.Element) domain.ContentNode {
	node := domain.ContentNode{
		ConceptName: conceptName(elements),
		Value:       itemValue(elements),
	}

	if seq := findElement(elements, tagContentSequence); seq != nil {
		for _, child := range sequenceItems(seq) {
			node.Children = append(node.Children, toNode(child))
		}
	}
	return node
}

// conceptName resolves the item's code meaning, empty when the item
// has no concept-name annotation.
func conceptName(elements []*dicom.Element) string {
	seq := findElement(elements, tagConceptNameCodeSequence)
	if seq == nil {
		return ""
	}
	items := sequenceItems(seq)
	if len(items) == 0 {
		return ""
	}
	meaning := findElement(items[0], tagCodeMeaning)
	if meaning == nil {
		return ""
	}
	name, _ := firstString(meaning)
	return name
}

// itemValue extracts the item's typed value using the fixed kind
// precedence.
func itemValue(elements []*dicom.Element) domain.ConceptValue {
	if seq := findElement(elements, tagMeasuredValueSequence); seq != nil {
		if items := sequenceItems(seq); len(items) > 0 {
			if num := findElement(items[0], tagNumericValue); num != nil {
				if v, ok := numericValue(num); ok {
					return domain.Numeric(v)
				}
			}
		}
		// A measured value that cannot be read is a silent miss.
		return domain.Absent()
	}
	if el := findElement(elements, tagTextValue); el != nil {
		if v, ok := firstString(el); ok {
			return domain.Text(v)
		}
	}
	if el := findElement(elements, tagDateTime); el != nil {
		if v, ok := firstString(el); ok {
			return domain.DateTime(v)
		}
	}
	if el := findElement(elements, tagUID); el != nil {
		if v, ok := firstString(el); ok {
			return domain.Identifier(v)
		}
	}
	if el := findElement(elements, tagPersonName); el != nil {
		if v, ok := firstString(el); ok {
			return domain.PersonName(v)
		}
	}
	return domain.Absent()
}

// topLevelAttributes reads every dictionary concept that exists as a
// direct attribute of the dataset, coerced to a string. Concepts whose
// names are not DICOM keywords (or whose read fails) are silently
// absent, preserving the attribute/tree asymmetry.
func topLevelAttributes(ds *dicom.Dataset) map[string]string {
	attrs := make(map[string]string)
	for _, name := range domain.ColumnOrder {
		info, err := tag.FindByName(name)
		if err != nil {
			continue
		}
		el, err := ds.FindElementByTag(info.Tag)
		if err != nil {
			continue
		}
		if v, ok := renderValue(el); ok {
			attrs[name] = v
		}
	}
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}

// renderValue coerces an element's value to the display string used
// for top-level attributes. Multi-valued attributes join with the
// DICOM backslash separator.
func renderValue(el *dicom.Element) (string, bool) {
	switch v := el.Value.GetValue().(type) {
	case []string:
		if len(v) == 0 {
			return "", false
		}
		return strings.Join(v, "\\"), true
	case []int:
		parts := make([]string, len(v))
		for i, n := range v {
			parts[i] = strconv.Itoa(n)
		}
		return strings.Join(parts, "\\"), true
	case []float64:
		parts := make([]string, len(v))
		for i, f := range v {
			parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		return strings.Join(parts, "\\"), true
	default:
		return "", false
	}
}

// numericValue reads a NumericValue element. Decimal strings are the
// usual encoding; parsed numerics are accepted too.
func numericValue(el *dicom.Element) (float64, bool) {
	switch v := el.Value.GetValue().(type) {
	case []string:
		if len(v) == 0 {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v[0]), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case []float64:
		if len(v) == 0 {
			return 0, false
		}
		return v[0], true
	case []int:
		if len(v) == 0 {
			return 0, false
		}
		return float64(v[0]), true
	default:
		return 0, false
	}
}

// firstString reads the first string of an element's value.
func firstString(el *dicom.Element) (string, bool) {
	if v, ok := el.Value.GetValue().([]string); ok && len(v) > 0 {
		return v[0], true
	}
	return "", false
}

// findElement locates a tag within one sequence item's elements.
func findElement(elements []*dicom.Element, t tag.Tag) *dicom.Element {
	for _, el := range elements {
		if el.Tag == t {
			return el
		}
	}
	return nil
}

// sequenceItems unpacks a sequence element into its items' element
// slices. Anything malformed yields no items rather than an error.
func sequenceItems(el *dicom.Element) [][]*dicom.Element {
	seq, ok := el.Value.GetValue().([]*dicom.SequenceItemValue)
	if !ok {
		return nil
	}
	out := make([][]*dicom.Element, 0, len(seq))
	for _, item := range seq {
		if elements, ok := item.GetValue().([]*dicom.Element); ok {
			out = append(out, elements)
		}
	}
	return out
}
