package services

import (
	"github.com/clinphys/rdsr-cli/internal/core/domain"
	"github.com/clinphys/rdsr-cli/internal/logger"
)

// BuildRecord flattens one document into a record keyed by the
// concept dictionary.
//
// The content tree is walked depth-first in pre-order. At every node
// the extractor is applied; later matches for the same concept
// overwrite earlier ones, so traversal order decides which value wins
// when a report carries repeated concepts (each irradiation event has
// its own KVP, for example). No per-event granularity is kept; one
// record per report is the model.
//
// After the tree pass, top-level attributes overlay the record: every
// dictionary concept the source read as a direct attribute is written
// as a string cell, possibly overwriting a tree value.
//
// The returned record is NOT reindexed; callers that append it to a
// collection must first check Empty (empty extractions are skipped)
// and then pass it through Reindex for the stable schema.
func BuildRecord(doc domain.Document) domain.Record {
	rec := make(domain.Record)

	walkNodes(doc.Content, rec)

	for name, value := range doc.Attributes {
		if !domain.IsTargetConcept(name) {
			continue
		}
		rec[name] = domain.StringCell(value)
	}

	return rec
}

// walkNodes visits nodes in pre-order, writing extracted values into
// rec. Children are visited regardless of whether the node itself
// matched a concept.
func walkNodes(nodes []domain.ContentNode, rec domain.Record) {
	for _, node := range nodes {
		if cell, ok := extractNode(node); ok {
			rec[node.ConceptName] = cell
		}
		walkNodes(node.Children, rec)
	}
}

// extractNode applies the dictionary and value-kind dispatch to one
// node. A node without a concept name, with an unrecognised name, or
// with no usable value yields nothing; none of these are errors.
func extractNode(node domain.ContentNode) (domain.Cell, bool) {
	if node.ConceptName == "" || !domain.IsTargetConcept(node.ConceptName) {
		return domain.Cell{}, false
	}

	switch node.Value.Kind {
	case domain.ValueNumeric:
		return domain.NumericCell(node.Value.Num), true
	case domain.ValueText, domain.ValueDateTime,
		domain.ValueIdentifier, domain.ValuePersonName:
		return domain.StringCell(node.Value.Str), true
	case domain.ValueAbsent:
		// Matched a concept but carries nothing usable: silent skip.
		logger.Debug("concept %q has no extractable value", node.ConceptName)
	}
	return domain.Cell{}, false
}

// Reindex aligns a record with the canonical column order, inserting
// null cells for concepts with no extracted value. Every reindexed
// record therefore has the identical column set, an invariant the
// filter, sort and export paths rely on.
func Reindex(rec domain.Record) domain.Record {
	out := make(domain.Record, len(domain.ColumnOrder))
	for _, col := range domain.ColumnOrder {
		if cell, ok := rec[col]; ok {
			out[col] = cell
		} else {
			out[col] = domain.NullCell()
		}
	}
	return out
}
