// Package export writes the current record view to delimited files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/clinphys/rdsr-cli/internal/core/ports/driven"
	"github.com/clinphys/rdsr-cli/internal/logger"
)

var _ driven.Exporter = (*CSVExporter)(nil)

// CSVExporter writes views as CSV. A custom delimiter turns the
// output into any character-separated format.
type CSVExporter struct {
	delimiter rune
}

// NewCSV creates an exporter; delimiter zero means comma.
func NewCSV(delimiter rune) *CSVExporter {
	if delimiter == 0 {
		delimiter = ','
	}
	return &CSVExporter{delimiter: delimiter}
}

// ExportView writes a header row followed by the data rows. Missing
// cells render as empty strings upstream; this layer writes exactly
// what it is handed.
func (e *CSVExporter) ExportView(path string, columns []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = e.delimiter

	if err := w.Write(columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}

	logger.Info("exported %d rows to %s", len(rows), path)
	return nil
}

// ReadView reads a file written by ExportView back into its header
// and rows. Used by round-trip checks and by downstream tooling that
// reloads exports.
func (e *CSVExporter) ReadView(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = e.delimiter
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("reading %s: empty file", path)
	}
	return records[0], records[1:], nil
}
