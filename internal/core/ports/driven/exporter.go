package driven

// Exporter serialises a displayed view to a delimited text file.
// The caller supplies the exact column set and order shown, with
// values as rendered, so the written file matches the display.
type Exporter interface {
	// ExportView writes the header and rows to path. On I/O failure
	// the returned error carries the underlying cause; no partial
	// file is assumed valid.
	ExportView(path string, columns []string, rows [][]string) error
}
