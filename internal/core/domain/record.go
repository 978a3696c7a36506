package domain

import (
	"strconv"
	"strings"
)

// Cell is one extracted value in a record: numeric, string, or null.
// The zero Cell is null.
type Cell struct {
	// Present is false for null cells (concept absent from the report).
	Present bool

	// IsNumeric selects between Num and Str.
	IsNumeric bool

	// Num is the numeric value when IsNumeric.
	Num float64

	// Str is the string value otherwise.
	Str string
}

// NullCell returns the null cell.
func NullCell() Cell {
	return Cell{}
}

// NumericCell wraps a numeric value.
func NumericCell(v float64) Cell {
	return Cell{Present: true, IsNumeric: true, Num: v}
}

// StringCell wraps a string value.
func StringCell(s string) Cell {
	return Cell{Present: true, Str: s}
}

// String renders the cell for display and export. Null cells render
// as the empty string.
func (c Cell) String() string {
	if !c.Present {
		return ""
	}
	if c.IsNumeric {
		return strconv.FormatFloat(c.Num, 'g', -1, 64)
	}
	return c.Str
}

// Float attempts a numeric reading of the cell. String cells are
// parsed; a failed parse means the cell is missing for numeric
// purposes, never an error.
func (c Cell) Float() (float64, bool) {
	if !c.Present {
		return 0, false
	}
	if c.IsNumeric {
		return c.Num, true
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(c.Str), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Record maps concept names to extracted cells. One record is
// produced per input document. After reindexing, every name in
// ColumnOrder is present (null when nothing was extracted).
type Record map[string]Cell

// Cell returns the cell for a column, null when the column was never
// written.
func (r Record) Cell(column string) Cell {
	return r[column]
}

// Empty reports whether the record holds no present cells.
func (r Record) Empty() bool {
	for _, c := range r {
		if c.Present {
			return false
		}
	}
	return true
}

// RecordCollection is an ordered table of records with a fixed
// column schema. The collection built by a load is never mutated;
// filtering and sorting produce derived views sharing the rows.
type RecordCollection struct {
	// Columns is the schema, always the canonical dictionary order.
	Columns []string

	// Rows are the records in input document order.
	Rows []Record
}

// NewRecordCollection returns an empty collection over the canonical
// schema.
func NewRecordCollection() RecordCollection {
	return RecordCollection{Columns: ColumnOrder}
}

// Len returns the number of rows.
func (c RecordCollection) Len() int {
	return len(c.Rows)
}

// Empty reports whether the collection has no rows.
func (c RecordCollection) Empty() bool {
	return len(c.Rows) == 0
}

// RenderedRows returns the rows as display strings in column order.
// This is the exact representation the presentation layer shows and
// the export collaborator writes.
func (c RecordCollection) RenderedRows() [][]string {
	out := make([][]string, len(c.Rows))
	for i, row := range c.Rows {
		cells := make([]string, len(c.Columns))
		for j, col := range c.Columns {
			cells[j] = row.Cell(col).String()
		}
		out[i] = cells
	}
	return out
}
