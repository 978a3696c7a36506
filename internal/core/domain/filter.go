package domain

import (
	"strings"
	"time"
)

// FilterSpec is one (column, substring) text predicate. Matching is
// case-insensitive against the cell's rendered string.
type FilterSpec struct {
	// Column is the schema column the predicate inspects.
	Column string

	// Substring is the text to look for.
	Substring string
}

// Matches reports whether a cell value satisfies the predicate.
func (f FilterSpec) Matches(cell Cell) bool {
	return strings.Contains(
		strings.ToLower(cell.String()),
		strings.ToLower(f.Substring),
	)
}

// FilterState holds the active filters for a pipeline session: two
// optional inclusive date bounds on the designated date column plus
// an ordered list of text predicates. The state persists across
// reapplications until individually removed or cleared.
type FilterState struct {
	// StartDate is the raw lower bound as entered, empty when unset.
	StartDate string

	// EndDate is the raw upper bound as entered, empty when unset.
	EndDate string

	// Specs are the active text predicates in the order added.
	Specs []FilterSpec
}

// Active reports whether any filter is set.
func (s FilterState) Active() bool {
	return s.StartDate != "" || s.EndDate != "" || len(s.Specs) > 0
}

// AddSpec appends a text predicate.
func (s *FilterState) AddSpec(column, substring string) {
	s.Specs = append(s.Specs, FilterSpec{Column: column, Substring: substring})
}

// RemoveSpec deletes the predicate at index, preserving order.
// Out-of-range indices are ignored.
func (s *FilterState) RemoveSpec(index int) {
	if index < 0 || index >= len(s.Specs) {
		return
	}
	s.Specs = append(s.Specs[:index], s.Specs[index+1:]...)
}

// Clear removes every filter including the date bounds.
func (s *FilterState) Clear() {
	s.StartDate = ""
	s.EndDate = ""
	s.Specs = nil
}

// dateLayouts are the accepted date and date-time forms, tried in
// order. DICOM dates are compact (20060102); rendered and exported
// values may carry the dashed or timestamped forms.
var dateLayouts = []string{
	"20060102",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"20060102150405",
}

// ParseDate parses a date cell or bound. The result is truncated to
// the calendar day; time-of-day never participates in comparisons or
// grouping.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Truncate(24 * time.Hour), true
		}
	}
	return time.Time{}, false
}
