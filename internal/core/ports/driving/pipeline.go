package driving

import (
	"context"

	"github.com/clinphys/rdsr-cli/internal/core/domain"
)

// PipelineService is the single driving port of the record pipeline.
// One instance owns one session: the record collection built by the
// last Load, the active filter state, and the derived filtered view.
//
// Every filter mutation recomputes the view from the full collection;
// partial or incremental filtering is never performed.
type PipelineService interface {
	// Load scans folder, builds one record per parseable document and
	// replaces the session's collection wholesale. Documents whose
	// extraction produced no values are counted but not appended.
	// Active filters are reapplied to the new collection.
	Load(ctx context.Context, folder string) (domain.LoadReport, error)

	// Collection returns the full, unfiltered collection.
	Collection() domain.RecordCollection

	// View returns the current filtered (and possibly sorted) view.
	View() domain.RecordCollection

	// FilterState returns a copy of the active filters.
	FilterState() domain.FilterState

	// Warnings returns the user-facing messages produced by the last
	// view recomputation (unparseable date bounds).
	Warnings() []string

	// SetStartDate sets or replaces the inclusive lower date bound and
	// recomputes the view. An empty value clears the bound.
	SetStartDate(bound string)

	// SetEndDate sets or replaces the inclusive upper date bound and
	// recomputes the view. An empty value clears the bound.
	SetEndDate(bound string)

	// AddFilter appends a (column, substring) predicate and recomputes
	// the view.
	AddFilter(column, substring string)

	// RemoveFilter deletes the predicate at index and recomputes the
	// view.
	RemoveFilter(index int)

	// ClearFilters removes every filter and recomputes the view.
	ClearFilters()

	// SortBy reorders the current view by column, toggling direction
	// on repeated invocation for the same column. It returns the new
	// view and the direction applied (true for descending). The
	// underlying collection is never touched.
	SortBy(column string) (domain.RecordCollection, bool)

	// SortState returns the column the view is sorted by (empty when
	// unsorted) and the current direction.
	SortState() (column string, descending bool)

	// NumericColumns lists the view columns holding at least one
	// numeric-parseable value.
	NumericColumns() []string

	// Stats computes summary statistics over the filtered view.
	Stats() ([]domain.ColumnStats, error)

	// Histogram bins one numeric column of the current view.
	Histogram(column string, bins int) ([]domain.HistogramBin, error)

	// MultipleExposures groups the filtered view by (patient, day) and
	// reports the groups meeting the threshold.
	MultipleExposures() (domain.ExposureReport, error)

	// ExposuresOverTime counts the filtered view's exposures per
	// calendar day.
	ExposuresOverTime() ([]domain.TimeCount, error)
}
