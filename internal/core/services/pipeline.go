package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clinphys/rdsr-cli/internal/core/domain"
	"github.com/clinphys/rdsr-cli/internal/core/ports/driven"
	"github.com/clinphys/rdsr-cli/internal/core/ports/driving"
	"github.com/clinphys/rdsr-cli/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driving.PipelineService = (*Pipeline)(nil)

// Pipeline owns one analysis session: the collection built by the
// last load, the active filter state and the derived view. The
// collection is replaced wholesale on reload and never mutated;
// filtering and sorting only ever rebuild the view.
//
// The pipeline itself is synchronous. The mutex exists because the
// TUI and the folder watcher may touch the session from different
// goroutines, not because any operation runs concurrently.
type Pipeline struct {
	mu     sync.RWMutex
	source driven.DocumentSource

	collection domain.RecordCollection
	filters    domain.FilterState
	view       domain.RecordCollection
	warnings   []string

	sortColumn string
	sortDesc   bool
}

// NewPipeline creates a pipeline session over a document source.
func NewPipeline(source driven.DocumentSource) *Pipeline {
	return &Pipeline{
		source:     source,
		collection: domain.NewRecordCollection(),
		view:       domain.NewRecordCollection(),
	}
}

// Load scans folder and rebuilds the collection. Records are appended
// in traversal order; documents that extracted nothing are counted as
// skipped and never appended. Parse failures are carried in the
// report, not returned as the error.
func (p *Pipeline) Load(ctx context.Context, folder string) (domain.LoadReport, error) {
	logger.Section("Load")
	logger.Debug("Folder: %s", folder)

	report := domain.LoadReport{
		BatchID: uuid.New().String(),
		Folder:  folder,
	}

	result, err := p.source.Scan(ctx, folder)
	if err != nil {
		return report, fmt.Errorf("scanning %s: %w", folder, err)
	}

	collection := domain.NewRecordCollection()
	for _, doc := range result.Documents {
		rec := BuildRecord(doc)
		// The source behaviour is to drop reports that extracted
		// nothing at all, keeping the table free of all-null rows.
		if rec.Empty() {
			report.SkippedEmpty++
			logger.Debug("skipping %s: no dictionary concepts extracted", doc.URI)
			continue
		}
		collection.Rows = append(collection.Rows, Reindex(rec))
	}
	report.Loaded = len(collection.Rows)
	report.Failures = result.Failures

	logger.Info("Loaded %d records (%d empty, %d failed) batch=%s",
		report.Loaded, report.SkippedEmpty, len(report.Failures), report.BatchID)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.collection = collection
	p.sortColumn = ""
	p.sortDesc = false
	p.applyAllLocked()

	return report, nil
}

// Collection returns the full, unfiltered collection.
func (p *Pipeline) Collection() domain.RecordCollection {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.collection
}

// View returns the current filtered view.
func (p *Pipeline) View() domain.RecordCollection {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.view
}

// FilterState returns a copy of the active filters.
func (p *Pipeline) FilterState() domain.FilterState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	state := p.filters
	state.Specs = append([]domain.FilterSpec(nil), p.filters.Specs...)
	return state
}

// Warnings returns the messages produced by the last recomputation.
func (p *Pipeline) Warnings() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]string(nil), p.warnings...)
}

// SetStartDate sets the inclusive lower date bound and recomputes.
func (p *Pipeline) SetStartDate(bound string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filters.StartDate = strings.TrimSpace(bound)
	p.applyAllLocked()
}

// SetEndDate sets the inclusive upper date bound and recomputes.
func (p *Pipeline) SetEndDate(bound string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filters.EndDate = strings.TrimSpace(bound)
	p.applyAllLocked()
}

// AddFilter appends a text predicate and recomputes.
func (p *Pipeline) AddFilter(column, substring string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filters.AddSpec(column, substring)
	p.applyAllLocked()
}

// RemoveFilter deletes the predicate at index and recomputes.
func (p *Pipeline) RemoveFilter(index int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filters.RemoveSpec(index)
	p.applyAllLocked()
}

// ClearFilters removes every filter and recomputes.
func (p *Pipeline) ClearFilters() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filters.Clear()
	p.applyAllLocked()
}

// applyAllLocked recomputes the view from the full collection.
//
// The date bounds are applied first, then each text predicate in
// order. Text predicates commute, so their order only matters for
// reproducibility of intermediate sets, never for the result. Rows
// whose date cell does not parse are excluded while a bound is
// active; an unparseable bound is skipped with a warning and the
// remaining filters still apply. Any previous sort order is reset:
// reapplication always starts clean. Caller must hold mu.
func (p *Pipeline) applyAllLocked() {
	p.warnings = nil
	rows := p.collection.Rows

	lower, haveLower := p.parseBound(p.filters.StartDate, "start")
	upper, haveUpper := p.parseBound(p.filters.EndDate, "end")

	if haveLower || haveUpper {
		kept := rows[:0:0]
		for _, row := range rows {
			date, ok := domain.ParseDate(row.Cell(domain.ColumnDate).String())
			if !ok {
				continue
			}
			if haveLower && date.Before(lower) {
				continue
			}
			if haveUpper && date.After(upper) {
				continue
			}
			kept = append(kept, row)
		}
		rows = kept
	}

	for _, spec := range p.filters.Specs {
		if !containsColumn(p.collection.Columns, spec.Column) {
			// Unknown column: the predicate is a no-op, not an error.
			continue
		}
		kept := rows[:0:0]
		for _, row := range rows {
			if spec.Matches(row.Cell(spec.Column)) {
				kept = append(kept, row)
			}
		}
		rows = kept
	}

	p.view = domain.RecordCollection{Columns: p.collection.Columns, Rows: rows}
	p.sortColumn = ""
	p.sortDesc = false
	logger.Debug("view recomputed: %d of %d rows", len(rows), p.collection.Len())
}

// parseBound parses one date bound, recording a user-facing warning
// when the bound itself is malformed.
func (p *Pipeline) parseBound(bound, which string) (time.Time, bool) {
	if bound == "" {
		return time.Time{}, false
	}
	parsed, ok := domain.ParseDate(bound)
	if !ok {
		msg := fmt.Sprintf("invalid %s date %q (use YYYYMMDD); bound ignored", which, bound)
		p.warnings = append(p.warnings, msg)
		logger.Info("%s", msg)
		return time.Time{}, false
	}
	return parsed, true
}

// SortBy reorders the current view by column. Repeated invocation on
// the same column toggles direction; switching column starts
// ascending again. The comparison is made per pair: when both cells
// parse as numbers they compare numerically, a lone numeric cell
// orders before any non-numeric cell, and otherwise the rendered
// strings compare case-insensitively.
func (p *Pipeline) SortBy(column string) (domain.RecordCollection, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sortColumn == column {
		p.sortDesc = !p.sortDesc
	} else {
		p.sortColumn = column
		p.sortDesc = false
	}
	desc := p.sortDesc

	rows := append([]domain.Record(nil), p.view.Rows...)
	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return cellLess(rows[j].Cell(column), rows[i].Cell(column))
		}
		return cellLess(rows[i].Cell(column), rows[j].Cell(column))
	})

	p.view = domain.RecordCollection{Columns: p.view.Columns, Rows: rows}
	logger.Debug("sorted by %q descending=%t", column, desc)
	return p.view, desc
}

// SortState returns the active sort column and direction.
func (p *Pipeline) SortState() (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.sortColumn, p.sortDesc
}

// NumericColumns lists view columns with at least one numeric cell.
func (p *Pipeline) NumericColumns() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return NumericColumns(p.view)
}

// Stats computes summary statistics over the filtered view.
func (p *Pipeline) Stats() ([]domain.ColumnStats, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return SummaryStats(p.view)
}

// Histogram bins one numeric column of the current view.
func (p *Pipeline) Histogram(column string, bins int) ([]domain.HistogramBin, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Histogram(p.view, column, bins)
}

// MultipleExposures reports same-day exposure clusters in the view.
func (p *Pipeline) MultipleExposures() (domain.ExposureReport, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return MultipleExposures(p.view)
}

// ExposuresOverTime counts the view's exposures per calendar day.
func (p *Pipeline) ExposuresOverTime() ([]domain.TimeCount, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return ExposuresOverTime(p.view)
}

// cellLess is the type-aware comparator of the sort engine.
func cellLess(a, b domain.Cell) bool {
	av, aok := a.Float()
	bv, bok := b.Float()
	switch {
	case aok && bok:
		return av < bv
	case aok:
		// Numeric cells order before non-numeric ones ascending.
		return true
	case bok:
		return false
	default:
		return strings.ToLower(a.String()) < strings.ToLower(b.String())
	}
}

func containsColumn(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}
