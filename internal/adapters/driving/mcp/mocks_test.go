package mcp

import (
	"context"
	"errors"

	"github.com/clinphys/rdsr-cli/internal/core/domain"
	"github.com/clinphys/rdsr-cli/internal/core/ports/driving"
)

// mockPipeline is a canned-data implementation of the pipeline port.
type mockPipeline struct {
	collection domain.RecordCollection
	filters    domain.FilterState
	loadErr    error
	loadCalls  []string

	stats     []domain.ColumnStats
	statsErr  error
	exposures domain.ExposureReport
	expErr    error
}

var _ driving.PipelineService = (*mockPipeline)(nil)

func (m *mockPipeline) Load(_ context.Context, folder string) (domain.LoadReport, error) {
	m.loadCalls = append(m.loadCalls, folder)
	if m.loadErr != nil {
		return domain.LoadReport{}, m.loadErr
	}
	return domain.LoadReport{Folder: folder, Loaded: m.collection.Len()}, nil
}

func (m *mockPipeline) Collection() domain.RecordCollection { return m.collection }
func (m *mockPipeline) View() domain.RecordCollection       { return m.collection }
func (m *mockPipeline) FilterState() domain.FilterState     { return m.filters }
func (m *mockPipeline) Warnings() []string                  { return nil }

func (m *mockPipeline) SetStartDate(bound string) { m.filters.StartDate = bound }
func (m *mockPipeline) SetEndDate(bound string)   { m.filters.EndDate = bound }
func (m *mockPipeline) AddFilter(column, substring string) {
	m.filters.AddSpec(column, substring)
}
func (m *mockPipeline) RemoveFilter(index int) { m.filters.RemoveSpec(index) }
func (m *mockPipeline) ClearFilters()          { m.filters.Clear() }

func (m *mockPipeline) SortBy(string) (domain.RecordCollection, bool) {
	return m.collection, false
}
func (m *mockPipeline) SortState() (string, bool) { return "", false }

func (m *mockPipeline) NumericColumns() []string { return nil }

func (m *mockPipeline) Stats() ([]domain.ColumnStats, error) {
	if m.statsErr != nil {
		return nil, m.statsErr
	}
	return m.stats, nil
}

func (m *mockPipeline) Histogram(string, int) ([]domain.HistogramBin, error) {
	return nil, errors.New("not implemented")
}

func (m *mockPipeline) MultipleExposures() (domain.ExposureReport, error) {
	if m.expErr != nil {
		return domain.ExposureReport{}, m.expErr
	}
	return m.exposures, nil
}

func (m *mockPipeline) ExposuresOverTime() ([]domain.TimeCount, error) {
	return nil, errors.New("not implemented")
}
