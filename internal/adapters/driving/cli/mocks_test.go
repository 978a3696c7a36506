package cli

import (
	"context"
	"errors"

	"github.com/clinphys/rdsr-cli/internal/core/domain"
	"github.com/clinphys/rdsr-cli/internal/core/ports/driving"
)

// stubPipeline is a canned-data pipeline for command tests.
type stubPipeline struct {
	collection domain.RecordCollection
	filters    domain.FilterState
	loadErr    error
	loadCalls  []string

	stats     []domain.ColumnStats
	statsErr  error
	exposures domain.ExposureReport
	expErr    error
	overTime  []domain.TimeCount
	histogram []domain.HistogramBin
	histErr   error
	numeric   []string
}

var _ driving.PipelineService = (*stubPipeline)(nil)

func (s *stubPipeline) Load(_ context.Context, folder string) (domain.LoadReport, error) {
	s.loadCalls = append(s.loadCalls, folder)
	if s.loadErr != nil {
		return domain.LoadReport{}, s.loadErr
	}
	return domain.LoadReport{BatchID: "batch-1", Folder: folder, Loaded: s.collection.Len()}, nil
}

func (s *stubPipeline) Collection() domain.RecordCollection { return s.collection }
func (s *stubPipeline) View() domain.RecordCollection       { return s.collection }
func (s *stubPipeline) FilterState() domain.FilterState     { return s.filters }
func (s *stubPipeline) Warnings() []string                  { return nil }

func (s *stubPipeline) SetStartDate(bound string) { s.filters.StartDate = bound }
func (s *stubPipeline) SetEndDate(bound string)   { s.filters.EndDate = bound }
func (s *stubPipeline) AddFilter(column, substring string) {
	s.filters.AddSpec(column, substring)
}
func (s *stubPipeline) RemoveFilter(index int) { s.filters.RemoveSpec(index) }
func (s *stubPipeline) ClearFilters()          { s.filters.Clear() }

func (s *stubPipeline) SortBy(string) (domain.RecordCollection, bool) {
	return s.collection, false
}
func (s *stubPipeline) SortState() (string, bool) { return "", false }

func (s *stubPipeline) NumericColumns() []string { return s.numeric }

func (s *stubPipeline) Stats() ([]domain.ColumnStats, error) {
	if s.statsErr != nil {
		return nil, s.statsErr
	}
	return s.stats, nil
}

func (s *stubPipeline) Histogram(string, int) ([]domain.HistogramBin, error) {
	if s.histErr != nil {
		return nil, s.histErr
	}
	return s.histogram, nil
}

func (s *stubPipeline) MultipleExposures() (domain.ExposureReport, error) {
	if s.expErr != nil {
		return domain.ExposureReport{}, s.expErr
	}
	return s.exposures, nil
}

func (s *stubPipeline) ExposuresOverTime() ([]domain.TimeCount, error) {
	if s.overTime == nil {
		return nil, domain.ErrNoData
	}
	return s.overTime, nil
}

// stubExporter records ExportView calls.
type stubExporter struct {
	path    string
	columns []string
	rows    [][]string
	err     error
}

func (e *stubExporter) ExportView(path string, columns []string, rows [][]string) error {
	if e.err != nil {
		return e.err
	}
	e.path = path
	e.columns = columns
	e.rows = rows
	return nil
}

func testCollection() domain.RecordCollection {
	return domain.RecordCollection{
		Columns: []string{"PatientID", "ContentDate", "KVP"},
		Rows: []domain.Record{
			{
				"PatientID":   domain.StringCell("P001"),
				"ContentDate": domain.StringCell("20240101"),
				"KVP":         domain.NumericCell(120),
			},
			{
				"PatientID":   domain.StringCell("P002"),
				"ContentDate": domain.StringCell("20240102"),
				"KVP":         domain.NumericCell(80),
			},
		},
	}
}

// setupTestServices installs stub services and returns a cleanup that
// restores the package state, including the shared filter flags.
func setupTestServices(pipeline *stubPipeline, exp *stubExporter) func() {
	origPipeline := pipelineService
	origExporter := exporter

	pipelineService = pipeline
	if exp != nil {
		exporter = exp
	}

	return func() {
		pipelineService = origPipeline
		exporter = origExporter
		flagFrom = ""
		flagTo = ""
		flagFilters = nil
		rootCmd.SetArgs(nil)
	}
}

var errStub = errors.New("stub failure")
