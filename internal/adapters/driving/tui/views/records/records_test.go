package records

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinphys/rdsr-cli/internal/adapters/driving/tui/keymap"
	"github.com/clinphys/rdsr-cli/internal/adapters/driving/tui/styles"
	"github.com/clinphys/rdsr-cli/internal/core/domain"
	"github.com/clinphys/rdsr-cli/internal/core/ports/driving"
)

type stubPipeline struct {
	view     domain.RecordCollection
	filters  domain.FilterState
	sortCol  string
	sortDesc bool
}

var _ driving.PipelineService = (*stubPipeline)(nil)

func (s *stubPipeline) Load(context.Context, string) (domain.LoadReport, error) {
	return domain.LoadReport{}, nil
}
func (s *stubPipeline) Collection() domain.RecordCollection { return s.view }
func (s *stubPipeline) View() domain.RecordCollection       { return s.view }
func (s *stubPipeline) FilterState() domain.FilterState     { return s.filters }
func (s *stubPipeline) Warnings() []string                  { return nil }
func (s *stubPipeline) SetStartDate(b string)               { s.filters.StartDate = b }
func (s *stubPipeline) SetEndDate(b string)                 { s.filters.EndDate = b }
func (s *stubPipeline) AddFilter(c, sub string)             { s.filters.AddSpec(c, sub) }
func (s *stubPipeline) RemoveFilter(i int)                  { s.filters.RemoveSpec(i) }
func (s *stubPipeline) ClearFilters()                       { s.filters.Clear() }
func (s *stubPipeline) SortBy(column string) (domain.RecordCollection, bool) {
	if s.sortCol == column {
		s.sortDesc = !s.sortDesc
	} else {
		s.sortCol = column
		s.sortDesc = false
	}
	return s.view, s.sortDesc
}
func (s *stubPipeline) SortState() (string, bool) { return s.sortCol, s.sortDesc }
func (s *stubPipeline) NumericColumns() []string  { return nil }
func (s *stubPipeline) Stats() ([]domain.ColumnStats, error) {
	return nil, errors.New("not implemented")
}
func (s *stubPipeline) Histogram(string, int) ([]domain.HistogramBin, error) {
	return nil, errors.New("not implemented")
}
func (s *stubPipeline) MultipleExposures() (domain.ExposureReport, error) {
	return domain.ExposureReport{}, errors.New("not implemented")
}
func (s *stubPipeline) ExposuresOverTime() ([]domain.TimeCount, error) {
	return nil, errors.New("not implemented")
}

func newStub() *stubPipeline {
	return &stubPipeline{
		view: domain.RecordCollection{
			Columns: []string{"PatientID", "KVP"},
			Rows: []domain.Record{
				{"PatientID": domain.StringCell("P001"), "KVP": domain.NumericCell(120)},
			},
		},
	}
}

func newTestView(p driving.PipelineService) *View {
	v := NewView(styles.DefaultStyles(), keymap.DefaultKeyMap(), p)
	v.SetDimensions(120, 40)
	return v
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSelectedColumnMoves(t *testing.T) {
	v := newTestView(newStub())
	assert.Equal(t, "PatientID", v.SelectedColumn())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "KVP", v.SelectedColumn())

	// Past the last column is a no-op.
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "KVP", v.SelectedColumn())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "PatientID", v.SelectedColumn())
}

func TestSortKeyTogglesDirection(t *testing.T) {
	stub := newStub()
	v := newTestView(stub)

	v, _ = v.Update(runes("s"))
	col, desc := stub.SortState()
	assert.Equal(t, "PatientID", col)
	assert.False(t, desc)

	v, _ = v.Update(runes("s"))
	_, desc = stub.SortState()
	assert.True(t, desc)
	_ = v
}

func TestFilterInputFlow(t *testing.T) {
	stub := newStub()
	v := newTestView(stub)

	v, _ = v.Update(runes("/"))
	require.True(t, v.Editing())

	for _, r := range "p00" {
		v, _ = v.Update(runes(string(r)))
	}
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, v.Editing())
	require.Len(t, stub.filters.Specs, 1)
	assert.Equal(t, "PatientID", stub.filters.Specs[0].Column)
	assert.Equal(t, "p00", stub.filters.Specs[0].Substring)
}

func TestDateInputSetsBounds(t *testing.T) {
	stub := newStub()
	v := newTestView(stub)

	v, _ = v.Update(runes("f"))
	require.True(t, v.Editing())
	for _, r := range "20240101 20240131" {
		v, _ = v.Update(runes(string(r)))
	}
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "20240101", stub.filters.StartDate)
	assert.Equal(t, "20240131", stub.filters.EndDate)
	_ = v
}

func TestEscCancelsInput(t *testing.T) {
	stub := newStub()
	v := newTestView(stub)

	v, _ = v.Update(runes("/"))
	require.True(t, v.Editing())
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, v.Editing())
	assert.Empty(t, stub.filters.Specs)
}

func TestClearFilters(t *testing.T) {
	stub := newStub()
	stub.AddFilter("PatientID", "p00")
	v := newTestView(stub)

	v, _ = v.Update(runes("c"))
	assert.Empty(t, stub.filters.Specs)
	_ = v
}
