// Package records provides the record table view component for the TUI.
package records

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/clinphys/rdsr-cli/internal/adapters/driving/tui/keymap"
	"github.com/clinphys/rdsr-cli/internal/adapters/driving/tui/messages"
	"github.com/clinphys/rdsr-cli/internal/adapters/driving/tui/styles"
	"github.com/clinphys/rdsr-cli/internal/core/ports/driving"
)

// inputMode says what the text input currently edits.
type inputMode int

const (
	inputNone inputMode = iota
	inputFilter
	inputDates
)

// View is the record table view. Arrow keys move the row cursor and
// the column selection; sorting and filtering act on the selected
// column.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	pipeline driving.PipelineService

	table       table.Model
	input       textinput.Model
	mode        inputMode
	selectedCol int
	err         error
	width       int
	height      int
}

// NewView creates a new records view.
func NewView(s *styles.Styles, km *keymap.KeyMap, pipeline driving.PipelineService) *View {
	ti := textinput.New()
	ti.CharLimit = 128

	t := table.New(table.WithFocused(true))
	t.SetStyles(tableStyles(s))

	return &View{
		styles:   s,
		keymap:   km,
		pipeline: pipeline,
		table:    t,
		input:    ti,
	}
}

func tableStyles(s *styles.Styles) table.Styles {
	ts := table.DefaultStyles()
	ts.Header = ts.Header.Bold(true).Foreground(s.Theme().Primary)
	ts.Selected = ts.Selected.Foreground(s.Theme().Foreground).Background(s.Theme().Border)
	return ts
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetDimensions updates the layout for a new terminal size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	if height > 6 {
		v.table.SetHeight(height - 6)
	}
	v.Refresh()
}

// Refresh re-reads the pipeline's view into the table, keeping the
// selected column marker and sort arrows current.
func (v *View) Refresh() {
	view := v.pipeline.View()
	if v.selectedCol >= len(view.Columns) {
		v.selectedCol = 0
	}

	sortCol, sortDesc := v.pipeline.SortState()

	columns := make([]table.Column, len(view.Columns))
	colWidth := 18
	if v.width > 0 && len(view.Columns) > 0 {
		if w := v.width/len(view.Columns) - 2; w > colWidth {
			colWidth = w
		}
	}
	for i, name := range view.Columns {
		title := name
		if name == sortCol {
			if sortDesc {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		if i == v.selectedCol {
			title = "[" + title + "]"
		}
		columns[i] = table.Column{Title: title, Width: colWidth}
	}

	rendered := view.RenderedRows()
	rows := make([]table.Row, len(rendered))
	for i, r := range rendered {
		rows[i] = table.Row(r)
	}

	// Avoid a stale cursor past the new row count.
	v.table.SetRows(nil)
	v.table.SetColumns(columns)
	v.table.SetRows(rows)
}

// SelectedColumn returns the name of the selected column, empty when
// the view has no columns.
func (v *View) SelectedColumn() string {
	columns := v.pipeline.View().Columns
	if v.selectedCol >= len(columns) {
		return ""
	}
	return columns[v.selectedCol]
}

// Err returns the last error shown by the view.
func (v *View) Err() error {
	return v.err
}

// Editing reports whether the text input is active.
func (v *View) Editing() bool {
	return v.mode != inputNone
}

// Update handles messages for the records view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if v.mode != inputNone {
			return v.handleInputKey(msg)
		}
		return v.handleBrowseKey(msg)

	case messages.ViewRefreshed:
		v.Refresh()
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

func (v *View) handleBrowseKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	km := v.keymap
	switch {
	case key.Matches(msg, km.Left):
		if v.selectedCol > 0 {
			v.selectedCol--
			v.Refresh()
		}
		return v, nil

	case key.Matches(msg, km.Right):
		if v.selectedCol < len(v.pipeline.View().Columns)-1 {
			v.selectedCol++
			v.Refresh()
		}
		return v, nil

	case key.Matches(msg, km.Sort):
		if column := v.SelectedColumn(); column != "" {
			v.pipeline.SortBy(column)
			v.Refresh()
			return v, refreshCmd()
		}
		return v, nil

	case key.Matches(msg, km.Filter):
		column := v.SelectedColumn()
		if column == "" {
			return v, nil
		}
		v.mode = inputFilter
		v.input.Placeholder = fmt.Sprintf("substring for %s", column)
		v.input.SetValue("")
		v.input.Focus()
		return v, textinput.Blink

	case key.Matches(msg, km.Dates):
		v.mode = inputDates
		state := v.pipeline.FilterState()
		v.input.Placeholder = "FROM TO (YYYYMMDD, blank clears)"
		v.input.SetValue(strings.TrimSpace(state.StartDate + " " + state.EndDate))
		v.input.Focus()
		return v, textinput.Blink

	case key.Matches(msg, km.Clear):
		v.pipeline.ClearFilters()
		v.Refresh()
		return v, refreshCmd()
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Back):
		v.closeInput()
		return v, nil

	case key.Matches(msg, v.keymap.Confirm):
		value := strings.TrimSpace(v.input.Value())
		mode := v.mode
		v.closeInput()
		v.apply(mode, value)
		v.Refresh()
		return v, refreshCmd()
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) closeInput() {
	v.mode = inputNone
	v.input.Blur()
	v.input.SetValue("")
}

// apply turns a submitted input into a pipeline mutation.
func (v *View) apply(mode inputMode, value string) {
	switch mode {
	case inputFilter:
		if column := v.SelectedColumn(); column != "" && value != "" {
			v.pipeline.AddFilter(column, value)
		}
	case inputDates:
		fields := strings.Fields(value)
		from, to := "", ""
		if len(fields) > 0 {
			from = fields[0]
		}
		if len(fields) > 1 {
			to = fields[1]
		}
		v.pipeline.SetStartDate(from)
		v.pipeline.SetEndDate(to)
	case inputNone:
	}
}

// View renders the records view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.table.View())
	b.WriteString("\n")

	if v.mode != inputNone {
		label := "filter"
		if v.mode == inputDates {
			label = "dates"
		}
		b.WriteString(v.styles.InputField.Render(label + ": " + v.input.View()))
		b.WriteString("\n")
	}

	if warnings := v.pipeline.Warnings(); len(warnings) > 0 {
		for _, w := range warnings {
			b.WriteString(v.styles.Warning.Render(w))
			b.WriteString("\n")
		}
	}
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

func refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return messages.ViewRefreshed{}
	}
}
