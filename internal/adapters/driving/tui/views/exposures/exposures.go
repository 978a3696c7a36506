// Package exposures provides the multiple-exposure view component.
package exposures

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/clinphys/rdsr-cli/internal/adapters/driving/tui/messages"
	"github.com/clinphys/rdsr-cli/internal/adapters/driving/tui/styles"
	"github.com/clinphys/rdsr-cli/internal/core/domain"
	"github.com/clinphys/rdsr-cli/internal/core/ports/driving"
)

// View lists the (patient, day) groups that meet the multiple
// exposure threshold, scrollable one group at a time.
type View struct {
	styles   *styles.Styles
	pipeline driving.PipelineService

	report   domain.ExposureReport
	err      error
	selected int
	width    int
	height   int
}

// NewView creates a new exposures view.
func NewView(s *styles.Styles, pipeline driving.PipelineService) *View {
	return &View{
		styles:   s,
		pipeline: pipeline,
	}
}

// Init triggers the first grouping.
func (v *View) Init() tea.Cmd {
	return v.load()
}

// SetDimensions updates the layout for a new terminal size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Selected returns the index of the highlighted group.
func (v *View) Selected() int {
	return v.selected
}

func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		report, err := v.pipeline.MultipleExposures()
		return messages.ExposuresLoaded{Report: report, Err: err}
	}
}

// Update handles messages for the exposures view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.ExposuresLoaded:
		v.report = msg.Report
		v.err = msg.Err
		if v.selected >= len(v.report.Groups) {
			v.selected = 0
		}
		return v, nil

	case messages.ViewRefreshed:
		return v, v.load()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
		case "down", "j":
			if v.selected < len(v.report.Groups)-1 {
				v.selected++
			}
		}
		return v, nil
	}
	return v, nil
}

// View renders the exposure groups.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render(fmt.Sprintf(
		"Multiple exposures (≥%d same day)", domain.MultipleExposureThreshold)))
	b.WriteString("\n\n")

	switch {
	case errors.Is(v.err, domain.ErrNoData):
		b.WriteString(v.styles.Muted.Render("No records match."))
		return b.String()
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		return b.String()
	case v.report.Empty():
		b.WriteString(v.styles.Muted.Render("No multiple-exposure groups found."))
		return b.String()
	}

	for i, group := range v.report.Groups {
		line := fmt.Sprintf("%s  %s  (%d exposures)",
			group.Key.Date.Format("2006-01-02"), group.Key.PatientID, group.Count())
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	if v.selected < len(v.report.Groups) {
		b.WriteString("\n")
		b.WriteString(v.renderGroup(v.report.Groups[v.selected]))
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf(
		"%d groups, %d rows", len(v.report.Groups), v.report.TotalRows())))
	return b.String()
}

// renderGroup shows the member rows of one group, identifier and dose
// columns only to fit the terminal.
func (v *View) renderGroup(group domain.ExposureGroup) string {
	shown := []string{
		domain.ColumnIdentifier,
		"ContentTime",
		"CT Dose Length Product Total",
		"Mean CTDIvol",
		"DLP",
	}

	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render(strings.Join(shown, "  ")))
	b.WriteString("\n")
	for _, row := range group.Rows {
		cells := make([]string, len(shown))
		for i, col := range shown {
			cells[i] = row.Cell(col).String()
		}
		b.WriteString(strings.Join(cells, "  "))
		b.WriteString("\n")
	}
	return b.String()
}
