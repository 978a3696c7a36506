// Package stats provides the summary statistics view component.
package stats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/clinphys/rdsr-cli/internal/adapters/driving/tui/messages"
	"github.com/clinphys/rdsr-cli/internal/adapters/driving/tui/styles"
	"github.com/clinphys/rdsr-cli/internal/core/domain"
	"github.com/clinphys/rdsr-cli/internal/core/ports/driving"
)

// View renders the numeric column statistics of the filtered view.
type View struct {
	styles   *styles.Styles
	pipeline driving.PipelineService

	stats  []domain.ColumnStats
	err    error
	width  int
	height int
}

// NewView creates a new stats view.
func NewView(s *styles.Styles, pipeline driving.PipelineService) *View {
	return &View{
		styles:   s,
		pipeline: pipeline,
	}
}

// Init triggers the first computation.
func (v *View) Init() tea.Cmd {
	return v.load()
}

// SetDimensions updates the layout for a new terminal size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// load recomputes the statistics off the Update loop.
func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		stats, err := v.pipeline.Stats()
		return messages.StatsLoaded{Stats: stats, Err: err}
	}
}

// Update handles messages for the stats view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.StatsLoaded:
		v.stats = msg.Stats
		v.err = msg.Err
		return v, nil

	case messages.ViewRefreshed:
		return v, v.load()
	}
	return v, nil
}

// View renders the statistics table.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Summary statistics"))
	b.WriteString("\n\n")

	switch {
	case errors.Is(v.err, domain.ErrNoData):
		b.WriteString(v.styles.Muted.Render("No records match."))
		return b.String()
	case errors.Is(v.err, domain.ErrNoNumericData):
		b.WriteString(v.styles.Muted.Render("No numeric columns in the current view."))
		return b.String()
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		return b.String()
	}

	header := fmt.Sprintf("%-28s %7s %12s %12s %12s %12s %12s",
		"column", "count", "mean", "std", "median", "min", "max")
	b.WriteString(v.styles.Subtitle.Render(header))
	b.WriteString("\n")

	for _, s := range v.stats {
		std := ""
		if s.HasStd {
			std = format(s.Std)
		}
		b.WriteString(fmt.Sprintf("%-28s %7d %12s %12s %12s %12s %12s\n",
			s.Column, s.Count, format(s.Mean), std,
			format(s.Median), format(s.Min), format(s.Max)))
	}
	return b.String()
}

func format(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}
