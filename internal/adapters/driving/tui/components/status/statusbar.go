// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/clinphys/rdsr-cli/internal/adapters/driving/tui/keymap"
	"github.com/clinphys/rdsr-cli/internal/adapters/driving/tui/styles"
)

// Bar displays the record counts, filter summary, sort state and
// keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	shown   int
	total   int
	filters int
	sortCol string
	sortDsc bool
	message string
	isError bool
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		width:  80,
	}
}

// SetCounts records how many rows the view shows out of the total.
func (b *Bar) SetCounts(shown, total int) {
	b.shown = shown
	b.total = total
}

// SetFilters records the number of active filters.
func (b *Bar) SetFilters(n int) {
	b.filters = n
}

// SetSort records the active sort column and direction.
func (b *Bar) SetSort(column string, descending bool) {
	b.sortCol = column
	b.sortDsc = descending
}

// SetMessage sets a transient message shown on the left.
func (b *Bar) SetMessage(msg string, isError bool) {
	b.message = msg
	b.isError = isError
}

// SetWidth sets the render width.
func (b *Bar) SetWidth(width int) {
	if width > 0 {
		b.width = width
	}
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (b *Bar) renderLeft() string {
	if b.message != "" {
		if b.isError {
			return b.styles.Error.Render(b.message)
		}
		return b.styles.Success.Render(b.message)
	}

	parts := []string{fmt.Sprintf("%d/%d records", b.shown, b.total)}
	if b.filters > 0 {
		parts = append(parts, fmt.Sprintf("%d filters", b.filters))
	}
	if b.sortCol != "" {
		arrow := "▲"
		if b.sortDsc {
			arrow = "▼"
		}
		parts = append(parts, fmt.Sprintf("sort %s %s", b.sortCol, arrow))
	}
	return strings.Join(parts, " | ")
}

func (b *Bar) renderRight() string {
	hints := make([]string, 0, 5)
	for _, binding := range b.keymap.ShortHelp() {
		h := binding.Help()
		hints = append(hints, fmt.Sprintf("%s %s", h.Key, h.Desc))
	}
	return b.styles.Help.Render(strings.Join(hints, "  "))
}
