// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/clinphys/rdsr-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewRecords is the filterable, sortable record table.
	ViewRecords ViewType = iota
	// ViewStats shows summary statistics for the numeric columns.
	ViewStats
	// ViewExposures shows the multiple-exposure groups.
	ViewExposures
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewRecords:
		return "records"
	case ViewStats:
		return "stats"
	case ViewExposures:
		return "exposures"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// LoadCompleted carries the outcome of a folder scan.
type LoadCompleted struct {
	Report domain.LoadReport
	Err    error
}

// ViewRefreshed signals that filters or sorting changed and every
// view should re-read the pipeline.
type ViewRefreshed struct{}

// StatsLoaded carries the summary statistics for the stats view.
type StatsLoaded struct {
	Stats []domain.ColumnStats
	Err   error
}

// ExposuresLoaded carries the multiple-exposure report.
type ExposuresLoaded struct {
	Report domain.ExposureReport
	Err    error
}

// ExportCompleted signals a view export finished.
type ExportCompleted struct {
	Path string
	Rows int
	Err  error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
