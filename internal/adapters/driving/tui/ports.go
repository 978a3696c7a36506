// Package tui provides the interactive terminal interface over the
// record pipeline. It implements a driving adapter following
// hexagonal architecture principles.
package tui

import (
	"github.com/clinphys/rdsr-cli/internal/core/ports/driven"
	"github.com/clinphys/rdsr-cli/internal/core/ports/driving"
)

// Ports aggregates the port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Pipeline is the record pipeline backing every view.
	Pipeline driving.PipelineService

	// Exporter writes the current view to a CSV file. Optional; the
	// export keybinding is disabled when nil.
	Exporter driven.Exporter
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Pipeline == nil {
		return ErrMissingPipelineService
	}
	return nil
}
