package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/clinphys/rdsr-cli/internal/adapters/driving/tui/components/status"
	"github.com/clinphys/rdsr-cli/internal/adapters/driving/tui/keymap"
	"github.com/clinphys/rdsr-cli/internal/adapters/driving/tui/messages"
	"github.com/clinphys/rdsr-cli/internal/adapters/driving/tui/styles"
	"github.com/clinphys/rdsr-cli/internal/adapters/driving/tui/views/exposures"
	"github.com/clinphys/rdsr-cli/internal/adapters/driving/tui/views/records"
	"github.com/clinphys/rdsr-cli/internal/adapters/driving/tui/views/stats"
)

// FolderChangedMsg asks the app to rescan its folder. The watcher
// sends it from outside the program loop.
type FolderChangedMsg struct {
	Folder string
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	folder string

	styles *styles.Styles
	keymap *keymap.KeyMap

	recordsView   *records.View
	statsView     *stats.View
	exposuresView *exposures.View
	statusBar     *status.Bar

	currentView messages.ViewType
	err         error
	width       int
	height      int
	ready       bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application scanning the given folder.
func NewApp(ports *Ports, folder string) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		folder:        folder,
		styles:        s,
		keymap:        km,
		recordsView:   records.NewView(s, km, ports.Pipeline),
		statsView:     stats.NewView(s, ports.Pipeline),
		exposuresView: exposures.NewView(s, ports.Pipeline),
		statusBar:     status.NewBar(s, km),
		currentView:   messages.ViewRecords,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model. It starts the initial folder scan.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("rdsr - Dose Report Analysis"),
		a.loadCmd(),
	)
}

// loadCmd scans the folder off the Update loop.
func (a *App) loadCmd() tea.Cmd {
	return func() tea.Msg {
		report, err := a.ports.Pipeline.Load(a.ctx, a.folder)
		return messages.LoadCompleted{Report: report, Err: err}
	}
}

// exportCmd writes the current view to a timestamped CSV file.
func (a *App) exportCmd() tea.Cmd {
	return func() tea.Msg {
		if a.ports.Exporter == nil {
			return messages.ExportCompleted{Err: fmt.Errorf("no exporter configured")}
		}
		view := a.ports.Pipeline.View()
		path := fmt.Sprintf("rdsr-export-%s.csv", time.Now().Format("20060102-150405"))
		if err := a.ports.Exporter.ExportView(path, view.Columns, view.RenderedRows()); err != nil {
			return messages.ExportCompleted{Err: err}
		}
		return messages.ExportCompleted{Path: path, Rows: view.Len()}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.recordsView.SetDimensions(msg.Width, msg.Height)
		a.statsView.SetDimensions(msg.Width, msg.Height)
		a.exposuresView.SetDimensions(msg.Width, msg.Height)
		a.statusBar.SetWidth(msg.Width)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.handleKey(msg)

	case FolderChangedMsg:
		return a, a.loadCmd()

	case messages.LoadCompleted:
		if msg.Err != nil {
			a.err = msg.Err
			a.statusBar.SetMessage(msg.Err.Error(), true)
			return a, nil
		}
		a.err = nil
		a.statusBar.SetMessage(fmt.Sprintf("loaded %d records (%d empty, %d failed)",
			msg.Report.Loaded, msg.Report.SkippedEmpty, len(msg.Report.Failures)), false)
		a.refreshStatus()
		a.recordsView.Refresh()
		return a, a.broadcastRefresh()

	case messages.ViewRefreshed:
		a.statusBar.SetMessage("", false)
		a.refreshStatus()
		a.recordsView, _ = a.recordsView.Update(msg)
		var statsCmd, expCmd tea.Cmd
		a.statsView, statsCmd = a.statsView.Update(msg)
		a.exposuresView, expCmd = a.exposuresView.Update(msg)
		return a, tea.Batch(statsCmd, expCmd)

	case messages.StatsLoaded:
		a.statsView, cmd = a.statsView.Update(msg)
		return a, cmd

	case messages.ExposuresLoaded:
		a.exposuresView, cmd = a.exposuresView.Update(msg)
		return a, cmd

	case messages.ExportCompleted:
		if msg.Err != nil {
			a.statusBar.SetMessage("export failed: "+msg.Err.Error(), true)
		} else {
			a.statusBar.SetMessage(fmt.Sprintf("wrote %d rows to %s", msg.Rows, msg.Path), false)
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetMessage(msg.Err.Error(), true)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to the active view
	switch a.currentView {
	case messages.ViewRecords:
		a.recordsView, cmd = a.recordsView.Update(msg)
	case messages.ViewStats:
		a.statsView, cmd = a.statsView.Update(msg)
	case messages.ViewExposures:
		a.exposuresView, cmd = a.exposuresView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

// handleKey routes key presses: app-level chords first, then the
// active view. While the records view is editing text, everything
// except ctrl+c goes to the input.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if a.currentView == messages.ViewRecords && a.recordsView.Editing() {
		a.recordsView, cmd = a.recordsView.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keymap.Help):
		a.currentView = messages.ViewHelp
		return a, nil

	case key.Matches(msg, a.keymap.Back):
		if a.currentView != messages.ViewRecords {
			a.currentView = messages.ViewRecords
			return a, nil
		}

	case key.Matches(msg, a.keymap.NextView):
		a.currentView = a.nextView()
		switch a.currentView {
		case messages.ViewStats:
			return a, a.statsView.Init()
		case messages.ViewExposures:
			return a, a.exposuresView.Init()
		case messages.ViewRecords, messages.ViewHelp:
		}
		return a, nil

	case key.Matches(msg, a.keymap.Reload):
		return a, a.loadCmd()

	case key.Matches(msg, a.keymap.Export):
		return a, a.exportCmd()
	}

	switch a.currentView {
	case messages.ViewRecords:
		a.recordsView, cmd = a.recordsView.Update(msg)
	case messages.ViewStats:
		a.statsView, cmd = a.statsView.Update(msg)
	case messages.ViewExposures:
		a.exposuresView, cmd = a.exposuresView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

// nextView cycles records -> stats -> exposures -> records.
func (a *App) nextView() messages.ViewType {
	switch a.currentView {
	case messages.ViewRecords:
		return messages.ViewStats
	case messages.ViewStats:
		return messages.ViewExposures
	default:
		return messages.ViewRecords
	}
}

// refreshStatus re-reads the pipeline into the status bar.
func (a *App) refreshStatus() {
	a.statusBar.SetCounts(a.ports.Pipeline.View().Len(), a.ports.Pipeline.Collection().Len())
	state := a.ports.Pipeline.FilterState()
	filters := len(state.Specs)
	if state.StartDate != "" {
		filters++
	}
	if state.EndDate != "" {
		filters++
	}
	a.statusBar.SetFilters(filters)
	a.statusBar.SetSort(a.ports.Pipeline.SortState())
}

// broadcastRefresh tells the derived views to recompute.
func (a *App) broadcastRefresh() tea.Cmd {
	return func() tea.Msg {
		return messages.ViewRefreshed{}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewRecords:
		body = a.recordsView.View()
	case messages.ViewStats:
		body = a.statsView.View()
	case messages.ViewExposures:
		body = a.exposuresView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.recordsView.View()
	}

	return body + "\n" + a.statusBar.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  tab         Cycle records / stats / exposures
  esc         Back to records
  ctrl+c, q   Quit

Records:
  j/k, ↑/↓    Navigate rows
  h/l, ←/→    Select column
  s           Sort by selected column (toggle direction)
  /           Filter selected column by substring
  f           Edit date bounds (FROM TO, blank clears)
  c           Clear all filters
  e           Export current view to CSV
  r           Rescan the folder

[esc] back to records`
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.recordsView.SetDimensions(width, height)
	a.statsView.SetDimensions(width, height)
	a.exposuresView.SetDimensions(width, height)
	a.statusBar.SetWidth(width)
}
