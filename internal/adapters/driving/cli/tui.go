package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/time/rate"

	"github.com/clinphys/rdsr-cli/internal/adapters/driven/watch"
	"github.com/clinphys/rdsr-cli/internal/adapters/driving/tui"
)

var tuiWatch bool

var tuiCmd = &cobra.Command{
	Use:   "tui [folder]",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

The TUI shows the record table with live filtering and per-column
sorting, plus summary statistics and multiple-exposure views.

Controls:
  ↑/k, ↓/j - Navigate rows
  s        - Sort by the selected column (toggle direction)
  /        - Add a filter
  f        - Edit date bounds
  Tab      - Switch view
  Esc      - Back / Cancel
  q        - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().BoolVar(&tuiWatch, "watch", false, "rescan when files change in the folder")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Panic recovery to get stack traces out of the alt screen
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the TUI needs an interactive terminal")
	}

	folder := args[0]
	ports := &tui.Ports{
		Pipeline: pipelineService,
		Exporter: exporter,
	}

	app, err := tui.NewApp(ports, folder)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())

	if tuiWatch {
		minInterval := rate.Limit(0)
		if configStore != nil {
			if ms := configStore.GetInt("watch.min_interval_ms"); ms > 0 {
				minInterval = rate.Every(time.Duration(ms) * time.Millisecond)
			}
		}
		watchCtx, watchCancel := context.WithCancel(cmd.Context())
		defer watchCancel()

		w := watch.New(folder, minInterval, func() {
			p.Send(tui.FolderChangedMsg{Folder: folder})
		})
		go func() {
			if err := w.Run(watchCtx); err != nil && !errors.Is(err, context.Canceled) {
				fmt.Fprintf(os.Stderr, "watcher stopped: %v\n", err)
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
