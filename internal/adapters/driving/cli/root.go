// Package cli implements the command-line driving adapter. Commands
// talk to the core exclusively through the driving ports; wiring
// happens in main via the Set* functions.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/clinphys/rdsr-cli/internal/core/ports/driven"
	"github.com/clinphys/rdsr-cli/internal/core/ports/driving"
	"github.com/clinphys/rdsr-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	pipelineService driving.PipelineService
	exporter        driven.Exporter
	configStore     driven.ConfigStore
)

var (
	verbose   bool
	configDir string

	// bootstrap builds the services once flags are parsed, so
	// --config can point at a different directory. Wired by main,
	// nil under test.
	bootstrap func(configDir string) error
)

var rootCmd = &cobra.Command{
	Use:   "rdsr",
	Short: "Radiation dose structured report analysis",
	Long: `rdsr extracts dose data from DICOM Radiation Dose Structured
Reports and turns a folder of reports into a filterable, sortable
table with summary statistics and multiple-exposure detection.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if bootstrap != nil {
			return bootstrap(configDir)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.rdsr)")
}

// SetBootstrap registers the service wiring run after flag parsing.
func SetBootstrap(fn func(configDir string) error) {
	bootstrap = fn
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetPipelineService wires the record pipeline used by all commands.
func SetPipelineService(s driving.PipelineService) {
	pipelineService = s
}

// SetExporter wires the view exporter used by the export command.
func SetExporter(e driven.Exporter) {
	exporter = e
}

// SetConfigStore wires the configuration store.
func SetConfigStore(c driven.ConfigStore) {
	configStore = c
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
