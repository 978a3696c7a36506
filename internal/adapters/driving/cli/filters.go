package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/clinphys/rdsr-cli/internal/core/domain"
)

var (
	flagFrom    string
	flagTo      string
	flagFilters []string
)

// addFilterFlags registers the shared filtering flags on commands
// that operate on the filtered view.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagFrom, "from", "", "inclusive start date (YYYYMMDD)")
	cmd.Flags().StringVar(&flagTo, "to", "", "inclusive end date (YYYYMMDD)")
	cmd.Flags().StringArrayVar(&flagFilters, "filter", nil,
		"column filter as COLUMN=SUBSTRING (repeatable, case-insensitive)")
}

// loadAndFilter scans folder into the pipeline and applies the
// flag-supplied filters. Bound warnings and parse failures go to
// stderr; they never abort the command.
func loadAndFilter(cmd *cobra.Command, folder string) (domain.LoadReport, error) {
	if pipelineService == nil {
		return domain.LoadReport{}, errors.New("pipeline service not configured")
	}

	report, err := pipelineService.Load(cmd.Context(), folder)
	if err != nil {
		return domain.LoadReport{}, fmt.Errorf("loading %s: %w", folder, err)
	}

	if flagFrom != "" {
		pipelineService.SetStartDate(flagFrom)
	}
	if flagTo != "" {
		pipelineService.SetEndDate(flagTo)
	}
	for _, f := range flagFilters {
		column, substring, found := strings.Cut(f, "=")
		if !found {
			return domain.LoadReport{}, fmt.Errorf("invalid filter %q: want COLUMN=SUBSTRING", f)
		}
		pipelineService.AddFilter(column, substring)
	}

	warn := color.New(color.FgYellow).SprintFunc()
	for _, failure := range report.Failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: %v\n", warn("skipped"), failure.Path, failure.Err)
	}
	for _, w := range pipelineService.Warnings() {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", warn("warning:"), w)
	}

	return report, nil
}

// printLoadSummary writes the one-line scan outcome.
func printLoadSummary(cmd *cobra.Command, report domain.LoadReport) {
	cmd.Printf("Loaded %d records from %s (%d empty, %d failed) [batch %s]\n",
		report.Loaded, report.Folder, report.SkippedEmpty, len(report.Failures), report.BatchID)
}
