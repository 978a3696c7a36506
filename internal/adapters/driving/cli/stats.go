package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/clinphys/rdsr-cli/internal/core/domain"
)

var statsCmd = &cobra.Command{
	Use:   "stats [folder]",
	Short: "Summary statistics for the numeric dose columns",
	Long: `Computes count, mean, standard deviation, median, minimum and
maximum for every numeric column of the filtered view. Bookkeeping
columns (timestamps, series numbers, birth dates) are excluded.`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	addFilterFlags(statsCmd)
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	report, err := loadAndFilter(cmd, args[0])
	if err != nil {
		return err
	}
	printLoadSummary(cmd, report)

	stats, err := pipelineService.Stats()
	switch {
	case errors.Is(err, domain.ErrNoData):
		cmd.Println("No records match.")
		return nil
	case errors.Is(err, domain.ErrNoNumericData):
		cmd.Println("No numeric columns in the current view.")
		return nil
	case err != nil:
		return fmt.Errorf("computing statistics: %w", err)
	}

	tw := tablewriter.NewWriter(cmd.OutOrStdout())
	tw.SetHeader([]string{"column", "count", "mean", "std", "median", "min", "max"})
	for _, s := range stats {
		std := ""
		if s.HasStd {
			std = formatStat(s.Std)
		}
		tw.Append([]string{
			s.Column,
			strconv.Itoa(s.Count),
			formatStat(s.Mean),
			std,
			formatStat(s.Median),
			formatStat(s.Min),
			formatStat(s.Max),
		})
	}
	tw.Render()
	return nil
}

func formatStat(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}
