package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/clinphys/rdsr-cli/internal/core/domain"
)

var (
	plotBins   int
	plotHeight int
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Terminal charts over the filtered view",
}

var plotTimeCmd = &cobra.Command{
	Use:   "time [folder]",
	Short: "Exposure counts per calendar day",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlotTime,
}

var plotHistCmd = &cobra.Command{
	Use:   "hist [folder] [column]",
	Short: "Histogram of one numeric column",
	Long: `Bins the numeric values of a column of the filtered view and prints
the distribution. Use "rdsr plot hist FOLDER ?" to list the numeric
columns available.`,
	Args: cobra.ExactArgs(2),
	RunE: runPlotHist,
}

func init() {
	addFilterFlags(plotTimeCmd)
	addFilterFlags(plotHistCmd)
	plotTimeCmd.Flags().IntVar(&plotHeight, "height", 10, "chart height in rows")
	plotHistCmd.Flags().IntVar(&plotBins, "bins", 20, "number of histogram bins")
	plotCmd.AddCommand(plotTimeCmd)
	plotCmd.AddCommand(plotHistCmd)
	rootCmd.AddCommand(plotCmd)
}

func runPlotTime(cmd *cobra.Command, args []string) error {
	report, err := loadAndFilter(cmd, args[0])
	if err != nil {
		return err
	}
	printLoadSummary(cmd, report)

	counts, err := pipelineService.ExposuresOverTime()
	switch {
	case errors.Is(err, domain.ErrNoData):
		cmd.Println("No records match.")
		return nil
	case err != nil:
		return fmt.Errorf("counting exposures: %w", err)
	}

	series := make([]float64, len(counts))
	for i, tc := range counts {
		series[i] = float64(tc.Count)
	}

	caption := fmt.Sprintf("exposures per day, %s to %s",
		counts[0].Date.Format("2006-01-02"),
		counts[len(counts)-1].Date.Format("2006-01-02"))
	chart := asciigraph.Plot(series,
		asciigraph.Height(plotHeight),
		asciigraph.Caption(caption))
	cmd.Println(chart)
	return nil
}

func runPlotHist(cmd *cobra.Command, args []string) error {
	report, err := loadAndFilter(cmd, args[0])
	if err != nil {
		return err
	}
	printLoadSummary(cmd, report)

	column := args[1]
	if column == "?" {
		columns := pipelineService.NumericColumns()
		if len(columns) == 0 {
			cmd.Println("No numeric columns in the current view.")
			return nil
		}
		cmd.Println("Numeric columns:")
		for _, c := range columns {
			cmd.Printf("  %s\n", c)
		}
		return nil
	}

	bins, err := pipelineService.Histogram(column, plotBins)
	switch {
	case errors.Is(err, domain.ErrColumnMissing):
		return fmt.Errorf("unknown column %q", column)
	case errors.Is(err, domain.ErrNoData), errors.Is(err, domain.ErrNoNumericData):
		cmd.Printf("No numeric values for %s in the current view.\n", column)
		return nil
	case err != nil:
		return fmt.Errorf("binning %s: %w", column, err)
	}

	most := 0
	for _, b := range bins {
		if b.Count > most {
			most = b.Count
		}
	}

	tw := tablewriter.NewWriter(cmd.OutOrStdout())
	tw.SetHeader([]string{"range", "count", ""})
	for _, b := range bins {
		bar := ""
		if most > 0 {
			bar = strings.Repeat("#", b.Count*40/most)
		}
		tw.Append([]string{
			fmt.Sprintf("%s .. %s", formatStat(b.Low), formatStat(b.High)),
			strconv.Itoa(b.Count),
			bar,
		})
	}
	tw.Render()
	return nil
}
