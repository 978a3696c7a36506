package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/clinphys/rdsr-cli/internal/core/domain"
)

var exposuresOut string

var exposuresCmd = &cobra.Command{
	Use:   "exposures [folder]",
	Short: "Detect patients with multiple same-day exposures",
	Long: fmt.Sprintf(`Groups the filtered view by patient and calendar day and reports
every group with %d or more exposures. Rows without a parseable
patient and date are left out of the grouping.`, domain.MultipleExposureThreshold),
	Args: cobra.ExactArgs(1),
	RunE: runExposures,
}

func init() {
	addFilterFlags(exposuresCmd)
	exposuresCmd.Flags().StringVarP(&exposuresOut, "out", "o", "", "also export the flagged rows to a CSV file")
	rootCmd.AddCommand(exposuresCmd)
}

func runExposures(cmd *cobra.Command, args []string) error {
	report, err := loadAndFilter(cmd, args[0])
	if err != nil {
		return err
	}
	printLoadSummary(cmd, report)

	exposures, err := pipelineService.MultipleExposures()
	switch {
	case errors.Is(err, domain.ErrNoData):
		cmd.Println("No records match.")
		return nil
	case err != nil:
		return fmt.Errorf("grouping exposures: %w", err)
	}

	if exposures.Empty() {
		cmd.Println("No multiple-exposure groups found.")
		return nil
	}

	bold := color.New(color.Bold).SprintfFunc()
	for _, group := range exposures.Groups {
		cmd.Println(bold("%s  %s  (%d exposures)",
			group.Key.Date.Format("2006-01-02"), group.Key.PatientID, group.Count()))

		tw := tablewriter.NewWriter(cmd.OutOrStdout())
		tw.SetHeader(exposures.Columns)
		for _, row := range group.Rows {
			rendered := make([]string, len(exposures.Columns))
			for i, col := range exposures.Columns {
				rendered[i] = row.Cell(col).String()
			}
			tw.Append(rendered)
		}
		tw.Render()
		cmd.Println()
	}
	cmd.Printf("%d groups, %d rows\n", len(exposures.Groups), exposures.TotalRows())

	if exposuresOut != "" {
		if exporter == nil {
			return errors.New("exporter not configured")
		}
		var rows [][]string
		for _, group := range exposures.Groups {
			for _, row := range group.Rows {
				rendered := make([]string, len(exposures.Columns))
				for i, col := range exposures.Columns {
					rendered[i] = row.Cell(col).String()
				}
				rows = append(rows, rendered)
			}
		}
		if err := exporter.ExportView(exposuresOut, exposures.Columns, rows); err != nil {
			return fmt.Errorf("exporting exposures: %w", err)
		}
		cmd.Printf("Wrote %s\n", exposuresOut)
	}
	return nil
}
