package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// FilteredInput carries the load-and-filter parameters shared by all
// tools. An empty folder reuses the session's current collection.
type FilteredInput struct {
	Folder  string   `json:"folder,omitempty" jsonschema:"folder of dose report files to scan; omit to reuse already loaded data"`
	From    string   `json:"from,omitempty" jsonschema:"inclusive start date YYYYMMDD"`
	To      string   `json:"to,omitempty" jsonschema:"inclusive end date YYYYMMDD"`
	Filters []string `json:"filters,omitempty" jsonschema:"column filters as COLUMN=SUBSTRING, matched case-insensitively"`
}

// QueryRecordsInput is the input schema for the query_records tool.
type QueryRecordsInput struct {
	FilteredInput
	SortBy string `json:"sort_by,omitempty" jsonschema:"column to sort by"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of rows to return (default 50)"`
}

// QueryRecordsOutput is the output schema for the query_records tool.
type QueryRecordsOutput struct {
	Columns  []string   `json:"columns"`
	Rows     [][]string `json:"rows"`
	Total    int        `json:"total"`
	Warnings []string   `json:"warnings,omitempty"`
}

// StatsOutput is the output schema for the summary_stats tool.
type StatsOutput struct {
	Stats    []ColumnStatsOutput `json:"stats"`
	Warnings []string            `json:"warnings,omitempty"`
}

// ColumnStatsOutput is one column's summary statistics.
type ColumnStatsOutput struct {
	Column string   `json:"column"`
	Count  int      `json:"count"`
	Mean   float64  `json:"mean"`
	Median float64  `json:"median"`
	Min    float64  `json:"min"`
	Max    float64  `json:"max"`
	Std    *float64 `json:"std,omitempty"`
}

// ExposuresOutput is the output schema for the multiple_exposures tool.
type ExposuresOutput struct {
	Columns  []string        `json:"columns"`
	Groups   []ExposureGroup `json:"groups"`
	Warnings []string        `json:"warnings,omitempty"`
}

// ExposureGroup is one (patient, day) cluster of exposures.
type ExposureGroup struct {
	PatientID string     `json:"patient_id"`
	Date      string     `json:"date"`
	Count     int        `json:"count"`
	Rows      [][]string `json:"rows"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_records",
		Description: "Load dose reports and return the filtered record table",
	}, s.handleQueryRecords)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "summary_stats",
		Description: "Summary statistics for the numeric dose columns of the filtered view",
	}, s.handleSummaryStats)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "multiple_exposures",
		Description: "Patients with three or more exposures on the same calendar day",
	}, s.handleMultipleExposures)
}

// prepare loads the folder if given and applies the input's filters.
func (s *Server) prepare(ctx context.Context, in FilteredInput) error {
	if in.Folder != "" {
		if _, err := s.ports.Pipeline.Load(ctx, in.Folder); err != nil {
			return fmt.Errorf("loading %s: %w", in.Folder, err)
		}
	} else if s.ports.Pipeline.Collection().Empty() {
		return fmt.Errorf("no data loaded; pass a folder")
	}

	s.ports.Pipeline.ClearFilters()
	if in.From != "" {
		s.ports.Pipeline.SetStartDate(in.From)
	}
	if in.To != "" {
		s.ports.Pipeline.SetEndDate(in.To)
	}
	for _, f := range in.Filters {
		column, substring, found := strings.Cut(f, "=")
		if !found {
			return fmt.Errorf("invalid filter %q: want COLUMN=SUBSTRING", f)
		}
		s.ports.Pipeline.AddFilter(column, substring)
	}
	return nil
}

func (s *Server) handleQueryRecords(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryRecordsInput,
) (*mcp.CallToolResult, QueryRecordsOutput, error) {
	if err := s.prepare(ctx, input.FilteredInput); err != nil {
		return nil, QueryRecordsOutput{}, err
	}

	view := s.ports.Pipeline.View()
	if input.SortBy != "" {
		view, _ = s.ports.Pipeline.SortBy(input.SortBy)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}
	rows := view.RenderedRows()
	total := len(rows)
	if len(rows) > limit {
		rows = rows[:limit]
	}

	return nil, QueryRecordsOutput{
		Columns:  view.Columns,
		Rows:     rows,
		Total:    total,
		Warnings: s.ports.Pipeline.Warnings(),
	}, nil
}

func (s *Server) handleSummaryStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FilteredInput,
) (*mcp.CallToolResult, StatsOutput, error) {
	if err := s.prepare(ctx, input); err != nil {
		return nil, StatsOutput{}, err
	}

	stats, err := s.ports.Pipeline.Stats()
	if err != nil {
		return nil, StatsOutput{}, err
	}

	out := StatsOutput{
		Stats:    make([]ColumnStatsOutput, len(stats)),
		Warnings: s.ports.Pipeline.Warnings(),
	}
	for i, st := range stats {
		entry := ColumnStatsOutput{
			Column: st.Column,
			Count:  st.Count,
			Mean:   st.Mean,
			Median: st.Median,
			Min:    st.Min,
			Max:    st.Max,
		}
		if st.HasStd {
			std := st.Std
			entry.Std = &std
		}
		out.Stats[i] = entry
	}
	return nil, out, nil
}

func (s *Server) handleMultipleExposures(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FilteredInput,
) (*mcp.CallToolResult, ExposuresOutput, error) {
	if err := s.prepare(ctx, input); err != nil {
		return nil, ExposuresOutput{}, err
	}

	report, err := s.ports.Pipeline.MultipleExposures()
	if err != nil {
		return nil, ExposuresOutput{}, err
	}

	out := ExposuresOutput{
		Columns:  report.Columns,
		Groups:   make([]ExposureGroup, len(report.Groups)),
		Warnings: s.ports.Pipeline.Warnings(),
	}
	for i, g := range report.Groups {
		rows := make([][]string, len(g.Rows))
		for j, row := range g.Rows {
			rendered := make([]string, len(report.Columns))
			for k, col := range report.Columns {
				rendered[k] = row.Cell(col).String()
			}
			rows[j] = rendered
		}
		out.Groups[i] = ExposureGroup{
			PatientID: g.Key.PatientID,
			Date:      g.Key.Date.Format("2006-01-02"),
			Count:     g.Count(),
			Rows:      rows,
		}
	}
	return nil, out, nil
}
