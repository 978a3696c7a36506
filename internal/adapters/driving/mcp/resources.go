package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/clinphys/rdsr-cli/internal/core/domain"
)

const uriScheme = "rdsr://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the extraction dictionary.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "columns",
		Name:        "columns",
		Description: "The dose report concepts extracted into record columns, in display order",
		MIMEType:    "application/json",
	}, s.handleColumnsResource)

	// The session's active filters.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "filters",
		Name:        "filters",
		Description: "The currently active date bounds and column filters",
		MIMEType:    "application/json",
	}, s.handleFiltersResource)
}

// handleColumnsResource returns the fixed column dictionary.
func (s *Server) handleColumnsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type columnInfo struct {
		Name          string `json:"name"`
		StatsExcluded bool   `json:"stats_excluded"`
	}

	infos := make([]columnInfo, len(domain.ColumnOrder))
	for i, name := range domain.ColumnOrder {
		infos[i] = columnInfo{
			Name:          name,
			StatsExcluded: domain.IsStatsExcluded(name),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling columns: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleFiltersResource returns the session's filter state.
func (s *Server) handleFiltersResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	state := s.ports.Pipeline.FilterState()

	type filterInfo struct {
		Column    string `json:"column"`
		Substring string `json:"substring"`
	}
	out := struct {
		StartDate string       `json:"start_date,omitempty"`
		EndDate   string       `json:"end_date,omitempty"`
		Filters   []filterInfo `json:"filters"`
	}{
		StartDate: state.StartDate,
		EndDate:   state.EndDate,
		Filters:   make([]filterInfo, len(state.Specs)),
	}
	for i, spec := range state.Specs {
		out.Filters[i] = filterInfo{Column: spec.Column, Substring: spec.Substring}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling filters: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
