// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants query loaded dose report data: filtered record
// views, summary statistics and multiple-exposure groups.
package mcp

import "errors"

// ErrMissingPipelineService is returned when the pipeline service is not provided.
var ErrMissingPipelineService = errors.New("mcp: pipeline service is required")
