// Package services implements the driving port interfaces.
// Services contain the core business logic: the tree-walking
// extractor, the filter/sort pipeline and the grouping and
// aggregation engines. They orchestrate calls to driven ports
// (adapters) but contain no I/O themselves.
package services
