// Package domain defines the core business entities for the rdsr tool.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A parsed dose report (content tree plus top-level attributes)
//   - ContentNode: One node of a report's coded content tree
//   - Record: A flattened, dictionary-keyed row extracted from one report
//   - RecordCollection: The ordered table of records for one session
//   - FilterState: The active date bounds and text filters
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
