package driven

import (
	"context"

	"github.com/clinphys/rdsr-cli/internal/core/domain"
)

// ScanResult is the outcome of one folder scan: the documents that
// parsed, in folder traversal order, plus the per-file failures.
// A failure never aborts the scan.
type ScanResult struct {
	// Documents are the parsed reports in traversal order.
	Documents []domain.Document

	// Failures are the files that could not be parsed.
	Failures []domain.DocumentFailure
}

// DocumentSource discovers dose reports under a folder hierarchy and
// parses each into a content tree plus top-level attributes.
// Recursion into subfolders is the source's responsibility.
type DocumentSource interface {
	// Scan walks folder recursively and parses every matching file.
	// The returned error covers the scan itself (unreadable root);
	// malformed files are reported per document in the result.
	Scan(ctx context.Context, folder string) (*ScanResult, error)
}
