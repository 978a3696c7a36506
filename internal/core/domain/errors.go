package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNoData indicates an operation was requested before any
	// records were loaded, or the current view is empty. It is
	// informational; callers report it and carry on.
	ErrNoData = errors.New("no data loaded")

	// ErrNoNumericData indicates the view holds no numeric-parseable
	// values for the requested operation. Informational.
	ErrNoNumericData = errors.New("no numeric data")

	// ErrColumnMissing indicates a required column is absent from the
	// schema. For grouping this is a hard precondition failure that
	// aborts just that operation.
	ErrColumnMissing = errors.New("required column missing")

	// ErrInvalidDateBound indicates a date bound could not be parsed.
	// The bound is skipped; all other filters still apply.
	ErrInvalidDateBound = errors.New("invalid date bound")

	// ErrInvalidFilter indicates a malformed filter expression.
	ErrInvalidFilter = errors.New("invalid filter")
)
