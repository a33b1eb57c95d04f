package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports a filter rule violation found during commit. It
// is raised before any network call and leaves applied state untouched.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid filter %q: %s", e.Field, e.Rule)
}

// FetchError wraps a network or server failure during a report query. The
// caller must drop any previously held result.
type FetchError struct {
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("report fetch failed: %s", e.Message)
	}
	return fmt.Sprintf("report fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ErrNoData is returned when an export is attempted with neither records
// nor totals. No file is written.
var ErrNoData = errors.New("nothing to export: report has no records or totals")

// WriteError reports a storage or share failure while exporting. No
// partial cleanup is attempted; a retry recomputes the artifact.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("export write failed for %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
