package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrBlocked: the upstream answered with a server error carrying
	// anti-automation content. Not retried.
	ErrBlocked = errors.New("page blocked by upstream")

	// ErrFetchFailed: any other high server-error status from the upstream.
	ErrFetchFailed = errors.New("page fetch failed")
)

// NormalizationError reports a required raw field that could not be parsed
// into its typed form. It aborts the whole scrape; no defaults are
// substituted for required fields.
type NormalizationError struct {
	Field string
	Value string
	Err   error
}

func (e *NormalizationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("normalize %s: %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("normalize %s: %q", e.Field, e.Value)
}

func (e *NormalizationError) Unwrap() error { return e.Err }
