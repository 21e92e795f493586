package blockgen

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for cache operations.
var (
	// ErrCacheClosed is returned when a closed cache is used.
	ErrCacheClosed = errors.New("blockgen: cache is closed")

	// ErrInvalidTTL is returned when a negative TTL is given.
	ErrInvalidTTL = errors.New("blockgen: ttl must not be negative")
)

// CacheError wraps a cache failure with the operation and key involved.
type CacheError struct {
	Op  string // Operation (e.g., "get", "set", "delete")
	Key string // Cache key, if any
	Err error  // Underlying error
}

// Error returns the error string.
func (e *CacheError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("blockgen: cache %s %q: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("blockgen: cache %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *CacheError) Unwrap() error {
	return e.Err
}

// NewCacheError returns a new CacheError.
func NewCacheError(op, key string, err error) *CacheError {
	return &CacheError{Op: op, Key: key, Err: err}
}

// IsCacheError returns true if the error is a CacheError.
func IsCacheError(err error) bool {
	if err == nil {
		return false
	}
	var e *CacheError
	return errors.As(err, &e)
}

// AggregateError represents multiple errors collected during an operation.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "blockgen: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("blockgen: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// Unwrap returns the collected errors.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// NewAggregateError returns a new AggregateError if there are errors,
// otherwise returns nil.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}
