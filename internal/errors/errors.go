// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrConfigInvalid = errors.New("invalid configuration")
	ErrNoSymbols     = errors.New("no symbols to analyze")
	ErrUnknownMode   = errors.New("unknown persistence mode")
	ErrUniverseEmpty = errors.New("symbol universe returned no results")
)

// FetchError represents a failed indicator retrieval for a single symbol.
// It never propagates past the fan-out boundary; affected symbols are simply
// excluded from scoring.
type FetchError struct {
	Symbol     string
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("fetch error [%s]: %s: %v", e.Symbol, e.Message, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("fetch error [%s]: %s (status %d)", e.Symbol, e.Message, e.StatusCode)
	default:
		return fmt.Sprintf("fetch error [%s]: %s", e.Symbol, e.Message)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new FetchError.
func NewFetchError(symbol, message string, err error) *FetchError {
	return &FetchError{
		Symbol:  symbol,
		Message: message,
		Err:     err,
	}
}

// NewFetchStatusError creates a FetchError for a non-2xx response.
func NewFetchStatusError(symbol string, statusCode int) *FetchError {
	return &FetchError{
		Symbol:     symbol,
		StatusCode: statusCode,
		Message:    "unexpected response status",
	}
}

// MalformedSnapshotError indicates a snapshot missing its identity fields.
// Such snapshots are excluded before scoring.
type MalformedSnapshotError struct {
	Segment string
	Symbol  string
}

func (e *MalformedSnapshotError) Error() string {
	return fmt.Sprintf("malformed snapshot [%s:%s]: missing identity fields", e.Segment, e.Symbol)
}

// NewMalformedSnapshotError creates a new MalformedSnapshotError.
func NewMalformedSnapshotError(segment, symbol string) *MalformedSnapshotError {
	return &MalformedSnapshotError{Segment: segment, Symbol: symbol}
}

// PersistenceError represents a failure writing picks to the sink. It is
// fatal to the run and surfaced to the caller unmodified.
type PersistenceError struct {
	Worksheet string
	Operation string
	Err       error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error [%s] %s: %v", e.Worksheet, e.Operation, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError creates a new PersistenceError.
func NewPersistenceError(worksheet, operation string, err error) *PersistenceError {
	return &PersistenceError{
		Worksheet: worksheet,
		Operation: operation,
		Err:       err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
