// Package errors holds the closed set of ledger failure kinds. Every core
// operation fails with one of these, wrapped with the offending value, so the
// HTTP layer can map the kind to a status code with errors.Is.
package errors

import (
	"errors"
	"fmt"
)

// DomainError is a typed, expected failure of a ledger operation.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Wrap attaches detail to a kind while keeping it matchable with errors.Is.
func Wrap(kind *DomainError, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// Kind returns the DomainError carried by err, if any.
func Kind(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Code returns the kind code of err, or "INTERNAL" for non-domain errors.
func Code(err error) string {
	if de, ok := Kind(err); ok {
		return de.Code
	}
	return "INTERNAL"
}
