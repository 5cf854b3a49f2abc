package corpus

import (
	"errors"
	"fmt"
)

var (
	ErrUnmappedCode      = errors.New("unmapped code")
	ErrMalformedName     = errors.New("malformed file name")
	ErrMissingConfidence = errors.New("file missing from confidence table")
	ErrDuplicateRow      = errors.New("duplicate row in confidence table")
	ErrBadConfidence     = errors.New("invalid confidence value")
	ErrBadHeader         = errors.New("confidence table header")
)

// FieldError reports a file name whose code could not be derived.
type FieldError struct {
	Name  string
	Field string
	Code  string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s %q: %v", e.Name, e.Field, e.Code, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
