package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that a referenced user or message does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrUnauthenticated reports a mutation attempted without a resolved caller,
	// or a failed credential check.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// ValidationError is a field-keyed, aggregated business-rule failure. It is a
// normal outcome of a request, recovered into a structured 422 response at the
// API boundary, never raised as a fault.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidation() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

// Add appends a message under field and returns the receiver so checks chain.
func (v *ValidationError) Add(field, msg string) *ValidationError {
	v.Fields[field] = append(v.Fields[field], msg)
	return v
}

func (v *ValidationError) Empty() bool {
	return len(v.Fields) == 0
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(v.Fields))
}

// Validation extracts a *ValidationError from err, or nil.
func Validation(err error) *ValidationError {
	var v *ValidationError
	if errors.As(err, &v) {
		return v
	}
	return nil
}
