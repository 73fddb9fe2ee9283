package billing

import "fmt"

// ValidationError indicates malformed input (bad month key, non-positive
// amount, invalid date). It is always raised before any state mutation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Invalidf builds a ValidationError from a format string.
func Invalidf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ConflictError indicates a business-rule invariant violation detected at
// write time, e.g. a second OPEN statement for a lease. It is not a
// transient fault and must not be retried automatically.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

func Conflictf(format string, args ...interface{}) error {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError indicates a referenced lease/customer/invoice does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}
