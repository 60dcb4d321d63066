package common

import (
	"errors"
	"fmt"
)

// Business-rule and structural errors. Handlers translate these into
// specific HTTP statuses so a client can tell "retry later" apart from
// "this request can never succeed as-is".
var (
	ErrNotFound          = errors.New("resource not found")
	ErrForbidden         = errors.New("resource belongs to another account")
	ErrInsufficientStock = errors.New("insufficient stock for requested quantity")
	ErrHasChildren       = errors.New("category still has subcategories")
	ErrNotPurchased      = errors.New("product was never purchased by this customer")
	ErrAlreadyReviewed   = errors.New("product already reviewed by this customer")
	ErrEmptyCart         = errors.New("cart is empty")
)

// ValidationError reports malformed or missing caller input. Nothing has
// been mutated when one of these is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageError wraps a failure inside a multi-statement transaction. Step
// is the 1-based ordinal of the failing statement, recorded for operators;
// the wrapped error never reaches the end user.
type StorageError struct {
	Op   string
	Step int
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: step %d failed: %v", e.Op, e.Step, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err with the operation name and failing step index.
func NewStorageError(op string, step int, err error) *StorageError {
	return &StorageError{Op: op, Step: step, Err: err}
}

// IsStorageError reports whether err is (or wraps) a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
