package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrFolioNotModifiable indicates a mutation was attempted on a folio that is
// finalized, closed, or voided. The call has no partial effect.
var ErrFolioNotModifiable = errors.New("folio cannot be modified")

// ErrInsufficientBalance indicates a transfer or similar operation exceeds the
// available balance of its source folio.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrConsistency indicates a stored invariant was found broken on read (for
// example assigned + unassigned not matching a payment's amount). It must be
// surfaced loudly, never silently corrected, because silent correction would
// hide the bug that produced it.
var ErrConsistency = errors.New("ledger consistency violation")

// AppError carries an HTTP-ish status code alongside a wrapped cause, the
// shape the repositories return for infrastructure failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps an underlying error with a status code and context message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError builds a 404 AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
