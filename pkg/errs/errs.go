package errs

import (
	"errors"
	"fmt"
)

// Err represents an expected error whose message is safe to show to the user.
// Validation failures and unavailable rates are expected errors, transport failures are not.
type Err struct { //nolint:errname
	Message string `json:"message"`
}

var _ error = (*Err)(nil)

// New creates a new custom error with the given message.
func New(message string) *Err {
	return &Err{Message: message}
}

// Newf creates a new custom error with formatted message.
func Newf(format string, args ...any) *Err {
	return &Err{Message: fmt.Sprintf(format, args...)}
}

func (e *Err) Error() string {
	return e.Message
}

// IsExpected checks if the given error is of custom Err type or wraps one.
func IsExpected(err error) bool {
	var target *Err
	return errors.As(err, &target)
}
