package service

import (
	"errors"
	"strings"
)

// ErrAuthRequired is returned when an operation needs a logged-in caller
// and there is none.
var ErrAuthRequired = errors.New("authentication required")

// ErrNotOwner is returned when the caller is authenticated but does not
// own the target resource. Handlers surface it exactly like ErrAuthRequired
// so ownership is never leaked.
var ErrNotOwner = errors.New("not the resource owner")

// ValidationError carries the ordered list of user-facing messages for
// re-display on the originating form.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
