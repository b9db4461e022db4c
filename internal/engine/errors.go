package engine

import (
	"errors"
	"fmt"
)

// Error kinds. Compare with errors.Is.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrInsufficientResource = errors.New("insufficient resource")
	ErrNotFound             = errors.New("not found")
)

// ActionError is a failed precondition. The state is left untouched when
// an action returns one.
type ActionError struct {
	Kind    error
	Message string
}

func (e *ActionError) Error() string {
	return e.Message
}

func (e *ActionError) Unwrap() error {
	return e.Kind
}

func invalidInput(format string, args ...any) error {
	return &ActionError{Kind: ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func insufficient(format string, args ...any) error {
	return &ActionError{Kind: ErrInsufficientResource, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) error {
	return &ActionError{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}
