package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation signals caller input that violates a precondition.
	// Never sent over the wire.
	ErrValidation = errors.New("validation failed")
	// ErrAuthentication signals a rejected connect handshake.
	ErrAuthentication = errors.New("authentication failed")
	// ErrNotFound signals a missing collection.
	ErrNotFound = errors.New("not found")
	// ErrTransport signals a failed request or a non-success HTTP status.
	ErrTransport = errors.New("transport error")
)

// AuthenticationError wraps ErrAuthentication with the server-provided detail.
type AuthenticationError struct {
	StatusCode int
	Detail     string
}

func (e *AuthenticationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: status %d", ErrAuthentication.Error(), e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", ErrAuthentication.Error(), e.StatusCode, e.Detail)
}

func (e *AuthenticationError) Unwrap() error { return ErrAuthentication }

// NotFoundError wraps ErrNotFound with the collection name.
type NotFoundError struct {
	Collection string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("collection %q does not exist: %s", e.Collection, ErrNotFound.Error())
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// TransportError wraps ErrTransport with the HTTP status and body.
// StatusCode is 0 when no response was received; Err then holds the cause.
type TransportError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s %s: %v", ErrTransport.Error(), e.Method, e.Path, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s %s: status %d: %v", ErrTransport.Error(), e.Method, e.Path, e.StatusCode, e.Err)
	}
	if len(e.Body) == 0 {
		return fmt.Sprintf("%s: %s %s: status %d", ErrTransport.Error(), e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s %s: status %d: %s",
		ErrTransport.Error(), e.Method, e.Path, e.StatusCode, string(e.Body))
}

// Unwrap exposes both ErrTransport and the underlying cause, if any.
func (e *TransportError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTransport}
	}
	return []error{ErrTransport, e.Err}
}

// NewValidationError wraps ErrValidation with a message.
func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}
