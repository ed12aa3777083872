package services

import "errors"

// Kind classifies an application error for transport mapping.
type Kind int

const (
	KindAuthentication Kind = iota + 1 // 401
	KindAuthorization                  // 403
	KindNotFound                       // 404
	KindValidation                     // 400
	KindConflict                       // 400, duplicate-state message
	KindInternal                       // 500
)

// Error is the application error carried from services to handlers.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func ErrUnauthenticated(msg string) error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

func ErrForbidden(msg string) error {
	return &Error{Kind: KindAuthorization, Message: msg}
}

func ErrNotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func ErrValidation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func ErrConflict(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

func ErrInternal(msg string, cause error) error {
	return &Error{Kind: KindInternal, Message: msg, Err: cause}
}

// KindOf extracts the error kind, defaulting to internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf returns the client-safe message for an error. Internal causes are
// never exposed.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return "Internal Server Error"
}
