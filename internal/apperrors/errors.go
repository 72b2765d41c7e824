// Package apperrors holds the error kinds surfaced by the HTTP layer.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindAuth
	KindBackend
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	case KindBackend:
		return "backend"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error // cause, never sent to the client
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

var (
	ErrManvRequired   = Validation("manv required")
	ErrPINRequired    = Validation("pin required")
	ErrInvalidDate    = Validation("yyyy-mm-dd required")
	ErrBadRequest     = Validation("bad request")
	ErrUserNotFound   = NotFound("User not found")
	ErrInternalServer = &Error{Kind: KindBackend, Status: http.StatusInternalServerError, Message: "internal server error"}
)

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: msg}
}

// Auth is reported inside a 200 response, the code goes into "error".
func Auth(code string) *Error {
	return &Error{Kind: KindAuth, Status: http.StatusOK, Message: code}
}

// Backend hides the store error behind a generic message.
func Backend(err error) *Error {
	return &Error{Kind: KindBackend, Status: http.StatusInternalServerError, Message: "backend unavailable", Err: err}
}

func GetStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}

func GetMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ErrInternalServer.Message
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindBackend
}
