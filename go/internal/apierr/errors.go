package apierr

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mcdev12/gridiron/go/clients"
)

// Kind classifies a failure for presentation
type Kind string

const (
	KindValidation    Kind = "validation"
	KindUnauthorized  Kind = "unauthorized"
	KindForbidden     Kind = "forbidden"
	KindNotFound      Kind = "not_found"
	KindConflict      Kind = "conflict"
	KindUnprocessable Kind = "unprocessable"
	KindLeagueFull    Kind = "league_full"
	KindBusy          Kind = "busy"
	KindNetwork       Kind = "network"
	KindUnknown       Kind = "unknown"
)

// Error is the user facing error every flow returns
type Error struct {
	Kind    Kind
	Status  int
	Message string
	// Detail is the raw backend detail, if any
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind, so sentinel kinds can be used with errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is checks by kind
var (
	ErrValidation    = &Error{Kind: KindValidation}
	ErrUnauthorized  = &Error{Kind: KindUnauthorized}
	ErrForbidden     = &Error{Kind: KindForbidden}
	ErrNotFound      = &Error{Kind: KindNotFound}
	ErrConflict      = &Error{Kind: KindConflict}
	ErrUnprocessable = &Error{Kind: KindUnprocessable}
	ErrLeagueFull    = &Error{Kind: KindLeagueFull}
	ErrBusy          = &Error{Kind: KindBusy}
	ErrNetwork       = &Error{Kind: KindNetwork}
)

// Validation builds a client side validation error. These never reach the backend.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Validationf is Validation with formatting
func Validationf(format string, args ...interface{}) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

// KindOf returns the kind of err, classifying raw client errors on the way
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return classify(err).Kind
}

// UserMessage returns the text to show for err
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return Translate(err, Messages{}).Message
}

// classify maps a raw error from the HTTP layer onto a kind and status
func classify(err error) *Error {
	var apiErr *clients.APIError
	if errors.As(err, &apiErr) {
		e := &Error{Status: apiErr.StatusCode, Detail: apiErr.Detail, Err: err}
		switch apiErr.StatusCode {
		case http.StatusBadRequest:
			e.Kind = KindValidation
		case http.StatusUnauthorized:
			e.Kind = KindUnauthorized
		case http.StatusForbidden:
			e.Kind = KindForbidden
		case http.StatusNotFound:
			e.Kind = KindNotFound
		case http.StatusConflict:
			e.Kind = KindConflict
		case http.StatusUnprocessableEntity:
			e.Kind = KindUnprocessable
		default:
			e.Kind = KindUnknown
		}
		return e
	}

	if errors.Is(err, clients.ErrNetwork) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Error{Kind: KindNetwork, Err: err}
	}

	return &Error{Kind: KindUnknown, Err: err}
}
