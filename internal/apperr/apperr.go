// Package apperr defines the error taxonomy shared by all services and the
// HTTP layer. Services return *Error values; handlers translate them into
// status codes without inspecting message text.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindNotFound
	KindUnsupportedType
	KindTooLarge
	KindTooManyPages
	KindStorage
	KindService
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func BadRequest(msg string) *Error {
	return &Error{Kind: KindBadRequest, Msg: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

func UnsupportedType(msg string) *Error {
	return &Error{Kind: KindUnsupportedType, Msg: msg}
}

func TooLarge(msg string) *Error {
	return &Error{Kind: KindTooLarge, Msg: msg}
}

func TooManyPages(msg string) *Error {
	return &Error{Kind: KindTooManyPages, Msg: msg}
}

func Storage(msg string, err error) *Error {
	return &Error{Kind: KindStorage, Msg: msg, Err: err}
}

func Service(msg string, err error) *Error {
	return &Error{Kind: KindService, Msg: msg, Err: err}
}

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf reports the taxonomy kind of err, unwrapping as needed.
// Unclassified errors are treated as internal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error to the response status code. Upload validation
// failures are client errors; storage and upstream service failures are 500s.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindBadRequest, KindUnsupportedType, KindTooLarge, KindTooManyPages:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
