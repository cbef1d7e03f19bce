// Package apperr defines the error kinds shared by services and controllers.
package apperr

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindValidation    Kind = "validation"
	KindUpstream      Kind = "upstream"
	KindParse         Kind = "parse"
	KindNotFound      Kind = "not_found"
)

// Sentinels for errors.Is checks.
var (
	ErrConfiguration = &Error{Kind: KindConfiguration}
	ErrValidation    = &Error{Kind: KindValidation}
	ErrUpstream      = &Error{Kind: KindUpstream}
	ErrParse         = &Error{Kind: KindParse}
	ErrNotFound      = &Error{Kind: KindNotFound}
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	}
	return string(e.Kind) + " error"
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so sentinels compare by kind only.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func Configuration(msg string) error { return &Error{Kind: KindConfiguration, Msg: msg} }

func Validation(msg string) error { return &Error{Kind: KindValidation, Msg: msg} }

func Upstream(msg string, err error) error { return &Error{Kind: KindUpstream, Msg: msg, Err: err} }

func Parse(msg string, err error) error { return &Error{Kind: KindParse, Msg: msg, Err: err} }

func NotFound(msg string) error { return &Error{Kind: KindNotFound, Msg: msg} }

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConfiguration:
		return http.StatusServiceUnavailable
	case KindUpstream, KindParse:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
