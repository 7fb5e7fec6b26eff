// Package apperr carries the error taxonomy surfaced by the service layer.
// Handlers switch on the kind rather than matching error strings, so
// transports can map NotFound and InvalidOperation to distinct statuses.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	// KindNotFound means a referenced entity id does not exist.
	KindNotFound Kind = "not_found"
	// KindInvalid means a business rule was violated by caller input.
	KindInvalid Kind = "invalid_operation"
)

type Error struct {
	Kind   Kind
	Entity string // entity name for not-found errors, empty otherwise
	Msg    string
}

func (e *Error) Error() string {
	return e.Msg
}

// NotFound reports that the named entity with the given id does not exist.
func NotFound(entity string, id any) *Error {
	return &Error{
		Kind:   KindNotFound,
		Entity: entity,
		Msg:    fmt.Sprintf("%s with id %v not found", entity, id),
	}
}

// NotFoundf reports a missing entity located by something other than an id.
func NotFoundf(entity, format string, args ...any) *Error {
	return &Error{
		Kind:   KindNotFound,
		Entity: entity,
		Msg:    fmt.Sprintf(format, args...),
	}
}

// Invalid reports a business-rule violation.
func Invalid(format string, args ...any) *Error {
	return &Error{
		Kind: KindInvalid,
		Msg:  fmt.Sprintf(format, args...),
	}
}

func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindNotFound
}

func IsInvalid(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindInvalid
}
