// Package apperr defines the error taxonomy shared by all services. Errors
// carry a Kind instead of relying on message text, so handlers and tests can
// branch on the failure class.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Kind int

const (
	// Validation: missing required field, malformed payload.
	Validation Kind = iota + 1
	// NotFound: id lookup miss on an entity.
	NotFound
	// Persistence: constraint violation, connection failure, failed commit.
	Persistence
	// SyncNotFound: depot-inward sync found no invoice by either lookup path.
	SyncNotFound
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case Validation:
		return fiber.StatusBadRequest
	case NotFound, SyncNotFound:
		return fiber.StatusNotFound
	case Persistence:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}
