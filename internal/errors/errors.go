package errors

import (
	"errors"
	"fmt"
)

var (
	NotFound     = errors.New("not found")
	BadRequest   = errors.New("bad request")
	Unauthorized = errors.New("unauthorized")
)

// Error carries a message that is safe to show to the client.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.kind
}

func NotFoundf(format string, args ...interface{}) error {
	return &Error{kind: NotFound, msg: fmt.Sprintf(format, args...)}
}

func BadRequestf(format string, args ...interface{}) error {
	return &Error{kind: BadRequest, msg: fmt.Sprintf(format, args...)}
}

func Unauthorizedf(format string, args ...interface{}) error {
	return &Error{kind: Unauthorized, msg: fmt.Sprintf(format, args...)}
}

// Message returns the client-facing text of err, or fallback when err does not carry one.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) {
		return e.msg
	}
	return fallback
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}
