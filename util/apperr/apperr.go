// Package apperr carries the error kinds shared by all services.
// Controllers switch on Code(err) to pick a response status.
package apperr

import (
	"errors"
	"fmt"
)

type ErrCode string

const (
	ErrNotFound       ErrCode = "NOT_FOUND"
	ErrForbidden      ErrCode = "FORBIDDEN"
	ErrInvalidRange   ErrCode = "INVALID_DURATION"
	ErrUnavailable    ErrCode = "ITEM_UNAVAILABLE"
	ErrSelfBooking    ErrCode = "SELF_BOOKING"
	ErrAlreadyDecided ErrCode = "ALREADY_DECIDED"
	ErrInvalidState   ErrCode = "INVALID_STATE"
	ErrDuplicateEmail ErrCode = "DUPLICATE_EMAIL"
	ErrInvalidInput   ErrCode = "INVALID_INPUT"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() ErrCode { return e.code }

func New(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

func Newf(c ErrCode, format string, args ...any) error {
	return codedError{code: c, msg: fmt.Sprintf(format, args...)}
}

// Code extracts the error code, or "" for plain errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}
