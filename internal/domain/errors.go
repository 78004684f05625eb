package domain

import (
	"errors"
	"fmt"

	"git.appkode.ru/pub/go/failure"
)

// AppError tags a storage or delivery failure with an errcodes code so the
// API, the worker and the bot can pick their answer without knowing the
// backend that produced it.
type AppError struct {
	Code    failure.ErrorCode
	Message string
	cause   error
}

func NewError(code failure.ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func WrapError(err error, code failure.ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, cause: err}
}

func (e *AppError) Error() string {
	if e.cause == nil {
		return e.Message
	}

	return fmt.Sprintf("%s: %v", e.Message, e.cause)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// GetCode returns the code of the outermost AppError in the chain.
func GetCode(err error) (failure.ErrorCode, bool) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return "", false
	}

	return appErr.Code, true
}

// HasCode reports whether the outermost AppError in the chain carries code.
func HasCode(err error, code failure.ErrorCode) bool {
	got, ok := GetCode(err)

	return ok && got == code
}
