package models

import "errors"

// ErrValidation is wrapped by every model validation failure.
var ErrValidation = errors.New("validation failed")

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return ErrValidation }

func errValidation(msg string) error {
	return &validationError{msg: msg}
}
