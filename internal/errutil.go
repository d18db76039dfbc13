// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package internal

import "fmt"

// WrappedError is implemented by errors that carry a message and an inner
// cause.
type WrappedError interface {
	// Message gets the basic message of the error.
	Message() string
	// Inner gets the inner error if one exists.
	Inner() error
}

// RolledUpErrorMessage flattens a chain of WrappedErrors into one message.
func RolledUpErrorMessage(err error) string {
	if wrapped, ok := err.(WrappedError); ok {
		inner := wrapped.Inner()
		if inner != nil {
			return fmt.Sprintf("%s: %s", wrapped.Message(), RolledUpErrorMessage(inner))
		}
		return wrapped.Message()
	}
	return err.Error()
}

// WrapError wraps an error with a message.
func WrapError(inner error, message string) error {
	return &wrappedError{message, inner}
}

// WrapErrorf wraps an error with a formatted message.
func WrapErrorf(inner error, format string, args ...interface{}) error {
	return &wrappedError{fmt.Sprintf(format, args...), inner}
}

type wrappedError struct {
	message string
	inner   error
}

func (e *wrappedError) Message() string {
	return e.message
}

func (e *wrappedError) Error() string {
	return RolledUpErrorMessage(e)
}

func (e *wrappedError) Inner() error {
	return e.inner
}

// Unwrap supports errors.Is and errors.As.
func (e *wrappedError) Unwrap() error {
	return e.inner
}
