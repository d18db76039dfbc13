// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package schemaver

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-stack/stack"
)

// ErrNilFormat is returned when a nil Format is given to a constructor,
// converter, or registry.
var ErrNilFormat = errors.New("format is nil")

// ErrNilValue is returned when a nil *Value is given to a Format or
// Conversion.
var ErrNilValue = errors.New("value is nil")

// InvalidInputError is returned by construction when the raw input is
// neither a name-to-value mapping nor a positional sequence.
type InvalidInputError struct {
	Input interface{}
}

// Error implements the error interface.
func (iie InvalidInputError) Error() string {
	return fmt.Sprintf("cannot construct a version value from %T", iie.Input)
}

// UnknownFormatError is returned when a format name has not been registered.
type UnknownFormatError struct {
	Name string
}

// Error implements the error interface.
func (ufe UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown format %q", ufe.Name)
}

// DuplicateFormatError is returned when a format name is registered twice.
type DuplicateFormatError struct {
	Name string
}

// Error implements the error interface.
func (dfe DuplicateFormatError) Error() string {
	return fmt.Sprintf("format %q is already registered", dfe.Name)
}

// DuplicateConversionError is returned when a conversion between the same
// pair of schemas is registered twice.
type DuplicateConversionError struct {
	From string
	To   string
}

// Error implements the error interface.
func (dce DuplicateConversionError) Error() string {
	return fmt.Sprintf("conversion from schema %q to schema %q is already registered", dce.From, dce.To)
}

// UnparseError is returned when a Format cannot render a Value as text.
type UnparseError struct {
	Format string
	Err    error
	Stack  stack.CallStack
}

// NewUnparseError creates a new UnparseError with the current stack.
func NewUnparseError(format string, err error) UnparseError {
	return UnparseError{Format: format, Err: err, Stack: stack.Trace().TrimRuntime()}
}

// Error implements the error interface.
func (ue UnparseError) Error() string {
	return fmt.Sprintf("cannot unparse value with format %q: %v", ue.Format, ue.Err)
}

// Unwrap returns the underlying error.
func (ue UnparseError) Unwrap() error { return ue.Err }

// ErrorStack returns a string representing the stack at the point where the
// error occurred.
func (ue UnparseError) ErrorStack() string {
	s := bytes.NewBufferString(ue.Error())
	s.WriteString(": [")

	for i, call := range ue.Stack {
		if i != 0 {
			s.WriteString(", ")
		}

		// go vet doesn't like %k even though it's part of stack's API, so we move the format
		// string so it doesn't complain. (We also can't make it a constant, or go vet still
		// complains.)
		callFormat := "%k.%n %v"

		s.WriteString(fmt.Sprintf(callFormat, call, call, call))
	}

	s.WriteRune(']')

	return s.String()
}

// ConversionError is returned when a registered conversion between two
// schemas fails to transform a value.
type ConversionError struct {
	From string
	To   string
	Err  error
}

// Error implements the error interface.
func (ce ConversionError) Error() string {
	return fmt.Sprintf("cannot convert value from schema %q to schema %q: %v", ce.From, ce.To, ce.Err)
}

// Unwrap returns the underlying error.
func (ce ConversionError) Unwrap() error { return ce.Err }

// UnknownConversionError is returned when no direct conversion between two
// schemas is registered and no chained path through the standard schema
// exists.
type UnknownConversionError struct {
	From string
	To   string
}

// Error implements the error interface.
func (uce UnknownConversionError) Error() string {
	return fmt.Sprintf("no conversion from schema %q to schema %q", uce.From, uce.To)
}

// SchemaMismatchError is returned by ordering operations when two values
// cannot be aligned under one schema and their order is undecidable.
type SchemaMismatchError struct {
	Expected string
	Actual   string
}

// Error implements the error interface.
func (sme SchemaMismatchError) Error() string {
	return fmt.Sprintf("cannot order values: schema %q does not match %q", sme.Actual, sme.Expected)
}

// FieldTypeError is the panic value when a typed accessor is called on a
// field holding a different type.
type FieldTypeError struct {
	Method string
	Value  interface{}
}

// Error implements the error interface.
func (fte FieldTypeError) Error() string {
	return fmt.Sprintf("call of %s on %T field value", fte.Method, fte.Value)
}
