// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package schema

import (
	"errors"
	"fmt"
)

// ErrNilField is returned when a nil *Field is given to a Builder.
var ErrNilField = errors.New("field is nil")

// ErrNoRoot is returned by Build when no root field was declared.
var ErrNoRoot = errors.New("schema has no root field")

// ErrEmptyName is returned by Build when the schema name is empty.
var ErrEmptyName = errors.New("schema name is empty")

// InvalidKindError is used to panic when a Field is created with an unknown
// kind or a kind-specific method is called on the wrong kind.
type InvalidKindError struct {
	Name string
	Kind Kind
}

// Error implements the error interface.
func (ike InvalidKindError) Error() string {
	return fmt.Sprintf("invalid kind %v for field %q", ike.Kind, ike.Name)
}

// RawValueError is returned when a raw input cannot be canonicalized into a
// field's value type.
type RawValueError struct {
	Field string
	Raw   interface{}
}

// Error implements the error interface.
func (rve RawValueError) Error() string {
	return fmt.Sprintf("cannot canonicalize %v (%T) for field %q", rve.Raw, rve.Raw, rve.Field)
}

// UnknownSymbolError is returned when a value does not match any declared
// symbol of an Enum field.
type UnknownSymbolError struct {
	Field  string
	Symbol string
}

// Error implements the error interface.
func (use UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown symbol %q for field %q", use.Symbol, use.Field)
}

// DuplicateNameError is returned by Build when two fields, two aliases, or a
// field and an alias share a name, compared case-insensitively.
type DuplicateNameError struct {
	Name string
}

// Error implements the error interface.
func (dne DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate field name or alias %q", dne.Name)
}
