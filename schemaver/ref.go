// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package schemaver

import (
	"fmt"

	"github.com/schemaver/schemaver-go/schemaver/schema"
)

type refKind int

const (
	refInvalid refKind = iota
	refByField
	refByName
	refByIndex
)

// A FieldRef addresses one field of a Value, by schema field identity, by
// name or alias, or by position in the value's field path. The zero FieldRef
// addresses nothing. Lookups through a FieldRef never fail hard: a ref the
// value does not recognize reports absence.
type FieldRef struct {
	kind  refKind
	field *schema.Field
	name  string
	index int
}

// Name addresses a field by name or alias. The name is resolved through the
// schema's canonicalization, so aliases and case-folded spellings reach the
// same field.
func Name(name string) FieldRef {
	return FieldRef{kind: refByName, name: name}
}

// Index addresses a field by its position in the value's field path.
func Index(i int) FieldRef {
	return FieldRef{kind: refByIndex, index: i}
}

// ByField addresses a field by identity.
func ByField(f *schema.Field) FieldRef {
	return FieldRef{kind: refByField, field: f}
}

// String returns a debug representation of the ref.
func (r FieldRef) String() string {
	switch r.kind {
	case refByField:
		return fmt.Sprintf("field(%v)", r.field)
	case refByName:
		return fmt.Sprintf("name(%s)", r.name)
	case refByIndex:
		return fmt.Sprintf("index(%d)", r.index)
	default:
		return "invalid"
	}
}
