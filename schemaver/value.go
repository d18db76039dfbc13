// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package schemaver

import (
	"fmt"
	"strings"

	"github.com/schemaver/schemaver-go/schemaver/schema"
)

// A Value is an immutable snapshot of one version number: the concrete
// sequence of fields realized for this particular version and the
// canonicalized value of each. The sequence is not necessarily the schema's
// full field list, because a field's successor can depend on the field's own
// value.
//
// Values are created by construction (New, NewWithParams, a Format's Parse)
// or derived from an existing Value (Bump, Reset, Change, Convert). They are
// never modified afterward and are safe for concurrent use.
type Value struct {
	format  Format
	path    []*schema.Field
	values  map[string]interface{}
	uparams map[string]interface{}

	hash    uint64
	hashSet uint32
}

// Format returns the format that produced this value.
func (v *Value) Format() Format { return v.format }

// Schema returns the schema of the value's format.
func (v *Value) Schema() *schema.Schema { return v.format.Schema() }

// FieldPath returns the fields realized for this value, in order.
func (v *Value) FieldPath() []*schema.Field {
	out := make([]*schema.Field, len(v.path))
	copy(out, v.path)
	return out
}

// FieldNames returns the names of the fields realized for this value, in
// path order.
func (v *Value) FieldNames() []string {
	out := make([]string, 0, len(v.path))
	for _, f := range v.path {
		out = append(out, f.Name())
	}
	return out
}

// Values returns the field values in path order.
func (v *Value) Values() []interface{} {
	out := make([]interface{}, 0, len(v.path))
	for _, f := range v.path {
		out = append(out, v.values[f.Name()])
	}
	return out
}

// ValueMap returns the field values keyed by field name.
func (v *Value) ValueMap() map[string]interface{} {
	out := make(map[string]interface{}, len(v.values))
	for k, val := range v.values {
		out[k] = val
	}
	return out
}

// UnparseParams returns the formatting parameters remembered from parsing,
// or nil when there are none.
func (v *Value) UnparseParams() map[string]interface{} {
	if len(v.uparams) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(v.uparams))
	for k, val := range v.uparams {
		out[k] = val
	}
	return out
}

// HasField reports whether the ref addresses a field realized in this value.
func (v *Value) HasField(ref FieldRef) bool {
	_, _, ok := v.resolveRef(ref)
	return ok
}

// Get returns the value of the addressed field. The second return value is
// false when the ref addresses no field of this value.
func (v *Value) Get(ref FieldRef) (interface{}, bool) {
	f, _, ok := v.resolveRef(ref)
	if !ok {
		return nil, false
	}
	return v.values[f.Name()], true
}

// Int returns the addressed field's value as an int. It panics with a
// FieldTypeError if the field is absent or holds another type.
func (v *Value) Int(ref FieldRef) int {
	i, ok := v.IntOK(ref)
	if !ok {
		raw, _ := v.Get(ref)
		panic(FieldTypeError{Method: "schemaver.Value.Int", Value: raw})
	}
	return i
}

// IntOK is the same as Int, but returns a boolean instead of panicking.
func (v *Value) IntOK(ref FieldRef) (int, bool) {
	raw, ok := v.Get(ref)
	if !ok {
		return 0, false
	}
	i, ok := raw.(int)
	return i, ok
}

// StringValue returns the addressed field's value as a string. It panics
// with a FieldTypeError if the field is absent or holds another type.
func (v *Value) StringValue(ref FieldRef) string {
	s, ok := v.StringValueOK(ref)
	if !ok {
		raw, _ := v.Get(ref)
		panic(FieldTypeError{Method: "schemaver.Value.StringValue", Value: raw})
	}
	return s
}

// StringValueOK is the same as StringValue, but returns a boolean instead of
// panicking.
func (v *Value) StringValueOK(ref FieldRef) (string, bool) {
	raw, ok := v.Get(ref)
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	return s, ok
}

// Unparse renders the value as text through its format. The value's
// remembered unparse parameters are applied first and params override them
// entry by entry.
func (v *Value) Unparse(params map[string]interface{}) (string, error) {
	return v.format.Unparse(v, mergeParams(v.uparams, params))
}

// String renders the value as text, falling back to a structural debug
// representation when the format cannot unparse it.
func (v *Value) String() string {
	s, err := v.Unparse(nil)
	if err == nil {
		return s
	}
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(v.Schema().Name())
	for _, f := range v.path {
		fmt.Fprintf(&b, " %s=%v", f.Name(), v.values[f.Name()])
	}
	b.WriteByte(']')
	return b.String()
}

// resolveRef resolves a FieldRef against the value's field path, returning
// the field and its path position.
func (v *Value) resolveRef(ref FieldRef) (*schema.Field, int, bool) {
	switch ref.kind {
	case refByField:
		for i, f := range v.path {
			if f == ref.field {
				return f, i, true
			}
		}
	case refByIndex:
		if ref.index >= 0 && ref.index < len(v.path) {
			return v.path[ref.index], ref.index, true
		}
	case refByName:
		canonical, ok := v.Schema().CanonicalName(ref.name)
		if !ok {
			return nil, 0, false
		}
		for i, f := range v.path {
			if f.Name() == canonical {
				return f, i, true
			}
		}
	}
	return nil, 0, false
}

// mergeParams overlays overrides onto base without modifying either. It
// returns nil when both are empty.
func mergeParams(base, overrides map[string]interface{}) map[string]interface{} {
	if len(base) == 0 && len(overrides) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(base)+len(overrides))
	for k, val := range base {
		out[k] = val
	}
	for k, val := range overrides {
		out[k] = val
	}
	return out
}
