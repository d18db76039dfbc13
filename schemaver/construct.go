// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package schemaver

import (
	"github.com/schemaver/schemaver-go/schemaver/schema"
)

// New constructs a Value from raw input under a format.
//
// The input is either a map[string]interface{} keyed by field name or alias,
// a []interface{} assigning values positionally along the schema's field
// chain, or nil for a value of all defaults. Map keys the schema does not
// recognize are dropped silently. Any other input shape fails with an
// InvalidInputError.
//
// Construction walks the schema's field chain from the root: each field's
// raw value is taken from the input (absent or nil resolves to the field's
// default), canonicalized through the field, and recorded; the field's own
// resolved value then selects which field follows. Fields the walk does not
// visit are absent from the result entirely.
func New(input interface{}, f Format) (*Value, error) {
	return NewWithParams(input, f, nil)
}

// NewWithParams constructs a Value like New and attaches unparse parameters
// for the format to replay when rendering the value back to text.
func NewWithParams(input interface{}, f Format, unparseParams map[string]interface{}) (*Value, error) {
	if f == nil {
		return nil, ErrNilFormat
	}
	switch in := input.(type) {
	case nil:
		return newFromParts(f, nil, nil, unparseParams)
	case map[string]interface{}:
		byName := canonicalKeys(f.Schema(), in)
		return newFromParts(f, byName, nil, unparseParams)
	case []interface{}:
		return newFromParts(f, nil, in, unparseParams)
	default:
		return nil, InvalidInputError{Input: input}
	}
}

// canonicalKeys rewrites input keys to declared field names, dropping keys
// the schema does not recognize.
func canonicalKeys(sch *schema.Schema, input map[string]interface{}) map[string]interface{} {
	byName := make(map[string]interface{}, len(input))
	for k, raw := range input {
		if canonical, ok := sch.CanonicalName(k); ok {
			byName[canonical] = raw
		}
	}
	return byName
}

// newFromParts is the single construction path. Every derived value
// (mutation, conversion, deserialization) funnels through it, so the
// field-path invariant holds by construction: consecutive fields always
// satisfy the chain's next-field resolution.
func newFromParts(f Format, byName map[string]interface{}, positional []interface{}, unparseParams map[string]interface{}) (*Value, error) {
	sch := f.Schema()
	var path []*schema.Field
	values := make(map[string]interface{})

	pos := 0
	for field := sch.RootField(); field != nil; {
		var raw interface{}
		if byName != nil {
			raw = byName[field.Name()]
		} else if pos < len(positional) {
			raw = positional[pos]
			pos++
		}
		resolved, err := field.Canonicalize(raw)
		if err != nil {
			return nil, err
		}
		path = append(path, field)
		values[field.Name()] = resolved

		next, ok := field.NextField(resolved)
		if !ok {
			break
		}
		field = next
	}

	return &Value{
		format:  f,
		path:    path,
		values:  values,
		uparams: copyParams(unparseParams),
	}, nil
}

// copyParams returns a private copy of params, or nil when params is empty.
func copyParams(params map[string]interface{}) map[string]interface{} {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(params))
	for k, val := range params {
		out[k] = val
	}
	return out
}
