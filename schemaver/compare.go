// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package schemaver

import (
	"fmt"
	"hash/fnv"
	"sync/atomic"
)

// Equal reports strict equality: the other value realizes the identical
// field path, field for field, and every field's value is equal under that
// field's own comparator. Formats and unparse parameters do not participate.
// A string operand is first parsed under the receiver's format; a string
// that does not parse is not equal. No schema conversion is attempted.
func (v *Value) Equal(other interface{}) bool {
	switch o := other.(type) {
	case *Value:
		if o == nil {
			return false
		}
		if len(v.path) != len(o.path) {
			return false
		}
		for i, f := range v.path {
			if o.path[i] != f {
				return false
			}
			if f.Compare(v.values[f.Name()], o.values[f.Name()]) != 0 {
				return false
			}
		}
		return true
	case string:
		parsed, err := v.format.Parse(o, nil)
		if err != nil {
			return false
		}
		return v.Equal(parsed)
	default:
		return false
	}
}

// Compare orders the receiver against another value, returning -1, 0, or 1.
//
// A string operand is parsed under the receiver's format. An operand under a
// different schema is first converted to the receiver's format; when parsing
// or conversion fails the order is undecidable and Compare returns a
// SchemaMismatchError. Once aligned, values are compared field by field
// along the receiver's path, most significant first, using each field's own
// comparator.
func (v *Value) Compare(other interface{}) (int, error) {
	o, err := v.align(other)
	if err != nil {
		return 0, err
	}
	for _, f := range v.path {
		bval, ok := o.values[f.Name()]
		if !ok {
			// The paths diverged ahead of a deciding field; measure
			// against the missing field's default.
			bval, err = f.Canonicalize(nil)
			if err != nil {
				return 0, SchemaMismatchError{Expected: v.Schema().Name(), Actual: o.Schema().Name()}
			}
		}
		if cmp := f.Compare(v.values[f.Name()], bval); cmp != 0 {
			return sign(cmp), nil
		}
	}
	return 0, nil
}

// EqualValue reports whether Compare finds the two values equal. Values
// whose order is undecidable are not equal.
func (v *Value) EqualValue(other interface{}) bool {
	cmp, err := v.Compare(other)
	return err == nil && cmp == 0
}

// Less reports whether the receiver orders before the other value. It
// returns a SchemaMismatchError when the order is undecidable.
func (v *Value) Less(other interface{}) (bool, error) {
	cmp, err := v.Compare(other)
	if err != nil {
		return false, err
	}
	return cmp < 0, nil
}

// Greater reports whether the receiver orders after the other value. It
// returns a SchemaMismatchError when the order is undecidable.
func (v *Value) Greater(other interface{}) (bool, error) {
	cmp, err := v.Compare(other)
	if err != nil {
		return false, err
	}
	return cmp > 0, nil
}

// align brings the other operand under the receiver's schema, parsing
// strings and converting foreign-schema values as needed.
func (v *Value) align(other interface{}) (*Value, error) {
	var o *Value
	switch op := other.(type) {
	case *Value:
		o = op
	case string:
		parsed, err := v.format.Parse(op, nil)
		if err != nil {
			return nil, SchemaMismatchError{Expected: v.Schema().Name(), Actual: fmt.Sprintf("unparsable string %q", op)}
		}
		o = parsed
	default:
		return nil, SchemaMismatchError{Expected: v.Schema().Name(), Actual: fmt.Sprintf("%T", other)}
	}
	if o == nil {
		return nil, SchemaMismatchError{Expected: v.Schema().Name(), Actual: "nil"}
	}
	if o.Schema() != v.Schema() && o.Schema().Name() != v.Schema().Name() {
		converted, err := o.Convert(v.format, nil)
		if err != nil {
			return nil, SchemaMismatchError{Expected: v.Schema().Name(), Actual: o.Schema().Name()}
		}
		o = converted
	}
	return o, nil
}

// Hash returns a hash code consistent with Equal: values that are equal
// hash identically. It is computed from the field path and field values on
// first use and memoized, which is safe because values never change.
func (v *Value) Hash() uint64 {
	if atomic.LoadUint32(&v.hashSet) == 1 {
		return atomic.LoadUint64(&v.hash)
	}
	h := fnv.New64a()
	for _, f := range v.path {
		fmt.Fprintf(h, "%s=%v;", f.Name(), v.values[f.Name()])
	}
	sum := h.Sum64()
	atomic.StoreUint64(&v.hash, sum)
	atomic.StoreUint32(&v.hashSet, 1)
	return sum
}

func sign(i int) int {
	switch {
	case i < 0:
		return -1
	case i > 0:
		return 1
	}
	return 0
}
