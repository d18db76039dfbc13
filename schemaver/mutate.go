// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package schemaver

// Bump returns a Value with the addressed field advanced to its next value.
// The fields before the bumped one keep their values; everything after is
// re-derived from defaults, because the bumped value can change which fields
// follow it in the chain.
//
// Bump returns the receiver unchanged when the ref addresses no field of
// this value, or when the field's next value equals the current one.
func (v *Value) Bump(ref FieldRef) *Value {
	f, i, ok := v.resolveRef(ref)
	if !ok {
		return v
	}
	current := v.values[f.Name()]
	bumped := f.BumpValue(current)
	if f.Compare(current, bumped) == 0 {
		return v
	}
	return v.rebuildPrefix(i, bumped)
}

// Reset returns a Value with the addressed field set back to its schema
// default. As with Bump, fields after the reset one are re-derived from
// defaults. Reset returns the receiver unchanged when the ref addresses no
// field of this value.
func (v *Value) Reset(ref FieldRef) *Value {
	f, i, ok := v.resolveRef(ref)
	if !ok {
		return v
	}
	def, err := f.Canonicalize(nil)
	if err != nil {
		panic(err)
	}
	return v.rebuildPrefix(i, def)
}

// Change returns a Value with the overrides merged into the existing field
// values by name, re-resolved through construction. Because resolution
// re-walks the conditional chain, one override can change which other fields
// the result has. Override keys the schema does not recognize are dropped
// silently. Unparse parameter overrides are merged entry by entry into the
// remembered parameters.
func (v *Value) Change(overrides map[string]interface{}, unparseOverrides map[string]interface{}) (*Value, error) {
	merged := v.ValueMap()
	sch := v.Schema()
	for k, raw := range overrides {
		if canonical, ok := sch.CanonicalName(k); ok {
			merged[canonical] = raw
		}
	}
	return newFromParts(v.format, merged, nil, mergeParams(v.uparams, unparseOverrides))
}

// rebuildPrefix reconstructs the value from the first i path fields'
// current values followed by replacement at position i. Values are already
// canonical and replacements come from field behaviors, so a canonicalize
// failure here means a broken custom bumper; that panics rather than
// returning an error every caller would have to thread through.
func (v *Value) rebuildPrefix(i int, replacement interface{}) *Value {
	prefix := make([]interface{}, i+1)
	for j := 0; j < i; j++ {
		prefix[j] = v.values[v.path[j].Name()]
	}
	prefix[i] = replacement

	nv, err := newFromParts(v.format, nil, prefix, v.uparams)
	if err != nil {
		panic(err)
	}
	return nv
}
