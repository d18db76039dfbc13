// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the built-in behavior set of a Field.
type Kind int

// These constants identify the built-in field kinds.
const (
	// Integer fields hold ints. The zero default is 0 and bumping
	// increments by one.
	Integer Kind = iota + 1
	// String fields hold free-form strings. Bumping is a fixed point
	// unless a custom bumper is set.
	String
	// Enum fields hold one symbol out of a declared, ordered set. Bumping
	// follows the declared successor table and is otherwise a fixed point.
	Enum
)

// String returns the string representation of the field kind's name.
func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case String:
		return "string"
	case Enum:
		return "enum"
	default:
		return "invalid"
	}
}

// A Field is one named, typed component of a version number. A Field knows
// its default value, how to canonicalize a raw value, how to compute the next
// value when bumped, how to order two of its values, and which Field follows
// it in the schema's chain given its own resolved value.
//
// Fields are referenced by identity: two Values agree on a field only when
// they hold the same *Field. Configure a Field fully before handing it to a
// Builder; Fields must not be modified once their Schema is built.
type Field struct {
	name string
	kind Kind
	def  interface{}

	canonicalizeFn func(interface{}) (interface{}, error)
	bumpFn         func(interface{}) interface{}
	compareFn      func(a, b interface{}) int
	nextFn         func(resolved interface{}) *Field

	symbols  []string
	ordinals map[string]int
	bumps    map[string]string
}

// NewField creates a Field of the given kind with the kind's default
// behaviors. Integer fields default to 0 and String fields to "". Enum
// fields default to their first declared symbol unless SetDefault is called.
func NewField(name string, kind Kind) *Field {
	f := &Field{name: name, kind: kind}
	switch kind {
	case Integer:
		f.def = 0
	case String:
		f.def = ""
	case Enum:
		f.ordinals = make(map[string]int)
		f.bumps = make(map[string]string)
	default:
		panic(InvalidKindError{Name: name, Kind: kind})
	}
	return f
}

// Name returns the field's name.
func (f *Field) Name() string { return f.name }

// Kind returns the field's kind.
func (f *Field) Kind() Kind { return f.kind }

// DefaultValue returns the value the field takes when construction input
// does not supply one.
func (f *Field) DefaultValue() interface{} { return f.def }

// Symbols returns the declared symbols of an Enum field in declaration
// order. It returns nil for other kinds.
func (f *Field) Symbols() []string {
	if f.kind != Enum {
		return nil
	}
	out := make([]string, len(f.symbols))
	copy(out, f.symbols)
	return out
}

// SetDefault sets the field's default value. The value is canonicalized on
// first use, not here, so symbols may be declared after the default.
func (f *Field) SetDefault(v interface{}) *Field {
	f.def = v
	return f
}

// AddSymbol declares the next symbol of an Enum field. Symbols are ordered
// by declaration: earlier symbols compare less than later ones. The first
// declared symbol becomes the default unless SetDefault was called. It
// panics if the field is not an Enum.
func (f *Field) AddSymbol(sym string) *Field {
	if f.kind != Enum {
		panic(InvalidKindError{Name: f.name, Kind: f.kind})
	}
	key := strings.ToLower(sym)
	if _, ok := f.ordinals[key]; ok {
		return f
	}
	f.ordinals[key] = len(f.symbols)
	f.symbols = append(f.symbols, sym)
	if f.def == nil {
		f.def = sym
	}
	return f
}

// SetBump declares that bumping an Enum field at symbol from yields symbol
// to. Symbols without an entry are bump fixed points. It panics if the field
// is not an Enum.
func (f *Field) SetBump(from, to string) *Field {
	if f.kind != Enum {
		panic(InvalidKindError{Name: f.name, Kind: f.kind})
	}
	f.bumps[strings.ToLower(from)] = to
	return f
}

// SetCanonicalizer replaces the kind's canonicalize behavior.
func (f *Field) SetCanonicalizer(fn func(raw interface{}) (interface{}, error)) *Field {
	f.canonicalizeFn = fn
	return f
}

// SetBumper replaces the kind's bump behavior.
func (f *Field) SetBumper(fn func(v interface{}) interface{}) *Field {
	f.bumpFn = fn
	return f
}

// SetComparator replaces the kind's ordering behavior. The function must
// return a negative, zero, or positive int for a<b, a==b, a>b.
func (f *Field) SetComparator(fn func(a, b interface{}) int) *Field {
	f.compareFn = fn
	return f
}

// LinkNext makes child follow this field unconditionally.
func (f *Field) LinkNext(child *Field) *Field {
	f.nextFn = func(interface{}) *Field { return child }
	return f
}

// LinkNextWhen installs a resolver that selects the following field from
// this field's resolved value. Returning nil ends the chain.
func (f *Field) LinkNextWhen(fn func(resolved interface{}) *Field) *Field {
	f.nextFn = fn
	return f
}

// LinkNextByValue selects the following field by this field's resolved value.
// Values without an entry continue with fallback, which may be nil to end
// the chain. Keys are matched case-insensitively for string values.
func (f *Field) LinkNextByValue(children map[string]*Field, fallback *Field) *Field {
	byKey := make(map[string]*Field, len(children))
	for k, v := range children {
		byKey[strings.ToLower(k)] = v
	}
	f.nextFn = func(resolved interface{}) *Field {
		if s, ok := resolved.(string); ok {
			if child, ok := byKey[strings.ToLower(s)]; ok {
				return child
			}
		}
		return fallback
	}
	return f
}

// Canonicalize converts a raw input into this field's value type. A nil raw
// value resolves to the field's default.
func (f *Field) Canonicalize(raw interface{}) (interface{}, error) {
	if raw == nil {
		raw = f.def
	}
	if f.canonicalizeFn != nil {
		return f.canonicalizeFn(raw)
	}
	switch f.kind {
	case Integer:
		return canonicalizeInt(f.name, raw)
	case String:
		return canonicalizeString(f.name, raw)
	case Enum:
		return f.canonicalizeSymbol(raw)
	}
	return nil, RawValueError{Field: f.name, Raw: raw}
}

// BumpValue computes the value one bump after v. Returning a value equal to
// v marks a bump fixed point.
func (f *Field) BumpValue(v interface{}) interface{} {
	if f.bumpFn != nil {
		return f.bumpFn(v)
	}
	switch f.kind {
	case Integer:
		if i, ok := v.(int); ok {
			return i + 1
		}
	case Enum:
		if s, ok := v.(string); ok {
			if to, ok := f.bumps[strings.ToLower(s)]; ok {
				return to
			}
		}
	}
	return v
}

// Compare orders two canonical values of this field, returning a negative,
// zero, or positive int.
func (f *Field) Compare(a, b interface{}) int {
	if f.compareFn != nil {
		return f.compareFn(a, b)
	}
	switch f.kind {
	case Integer:
		ai, aok := a.(int)
		bi, bok := b.(int)
		if aok && bok {
			switch {
			case ai < bi:
				return -1
			case ai > bi:
				return 1
			}
			return 0
		}
	case String:
		as, aok := a.(string)
		bs, bok := b.(string)
		if aok && bok {
			return strings.Compare(as, bs)
		}
	case Enum:
		ao, aok := f.ordinal(a)
		bo, bok := f.ordinal(b)
		if aok && bok {
			switch {
			case ao < bo:
				return -1
			case ao > bo:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// NextField returns the field that follows this one in the chain, given this
// field's resolved value. The second return value is false at the end of the
// chain.
func (f *Field) NextField(resolved interface{}) (*Field, bool) {
	if f.nextFn == nil {
		return nil, false
	}
	next := f.nextFn(resolved)
	if next == nil {
		return nil, false
	}
	return next, true
}

// String returns a debug representation of the field.
func (f *Field) String() string {
	return fmt.Sprintf("%s (%s)", f.name, f.kind)
}

func (f *Field) ordinal(v interface{}) (int, bool) {
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	ord, ok := f.ordinals[strings.ToLower(s)]
	return ord, ok
}

func (f *Field) canonicalizeSymbol(raw interface{}) (interface{}, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, RawValueError{Field: f.name, Raw: raw}
	}
	ord, ok := f.ordinals[strings.ToLower(s)]
	if !ok {
		return nil, UnknownSymbolError{Field: f.name, Symbol: s}
	}
	return f.symbols[ord], nil
}

func canonicalizeInt(name string, raw interface{}) (interface{}, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case uint:
		return int(v), nil
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float64:
		// YAML and JSON decoders hand numbers over as float64.
		if v == float64(int(v)) {
			return int(v), nil
		}
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err == nil {
			return i, nil
		}
	}
	return nil, RawValueError{Field: name, Raw: raw}
}

func canonicalizeString(name string, raw interface{}) (interface{}, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case fmt.Stringer:
		return v.String(), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10), nil
		}
	}
	return nil, RawValueError{Field: name, Raw: raw}
}
