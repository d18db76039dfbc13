// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package schemaver

import (
	"sort"
	"sync"

	"github.com/schemaver/schemaver-go/schemaver/schema"
)

// StandardSchemaName is the name of the canonical intermediate schema.
// Conversions with no direct registration are chained through it.
const StandardSchemaName = "standard"

// A Format pairs a Schema with text behavior: it parses text into a Value
// and renders a Value back to text. Implementations must be safe for
// concurrent use.
//
// Parse should remember formatting choices it observed (delimiters, zero
// padding, omitted optional fields) in the returned Value's unparse
// parameters so that unparsing reproduces the original text. Unparse
// receives the value's remembered parameters merged beneath the caller's
// explicit ones.
type Format interface {
	// FormatName returns the name the format is registered under.
	FormatName() string
	// Schema returns the schema whose values this format reads and writes.
	Schema() *schema.Schema
	// Parse converts text into a Value under this format's schema.
	Parse(text string, params map[string]interface{}) (*Value, error)
	// Unparse renders a Value as text. The value's schema must be this
	// format's schema.
	Unparse(v *Value, params map[string]interface{}) (string, error)
}

// A FormatRegistry is a process-wide table of named formats. The zero value
// is not usable; create one with NewFormatRegistry. A FormatRegistry is safe
// for concurrent use.
type FormatRegistry struct {
	mu      sync.RWMutex
	formats map[string]Format
}

// NewFormatRegistry creates an empty FormatRegistry.
func NewFormatRegistry() *FormatRegistry {
	return &FormatRegistry{formats: make(map[string]Format)}
}

// Register adds a format under its FormatName. It returns a
// DuplicateFormatError if the name is taken.
func (r *FormatRegistry) Register(f Format) error {
	if f == nil {
		return ErrNilFormat
	}
	name := f.FormatName()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.formats[name]; ok {
		return DuplicateFormatError{Name: name}
	}
	r.formats[name] = f
	return nil
}

// Lookup returns the format registered under name. The second return value
// is false when no format has that name.
func (r *FormatRegistry) Lookup(name string) (Format, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.formats[name]
	return f, ok
}

// Names returns the names of all registered formats, sorted.
func (r *FormatRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.formats))
	for name := range r.formats {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// DefaultFormatRegistry is the FormatRegistry used by the package-level
// format functions and by Convert when chaining through the standard schema.
// Version scheme packages register their formats here from init.
var DefaultFormatRegistry = NewFormatRegistry()

// RegisterFormat adds a format to the DefaultFormatRegistry.
func RegisterFormat(f Format) error {
	return DefaultFormatRegistry.Register(f)
}

// MustRegisterFormat adds a format to the DefaultFormatRegistry. It panics
// if registration fails, and is intended for use from package init
// functions.
func MustRegisterFormat(f Format) {
	if err := RegisterFormat(f); err != nil {
		panic(err)
	}
}

// LookupFormat returns a format from the DefaultFormatRegistry.
func LookupFormat(name string) (Format, bool) {
	return DefaultFormatRegistry.Lookup(name)
}

// FormatNames returns the names registered in the DefaultFormatRegistry,
// sorted.
func FormatNames() []string {
	return DefaultFormatRegistry.Names()
}

// Parse parses text with the named format from the DefaultFormatRegistry.
// It returns an UnknownFormatError if no such format is registered.
func Parse(formatName, text string, params map[string]interface{}) (*Value, error) {
	f, ok := LookupFormat(formatName)
	if !ok {
		return nil, UnknownFormatError{Name: formatName}
	}
	return f.Parse(text, params)
}

// MustParse parses text with the named format from the
// DefaultFormatRegistry. It panics if the format is unknown or the text does
// not parse.
func MustParse(formatName, text string) *Value {
	v, err := Parse(formatName, text, nil)
	if err != nil {
		panic(err)
	}
	return v
}
