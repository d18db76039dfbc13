// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package schemaver

import "sync"

// ParamLossy is the conversion parameter that permits a conversion to drop
// information the target schema cannot express. Conversions that would lose
// information fail with a ConversionError unless it is set to true.
const ParamLossy = "lossy"

// A Conversion transforms a Value from one schema's shape into another's.
// The mapping between two specific schemas is supplied by the scheme
// packages that register it; the engine only dispatches and chains.
type Conversion interface {
	ConvertValue(v *Value, to Format, params map[string]interface{}) (*Value, error)
}

// ConversionFunc adapts a function to the Conversion interface.
type ConversionFunc func(v *Value, to Format, params map[string]interface{}) (*Value, error)

// ConvertValue implements the Conversion interface.
func (fn ConversionFunc) ConvertValue(v *Value, to Format, params map[string]interface{}) (*Value, error) {
	return fn(v, to, params)
}

type conversionKey struct {
	from string
	to   string
}

// A ConverterRegistry is a process-wide table of conversions keyed by schema
// name pairs. The zero value is not usable; create one with
// NewConverterRegistry. A ConverterRegistry is safe for concurrent use.
type ConverterRegistry struct {
	mu    sync.RWMutex
	convs map[conversionKey]Conversion
}

// NewConverterRegistry creates an empty ConverterRegistry.
func NewConverterRegistry() *ConverterRegistry {
	return &ConverterRegistry{convs: make(map[conversionKey]Conversion)}
}

// Register adds a conversion from one schema name to another. It returns a
// DuplicateConversionError if the pair already has one.
func (r *ConverterRegistry) Register(fromSchema, toSchema string, c Conversion) error {
	key := conversionKey{from: fromSchema, to: toSchema}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.convs[key]; ok {
		return DuplicateConversionError{From: fromSchema, To: toSchema}
	}
	r.convs[key] = c
	return nil
}

// Lookup returns the conversion registered for the schema name pair. The
// second return value is false when none is registered.
func (r *ConverterRegistry) Lookup(fromSchema, toSchema string) (Conversion, bool) {
	key := conversionKey{from: fromSchema, to: toSchema}
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.convs[key]
	return c, ok
}

// DefaultConverterRegistry is the ConverterRegistry used by Value.Convert.
// Version scheme packages register their conversions here from init.
var DefaultConverterRegistry = NewConverterRegistry()

// RegisterConversion adds a conversion to the DefaultConverterRegistry.
func RegisterConversion(fromSchema, toSchema string, c Conversion) error {
	return DefaultConverterRegistry.Register(fromSchema, toSchema, c)
}

// MustRegisterConversion adds a conversion to the DefaultConverterRegistry.
// It panics if registration fails, and is intended for use from package init
// functions.
func MustRegisterConversion(fromSchema, toSchema string, c Conversion) {
	if err := RegisterConversion(fromSchema, toSchema, c); err != nil {
		panic(err)
	}
}

// Convert produces an equivalent Value under the target format. It uses the
// DefaultConverterRegistry and, when chaining through the standard schema,
// the DefaultFormatRegistry.
//
// A target sharing the receiver's format returns the receiver. A target
// sharing the receiver's schema is reconstructed directly from the value
// mapping. Otherwise a registered conversion between the two schemas is
// applied, or a two-hop path through the standard schema when no direct
// conversion exists. Convert returns an UnknownConversionError when neither
// path is available and a ConversionError when a conversion step fails.
func (v *Value) Convert(to Format, params map[string]interface{}) (*Value, error) {
	return v.ConvertWithRegistries(DefaultConverterRegistry, DefaultFormatRegistry, to, params)
}

// ConvertWithRegistries behaves like Convert using explicit registries.
func (v *Value) ConvertWithRegistries(convs *ConverterRegistry, formats *FormatRegistry, to Format, params map[string]interface{}) (*Value, error) {
	if to == nil {
		return nil, ErrNilFormat
	}
	if to == v.format {
		return v, nil
	}

	fromName := v.Schema().Name()
	toName := to.Schema().Name()
	if v.Schema() == to.Schema() || fromName == toName {
		return New(v.ValueMap(), to)
	}

	if conv, ok := convs.Lookup(fromName, toName); ok {
		return runConversion(conv, v, to, params)
	}
	if fromName == StandardSchemaName || toName == StandardSchemaName {
		// One endpoint is the chaining hub itself, so there is no
		// two-hop path left to try.
		return nil, UnknownConversionError{From: fromName, To: toName}
	}

	toStandard, ok := convs.Lookup(fromName, StandardSchemaName)
	if !ok {
		return nil, UnknownConversionError{From: fromName, To: toName}
	}
	fromStandard, ok := convs.Lookup(StandardSchemaName, toName)
	if !ok {
		return nil, UnknownConversionError{From: fromName, To: toName}
	}
	standard, ok := formats.Lookup(StandardSchemaName)
	if !ok {
		return nil, UnknownConversionError{From: fromName, To: toName}
	}

	mid, err := runConversion(toStandard, v, standard, params)
	if err != nil {
		return nil, err
	}
	return runConversion(fromStandard, mid, to, params)
}

func runConversion(conv Conversion, v *Value, to Format, params map[string]interface{}) (*Value, error) {
	out, err := conv.ConvertValue(v, to, params)
	if err == nil {
		return out, nil
	}
	switch err.(type) {
	case ConversionError, UnknownConversionError:
		return nil, err
	}
	return nil, ConversionError{From: v.Schema().Name(), To: to.Schema().Name(), Err: err}
}
