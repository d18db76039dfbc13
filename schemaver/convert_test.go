// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package schemaver

import (
	"errors"
	"testing"

	"github.com/schemaver/schemaver-go/schemaver/schema"
)

// twoFieldSchema builds a two-integer chain so conversion tests can map
// fields across differently named schemas.
func twoFieldSchema(t *testing.T, name, first, second string) *schema.Schema {
	t.Helper()
	f2 := schema.NewField(second, schema.Integer)
	f1 := schema.NewField(first, schema.Integer).LinkNext(f2)
	s, err := schema.NewBuilder(name).Root(f1).Add(f2).Build()
	noerr(t, err)
	return s
}

// renameConversion maps the source's fields onto the target's by position.
func renameConversion(t *testing.T) ConversionFunc {
	t.Helper()
	return func(v *Value, to Format, params map[string]interface{}) (*Value, error) {
		names := to.Schema().FieldNames()
		vals := v.Values()
		input := make(map[string]interface{}, len(vals))
		for i, val := range vals {
			if i >= len(names) {
				break
			}
			input[names[i]] = val
		}
		return New(input, to)
	}
}

func TestValueConvert(t *testing.T) {
	fmtA := newDotFormat("scheme-a", twoFieldSchema(t, "scheme-a", "a1", "a2"))
	fmtB := newDotFormat("scheme-b", twoFieldSchema(t, "scheme-b", "b1", "b2"))
	fmtStd := newDotFormat(StandardSchemaName, twoFieldSchema(t, StandardSchemaName, "major", "minor"))

	mkA := func(t *testing.T) *Value {
		t.Helper()
		v, err := New([]interface{}{3, 7}, fmtA)
		noerr(t, err)
		return v
	}

	t.Run("same format returns the receiver", func(t *testing.T) {
		v := mkA(t)
		got, err := v.ConvertWithRegistries(NewConverterRegistry(), NewFormatRegistry(), fmtA, nil)
		noerr(t, err)
		if got != v {
			t.Errorf("Expected the identical value back. got %p; want %p", got, v)
		}
	})
	t.Run("same schema rebuilds under the new format", func(t *testing.T) {
		v, err := NewWithParams([]interface{}{3, 7}, fmtA, map[string]interface{}{"pad": 2})
		noerr(t, err)
		other := newDotFormat("scheme-a-alt", fmtA.Schema())
		got, err := v.ConvertWithRegistries(NewConverterRegistry(), NewFormatRegistry(), other, nil)
		noerr(t, err)
		if got.Format() != other {
			t.Errorf("Unexpected format. got %v; want %v", got.Format().FormatName(), other.FormatName())
		}
		if !got.Equal(v) {
			t.Errorf("Expected an equal value. got %v; want %v", got, v)
		}
		if got.UnparseParams() != nil {
			t.Errorf("Expected format-specific params to be dropped. got %v", got.UnparseParams())
		}
	})
	t.Run("direct conversion", func(t *testing.T) {
		convs := NewConverterRegistry()
		noerr(t, convs.Register("scheme-a", "scheme-b", renameConversion(t)))

		got, err := mkA(t).ConvertWithRegistries(convs, NewFormatRegistry(), fmtB, nil)
		noerr(t, err)
		if got.Schema().Name() != "scheme-b" {
			t.Errorf("Unexpected schema. got %q; want %q", got.Schema().Name(), "scheme-b")
		}
		if got.Int(Name("b1")) != 3 || got.Int(Name("b2")) != 7 {
			t.Errorf("Unexpected converted values. got %v; want [3 7]", got.Values())
		}
	})
	t.Run("two-hop conversion through the standard schema", func(t *testing.T) {
		convs := NewConverterRegistry()
		noerr(t, convs.Register("scheme-a", StandardSchemaName, renameConversion(t)))
		noerr(t, convs.Register(StandardSchemaName, "scheme-b", renameConversion(t)))
		formats := NewFormatRegistry()
		noerr(t, formats.Register(fmtStd))

		got, err := mkA(t).ConvertWithRegistries(convs, formats, fmtB, nil)
		noerr(t, err)
		if got.Schema().Name() != "scheme-b" {
			t.Errorf("Unexpected schema. got %q; want %q", got.Schema().Name(), "scheme-b")
		}
		if got.Int(Name("b1")) != 3 || got.Int(Name("b2")) != 7 {
			t.Errorf("Unexpected converted values. got %v; want [3 7]", got.Values())
		}
	})
	t.Run("no path fails with UnknownConversionError", func(t *testing.T) {
		testCases := []struct {
			name  string
			setup func(*ConverterRegistry, *FormatRegistry)
		}{
			{"nothing registered", func(*ConverterRegistry, *FormatRegistry) {}},
			{
				"only the first hop",
				func(convs *ConverterRegistry, _ *FormatRegistry) {
					noerr(t, convs.Register("scheme-a", StandardSchemaName, renameConversion(t)))
				},
			},
			{
				"only the second hop",
				func(convs *ConverterRegistry, _ *FormatRegistry) {
					noerr(t, convs.Register(StandardSchemaName, "scheme-b", renameConversion(t)))
				},
			},
			{
				"both hops but no standard format",
				func(convs *ConverterRegistry, _ *FormatRegistry) {
					noerr(t, convs.Register("scheme-a", StandardSchemaName, renameConversion(t)))
					noerr(t, convs.Register(StandardSchemaName, "scheme-b", renameConversion(t)))
				},
			},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				convs, formats := NewConverterRegistry(), NewFormatRegistry()
				tc.setup(convs, formats)
				_, err := mkA(t).ConvertWithRegistries(convs, formats, fmtB, nil)
				want := UnknownConversionError{From: "scheme-a", To: "scheme-b"}
				if err != want {
					t.Errorf("Unexpected error. got %v; want %v", err, want)
				}
			})
		}
	})
	t.Run("no chaining out of the standard schema", func(t *testing.T) {
		v, err := New([]interface{}{1, 2}, fmtStd)
		noerr(t, err)
		_, err = v.ConvertWithRegistries(NewConverterRegistry(), NewFormatRegistry(), fmtB, nil)
		want := UnknownConversionError{From: StandardSchemaName, To: "scheme-b"}
		if err != want {
			t.Errorf("Unexpected error. got %v; want %v", err, want)
		}
	})
	t.Run("conversion failures wrap into ConversionError", func(t *testing.T) {
		convs := NewConverterRegistry()
		boom := errors.New("boom")
		noerr(t, convs.Register("scheme-a", "scheme-b", ConversionFunc(
			func(*Value, Format, map[string]interface{}) (*Value, error) { return nil, boom },
		)))

		_, err := mkA(t).ConvertWithRegistries(convs, NewFormatRegistry(), fmtB, nil)
		ce, ok := err.(ConversionError)
		if !ok || ce.From != "scheme-a" || ce.To != "scheme-b" || !errors.Is(err, boom) {
			t.Errorf("Unexpected error. got %v; want a ConversionError wrapping %v", err, boom)
		}
	})
	t.Run("typed conversion failures pass through", func(t *testing.T) {
		convs := NewConverterRegistry()
		want := ConversionError{From: "scheme-a", To: "scheme-b", Err: errors.New("lossy")}
		noerr(t, convs.Register("scheme-a", "scheme-b", ConversionFunc(
			func(*Value, Format, map[string]interface{}) (*Value, error) { return nil, want },
		)))

		_, err := mkA(t).ConvertWithRegistries(convs, NewFormatRegistry(), fmtB, nil)
		if err != want {
			t.Errorf("Unexpected error. got %v; want %v", err, want)
		}
	})
	t.Run("nil target format", func(t *testing.T) {
		_, err := mkA(t).Convert(nil, nil)
		if err != ErrNilFormat {
			t.Errorf("Unexpected error. got %v; want %v", err, ErrNilFormat)
		}
	})
	t.Run("default registries", func(t *testing.T) {
		fmtX := newDotFormat("convdefault-x", twoFieldSchema(t, "convdefault-x", "x1", "x2"))
		fmtY := newDotFormat("convdefault-y", twoFieldSchema(t, "convdefault-y", "y1", "y2"))
		MustRegisterFormat(fmtX)
		MustRegisterFormat(fmtY)
		MustRegisterConversion("convdefault-x", "convdefault-y", renameConversion(t))

		v, err := New([]interface{}{5, 6}, fmtX)
		noerr(t, err)
		got, err := v.Convert(fmtY, nil)
		noerr(t, err)
		if got.Int(Name("y1")) != 5 || got.Int(Name("y2")) != 6 {
			t.Errorf("Unexpected converted values. got %v; want [5 6]", got.Values())
		}
	})
}
