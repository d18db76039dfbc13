// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package rubygems defines a gem-style version scheme: up to eight numeric
// segments joined by dots, as in "1.8.7.72". The first two segments keep
// their usual names, the rest are numbered; there is no release type and no
// conditional branching.
//
// Importing the package registers the scheme's format and its conversions
// to and from the standard scheme. There is no direct conversion to other
// schemes; those resolve through the standard hub.
package rubygems

import (
	"github.com/pkg/errors"

	"github.com/schemaver/schemaver-go/schemaver"
	"github.com/schemaver/schemaver-go/schemaver/delimiter"
	"github.com/schemaver/schemaver-go/schemaver/schema"
	"github.com/schemaver/schemaver-go/schemaver/standard"
)

// SchemaName is the name the scheme's schema and format register under.
const SchemaName = "rubygems"

// Field names of the rubygems schema, in segment order.
const (
	FieldMajor    = "major"
	FieldMinor    = "minor"
	FieldSegment2 = "segment2"
	FieldSegment3 = "segment3"
	FieldSegment4 = "segment4"
	FieldSegment5 = "segment5"
	FieldSegment6 = "segment6"
	FieldSegment7 = "segment7"
)

// fieldNames lists the segments in order.
var fieldNames = []string{
	FieldMajor, FieldMinor, FieldSegment2, FieldSegment3,
	FieldSegment4, FieldSegment5, FieldSegment6, FieldSegment7,
}

var (
	sch    = buildSchema()
	format = buildFormat(sch)
)

func init() {
	schemaver.MustRegisterFormat(format)
	schemaver.MustRegisterConversion(SchemaName, standard.SchemaName, schemaver.ConversionFunc(toStandard))
	schemaver.MustRegisterConversion(standard.SchemaName, SchemaName, schemaver.ConversionFunc(fromStandard))
}

func buildSchema() *schema.Schema {
	fields := make([]*schema.Field, len(fieldNames))
	for i := len(fieldNames) - 1; i >= 0; i-- {
		fields[i] = schema.NewField(fieldNames[i], schema.Integer)
		if i < len(fieldNames)-1 {
			fields[i].LinkNext(fields[i+1])
		}
	}

	b := schema.NewBuilder(SchemaName).Root(fields[0])
	b.Add(fields[1])
	b.Add(fields[2], "patch")
	b.Add(fields[3], "tweak")
	for _, f := range fields[4:] {
		b.Add(f)
	}
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

func buildFormat(sch *schema.Schema) *delimiter.Format {
	layouts := make([]delimiter.FieldLayout, 0, len(fieldNames))
	for i, name := range fieldNames {
		layout := delimiter.FieldLayout{Field: name}
		if i > 0 {
			layout.Delim = "."
			layout.Optional = true
		}
		layouts = append(layouts, layout)
	}
	f, err := delimiter.New(SchemaName, sch, layouts)
	if err != nil {
		panic(err)
	}
	return f
}

func toStandard(v *schemaver.Value, to schemaver.Format, params map[string]interface{}) (*schemaver.Value, error) {
	lossy, _ := params[schemaver.ParamLossy].(bool)

	for _, name := range fieldNames[4:] {
		if n, _ := v.IntOK(schemaver.Name(name)); n != 0 && !lossy {
			return nil, errors.Errorf("segment %s=%d has no standard form", name, n)
		}
	}
	return schemaver.New(map[string]interface{}{
		standard.FieldMajor: v.Int(schemaver.Name(FieldMajor)),
		standard.FieldMinor: v.Int(schemaver.Name(FieldMinor)),
		standard.FieldPatch: v.Int(schemaver.Name(FieldSegment2)),
		standard.FieldTweak: v.Int(schemaver.Name(FieldSegment3)),
	}, to)
}

func fromStandard(v *schemaver.Value, to schemaver.Format, params map[string]interface{}) (*schemaver.Value, error) {
	lossy, _ := params[schemaver.ParamLossy].(bool)

	if rt := standard.ReleaseType(v); rt != standard.ReleaseTypeFinal {
		if !lossy {
			return nil, errors.Errorf("release type %q has no rubygems form", rt)
		}
	} else {
		patchlevel, _ := v.IntOK(schemaver.Name(standard.FieldPatchlevel))
		patchlevelMinor, _ := v.IntOK(schemaver.Name(standard.FieldPatchlevelMinor))
		if (patchlevel != 0 || patchlevelMinor != 0) && !lossy {
			return nil, errors.Errorf("patchlevel %d.%d has no rubygems form", patchlevel, patchlevelMinor)
		}
	}
	return schemaver.New(map[string]interface{}{
		FieldMajor:    v.Int(schemaver.Name(standard.FieldMajor)),
		FieldMinor:    v.Int(schemaver.Name(standard.FieldMinor)),
		FieldSegment2: v.Int(schemaver.Name(standard.FieldPatch)),
		FieldSegment3: v.Int(schemaver.Name(standard.FieldTweak)),
	}, to)
}

// Schema returns the rubygems schema.
func Schema() *schema.Schema { return sch }

// Format returns the rubygems scheme's registered format.
func Format() schemaver.Format { return format }

// New constructs a rubygems value from a name-to-value mapping or a
// positional sequence. A nil input yields the all-defaults value.
func New(input interface{}) (*schemaver.Value, error) {
	return schemaver.New(input, format)
}

// Parse reads a rubygems version text.
func Parse(text string) (*schemaver.Value, error) {
	return format.Parse(text, nil)
}

// MustParse reads a rubygems version text. It panics if the text does not
// parse.
func MustParse(text string) *schemaver.Value {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

// Segments returns all eight segments of a rubygems value in order, or nil
// for foreign values.
func Segments(v *schemaver.Value) []int {
	if v == nil || v.Schema() != sch {
		return nil
	}
	out := make([]int, 0, len(fieldNames))
	for _, name := range fieldNames {
		n, _ := v.IntOK(schemaver.Name(name))
		out = append(out, n)
	}
	return out
}
