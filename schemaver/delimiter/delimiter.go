// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package delimiter

import (
	"fmt"
	"strings"

	"github.com/schemaver/schemaver-go/schemaver"
	"github.com/schemaver/schemaver-go/schemaver/schema"
)

// Format renders and parses version values as delimited text, one segment
// per schema field, driven entirely by per-field layouts. It implements
// schemaver.Format and is safe for concurrent use once built.
type Format struct {
	name    string
	sch     *schema.Schema
	layouts map[string]*fieldLayout
}

// New builds a Format for a schema from one layout per schema field. Every
// declared field needs a layout, enum layouts must spell every symbol, and
// no two layouts may claim one field.
func New(name string, sch *schema.Schema, decls []FieldLayout) (*Format, error) {
	f := &Format{
		name:    name,
		sch:     sch,
		layouts: make(map[string]*fieldLayout, len(decls)),
	}
	for _, decl := range decls {
		fl, err := compileLayout(sch, decl)
		if err != nil {
			return nil, err
		}
		name := fl.field.Name()
		if _, ok := f.layouts[name]; ok {
			return nil, LayoutError{Field: name, Reason: "declared twice"}
		}
		f.layouts[name] = fl
	}
	for _, name := range sch.FieldNames() {
		if _, ok := f.layouts[name]; !ok {
			return nil, LayoutError{Field: name, Reason: "no layout declared"}
		}
	}
	return f, nil
}

// FormatName returns the name the format registers under.
func (f *Format) FormatName() string { return f.name }

// Schema returns the schema whose values the format reads and writes.
func (f *Format) Schema() *schema.Schema { return f.sch }

// Parse reads text into a value by walking the schema's field chain,
// matching each field's delimiter and value in turn. The resolved value of
// each field selects the next field to match, so conditional tails parse
// naturally. Formatting choices, alternate delimiters, zero padding,
// alternate enum spellings, and which optional fields the text spelled out,
// are remembered in the value's unparse parameters so the original text and
// its precision survive unparsing, including through mutations. Explicit
// params override remembered ones.
func (f *Format) Parse(text string, params map[string]interface{}) (*schemaver.Value, error) {
	rest := text
	var positional []interface{}
	remembered := make(map[string]interface{})

	for field := f.sch.RootField(); field != nil; {
		fl := f.layouts[field.Name()]

		raw, seen, remaining, ok := fl.match(rest)
		if !ok && !fl.optional {
			return nil, ParseError{Text: text, Field: field.Name(), Rest: rest}
		}
		consumed := 0
		if ok {
			consumed = len(rest) - len(remaining)
			rest = remaining
			for k, v := range seen {
				remembered[k] = v
			}
		}

		resolved, err := field.Canonicalize(raw)
		if err != nil {
			return nil, err
		}
		if fl.optional && consumed > 0 {
			remembered[field.Name()+".present"] = true
		}
		positional = append(positional, resolved)

		next, hasNext := field.NextField(resolved)
		if !hasNext {
			break
		}
		field = next
	}

	if rest != "" {
		return nil, ParseError{Text: text, Rest: rest}
	}
	return schemaver.NewWithParams(positional, f, mergeParams(remembered, params))
}

// Unparse renders a value as text along its field path. Optional fields
// sitting at their default are dropped from the tail of the output unless
// the parameters mark them present. An optional field followed by printed
// fields is printed too, to keep the segments unambiguous, except when the
// next printed field's layout is detached.
func (f *Format) Unparse(v *schemaver.Value, params map[string]interface{}) (string, error) {
	if v == nil {
		return "", schemaver.NewUnparseError(f.name, schemaver.ErrNilValue)
	}
	if v.Schema() != f.sch {
		err := fmt.Errorf("value has schema %q, format renders %q", v.Schema().Name(), f.sch.Name())
		return "", schemaver.NewUnparseError(f.name, err)
	}

	path := v.FieldPath()
	values := v.Values()
	segments := make([]string, len(path))
	kept := make([]bool, len(path))

	// Walk the path backward. droppable starts true because trailing
	// segments have nothing after them to anchor, and is reset by each kept
	// segment according to whether its layout needs its predecessors.
	droppable := true
	for i := len(path) - 1; i >= 0; i-- {
		fl := f.layouts[path[i].Name()]
		segments[i] = fl.render(values[i], params)

		present, _ := params[path[i].Name()+".present"].(bool)
		omittable := segments[i] == "" || (fl.optional && !present && fl.isDefault(values[i]))
		if omittable && droppable {
			continue
		}
		kept[i] = true
		if segments[i] != "" {
			droppable = fl.detached
		}
	}

	var b strings.Builder
	for i, segment := range segments {
		if kept[i] {
			b.WriteString(segment)
		}
	}
	return b.String(), nil
}

func mergeParams(base, overrides map[string]interface{}) map[string]interface{} {
	if len(base) == 0 && len(overrides) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
