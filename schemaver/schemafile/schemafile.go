// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package schemafile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/schemaver/schemaver-go/internal"
	"github.com/schemaver/schemaver-go/schemaver"
	"github.com/schemaver/schemaver-go/schemaver/delimiter"
	"github.com/schemaver/schemaver-go/schemaver/schema"
)

// File is the top-level shape of a scheme definitions document.
type File struct {
	Schemes []Scheme `yaml:"schemes"`
}

// Scheme defines one version scheme: its fields, in chain order, and the
// text layout of each field.
type Scheme struct {
	Name    string   `yaml:"name"`
	Fields  []Field  `yaml:"fields"`
	Layouts []Layout `yaml:"layouts"`
}

// Field defines one schema field. Fields chain in declaration order unless a
// field names its successor with Then, selects it by value with Branches and
// Otherwise, or ends the chain with Stop.
type Field struct {
	Name      string            `yaml:"name"`
	Type      string            `yaml:"type"`
	Aliases   []string          `yaml:"aliases"`
	Default   interface{}       `yaml:"default"`
	Symbols   []Symbol          `yaml:"symbols"`
	Then      string            `yaml:"then"`
	Branches  map[string]string `yaml:"branches"`
	Otherwise string            `yaml:"otherwise"`
	Stop      bool              `yaml:"stop"`
}

// Symbol declares one value of an enum field and, optionally, the symbol a
// bump moves it to.
type Symbol struct {
	Value string `yaml:"value"`
	Bump  string `yaml:"bump"`
}

// Layout mirrors delimiter.FieldLayout.
type Layout struct {
	Field     string              `yaml:"field"`
	Delim     string              `yaml:"delim"`
	AltDelims []string            `yaml:"alt_delims"`
	Optional  bool                `yaml:"optional"`
	Detached  bool                `yaml:"detached"`
	Pattern   string              `yaml:"pattern"`
	Styles    map[string][]string `yaml:"styles"`
}

// Pack holds the formats compiled from one definitions document, in
// declaration order.
type Pack struct {
	names   []string
	formats map[string]*delimiter.Format
}

// Load reads and compiles a scheme definitions file.
func Load(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, internal.WrapError(err, "read scheme definitions")
	}
	pack, err := LoadBytes(data)
	if err != nil {
		return nil, internal.WrapErrorf(err, "load %s", path)
	}
	return pack, nil
}

// LoadBytes compiles a scheme definitions document.
func LoadBytes(data []byte) (*Pack, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, internal.WrapError(err, "parse scheme definitions")
	}
	if len(file.Schemes) == 0 {
		return nil, fmt.Errorf("no schemes defined")
	}

	p := &Pack{formats: make(map[string]*delimiter.Format, len(file.Schemes))}
	for _, def := range file.Schemes {
		if _, ok := p.formats[def.Name]; ok {
			return nil, fmt.Errorf("scheme %q defined twice", def.Name)
		}
		format, err := compileScheme(def)
		if err != nil {
			return nil, internal.WrapErrorf(err, "scheme %q", def.Name)
		}
		p.names = append(p.names, def.Name)
		p.formats[def.Name] = format
	}
	return p, nil
}

// Names returns the pack's scheme names in declaration order.
func (p *Pack) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Format returns the named scheme's format. The second return value reports
// whether the pack defines the scheme.
func (p *Pack) Format(name string) (*delimiter.Format, bool) {
	f, ok := p.formats[name]
	return f, ok
}

// Formats returns the pack's formats in declaration order.
func (p *Pack) Formats() []*delimiter.Format {
	out := make([]*delimiter.Format, 0, len(p.names))
	for _, name := range p.names {
		out = append(out, p.formats[name])
	}
	return out
}

// Register installs every format of the pack into reg. Formats registered
// before a failure stay registered.
func (p *Pack) Register(reg *schemaver.FormatRegistry) error {
	for _, name := range p.names {
		if err := reg.Register(p.formats[name]); err != nil {
			return err
		}
	}
	return nil
}

func compileScheme(def Scheme) (*delimiter.Format, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("scheme name is required")
	}
	if len(def.Fields) == 0 {
		return nil, fmt.Errorf("at least one field is required")
	}

	fields := make(map[string]*schema.Field, len(def.Fields))
	for _, fd := range def.Fields {
		if fd.Name == "" {
			return nil, fmt.Errorf("field name is required")
		}
		if _, ok := fields[fd.Name]; ok {
			return nil, fmt.Errorf("field %q defined twice", fd.Name)
		}
		f, err := compileField(fd)
		if err != nil {
			return nil, internal.WrapErrorf(err, "field %q", fd.Name)
		}
		fields[fd.Name] = f
	}

	if err := linkFields(def.Fields, fields); err != nil {
		return nil, err
	}

	b := schema.NewBuilder(def.Name).Root(fields[def.Fields[0].Name], def.Fields[0].Aliases...)
	for _, fd := range def.Fields[1:] {
		b.Add(fields[fd.Name], fd.Aliases...)
	}
	s, err := b.Build()
	if err != nil {
		return nil, err
	}

	decls := make([]delimiter.FieldLayout, 0, len(def.Layouts))
	for _, ld := range def.Layouts {
		decls = append(decls, delimiter.FieldLayout{
			Field:     ld.Field,
			Delim:     ld.Delim,
			AltDelims: ld.AltDelims,
			Optional:  ld.Optional,
			Detached:  ld.Detached,
			Pattern:   ld.Pattern,
			Styles:    ld.Styles,
		})
	}
	return delimiter.New(def.Name, s, decls)
}

func compileField(fd Field) (*schema.Field, error) {
	kind, err := fieldKind(fd.Type)
	if err != nil {
		return nil, err
	}
	if kind != schema.Enum && len(fd.Symbols) > 0 {
		return nil, fmt.Errorf("symbols apply only to enum fields")
	}
	if kind == schema.Enum && len(fd.Symbols) == 0 {
		return nil, fmt.Errorf("enum fields need at least one symbol")
	}

	f := schema.NewField(fd.Name, kind)
	declared := make(map[string]bool, len(fd.Symbols))
	for _, sym := range fd.Symbols {
		f.AddSymbol(sym.Value)
		declared[sym.Value] = true
	}
	for _, sym := range fd.Symbols {
		if sym.Bump == "" {
			continue
		}
		if !declared[sym.Bump] {
			return nil, fmt.Errorf("symbol %q bumps to undeclared symbol %q", sym.Value, sym.Bump)
		}
		f.SetBump(sym.Value, sym.Bump)
	}
	if fd.Default != nil {
		def, err := defaultFor(kind, fd.Default)
		if err != nil {
			return nil, err
		}
		f.SetDefault(def)
	}
	return f, nil
}

func linkFields(defs []Field, fields map[string]*schema.Field) error {
	for i, fd := range defs {
		f := fields[fd.Name]
		if fd.Stop && (fd.Then != "" || len(fd.Branches) > 0) {
			return fmt.Errorf("field %q declares stop alongside a successor", fd.Name)
		}
		if fd.Then != "" && len(fd.Branches) > 0 {
			return fmt.Errorf("field %q declares both then and branches", fd.Name)
		}
		if fd.Otherwise != "" && len(fd.Branches) == 0 {
			return fmt.Errorf("field %q declares otherwise without branches", fd.Name)
		}

		switch {
		case len(fd.Branches) > 0:
			if f.Kind() != schema.Enum {
				return fmt.Errorf("field %q branches but is not an enum", fd.Name)
			}
			targets := make(map[string]*schema.Field, len(fd.Branches))
			for symbol, name := range fd.Branches {
				t, ok := fields[name]
				if !ok {
					return fmt.Errorf("field %q branches to unknown field %q", fd.Name, name)
				}
				targets[symbol] = t
			}
			var fallback *schema.Field
			if fd.Otherwise != "" {
				t, ok := fields[fd.Otherwise]
				if !ok {
					return fmt.Errorf("field %q falls back to unknown field %q", fd.Name, fd.Otherwise)
				}
				fallback = t
			}
			f.LinkNextByValue(targets, fallback)
		case fd.Then != "":
			t, ok := fields[fd.Then]
			if !ok {
				return fmt.Errorf("field %q continues to unknown field %q", fd.Name, fd.Then)
			}
			f.LinkNext(t)
		case fd.Stop || i == len(defs)-1:
			// The chain ends here.
		default:
			f.LinkNext(fields[defs[i+1].Name])
		}
	}
	return nil
}

func fieldKind(name string) (schema.Kind, error) {
	switch name {
	case "integer":
		return schema.Integer, nil
	case "string":
		return schema.String, nil
	case "enum":
		return schema.Enum, nil
	}
	var zero schema.Kind
	return zero, fmt.Errorf("unknown field type %q", name)
}

func defaultFor(kind schema.Kind, raw interface{}) (interface{}, error) {
	switch kind {
	case schema.Integer:
		if n, ok := raw.(int); ok {
			return n, nil
		}
	case schema.String, schema.Enum:
		if s, ok := raw.(string); ok {
			return s, nil
		}
	}
	return nil, fmt.Errorf("default %v does not match the field type", raw)
}
