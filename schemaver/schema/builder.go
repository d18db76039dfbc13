// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package schema

import "strings"

// A Builder assembles a Schema. Declare every field the chain can reach with
// Add, mark the first field with Root, then call Build. Builders are not
// safe for concurrent use; the Schema a Builder produces is.
type Builder struct {
	name    string
	root    *Field
	order   []*Field
	aliases map[*Field][]string
	err     error
}

// NewBuilder creates a Builder for a schema with the given name. Schema
// names identify conversions between version schemes, so two schemes that
// should interconvert must not share a name.
func NewBuilder(name string) *Builder {
	return &Builder{name: name, aliases: make(map[*Field][]string)}
}

// Add declares a field, with optional alternate names it can be addressed
// by. Adding the same *Field twice only appends aliases.
func (b *Builder) Add(f *Field, aliases ...string) *Builder {
	if f == nil {
		if b.err == nil {
			b.err = ErrNilField
		}
		return b
	}
	if _, ok := b.aliases[f]; !ok {
		b.order = append(b.order, f)
		b.aliases[f] = nil
	}
	b.aliases[f] = append(b.aliases[f], aliases...)
	return b
}

// Root declares a field, like Add, and marks it as the first field of the
// schema's chain.
func (b *Builder) Root(f *Field, aliases ...string) *Builder {
	b.Add(f, aliases...)
	b.root = f
	return b
}

// Build validates the declared fields and returns a frozen Schema. Names and
// aliases must be unique under case folding, the schema must be named, and a
// root must be set.
func (b *Builder) Build() (*Schema, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.name == "" {
		return nil, ErrEmptyName
	}
	if b.root == nil {
		return nil, ErrNoRoot
	}

	s := &Schema{
		name:   b.name,
		root:   b.root,
		order:  make([]*Field, len(b.order)),
		exact:  make(map[string]*Field, len(b.order)),
		folded: make(map[string]*Field, len(b.order)),
	}
	copy(s.order, b.order)

	for _, f := range b.order {
		if err := s.index(f, f.Name()); err != nil {
			return nil, err
		}
	}
	for _, f := range b.order {
		for _, alias := range b.aliases[f] {
			if err := s.index(f, alias); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

func (s *Schema) index(f *Field, name string) error {
	if name == "" {
		return ErrEmptyName
	}
	key := strings.ToLower(name)
	if _, ok := s.folded[key]; ok {
		return DuplicateNameError{Name: name}
	}
	s.exact[name] = f
	s.folded[key] = f
	return nil
}
