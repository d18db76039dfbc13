// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package schema

import (
	"fmt"
	"strings"
)

// A Schema is a frozen description of a version scheme: its named fields and
// the conditional chain that orders them. Build one with a Builder. A Schema
// is immutable and safe for concurrent use.
type Schema struct {
	name   string
	root   *Field
	order  []*Field
	exact  map[string]*Field
	folded map[string]*Field
}

// Name returns the schema's name.
func (s *Schema) Name() string { return s.name }

// RootField returns the first field of the schema's chain.
func (s *Schema) RootField() *Field { return s.root }

// FieldNames returns the names of all declared fields in declaration order.
func (s *Schema) FieldNames() []string {
	out := make([]string, 0, len(s.order))
	for _, f := range s.order {
		out = append(out, f.Name())
	}
	return out
}

// CanonicalName resolves a field name or alias to the declared field name.
// Exact matches win; otherwise matching is case-insensitive. The second
// return value is false when the schema declares no such field or alias.
func (s *Schema) CanonicalName(name string) (string, bool) {
	if f, ok := s.exact[name]; ok {
		return f.Name(), true
	}
	if f, ok := s.folded[strings.ToLower(name)]; ok {
		return f.Name(), true
	}
	return "", false
}

// Field returns the declared field for a name or alias. The second return
// value is false when the schema declares no such field or alias.
func (s *Schema) Field(name string) (*Field, bool) {
	if f, ok := s.exact[name]; ok {
		return f, true
	}
	if f, ok := s.folded[strings.ToLower(name)]; ok {
		return f, true
	}
	return nil, false
}

// String returns a debug representation of the schema.
func (s *Schema) String() string {
	return fmt.Sprintf("schema(%s: %s)", s.name, strings.Join(s.FieldNames(), ", "))
}
