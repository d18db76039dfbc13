// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestBuilderBuild(t *testing.T) {
	t.Run("valid schema", func(t *testing.T) {
		minor := NewField("minor", Integer)
		major := NewField("major", Integer).LinkNext(minor)

		s, err := NewBuilder("simple").
			Root(major).
			Add(minor, "point").
			Build()
		require.NoError(t, err)
		require.Equal(t, "simple", s.Name())
		require.Equal(t, major, s.RootField())

		want := []string{"major", "minor"}
		if diff := cmp.Diff(want, s.FieldNames()); diff != "" {
			t.Errorf("Field names mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("empty name", func(t *testing.T) {
		_, err := NewBuilder("").Root(NewField("major", Integer)).Build()
		require.Equal(t, ErrEmptyName, err)
	})
	t.Run("no root", func(t *testing.T) {
		_, err := NewBuilder("simple").Add(NewField("major", Integer)).Build()
		require.Equal(t, ErrNoRoot, err)
	})
	t.Run("nil field", func(t *testing.T) {
		_, err := NewBuilder("simple").Add(nil).Build()
		require.Equal(t, ErrNilField, err)
	})
	t.Run("duplicate field name", func(t *testing.T) {
		_, err := NewBuilder("simple").
			Root(NewField("major", Integer)).
			Add(NewField("Major", Integer)).
			Build()
		require.Equal(t, DuplicateNameError{Name: "Major"}, err)
	})
	t.Run("alias colliding with field name", func(t *testing.T) {
		_, err := NewBuilder("simple").
			Root(NewField("major", Integer)).
			Add(NewField("minor", Integer), "MAJOR").
			Build()
		require.Equal(t, DuplicateNameError{Name: "MAJOR"}, err)
	})
	t.Run("re-adding a field appends aliases", func(t *testing.T) {
		major := NewField("major", Integer)
		s, err := NewBuilder("simple").
			Root(major).
			Add(major, "primary").
			Build()
		require.NoError(t, err)
		require.Equal(t, []string{"major"}, s.FieldNames())

		f, ok := s.Field("primary")
		require.True(t, ok)
		require.Equal(t, major, f)
	})
}

func TestSchemaLookup(t *testing.T) {
	tiny := NewField("tiny", Integer)
	minor := NewField("minor", Integer).LinkNext(tiny)
	major := NewField("major", Integer).LinkNext(minor)

	s, err := NewBuilder("simple").
		Root(major).
		Add(minor).
		Add(tiny, "patch", "Point").
		Build()
	require.NoError(t, err)

	testCases := []struct {
		name      string
		lookup    string
		canonical string
		found     bool
	}{
		{"exact field name", "major", "major", true},
		{"case-insensitive field name", "MAJOR", "major", true},
		{"exact alias", "patch", "tiny", true},
		{"case-insensitive alias", "POINT", "tiny", true},
		{"unknown name", "build", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			canonical, ok := s.CanonicalName(tc.lookup)
			if ok != tc.found || canonical != tc.canonical {
				t.Errorf("Unexpected canonical name. got (%q, %v); want (%q, %v)", canonical, ok, tc.canonical, tc.found)
			}

			f, ok := s.Field(tc.lookup)
			if ok != tc.found {
				t.Errorf("Unexpected lookup result. got %v; want %v", ok, tc.found)
			}
			if tc.found && f.Name() != tc.canonical {
				t.Errorf("Unexpected field. got %q; want %q", f.Name(), tc.canonical)
			}
		})
	}
}
