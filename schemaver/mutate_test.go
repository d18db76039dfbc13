// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package schemaver

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValueBump(t *testing.T) {
	fmtSimple := newDotFormat("simple-bump", simpleSchema(t))
	fmtCond := newDotFormat("cond-bump", condSchema(t))

	t.Run("bumping re-derives the fields after the target", func(t *testing.T) {
		v, err := fmtSimple.Parse("1.4.2", nil)
		noerr(t, err)
		got, err := v.Bump(Name("minor")).Unparse(nil)
		noerr(t, err)
		if got != "1.5.0" {
			t.Errorf("Unexpected bumped version. got %q; want %q", got, "1.5.0")
		}
	})
	t.Run("bumping the last field keeps the rest", func(t *testing.T) {
		v, err := fmtSimple.Parse("1.4.2", nil)
		noerr(t, err)
		got, err := v.Bump(Name("patch")).Unparse(nil)
		noerr(t, err)
		if got != "1.4.3" {
			t.Errorf("Unexpected bumped version. got %q; want %q", got, "1.4.3")
		}
	})
	t.Run("bump accepts an index ref", func(t *testing.T) {
		v, err := fmtSimple.Parse("1.4.2", nil)
		noerr(t, err)
		got, err := v.Bump(Index(0)).Unparse(nil)
		noerr(t, err)
		if got != "2.0.0" {
			t.Errorf("Unexpected bumped version. got %q; want %q", got, "2.0.0")
		}
	})
	t.Run("bumping a conditional field reshapes the tail", func(t *testing.T) {
		v, err := New(map[string]interface{}{
			"major": 1, "minor": 2, "patch": 3, "release_type": "beta", "beta_version": 5,
		}, fmtCond)
		noerr(t, err)

		rc := v.Bump(Name("release_type"))
		wantNames := []string{"major", "minor", "patch", "release_type", "rc_version"}
		if diff := cmp.Diff(wantNames, rc.FieldNames()); diff != "" {
			t.Errorf("Field names mismatch (-want +got):\n%s", diff)
		}
		wantVals := []interface{}{1, 2, 3, "rc", 1}
		if diff := cmp.Diff(wantVals, rc.Values()); diff != "" {
			t.Errorf("Values mismatch (-want +got):\n%s", diff)
		}

		final := rc.Bump(Name("release_type"))
		wantNames = []string{"major", "minor", "patch", "release_type", "patchlevel"}
		if diff := cmp.Diff(wantNames, final.FieldNames()); diff != "" {
			t.Errorf("Field names mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("bump fixed point returns the receiver", func(t *testing.T) {
		v, err := New(map[string]interface{}{"release_type": "final"}, fmtCond)
		noerr(t, err)
		if got := v.Bump(Name("release_type")); got != v {
			t.Errorf("Expected the identical value back. got %p; want %p", got, v)
		}
	})
	t.Run("bump of an unrecognized ref returns the receiver", func(t *testing.T) {
		v, err := fmtSimple.Parse("1.4.2", nil)
		noerr(t, err)
		if got := v.Bump(Name("build")); got != v {
			t.Errorf("Expected the identical value back. got %p; want %p", got, v)
		}
		if got := v.Bump(Index(9)); got != v {
			t.Errorf("Expected the identical value back. got %p; want %p", got, v)
		}
	})
	t.Run("bump keeps unparse params", func(t *testing.T) {
		v, err := NewWithParams([]interface{}{1, 4, 2}, fmtSimple, map[string]interface{}{"pad": 2})
		noerr(t, err)
		got := v.Bump(Name("patch")).UnparseParams()
		if got["pad"] != 2 {
			t.Errorf("Unexpected unparse param. got %v; want %v", got["pad"], 2)
		}
	})
}

func TestValueReset(t *testing.T) {
	fmtSimple := newDotFormat("simple-reset", simpleSchema(t))
	fmtCond := newDotFormat("cond-reset", condSchema(t))

	t.Run("reset returns the field to its default", func(t *testing.T) {
		v, err := fmtSimple.Parse("1.4.2", nil)
		noerr(t, err)
		got, err := v.Reset(Name("minor")).Unparse(nil)
		noerr(t, err)
		if got != "1.0.0" {
			t.Errorf("Unexpected reset version. got %q; want %q", got, "1.0.0")
		}
	})
	t.Run("reset of a conditional field reshapes the tail", func(t *testing.T) {
		v, err := New(map[string]interface{}{"release_type": "beta", "beta_version": 5}, fmtCond)
		noerr(t, err)
		got := v.Reset(Name("release_type"))
		wantNames := []string{"major", "minor", "patch", "release_type", "patchlevel"}
		if diff := cmp.Diff(wantNames, got.FieldNames()); diff != "" {
			t.Errorf("Field names mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("reset of an unrecognized ref returns the receiver", func(t *testing.T) {
		v, err := fmtSimple.Parse("1.4.2", nil)
		noerr(t, err)
		if got := v.Reset(Name("build")); got != v {
			t.Errorf("Expected the identical value back. got %p; want %p", got, v)
		}
	})
}

func TestValueChange(t *testing.T) {
	fmtSimple := newDotFormat("simple-change", simpleSchema(t))
	fmtCond := newDotFormat("cond-change", condSchema(t))

	t.Run("change merges by name and keeps siblings", func(t *testing.T) {
		v, err := fmtSimple.Parse("1.4.2", nil)
		noerr(t, err)
		got, err := v.Change(map[string]interface{}{"minor": 9}, nil)
		noerr(t, err)
		s, err := got.Unparse(nil)
		noerr(t, err)
		if s != "1.9.2" {
			t.Errorf("Unexpected changed version. got %q; want %q", s, "1.9.2")
		}
	})
	t.Run("change re-resolves the conditional chain", func(t *testing.T) {
		v, err := New(map[string]interface{}{
			"major": 1, "release_type": "beta", "beta_version": 5,
		}, fmtCond)
		noerr(t, err)
		got, err := v.Change(map[string]interface{}{"release_type": "final"}, nil)
		noerr(t, err)
		wantNames := []string{"major", "minor", "patch", "release_type", "patchlevel"}
		if diff := cmp.Diff(wantNames, got.FieldNames()); diff != "" {
			t.Errorf("Field names mismatch (-want +got):\n%s", diff)
		}
		if _, ok := got.Get(Name("beta_version")); ok {
			t.Errorf("Expected beta_version to be gone after the change")
		}
	})
	t.Run("unrecognized override keys are dropped silently", func(t *testing.T) {
		v, err := fmtSimple.Parse("1.4.2", nil)
		noerr(t, err)
		got, err := v.Change(map[string]interface{}{"build": 9}, nil)
		noerr(t, err)
		if !got.Equal(v) {
			t.Errorf("Expected an equal value. got %v; want %v", got, v)
		}
	})
	t.Run("bad override values fail", func(t *testing.T) {
		v, err := fmtSimple.Parse("1.4.2", nil)
		noerr(t, err)
		if _, err := v.Change(map[string]interface{}{"minor": "nine-ish"}, nil); err == nil {
			t.Errorf("Expected a canonicalize failure")
		}
	})
	t.Run("unparse overrides merge into remembered params", func(t *testing.T) {
		v, err := NewWithParams([]interface{}{1, 4, 2}, fmtSimple, map[string]interface{}{"pad": 2, "sep": "."})
		noerr(t, err)
		got, err := v.Change(nil, map[string]interface{}{"pad": 4})
		noerr(t, err)
		params := got.UnparseParams()
		if params["pad"] != 4 || params["sep"] != "." {
			t.Errorf("Unexpected unparse params. got %v; want pad=4 sep=.", params)
		}
	})
}
