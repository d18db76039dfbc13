// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package schemaver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/schemaver/schemaver-go/schemaver/schema"
)

func noerr(t *testing.T, err error) {
	if err != nil {
		t.Helper()
		t.Errorf("Unexpected error: %v", err)
		t.FailNow()
	}
}

// simpleSchema is an unconditional major.minor.patch chain of integers.
func simpleSchema(t *testing.T) *schema.Schema {
	t.Helper()
	patch := schema.NewField("patch", schema.Integer)
	minor := schema.NewField("minor", schema.Integer).LinkNext(patch)
	major := schema.NewField("major", schema.Integer).LinkNext(minor)
	s, err := schema.NewBuilder("simple").
		Root(major).
		Add(minor).
		Add(patch, "tiny").
		Build()
	noerr(t, err)
	return s
}

// condSchema extends the simple chain with a release type whose value
// selects the tail: prerelease types get their own version counter, final
// gets a patchlevel.
func condSchema(t *testing.T) *schema.Schema {
	t.Helper()
	patchlevel := schema.NewField("patchlevel", schema.Integer)
	betaVersion := schema.NewField("beta_version", schema.Integer).SetDefault(1)
	rcVersion := schema.NewField("rc_version", schema.Integer).SetDefault(1)
	release := schema.NewField("release_type", schema.Enum).
		AddSymbol("beta").AddSymbol("rc").AddSymbol("final").
		SetDefault("final").
		SetBump("beta", "rc").SetBump("rc", "final").
		LinkNextByValue(map[string]*schema.Field{
			"beta": betaVersion,
			"rc":   rcVersion,
		}, patchlevel)
	patch := schema.NewField("patch", schema.Integer).LinkNext(release)
	minor := schema.NewField("minor", schema.Integer).LinkNext(patch)
	major := schema.NewField("major", schema.Integer).LinkNext(minor)
	s, err := schema.NewBuilder("conditional").
		Root(major).
		Add(minor).
		Add(patch).
		Add(release).
		Add(betaVersion).
		Add(rcVersion).
		Add(patchlevel).
		Build()
	noerr(t, err)
	return s
}

// dotFormat renders values by joining field values with dots and parses
// dotted integers positionally. Unparsing fails when the "fail" parameter is
// set, so tests can drive the fallback paths.
type dotFormat struct {
	name string
	sch  *schema.Schema
}

func newDotFormat(name string, sch *schema.Schema) *dotFormat {
	return &dotFormat{name: name, sch: sch}
}

func (f *dotFormat) FormatName() string     { return f.name }
func (f *dotFormat) Schema() *schema.Schema { return f.sch }

func (f *dotFormat) Parse(text string, params map[string]interface{}) (*Value, error) {
	parts := strings.Split(text, ".")
	vals := make([]interface{}, 0, len(parts))
	for _, p := range parts {
		i, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("segment %q is not a number", p)
		}
		vals = append(vals, i)
	}
	return NewWithParams(vals, f, params)
}

func (f *dotFormat) Unparse(v *Value, params map[string]interface{}) (string, error) {
	if fail, _ := params["fail"].(bool); fail {
		return "", NewUnparseError(f.name, errors.New("forced failure"))
	}
	segs := make([]string, 0, len(v.FieldPath()))
	for _, val := range v.Values() {
		segs = append(segs, fmt.Sprint(val))
	}
	return strings.Join(segs, "."), nil
}
