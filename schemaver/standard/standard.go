// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package standard defines the general-purpose version scheme: up to four
// numeric fields, then a release type whose prerelease branches carry their
// own counter and whose final branch carries a patchlevel. It reads texts
// like "2.0", "1.2.3.1", "1.9.2dev2", "1.2.3b4", "1.2.3-rc2", "1.8.7p72"
// and "6u21".
//
// Importing the package registers the scheme's format, so a blank import is
// enough to reach it through schemaver.Parse. The scheme is also the hub
// that chained conversions between other schemes pass through.
package standard

import (
	"github.com/schemaver/schemaver-go/schemaver"
	"github.com/schemaver/schemaver-go/schemaver/delimiter"
	"github.com/schemaver/schemaver-go/schemaver/schema"
)

// SchemaName is the name the scheme's schema and format register under. It
// equals schemaver.StandardSchemaName, making this scheme the conversion
// hub.
const SchemaName = "standard"

// Field names of the standard schema.
const (
	FieldMajor              = "major"
	FieldMinor              = "minor"
	FieldPatch              = "patch"
	FieldTweak              = "tweak"
	FieldReleaseType        = "release_type"
	FieldDevelopmentVersion = "development_version"
	FieldAlphaVersion       = "alpha_version"
	FieldBetaVersion        = "beta_version"
	FieldRCVersion          = "rc_version"
	FieldPatchlevel         = "patchlevel"
	FieldPatchlevelMinor    = "patchlevel_minor"
)

// Release type symbols, in bump order. Bumping rc yields final; final is a
// bump fixed point.
const (
	ReleaseTypeDevelopment = "development"
	ReleaseTypeAlpha       = "alpha"
	ReleaseTypeBeta        = "beta"
	ReleaseTypeRC          = "rc"
	ReleaseTypeFinal       = "final"
)

var (
	sch    = buildSchema()
	format = buildFormat(sch)
)

func init() {
	schemaver.MustRegisterFormat(format)
}

func buildSchema() *schema.Schema {
	patchlevelMinor := schema.NewField(FieldPatchlevelMinor, schema.Integer)
	patchlevel := schema.NewField(FieldPatchlevel, schema.Integer).
		LinkNext(patchlevelMinor)
	developmentVersion := schema.NewField(FieldDevelopmentVersion, schema.Integer).SetDefault(1)
	alphaVersion := schema.NewField(FieldAlphaVersion, schema.Integer).SetDefault(1)
	betaVersion := schema.NewField(FieldBetaVersion, schema.Integer).SetDefault(1)
	rcVersion := schema.NewField(FieldRCVersion, schema.Integer).SetDefault(1)

	releaseType := schema.NewField(FieldReleaseType, schema.Enum).
		AddSymbol(ReleaseTypeDevelopment).
		AddSymbol(ReleaseTypeAlpha).
		AddSymbol(ReleaseTypeBeta).
		AddSymbol(ReleaseTypeRC).
		AddSymbol(ReleaseTypeFinal).
		SetDefault(ReleaseTypeFinal).
		SetBump(ReleaseTypeDevelopment, ReleaseTypeAlpha).
		SetBump(ReleaseTypeAlpha, ReleaseTypeBeta).
		SetBump(ReleaseTypeBeta, ReleaseTypeRC).
		SetBump(ReleaseTypeRC, ReleaseTypeFinal).
		LinkNextByValue(map[string]*schema.Field{
			ReleaseTypeDevelopment: developmentVersion,
			ReleaseTypeAlpha:       alphaVersion,
			ReleaseTypeBeta:        betaVersion,
			ReleaseTypeRC:          rcVersion,
		}, patchlevel)

	tweak := schema.NewField(FieldTweak, schema.Integer).LinkNext(releaseType)
	patch := schema.NewField(FieldPatch, schema.Integer).LinkNext(tweak)
	minor := schema.NewField(FieldMinor, schema.Integer).LinkNext(patch)
	major := schema.NewField(FieldMajor, schema.Integer).LinkNext(minor)

	s, err := schema.NewBuilder(SchemaName).
		Root(major).
		Add(minor).
		Add(patch, "tiny").
		Add(tweak, "tiny2").
		Add(releaseType).
		Add(developmentVersion).
		Add(alphaVersion).
		Add(betaVersion).
		Add(rcVersion).
		Add(patchlevel).
		Add(patchlevelMinor).
		Build()
	if err != nil {
		panic(err)
	}
	return s
}

func buildFormat(sch *schema.Schema) *delimiter.Format {
	layouts := []delimiter.FieldLayout{
		{Field: FieldMajor},
		{Field: FieldMinor, Delim: ".", Optional: true},
		{Field: FieldPatch, Delim: ".", Optional: true},
		{Field: FieldTweak, Delim: ".", Optional: true},
		{Field: FieldReleaseType, AltDelims: []string{"-", ".", "_"}, Detached: true,
			Styles: map[string][]string{
				ReleaseTypeDevelopment: {"d", "dev"},
				ReleaseTypeAlpha:       {"a", "alpha"},
				ReleaseTypeBeta:        {"b", "beta"},
				ReleaseTypeRC:          {"rc"},
				ReleaseTypeFinal:       {""},
			}},
		{Field: FieldDevelopmentVersion, AltDelims: []string{"-", "."}, Optional: true},
		{Field: FieldAlphaVersion, AltDelims: []string{"-", "."}, Optional: true},
		{Field: FieldBetaVersion, AltDelims: []string{"-", "."}, Optional: true},
		{Field: FieldRCVersion, AltDelims: []string{"-", "."}, Optional: true},
		{Field: FieldPatchlevel, Delim: "p", AltDelims: []string{"-p", "-", "u"}, Optional: true, Detached: true},
		{Field: FieldPatchlevelMinor, Delim: ".", Optional: true},
	}
	f, err := delimiter.New(SchemaName, sch, layouts)
	if err != nil {
		panic(err)
	}
	return f
}

// Schema returns the standard schema.
func Schema() *schema.Schema { return sch }

// Format returns the standard scheme's registered format.
func Format() schemaver.Format { return format }

// New constructs a standard value from a name-to-value mapping or a
// positional sequence. A nil input yields the all-defaults value.
func New(input interface{}) (*schemaver.Value, error) {
	return schemaver.New(input, format)
}

// Parse reads a standard version text.
func Parse(text string) (*schemaver.Value, error) {
	return format.Parse(text, nil)
}

// MustParse reads a standard version text. It panics if the text does not
// parse.
func MustParse(text string) *schemaver.Value {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

// ReleaseType returns the release type symbol of a standard value, or the
// empty string when v is not a standard value.
func ReleaseType(v *schemaver.Value) string {
	if v == nil || v.Schema() != sch {
		return ""
	}
	rt, _ := v.StringValueOK(schemaver.Name(FieldReleaseType))
	return rt
}

// IsPrerelease reports whether a standard value sits before its final
// release: its release type is development, alpha, beta or rc.
func IsPrerelease(v *schemaver.Value) bool {
	rt := ReleaseType(v)
	return rt != "" && rt != ReleaseTypeFinal
}
