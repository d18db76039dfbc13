// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package semverish defines a semantic-versioning-like scheme: three numeric
// fields and a free-form prerelease suffix of dot-separated identifiers, as
// in "1.4.2-beta.3". It is lenient where semver is strict: minor and patch
// may be omitted, identifiers may carry leading zeros, and build metadata is
// not modeled.
//
// Importing the package registers the scheme's format and its conversions
// to and from the standard scheme, so values reach every other scheme that
// chains through standard.
package semverish

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/schemaver/schemaver-go/schemaver"
	"github.com/schemaver/schemaver-go/schemaver/delimiter"
	"github.com/schemaver/schemaver-go/schemaver/schema"
	"github.com/schemaver/schemaver-go/schemaver/standard"
)

// SchemaName is the name the scheme's schema and format register under.
const SchemaName = "semverish"

// Field names of the semverish schema.
const (
	FieldMajor      = "major"
	FieldMinor      = "minor"
	FieldPatch      = "patch"
	FieldPrerelease = "prerelease"
)

// prereleasePattern matches dot- or hyphen-joined alphanumeric identifiers.
const prereleasePattern = `[0-9A-Za-z]+(?:[.-][0-9A-Za-z]+)*`

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
	prerelease := schema.NewField(FieldPrerelease, schema.String).
		SetComparator(comparePrerelease).
		SetBumper(bumpPrerelease)
	patch := schema.NewField(FieldPatch, schema.Integer).LinkNext(prerelease)
	minor := schema.NewField(FieldMinor, schema.Integer).LinkNext(patch)
	major := schema.NewField(FieldMajor, schema.Integer).LinkNext(minor)

	s, err := schema.NewBuilder(SchemaName).
		Root(major).
		Add(minor).
		Add(patch).
		Add(prerelease, "pre").
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
		{Field: FieldPrerelease, Delim: "-", Optional: true, Pattern: prereleasePattern},
	}
	f, err := delimiter.New(SchemaName, sch, layouts)
	if err != nil {
		panic(err)
	}
	return f
}

// comparePrerelease orders prerelease suffixes the way semver does: an empty
// suffix is the release and sorts after every prerelease; otherwise
// identifiers compare pairwise, numeric ones numerically and below
// alphanumeric ones, and a shorter identifier list sorts first.
func comparePrerelease(a, b interface{}) int {
	as, _ := a.(string)
	bs, _ := b.(string)
	switch {
	case as == bs:
		return 0
	case as == "":
		return 1
	case bs == "":
		return -1
	}

	aids := strings.Split(as, ".")
	bids := strings.Split(bs, ".")
	for i := 0; i < len(aids) && i < len(bids); i++ {
		if c := compareIdentifier(aids[i], bids[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(aids) < len(bids):
		return -1
	case len(aids) > len(bids):
		return 1
	}
	return 0
}

func compareIdentifier(a, b string) int {
	an, aerr := strconv.Atoi(a)
	bn, berr := strconv.Atoi(b)
	switch {
	case aerr == nil && berr == nil:
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	case aerr == nil:
		return -1
	case berr == nil:
		return 1
	}
	return strings.Compare(a, b)
}

// bumpPrerelease increments the trailing numeric identifier, or starts one
// at 1. The empty suffix is a bump fixed point: a release does not move.
func bumpPrerelease(v interface{}) interface{} {
	s, _ := v.(string)
	if s == "" {
		return s
	}
	ids := strings.Split(s, ".")
	if n, err := strconv.Atoi(ids[len(ids)-1]); err == nil {
		ids[len(ids)-1] = strconv.Itoa(n + 1)
		return strings.Join(ids, ".")
	}
	return s + ".1"
}

// counterFields maps a standard release type to the field holding its
// counter.
var counterFields = map[string]string{
	standard.ReleaseTypeDevelopment: standard.FieldDevelopmentVersion,
	standard.ReleaseTypeAlpha:       standard.FieldAlphaVersion,
	standard.ReleaseTypeBeta:        standard.FieldBetaVersion,
	standard.ReleaseTypeRC:          standard.FieldRCVersion,
}

// splitPrerelease maps a prerelease suffix onto a standard release type and
// counter. It recognizes one type identifier with an optional numeric
// counter, such as "beta", "beta.4" or "rc.2".
func splitPrerelease(pre string) (string, int, bool) {
	ids := strings.Split(pre, ".")
	if len(ids) > 2 {
		return "", 0, false
	}

	var rt string
	switch strings.ToLower(ids[0]) {
	case "d", "dev", "development":
		rt = standard.ReleaseTypeDevelopment
	case "a", "alpha":
		rt = standard.ReleaseTypeAlpha
	case "b", "beta":
		rt = standard.ReleaseTypeBeta
	case "rc":
		rt = standard.ReleaseTypeRC
	default:
		return "", 0, false
	}

	counter := 1
	if len(ids) == 2 {
		n, err := strconv.Atoi(ids[1])
		if err != nil {
			return "", 0, false
		}
		counter = n
	}
	return rt, counter, true
}

func toStandard(v *schemaver.Value, to schemaver.Format, params map[string]interface{}) (*schemaver.Value, error) {
	lossy, _ := params[schemaver.ParamLossy].(bool)

	out := map[string]interface{}{
		standard.FieldMajor: v.Int(schemaver.Name(FieldMajor)),
		standard.FieldMinor: v.Int(schemaver.Name(FieldMinor)),
		standard.FieldPatch: v.Int(schemaver.Name(FieldPatch)),
	}
	if pre := Prerelease(v); pre != "" {
		rt, counter, ok := splitPrerelease(pre)
		if !ok && !lossy {
			return nil, errors.Errorf("prerelease %q has no standard form", pre)
		}
		if ok {
			out[standard.FieldReleaseType] = rt
			out[counterFields[rt]] = counter
		}
	}
	return schemaver.New(out, to)
}

func fromStandard(v *schemaver.Value, to schemaver.Format, params map[string]interface{}) (*schemaver.Value, error) {
	lossy, _ := params[schemaver.ParamLossy].(bool)

	out := map[string]interface{}{
		FieldMajor: v.Int(schemaver.Name(standard.FieldMajor)),
		FieldMinor: v.Int(schemaver.Name(standard.FieldMinor)),
		FieldPatch: v.Int(schemaver.Name(standard.FieldPatch)),
	}
	if tweak, _ := v.IntOK(schemaver.Name(standard.FieldTweak)); tweak != 0 && !lossy {
		return nil, errors.Errorf("tweak %d has no semverish form", tweak)
	}

	if rt := standard.ReleaseType(v); rt != standard.ReleaseTypeFinal {
		counter, _ := v.IntOK(schemaver.Name(counterFields[rt]))
		out[FieldPrerelease] = prereleaseFor(rt, counter)
		return schemaver.New(out, to)
	}

	patchlevel, _ := v.IntOK(schemaver.Name(standard.FieldPatchlevel))
	patchlevelMinor, _ := v.IntOK(schemaver.Name(standard.FieldPatchlevelMinor))
	if (patchlevel != 0 || patchlevelMinor != 0) && !lossy {
		return nil, errors.Errorf("patchlevel %d.%d has no semverish form", patchlevel, patchlevelMinor)
	}
	return schemaver.New(out, to)
}

// prereleaseFor renders a standard release type and counter as identifiers,
// always spelling the counter so the suffix maps back unambiguously.
func prereleaseFor(rt string, counter int) string {
	name := rt
	if rt == standard.ReleaseTypeDevelopment {
		name = "dev"
	}
	return name + "." + strconv.Itoa(counter)
}

// Schema returns the semverish schema.
func Schema() *schema.Schema { return sch }

// Format returns the semverish scheme's registered format.
func Format() schemaver.Format { return format }

// New constructs a semverish value from a name-to-value mapping or a
// positional sequence. A nil input yields the all-defaults value.
func New(input interface{}) (*schemaver.Value, error) {
	return schemaver.New(input, format)
}

// Parse reads a semverish version text.
func Parse(text string) (*schemaver.Value, error) {
	return format.Parse(text, nil)
}

// MustParse reads a semverish version text. It panics if the text does not
// parse.
func MustParse(text string) *schemaver.Value {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

// Prerelease returns the prerelease suffix of a semverish value, or the
// empty string for releases and foreign values.
func Prerelease(v *schemaver.Value) string {
	if v == nil || v.Schema() != sch {
		return ""
	}
	pre, _ := v.StringValueOK(schemaver.Name(FieldPrerelease))
	return pre
}
