// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package semverish

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/schemaver/schemaver-go/schemaver"
	"github.com/schemaver/schemaver-go/schemaver/standard"
)

func TestParse(t *testing.T) {
	path := []string{FieldMajor, FieldMinor, FieldPatch, FieldPrerelease}

	testCases := []struct {
		text     string
		wantVals []interface{}
	}{
		{"1", []interface{}{1, 0, 0, ""}},
		{"1.4", []interface{}{1, 4, 0, ""}},
		{"1.4.2", []interface{}{1, 4, 2, ""}},
		{"1.4.2-beta.3", []interface{}{1, 4, 2, "beta.3"}},
		{"1.2.3-4", []interface{}{1, 2, 3, "4"}},
		{"1.2.3-alpha-1", []interface{}{1, 2, 3, "alpha-1"}},
		{"10.20.30-rc.1", []interface{}{10, 20, 30, "rc.1"}},
	}

	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			v, err := Parse(tc.text)
			require.NoError(t, err)
			if diff := cmp.Diff(path, v.FieldNames()); diff != "" {
				t.Errorf("Field names mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantVals, v.Values()); diff != "" {
				t.Errorf("Values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	texts := []string{
		"1",
		"1.4",
		"1.4.2",
		"1.02.3",
		"1.4.2-beta.3",
		"1.4.2-alpha",
		"1.2.3-4",
		"1.2.3-alpha-1",
	}

	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			v, err := Parse(text)
			require.NoError(t, err)

			got, err := v.Unparse(nil)
			require.NoError(t, err)
			if got != text {
				t.Errorf("Unexpected rendering. got %q; want %q", got, text)
			}
		})
	}
}

func TestOrdering(t *testing.T) {
	// The ordering example from the semver specification.
	ordered := []string{
		"1.0.0-alpha",
		"1.0.0-alpha.1",
		"1.0.0-alpha.beta",
		"1.0.0-beta",
		"1.0.0-beta.2",
		"1.0.0-beta.11",
		"1.0.0-rc.1",
		"1.0.0",
	}

	for i, low := range ordered {
		for _, high := range ordered[i+1:] {
			a, b := MustParse(low), MustParse(high)

			got, err := a.Compare(b)
			require.NoError(t, err)
			if got != -1 {
				t.Errorf("Unexpected order of %q and %q. got %d; want -1", low, high, got)
			}
			got, err = b.Compare(a)
			require.NoError(t, err)
			if got != 1 {
				t.Errorf("Unexpected order of %q and %q. got %d; want 1", high, low, got)
			}
		}
	}
}

func TestBump(t *testing.T) {
	render := func(t *testing.T, v *schemaver.Value) string {
		t.Helper()
		s, err := v.Unparse(nil)
		require.NoError(t, err)
		return s
	}

	t.Run("prerelease counter", func(t *testing.T) {
		got := render(t, MustParse("1.2.3-beta.3").Bump(schemaver.Name(FieldPrerelease)))
		if got != "1.2.3-beta.4" {
			t.Errorf("Unexpected rendering. got %q; want %q", got, "1.2.3-beta.4")
		}
	})
	t.Run("prerelease without a counter starts one", func(t *testing.T) {
		got := render(t, MustParse("1.2.3-alpha").Bump(schemaver.Name(FieldPrerelease)))
		if got != "1.2.3-alpha.1" {
			t.Errorf("Unexpected rendering. got %q; want %q", got, "1.2.3-alpha.1")
		}
	})
	t.Run("release prerelease is a fixed point", func(t *testing.T) {
		v := MustParse("1.2.3")
		if bumped := v.Bump(schemaver.Name(FieldPrerelease)); bumped != v {
			t.Errorf("Expected bumping an empty prerelease to return the same value. got %v", bumped)
		}
	})
	t.Run("patch clears the prerelease", func(t *testing.T) {
		got := render(t, MustParse("1.2.3-beta.3").Bump(schemaver.Name(FieldPatch)))
		if got != "1.2.4" {
			t.Errorf("Unexpected rendering. got %q; want %q", got, "1.2.4")
		}
	})
}

func TestConvertToStandard(t *testing.T) {
	testCases := []struct {
		text string
		want string
	}{
		{"1.2.3", "1.2.3"},
		{"1.2.3-beta.4", "1.2.3b4"},
		{"1.2.3-rc", "1.2.3rc1"},
		{"1.9.2-dev.3", "1.9.2d3"},
		{"2-alpha.1", "2a1"},
	}

	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			got, err := MustParse(tc.text).Convert(standard.Format(), nil)
			require.NoError(t, err)
			if want := standard.MustParse(tc.want); !got.Equal(want) {
				t.Errorf("Unexpected conversion. got %v; want %v", got, want)
			}
		})
	}

	t.Run("foreign prerelease fails", func(t *testing.T) {
		_, err := MustParse("1.2.3-nightly.1").Convert(standard.Format(), nil)
		ce, ok := err.(schemaver.ConversionError)
		if !ok || ce.From != SchemaName || ce.To != standard.SchemaName {
			t.Errorf("Unexpected error. got %v; want a ConversionError from %q to %q", err, SchemaName, standard.SchemaName)
		}
	})
	t.Run("foreign prerelease drops when lossy", func(t *testing.T) {
		got, err := MustParse("1.2.3-nightly.1").Convert(standard.Format(), map[string]interface{}{schemaver.ParamLossy: true})
		require.NoError(t, err)
		if want := standard.MustParse("1.2.3"); !got.Equal(want) {
			t.Errorf("Unexpected conversion. got %v; want %v", got, want)
		}
	})
}

func TestConvertFromStandard(t *testing.T) {
	testCases := []struct {
		text string
		want string
	}{
		{"1.2.3", "1.2.3"},
		{"1.2.3b4", "1.2.3-beta.4"},
		{"1.2.3rc", "1.2.3-rc.1"},
		{"1.9.2d3", "1.9.2-dev.3"},
		{"2a1", "2.0.0-alpha.1"},
	}

	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			got, err := standard.MustParse(tc.text).Convert(Format(), nil)
			require.NoError(t, err)
			rendered, err := got.Unparse(nil)
			require.NoError(t, err)
			if rendered != tc.want {
				t.Errorf("Unexpected rendering. got %q; want %q", rendered, tc.want)
			}
		})
	}

	t.Run("tweak fails without lossy", func(t *testing.T) {
		_, err := standard.MustParse("1.2.3.4").Convert(Format(), nil)
		if _, ok := err.(schemaver.ConversionError); !ok {
			t.Errorf("Unexpected error. got %v; want a ConversionError", err)
		}

		got, err := standard.MustParse("1.2.3.4").Convert(Format(), map[string]interface{}{schemaver.ParamLossy: true})
		require.NoError(t, err)
		if want := MustParse("1.2.3"); !got.Equal(want) {
			t.Errorf("Unexpected conversion. got %v; want %v", got, want)
		}
	})
	t.Run("patchlevel fails without lossy", func(t *testing.T) {
		_, err := standard.MustParse("1.8.7p72").Convert(Format(), nil)
		if _, ok := err.(schemaver.ConversionError); !ok {
			t.Errorf("Unexpected error. got %v; want a ConversionError", err)
		}

		got, err := standard.MustParse("1.8.7p72").Convert(Format(), map[string]interface{}{schemaver.ParamLossy: true})
		require.NoError(t, err)
		if want := MustParse("1.8.7"); !got.Equal(want) {
			t.Errorf("Unexpected conversion. got %v; want %v", got, want)
		}
	})
}

func TestConvertRoundTrip(t *testing.T) {
	texts := []string{"1.2.3", "1.2.3b4", "1.2.3rc2", "1.9.2d3"}

	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			v := standard.MustParse(text)
			over, err := v.Convert(Format(), nil)
			require.NoError(t, err)
			back, err := over.Convert(standard.Format(), nil)
			require.NoError(t, err)
			if !back.Equal(v) {
				t.Errorf("Expected the round trip to preserve the value. got %v; want %v", back, v)
			}
		})
	}
}

func TestPrerelease(t *testing.T) {
	if got := Prerelease(MustParse("1.2.3-beta.4")); got != "beta.4" {
		t.Errorf("Unexpected prerelease. got %q; want %q", got, "beta.4")
	}
	if got := Prerelease(MustParse("1.2.3")); got != "" {
		t.Errorf("Unexpected prerelease. got %q; want %q", got, "")
	}
	if got := Prerelease(standard.MustParse("1.2.3b4")); got != "" {
		t.Errorf("Unexpected prerelease. got %q; want %q", got, "")
	}
	if got := Prerelease(nil); got != "" {
		t.Errorf("Unexpected prerelease. got %q; want %q", got, "")
	}
}
