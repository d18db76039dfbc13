// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package benchmark

import (
	"context"
	"sort"

	"github.com/schemaver/schemaver-go/schemaver"
	"github.com/schemaver/schemaver-go/schemaver/rubygems"
	"github.com/schemaver/schemaver-go/schemaver/semverish"
	"github.com/schemaver/schemaver-go/schemaver/standard"
)

var standardCorpus = []string{
	"2",
	"2.0",
	"1.2.3",
	"1.2.3.4",
	"1.02.3",
	"1.9.2dev2",
	"2a1",
	"1.2.3b4",
	"1.2.3-beta4",
	"1.2.3rc",
	"1.2.3_rc2",
	"1.8.7p72",
	"1.8.7-p72.1",
	"6u21",
}

var (
	standardValues  = mustParseAll(standard.MustParse, standardCorpus)
	semverishValues = mustParseAll(semverish.MustParse, []string{
		"1.2.3",
		"1.2.3-alpha.1",
		"1.2.3-beta.4",
		"1.2.3-rc.2",
		"2.0.0-dev.7",
	})
	unsortedValues = mustParseAll(standard.MustParse, []string{
		"1.10", "1.2.3b4", "2.0", "1.2.3", "0.9.9", "1.2.3rc1", "1.8.7p72",
		"1.2.3.1", "1.2", "1.9.2dev2", "2a1", "1.2.4", "6u21", "1.2.3-p1",
		"1.0", "1.2.3b3", "2.0.1", "1.2.3.2", "0.1", "1.2.3rc2",
	})
)

func mustParseAll(parse func(string) *schemaver.Value, texts []string) []*schemaver.Value {
	out := make([]*schemaver.Value, 0, len(texts))
	for _, text := range texts {
		out = append(out, parse(text))
	}
	return out
}

func StandardParsing(ctx context.Context, iters int) error {
	for i := 0; i < iters; i++ {
		if _, err := standard.Parse(standardCorpus[i%len(standardCorpus)]); err != nil {
			return err
		}
	}
	return nil
}

func StandardUnparsing(ctx context.Context, iters int) error {
	for i := 0; i < iters; i++ {
		if _, err := standardValues[i%len(standardValues)].Unparse(nil); err != nil {
			return err
		}
	}
	return nil
}

func StandardBumping(ctx context.Context, iters int) error {
	minor := schemaver.Name(standard.FieldMinor)
	for i := 0; i < iters; i++ {
		standardValues[i%len(standardValues)].Bump(minor)
	}
	return nil
}

func StandardOrdering(ctx context.Context, iters int) error {
	for i := 0; i < iters; i++ {
		a := standardValues[i%len(standardValues)]
		b := standardValues[(i+1)%len(standardValues)]
		if _, err := a.Compare(b); err != nil {
			return err
		}
	}
	return nil
}

// SemverishRubygemsConversion exercises the conversion chain end to end:
// there is no direct conversion between the two schemes, so each call hops
// through standard.
func SemverishRubygemsConversion(ctx context.Context, iters int) error {
	params := map[string]interface{}{schemaver.ParamLossy: true}
	for i := 0; i < iters; i++ {
		v := semverishValues[i%len(semverishValues)]
		if _, err := v.Convert(rubygems.Format(), params); err != nil {
			return err
		}
	}
	return nil
}

func VersionListSorting(ctx context.Context, iters int) error {
	for i := 0; i < iters; i++ {
		values := make([]*schemaver.Value, len(unsortedValues))
		copy(values, unsortedValues)
		sort.Slice(values, func(a, b int) bool {
			cmp, _ := values[a].Compare(values[b])
			return cmp < 0
		})
	}
	return nil
}
