// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package benchmark measures the throughput of the core version operations:
// parsing, rendering, bumping, ordering, and cross-scheme conversion.
package benchmark

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	ExecutionTimeout = 5 * time.Minute
	StandardRuntime  = time.Minute
	MinimumRuntime   = 10 * time.Second
	MinIterations    = 100

	ten         = 10
	hundred     = ten * ten
	thousand    = ten * hundred
	tenThousand = ten * thousand
)

type BenchCase func(context.Context, int) error
type BenchFunction func(*testing.B)

func WrapCase(bench BenchCase) BenchFunction {
	name := getName(bench)
	return func(b *testing.B) {
		ctx := context.Background()
		b.ResetTimer()
		err := bench(ctx, b.N)
		require.NoError(b, err, "case='%s'", name)
	}
}

// AllCases returns the definitions the standalone runner executes.
func AllCases() []*CaseDefinition {
	return []*CaseDefinition{
		{
			Bench:   CanaryIncCase,
			Count:   hundred,
			Size:    -1,
			Runtime: MinimumRuntime,
		},
		{
			Bench:   GlobalCanaryIncCase,
			Count:   hundred,
			Size:    -1,
			Runtime: MinimumRuntime,
		},
		{
			Bench:   StandardParsing,
			Count:   tenThousand,
			Size:    -1,
			Runtime: StandardRuntime,
		},
		{
			Bench:   StandardUnparsing,
			Count:   tenThousand,
			Size:    -1,
			Runtime: StandardRuntime,
		},
		{
			Bench:   StandardBumping,
			Count:   tenThousand,
			Size:    -1,
			Runtime: StandardRuntime,
		},
		{
			Bench:   StandardOrdering,
			Count:   tenThousand,
			Size:    -1,
			Runtime: StandardRuntime,
		},
		{
			Bench:   SemverishRubygemsConversion,
			Count:   thousand,
			Size:    -1,
			Runtime: StandardRuntime,
		},
		{
			Bench:   VersionListSorting,
			Count:   hundred,
			Size:    -1,
			Runtime: StandardRuntime,
		},
	}
}
