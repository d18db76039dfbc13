// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// schemaver-bench runs the version operation benchmarks and writes the
// results as a JSON metrics document.
package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rs/zerolog"
	"github.com/tidwall/pretty"

	"github.com/schemaver/schemaver-go/benchmark"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	outPath := "perf.json"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	ctx := context.Background()
	var failed bool
	results := []interface{}{}
	for _, c := range benchmark.AllCases() {
		res := c.Run(ctx)
		if res.HasErrors() {
			failed = true
			for _, msg := range res.Errors() {
				logger.Error().Str("case", res.Name).Msg(msg)
			}
			continue
		}

		perf, err := res.PerfFormat()
		if err != nil {
			failed = true
			logger.Error().Err(err).Str("case", res.Name).Msg("format results")
			continue
		}
		results = append(results, perf...)
	}

	data, err := json.Marshal(results)
	if err != nil {
		logger.Fatal().Err(err).Msg("encode results")
	}
	if err := os.WriteFile(outPath, pretty.Pretty(data), 0o644); err != nil {
		logger.Fatal().Err(err).Msg("write results")
	}
	logger.Info().Str("path", outPath).Msg("wrote benchmark results")

	if failed {
		os.Exit(1)
	}
}
