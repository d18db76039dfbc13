// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package benchmark

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"time"
)

type CaseDefinition struct {
	Bench   BenchCase
	Count   int
	Size    int
	Runtime time.Duration

	startAt time.Time
}

// Run executes the case repeatedly until its runtime has elapsed and at
// least MinIterations trials have completed, or the execution timeout hits.
func (c *CaseDefinition) Run(ctx context.Context) *BenchResult {
	out := &BenchResult{
		DataSize:   c.Size,
		Name:       c.Name(),
		Operations: c.Count,
	}
	var cancel context.CancelFunc
	ctx, cancel = context.WithTimeout(ctx, ExecutionTimeout)
	defer cancel()

	fmt.Println("=== RUN", out.Name)
	c.startAt = time.Now()
	for {
		if time.Since(c.startAt) > c.Runtime {
			if out.Trials >= MinIterations {
				break
			} else if ctx.Err() != nil {
				break
			}
		}

		res := Result{
			Iterations: c.Count,
		}
		runStartAt := time.Now()
		res.Error = c.Bench(ctx, c.Count)
		res.Duration = time.Since(runStartAt)

		if errors.Is(res.Error, context.Canceled) {
			break
		}

		out.Trials++
		out.Raw = append(out.Raw, res)
	}
	out.Duration = time.Since(c.startAt)
	if out.HasErrors() {
		fmt.Printf("--- FAIL: %s (%s)\n", out.Name, out.Duration.Round(time.Millisecond))
	} else {
		fmt.Printf("--- PASS: %s (%s)\n", out.Name, out.Duration.Round(time.Millisecond))
	}

	return out
}

func (c *CaseDefinition) String() string {
	return fmt.Sprintf("name=%s, count=%d, runtime=%s timeout=%s",
		c.Name(), c.Count, c.Runtime, ExecutionTimeout)
}

func (c *CaseDefinition) Name() string { return getName(c.Bench) }

func getName(i interface{}) string {
	n := runtime.FuncForPC(reflect.ValueOf(i).Pointer()).Name()
	parts := strings.Split(n, ".")
	if len(parts) > 1 {
		return parts[len(parts)-1]
	}

	return n
}
