// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package benchmark

import (
	"context"
)

// The canary cases calibrate the harness itself: they measure the loop with
// no version work in it.

func CanaryIncCase(ctx context.Context, iters int) error {
	var canaryCount int
	for i := 0; i < iters; i++ {
		canaryCount++
	}
	return nil
}

var globalCanaryCount int

func GlobalCanaryIncCase(ctx context.Context, iters int) error {
	for i := 0; i < iters; i++ {
		globalCanaryCount++
	}

	return nil
}
