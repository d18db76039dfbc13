// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package schemaver models structured version numbers whose field set,
// types, and legal values come from a pluggable schema instead of being
// hard-coded.
//
// The unit of the package is the Value: an immutable snapshot of one version
// number holding the concrete sequence of fields realized for it and each
// field's canonicalized value. Because a schema field's successor can depend
// on the field's own value, two values of one schema can realize different
// field sequences; a value holds exactly the fields its construction walk
// visited.
//
// Values are constructed from a name-to-value mapping or a positional
// sequence plus a Format, which pairs a schema with text parsing and
// rendering. Every derived value funnels through the same construction walk:
// Bump, Reset, and Change compute a modified input and reconstruct, which
// keeps the field chain consistent no matter how a value was produced.
//
// Formats register by name, and conversions between schemas register by
// schema name pair, in process-wide registries. Converting to a schema with
// no direct conversion chains through the canonical standard schema when
// both hops exist. Version scheme packages such as standard, semverish, and
// rubygems register themselves from init, so a blank import makes a scheme
// available:
//
//	import _ "github.com/schemaver/schemaver-go/schemaver/standard"
//
//	v := schemaver.MustParse("standard", "1.4.2")
//	v = v.Bump(schemaver.Name("minor"))  // 1.5.0
package schemaver
