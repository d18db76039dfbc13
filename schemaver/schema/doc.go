// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package schema describes the shape of structured version numbers: which
// fields a version has, what values those fields may take, and how the
// fields chain together.
//
// A version scheme is modeled as a Schema of Fields. Each Field has a kind
// (Integer, String, or Enum), a default value, and behaviors for
// canonicalizing raw input, bumping, and ordering. Fields link to the field
// that follows them, and the link may depend on the field's own resolved
// value, so one schema can describe versions whose tails differ by release
// type.
//
// Fields and Builders are mutable while a schema is assembled; the Schema
// returned by Build is frozen and safe for concurrent use.
package schema
