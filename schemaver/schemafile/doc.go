// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package schemafile loads version scheme definitions from YAML documents
// and compiles each into a schema with a delimiter format, so new schemes
// can be defined without writing Go.
//
// A document defines one or more schemes. Each scheme lists its fields in
// chain order and a layout for each field that appears in text:
//
//	schemes:
//	  - name: firmware
//	    fields:
//	      - name: major
//	        type: integer
//	      - name: minor
//	        type: integer
//	      - name: channel
//	        type: enum
//	        default: stable
//	        symbols:
//	          - value: nightly
//	            bump: stable
//	          - value: stable
//	        branches:
//	          nightly: build
//	      - name: build
//	        type: integer
//	        default: 1
//	        stop: true
//	    layouts:
//	      - field: major
//	      - field: minor
//	        delim: "."
//	        optional: true
//	      - field: channel
//	        delim: "-"
//	        optional: true
//	        styles:
//	          nightly: ["nightly", "n"]
//	          stable: [""]
//	      - field: build
//	        delim: "."
//	        optional: true
//
// Fields chain in declaration order. A field overrides its successor with
// then, selects it from an enum value with branches and otherwise, or ends
// the chain with stop. The firmware scheme above reads "2.5" as a stable
// build and "2.5-nightly.3" as the third nightly; bumping its channel yields
// the stable "2.5".
//
// Load compiles a document into a Pack. A Holder keeps a Pack loaded from
// disk and refreshes it when the file changes or the process receives
// SIGHUP.
package schemafile
