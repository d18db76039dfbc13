// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package delimiter implements a layout-driven text format for version
// values: each schema field renders as an optional delimiter followed by the
// field's value, and parsing walks the schema's field chain so conditional
// tails are matched against the text the same way construction resolves
// them.
//
// The formatting choices a parse observes that differ from the canonical
// layout are remembered in the value's unparse parameters under per-field
// keys:
//
//	<field>.delim    the alternate delimiter that appeared
//	<field>.pad      the digit width of a zero-padded integer
//	<field>.form     the alternate spelling of an enum symbol
//	<field>.present  an optional field the text spelled out
//
// Replaying those parameters makes unparse reproduce the original text, so
// "1.02.3-rc1" survives a parse/unparse round trip even though the canonical
// rendering would be "1.2.3rc1", and "1.4.2" bumped at minor renders "1.5.0"
// rather than "1.5".
package delimiter
