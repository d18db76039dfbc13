// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package delimiter

import "fmt"

// LayoutError is returned by New when a layout does not fit the schema it is
// declared for.
type LayoutError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (le LayoutError) Error() string {
	return fmt.Sprintf("bad layout for field %q: %s", le.Field, le.Reason)
}

// ParseError is returned when text does not match the format's layout. Rest
// holds the unconsumed input at the point of failure.
type ParseError struct {
	Text  string
	Field string
	Rest  string
}

// Error implements the error interface.
func (pe ParseError) Error() string {
	if pe.Field == "" {
		return fmt.Sprintf("cannot parse %q: unexpected trailing text %q", pe.Text, pe.Rest)
	}
	return fmt.Sprintf("cannot parse %q: no value for field %q at %q", pe.Text, pe.Field, pe.Rest)
}
