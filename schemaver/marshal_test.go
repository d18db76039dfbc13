// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package schemaver

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueJSON(t *testing.T) {
	f := newDotFormat("json-dotted", simpleSchema(t))
	MustRegisterFormat(f)

	t.Run("round-trips as text", func(t *testing.T) {
		v, err := NewWithParams([]interface{}{1, 4, 2}, f, map[string]interface{}{"pad": 2})
		noerr(t, err)

		data, err := json.Marshal(v)
		noerr(t, err)
		require.JSONEq(t, `{"format":"json-dotted","value":"1.4.2","parse_params":{"pad":2}}`, string(data))

		var got Value
		noerr(t, json.Unmarshal(data, &got))
		require.True(t, got.Equal(v))
		require.Equal(t, v.UnparseParams()["pad"], int(got.UnparseParams()["pad"].(float64)))
	})
	t.Run("falls back to field values when unparsing fails", func(t *testing.T) {
		v, err := NewWithParams([]interface{}{1, 4, 2}, f, map[string]interface{}{"fail": true})
		noerr(t, err)

		data, err := json.Marshal(v)
		noerr(t, err)
		require.JSONEq(t, `{"format":"json-dotted","values":[1,4,2],"unparse_params":{"fail":true}}`, string(data))

		var got Value
		noerr(t, json.Unmarshal(data, &got))
		require.True(t, got.Equal(v))
		require.Equal(t, true, got.UnparseParams()["fail"])
	})
	t.Run("unknown format", func(t *testing.T) {
		var got Value
		err := json.Unmarshal([]byte(`{"format":"json-unknown","value":"1.4.2"}`), &got)
		require.Equal(t, UnknownFormatError{Name: "json-unknown"}, err)
	})
	t.Run("empty envelope", func(t *testing.T) {
		var got Value
		err := json.Unmarshal([]byte(`{"format":"json-dotted"}`), &got)
		require.Error(t, err)
	})
	t.Run("values in a slice round-trip", func(t *testing.T) {
		a, err := f.Parse("1.4.2", nil)
		noerr(t, err)
		b, err := f.Parse("2.0.0", nil)
		noerr(t, err)

		data, err := json.Marshal([]*Value{a, b})
		noerr(t, err)
		var got []*Value
		noerr(t, json.Unmarshal(data, &got))
		require.Len(t, got, 2)
		require.True(t, got[0].Equal(a))
		require.True(t, got[1].Equal(b))
	})
}
