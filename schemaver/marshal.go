// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package schemaver

import (
	"encoding/json"
	"fmt"
)

// valueEnvelope is the serialized form of a Value: the format name plus
// either the unparsed text with the parameters needed to reparse it, or the
// raw field values with the remembered unparse parameters when the value
// cannot be rendered as text.
type valueEnvelope struct {
	Format        string                 `json:"format"`
	Value         string                 `json:"value,omitempty"`
	ParseParams   map[string]interface{} `json:"parse_params,omitempty"`
	Values        []interface{}          `json:"values,omitempty"`
	UnparseParams map[string]interface{} `json:"unparse_params,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface. The encoding loses
// neither field values nor formatting intent: unmarshaling it reconstructs a
// value strictly equal to this one, with the same unparse parameters.
func (v *Value) MarshalJSON() ([]byte, error) {
	env := valueEnvelope{Format: v.format.FormatName()}
	if s, err := v.Unparse(nil); err == nil {
		env.Value = s
		env.ParseParams = v.UnparseParams()
	} else {
		env.Values = v.Values()
		env.UnparseParams = v.UnparseParams()
	}
	return json.Marshal(env)
}

// UnmarshalJSON implements the json.Unmarshaler interface. The format named
// in the encoding must be registered in the DefaultFormatRegistry.
func (v *Value) UnmarshalJSON(data []byte) error {
	var env valueEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	f, ok := LookupFormat(env.Format)
	if !ok {
		return UnknownFormatError{Name: env.Format}
	}

	var (
		parsed *Value
		err    error
	)
	if env.Value != "" {
		parsed, err = f.Parse(env.Value, env.ParseParams)
	} else if env.Values != nil {
		parsed, err = NewWithParams(env.Values, f, env.UnparseParams)
	} else {
		err = fmt.Errorf("encoded value has neither text nor field values")
	}
	if err != nil {
		return err
	}
	*v = *parsed
	return nil
}
