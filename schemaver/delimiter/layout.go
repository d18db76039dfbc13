// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package delimiter

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/schemaver/schemaver-go/schemaver/schema"
)

// A FieldLayout declares how one schema field appears in text: the delimiter
// printed before its value, the alternate delimiters tolerated when parsing,
// whether the field may be omitted, and for enum fields the accepted
// spellings of each symbol.
type FieldLayout struct {
	// Field names the schema field this layout renders.
	Field string
	// Delim is the canonical delimiter, printed before the field's value.
	// It may be empty.
	Delim string
	// AltDelims are additional delimiters accepted when parsing. A parsed
	// alternate is remembered and replayed on unparse.
	AltDelims []string
	// Optional marks a field that may be absent from text. An absent
	// optional field takes its default; an optional field equal to its
	// default is omitted from output unless it was present in the parsed
	// text or a later field is printed after it.
	Optional bool
	// Detached marks a field whose delimiter and value are recognizable
	// without the fields before it, so optional fields at their defaults
	// may be omitted immediately before it even mid-text. The layout
	// author asserts the field cannot be mistaken for an omitted
	// predecessor.
	Detached bool
	// Styles maps an enum symbol to its accepted spellings, canonical
	// first. A spelling may be empty, marking a symbol that is invisible
	// in text; at most one symbol may have an empty spelling.
	Styles map[string][]string
	// Pattern is the regular expression a string field's value matches,
	// anchored at the current parse position. Required for string fields
	// and not allowed on other kinds.
	Pattern string
}

var digitsRE = regexp.MustCompile(`^[0-9]+`)

// fieldLayout is the compiled form of a FieldLayout.
type fieldLayout struct {
	field    *schema.Field
	delim    string
	delims   []string // canonical plus alternates, longest first
	optional bool
	detached bool

	spellings []spelling // enum only, longest first
	canonical map[string]string

	pattern *regexp.Regexp // string fields only
}

type spelling struct {
	text   string
	symbol string
}

func compileLayout(sch *schema.Schema, decl FieldLayout) (*fieldLayout, error) {
	field, ok := sch.Field(decl.Field)
	if !ok {
		return nil, LayoutError{Field: decl.Field, Reason: "schema declares no such field"}
	}

	fl := &fieldLayout{
		field:    field,
		delim:    decl.Delim,
		optional: decl.Optional,
		detached: decl.Detached,
	}
	fl.delims = append(fl.delims, decl.Delim)
	for _, d := range decl.AltDelims {
		if d != decl.Delim {
			fl.delims = append(fl.delims, d)
		}
	}
	sort.SliceStable(fl.delims, func(i, j int) bool {
		return len(fl.delims[i]) > len(fl.delims[j])
	})

	switch field.Kind() {
	case schema.Enum:
		if decl.Pattern != "" {
			return nil, LayoutError{Field: decl.Field, Reason: "patterns apply only to string fields"}
		}
		if len(decl.Styles) == 0 {
			return nil, LayoutError{Field: decl.Field, Reason: "enum field needs styles"}
		}
		return fl, fl.compileStyles(field, decl)
	case schema.String:
		if len(decl.Styles) != 0 {
			return nil, LayoutError{Field: decl.Field, Reason: "styles apply only to enum fields"}
		}
		if decl.Pattern == "" {
			return nil, LayoutError{Field: decl.Field, Reason: "string field needs a pattern"}
		}
		re, err := regexp.Compile("^(?:" + decl.Pattern + ")")
		if err != nil {
			return nil, LayoutError{Field: decl.Field, Reason: "bad pattern: " + err.Error()}
		}
		fl.pattern = re
	default:
		if len(decl.Styles) != 0 {
			return nil, LayoutError{Field: decl.Field, Reason: "styles apply only to enum fields"}
		}
		if decl.Pattern != "" {
			return nil, LayoutError{Field: decl.Field, Reason: "patterns apply only to string fields"}
		}
	}
	return fl, nil
}

func (fl *fieldLayout) compileStyles(field *schema.Field, decl FieldLayout) error {
	declared := make(map[string]bool)
	for _, sym := range field.Symbols() {
		declared[sym] = true
	}

	fl.canonical = make(map[string]string, len(decl.Styles))
	invisible := false
	for sym, texts := range decl.Styles {
		if !declared[sym] {
			return LayoutError{Field: decl.Field, Reason: "style for undeclared symbol " + strconv.Quote(sym)}
		}
		if len(texts) == 0 {
			return LayoutError{Field: decl.Field, Reason: "symbol " + strconv.Quote(sym) + " has no spellings"}
		}
		fl.canonical[sym] = texts[0]
		for _, text := range texts {
			if text == "" {
				if invisible {
					return LayoutError{Field: decl.Field, Reason: "two symbols spell as empty text"}
				}
				invisible = true
			}
			fl.spellings = append(fl.spellings, spelling{text: text, symbol: sym})
		}
	}
	for _, sym := range field.Symbols() {
		if _, ok := fl.canonical[sym]; !ok {
			return LayoutError{Field: decl.Field, Reason: "no style for symbol " + strconv.Quote(sym)}
		}
	}
	sort.SliceStable(fl.spellings, func(i, j int) bool {
		return len(fl.spellings[i].text) > len(fl.spellings[j].text)
	})
	return nil
}

// match consumes one field from rest. It reports the raw value, the
// formatting choices to remember, and the remaining text. A false return
// consumed nothing.
func (fl *fieldLayout) match(rest string) (interface{}, map[string]interface{}, string, bool) {
	for _, delim := range fl.delims {
		if !strings.HasPrefix(rest, delim) {
			continue
		}
		after := rest[len(delim):]

		value, remembered, remaining, ok := fl.matchValue(after)
		if !ok {
			continue
		}
		if delim != "" && len(remaining) == len(after) {
			// A delimiter with nothing after it is not a match.
			continue
		}
		if delim != fl.delim {
			if remembered == nil {
				remembered = make(map[string]interface{}, 1)
			}
			remembered[fl.field.Name()+".delim"] = delim
		}
		return value, remembered, remaining, true
	}
	return nil, nil, rest, false
}

func (fl *fieldLayout) matchValue(rest string) (interface{}, map[string]interface{}, string, bool) {
	switch fl.field.Kind() {
	case schema.Enum:
		for _, sp := range fl.spellings {
			if len(sp.text) > len(rest) || !strings.EqualFold(rest[:len(sp.text)], sp.text) {
				continue
			}
			var remembered map[string]interface{}
			if form := rest[:len(sp.text)]; form != fl.canonical[sp.symbol] {
				remembered = map[string]interface{}{fl.field.Name() + ".form": form}
			}
			return sp.symbol, remembered, rest[len(sp.text):], true
		}
		return nil, nil, rest, false
	case schema.String:
		text := fl.pattern.FindString(rest)
		if text == "" {
			return nil, nil, rest, false
		}
		return text, nil, rest[len(text):], true
	}

	digits := digitsRE.FindString(rest)
	if digits == "" {
		return nil, nil, rest, false
	}
	value, err := strconv.Atoi(digits)
	if err != nil {
		return nil, nil, rest, false
	}
	var remembered map[string]interface{}
	if len(digits) > 1 && digits[0] == '0' {
		remembered = map[string]interface{}{fl.field.Name() + ".pad": len(digits)}
	}
	return value, remembered, rest[len(digits):], true
}

// render produces the delimiter and value text for one field, honoring
// remembered formatting parameters when they still fit the value.
func (fl *fieldLayout) render(value interface{}, params map[string]interface{}) string {
	name := fl.field.Name()

	delim := fl.delim
	if d, ok := params[name+".delim"].(string); ok && fl.acceptsDelim(d) {
		delim = d
	}

	switch fl.field.Kind() {
	case schema.Enum:
		sym, _ := value.(string)
		text := fl.canonical[sym]
		if form, ok := params[name+".form"].(string); ok && fl.spellsSymbol(form, sym) {
			text = form
		}
		if text == "" {
			// An invisible symbol leaves no anchor for a delimiter.
			return ""
		}
		return delim + text
	case schema.String:
		s, _ := value.(string)
		if s == "" {
			return ""
		}
		return delim + s
	}

	i, _ := value.(int)
	if width, ok := intParam(params, name+".pad"); ok && width > 1 {
		return delim + leftPad(strconv.Itoa(i), width)
	}
	return delim + strconv.Itoa(i)
}

func (fl *fieldLayout) acceptsDelim(d string) bool {
	for _, known := range fl.delims {
		if d == known {
			return true
		}
	}
	return false
}

func (fl *fieldLayout) spellsSymbol(form, sym string) bool {
	for _, sp := range fl.spellings {
		if sp.symbol == sym && strings.EqualFold(sp.text, form) {
			return true
		}
	}
	return false
}

// isDefault reports whether value is the field's default, used to decide
// whether an optional field can be omitted from output.
func (fl *fieldLayout) isDefault(value interface{}) bool {
	def, err := fl.field.Canonicalize(nil)
	if err != nil {
		return false
	}
	return fl.field.Compare(value, def) == 0
}

// intParam reads an int-valued parameter, tolerating the numeric types JSON
// and YAML decoding produce.
func intParam(params map[string]interface{}, key string) (int, bool) {
	switch n := params[key].(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func leftPad(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}
