// seehuhn.de/go/pcell - parametric mask cells for superconducting circuits
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package param declares and binds generator parameters.
//
// A generator publishes its parameters as a [Schema]. Binding a mapping
// of user supplied values against the schema gives an immutable [Set],
// in which every declared parameter has a value of the declared kind.
// Numeric values are not range-checked.
package param

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
)

var (
	// ErrUnknownParameter is returned when a value is given for a name
	// which the schema does not declare.
	ErrUnknownParameter = errors.New("unknown parameter")

	// ErrWrongType is returned when a value cannot be converted to the
	// declared kind.
	ErrWrongType = errors.New("wrong parameter type")

	// ErrInvalidChoice is returned when a value is not one of the
	// declared choices.
	ErrInvalidChoice = errors.New("invalid choice")
)

// Kind is the value type of a parameter.
type Kind int

// These are the supported parameter kinds.
const (
	Int Kind = iota
	Double
	Bool
	String
	List
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Double:
		return "double"
	case Bool:
		return "bool"
	case String:
		return "string"
	case List:
		return "list"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Decl declares one parameter.
type Decl struct {
	Name        string
	Kind        Kind
	Description string
	Default     any
	Unit        string

	// Choices, if non-empty, lists the allowed values.
	Choices []any

	// Hidden parameters are not shown to users.
	Hidden bool
}

// Schema is an ordered list of parameter declarations.
// The zero value is an empty schema.
type Schema struct {
	decls []Decl
}

// NewSchema returns a schema with the given declarations.
// Later declarations replace earlier ones with the same name.
func NewSchema(decls ...Decl) Schema {
	var s Schema
	return s.Extend(decls...)
}

// Extend returns a new schema with additional declarations. A declaration
// with the name of an existing one replaces it in place.
func (s Schema) Extend(decls ...Decl) Schema {
	res := Schema{decls: slices.Clone(s.decls)}
	for _, d := range decls {
		d.Choices = slices.Clone(d.Choices)
		if i := res.index(d.Name); i >= 0 {
			res.decls[i] = d
		} else {
			res.decls = append(res.decls, d)
		}
	}
	return res
}

// WithDefault returns a new schema where the named parameter has a
// different default value.
func (s Schema) WithDefault(name string, value any) Schema {
	res := Schema{decls: slices.Clone(s.decls)}
	if i := res.index(name); i >= 0 {
		res.decls[i].Default = value
	}
	return res
}

// Decls returns the declarations in order.
func (s Schema) Decls() []Decl {
	return slices.Clone(s.decls)
}

// Lookup returns the declaration with the given name.
func (s Schema) Lookup(name string) (Decl, bool) {
	if i := s.index(name); i >= 0 {
		return s.decls[i], true
	}
	return Decl{}, false
}

func (s Schema) index(name string) int {
	return slices.IndexFunc(s.decls, func(d Decl) bool { return d.Name == name })
}

// Bind checks the given values against the schema and fills in defaults
// for missing parameters.
func (s Schema) Bind(values map[string]any) (Set, error) {
	res := Set{values: make(map[string]any, len(s.decls))}
	for _, d := range s.decls {
		res.values[d.Name] = d.Default
	}
	for _, name := range slices.Sorted(maps.Keys(values)) {
		d, ok := s.Lookup(name)
		if !ok {
			return Set{}, fmt.Errorf("%w %q", ErrUnknownParameter, name)
		}
		v, err := convert(d, values[name])
		if err != nil {
			return Set{}, err
		}
		res.values[name] = v
	}
	return res, nil
}

// Defaults returns the set of default values.
func (s Schema) Defaults() Set {
	res, _ := s.Bind(nil)
	return res
}

func convert(d Decl, v any) (any, error) {
	var res any
	switch d.Kind {
	case Int:
		switch x := v.(type) {
		case int:
			res = x
		case int64:
			res = int(x)
		case float64:
			if x != math.Trunc(x) || math.IsInf(x, 0) {
				return nil, fmt.Errorf("%s: %w: %v is not an integer", d.Name, ErrWrongType, v)
			}
			res = int(x)
		}
	case Double:
		switch x := v.(type) {
		case float64:
			res = x
		case float32:
			res = float64(x)
		case int:
			res = float64(x)
		case int64:
			res = float64(x)
		}
	case Bool:
		if x, ok := v.(bool); ok {
			res = x
		}
	case String:
		if x, ok := v.(string); ok {
			res = x
		}
	case List:
		switch x := v.(type) {
		case []any:
			res = slices.Clone(x)
		case []float64:
			l := make([]any, len(x))
			for i, f := range x {
				l[i] = f
			}
			res = l
		case []string:
			l := make([]any, len(x))
			for i, s := range x {
				l[i] = s
			}
			res = l
		}
	}
	if res == nil {
		return nil, fmt.Errorf("%s: %w: expected %s, got %T", d.Name, ErrWrongType, d.Kind, v)
	}

	if len(d.Choices) > 0 && !slices.ContainsFunc(d.Choices, func(c any) bool { return c == res }) {
		return nil, fmt.Errorf("%s: %w %v", d.Name, ErrInvalidChoice, res)
	}
	return res, nil
}
