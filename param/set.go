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

package param

import (
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Set is a bound, immutable set of parameter values.
type Set struct {
	values map[string]any
}

// Int returns the value of an integer parameter.
func (s Set) Int(name string) int {
	v, _ := s.values[name].(int)
	return v
}

// Float returns the value of a numeric parameter.
func (s Set) Float(name string) float64 {
	switch v := s.values[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// Bool returns the value of a boolean parameter.
func (s Set) Bool(name string) bool {
	v, _ := s.values[name].(bool)
	return v
}

// String returns the value of a string parameter.
func (s Set) String(name string) string {
	v, _ := s.values[name].(string)
	return v
}

// List returns a copy of the value of a list parameter.
func (s Set) List(name string) []any {
	v, _ := s.values[name].([]any)
	return slices.Clone(v)
}

// Floats returns the value of a list parameter as numbers. Strings are
// parsed; entries which are not numbers give zero.
func (s Set) Floats(name string) []float64 {
	l, _ := s.values[name].([]any)
	res := make([]float64, len(l))
	for i, x := range l {
		switch v := x.(type) {
		case float64:
			res[i] = v
		case int:
			res[i] = float64(v)
		case string:
			res[i], _ = strconv.ParseFloat(strings.TrimSpace(v), 64)
		}
	}
	return res
}

// Value returns the raw value of a parameter.
func (s Set) Value(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Values returns a copy of all values.
func (s Set) Values() map[string]any {
	return maps.Clone(s.values)
}

// Names returns the sorted parameter names.
func (s Set) Names() []string {
	return slices.Sorted(maps.Keys(s.values))
}

// Equal reports whether two sets hold the same values.
func (s Set) Equal(o Set) bool {
	return maps.EqualFunc(s.values, o.values, func(a, b any) bool {
		return reflect.DeepEqual(a, b)
	})
}
