/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package style supports attaching SVG presentation attributes, such as
// `stroke` or `fill-opacity`, to response Datums.  Attribute names and values
// follow https://developer.mozilla.org/en-US/docs/Web/SVG/Attribute.
package style

import (
	"sort"
	"strconv"

	"github.com/ilhamster/burdenviz/color"
	"github.com/ilhamster/burdenviz/util"
)

const (
	keyPrefix = "style_"
)

// Style is a set of SVG attributes.
type Style struct {
	attrs map[string]string
}

// New returns a new, empty Style.
func New() *Style {
	return &Style{
		attrs: map[string]string{},
	}
}

// ForLine returns the Style of a line drawn with the provided colors.  Only
// filled lines are drawn with a fill.
func ForLine(c color.Colors, fill bool, strokeWidthPx float64) *Style {
	s := New().
		With("stroke", c.StrokeColor).
		With("stroke-opacity", Number(c.StrokeOpacity)).
		With("stroke-width", Px(strokeWidthPx))
	if !fill {
		return s.With("fill", "none")
	}
	return s.
		With("fill", c.FillColor).
		With("fill-opacity", Number(c.FillOpacity))
}

// Define returns a PropertyUpdate defining the receiver into a Datum.
func (s *Style) Define() util.PropertyUpdate {
	attrs := make([]string, 0, len(s.attrs))
	for attr := range s.attrs {
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)
	ret := make([]util.PropertyUpdate, len(attrs))
	for idx, attr := range attrs {
		ret[idx] = util.StringProperty(keyPrefix+attr, s.attrs[attr])
	}
	return util.Chain(ret...)
}

// Px formats the provided value as a pixel specifier.
func Px(valPx float64) string {
	return strconv.FormatFloat(valPx, 'f', 2, 64) + "px"
}

// Number formats the provided value as an SVG number.
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// With sets the specified attribute in the receiver.
func (s *Style) With(attr, val string) *Style {
	s.attrs[attr] = val
	return s
}

// Get returns the value of the specified attribute, and whether it is set.
func (s *Style) Get(attr string) (string, bool) {
	val, ok := s.attrs[attr]
	return val, ok
}
