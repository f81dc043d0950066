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

// Package displayname maps raw category values, such as ISO country codes,
// to human-readable labels.
package displayname

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/biter777/countries"

	"github.com/ilhamster/burdenviz/burden"
)

// GlobalLabel labels the global location.
const GlobalLabel = "Global"

// Lookup labels category values.  Configured overrides take precedence;
// otherwise locations given as ISO 3166 alpha-2 or alpha-3 codes are labeled
// with their country names, and other values are humanized.
type Lookup struct {
	overrides map[burden.Dimension]map[string]string
}

// New returns a new Lookup with the provided per-dimension overrides, which
// may be nil.
func New(overrides map[burden.Dimension]map[string]string) *Lookup {
	return &Lookup{overrides: overrides}
}

func humanize(value string) string {
	value = strings.ReplaceAll(value, "_", " ")
	r, size := utf8.DecodeRuneInString(value)
	if r == utf8.RuneError {
		return value
	}
	return string(unicode.ToUpper(r)) + value[size:]
}

// Label returns the label of the provided value on the provided dimension.
func (l *Lookup) Label(dim burden.Dimension, value string) string {
	if label, ok := l.overrides[dim][value]; ok {
		return label
	}
	if dim == burden.Location {
		if value == burden.Global {
			return GlobalLabel
		}
		if cc := countries.ByName(value); cc != countries.Unknown {
			return cc.String()
		}
		return value
	}
	return humanize(value)
}

// LabelFunc returns the receiver's Label method as a burden.LabelFunc.
func (l *Lookup) LabelFunc() burden.LabelFunc {
	return l.Label
}
