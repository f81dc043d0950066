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

package style

import (
	"testing"

	"github.com/ilhamster/burdenviz/color"
	testutil "github.com/ilhamster/burdenviz/test_util"
	"github.com/ilhamster/burdenviz/util"
)

func TestForLine(t *testing.T) {
	colors := color.Colors{
		StrokeColor:   "#332288",
		FillColor:     "#332288",
		StrokeOpacity: 1,
		FillOpacity:   0.2,
	}
	for _, test := range []struct {
		description string
		style       *Style
		wantUpdates []util.PropertyUpdate
	}{{
		description: "outline",
		style:       ForLine(colors, false, 1.5),
		wantUpdates: []util.PropertyUpdate{
			util.StringProperty("style_stroke", "#332288"),
			util.StringProperty("style_stroke-opacity", "1"),
			util.StringProperty("style_stroke-width", "1.50px"),
			util.StringProperty("style_fill", "none"),
		},
	}, {
		description: "filled area",
		style:       ForLine(colors, true, 0),
		wantUpdates: []util.PropertyUpdate{
			util.StringProperty("style_stroke", "#332288"),
			util.StringProperty("style_stroke-opacity", "1"),
			util.StringProperty("style_stroke-width", "0.00px"),
			util.StringProperty("style_fill", "#332288"),
			util.StringProperty("style_fill-opacity", "0.2"),
		},
	}, {
		description: "overridden attribute",
		style:       New().With("stroke", "red").With("stroke", "blue"),
		wantUpdates: []util.PropertyUpdate{
			util.StringProperty("style_stroke", "blue"),
		},
	}} {
		t.Run(test.description, func(t *testing.T) {
			if msg, failed := testutil.NewUpdateComparator().
				WithTestUpdates(test.style.Define()).
				WithWantUpdates(test.wantUpdates...).
				Compare(t); failed {
				t.Fatal(msg)
			}
		})
	}
}

func TestGet(t *testing.T) {
	s := ForLine(color.Colors{StrokeColor: "#117733"}, false, 1)
	if got, ok := s.Get("stroke"); !ok || got != "#117733" {
		t.Errorf("Get(stroke) = (%s, %t), wanted (#117733, true)", got, ok)
	}
	if _, ok := s.Get("fill-opacity"); ok {
		t.Errorf("Get(fill-opacity) unexpectedly set on an outline")
	}
}
