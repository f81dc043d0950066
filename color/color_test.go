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

package color

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilhamster/burdenviz/burden"
	testutil "github.com/ilhamster/burdenviz/test_util"
	"github.com/ilhamster/burdenviz/util"
)

type testLine struct {
	meta   burden.Metadata
	colors Colors
}

func (tl *testLine) LineMetadata() burden.Metadata {
	return tl.meta
}

func (tl *testLine) ApplyColors(c Colors) {
	tl.colors = c
}

func locationLines(locations ...string) []Colorable {
	ret := make([]Colorable, len(locations))
	for idx, loc := range locations {
		ret[idx] = &testLine{meta: burden.Metadata{Row: "measles", WithinBand: loc}}
	}
	return ret
}

func strokes(lines []Colorable) []string {
	ret := make([]string, len(lines))
	for idx, line := range lines {
		ret[idx] = line.(*testLine).colors.StrokeColor
	}
	return ret
}

var byLocation = burden.Selection{
	Axes: burden.Axes{Row: burden.Disease, WithinBand: burden.Location},
}

func TestDimensionFor(t *testing.T) {
	for _, test := range []struct {
		description string
		axes        burden.Axes
		filters     burden.Filters
		want        burden.Dimension
	}{{
		description: "multiple within-band values",
		axes:        burden.Axes{Row: burden.Disease, WithinBand: burden.Location},
		filters:     burden.Filters{burden.Location: {"AFG", "BGD"}},
		want:        burden.Location,
	}, {
		description: "single within-band value",
		axes:        burden.Axes{Row: burden.Disease, WithinBand: burden.Location},
		filters:     burden.Filters{burden.Location: {"AFG"}},
		want:        burden.Disease,
	}, {
		description: "unfiltered within-band dimension",
		axes:        burden.Axes{Row: burden.Disease, WithinBand: burden.Location},
		want:        burden.Location,
	}, {
		description: "activity type within band falls back to row",
		axes:        burden.Axes{Row: burden.Location, WithinBand: burden.ActivityType},
		filters:     burden.Filters{burden.ActivityType: {"routine", "campaign"}},
		want:        burden.Location,
	}, {
		description: "activity type row falls back to column",
		axes:        burden.Axes{Column: burden.Location, Row: burden.ActivityType, WithinBand: burden.Disease},
		filters:     burden.Filters{burden.Disease: {"measles"}},
		want:        burden.Location,
	}, {
		description: "activity type row and no column falls back to within-band",
		axes:        burden.Axes{Row: burden.ActivityType, WithinBand: burden.Disease},
		filters:     burden.Filters{burden.Disease: {"measles"}},
		want:        burden.Disease,
	}, {
		description: "nothing colorable",
		axes:        burden.Axes{Row: burden.ActivityType},
		want:        burden.NoDimension,
	}} {
		t.Run(test.description, func(t *testing.T) {
			got := DimensionFor(burden.Selection{Axes: test.axes, Filters: test.filters})
			assert.Equal(t, test.want, got)
		})
	}
}

func TestColorStability(t *testing.T) {
	a := NewAssigner(DefaultPalette)
	a.Configure(byLocation)
	lines := locationLines("A", "B", "A", "C")
	a.SetColors(lines...)
	want := []string{DefaultPalette[0], DefaultPalette[1], DefaultPalette[0], DefaultPalette[2]}
	assert.Equal(t, want, strokes(lines))
	wantLegend := []LegendEntry{
		{"A", DefaultPalette[0]},
		{"B", DefaultPalette[1]},
		{"C", DefaultPalette[2]},
	}
	assert.Equal(t, wantLegend, a.Legend())

	// Recoloring, in any order, changes nothing.
	again := locationLines("C", "A", "B")
	a.SetColors(again...)
	assert.Equal(t, []string{DefaultPalette[2], DefaultPalette[0], DefaultPalette[1]}, strokes(again))
	assert.Equal(t, wantLegend, a.Legend())
}

func TestPaletteWraparound(t *testing.T) {
	require.Len(t, DefaultPalette, 14)
	a := NewAssigner(DefaultPalette)
	a.Configure(byLocation)
	var locations []string
	for i := 0; i < 15; i++ {
		locations = append(locations, fmt.Sprintf("loc%02d", i))
	}
	lines := locationLines(locations...)
	a.SetColors(lines...)
	got := strokes(lines)
	assert.Equal(t, DefaultPalette[0], got[14])
	assert.Equal(t, DefaultPalette[13], got[13])
}

func TestColorsForLine(t *testing.T) {
	a := NewAssigner(Palette{"#111111", "#222222"})
	a.Configure(burden.Selection{
		Axes:    burden.Axes{Row: burden.Disease, WithinBand: burden.Location},
		Filters: burden.Filters{burden.Location: {"AFG"}},
	})
	assert.Equal(t, burden.Disease, a.ColorDimension())
	got := a.ColorsForLine(burden.Metadata{Row: "rubella", WithinBand: "AFG"})
	assert.Equal(t, Colors{
		StrokeColor:   "#111111",
		FillColor:     "#111111",
		StrokeOpacity: DefaultStrokeOpacity,
		FillOpacity:   DefaultFillOpacity,
	}, got)
	// Colored by row, so a different location does not change the color.
	assert.Equal(t, "#111111", a.ColorsForLine(burden.Metadata{Row: "rubella", WithinBand: "BGD"}).StrokeColor)
	assert.Equal(t, "#222222", a.ColorsForLine(burden.Metadata{Row: "measles", WithinBand: "AFG"}).StrokeColor)
}

func TestNoColorDimensionUsesFirstColor(t *testing.T) {
	a := NewAssigner(Palette{"#111111", "#222222"})
	a.Configure(burden.Selection{Axes: burden.Axes{Row: burden.ActivityType}})
	assert.Equal(t, "#111111", a.ColorsForLine(burden.Metadata{Row: "routine"}).StrokeColor)
	assert.Equal(t, "#111111", a.ColorsForLine(burden.Metadata{Row: "campaign"}).StrokeColor)
	assert.Empty(t, a.Legend())
}

func TestResetColorMapping(t *testing.T) {
	a := NewAssigner(DefaultPalette)
	a.Configure(byLocation)
	a.SetColors(locationLines("AFG", burden.Global, "BGD")...)
	a.ResetColorMapping()
	assert.Equal(t, []LegendEntry{{burden.Global, DefaultPalette[1]}}, a.Legend())
	lines := locationLines("COD", burden.Global, "DZA")
	a.SetColors(lines...)
	// COD skips the color Global kept.
	assert.Equal(t, []string{DefaultPalette[2], DefaultPalette[1], DefaultPalette[3]}, strokes(lines))
}

func TestResetColorMappingKeptColorIsNotReused(t *testing.T) {
	palette := Palette{"#111111", "#222222", "#333333"}
	a := NewAssigner(palette)
	a.Configure(byLocation)
	a.SetColors(locationLines("AFG", burden.Global)...)
	a.ResetColorMapping()
	a.SetColors(locationLines(burden.Global, "COD", "BGD", "DZA")...)
	// Once the palette is exhausted, colors repeat.
	assert.Equal(t, []LegendEntry{
		{burden.Global, "#222222"},
		{"COD", "#333333"},
		{"BGD", "#111111"},
		{"DZA", "#111111"},
	}, a.Legend())
}

func TestConfigureResetsOnDimensionSwitch(t *testing.T) {
	a := NewAssigner(DefaultPalette)
	assert.True(t, a.Configure(byLocation))
	a.SetColors(locationLines("AFG", "BGD")...)
	// Same color dimension, different filters.
	assert.False(t, a.Configure(burden.Selection{
		Axes:    byLocation.Axes,
		Filters: burden.Filters{burden.Location: {"AFG", "BGD"}},
	}))
	assert.Len(t, a.Legend(), 2)
	// Switching to color by disease and back discards location colors.
	assert.True(t, a.Configure(burden.Selection{
		Axes:    byLocation.Axes,
		Filters: burden.Filters{burden.Location: {"AFG"}},
	}))
	assert.True(t, a.Configure(byLocation))
	assert.Empty(t, a.Legend())
}

func TestConcurrentSetColors(t *testing.T) {
	a := NewAssigner(DefaultPalette)
	a.Configure(byLocation)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.SetColors(locationLines("AFG", "BGD", "COD")...)
		}()
	}
	wg.Wait()
	assert.Len(t, a.Legend(), 3)
}

func TestPaletteValidate(t *testing.T) {
	assert.NoError(t, DefaultPalette.Validate())
	assert.NoError(t, Palette{"#abc"}.Validate())
	assert.Error(t, Palette{}.Validate())
	assert.Error(t, Palette{"#abc", "blue"}.Validate())
}

func TestColorsDefine(t *testing.T) {
	for _, test := range []struct {
		description string
		colors      Colors
		wantUpdates []util.PropertyUpdate
	}{{
		description: "stroke and fill",
		colors:      Colors{StrokeColor: "#332288", FillColor: "#117733", StrokeOpacity: 1, FillOpacity: 0.2},
		wantUpdates: []util.PropertyUpdate{
			util.StringProperty(strokeColorKey, "#332288"),
			util.DoubleProperty(strokeOpacityKey, 1),
			util.StringProperty(fillColorKey, "#117733"),
			util.DoubleProperty(fillOpacityKey, 0.2),
		},
	}, {
		description: "stroke only",
		colors:      Colors{StrokeColor: "#332288", StrokeOpacity: 0.5, FillOpacity: 0.2},
		wantUpdates: []util.PropertyUpdate{
			Stroke("#332288"),
			util.DoubleProperty(strokeOpacityKey, 0.5),
		},
	}, {
		description: "no colors",
		colors:      Colors{},
		wantUpdates: []util.PropertyUpdate{},
	}} {
		t.Run(test.description, func(t *testing.T) {
			if msg, failed := testutil.NewUpdateComparator().
				WithTestUpdates(test.colors.Define()).
				WithWantUpdates(test.wantUpdates...).
				Compare(t); failed {
				t.Fatal(msg)
			}
		})
	}
}

func TestPaletteDefine(t *testing.T) {
	if msg, failed := testutil.NewUpdateComparator().
		WithTestUpdates(Palette{"#111111", "#222222"}.Define()).
		WithWantUpdates(util.StringsProperty(paletteKey, "#111111", "#222222")).
		Compare(t); failed {
		t.Fatal(msg)
	}
}
