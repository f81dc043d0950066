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

// Package color supports coloring ridgeline plot lines by category.
//
// A line is drawn with a stroke color and a fill color, each with its own
// opacity.  Colors are HTML hex color strings drawn from a fixed, ordered
// palette; an Assigner binds each category value of the current color
// dimension to a palette entry in first-seen order, and keeps that binding
// stable across re-renders until it is explicitly reset.
//
// Colors may be attached to a response Datum via their Define() method:
//
//	lineDatum.With(
//	  assigner.ColorsForLine(meta).Define(),
//	)
//
// and a palette may be defined at the top of a response so that the
// renderer's legend can show it:
//
//	chart.With(color.Palette(palette).Define())
package color

import (
	"fmt"
	"regexp"

	"github.com/ilhamster/burdenviz/util"
)

const (
	paletteKey       = "color_palette"
	strokeColorKey   = "stroke_color"
	strokeOpacityKey = "stroke_opacity"
	fillColorKey     = "fill_color"
	fillOpacityKey   = "fill_opacity"
)

// Default opacities of lines.
const (
	DefaultStrokeOpacity = 1.0
	DefaultFillOpacity   = 0.2
)

// DefaultPalette is an ordered set of 14 colorblind-accessible colors.
var DefaultPalette = Palette{
	"#332288", "#117733", "#44aa99", "#88ccee",
	"#ddcc77", "#cc6677", "#aa4499", "#882255",
	"#e69f00", "#56b4e9", "#009e73", "#0072b2",
	"#d55e00", "#cc79a7",
}

// Palette is an ordered list of hex colors.
type Palette []string

var hexColorRE = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate returns an error if the receiver is empty or contains anything
// other than #rgb or #rrggbb hex colors.
func (p Palette) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("palette has no colors")
	}
	for idx, c := range p {
		if !hexColorRE.MatchString(c) {
			return fmt.Errorf("palette color %d ('%s') is not a hex color", idx, c)
		}
	}
	return nil
}

// Define annotates with a definition of the receiving Palette.
func (p Palette) Define() util.PropertyUpdate {
	return util.StringsProperty(paletteKey, p...)
}

// Colors holds the colors with which a single line is drawn.
type Colors struct {
	StrokeColor   string
	FillColor     string
	StrokeOpacity float64
	FillOpacity   float64
}

// Define annotates a Datum with the receiver's colors.  Unset colors are
// omitted.
func (c Colors) Define() util.PropertyUpdate {
	return util.Chain(
		util.If(c.StrokeColor != "", util.Chain(
			Stroke(c.StrokeColor),
			util.DoubleProperty(strokeOpacityKey, c.StrokeOpacity),
		)),
		util.If(c.FillColor != "", util.Chain(
			Fill(c.FillColor),
			util.DoubleProperty(fillOpacityKey, c.FillOpacity),
		)),
	)
}

// Stroke annotates a Datum with the specified stroke color.
func Stroke(colorValue string) util.PropertyUpdate {
	return util.StringProperty(strokeColorKey, colorValue)
}

// Fill annotates a Datum with the specified fill color.
func Fill(colorValue string) util.PropertyUpdate {
	return util.StringProperty(fillColorKey, colorValue)
}
