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
	"slices"
	"sync"

	"cogentcore.org/core/base/keylist"

	"github.com/ilhamster/burdenviz/burden"
)

// colorableDimensions are the dimensions that may be colored by category.
var colorableDimensions = []burden.Dimension{burden.Location, burden.Disease}

func colorable(dim burden.Dimension) bool {
	return slices.Contains(colorableDimensions, dim)
}

// DimensionFor returns the dimension by which lines are colored under the
// provided selection: the within-band dimension if more than one of its
// values is in play, and otherwise the row dimension.  Activity type is never
// a color dimension; if the preferred dimension is activity type, the row,
// column, and within-band dimensions are tried in turn.  An unfiltered
// dimension has all its values in play.  If no candidate can be colored,
// NoDimension is returned.
func DimensionFor(sel burden.Selection) burden.Dimension {
	axes := sel.Axes
	var candidates []burden.Dimension
	if n := sel.Filters.Count(axes.WithinBand); n == 0 || n > 1 {
		candidates = append(candidates, axes.WithinBand)
	}
	candidates = append(candidates, axes.Row, axes.Column, axes.WithinBand)
	for _, dim := range candidates {
		if colorable(dim) {
			return dim
		}
	}
	return burden.NoDimension
}

// Colorable is a line that can be colored by an Assigner.
type Colorable interface {
	LineMetadata() burden.Metadata
	ApplyColors(c Colors)
}

// LegendEntry is a single category value and its assigned color.
type LegendEntry struct {
	Value, Color string
}

// Assigner assigns palette colors to category values in first-seen order.
// It maintains a separate assignment for each colorable dimension.  Once a
// value is bound to a color, it keeps that color until ResetColorMapping is
// called.  The palette wraps around once it is exhausted.
//
// An Assigner is safe for concurrent use.
type Assigner struct {
	palette Palette

	mu        sync.Mutex
	selection burden.Selection
	byDim     map[burden.Dimension]*keylist.List[string, string]
}

// NewAssigner returns a new Assigner drawing from the provided palette, or
// from DefaultPalette if the provided palette is empty.
func NewAssigner(palette Palette) *Assigner {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	a := &Assigner{
		palette: slices.Clone(palette),
		byDim:   map[burden.Dimension]*keylist.List[string, string]{},
	}
	for _, dim := range colorableDimensions {
		a.byDim[dim] = keylist.New[string, string]()
	}
	return a
}

// Palette returns the receiver's palette.
func (a *Assigner) Palette() Palette {
	return slices.Clone(a.palette)
}

// Configure sets the selection under which subsequent colors are assigned.
// If this changes the color dimension, the color mapping is reset and true
// is returned.
func (a *Assigner) Configure(sel burden.Selection) (reset bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	before := DimensionFor(a.selection)
	a.selection = sel
	if DimensionFor(sel) != before {
		a.resetLocked()
		return true
	}
	return false
}

// ColorDimension returns the dimension lines are currently colored by.
func (a *Assigner) ColorDimension() burden.Dimension {
	a.mu.Lock()
	defer a.mu.Unlock()
	return DimensionFor(a.selection)
}

func (a *Assigner) colorLocked(dim burden.Dimension, value string) string {
	assigned, ok := a.byDim[dim]
	if !ok {
		return a.palette[0]
	}
	if c, ok := assigned.AtTry(value); ok {
		return c
	}
	c := a.palette[a.nextIndexLocked(assigned)]
	assigned.Set(value, c)
	return c
}

// nextIndexLocked returns the palette index of the next color to assign.
// Colors kept across a reset are skipped until the palette is exhausted.
func (a *Assigner) nextIndexLocked(assigned *keylist.List[string, string]) int {
	n := len(a.palette)
	idx := assigned.Len() % n
	if assigned.Len() >= n {
		return idx
	}
	for range n {
		if !slices.Contains(assigned.Values, a.palette[idx]) {
			return idx
		}
		idx = (idx + 1) % n
	}
	return assigned.Len() % n
}

func (a *Assigner) colorsForLineLocked(meta burden.Metadata) Colors {
	dim := DimensionFor(a.selection)
	var value string
	if axis, ok := a.selection.Axes.AxisOf(dim); ok {
		value = meta.Value(axis)
	}
	c := a.colorLocked(dim, value)
	return Colors{
		StrokeColor:   c,
		FillColor:     c,
		StrokeOpacity: DefaultStrokeOpacity,
		FillOpacity:   DefaultFillOpacity,
	}
}

// ColorsForLine returns the colors of a line with the provided metadata,
// assigning a new color to its color-dimension value if necessary.
func (a *Assigner) ColorsForLine(meta burden.Metadata) Colors {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.colorsForLineLocked(meta)
}

// SetColors colors each provided line, in order.
func (a *Assigner) SetColors(lines ...Colorable) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, line := range lines {
		line.ApplyColors(a.colorsForLineLocked(line.LineMetadata()))
	}
}

func (a *Assigner) resetLocked() {
	for _, assigned := range a.byDim {
		globalColor, hasGlobal := assigned.AtTry(burden.Global)
		assigned.Reset()
		if hasGlobal {
			assigned.Set(burden.Global, globalColor)
		}
	}
}

// ResetColorMapping discards all color assignments except that of the
// global location.
func (a *Assigner) ResetColorMapping() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resetLocked()
}

// Legend returns the color assignments of the current color dimension, in
// assignment order.
func (a *Assigner) Legend() []LegendEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	assigned, ok := a.byDim[DimensionFor(a.selection)]
	if !ok {
		return nil
	}
	ret := make([]LegendEntry, assigned.Len())
	for idx, value := range assigned.Keys {
		ret[idx] = LegendEntry{Value: value, Color: assigned.Values[idx]}
	}
	return ret
}
