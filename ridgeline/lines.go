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

// Package ridgeline builds ridgeline plot geometry from burden histogram and
// summary rows: one outline per (column, row, within-band) category triple,
// one confidence-interval area per summary row, and a mean-of-means order for
// the row axis.
package ridgeline

import (
	"fmt"
	"math"

	"github.com/ilhamster/burdenviz/burden"
	"github.com/ilhamster/burdenviz/color"
)

// Point is a single polyline vertex.
type Point struct {
	X, Y float64
}

// Bands holds a Line's categorical axis keys: the column label (X) and the
// row label (Y).  X is empty when no column dimension is assigned.
type Bands struct {
	X, Y string
}

// Line is a polyline or filled polygon to be drawn in a ridgeline band.
type Line struct {
	Points   []Point
	Bands    Bands
	Metadata burden.Metadata
	// Fill is true for confidence-interval areas.
	Fill   bool
	Colors color.Colors
}

// LineMetadata returns the receiver's category values.
func (l *Line) LineMetadata() burden.Metadata {
	return l.Metadata
}

// ApplyColors sets the receiver's colors.
func (l *Line) ApplyColors(c color.Colors) {
	l.Colors = c
}

func bandsOf(axes burden.Axes, meta burden.Metadata, labelOf burden.LabelFunc) Bands {
	return Bands{
		X: labelOf.Label(axes.Column, meta.Column),
		Y: labelOf.Label(axes.Row, meta.Row),
	}
}

// numbers returns the numeric values of the provided columns.  Missing or
// unparseable values are NaN, which geometry carries through unchanged.
func numbers(row burden.DataRow, columns ...string) []float64 {
	ret := make([]float64, len(columns))
	for idx, col := range columns {
		v, err := burden.Number(row, col)
		if err != nil {
			v = math.NaN()
		}
		ret[idx] = v
	}
	return ret
}

// BuildRidgeLines returns one histogram outline per distinct (column, row,
// within-band) category triple among the provided histogram rows, in order
// of first appearance.  Rows sharing a triple are expected in ascending bin
// order.  Contiguous bins are joined into a single outline, while a gap
// between bins drops the outline to zero and starts a disconnected segment.
// Overlapping bins are treated as a gap, as is a bin with a missing or
// malformed lower bound.  Only a row lacking a required category yields an
// error.
func BuildRidgeLines(rows []burden.DataRow, axes burden.Axes, labelOf burden.LabelFunc) ([]*Line, error) {
	var lines []*Line
	byMeta := map[burden.Metadata]*Line{}
	for idx, row := range rows {
		meta, err := burden.MetadataOf(axes, row)
		if err != nil {
			return nil, fmt.Errorf("histogram row %d: %w", idx, err)
		}
		vals := numbers(row, burden.LowerBoundColumn, burden.UpperBoundColumn, burden.CountsColumn)
		lower, upper, counts := vals[0], vals[1], vals[2]
		topLeft, topRight, closing := Point{lower, counts}, Point{upper, counts}, Point{upper, 0}
		line, ok := byMeta[meta]
		if !ok {
			line = &Line{
				Points:   []Point{{lower, 0}, topLeft, topRight, closing},
				Bands:    bandsOf(axes, meta, labelOf),
				Metadata: meta,
			}
			byMeta[meta] = line
			lines = append(lines, line)
			continue
		}
		// The last point is always the previous bin's speculative close at
		// (previous upper bound, 0).
		last := len(line.Points) - 1
		if lower == line.Points[last].X {
			line.Points = line.Points[:last]
			if line.Points[last-1] != topLeft {
				line.Points = append(line.Points, topLeft)
			}
			line.Points = append(line.Points, topRight, closing)
		} else {
			line.Points = append(line.Points, Point{lower, 0}, topLeft, topRight, closing)
		}
	}
	return lines, nil
}

// BuildConfidenceIntervalAreas returns one filled rectangle, spanning
// [ci_lower, ci_upper] horizontally and [0, yMax] vertically, per provided
// summary row.  Missing or malformed bounds are NaN.
func BuildConfidenceIntervalAreas(rows []burden.DataRow, yMax float64, axes burden.Axes, labelOf burden.LabelFunc) ([]*Line, error) {
	lines := make([]*Line, 0, len(rows))
	for idx, row := range rows {
		meta, err := burden.MetadataOf(axes, row)
		if err != nil {
			return nil, fmt.Errorf("summary row %d: %w", idx, err)
		}
		vals := numbers(row, burden.CILowerColumn, burden.CIUpperColumn)
		lower, upper := vals[0], vals[1]
		lines = append(lines, &Line{
			Points:   []Point{{lower, 0}, {lower, yMax}, {upper, yMax}, {upper, 0}},
			Bands:    bandsOf(axes, meta, labelOf),
			Metadata: meta,
			Fill:     true,
		})
	}
	return lines, nil
}

// YExtent returns the largest Y value among the provided lines' points, or 0
// if there are none.  NaN values are ignored.
func YExtent(lines []*Line) float64 {
	var ret float64
	for _, line := range lines {
		for _, p := range line.Points {
			if !math.IsNaN(p.Y) && p.Y > ret {
				ret = p.Y
			}
		}
	}
	return ret
}

// XExtent returns the smallest and largest X values among the provided lines'
// points.  NaN values are ignored.  If no point has a valid X, both returned
// values are 0.
func XExtent(lines []*Line) (lo, hi float64) {
	first := true
	for _, line := range lines {
		for _, p := range line.Points {
			if math.IsNaN(p.X) {
				continue
			}
			if first || p.X < lo {
				lo = p.X
			}
			if first || p.X > hi {
				hi = p.X
			}
			first = false
		}
	}
	return lo, hi
}
