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

// Package continuousaxis provides helpers for defining continuous numeric
// axes.  An axis has a category, a scale (linear or logarithmic), and minimum
// and maximum points along its domain.
package continuousaxis

import (
	"math"

	"github.com/ilhamster/burdenviz/category"
	"github.com/ilhamster/burdenviz/util"
)

const (
	axisTypeKey  = "axis_type"
	axisScaleKey = "axis_scale"
	axisMinKey   = "axis_min"
	axisMaxKey   = "axis_max"

	doubleAxisType = "double"

	xAxisRenderLabelHeightPxKey   = "x_axis_render_label_height_px"
	xAxisRenderMarkersHeightPxKey = "x_axis_render_markers_height_px"
	yAxisRenderLabelWidthPxKey    = "y_axis_render_label_width_px"
	yAxisRenderMarkersWidthPxKey  = "y_axis_render_markers_width_px"
)

// Scale is the mapping from an axis' domain to its rendered extent.
type Scale string

// Supported scales.
const (
	Linear Scale = "linear"
	Log    Scale = "log"
)

// ScaleFor returns Log if logScale is true, and Linear otherwise.
func ScaleFor(logScale bool) Scale {
	if logScale {
		return Log
	}
	return Linear
}

// XAxisRenderSettings configures the rendering of an X axis.
type XAxisRenderSettings struct {
	LabelHeightPx   int64
	MarkersHeightPx int64
}

// Apply annotates with the receiver.
func (x XAxisRenderSettings) Apply() util.PropertyUpdate {
	return util.Chain(
		util.IntegerProperty(xAxisRenderLabelHeightPxKey, x.LabelHeightPx),
		util.IntegerProperty(xAxisRenderMarkersHeightPxKey, x.MarkersHeightPx),
	)
}

// YAxisRenderSettings configures the rendering of a Y axis.
type YAxisRenderSettings struct {
	LabelWidthPx   int64
	MarkersWidthPx int64
}

// Apply annotates with the receiver.
func (y YAxisRenderSettings) Apply() util.PropertyUpdate {
	return util.Chain(
		util.IntegerProperty(yAxisRenderLabelWidthPxKey, y.LabelWidthPx),
		util.IntegerProperty(yAxisRenderMarkersWidthPxKey, y.MarkersWidthPx),
	)
}

// Axis is a continuous numeric axis.
type Axis struct {
	cat      *category.Category
	scale    Scale
	min, max float64
}

// NewDoubleAxis returns a new Axis with the specified category and scale.
// The axis' extent spans the provided extents; with no extents, its minimum
// is math.MaxFloat64 and its maximum -math.MaxFloat64.
func NewDoubleAxis(cat *category.Category, scale Scale, extents ...float64) *Axis {
	lo, hi := math.MaxFloat64, -math.MaxFloat64
	for _, extent := range extents {
		lo = math.Min(lo, extent)
		hi = math.Max(hi, extent)
	}
	return &Axis{
		cat:   cat,
		scale: scale,
		min:   lo,
		max:   hi,
	}
}

// Define annotates with a definition of the receiver.
func (a *Axis) Define() util.PropertyUpdate {
	return util.Chain(
		a.cat.Define(),
		util.StringProperty(axisTypeKey, doubleAxisType),
		util.StringProperty(axisScaleKey, string(a.scale)),
		util.DoubleProperty(axisMinKey, a.min),
		util.DoubleProperty(axisMaxKey, a.max),
	)
}

// CategoryID returns the category ID of the receiver.
func (a *Axis) CategoryID() string {
	return a.cat.ID()
}

// Value annotates a Datum with a value along the receiver.
func (a *Axis) Value(v float64) util.PropertyUpdate {
	return util.DoubleProperty(a.cat.ID(), v)
}
