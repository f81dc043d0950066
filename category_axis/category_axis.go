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

// Package categoryaxis provides helpers for defining categorical axes: axes
// divided into ordered bands, one per category value.
package categoryaxis

import (
	"github.com/ilhamster/burdenviz/category"
	"github.com/ilhamster/burdenviz/util"
)

const (
	axisTypeKey           = "axis_type"
	axisCategoriesKey     = "axis_categories"
	axisCategoryLabelsKey = "axis_category_labels"

	categoryAxisType = "category"

	bandHeightPxKey  = "band_height_px"
	bandPaddingPxKey = "band_padding_px"
	bandOverlapKey   = "band_overlap"
)

// RenderSettings is a collection of rendering settings for category axes.
// Extents are in pixels along the category axis.
type RenderSettings struct {
	// The height of each band.
	BandHeightPx int64
	// The spacing between adjacent bands.
	BandPaddingPx int64
	// How far a band's contents may extend into the next band, as a multiple
	// of BandHeightPx.  Ridgelines overlap when this exceeds 0.
	BandOverlap float64
}

// Define applies the receiver as a set of properties.
func (rs *RenderSettings) Define() util.PropertyUpdate {
	if rs == nil {
		return util.EmptyUpdate
	}
	return util.Chain(
		util.IntegerProperty(bandHeightPxKey, rs.BandHeightPx),
		util.IntegerProperty(bandPaddingPxKey, rs.BandPaddingPx),
		util.DoubleProperty(bandOverlapKey, rs.BandOverlap),
	)
}

// Axis is a categorical axis whose bands appear in a fixed order.
type Axis struct {
	cat            *category.Category
	values, labels []string
	renderSettings *RenderSettings
}

// New returns a new Axis with the specified category and band values, in
// draw order.  Each band is labeled with labelOf(value), or with its value if
// labelOf is nil.
func New(cat *category.Category, values []string, labelOf func(value string) string, renderSettings *RenderSettings) *Axis {
	labels := make([]string, len(values))
	for idx, value := range values {
		if labelOf == nil {
			labels[idx] = value
		} else {
			labels[idx] = labelOf(value)
		}
	}
	return &Axis{
		cat:            cat,
		values:         values,
		labels:         labels,
		renderSettings: renderSettings,
	}
}

// Define annotates with a definition of the receiver.
func (a *Axis) Define() util.PropertyUpdate {
	return util.Chain(
		a.cat.Define(),
		util.StringProperty(axisTypeKey, categoryAxisType),
		util.StringsProperty(axisCategoriesKey, a.values...),
		util.StringsProperty(axisCategoryLabelsKey, a.labels...),
		a.renderSettings.Define(),
	)
}

// CategoryID returns the category ID of the receiver.
func (a *Axis) CategoryID() string {
	return a.cat.ID()
}

// Value annotates a Datum as lying in the band of the provided value.
func (a *Axis) Value(value string) util.PropertyUpdate {
	return util.StringProperty(a.cat.ID(), value)
}
