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

package datasource

import (
	"github.com/ilhamster/burdenviz/burden"
	"github.com/ilhamster/burdenviz/category"
	"github.com/ilhamster/burdenviz/color"
	"github.com/ilhamster/burdenviz/ridgeline"
	"github.com/ilhamster/burdenviz/util"
)

const colorDimensionKey = "color_dimension"

// handleLegendQuery emits the legend of the provided plot: the category of
// its color dimension, then one child per color-dimension value drawn in the
// plot, in color assignment order.  Values assigned colors by earlier plots,
// but absent from this one, are left out.  A plot without a color dimension
// has an empty legend.
func handleLegendQuery(plot *ridgeline.Plot, legend []color.LegendEntry, series util.DataBuilder) error {
	dim := plot.ColorDimension
	series.With(util.StringProperty(colorDimensionKey, string(dim)))
	axis, ok := plot.Selection.Axes.AxisOf(dim)
	if dim == burden.NoDimension || !ok {
		return nil
	}
	series.With(category.ForDimension(dim).Define())
	drawn := map[string]struct{}{}
	for _, line := range plot.Ridgelines {
		drawn[line.Metadata.Value(axis)] = struct{}{}
	}
	for _, entry := range legend {
		if _, ok := drawn[entry.Value]; !ok {
			continue
		}
		series.Child().With(
			category.ForValue(dim, entry.Value, plot.LabelOf.Label(dim, entry.Value)).Define(),
			color.Stroke(entry.Color),
			color.Fill(entry.Color),
		)
	}
	return nil
}
