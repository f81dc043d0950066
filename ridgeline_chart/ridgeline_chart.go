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

// Package ridgelinechart facilitates the construction of ridgeline chart data.
// Given a dedicated chartRoot util.DataBuilder representing the root node of
// the chart, and which must not be used for any other purpose, a new Chart
// may be created via
//
//	chart := New(chartRoot, xAxis, yAxis, rowAxis, columnAxis, ...properties)
//
// where columnAxis may be nil.  A line within the chart, lying in the band of
// a row value and (if there is a column axis) a column value, is added via
//
//	series := chart.AddSeries(category, row, column, ...properties)
//
// and its points via
//
//	series.WithPoint(x, y, ...properties)
//
// Build assembles a whole chart from a ridgeline.Plot.
//
// The structure of a ridgeline chart in a response, with each level
// representing a DataSeries or nested Datum is:
//
//	ridgeline chart
//	  properties:
//	    * color dimension
//	    * <decorators>
//	  children:
//	    * axes
//	    * repeated series
//
//	axes
//	  children:
//	    * x axis (continuous)
//	    * y axis (continuous)
//	    * row axis (categorical)
//	    * column axis (categorical; optional)
//
//	series
//	  properties:
//	    * category definition
//	    * rowAxisName: StringValue (row band)
//	    * columnAxisName: StringValue (column band, if any)
//	    * line metadata and fill flag
//	    * peak magnitude
//	    * style and tooltips
//	  children:
//	    repeated points
//
//	point
//	  properties:
//	    * xAxisName: DoubleValue
//	    * yAxisName: DoubleValue
//	    * <decorators>
package ridgelinechart

import (
	"fmt"
	"math"

	"github.com/ilhamster/burdenviz/burden"
	"github.com/ilhamster/burdenviz/category"
	categoryaxis "github.com/ilhamster/burdenviz/category_axis"
	continuousaxis "github.com/ilhamster/burdenviz/continuous_axis"
	"github.com/ilhamster/burdenviz/label"
	"github.com/ilhamster/burdenviz/magnitude"
	"github.com/ilhamster/burdenviz/ridgeline"
	"github.com/ilhamster/burdenviz/style"
	"github.com/ilhamster/burdenviz/util"
)

const (
	colorDimensionKey = "color_dimension"
	metaColumnKey     = "meta_column"
	metaRowKey        = "meta_row"
	metaWithinBandKey = "meta_within_band"
	fillKey           = "fill"

	xAxisID = "x_axis"
	yAxisID = "y_axis"
)

// Chart represents a ridgeline chart embedded in a response.
type Chart struct {
	xAxis, yAxis  *continuousaxis.Axis
	rows, columns *categoryaxis.Axis
	db            util.DataBuilder
}

// New constructs a new ridgeline chart.  columns may be nil.
func New(
	db util.DataBuilder,
	xAxis, yAxis *continuousaxis.Axis,
	rows, columns *categoryaxis.Axis,
	properties ...util.PropertyUpdate,
) *Chart {
	ret := &Chart{
		xAxis:   xAxis,
		yAxis:   yAxis,
		rows:    rows,
		columns: columns,
		db:      db.With(properties...),
	}
	axes := ret.db.Child()
	axes.Child().With(xAxis.Define())
	axes.Child().With(yAxis.Define())
	axes.Child().With(rows.Define())
	if columns != nil {
		axes.Child().With(columns.Define())
	}
	return ret
}

// With annotates the receiver with the provided properties.
func (c *Chart) With(properties ...util.PropertyUpdate) *Chart {
	c.db.With(properties...)
	return c
}

// AddSeries defines a series within the receiver, tagged with the specified
// Category and lying in the specified row and column bands.  column is
// ignored if the receiver has no column axis.
func (c *Chart) AddSeries(cat *category.Category, row, column string, properties ...util.PropertyUpdate) *Series {
	db := c.db.Child().With(
		cat.Define(),
		c.rows.Value(row),
	)
	if c.columns != nil {
		db.With(c.columns.Value(column))
	}
	db.With(properties...)
	return &Series{
		chart: c,
		db:    db,
	}
}

// Series helps define a series within a Chart.
type Series struct {
	chart *Chart
	db    util.DataBuilder
}

// With annotates the receiver with the provided properties.
func (s *Series) With(properties ...util.PropertyUpdate) *Series {
	s.db.With(properties...)
	return s
}

// WithPoint adds a point to the receiver.
func (s *Series) WithPoint(x, y float64, properties ...util.PropertyUpdate) *Series {
	s.db.Child().With(
		s.chart.xAxis.Value(x),
		s.chart.yAxis.Value(y),
	).With(properties...)
	return s
}

// RenderSettings is a collection of rendering settings for ridgeline charts.
type RenderSettings struct {
	Bands         categoryaxis.RenderSettings
	XAxis         continuousaxis.XAxisRenderSettings
	YAxis         continuousaxis.YAxisRenderSettings
	StrokeWidthPx float64
}

// DefaultRenderSettings are used when Build is given no RenderSettings.
var DefaultRenderSettings = RenderSettings{
	Bands: categoryaxis.RenderSettings{
		BandHeightPx:  48,
		BandPaddingPx: 4,
		BandOverlap:   0.6,
	},
	XAxis:         continuousaxis.XAxisRenderSettings{LabelHeightPx: 20, MarkersHeightPx: 12},
	YAxis:         continuousaxis.YAxisRenderSettings{LabelWidthPx: 120, MarkersWidthPx: 12},
	StrokeWidthPx: 1.5,
}

func metricTitle(m burden.Metric) string {
	switch m {
	case burden.DeathsAverted:
		return "Deaths averted"
	case burden.DALYsAverted:
		return "DALYs averted"
	}
	return string(m)
}

func addLines(chart *Chart, plot *ridgeline.Plot, prefix string, lines []*ridgeline.Line, strokeWidthPx float64) error {
	axes := plot.Selection.Axes
	for idx, line := range lines {
		meta := line.Metadata
		tt := plot.Tooltips.For(&meta)
		html, err := tt.HTML()
		if err != nil {
			return fmt.Errorf("failed to render tooltip: %w", err)
		}
		series := chart.AddSeries(
			category.New(
				fmt.Sprintf("%s_%d", prefix, idx),
				plot.LabelOf.Label(axes.WithinBand, meta.WithinBand),
				line.Bands.Y,
			),
			meta.Row, meta.Column,
			util.StringProperty(metaRowKey, meta.Row),
			util.StringProperty(metaWithinBandKey, meta.WithinBand),
			util.If(axes.Column != burden.NoDimension, util.StringProperty(metaColumnKey, meta.Column)),
			util.BoolProperty(fillKey, line.Fill),
			style.ForLine(line.Colors, line.Fill, strokeWidthPx).Define(),
			label.Tooltip(tt.String()),
			label.TooltipHTML(html.String()),
		)
		heights := make([]float64, 0, len(line.Points))
		for _, p := range line.Points {
			// NaN has no JSON representation, and cannot be drawn.
			if math.IsNaN(p.X) || math.IsNaN(p.Y) {
				continue
			}
			series.WithPoint(p.X, p.Y)
			heights = append(heights, p.Y)
		}
		series.With(magnitude.Peak(magnitude.PeakOf(heights...)))
	}
	return nil
}

// Build assembles the provided plot into a Chart within the provided
// DataBuilder.  Ridgeline series are added before confidence-interval
// series.  If rs is nil, DefaultRenderSettings are used.
func Build(db util.DataBuilder, plot *ridgeline.Plot, rs *RenderSettings) (*Chart, error) {
	if rs == nil {
		rs = &DefaultRenderSettings
	}
	sel := plot.Selection
	title := metricTitle(sel.Metric)
	xAxis := continuousaxis.NewDoubleAxis(
		category.New(xAxisID, title, fmt.Sprintf("%s per simulation", title)),
		continuousaxis.ScaleFor(sel.LogScale),
		plot.XMin, plot.XMax,
	)
	yAxis := continuousaxis.NewDoubleAxis(
		category.New(yAxisID, "Simulations", "Simulations per bin"),
		continuousaxis.Linear,
		0, plot.YMax,
	)
	labeler := func(dim burden.Dimension) func(string) string {
		return func(value string) string {
			return plot.LabelOf.Label(dim, value)
		}
	}
	rows := categoryaxis.New(category.ForDimension(sel.Axes.Row), plot.RowOrder, labeler(sel.Axes.Row), &rs.Bands)
	var columns *categoryaxis.Axis
	if sel.Axes.Column != burden.NoDimension {
		columns = categoryaxis.New(category.ForDimension(sel.Axes.Column), plot.ColumnOrder, labeler(sel.Axes.Column), nil)
	}
	chart := New(db, xAxis, yAxis, rows, columns,
		util.StringProperty(colorDimensionKey, string(plot.ColorDimension)),
		rs.XAxis.Apply(),
		rs.YAxis.Apply(),
	)
	if err := addLines(chart, plot, "ridgeline", plot.Ridgelines, rs.StrokeWidthPx); err != nil {
		return nil, err
	}
	if err := addLines(chart, plot, "ci", plot.Areas, 0); err != nil {
		return nil, err
	}
	return chart, nil
}
