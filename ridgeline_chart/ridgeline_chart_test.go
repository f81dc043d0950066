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

package ridgelinechart

import (
	"math"
	"testing"

	"github.com/ilhamster/burdenviz/burden"
	"github.com/ilhamster/burdenviz/category"
	categoryaxis "github.com/ilhamster/burdenviz/category_axis"
	"github.com/ilhamster/burdenviz/color"
	continuousaxis "github.com/ilhamster/burdenviz/continuous_axis"
	"github.com/ilhamster/burdenviz/label"
	"github.com/ilhamster/burdenviz/magnitude"
	"github.com/ilhamster/burdenviz/ridgeline"
	"github.com/ilhamster/burdenviz/style"
	testutil "github.com/ilhamster/burdenviz/test_util"
	"github.com/ilhamster/burdenviz/tooltip"
	"github.com/ilhamster/burdenviz/util"
)

func TestRidgelineChart(t *testing.T) {
	xCat := category.New(xAxisID, "Deaths averted", "Deaths averted per simulation")
	yCat := category.New(yAxisID, "Simulations", "Simulations per bin")
	rowCat := category.ForDimension(burden.Disease)
	colCat := category.ForDimension(burden.Location)
	afgCat := category.ForValue(burden.Location, "AFG", "Afghanistan")
	bgdCat := category.ForValue(burden.Location, "BGD", "Bangladesh")
	axes := func() (*continuousaxis.Axis, *continuousaxis.Axis, *categoryaxis.Axis, *categoryaxis.Axis) {
		return continuousaxis.NewDoubleAxis(xCat, continuousaxis.Linear, 0, 2),
			continuousaxis.NewDoubleAxis(yCat, continuousaxis.Linear, 0, 8),
			categoryaxis.New(rowCat, []string{"rubella", "measles"}, nil, nil),
			categoryaxis.New(colCat, []string{"AFG", "BGD"}, nil, nil)
	}
	if err := testutil.CompareResponses(t,
		func(db util.DataBuilder) {
			x, y, rows, cols := axes()
			chart := New(db, x, y, rows, cols, util.StringProperty(colorDimensionKey, "location"))
			chart.AddSeries(afgCat, "measles", "AFG", util.BoolProperty(fillKey, false)).
				WithPoint(0, 0).
				WithPoint(0, 5, util.StringProperty("note", "peak")).
				WithPoint(1, 5)
			chart.AddSeries(bgdCat, "rubella", "BGD").
				WithPoint(1, 8)
		},
		func(db testutil.TestDataBuilder) {
			x, y, rows, cols := axes()
			db.With(util.StringProperty(colorDimensionKey, "location")).
				Child().
				Child().With(x.Define()).
				AndChild().With(y.Define()).
				AndChild().With(rows.Define()).
				AndChild().With(cols.Define())
			db.Child().With(
				afgCat.Define(),
				util.StringProperty("disease", "measles"),
				util.StringProperty("location", "AFG"),
				util.BoolProperty(fillKey, false),
			).Child().With(
				util.DoubleProperty(xAxisID, 0),
				util.DoubleProperty(yAxisID, 0),
			).AndChild().With(
				util.DoubleProperty(xAxisID, 0),
				util.DoubleProperty(yAxisID, 5),
				util.StringProperty("note", "peak"),
			).AndChild().With(
				util.DoubleProperty(xAxisID, 1),
				util.DoubleProperty(yAxisID, 5),
			)
			db.Child().With(
				bgdCat.Define(),
				util.StringProperty("disease", "rubella"),
				util.StringProperty("location", "BGD"),
			).Child().With(
				util.DoubleProperty(xAxisID, 1),
				util.DoubleProperty(yAxisID, 8),
			)
		},
	); err != nil {
		t.Fatal(err)
	}
}

func TestBuild(t *testing.T) {
	sel := burden.Selection{
		Axes:   burden.Axes{Row: burden.Disease, WithinBand: burden.Location},
		Focus:  burden.Focus{Dimension: burden.Location, Value: "AFG"},
		Metric: burden.DeathsAverted,
	}
	colors := color.Colors{
		StrokeColor:   "#332288",
		FillColor:     "#332288",
		StrokeOpacity: color.DefaultStrokeOpacity,
		FillOpacity:   color.DefaultFillOpacity,
	}
	meta := burden.Metadata{Row: "measles", WithinBand: "AFG"}
	summaries := []burden.DataRow{
		burden.SummaryRow{Disease: "measles", Location: "AFG", Mean: 1, CILower: 0.5, CIUpper: 1.5, Median: 1}.Row(),
	}
	plot := &ridgeline.Plot{
		Selection:      sel,
		ColorDimension: burden.Location,
		Ridgelines: []*ridgeline.Line{{
			Points: []ridgeline.Point{
				{X: 0, Y: 0}, {X: 0, Y: 4}, {X: 2, Y: 4}, {X: 2, Y: 0},
				{X: math.NaN(), Y: 0},
			},
			Bands:    ridgeline.Bands{Y: "measles"},
			Metadata: meta,
			Colors:   colors,
		}},
		Areas: []*ridgeline.Line{{
			Points:   []ridgeline.Point{{X: 0.5, Y: 0}, {X: 0.5, Y: 4}, {X: 1.5, Y: 4}, {X: 1.5, Y: 0}},
			Bands:    ridgeline.Bands{Y: "measles"},
			Metadata: meta,
			Fill:     true,
			Colors:   colors,
		}},
		RowOrder:  []string{"measles"},
		Summaries: summaries,
		XMin:      0,
		XMax:      2,
		YMax:      4,
		Tooltips:  tooltip.NewResolver(sel, burden.Location, summaries, nil),
	}
	tt := plot.Tooltips.For(&meta)
	html, err := tt.HTML()
	if err != nil {
		t.Fatalf("failed to render tooltip: %s", err)
	}
	rs := DefaultRenderSettings
	if err := testutil.CompareResponses(t,
		func(db util.DataBuilder) {
			if _, err := Build(db, plot, nil); err != nil {
				t.Fatalf("Build() yielded unexpected error %s", err)
			}
		},
		func(db testutil.TestDataBuilder) {
			x := continuousaxis.NewDoubleAxis(
				category.New(xAxisID, "Deaths averted", "Deaths averted per simulation"),
				continuousaxis.Linear, 0, 2)
			y := continuousaxis.NewDoubleAxis(
				category.New(yAxisID, "Simulations", "Simulations per bin"),
				continuousaxis.Linear, 0, 4)
			rows := categoryaxis.New(category.ForDimension(burden.Disease), []string{"measles"}, nil, &rs.Bands)
			db.With(
				util.StringProperty(colorDimensionKey, "location"),
				rs.XAxis.Apply(),
				rs.YAxis.Apply(),
			).Child().
				Child().With(x.Define()).
				AndChild().With(y.Define()).
				AndChild().With(rows.Define())
			seriesProps := func(id string, fill bool, strokeWidthPx float64) []util.PropertyUpdate {
				return []util.PropertyUpdate{
					category.New(id, "AFG", "measles").Define(),
					util.StringProperty("disease", "measles"),
					util.StringProperty(metaRowKey, "measles"),
					util.StringProperty(metaWithinBandKey, "AFG"),
					util.BoolProperty(fillKey, fill),
					style.ForLine(colors, fill, strokeWidthPx).Define(),
					label.Tooltip(tt.String()),
					label.TooltipHTML(html.String()),
					magnitude.Peak(4),
				}
			}
			db.Child().With(seriesProps("ridgeline_0", false, rs.StrokeWidthPx)...).
				Child().With(util.DoubleProperty(xAxisID, 0), util.DoubleProperty(yAxisID, 0)).
				AndChild().With(util.DoubleProperty(xAxisID, 0), util.DoubleProperty(yAxisID, 4)).
				AndChild().With(util.DoubleProperty(xAxisID, 2), util.DoubleProperty(yAxisID, 4)).
				AndChild().With(util.DoubleProperty(xAxisID, 2), util.DoubleProperty(yAxisID, 0))
			db.Child().With(seriesProps("ci_0", true, 0)...).
				Child().With(util.DoubleProperty(xAxisID, 0.5), util.DoubleProperty(yAxisID, 0)).
				AndChild().With(util.DoubleProperty(xAxisID, 0.5), util.DoubleProperty(yAxisID, 4)).
				AndChild().With(util.DoubleProperty(xAxisID, 1.5), util.DoubleProperty(yAxisID, 4)).
				AndChild().With(util.DoubleProperty(xAxisID, 1.5), util.DoubleProperty(yAxisID, 0))
		},
	); err != nil {
		t.Fatal(err)
	}
}
