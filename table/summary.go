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

package table

import (
	"fmt"
	"slices"

	"github.com/ilhamster/burdenviz/burden"
	"github.com/ilhamster/burdenviz/category"
	"github.com/ilhamster/burdenviz/ridgeline"
	"github.com/ilhamster/burdenviz/style"
	"github.com/ilhamster/burdenviz/tooltip"
	"github.com/ilhamster/burdenviz/util"
)

const (
	ciLowerKey = "ci_lower"
	ciUpperKey = "ci_upper"
)

var (
	meanCol      = Column(category.New("mean", "Mean", "Mean across simulations"))
	ciCol        = Column(category.New("ci", "95% CI", "95% confidence interval"))
	medianCol    = Column(category.New("median", "Median", "Median across simulations"))
	ciCellFormat = fmt.Sprintf("[$(%s), $(%s)]", ciLowerKey, ciUpperKey)
)

// DefaultRenderSettings are used when BuildSummary is given no
// RenderSettings.
var DefaultRenderSettings = RenderSettings{
	RowHeightPx: 20,
	FontSizePx:  12,
}

type summaryRow struct {
	rank int
	area *ridgeline.Line
	row  burden.DataRow
}

// BuildSummary defines a table of the provided plot's summary rows within
// the provided DataBuilder.  There is one column per assigned axis, followed
// by the mean, its confidence interval, and the median.  Rows follow the
// plot's row order, top band first, and each carries its confidence area's
// fill color.  If rs is nil, DefaultRenderSettings are used.
func BuildSummary(db util.DataBuilder, plot *ridgeline.Plot, rs *RenderSettings) (*Table, error) {
	if rs == nil {
		rs = &DefaultRenderSettings
	}
	if len(plot.Areas) != len(plot.Summaries) {
		return nil, fmt.Errorf("plot has %d confidence areas but %d summary rows", len(plot.Areas), len(plot.Summaries))
	}
	axes := plot.Selection.Axes
	var (
		dimCols []*ColumnUpdate
		dimAxes []burden.Axis
	)
	for _, axis := range burden.AllAxes {
		if dim := axes.Dimension(axis); dim != burden.NoDimension {
			dimCols = append(dimCols, Column(category.ForDimension(dim)))
			dimAxes = append(dimAxes, axis)
		}
	}
	t := New(db, rs, slices.Concat(dimCols, []*ColumnUpdate{meanCol, ciCol, medianCol})...)

	ranks := make(map[string]int, len(plot.RowOrder))
	for idx, value := range plot.RowOrder {
		ranks[value] = idx
	}
	rows := make([]summaryRow, len(plot.Areas))
	for idx, area := range plot.Areas {
		rows[idx] = summaryRow{
			rank: ranks[area.Metadata.Row],
			area: area,
			row:  plot.Summaries[idx],
		}
	}
	// RowOrder is bottom to top.
	slices.SortStableFunc(rows, func(a, b summaryRow) int {
		return b.rank - a.rank
	})
	for _, sr := range rows {
		var vals [4]float64
		for idx, column := range []string{burden.MeanColumn, burden.CILowerColumn, burden.CIUpperColumn, burden.MedianColumn} {
			v, err := burden.Number(sr.row, column)
			if err != nil {
				return nil, err
			}
			vals[idx] = v
		}
		mean, lower, upper := tooltip.FormatInterval(vals[0], vals[1], vals[2], plot.Selection.LogScale)
		median, _, _ := tooltip.FormatInterval(vals[3], vals[3], vals[3], plot.Selection.LogScale)
		cells := make([]CellUpdate, 0, len(dimCols)+3)
		for idx, col := range dimCols {
			dim := axes.Dimension(dimAxes[idx])
			cells = append(cells, Cell(col, util.String(plot.LabelOf.Label(dim, sr.area.Metadata.Value(dimAxes[idx])))))
		}
		cells = append(cells,
			Cell(meanCol, util.String(mean)),
			FormattedCell(ciCol, ciCellFormat,
				util.StringProperty(ciLowerKey, lower),
				util.StringProperty(ciUpperKey, upper),
			),
			Cell(medianCol, util.String(median)),
		)
		t.Row(cells...).With(
			style.New().With("fill", sr.area.Colors.FillColor).Define(),
		)
	}
	return t, nil
}
