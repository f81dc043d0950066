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

package ridgeline

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/ilhamster/burdenviz/burden"
	"github.com/ilhamster/burdenviz/color"
	"github.com/ilhamster/burdenviz/tooltip"
)

// Data is the histogram and summary data of a single focus and metric, with
// locations already collapsed into a single location column.
type Data struct {
	Histogram []burden.DataRow
	Summaries []burden.DataRow
}

// Plot is a fully-resolved ridgeline plot, ready for encoding.
type Plot struct {
	Selection      burden.Selection
	ColorDimension burden.Dimension
	// Histogram outlines, in order of first appearance.
	Ridgelines []*Line
	// Confidence-interval areas, one per summary row.
	Areas []*Line
	// Row category values in draw order, bottom to top.
	RowOrder []string
	// Column category values in order of first appearance.
	ColumnOrder []string
	// The summary rows permitted by the selection's filters.
	Summaries        []burden.DataRow
	XMin, XMax, YMax float64
	Tooltips         *tooltip.Resolver
	LabelOf          burden.LabelFunc
}

func colorables(lines []*Line) []color.Colorable {
	ret := make([]color.Colorable, len(lines))
	for idx, line := range lines {
		ret[idx] = line
	}
	return ret
}

func columnOrder(lines []*Line) []string {
	var ret []string
	seen := map[string]struct{}{}
	for _, line := range lines {
		if _, ok := seen[line.Metadata.Column]; !ok {
			seen[line.Metadata.Column] = struct{}{}
			ret = append(ret, line.Metadata.Column)
		}
	}
	return ret
}

// Render builds the ridgeline plot of the provided data under the provided
// selection.  Ridgelines and confidence-interval areas are colored by the
// provided Assigner, whose color mapping is reset if the selection changes
// the color dimension.  Ordering fallbacks are logged to the provided logger,
// which may be nil.  An invalid selection, or a row missing a category on an
// assigned dimension, yields an error.
func Render(sel burden.Selection, data Data, assigner *color.Assigner, labelOf burden.LabelFunc, logger *slog.Logger) (*Plot, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	logger = orDiscard(logger)
	histogram := sel.Filters.Apply(data.Histogram)
	summaries := sel.Filters.Apply(data.Summaries)
	ridgelines, err := BuildRidgeLines(histogram, sel.Axes, labelOf)
	if err != nil {
		return nil, fmt.Errorf("failed to build ridgelines: %w", err)
	}
	yMax := YExtent(ridgelines)
	areas, err := BuildConfidenceIntervalAreas(summaries, yMax, sel.Axes, labelOf)
	if err != nil {
		return nil, fmt.Errorf("failed to build confidence intervals: %w", err)
	}
	rowOrder := OrderRowCategories(sel.Axes, ridgelines, summaries, logger)
	if assigner.Configure(sel) {
		logger.Debug("color mapping reset",
			slog.String("color_dimension", string(assigner.ColorDimension())))
	}
	assigner.SetColors(colorables(ridgelines)...)
	assigner.SetColors(colorables(areas)...)
	colorDim := assigner.ColorDimension()
	xMin, xMax := XExtent(slices.Concat(ridgelines, areas))
	return &Plot{
		Selection:      sel,
		ColorDimension: colorDim,
		Ridgelines:     ridgelines,
		Areas:          areas,
		RowOrder:       rowOrder,
		ColumnOrder:    columnOrder(ridgelines),
		Summaries:      summaries,
		XMin:           xMin,
		XMax:           xMax,
		YMax:           yMax,
		Tooltips:       tooltip.NewResolver(sel, colorDim, summaries, labelOf),
		LabelOf:        labelOf,
	}, nil
}
