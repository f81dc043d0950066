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

// Package tooltip resolves the hover content of a ridgeline plot point: the
// labels of the point's categories and the summary statistics of the matching
// summary row.
package tooltip

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ilhamster/burdenviz/burden"
)

// Field is a single labeled tooltip entry.
type Field struct {
	Title, Value string
}

// Content is the resolved tooltip of a single point.  If no summary row
// matched the point, Mean, CILower and CIUpper are empty.
type Content struct {
	Color, Row, Column *Field
	Mean               string
	CILower, CIUpper   string
}

// Empty returns true if the receiver has nothing to show.
func (c Content) Empty() bool {
	return c.Color == nil && c.Row == nil && c.Column == nil && c.Mean == ""
}

// HasSummary returns true if the receiver carries summary statistics.
func (c Content) HasSummary() bool {
	return c.Mean != ""
}

// String returns the receiver as plain text, one field per line.
func (c Content) String() string {
	var lines []string
	for _, f := range []*Field{c.Color, c.Row, c.Column} {
		if f != nil {
			lines = append(lines, fmt.Sprintf("%s: %s", f.Title, f.Value))
		}
	}
	if c.HasSummary() {
		lines = append(lines,
			fmt.Sprintf("Mean: %s", c.Mean),
			fmt.Sprintf("95%% CI: [%s, %s]", c.CILower, c.CIUpper),
		)
	}
	return strings.Join(lines, "\n")
}

// Resolver resolves tooltips under a single selection.
type Resolver struct {
	axes      burden.Axes
	colorDim  burden.Dimension
	logScale  bool
	summaries []burden.DataRow
	labelOf   burden.LabelFunc
}

// NewResolver returns a new Resolver for points plotted under the provided
// selection and colored by the provided dimension, with the provided summary
// rows and labeler.
func NewResolver(sel burden.Selection, colorDim burden.Dimension, summaries []burden.DataRow, labelOf burden.LabelFunc) *Resolver {
	return &Resolver{
		axes:      sel.Axes,
		colorDim:  colorDim,
		logScale:  sel.LogScale,
		summaries: summaries,
		labelOf:   labelOf,
	}
}

func (r *Resolver) field(dim burden.Dimension, meta *burden.Metadata) *Field {
	axis, ok := r.axes.AxisOf(dim)
	if !ok {
		return nil
	}
	return &Field{
		Title: dim.Title(),
		Value: r.labelOf.Label(dim, meta.Value(axis)),
	}
}

// For returns the tooltip content of a point with the provided metadata.  A
// point without metadata has empty content.
func (r *Resolver) For(meta *burden.Metadata) Content {
	if meta == nil {
		return Content{}
	}
	var ret Content
	ret.Color = r.field(r.colorDim, meta)
	if r.axes.Row != r.colorDim {
		ret.Row = r.field(r.axes.Row, meta)
	}
	if r.axes.Column != r.colorDim {
		ret.Column = r.field(r.axes.Column, meta)
	}
	summary := burden.FindMatch(r.axes, *meta, r.summaries)
	if summary == nil {
		return ret
	}
	mean, meanErr := burden.Number(summary, burden.MeanColumn)
	lower, lowerErr := burden.Number(summary, burden.CILowerColumn)
	upper, upperErr := burden.Number(summary, burden.CIUpperColumn)
	if meanErr != nil || lowerErr != nil || upperErr != nil {
		return ret
	}
	ret.Mean, ret.CILower, ret.CIUpper = FormatInterval(mean, lower, upper, r.logScale)
	return ret
}

// FormatInterval formats a mean and its confidence interval.  Under log
// scale, each is in scientific notation; otherwise, each has two decimal
// places, and the upper bound is explicitly signed if the interval spans 0.
func FormatInterval(mean, lower, upper float64, logScale bool) (meanStr, lowerStr, upperStr string) {
	if logScale {
		return Scientific(mean), Scientific(lower), Scientific(upper)
	}
	upperStr = fmt.Sprintf("%.2f", upper)
	if lower < 0 && upper > 0 {
		upperStr = fmt.Sprintf("%+.2f", upper)
	}
	return fmt.Sprintf("%.2f", mean), fmt.Sprintf("%.2f", lower), upperStr
}

// Scientific formats v with a two-decimal mantissa, for example
// "1.23 × 10^-2".  Infinities and NaN are formatted as by strconv.
func Scientific(v float64) string {
	s := strconv.FormatFloat(v, 'e', 2, 64)
	mantissa, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	e, err := strconv.Atoi(exp)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%s × 10^%d", mantissa, e)
}
