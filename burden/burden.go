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

// Package burden defines the data model shared by the burden dashboard:
// histogram and summary rows of deaths or DALYs averted, the dimensions those
// rows are sliced by, and the assignment of dimensions to plot axes.
//
// Rows arrive with their multi-resolution location columns (country,
// subregion) already collapsed into a single `location` column.  A row with
// no location is a global estimate; ResolveCategory reports it under the
// Global label.
package burden

import (
	"fmt"
)

// Dimension is an axis of data slicing.
type Dimension string

// Supported dimensions.  NoDimension marks an axis that is not in use.
const (
	NoDimension  Dimension = ""
	Location     Dimension = "location"
	Disease      Dimension = "disease"
	ActivityType Dimension = "activity_type"
)

// Title returns a human-readable name for the receiver.
func (d Dimension) Title() string {
	switch d {
	case Location:
		return "Location"
	case Disease:
		return "Disease"
	case ActivityType:
		return "Activity type"
	}
	return string(d)
}

// Dimensions lists every supported dimension.
var Dimensions = []Dimension{Location, Disease, ActivityType}

// ParseDimension returns the Dimension named by s.  The empty string parses
// as NoDimension.
func ParseDimension(s string) (Dimension, error) {
	switch d := Dimension(s); d {
	case NoDimension, Location, Disease, ActivityType:
		return d, nil
	}
	return NoDimension, fmt.Errorf("unknown dimension '%s'", s)
}

// Global is the category label of location-less (global) estimates.
const Global = "global"

// Axis is the role a Dimension plays in the current plot layout.
type Axis int

// Plot axes.  Rows are ridgelines, columns are side-by-side facets, and
// within-band categories share a ridgeline and are told apart by color.
const (
	Column Axis = iota
	Row
	WithinBand
)

// Axes lists every plot axis.
var AllAxes = []Axis{Column, Row, WithinBand}

func (a Axis) String() string {
	switch a {
	case Column:
		return "column"
	case Row:
		return "row"
	case WithinBand:
		return "within_band"
	}
	return fmt.Sprintf("axis(%d)", int(a))
}

// Axes assigns at most one Dimension to each Axis.  Column may be
// NoDimension.
type Axes struct {
	Column, Row, WithinBand Dimension
}

// Dimension returns the dimension assigned to the provided axis.
func (a Axes) Dimension(axis Axis) Dimension {
	switch axis {
	case Column:
		return a.Column
	case Row:
		return a.Row
	case WithinBand:
		return a.WithinBand
	}
	return NoDimension
}

// AxisOf returns the axis the provided dimension is assigned to, if any.
func (a Axes) AxisOf(dim Dimension) (Axis, bool) {
	if dim == NoDimension {
		return 0, false
	}
	for _, axis := range AllAxes {
		if a.Dimension(axis) == dim {
			return axis, true
		}
	}
	return 0, false
}

// Metadata holds a line's category value on each axis.  Values on unused
// axes are empty.
type Metadata struct {
	Column, Row, WithinBand string
}

// Value returns the category value on the provided axis.
func (m Metadata) Value(axis Axis) string {
	switch axis {
	case Column:
		return m.Column
	case Row:
		return m.Row
	case WithinBand:
		return m.WithinBand
	}
	return ""
}

// DataRow maps a column name to a string or numeric value.
type DataRow map[string]any

// Column names used in DataRows.
const (
	LowerBoundColumn = "lower_bound"
	UpperBoundColumn = "upper_bound"
	CountsColumn     = "counts"
	MeanColumn       = "mean"
	CILowerColumn    = "ci_lower"
	CIUpperColumn    = "ci_upper"
	MedianColumn     = "median"
)

func categoryColumns(row DataRow, disease, location, activityType string) DataRow {
	row[string(Disease)] = disease
	if location != "" {
		row[string(Location)] = location
	}
	if activityType != "" {
		row[string(ActivityType)] = activityType
	}
	return row
}

// HistogramRow is one histogram bin, [LowerBound, UpperBound), of the burden
// estimates for a disease, location and activity type.  An empty Location is
// a global estimate.
type HistogramRow struct {
	Disease      string
	Location     string
	ActivityType string
	LowerBound   float64
	UpperBound   float64
	Counts       float64
}

// Row returns the receiver as a DataRow.
func (hr HistogramRow) Row() DataRow {
	return categoryColumns(DataRow{
		LowerBoundColumn: hr.LowerBound,
		UpperBoundColumn: hr.UpperBound,
		CountsColumn:     hr.Counts,
	}, hr.Disease, hr.Location, hr.ActivityType)
}

// SummaryRow holds summary statistics of the burden estimates for a disease,
// location and activity type.  An empty Location is a global estimate.
type SummaryRow struct {
	Disease      string
	Location     string
	ActivityType string
	Mean         float64
	CILower      float64
	CIUpper      float64
	Median       float64
}

// Row returns the receiver as a DataRow.
func (sr SummaryRow) Row() DataRow {
	return categoryColumns(DataRow{
		MeanColumn:    sr.Mean,
		CILowerColumn: sr.CILower,
		CIUpperColumn: sr.CIUpper,
		MedianColumn:  sr.Median,
	}, sr.Disease, sr.Location, sr.ActivityType)
}

// LabelFunc returns the display label of a category value on a dimension.
type LabelFunc func(dim Dimension, value string) string

// Label returns the display label of the provided value, which is the value
// itself if the receiver is nil.  Values on NoDimension have no label.
func (lf LabelFunc) Label(dim Dimension, value string) string {
	if dim == NoDimension {
		return ""
	}
	if lf == nil {
		return value
	}
	return lf(dim, value)
}
