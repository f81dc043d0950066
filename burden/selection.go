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

package burden

import (
	"fmt"
	"slices"
)

// Filters maps a Dimension to its permitted values.  A dimension with no
// permitted values listed permits every value.
type Filters map[Dimension][]string

// Count returns the number of values permitted on the provided dimension,
// or 0 if the dimension is unfiltered.
func (f Filters) Count(dim Dimension) int {
	return len(f[dim])
}

// Permits returns true if the provided value is permitted on the provided
// dimension.
func (f Filters) Permits(dim Dimension, value string) bool {
	permitted := f[dim]
	return len(permitted) == 0 || slices.Contains(permitted, value)
}

// PermitsRow returns true if the provided row is permitted on every filtered
// dimension.  A row missing a filtered non-location dimension is not
// permitted.
func (f Filters) PermitsRow(row DataRow) bool {
	for dim, permitted := range f {
		if len(permitted) == 0 {
			continue
		}
		v, err := ResolveCategory(dim, row)
		if err != nil || !slices.Contains(permitted, v) {
			return false
		}
	}
	return true
}

// Apply returns the rows permitted by the receiver, in their original order.
func (f Filters) Apply(rows []DataRow) []DataRow {
	ret := make([]DataRow, 0, len(rows))
	for _, row := range rows {
		if f.PermitsRow(row) {
			ret = append(ret, row)
		}
	}
	return ret
}

// Metric is the burden quantity plotted.
type Metric string

// Supported metrics.
const (
	DeathsAverted Metric = "deaths_averted"
	DALYsAverted  Metric = "dalys_averted"
)

// Focus is the single disease or location the dashboard is showing.
type Focus struct {
	Dimension Dimension
	Value     string
}

// Selection is the user's current view: axis assignments, filters, scale,
// focus and metric.
type Selection struct {
	Axes     Axes
	Filters  Filters
	LogScale bool
	Focus    Focus
	Metric   Metric
}

func invalid(format string, args ...any) error {
	return &InvalidSelectionError{Reason: fmt.Sprintf(format, args...)}
}

// Validate returns an *InvalidSelectionError if the receiver is not a
// supported combination.
func (s Selection) Validate() error {
	if s.Axes.Row == NoDimension {
		return invalid("no row dimension")
	}
	if s.Axes.WithinBand == NoDimension {
		return invalid("no within-band dimension")
	}
	seen := map[Dimension]Axis{}
	for _, axis := range AllAxes {
		dim := s.Axes.Dimension(axis)
		if dim == NoDimension {
			continue
		}
		if _, err := ParseDimension(string(dim)); err != nil {
			return invalid("%s axis: %s", axis, err)
		}
		if other, ok := seen[dim]; ok {
			return invalid("dimension '%s' assigned to both %s and %s axes", dim, other, axis)
		}
		seen[dim] = axis
	}
	switch s.Focus.Dimension {
	case Disease, Location:
	default:
		return invalid("focus dimension must be '%s' or '%s', got '%s'", Disease, Location, s.Focus.Dimension)
	}
	if s.Focus.Value == "" {
		return invalid("no focus value")
	}
	if s.Axes.Column == s.Focus.Dimension {
		return invalid("focus dimension '%s' cannot be the column dimension", s.Focus.Dimension)
	}
	switch s.Metric {
	case DeathsAverted, DALYsAverted:
	default:
		return invalid("unsupported metric '%s'", s.Metric)
	}
	return nil
}
