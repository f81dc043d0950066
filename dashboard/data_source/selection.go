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
	"fmt"

	"github.com/ilhamster/burdenviz/burden"
	"github.com/ilhamster/burdenviz/util"
)

// Global filter keys.
const (
	FocusDimensionKey      = "focus_dimension"
	FocusKey               = "focus"
	MetricKey              = "metric"
	ColumnDimensionKey     = "column_dimension"
	RowDimensionKey        = "row_dimension"
	WithinBandDimensionKey = "within_band_dimension"
	LogScaleKey            = "log_scale"
	ResetColorsKey         = "reset_colors"
	// Filters on a dimension are keyed by FilterKeyPrefix + the dimension's
	// name, e.g. `filter_location`.
	FilterKeyPrefix = "filter_"
)

// FilterKey returns the global filter key holding the permitted values of
// the provided dimension.
func FilterKey(dim burden.Dimension) string {
	return FilterKeyPrefix + string(dim)
}

// queryFilters is assembled from the global filters once per DataRequest,
// prior to handling any individual DataSeriesRequest.
type queryFilters struct {
	selection   burden.Selection
	resetColors bool
}

func dimensionOf(globalFilters map[string]*util.V, key string) (burden.Dimension, error) {
	s, err := util.OptionalString(globalFilters, key, "")
	if err != nil {
		return burden.NoDimension, fmt.Errorf("global filter '%s': %w", key, err)
	}
	return burden.ParseDimension(s)
}

// filtersFromGlobalFilters returns the queryFilters specified by the provided
// DataRequest global filters.  The selection is validated.
func filtersFromGlobalFilters(globalFilters map[string]*util.V) (*queryFilters, error) {
	qf := &queryFilters{
		selection: burden.Selection{
			Filters: burden.Filters{},
		},
	}
	sel := &qf.selection
	var err error
	if sel.Focus.Dimension, err = dimensionOf(globalFilters, FocusDimensionKey); err != nil {
		return nil, err
	}
	if sel.Focus.Value, err = util.OptionalString(globalFilters, FocusKey, ""); err != nil {
		return nil, fmt.Errorf("global filter '%s': %w", FocusKey, err)
	}
	metric, err := util.OptionalString(globalFilters, MetricKey, string(burden.DeathsAverted))
	if err != nil {
		return nil, fmt.Errorf("global filter '%s': %w", MetricKey, err)
	}
	sel.Metric = burden.Metric(metric)
	for _, axis := range []struct {
		key string
		dim *burden.Dimension
	}{
		{ColumnDimensionKey, &sel.Axes.Column},
		{RowDimensionKey, &sel.Axes.Row},
		{WithinBandDimensionKey, &sel.Axes.WithinBand},
	} {
		if *axis.dim, err = dimensionOf(globalFilters, axis.key); err != nil {
			return nil, err
		}
	}
	if sel.LogScale, err = util.OptionalBool(globalFilters, LogScaleKey); err != nil {
		return nil, fmt.Errorf("global filter '%s': %w", LogScaleKey, err)
	}
	for _, dim := range burden.Dimensions {
		values, err := util.OptionalStrings(globalFilters, FilterKey(dim))
		if err != nil {
			return nil, fmt.Errorf("global filter '%s': %w", FilterKey(dim), err)
		}
		if len(values) > 0 {
			sel.Filters[dim] = values
		}
	}
	if qf.resetColors, err = util.OptionalBool(globalFilters, ResetColorsKey); err != nil {
		return nil, fmt.Errorf("global filter '%s': %w", ResetColorsKey, err)
	}
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	return qf, nil
}
