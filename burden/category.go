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
	"strconv"
)

func stringify(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ResolveCategory returns the category value of the provided row on the
// provided dimension.  NoDimension resolves to the empty string, and a row
// with no location resolves to Global on the Location dimension.  Any other
// absent value yields a *MissingCategoryError.
func ResolveCategory(dim Dimension, row DataRow) (string, error) {
	if dim == NoDimension {
		return "", nil
	}
	v, ok := row[string(dim)]
	if !ok || v == nil {
		if dim == Location {
			return Global, nil
		}
		return "", &MissingCategoryError{Dimension: dim}
	}
	return stringify(v), nil
}

// MetadataOf returns the provided row's category values on each of the
// provided axes.
func MetadataOf(axes Axes, row DataRow) (Metadata, error) {
	var meta Metadata
	var err error
	if meta.Column, err = ResolveCategory(axes.Column, row); err != nil {
		return Metadata{}, err
	}
	if meta.Row, err = ResolveCategory(axes.Row, row); err != nil {
		return Metadata{}, err
	}
	if meta.WithinBand, err = ResolveCategory(axes.WithinBand, row); err != nil {
		return Metadata{}, err
	}
	return meta, nil
}

// Matches returns true if the provided row has the provided metadata's value
// on every assigned axis.  Unassigned axes are ignored, and a row that cannot
// be resolved on an assigned axis does not match.  A location-less row
// matches a Global location value.
func Matches(axes Axes, meta Metadata, row DataRow) bool {
	for _, axis := range AllAxes {
		dim := axes.Dimension(axis)
		if dim == NoDimension {
			continue
		}
		got, err := ResolveCategory(dim, row)
		if err != nil || got != meta.Value(axis) {
			return false
		}
	}
	return true
}

// Number returns the numeric value of the provided column in the provided
// row.  String values are parsed as floats.
func Number(row DataRow, column string) (float64, error) {
	v, ok := row[column]
	if !ok || v == nil {
		return 0, fmt.Errorf("row has no '%s' column", column)
	}
	switch v := v.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("column '%s': %w", column, err)
		}
		return f, nil
	}
	return 0, fmt.Errorf("column '%s' has non-numeric value %v", column, v)
}

// FindMatch returns the first of the provided rows that Matches the provided
// metadata, or nil if none do.
func FindMatch(axes Axes, meta Metadata, rows []DataRow) DataRow {
	for _, row := range rows {
		if Matches(axes, meta, row) {
			return row
		}
	}
	return nil
}
