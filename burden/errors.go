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
	"errors"
	"fmt"
)

// Sentinel errors, matchable with errors.Is.
var (
	ErrMissingSummaryData = errors.New("missing summary data")
	ErrMissingCategory    = errors.New("missing category")
	ErrInvalidSelection   = errors.New("invalid selection")
)

// MissingSummaryDataError is returned when a plotted line has no matching
// summary row.
type MissingSummaryDataError struct {
	Metadata Metadata
}

func (e *MissingSummaryDataError) Error() string {
	return fmt.Sprintf("%s for row '%s' (column '%s', within-band '%s')",
		ErrMissingSummaryData, e.Metadata.Row, e.Metadata.Column, e.Metadata.WithinBand)
}

func (e *MissingSummaryDataError) Unwrap() error {
	return ErrMissingSummaryData
}

// MissingCategoryError is returned when a row has no value on a required
// dimension.
type MissingCategoryError struct {
	Dimension Dimension
}

func (e *MissingCategoryError) Error() string {
	return fmt.Sprintf("%s: row has no '%s' value", ErrMissingCategory, e.Dimension)
}

func (e *MissingCategoryError) Unwrap() error {
	return ErrMissingCategory
}

// InvalidSelectionError is returned for an unsupported combination of axes,
// focus and metric.
type InvalidSelectionError struct {
	Reason string
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidSelection, e.Reason)
}

func (e *InvalidSelectionError) Unwrap() error {
	return ErrInvalidSelection
}
