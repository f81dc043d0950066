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

// Package magnitude supports attaching magnitudes to plotted items.
package magnitude

import (
	"math"

	"github.com/ilhamster/burdenviz/util"
)

const (
	peakMagnitudeKey = "peak_magnitude"
)

// Peak returns a PropertyUpdate that annotates with the provided peak
// magnitude: the greatest height an item reaches.
func Peak(peak float64) util.PropertyUpdate {
	return util.DoubleProperty(peakMagnitudeKey, peak)
}

// PeakOf returns the greatest of the provided values, ignoring NaNs.  It
// returns 0 if no value is a number.
func PeakOf(values ...float64) float64 {
	peak := math.Inf(-1)
	for _, v := range values {
		if !math.IsNaN(v) && v > peak {
			peak = v
		}
	}
	if math.IsInf(peak, -1) {
		return 0
	}
	return peak
}
