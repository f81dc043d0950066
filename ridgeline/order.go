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
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/aclements/go-moremath/stats"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ilhamster/burdenviz/burden"
)

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}

// rowRanks returns the mean-of-means of each provided row value: the
// arithmetic mean, over every line with that row value, of the mean of that
// line's matching summary row.
func rowRanks(axes burden.Axes, values []string, linesByRow map[string][]*Line, summaries []burden.DataRow) (map[string]float64, error) {
	ranks := make(map[string]float64, len(values))
	for _, value := range values {
		lines := linesByRow[value]
		if len(lines) == 0 {
			return nil, &burden.MissingSummaryDataError{Metadata: burden.Metadata{Row: value}}
		}
		means := make([]float64, 0, len(lines))
		for _, line := range lines {
			summary := burden.FindMatch(axes, line.Metadata, summaries)
			if summary == nil {
				return nil, &burden.MissingSummaryDataError{Metadata: line.Metadata}
			}
			mean, err := burden.Number(summary, burden.MeanColumn)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", &burden.MissingSummaryDataError{Metadata: line.Metadata}, err)
			}
			means = append(means, mean)
		}
		ranks[value] = stats.Mean(means)
	}
	return ranks, nil
}

// OrderRowCategories returns the distinct row category values among the
// provided lines, sorted ascending by mean-of-means with ties broken by
// collation order of their row labels.  If there are no summaries, or any
// line lacks a matching summary, the values are returned in order of first
// appearance instead; the latter case is logged as a warning.
func OrderRowCategories(axes burden.Axes, lines []*Line, summaries []burden.DataRow, logger *slog.Logger) []string {
	var values []string
	labels := map[string]string{}
	linesByRow := map[string][]*Line{}
	for _, line := range lines {
		value := line.Metadata.Row
		if _, ok := linesByRow[value]; !ok {
			values = append(values, value)
			labels[value] = line.Bands.Y
		}
		linesByRow[value] = append(linesByRow[value], line)
	}
	if len(summaries) == 0 {
		return values
	}
	ranks, err := rowRanks(axes, values, linesByRow, summaries)
	if err != nil {
		orDiscard(logger).Warn("ranking rows by mean failed; using unsorted order",
			slog.String("row_dimension", string(axes.Row)),
			slog.Any("error", err))
		return values
	}
	return sortByRank(values, ranks, labels)
}

// sortByRank returns a copy of values sorted ascending by rank.  Equal ranks
// fall back to the collation order of the values' labels, then to the values
// themselves.
func sortByRank(values []string, ranks map[string]float64, labels map[string]string) []string {
	// Collators are not safe for concurrent use.
	collator := collate.New(language.Und)
	ordered := slices.Clone(values)
	slices.SortStableFunc(ordered, func(a, b string) int {
		if c := cmp.Compare(ranks[a], ranks[b]); c != 0 {
			return c
		}
		if c := collator.CompareString(labels[a], labels[b]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return ordered
}
