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
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ilhamster/burdenviz/burden"
)

func line(row, withinBand, rowLabel string) *Line {
	return &Line{
		Bands:    Bands{Y: rowLabel},
		Metadata: burden.Metadata{Row: row, WithinBand: withinBand},
	}
}

var locationByDisease = burden.Axes{Row: burden.Location, WithinBand: burden.Disease}

func TestOrderRowCategories(t *testing.T) {
	for _, test := range []struct {
		description string
		axes        burden.Axes
		lines       []*Line
		summaries   []burden.DataRow
		want        []string
		wantWarning bool
	}{{
		description: "no summaries keeps encounter order",
		axes:        diseaseByLocation,
		lines: []*Line{
			line("rubella", "AFG", "rubella"),
			line("measles", "AFG", "measles"),
			line("rubella", "BGD", "rubella"),
		},
		want: []string{"rubella", "measles"},
	}, {
		description: "ascending mean of means",
		axes:        diseaseByLocation,
		lines: []*Line{
			line("measles", "AFG", "measles"),
			line("polio", "AFG", "polio"),
			line("measles", "BGD", "measles"),
			line("rubella", "AFG", "rubella"),
		},
		summaries: []burden.DataRow{
			summary("measles", "AFG", 10, 0, 0),
			summary("measles", "BGD", 20, 0, 0),
			summary("polio", "AFG", 30, 0, 0),
			summary("rubella", "AFG", 5, 0, 0),
		},
		// measles ranks (10+20)/2 = 15.
		want: []string{"rubella", "measles", "polio"},
	}, {
		description: "ties broken by label",
		axes:        locationByDisease,
		lines: []*Line{
			line("BGD", "measles", "Bangladesh"),
			line("COD", "measles", "Congo"),
			line("AFG", "measles", "Afghanistan"),
		},
		summaries: []burden.DataRow{
			summary("measles", "AFG", 5, 0, 0),
			summary("measles", "BGD", 5, 0, 0),
			summary("measles", "COD", 1, 0, 0),
		},
		want: []string{"COD", "AFG", "BGD"},
	}, {
		description: "labels decide ties, not values",
		axes:        locationByDisease,
		lines: []*Line{
			line("AAA", "measles", "Zimbabwe"),
			line("ZZZ", "measles", "Albania"),
		},
		summaries: []burden.DataRow{
			summary("measles", "AAA", 5, 0, 0),
			summary("measles", "ZZZ", 5, 0, 0),
		},
		want: []string{"ZZZ", "AAA"},
	}, {
		description: "global within-band matches location-less summary",
		axes:        diseaseByLocation,
		lines: []*Line{
			line("measles", burden.Global, "measles"),
			line("rubella", burden.Global, "rubella"),
		},
		summaries: []burden.DataRow{
			summary("measles", "", 9, 0, 0),
			summary("rubella", "", 2, 0, 0),
		},
		want: []string{"rubella", "measles"},
	}, {
		description: "global row matches location-less summary",
		axes:        locationByDisease,
		lines: []*Line{
			line(burden.Global, "measles", "Global"),
			line("AFG", "measles", "Afghanistan"),
		},
		summaries: []burden.DataRow{
			summary("measles", "AFG", 9, 0, 0),
			summary("measles", "", 100, 0, 0),
		},
		want: []string{"AFG", burden.Global},
	}, {
		description: "any missing summary falls back to encounter order",
		axes:        diseaseByLocation,
		lines: []*Line{
			line("polio", "AFG", "polio"),
			line("measles", "AFG", "measles"),
			line("measles", "BGD", "measles"),
		},
		summaries: []burden.DataRow{
			summary("polio", "AFG", 30, 0, 0),
			summary("measles", "AFG", 10, 0, 0),
		},
		want:        []string{"polio", "measles"},
		wantWarning: true,
	}, {
		description: "malformed mean falls back to encounter order",
		axes:        diseaseByLocation,
		lines: []*Line{
			line("polio", "AFG", "polio"),
			line("measles", "AFG", "measles"),
		},
		summaries: []burden.DataRow{
			summary("polio", "AFG", 30, 0, 0),
			{"disease": "measles", "location": "AFG", "mean": "lots"},
		},
		want:        []string{"polio", "measles"},
		wantWarning: true,
	}} {
		t.Run(test.description, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))
			got := OrderRowCategories(test.axes, test.lines, test.summaries, logger)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("OrderRowCategories() = %v, diff (-want +got) %s", got, diff)
			}
			warned := strings.Contains(buf.String(), "level=WARN")
			if warned != test.wantWarning {
				t.Errorf("OrderRowCategories() logged '%s', wanted warning: %t", buf.String(), test.wantWarning)
			}
			if warned && !strings.Contains(buf.String(), burden.ErrMissingSummaryData.Error()) {
				t.Errorf("OrderRowCategories() warning '%s' does not name the missing summary", buf.String())
			}
		})
	}
}

func TestOrderRowCategoriesIsDeterministic(t *testing.T) {
	lines := []*Line{
		line("b", "AFG", "b"),
		line("a", "AFG", "a"),
		line("c", "AFG", "c"),
		line("d", "AFG", "d"),
	}
	summaries := []burden.DataRow{
		summary("a", "AFG", 1, 0, 0),
		summary("b", "AFG", 1, 0, 0),
		summary("c", "AFG", 0.5, 0, 0),
		summary("d", "AFG", 1, 0, 0),
	}
	first := OrderRowCategories(diseaseByLocation, lines, summaries, nil)
	for i := 0; i < 10; i++ {
		if diff := cmp.Diff(first, OrderRowCategories(diseaseByLocation, lines, summaries, nil)); diff != "" {
			t.Fatalf("OrderRowCategories() is not deterministic: diff %s", diff)
		}
	}
	if diff := cmp.Diff([]string{"c", "a", "b", "d"}, first); diff != "" {
		t.Errorf("OrderRowCategories() = %v, diff (-want +got) %s", first, diff)
	}
}

func TestSortByRank(t *testing.T) {
	values := []string{"zaf", "eth", "cod", "afg", "bgd"}
	ranks := map[string]float64{"zaf": 1, "eth": 1, "cod": 0, "afg": 1, "bgd": 1}
	labels := map[string]string{
		"zaf": "Zambia",
		"eth": "Éthiopie",
		"cod": "Congo",
		// Identical labels order by value.
		"afg": "Same",
		"bgd": "Same",
	}
	want := []string{"cod", "eth", "afg", "bgd", "zaf"}
	got := sortByRank(values, ranks, labels)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sortByRank() = %v, diff (-want +got) %s", got, diff)
	}
	if diff := cmp.Diff([]string{"zaf", "eth", "cod", "afg", "bgd"}, values); diff != "" {
		t.Errorf("sortByRank() modified its input: diff (-want +got) %s", diff)
	}
}
