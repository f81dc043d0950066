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

package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilhamster/burdenviz/burden"
	"github.com/ilhamster/burdenviz/dashboard/config"
	datasource "github.com/ilhamster/burdenviz/dashboard/data_source"
	"github.com/ilhamster/burdenviz/handlers"
	"github.com/ilhamster/burdenviz/util"
)

const (
	histogramCSV = `disease,country,subregion,activity_type,lower_bound,upper_bound,counts
measles,AFG,,routine,0,1,5
measles,AFG,,routine,1,2,3
measles,,SEAR,routine,0,2,4
measles,,,routine,0,1,9
`
	summaryCSV = `disease,country,subregion,activity_type,mean,ci_lower,ci_upper,median
measles,AFG,,routine,1,0.5,1.5,1
measles,,SEAR,routine,1.2,0.2,1.8,1.1
measles,,,routine,0.4,0.1,0.9,0.4
`
)

func newMux(t *testing.T) *http.ServeMux {
	t.Helper()
	dataRoot := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dataRoot, "measles"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dataRoot, "measles", "deaths_averted_histogram.csv"), []byte(histogramCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dataRoot, "measles", "deaths_averted_summary.csv"), []byte(summaryCSV), 0o644))
	resourceRoot := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(resourceRoot, "index.html"), []byte("<html></html>"), 0o644))

	cfg := config.Default()
	cfg.DataRoot = dataRoot
	cfg.ResourceRoot = resourceRoot
	cfg.DisplayNames = map[string]map[string]string{
		"location": {"SEAR": "South-East Asia"},
	}
	svc, err := New(cfg, nil)
	require.NoError(t, err)
	mux := http.NewServeMux()
	svc.RegisterHandlers(mux)
	return mux
}

func getData(t *testing.T, mux *http.ServeMux, focus string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := json.Marshal(&util.DataRequest{
		GlobalFilters: map[string]*util.V{
			datasource.FocusDimensionKey:      util.StringValue("disease"),
			datasource.FocusKey:               util.StringValue(focus),
			datasource.RowDimensionKey:        util.StringValue("location"),
			datasource.WithinBandDimensionKey: util.StringValue("activity_type"),
		},
		SeriesRequests: []*util.DataSeriesRequest{{
			QueryName:  datasource.RidgelineQuery,
			SeriesName: "ridgelines",
		}, {
			QueryName:  datasource.LegendQuery,
			SeriesName: "legend",
		}, {
			QueryName:  datasource.SummaryTableQuery,
			SeriesName: "summary",
		}},
	})
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, handlers.DataMethod+"?req="+url.QueryEscape(string(req)), nil))
	return rec
}

func TestService(t *testing.T) {
	mux := newMux(t)
	rec := getData(t, mux, "measles")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got struct {
		StringTable []string
		DataSeries  []struct {
			SeriesName string
		}
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got.DataSeries, 3)
	// Locations are labeled, with configured overrides winning.
	assert.NotContains(t, got.StringTable, "SEAR")
	assert.Contains(t, got.StringTable, "South-East Asia")
	assert.Contains(t, got.StringTable, "Global")
}

func TestServiceMissingCollection(t *testing.T) {
	mux := newMux(t)
	for _, focus := range []string{"rubella", "../measles", ".."} {
		rec := getData(t, mux, focus)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, focus)
	}
}

func TestFetchRejectsEscapingFocus(t *testing.T) {
	// Collections lie both in and above the data root; neither may be
	// reached by a focus naming a directory other than a child.
	base := t.TempDir()
	dataRoot := filepath.Join(base, "data")
	require.NoError(t, os.Mkdir(dataRoot, 0o755))
	for _, dir := range []string{base, dataRoot} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "deaths_averted_histogram.csv"), []byte(histogramCSV), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "deaths_averted_summary.csv"), []byte(summaryCSV), 0o644))
	}
	cf := &collectionFetcher{dataRoot: dataRoot, logger: slog.New(slog.DiscardHandler)}
	for _, focus := range []string{"..", ".", "", "a/b", "/measles"} {
		_, err := cf.Fetch(context.Background(), datasource.CollectionKey{
			Focus:  burden.Focus{Dimension: burden.Disease, Value: focus},
			Metric: burden.DeathsAverted,
		})
		assert.Error(t, err, "focus %q", focus)
	}
}

func TestServiceResources(t *testing.T) {
	mux := newMux(t)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/index.html", nil))
	// The file server redirects /index.html to /.
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<html></html>", rec.Body.String())
}
