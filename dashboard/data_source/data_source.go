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

// Package datasource provides a data source for burden-estimate ridgeline
// plots.
package datasource

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/simplelru"

	"github.com/ilhamster/burdenviz/burden"
	"github.com/ilhamster/burdenviz/color"
	"github.com/ilhamster/burdenviz/ridgeline"
	ridgelinechart "github.com/ilhamster/burdenviz/ridgeline_chart"
	"github.com/ilhamster/burdenviz/table"
	"github.com/ilhamster/burdenviz/util"
)

// Supported queries.
const (
	RidgelineQuery    = "burden.ridgeline"
	LegendQuery       = "burden.legend"
	SummaryTableQuery = "burden.summary_table"
)

// CollectionKey identifies a single collection: the estimates of one metric
// for one focus.
type CollectionKey struct {
	Focus  burden.Focus
	Metric burden.Metric
}

func (ck CollectionKey) String() string {
	return fmt.Sprintf("%s:%s/%s", ck.Focus.Dimension, ck.Focus.Value, ck.Metric)
}

// Collection is a single fetched collection.
type Collection struct {
	Data ridgeline.Data
}

// Fetcher describes types capable of fetching collections.
type Fetcher interface {
	// Fetch fetches the specified collection, returning an error if it cannot
	// be fetched.
	Fetch(ctx context.Context, key CollectionKey) (*Collection, error)
}

// DataSource implements querydispatcher.DataSource for burden estimates.  It
// caches the most recently used collections, and colors every plot it
// renders with a single color.Assigner, so that colors are stable across
// requests.
type DataSource struct {
	// Guards lru.
	mu sync.Mutex
	// An LRU cache holding the most recently-accessed collections.
	lru *simplelru.LRU
	// Serializes rendering, so that each plot is colored under its own
	// selection.
	renderMu sync.Mutex

	fetcher  Fetcher
	assigner *color.Assigner
	labelOf  burden.LabelFunc
	logger   *slog.Logger
}

// New returns a new DataSource with the specified cache capacity, using the
// provided fetcher, Assigner and labeler.  logger may be nil.
func New(cap int, fetcher Fetcher, assigner *color.Assigner, labelOf burden.LabelFunc, logger *slog.Logger) (*DataSource, error) {
	lru, err := simplelru.NewLRU(cap, nil /* no onEvict policy */)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DataSource{
		lru:      lru,
		fetcher:  fetcher,
		assigner: assigner,
		labelOf:  labelOf,
		logger:   logger,
	}, nil
}

// SupportedDataSeriesQueries returns the DataSeriesRequest query names
// supported by DataSource.
func (ds *DataSource) SupportedDataSeriesQueries() []string {
	return []string{
		RidgelineQuery,
		LegendQuery,
		SummaryTableQuery,
	}
}

// fetchCollection returns the specified collection from the LRU if it's
// present there.  Otherwise, it is fetched and added to the LRU.
func (ds *DataSource) fetchCollection(ctx context.Context, key CollectionKey) (*Collection, error) {
	ds.mu.Lock()
	collIf, ok := ds.lru.Get(key)
	ds.mu.Unlock()
	if ok {
		coll, ok := collIf.(*Collection)
		if !ok {
			return nil, fmt.Errorf("cached entry for %s wasn't a collection", key)
		}
		return coll, nil
	}
	coll, err := ds.fetcher.Fetch(ctx, key)
	if err != nil {
		return nil, err
	}
	ds.mu.Lock()
	ds.lru.Add(key, coll)
	ds.mu.Unlock()
	ds.logger.Debug("fetched collection", slog.String("collection", key.String()))
	return coll, nil
}

func (ds *DataSource) render(qf *queryFilters, coll *Collection) (*ridgeline.Plot, []color.LegendEntry, error) {
	ds.renderMu.Lock()
	defer ds.renderMu.Unlock()
	if qf.resetColors {
		ds.assigner.ResetColorMapping()
		ds.logger.Debug("color mapping reset on request")
	}
	plot, err := ridgeline.Render(qf.selection, coll.Data, ds.assigner, ds.labelOf, ds.logger)
	if err != nil {
		return nil, nil, err
	}
	return plot, ds.assigner.Legend(), nil
}

// HandleDataSeriesRequests handles the provided set of DataSeriesRequests
// under the provided global filters.  The plot is rendered once, and each
// request encodes a different view of it.
func (ds *DataSource) HandleDataSeriesRequests(ctx context.Context, globalFilters map[string]*util.V, drb *util.DataResponseBuilder, reqs []*util.DataSeriesRequest) error {
	start := time.Now()
	queryNames := make([]string, 0, len(reqs))
	for _, req := range reqs {
		queryNames = append(queryNames, req.QueryName)
	}
	defer func() {
		ds.logger.Info("handled queries",
			slog.Any("queries", queryNames),
			slog.Duration("elapsed", time.Since(start)))
	}()
	qf, err := filtersFromGlobalFilters(globalFilters)
	if err != nil {
		return err
	}
	sel := qf.selection
	coll, err := ds.fetchCollection(ctx, CollectionKey{Focus: sel.Focus, Metric: sel.Metric})
	if err != nil {
		return err
	}
	plot, legend, err := ds.render(qf, coll)
	if err != nil {
		return err
	}
	for _, req := range reqs {
		series := drb.DataSeries(req)
		var err error
		switch req.QueryName {
		case RidgelineQuery:
			_, err = ridgelinechart.Build(series, plot, nil)
		case LegendQuery:
			err = handleLegendQuery(plot, legend, series)
		case SummaryTableQuery:
			_, err = table.BuildSummary(series, plot, nil)
		default:
			err = fmt.Errorf("unsupported data query")
		}
		if err != nil {
			return fmt.Errorf("error handling data query %s: %w", req.QueryName, err)
		}
	}
	return nil
}
