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

// Package querydispatcher provides QueryDispatcher, which multiplexes the
// data series queries of a single request across the data sources able to
// handle them.
package querydispatcher

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ilhamster/burdenviz/util"
)

// DataSource is a single backend data source.  DataSource implementations
// must support concurrent HandleDataSeriesRequests calls.
type DataSource interface {
	// SupportedDataSeriesQueries returns the DataSeriesRequest.QueryNames this
	// DataSource handles.  Query names must be unique across the DataSources
	// of a QueryDispatcher, and so are usually prefixed with a namespace,
	// e.g. `burden.ridgeline`.
	SupportedDataSeriesQueries() []string
	// HandleDataSeriesRequests handles a set of DataSeriesRequests under the
	// supplied global filters, adding one new DataSeries per request to the
	// provided DataResponseBuilder.  Any returned error fails the entire
	// DataRequest.
	HandleDataSeriesRequests(ctx context.Context, globalFilters map[string]*util.V, drb *util.DataResponseBuilder, reqs []*util.DataSeriesRequest) error
}

// QueryDispatcher multiplexes multiple DataSources.
type QueryDispatcher struct {
	dataSources []DataSource
	// Maps data series query names to indices (in dataSources) of the
	// DataSources that handle those queries.
	handlers map[string]int
	logger   *slog.Logger
}

// Option configures a QueryDispatcher.
type Option func(qd *QueryDispatcher)

// WithLogger directs a QueryDispatcher's per-request logging to the provided
// logger.
func WithLogger(logger *slog.Logger) Option {
	return func(qd *QueryDispatcher) {
		qd.logger = logger
	}
}

// New returns a *QueryDispatcher wrapping the provided DataSources.
func New(dss []DataSource, opts ...Option) (*QueryDispatcher, error) {
	qd := &QueryDispatcher{
		handlers: map[string]int{},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(qd)
	}
	for dsIdx, ds := range dss {
		qd.dataSources = append(qd.dataSources, ds)
		for _, queryName := range ds.SupportedDataSeriesQueries() {
			if _, ok := qd.handlers[queryName]; ok {
				return nil, fmt.Errorf("multiple data sources handle query `%s`", queryName)
			}
			qd.handlers[queryName] = dsIdx
		}
	}
	return qd, nil
}

// SupportedDataSeriesQueries returns all queries the receiver can dispatch,
// sorted.
func (qd *QueryDispatcher) SupportedDataSeriesQueries() []string {
	ret := make([]string, 0, len(qd.handlers))
	for queryName := range qd.handlers {
		ret = append(ret, queryName)
	}
	slices.Sort(ret)
	return ret
}

// HandleDataRequest distributes the provided DataRequest's DataSeriesRequests
// to the DataSources that handle them, then assembles the resulting
// DataSeries into a single response.  DataSources run concurrently; the first
// error cancels the rest.
func (qd *QueryDispatcher) HandleDataRequest(ctx context.Context, req *util.DataRequest) (*util.Data, error) {
	start := time.Now()
	drb := util.NewDataResponseBuilder()
	groupedReqs := map[int][]*util.DataSeriesRequest{}
	for _, seriesReq := range req.SeriesRequests {
		dsIdx, ok := qd.handlers[seriesReq.QueryName]
		if !ok {
			return nil, fmt.Errorf("unsupported data query `%s`", seriesReq.QueryName)
		}
		groupedReqs[dsIdx] = append(groupedReqs[dsIdx], seriesReq)
	}
	errg, ctx := errgroup.WithContext(ctx)
	for dsIdx, seriesReqs := range groupedReqs {
		ds := qd.dataSources[dsIdx]
		errg.Go(func() error {
			return ds.HandleDataSeriesRequests(ctx, req.GlobalFilters, drb, seriesReqs)
		})
	}
	if err := errg.Wait(); err != nil {
		qd.logger.Error("data request failed",
			slog.Int("series", len(req.SeriesRequests)),
			slog.Any("error", err))
		return nil, err
	}
	data, err := drb.Data()
	if err != nil {
		return nil, err
	}
	qd.logger.Info("handled data request",
		slog.Int("series", len(req.SeriesRequests)),
		slog.Duration("elapsed", time.Since(start)))
	return data, nil
}
