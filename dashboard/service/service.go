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

// Package service assembles the burden dashboard's HTTP service.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/ilhamster/burdenviz/color"
	rowreader "github.com/ilhamster/burdenviz/dashboard/analysis/row_reader"
	"github.com/ilhamster/burdenviz/dashboard/config"
	datasource "github.com/ilhamster/burdenviz/dashboard/data_source"
	displayname "github.com/ilhamster/burdenviz/display_name"
	"github.com/ilhamster/burdenviz/handlers"
	querydispatcher "github.com/ilhamster/burdenviz/query_dispatcher"
	"github.com/ilhamster/burdenviz/ridgeline"
)

// collectionFetcher reads collections from a directory tree holding, for
// each focus, `<focus>/<metric>_histogram.<ext>` and
// `<focus>/<metric>_summary.<ext>`.
type collectionFetcher struct {
	dataRoot string
	logger   *slog.Logger
}

// plainName returns true if name names an entry directly within a
// directory.
func plainName(name string) bool {
	return name != "." && filepath.IsLocal(name) && name == filepath.Base(name)
}

func (cf *collectionFetcher) Fetch(ctx context.Context, key datasource.CollectionKey) (*datasource.Collection, error) {
	if !plainName(key.Focus.Value) {
		return nil, fmt.Errorf("focus '%s' is not a plain name", key.Focus.Value)
	}
	dir := filepath.Join(cf.dataRoot, key.Focus.Value)
	histPath, err := rowreader.Find(dir, string(key.Metric)+"_histogram")
	if err != nil {
		return nil, err
	}
	summaryPath, err := rowreader.Find(dir, string(key.Metric)+"_summary")
	if err != nil {
		return nil, err
	}
	tables, err := rowreader.ReadAll(ctx, histPath, summaryPath)
	if err != nil {
		return nil, err
	}
	cf.logger.Info("loaded collection",
		slog.String("collection", key.String()),
		slog.Int("histogram_rows", len(tables[0])),
		slog.Int("summary_rows", len(tables[1])))
	return &datasource.Collection{
		Data: ridgeline.Data{
			Histogram: tables[0],
			Summaries: tables[1],
		},
	}, nil
}

// Service is the dashboard's HTTP service.
type Service struct {
	queryHandler    handlers.QueryHandler
	resourceHandler handlers.Handler
}

// New returns a new Service configured by the provided Config, logging to
// the provided logger, which may be nil.
func New(cfg *config.Config, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	overrides, err := cfg.DisplayNameOverrides()
	if err != nil {
		return nil, err
	}
	ds, err := datasource.New(
		cfg.CacheSize,
		&collectionFetcher{
			dataRoot: cfg.DataRoot,
			logger:   logger,
		},
		color.NewAssigner(cfg.Palette),
		displayname.New(overrides).LabelFunc(),
		logger,
	)
	if err != nil {
		return nil, err
	}
	qd, err := querydispatcher.New([]querydispatcher.DataSource{ds}, querydispatcher.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &Service{
		queryHandler:    handlers.NewQueryHandler(qd),
		resourceHandler: handlers.NewResourceHandler(cfg.ResourceRoot),
	}, nil
}

// RegisterHandlers registers the receiver's handlers on the provided
// ServeMux.
func (s *Service) RegisterHandlers(mux *http.ServeMux) {
	handlers.Register(mux, s.queryHandler, s.resourceHandler)
}
