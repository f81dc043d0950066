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

// Package config loads the dashboard server's YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ilhamster/burdenviz/burden"
	"github.com/ilhamster/burdenviz/color"
)

// Log output formats.
const (
	TextFormat = "text"
	JSONFormat = "json"
)

// Config is the dashboard server configuration.
type Config struct {
	// The port to serve on.
	Port int `yaml:"port"`
	// The directory holding the dashboard frontend's static resources.
	ResourceRoot string `yaml:"resource_root"`
	// The directory holding one subdirectory of estimate tables per focus.
	DataRoot string `yaml:"data_root"`
	// The number of loaded collections to cache.
	CacheSize int `yaml:"cache_size"`
	// The color palette.  Empty means color.DefaultPalette.
	Palette color.Palette `yaml:"palette"`
	// One of debug, info, warn, or error.
	LogLevel string `yaml:"log_level"`
	// One of text or json.
	LogFormat string `yaml:"log_format"`
	// Per-dimension category value labels, overriding the defaults.
	DisplayNames map[string]map[string]string `yaml:"display_names"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Port:      7410,
		DataRoot:  ".",
		CacheSize: 10,
		LogLevel:  "info",
		LogFormat: TextFormat,
	}
}

// Parse parses a YAML configuration over the defaults.  Unknown keys are
// errors.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load loads the configuration file at the provided path.  An empty path
// yields the default configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Validate returns an error if the receiver is unusable.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("cache_size must be positive, got %d", c.CacheSize)
	}
	if len(c.Palette) > 0 {
		if err := c.Palette.Validate(); err != nil {
			return err
		}
	}
	if _, err := c.level(); err != nil {
		return err
	}
	if c.LogFormat != TextFormat && c.LogFormat != JSONFormat {
		return fmt.Errorf("unknown log_format '%s'", c.LogFormat)
	}
	_, err := c.DisplayNameOverrides()
	return err
}

func (c *Config) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("unknown log_level '%s'", c.LogLevel)
	}
	return level, nil
}

// DisplayNameOverrides returns the configured display names keyed by
// dimension.
func (c *Config) DisplayNameOverrides() (map[burden.Dimension]map[string]string, error) {
	ret := make(map[burden.Dimension]map[string]string, len(c.DisplayNames))
	for dimName, names := range c.DisplayNames {
		dim, err := burden.ParseDimension(dimName)
		if err != nil || dim == burden.NoDimension {
			return nil, fmt.Errorf("display_names: unknown dimension '%s'", dimName)
		}
		ret[dim] = names
	}
	return ret, nil
}

// Logger returns a logger writing to w at the configured level and in the
// configured format.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := c.level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	switch c.LogFormat {
	case TextFormat:
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case JSONFormat:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("unknown log_format '%s'", c.LogFormat)
}
