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

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/ilhamster/burdenviz/dashboard/config"
	"github.com/ilhamster/burdenviz/dashboard/service"
)

var (
	configPath   string
	port         int
	resourceRoot string
	dataRoot     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "server",
		Short: "Serve the burden estimates dashboard",
		Long: `server serves ridgeline plots, legends, and summary tables of
burden-estimate collections to the dashboard frontend.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	rootCmd.Flags().IntVar(&port, "port", 0, "Port to serve dashboard clients on (overrides the config)")
	rootCmd.Flags().StringVar(&resourceRoot, "resource_root", "", "The path to the dashboard client resources (overrides the config)")
	rootCmd.Flags().StringVar(&dataRoot, "data_root", "", "The root path for estimate collections (overrides the config)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = port
	}
	if cmd.Flags().Changed("resource_root") {
		cfg.ResourceRoot = resourceRoot
	}
	if cmd.Flags().Changed("data_root") {
		cfg.DataRoot = dataRoot
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		return err
	}

	svc, err := service.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create dashboard service: %w", err)
	}
	mux := http.NewServeMux()
	svc.RegisterHandlers(mux)
	hostname, err := os.Hostname()
	if err != nil {
		return fmt.Errorf("failed to get hostname: %w", err)
	}

	// Provide OSC 8 (https://en.wikipedia.org/wiki/ANSI_escape_code#OSC) link for
	// compatible terminals.
	fmt.Printf("Serving the burden dashboard at \x1B]8;;http://%[1]s:%[2]d\x07http://%[1]s:%[2]d\x1B]8;;\x07\n", hostname, cfg.Port)
	logger.Info("serving", "port", cfg.Port, "data_root", cfg.DataRoot)
	return http.ListenAndServe(fmt.Sprintf(":%d", cfg.Port), mux)
}
