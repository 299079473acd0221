// Copyright (c) 2025, MetricQuest.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/metricquest/pulse/pkg/hints"
	"github.com/metricquest/pulse/pkg/llm"
	"github.com/metricquest/pulse/pkg/logging"
	"github.com/metricquest/pulse/pkg/resolver"
	"github.com/metricquest/pulse/pkg/section"
	"github.com/metricquest/pulse/pkg/server"
	"github.com/metricquest/pulse/pkg/source"
)

const (
	name           = "pulsed"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/metricquest/pulse/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server with environment-derived configuration and
// blocks until shutdown.
func Serve() error {
	return ServeWithConfig(context.Background(), NewConfig())
}

// ServeWithConfig starts the API server with explicit configuration.
// The dataset is loaded before the listener opens; a missing or malformed
// source is a fatal startup error.
func ServeWithConfig(ctx context.Context, cfg *Config) error {
	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	records, err := source.LoadSections(ctx, cfg.DataSource, cfg.Kubeconfig)
	if err != nil {
		slog.Error("failed to load dataset", "source", cfg.DataSource, "error", err)
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	store := section.NewStore(records)
	slog.Info("dataset indexed",
		"source", cfg.DataSource,
		"sections", store.Len(),
		"keys", store.Keys(),
	)

	catalog, err := loadHints(cfg.HintsPath)
	if err != nil {
		return err
	}

	client, model := buildClient(cfg)
	res := resolver.New(client, model, catalog)
	if res.Enabled() {
		slog.Info("free-text resolution enabled", "provider", cfg.LLMProvider, "model", model)
	} else {
		slog.Info("free-text resolution disabled, no provider API key configured")
	}

	b := &section.Builder{
		Store:      store,
		Resolver:   res,
		DefaultKey: cfg.DefaultSection,
		Greeting:   cfg.DefaultGreeting,
	}

	r := map[string]http.HandlerFunc{
		"/{$}":               b.HandleRoot,
		"/metrics":           b.HandleMetrics,
		"/metrics/{section}": b.HandleSection,
		"/ask":               b.HandleAsk,
	}

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(r),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// loadHints returns the section description catalog, overridden from a
// YAML file when configured.
func loadHints(path string) (*hints.Catalog, error) {
	if path == "" {
		return hints.Default(), nil
	}
	catalog, err := hints.Load(path)
	if err != nil {
		slog.Error("failed to load hints file", "path", path, "error", err)
		return nil, fmt.Errorf("failed to load hints file: %w", err)
	}
	return catalog, nil
}

// buildClient constructs the completion client for the configured
// provider, or nil when the provider has no API key.
func buildClient(cfg *Config) (llm.Client, string) {
	switch cfg.LLMProvider {
	case llm.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, ""
		}
		model := cfg.LLMModel
		if model == "" {
			model = llm.DefaultAnthropicModel
		}
		return llm.NewAnthropic(cfg.AnthropicAPIKey), model

	case llm.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, ""
		}
		model := cfg.LLMModel
		if model == "" {
			model = llm.DefaultOpenAIModel
		}
		var opts []llm.OpenAIOption
		if cfg.OpenAIBaseURL != "" {
			opts = append(opts, llm.WithOpenAIBaseURL(cfg.OpenAIBaseURL))
		}
		return llm.NewOpenAI(cfg.OpenAIAPIKey, opts...), model

	default:
		slog.Warn("unknown LLM provider, free-text resolution disabled", "provider", cfg.LLMProvider)
		return nil, ""
	}
}
