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
	"os"

	"github.com/metricquest/pulse/pkg/llm"
)

const (
	defaultDataSource = "data/sections.json"
	defaultSection    = "overview_core"
	defaultGreeting   = "Hi Alisha, here’s an updated overview on all insights. " +
		"Let me know if there’s anything else on your mind."
)

// Config holds the API composition configuration.
type Config struct {
	// DataSource is where the section dataset is loaded from: a local
	// path, an http(s) URL, a cm:// ConfigMap URI, or an oci:// reference.
	DataSource string
	// Kubeconfig is only consulted for cm:// sources.
	Kubeconfig string

	// DefaultSection is the key served by GET /.
	DefaultSection string
	// DefaultGreeting is the message attached to GET / and to /ask
	// responses that resolve to the default section.
	DefaultGreeting string

	// LLM resolver configuration. The resolver is disabled when the
	// selected provider has no API key.
	LLMProvider     string
	LLMModel        string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	AnthropicAPIKey string

	// HintsPath optionally overrides the built-in section descriptions
	// with a YAML file.
	HintsPath string
}

// NewConfig returns configuration derived from the environment.
func NewConfig() *Config {
	cfg := &Config{
		DataSource:      envOrDefault("DATA_SOURCE", defaultDataSource),
		Kubeconfig:      os.Getenv("KUBECONFIG"),
		DefaultSection:  envOrDefault("DEFAULT_SECTION", defaultSection),
		DefaultGreeting: envOrDefault("DEFAULT_GREETING", defaultGreeting),
		LLMProvider:     envOrDefault("LLM_PROVIDER", llm.ProviderOpenAI),
		LLMModel:        os.Getenv("LLM_MODEL"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:   os.Getenv("OPENAI_BASE_URL"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		HintsPath:       os.Getenv("HINTS_PATH"),
	}

	// Backwards-compatible alias used by earlier deployments.
	if cfg.LLMModel == "" {
		cfg.LLMModel = os.Getenv("OPENAI_MODEL")
	}

	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
