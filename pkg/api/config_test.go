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
	"testing"

	"github.com/metricquest/pulse/pkg/llm"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("DATA_SOURCE", "")
	t.Setenv("DEFAULT_SECTION", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("OPENAI_MODEL", "")

	cfg := NewConfig()

	if cfg.DataSource != defaultDataSource {
		t.Errorf("expected data source %q, got %q", defaultDataSource, cfg.DataSource)
	}
	if cfg.DefaultSection != "overview_core" {
		t.Errorf("expected default section overview_core, got %q", cfg.DefaultSection)
	}
	if cfg.LLMProvider != llm.ProviderOpenAI {
		t.Errorf("expected provider openai, got %q", cfg.LLMProvider)
	}
	if cfg.DefaultGreeting == "" {
		t.Error("expected non-empty default greeting")
	}
}

func TestNewConfigOverrides(t *testing.T) {
	t.Setenv("DATA_SOURCE", "cm://pulse/sections")
	t.Setenv("DEFAULT_SECTION", "usage")
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("LLM_MODEL", "claude-3-5-haiku-latest")

	cfg := NewConfig()

	if cfg.DataSource != "cm://pulse/sections" {
		t.Errorf("unexpected data source %q", cfg.DataSource)
	}
	if cfg.DefaultSection != "usage" {
		t.Errorf("unexpected default section %q", cfg.DefaultSection)
	}
	if cfg.LLMProvider != llm.ProviderAnthropic {
		t.Errorf("unexpected provider %q", cfg.LLMProvider)
	}
	if cfg.LLMModel != "claude-3-5-haiku-latest" {
		t.Errorf("unexpected model %q", cfg.LLMModel)
	}
}

func TestNewConfigModelAlias(t *testing.T) {
	t.Setenv("LLM_MODEL", "")
	t.Setenv("OPENAI_MODEL", "gpt-4o")

	cfg := NewConfig()
	if cfg.LLMModel != "gpt-4o" {
		t.Errorf("expected OPENAI_MODEL alias honored, got %q", cfg.LLMModel)
	}
}

func TestBuildClient(t *testing.T) {
	tests := []struct {
		name       string
		cfg        *Config
		wantClient bool
		wantModel  string
	}{
		{
			name:       "openai without key disabled",
			cfg:        &Config{LLMProvider: llm.ProviderOpenAI},
			wantClient: false,
		},
		{
			name:       "openai with key",
			cfg:        &Config{LLMProvider: llm.ProviderOpenAI, OpenAIAPIKey: "sk-test"},
			wantClient: true,
			wantModel:  llm.DefaultOpenAIModel,
		},
		{
			name:       "anthropic with key and explicit model",
			cfg:        &Config{LLMProvider: llm.ProviderAnthropic, AnthropicAPIKey: "sk-ant", LLMModel: "claude-x"},
			wantClient: true,
			wantModel:  "claude-x",
		},
		{
			name:       "unknown provider disabled",
			cfg:        &Config{LLMProvider: "watson", OpenAIAPIKey: "sk-test"},
			wantClient: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, model := buildClient(tt.cfg)
			if (client != nil) != tt.wantClient {
				t.Errorf("buildClient() client = %v, want client %v", client, tt.wantClient)
			}
			if model != tt.wantModel {
				t.Errorf("buildClient() model = %q, want %q", model, tt.wantModel)
			}
		})
	}
}
