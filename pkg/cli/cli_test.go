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

package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/metricquest/pulse/pkg/llm"
)

func TestRootCommandStructure(t *testing.T) {
	cmd := rootCmd()

	want := map[string]bool{
		"serve":    false,
		"sections": false,
		"resolve":  false,
		"publish":  false,
	}
	for _, sub := range cmd.Commands {
		if _, ok := want[sub.Name]; ok {
			want[sub.Name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected subcommand %q", name)
		}
	}
}

func TestBuildClient(t *testing.T) {
	tests := []struct {
		name      string
		provider  string
		model     string
		apiKey    string
		wantModel string
		wantErr   bool
	}{
		{
			name:      "openai defaults model",
			provider:  "openai",
			apiKey:    "sk-test",
			wantModel: llm.DefaultOpenAIModel,
		},
		{
			name:      "anthropic explicit model",
			provider:  "anthropic",
			model:     "claude-x",
			apiKey:    "sk-ant",
			wantModel: "claude-x",
		},
		{
			name:     "missing api key",
			provider: "openai",
			wantErr:  true,
		},
		{
			name:     "unknown provider",
			provider: "watson",
			apiKey:   "key",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, model, err := buildClient(tt.provider, tt.model, tt.apiKey)
			if (err != nil) != tt.wantErr {
				t.Fatalf("buildClient() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if client == nil {
				t.Error("expected client, got nil")
			}
			if model != tt.wantModel {
				t.Errorf("buildClient() model = %q, want %q", model, tt.wantModel)
			}
		})
	}
}

func TestSectionsCommand(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "sections.json")
	data := `[{"section": "usage", "period": "2025-Q3", "metrics": {"dau": 1200}}]`
	if err := os.WriteFile(dataPath, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	outPath := filepath.Join(t.TempDir(), "out.json")

	cmd := rootCmd()
	err := cmd.Run(context.Background(), []string{
		"pulse", "sections",
		"--source", dataPath,
		"--output", outPath,
		"--keys",
	})
	if err != nil {
		t.Fatalf("sections command failed: %v", err)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if string(out) == "" {
		t.Error("expected keys output, got empty file")
	}
}

func TestSectionsCommandBadFormat(t *testing.T) {
	cmd := rootCmd()
	err := cmd.Run(context.Background(), []string{
		"pulse", "sections", "--format", "xml",
	})
	if err == nil {
		t.Error("expected error for unknown format")
	}
}
