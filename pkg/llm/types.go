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

package llm

import "context"

// Provider names accepted in configuration.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Default model identifiers per provider. Both are deliberately small and
// cheap; the task is a single constrained choice.
const (
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-3-5-haiku-latest"
)

// Request describes a single completion call.
type Request struct {
	// Model is the provider-specific model identifier.
	Model string
	// System fixes the contract for the completion.
	System string
	// User is the task content.
	User string
	// MaxTokens caps the output length.
	MaxTokens int64
	// Temperature controls sampling; 0 for deterministic output.
	Temperature float64
}

// Client is a completion provider. Implementations return the first
// message's text content.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}
