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

package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/metricquest/pulse/pkg/defaults"
	apperrors "github.com/metricquest/pulse/pkg/errors"
	"github.com/metricquest/pulse/pkg/hints"
	"github.com/metricquest/pulse/pkg/llm"
	"github.com/metricquest/pulse/pkg/section"
)

const systemPrompt = "You select exactly one canonical section key from a fixed list. " +
	"Return ONLY the key, nothing else. If unsure, pick the closest."

// Resolver maps free-text queries to one of a closed set of section keys
// via an external completion provider. It never raises past its boundary:
// every failure mode, from a missing client to a hallucinated key, comes
// back as a structured error the caller turns into "no resolution".
type Resolver struct {
	client llm.Client
	model  string
	hints  *hints.Catalog
}

// New creates a Resolver. A nil client is valid and means free-text
// resolution is disabled; Resolve then fails fast with SERVICE_UNAVAILABLE.
func New(client llm.Client, model string, catalog *hints.Catalog) *Resolver {
	if catalog == nil {
		catalog = hints.Default()
	}
	return &Resolver{
		client: client,
		model:  model,
		hints:  catalog,
	}
}

// Enabled reports whether a completion provider is configured.
func (r *Resolver) Enabled() bool {
	return r != nil && r.client != nil
}

// Resolve asks the provider to choose one key from candidates for the given
// query. The returned key is always a member of candidates; any other
// outcome is an error.
func (r *Resolver) Resolve(ctx context.Context, query string, candidates []string) (string, error) {
	if !r.Enabled() {
		resolutionsTotal.WithLabelValues(outcomeUnconfigured).Inc()
		return "", apperrors.New(apperrors.ErrCodeUnavailable, "no completion provider configured")
	}

	var b strings.Builder
	for _, key := range candidates {
		fmt.Fprintf(&b, "- %s: %s\n", key, r.hints.Describe(key))
	}

	user := fmt.Sprintf(
		"User question/label: %s\n\n"+
			"Choose one of these keys that best matches the user's intent:\n%s\n"+
			"Return ONLY the key.",
		query, b.String())

	start := time.Now()
	text, err := r.client.Complete(ctx, llm.Request{
		Model:       r.model,
		System:      systemPrompt,
		User:        user,
		MaxTokens:   defaults.ResolveMaxTokens,
		Temperature: 0,
	})
	providerLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		resolutionsTotal.WithLabelValues(outcomeProviderError).Inc()
		if ctx.Err() != nil {
			return "", apperrors.Wrap(apperrors.ErrCodeTimeout, "completion provider call timed out", err)
		}
		return "", apperrors.Wrap(apperrors.ErrCodeResolutionFailed, "completion provider call failed", err)
	}

	key := section.Normalize(stripFences(text))
	if !slices.Contains(candidates, key) {
		resolutionsTotal.WithLabelValues(outcomeInvalidKey).Inc()
		slog.Debug("provider returned key outside candidate set", "answer", key)
		return "", apperrors.NewWithContext(apperrors.ErrCodeResolutionFailed,
			"provider answer is not a known section key",
			map[string]any{"answer": key})
	}

	resolutionsTotal.WithLabelValues(outcomeResolved).Inc()
	return key, nil
}

// stripFences removes markdown code fences some models wrap short answers in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
