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

package section

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/metricquest/pulse/pkg/defaults"
	"github.com/metricquest/pulse/pkg/serializer"
)

const (
	errNoResolution   = "Could not infer a section from your query."
	errNoInput        = "Provide either ?section=<key> or ?q=<free-text>"
	errMissingQ       = "Missing 'q' in JSON body."
	hintUseSectionKey = "Try specifying ?section=<one of the keys>."
)

// Resolver maps a free-text query to one of the candidate keys. An error
// means no confident answer; it is never surfaced as a server failure.
type Resolver interface {
	Resolve(ctx context.Context, query string, candidates []string) (string, error)
}

// Builder handles section lookup requests against an immutable Store.
type Builder struct {
	Store      *Store
	Resolver   Resolver
	DefaultKey string
	Greeting   string
}

// HandleRoot serves GET /: the configured greeting plus the default
// section's data, or 404 with the candidate list if the default key is
// absent from the index.
func (b *Builder) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	payload, ok := b.Store.Format(b.DefaultKey)
	if !ok {
		serializer.RespondJSON(w, http.StatusNotFound, b.Store.NotFoundPayload(b.DefaultKey))
		return
	}

	resp := struct {
		Message string         `json:"message"`
		Section string         `json:"section"`
		Period  string         `json:"period"`
		Metrics map[string]any `json:"metrics"`
	}{
		Message: b.Greeting,
		Section: payload.Section,
		Period:  payload.Period,
		Metrics: payload.Metrics,
	}

	serializer.RespondJSON(w, http.StatusOK, resp)
}

// HandleMetrics serves GET /metrics with either an exact key
// (?section=overview_core) or a free-text query (?q=overview for the month).
func (b *Builder) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	sectionParam := r.URL.Query().Get("section")
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	if sectionParam != "" {
		b.respondLookup(w, sectionParam)
		return
	}

	if q != "" {
		key, err := b.resolve(r.Context(), q)
		if err != nil {
			slog.Debug("free-text resolution failed", "q", q, "error", err)
			serializer.RespondJSON(w, http.StatusBadRequest, ErrorPayload{
				OK:                false,
				Error:             errNoResolution,
				AvailableSections: b.Store.Keys(),
				Hint:              hintUseSectionKey,
			})
			return
		}
		b.respondLookup(w, key)
		return
	}

	serializer.RespondJSON(w, http.StatusBadRequest, ErrorPayload{
		OK:                false,
		Error:             errNoInput,
		AvailableSections: b.Store.Keys(),
	})
}

// HandleSection serves GET /metrics/{section}, the path-segment form of an
// exact key lookup.
func (b *Builder) HandleSection(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	name := r.PathValue("section")
	if name == "" {
		serializer.RespondJSON(w, http.StatusBadRequest, ErrorPayload{
			OK:                false,
			Error:             errNoInput,
			AvailableSections: b.Store.Keys(),
		})
		return
	}

	b.respondLookup(w, name)
}

// HandleAsk serves POST /ask with a JSON body {"q": "free text"}. The
// greeting message is attached only when the resolved key is the default
// overview key.
func (b *Builder) HandleAsk(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var body struct {
		Q string `json:"q"`
	}
	// A malformed or absent body is treated the same as a blank q.
	_ = json.NewDecoder(r.Body).Decode(&body)

	q := strings.TrimSpace(body.Q)
	if q == "" {
		serializer.RespondJSON(w, http.StatusBadRequest, ErrorPayload{
			OK:    false,
			Error: errMissingQ,
		})
		return
	}

	key, err := b.resolve(r.Context(), q)
	if err != nil {
		slog.Debug("free-text resolution failed", "q", q, "error", err)
		serializer.RespondJSON(w, http.StatusBadRequest, ErrorPayload{
			OK:                false,
			Error:             errNoResolution,
			AvailableSections: b.Store.Keys(),
		})
		return
	}

	payload, ok := b.Store.Format(key)
	if !ok {
		serializer.RespondJSON(w, http.StatusNotFound, b.Store.NotFoundPayload(key))
		return
	}

	if key == Normalize(b.DefaultKey) {
		payload.Message = b.Greeting
	}

	serializer.RespondJSON(w, http.StatusOK, payload)
}

// respondLookup writes the 200/404 envelope for an exact-key lookup.
func (b *Builder) respondLookup(w http.ResponseWriter, input string) {
	payload, ok := b.Store.Format(input)
	if !ok {
		serializer.RespondJSON(w, http.StatusNotFound, b.Store.NotFoundPayload(input))
		return
	}
	serializer.RespondJSON(w, http.StatusOK, payload)
}

// resolve invokes the configured resolver with a bounded context.
func (b *Builder) resolve(ctx context.Context, q string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.ResolveTimeout)
	defer cancel()
	return b.Resolver.Resolve(ctx, q, b.Store.Keys())
}

// requireMethod enforces the HTTP method, answering 405 with an Allow
// header on mismatch.
func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		slog.Debug("method not allowed", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Allow", method)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}
