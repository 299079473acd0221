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
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const testGreeting = "Hi Alisha, here’s an updated overview on all insights."

// fakeResolver returns a fixed key or error for every query.
type fakeResolver struct {
	key string
	err error
}

func (f *fakeResolver) Resolve(_ context.Context, _ string, _ []string) (string, error) {
	return f.key, f.err
}

func newTestBuilder(r Resolver) *Builder {
	return &Builder{
		Store: NewStore([]Record{
			{Section: "overview_core", Period: "2025-Q3", Metrics: map[string]any{"uptime": 99.9}},
			{Section: "usage", Period: "2025-Q3", Metrics: map[string]any{"dau": float64(1200)}},
			{Section: "roi_quarter", Period: "2025-Q3", Metrics: map[string]any{"roi_pct": float64(211)}},
		}),
		Resolver:   r,
		DefaultKey: "overview_core",
		Greeting:   testGreeting,
	}
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestHandleRoot(t *testing.T) {
	b := newTestBuilder(&fakeResolver{err: errors.New("unused")})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	b.HandleRoot(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["message"] != testGreeting {
		t.Errorf("unexpected message %v", body["message"])
	}
	if body["section"] != "overview_core" {
		t.Errorf("unexpected section %v", body["section"])
	}
	if body["period"] != "2025-Q3" {
		t.Errorf("unexpected period %v", body["period"])
	}
	if _, hasOK := body["ok"]; hasOK {
		t.Error("root response must not carry an ok field")
	}
	if _, hasMetrics := body["metrics"]; !hasMetrics {
		t.Error("expected metrics in root response")
	}
}

func TestHandleRootMissingDefault(t *testing.T) {
	b := newTestBuilder(&fakeResolver{})
	b.DefaultKey = "does_not_exist"

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	b.HandleRoot(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["ok"] != false {
		t.Error("expected ok false")
	}
	if body["error"] != "Section 'does_not_exist' not found." {
		t.Errorf("unexpected error %v", body["error"])
	}
	if _, ok := body["available_sections"]; !ok {
		t.Error("expected available_sections in 404 body")
	}
}

func TestHandleMetricsExactKey(t *testing.T) {
	b := newTestBuilder(&fakeResolver{err: errors.New("resolver must not be called")})

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantOK     bool
	}{
		{
			name:       "exact key",
			query:      "section=usage",
			wantStatus: http.StatusOK,
			wantOK:     true,
		},
		{
			name:       "key needing normalization",
			query:      "section=Overview-Core",
			wantStatus: http.StatusOK,
			wantOK:     true,
		},
		{
			name:       "unknown key",
			query:      "section=nope",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "section wins over q",
			query:      "section=usage&q=whatever",
			wantStatus: http.StatusOK,
			wantOK:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/metrics?"+tt.query, nil)
			w := httptest.NewRecorder()
			b.HandleMetrics(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}

			body := decodeBody(t, w)
			if body["ok"] != tt.wantOK {
				t.Errorf("expected ok %v, got %v", tt.wantOK, body["ok"])
			}
		})
	}
}

func TestHandleMetricsFreeText(t *testing.T) {
	t.Run("resolution succeeds", func(t *testing.T) {
		b := newTestBuilder(&fakeResolver{key: "roi_quarter"})

		req := httptest.NewRequest(http.MethodGet, "/metrics?q=quarterly+roi", nil)
		w := httptest.NewRecorder()
		b.HandleMetrics(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["section"] != "roi_quarter" {
			t.Errorf("unexpected section %v", body["section"])
		}
		if _, hasMsg := body["message"]; hasMsg {
			t.Error("metrics free-text response must not carry a message")
		}
	})

	t.Run("resolution fails", func(t *testing.T) {
		b := newTestBuilder(&fakeResolver{err: errors.New("no confident answer")})

		req := httptest.NewRequest(http.MethodGet, "/metrics?q=gibberish", nil)
		w := httptest.NewRecorder()
		b.HandleMetrics(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["error"] != "Could not infer a section from your query." {
			t.Errorf("unexpected error %v", body["error"])
		}
		if body["hint"] != "Try specifying ?section=<one of the keys>." {
			t.Errorf("expected hint, got %v", body["hint"])
		}
		if _, ok := body["available_sections"]; !ok {
			t.Error("expected available_sections")
		}
	})

	t.Run("no parameters", func(t *testing.T) {
		b := newTestBuilder(&fakeResolver{})

		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		w := httptest.NewRecorder()
		b.HandleMetrics(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["error"] != "Provide either ?section=<key> or ?q=<free-text>" {
			t.Errorf("unexpected error %v", body["error"])
		}
		if _, hasHint := body["hint"]; hasHint {
			t.Error("no-input response must not carry a hint")
		}
	})
}

func TestHandleSection(t *testing.T) {
	b := newTestBuilder(&fakeResolver{})

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics/{section}", b.HandleSection)

	t.Run("hit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/metrics/usage", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["section"] != "usage" {
			t.Errorf("unexpected section %v", body["section"])
		}
	})

	t.Run("miss", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/metrics/nope", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", w.Code)
		}
	})
}

func TestHandleAsk(t *testing.T) {
	t.Run("resolves to default key attaches greeting", func(t *testing.T) {
		b := newTestBuilder(&fakeResolver{key: "overview_core"})

		req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"q": "overall status"}`))
		w := httptest.NewRecorder()
		b.HandleAsk(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["message"] != testGreeting {
			t.Errorf("expected greeting, got %v", body["message"])
		}
		if body["ok"] != true {
			t.Error("expected ok true")
		}
	})

	t.Run("resolves to other key omits greeting", func(t *testing.T) {
		b := newTestBuilder(&fakeResolver{key: "usage"})

		req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"q": "daily actives"}`))
		w := httptest.NewRecorder()
		b.HandleAsk(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if _, hasMsg := body["message"]; hasMsg {
			t.Errorf("expected no message, got %v", body["message"])
		}
		if body["section"] != "usage" {
			t.Errorf("unexpected section %v", body["section"])
		}
	})

	t.Run("blank q", func(t *testing.T) {
		b := newTestBuilder(&fakeResolver{})

		for _, payload := range []string{`{"q": "  "}`, `{}`, ``, `not json`} {
			req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(payload))
			w := httptest.NewRecorder()
			b.HandleAsk(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("payload %q: expected status 400, got %d", payload, w.Code)
			}
			body := decodeBody(t, w)
			if body["error"] != "Missing 'q' in JSON body." {
				t.Errorf("payload %q: unexpected error %v", payload, body["error"])
			}
			if _, ok := body["available_sections"]; ok {
				t.Errorf("payload %q: blank q response must not list sections", payload)
			}
		}
	})

	t.Run("resolution fails", func(t *testing.T) {
		b := newTestBuilder(&fakeResolver{err: errors.New("no confident answer")})

		req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"q": "gibberish"}`))
		w := httptest.NewRecorder()
		b.HandleAsk(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["error"] != "Could not infer a section from your query." {
			t.Errorf("unexpected error %v", body["error"])
		}
		if _, ok := body["available_sections"]; !ok {
			t.Error("expected available_sections")
		}
		if _, hasHint := body["hint"]; hasHint {
			t.Error("ask failure must not carry a hint")
		}
	})
}

func TestMethodEnforcement(t *testing.T) {
	b := newTestBuilder(&fakeResolver{})

	tests := []struct {
		name      string
		method    string
		handler   http.HandlerFunc
		wantAllow string
	}{
		{"root rejects POST", http.MethodPost, b.HandleRoot, http.MethodGet},
		{"metrics rejects POST", http.MethodPost, b.HandleMetrics, http.MethodGet},
		{"ask rejects GET", http.MethodGet, b.HandleAsk, http.MethodPost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/x", nil)
			w := httptest.NewRecorder()
			tt.handler(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Fatalf("expected status 405, got %d", w.Code)
			}
			if got := w.Header().Get("Allow"); got != tt.wantAllow {
				t.Errorf("expected Allow %q, got %q", tt.wantAllow, got)
			}
		})
	}
}
