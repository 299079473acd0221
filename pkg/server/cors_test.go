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

package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORSMiddleware(t *testing.T) {
	cfg := NewConfig()
	cfg.AllowedOrigins = []string{"http://localhost:5173"}
	s := New(WithConfig(cfg))

	handler := s.corsMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name      string
		method    string
		origin    string
		wantCode  int
		wantAllow string
	}{
		{
			name:      "allowed origin",
			method:    http.MethodGet,
			origin:    "http://localhost:5173",
			wantCode:  http.StatusOK,
			wantAllow: "http://localhost:5173",
		},
		{
			name:     "disallowed origin gets no CORS headers",
			method:   http.MethodGet,
			origin:   "https://evil.example.com",
			wantCode: http.StatusOK,
		},
		{
			name:     "no origin header",
			method:   http.MethodGet,
			wantCode: http.StatusOK,
		},
		{
			name:      "preflight allowed origin",
			method:    http.MethodOptions,
			origin:    "http://localhost:5173",
			wantCode:  http.StatusNoContent,
			wantAllow: "http://localhost:5173",
		},
		{
			name:     "preflight disallowed origin",
			method:   http.MethodOptions,
			origin:   "https://evil.example.com",
			wantCode: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/metrics", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			handler(w, req)

			if w.Code != tt.wantCode {
				t.Errorf("expected status %d, got %d", tt.wantCode, w.Code)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("expected Access-Control-Allow-Origin %q, got %q", tt.wantAllow, got)
			}
			if w.Header().Get("Vary") != "Origin" {
				t.Error("expected Vary: Origin header")
			}
		})
	}
}

func TestParseConfigAllowedOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com/")

	cfg := parseConfig()

	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.AllowedOrigins) != len(want) {
		t.Fatalf("expected %d origins, got %d", len(want), len(cfg.AllowedOrigins))
	}
	for i, o := range want {
		if cfg.AllowedOrigins[i] != o {
			t.Errorf("origin[%d] = %q, want %q", i, cfg.AllowedOrigins[i], o)
		}
	}
}

func TestParseConfigPort(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg := parseConfig()
	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
}
