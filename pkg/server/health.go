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

	"github.com/metricquest/pulse/pkg/serializer"
)

// healthPayload is the liveness response body.
type healthPayload struct {
	OK bool `json:"ok"`
}

// readyPayload is the readiness response body.
type readyPayload struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

// handleHealthz handles GET /healthz. It answers 200 whenever the process
// can serve requests, including during shutdown drain.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, healthPayload{OK: true})
}

// handleReadyz handles GET /readyz. It answers 503 before the dataset is
// loaded and while the server is draining.
func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !s.isReady() {
		serializer.RespondJSON(w, http.StatusServiceUnavailable,
			readyPayload{OK: false, Reason: "service is not ready"})
		return
	}

	serializer.RespondJSON(w, http.StatusOK, readyPayload{OK: true})
}
