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

// Record is a named bundle of metrics for a time period, as loaded from the
// dataset. Unrecognized fields in the source document are ignored.
type Record struct {
	Section string         `json:"section" yaml:"section"`
	Period  string         `json:"period" yaml:"period"`
	Metrics map[string]any `json:"metrics" yaml:"metrics"`
}

// Payload is the success envelope for a section lookup. Message is included
// only on routes that attach the configured greeting.
type Payload struct {
	Message string         `json:"message,omitempty"`
	OK      bool           `json:"ok"`
	Section string         `json:"section"`
	Period  string         `json:"period"`
	Metrics map[string]any `json:"metrics"`
}

// ErrorPayload is the failure envelope for section lookups and free-text
// resolution. AvailableSections always carries the full sorted key list so
// callers can self-correct.
type ErrorPayload struct {
	OK                bool     `json:"ok"`
	Error             string   `json:"error"`
	AvailableSections []string `json:"available_sections,omitempty"`
	Hint              string   `json:"hint,omitempty"`
}
