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
	"sort"
	"testing"
)

func testRecords() []Record {
	return []Record{
		{Section: "Overview Core", Period: "2025-Q3", Metrics: map[string]any{"uptime": 99.9}},
		{Section: "usage", Period: "2025-Q3", Metrics: map[string]any{"dau": 1200}},
		{Section: "ROI-Quarter", Period: "2025-Q3", Metrics: map[string]any{"roi_pct": 211}},
	}
}

func TestNewStore(t *testing.T) {
	s := NewStore(testRecords())

	if s.Len() != 3 {
		t.Fatalf("expected 3 sections, got %d", s.Len())
	}

	want := []string{"overview_core", "roi_quarter", "usage"}
	got := s.Keys()
	if len(got) != len(want) {
		t.Fatalf("expected keys %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if !sort.StringsAreSorted(got) {
		t.Error("expected sorted keys")
	}
}

func TestNewStoreSkipsBlankNames(t *testing.T) {
	s := NewStore([]Record{
		{Section: "", Period: "2025-Q3"},
		{Section: "   ", Period: "2025-Q3"},
		{Section: "usage", Period: "2025-Q3"},
	})

	if s.Len() != 1 {
		t.Errorf("expected blank sections skipped, got %d entries", s.Len())
	}
}

func TestNewStoreDuplicateKeys(t *testing.T) {
	// Two records normalizing to the same key: the later record wins.
	s := NewStore([]Record{
		{Section: "Usage", Period: "2025-Q2", Metrics: map[string]any{"dau": 800}},
		{Section: "usage", Period: "2025-Q3", Metrics: map[string]any{"dau": 1200}},
	})

	if s.Len() != 1 {
		t.Fatalf("expected 1 entry after duplicate collapse, got %d", s.Len())
	}

	r, ok := s.Lookup("usage")
	if !ok {
		t.Fatal("expected usage to be indexed")
	}
	if r.Period != "2025-Q3" {
		t.Errorf("expected later record to win, got period %q", r.Period)
	}
}

func TestLookupNormalizesInput(t *testing.T) {
	s := NewStore(testRecords())

	inputs := []string{"overview_core", "Overview Core", " OVERVIEW-CORE ", "overview-core"}
	for _, in := range inputs {
		if _, ok := s.Lookup(in); !ok {
			t.Errorf("expected Lookup(%q) to hit", in)
		}
	}

	if _, ok := s.Lookup("nope"); ok {
		t.Error("expected Lookup miss for unknown key")
	}
}

func TestFormat(t *testing.T) {
	s := NewStore(testRecords())

	payload, ok := s.Format("Overview Core")
	if !ok {
		t.Fatal("expected Format hit")
	}
	if !payload.OK {
		t.Error("expected ok true")
	}
	if payload.Section != "Overview Core" {
		t.Errorf("expected original display name, got %q", payload.Section)
	}
	if payload.Period != "2025-Q3" {
		t.Errorf("unexpected period %q", payload.Period)
	}
	if payload.Metrics["uptime"] != 99.9 {
		t.Errorf("unexpected metrics %v", payload.Metrics)
	}
}

func TestFormatNilMetrics(t *testing.T) {
	s := NewStore([]Record{{Section: "bare", Period: "2025-Q3"}})

	payload, ok := s.Format("bare")
	if !ok {
		t.Fatal("expected Format hit")
	}
	if payload.Metrics == nil {
		t.Error("expected empty metrics map, got nil")
	}
	if len(payload.Metrics) != 0 {
		t.Errorf("expected empty metrics, got %v", payload.Metrics)
	}
}

func TestNotFoundPayload(t *testing.T) {
	s := NewStore(testRecords())

	p := s.NotFoundPayload("Quarterly ROI")
	if p.OK {
		t.Error("expected ok false")
	}
	if p.Error != "Section 'Quarterly ROI' not found." {
		t.Errorf("unexpected error message %q", p.Error)
	}
	if len(p.AvailableSections) != 3 {
		t.Errorf("expected full key list, got %v", p.AvailableSections)
	}
}
