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
	"fmt"
	"sort"
)

// Store indexes section records by normalized display name. It is built
// once at startup and never mutated afterwards, so concurrent reads from
// request handlers need no locking.
type Store struct {
	index map[string]Record
	keys  []string
}

// NewStore builds a Store from loaded records. Records with a blank display
// name are skipped; when two records normalize to the same key, the later
// one wins.
func NewStore(records []Record) *Store {
	index := make(map[string]Record, len(records))
	for _, r := range records {
		key := Normalize(r.Section)
		if key == "" {
			continue
		}
		index[key] = r
	}

	keys := make([]string, 0, len(index))
	for k := range index {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return &Store{index: index, keys: keys}
}

// Keys returns the sorted candidate key set. The returned slice is shared;
// callers must not modify it.
func (s *Store) Keys() []string {
	return s.keys
}

// Len returns the number of indexed sections.
func (s *Store) Len() int {
	return len(s.index)
}

// Lookup normalizes the input and returns the matching record.
func (s *Store) Lookup(input string) (Record, bool) {
	r, ok := s.index[Normalize(input)]
	return r, ok
}

// Format shapes the uniform response envelope for the given caller input.
// On a hit it returns the record's display name, period, and metrics with
// ok true. On a miss it returns false and the caller should use
// NotFoundPayload for the error body.
func (s *Store) Format(input string) (Payload, bool) {
	r, ok := s.Lookup(input)
	if !ok {
		return Payload{}, false
	}
	metrics := r.Metrics
	if metrics == nil {
		metrics = map[string]any{}
	}
	return Payload{
		OK:      true,
		Section: r.Section,
		Period:  r.Period,
		Metrics: metrics,
	}, true
}

// NotFoundPayload builds the miss envelope, echoing the original caller
// input and listing every valid key.
func (s *Store) NotFoundPayload(input string) ErrorPayload {
	return ErrorPayload{
		OK:                false,
		Error:             fmt.Sprintf("Section '%s' not found.", input),
		AvailableSections: s.keys,
	}
}
