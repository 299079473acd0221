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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolution outcome labels.
const (
	outcomeResolved      = "resolved"
	outcomeInvalidKey    = "invalid_key"
	outcomeProviderError = "provider_error"
	outcomeUnconfigured  = "unconfigured"
)

var (
	resolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_resolutions_total",
			Help: "Total number of free-text resolution attempts by outcome",
		},
		[]string{"outcome"},
	)

	providerLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pulse_resolver_provider_duration_seconds",
			Help:    "Latency of completion provider calls in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)
)
