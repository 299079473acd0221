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

package hints

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// defaultDescriptions are the shipped per-key hints used in the resolver
// prompt. They describe intent, not data, so the model can match vague
// queries ("how are sales doing") to a key.
var defaultDescriptions = map[string]string{
	"overview_core":           "Overall KPIs across the program",
	"human_engagement_trends": "Human feedback, escalations, reviews",
	"agent_learning_progress": "Learning, models improving, training velocity",
	"operations_impact":       "Ops metrics and efficiency",
	"roi_quarter":             "Return on investment (quarterly)",
	"roi_annual":              "Return on investment (annual)",
	"sales_impact":            "Sales impact, revenue, pipeline, conversions",
}

var titleCaser = cases.Title(language.English)

// Catalog maps section keys to short human-authored descriptions.
type Catalog struct {
	descriptions map[string]string
}

// Default returns the shipped catalog.
func Default() *Catalog {
	d := make(map[string]string, len(defaultDescriptions))
	for k, v := range defaultDescriptions {
		d[k] = v
	}
	return &Catalog{descriptions: d}
}

// Load reads a YAML file mapping keys to descriptions and merges it over
// the defaults. An empty path returns the defaults unchanged.
func Load(path string) (*Catalog, error) {
	c := Default()
	if strings.TrimSpace(path) == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read hints file %q: %w", path, err)
	}

	overrides := make(map[string]string)
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse hints file %q: %w", path, err)
	}

	for k, v := range overrides {
		c.descriptions[k] = v
	}
	return c, nil
}

// Describe returns the hint for a key, falling back to a label derived from
// the key itself so every candidate line in the prompt has some text.
func (c *Catalog) Describe(key string) string {
	if d, ok := c.descriptions[key]; ok && d != "" {
		return d
	}
	return Label(key)
}

// Label turns a normalized key into a human-readable title:
// "overview_core" becomes "Overview Core".
func Label(key string) string {
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}
