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

package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"

	"github.com/metricquest/pulse/pkg/defaults"
	"github.com/metricquest/pulse/pkg/k8s/client"
)

// ConfigMapURIScheme is the URI scheme for ConfigMap sources and targets
// (e.g. "cm://pulse/sections").
const ConfigMapURIScheme = "cm://"

// configMapDataKey is the base name for dataset keys in a ConfigMap:
// sections.json or sections.yaml, with a sibling "format" key.
const configMapDataKey = "sections"

// ConfigMapWriter publishes serialized data to a Kubernetes ConfigMap,
// creating it if absent or updating it in place. This is how a dataset is
// made available to in-cluster pulsed instances reading cm:// sources.
type ConfigMapWriter struct {
	namespace string
	name      string
	format    Format
}

// NewConfigMapWriter creates a ConfigMapWriter for the given namespace and
// name in the given format.
func NewConfigMapWriter(namespace, name string, format Format) *ConfigMapWriter {
	if format.IsUnknown() {
		slog.Warn("unknown format, defaulting to JSON", "format", format)
		format = FormatJSON
	}
	return &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    format,
	}
}

// Serialize writes the data to the ConfigMap. The resulting ConfigMap has:
//   - data.sections.{json|yaml}: the serialized dataset
//   - data.format: the format used
//   - data.timestamp: ISO 8601 publish time
func (w *ConfigMapWriter) Serialize(ctx context.Context, data any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	k8sClient, _, err := client.GetKubeClient()
	if err != nil {
		return fmt.Errorf("failed to get kubernetes client: %w", err)
	}

	var content []byte
	var extension string
	switch w.format {
	case FormatJSON:
		content, err = serializeJSON(data)
		extension = "json"
	case FormatYAML:
		content, err = serializeYAML(data)
		extension = "yaml"
	default:
		return fmt.Errorf("unsupported format for ConfigMap: %s", w.format)
	}
	if err != nil {
		return fmt.Errorf("failed to serialize dataset: %w", err)
	}

	configMapData := map[string]string{
		fmt.Sprintf("%s.%s", configMapDataKey, extension): string(content),
		"format":    string(w.format),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	configMap := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":      "pulse",
			"app.kubernetes.io/component": "sections",
		}).
		WithData(configMapData)

	slog.Info("applying ConfigMap",
		"namespace", w.namespace,
		"name", w.name,
		"format", w.format)

	// Server-Side Apply makes the create-or-update atomic.
	_, err = k8sClient.CoreV1().ConfigMaps(w.namespace).Apply(
		writeCtx,
		configMap,
		metav1.ApplyOptions{
			FieldManager: "pulse",
			Force:        true,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap: %w", err)
	}

	return nil
}

// Close is a no-op; it exists to satisfy the Closer interface.
func (w *ConfigMapWriter) Close() error {
	return nil
}

// ParseConfigMapURI parses cm://namespace/name into its components.
func ParseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	path := strings.TrimPrefix(uri, ConfigMapURIScheme)

	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])

	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}

	return namespace, name, nil
}
