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

package source

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/metricquest/pulse/pkg/defaults"
	"github.com/metricquest/pulse/pkg/errors"
	"github.com/metricquest/pulse/pkg/oci"
	"github.com/metricquest/pulse/pkg/section"
	"github.com/metricquest/pulse/pkg/serializer"
)

// datasetFileNames are the file names probed inside a pulled OCI artifact,
// in preference order.
var datasetFileNames = []string{"sections.json", "sections.yaml", "sections.yml"}

// LoadSections loads the section dataset from uri. Supported schemes:
//
//   - local file paths: data/sections.json, /etc/pulse/sections.yaml
//   - HTTP URLs: https://example.com/sections.json
//   - ConfigMap URIs: cm://namespace/name
//   - OCI artifacts: oci://ghcr.io/metricquest/sections:v1
//
// kubeconfig is only consulted for ConfigMap URIs. Errors carry
// ErrCodeSourceNotFound when the source does not exist and
// ErrCodeSourceFormat when its content cannot be parsed as a list of
// section records.
func LoadSections(ctx context.Context, uri, kubeconfig string) ([]section.Record, error) {
	if uri == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "dataset source is required")
	}

	path := uri
	if oci.IsOCIReference(uri) {
		localPath, cleanup, err := pullDataset(ctx, uri)
		if err != nil {
			return nil, err
		}
		defer cleanup()
		path = localPath
	}

	records, err := serializer.FromFileWithKubeconfig[[]section.Record](ctx, path, kubeconfig)
	if err != nil {
		return nil, classifyLoadError(uri, err)
	}

	slog.Debug("loaded section dataset", "source", uri, "records", len(*records))
	return *records, nil
}

// pullDataset pulls an OCI artifact into a temp directory and returns the
// path of the dataset file inside it. The cleanup func removes the temp
// directory and must be called after the file has been read.
func pullDataset(ctx context.Context, uri string) (string, func(), error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.SourceFetchTimeout)
	defer cancel()

	ref, err := oci.Parse(uri)
	if err != nil {
		return "", nil, err
	}

	destDir, err := os.MkdirTemp("", "pulse-sections-")
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeInternal, "failed to create temp directory", err)
	}
	cleanup := func() { _ = os.RemoveAll(destDir) }

	digest, err := oci.Pull(ctx, oci.PullOptions{Reference: ref, DestDir: destDir})
	if err != nil {
		cleanup()
		return "", nil, errors.WrapWithContext(errors.ErrCodeSourceNotFound,
			"failed to pull dataset artifact", err,
			map[string]any{"reference": ref.String()})
	}
	slog.Debug("pulled dataset artifact", "reference", ref.String(), "digest", digest)

	path, err := findDatasetFile(destDir)
	if err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}

// findDatasetFile locates the dataset file inside a pulled artifact
// directory: a well-known name first, then any single JSON or YAML file.
func findDatasetFile(dir string) (string, error) {
	for _, name := range datasetFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	var found string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json", ".yaml", ".yml":
			if found == "" {
				found = path
			}
		}
		return nil
	})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to scan pulled artifact", err)
	}
	if found == "" {
		return "", errors.NewWithContext(errors.ErrCodeSourceFormat,
			"pulled artifact contains no sections file",
			map[string]any{"dir": dir})
	}
	return found, nil
}

// classifyLoadError maps read and decode failures onto structured codes so
// callers can distinguish a missing source from a malformed one.
func classifyLoadError(uri string, err error) error {
	if goerrors.Is(err, fs.ErrNotExist) {
		return errors.WrapWithContext(errors.ErrCodeSourceNotFound,
			fmt.Sprintf("dataset source %q not found", uri), err,
			map[string]any{"source": uri})
	}

	var jsonType *json.UnmarshalTypeError
	var jsonSyntax *json.SyntaxError
	var yamlType *yaml.TypeError
	if goerrors.As(err, &jsonType) || goerrors.As(err, &jsonSyntax) || goerrors.As(err, &yamlType) {
		return errors.WrapWithContext(errors.ErrCodeSourceFormat,
			fmt.Sprintf("dataset source %q is not a list of section records", uri), err,
			map[string]any{"source": uri})
	}

	return errors.Wrap(errors.ErrCodeSourceNotFound,
		fmt.Sprintf("failed to load dataset source %q", uri), err)
}
