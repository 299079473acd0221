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

package oci

import (
	"context"
	"fmt"
	"path/filepath"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"
	"oras.land/oras-go/v2/registry/remote"
)

// PushOptions configures an OCI push.
type PushOptions struct {
	// Reference identifies the push target.
	Reference *Reference
	// SourceDir is the directory whose contents become the artifact.
	SourceDir string
	// Annotations are additional manifest annotations.
	Annotations map[string]string
	// PlainHTTP uses HTTP instead of HTTPS for the registry connection.
	PlainHTTP bool
	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
}

// Push packages a directory as an OCI artifact and pushes it. Used by the
// CLI to publish a sections dataset pulsed instances pull at boot.
func Push(ctx context.Context, opts PushOptions) (string, error) {
	if opts.Reference == nil {
		return "", fmt.Errorf("reference is required to push OCI artifact")
	}

	absSourceDir, err := filepath.Abs(opts.SourceDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve source directory: %w", err)
	}

	fs, err := file.New(absSourceDir)
	if err != nil {
		return "", fmt.Errorf("failed to create file store: %w", err)
	}
	defer func() { _ = fs.Close() }()

	// Deterministic tars keep pushes reproducible for identical datasets.
	fs.TarReproducible = true

	layerDesc, err := fs.Add(ctx, ".", ociv1.MediaTypeImageLayerGzip, absSourceDir)
	if err != nil {
		return "", fmt.Errorf("failed to add source directory to store: %w", err)
	}

	packOpts := oras.PackManifestOptions{
		Layers:              []ociv1.Descriptor{layerDesc},
		ManifestAnnotations: opts.Annotations,
	}

	manifestDesc, err := oras.PackManifest(ctx, fs, oras.PackManifestVersion1_1, ArtifactType, packOpts)
	if err != nil {
		return "", fmt.Errorf("failed to pack manifest: %w", err)
	}

	if tagErr := fs.Tag(ctx, manifestDesc, opts.Reference.Tag); tagErr != nil {
		return "", fmt.Errorf("failed to tag manifest in local store: %w", tagErr)
	}

	repo, err := remote.NewRepository(opts.Reference.RepositoryReference())
	if err != nil {
		return "", fmt.Errorf("failed to initialize remote repository: %w", err)
	}
	repo.PlainHTTP = opts.PlainHTTP
	repo.Client = createAuthClient(opts.PlainHTTP, opts.InsecureTLS)

	desc, err := oras.Copy(ctx, fs, opts.Reference.Tag, repo, opts.Reference.Tag, oras.DefaultCopyOptions)
	if err != nil {
		return "", fmt.Errorf("failed to push artifact to registry: %w", err)
	}

	return desc.Digest.String(), nil
}
