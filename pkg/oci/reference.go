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
	"fmt"
	"strings"

	"github.com/distribution/reference"

	apperrors "github.com/metricquest/pulse/pkg/errors"
)

// URIScheme is the URI scheme for OCI dataset references
// (e.g. "oci://ghcr.io/metricquest/sections:latest").
const URIScheme = "oci://"

// DefaultTag is applied when a reference omits the tag.
const DefaultTag = "latest"

// Reference is a parsed OCI registry reference.
type Reference struct {
	// Registry is the registry host (e.g. "ghcr.io", "localhost:5000").
	Registry string
	// Repository is the repository path (e.g. "metricquest/sections").
	Repository string
	// Tag is the artifact tag; DefaultTag when omitted from the URI.
	Tag string
}

// IsOCIReference reports whether target uses the oci:// scheme.
func IsOCIReference(target string) bool {
	return strings.HasPrefix(target, URIScheme)
}

// Parse validates an oci:// URI and splits it into components.
func Parse(target string) (*Reference, error) {
	if !IsOCIReference(target) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("OCI reference must start with %s", URIScheme))
	}

	ref, err := reference.ParseNormalizedNamed(strings.TrimPrefix(target, URIScheme))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid OCI reference", err)
	}

	tag := DefaultTag
	if tagged, ok := ref.(reference.Tagged); ok {
		tag = tagged.Tag()
	}

	return &Reference{
		Registry:   reference.Domain(ref),
		Repository: reference.Path(ref),
		Tag:        tag,
	}, nil
}

// String returns the full oci:// form of the reference.
func (r *Reference) String() string {
	return fmt.Sprintf("%s%s/%s:%s", URIScheme, r.Registry, r.Repository, r.Tag)
}

// ImageReference returns the Docker-style reference without the scheme.
func (r *Reference) ImageReference() string {
	return fmt.Sprintf("%s/%s:%s", r.Registry, r.Repository, r.Tag)
}

// RepositoryReference returns registry/repository without a tag, the form
// oras remote repositories are initialized with.
func (r *Reference) RepositoryReference() string {
	return fmt.Sprintf("%s/%s", r.Registry, r.Repository)
}
