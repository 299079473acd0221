// Package source loads section datasets from local files, HTTP URLs,
// Kubernetes ConfigMaps, and OCI registries.
package source
