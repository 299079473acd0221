// Package cli implements the command-line interface for the pulse tool.
//
// # Commands
//
// serve - Run the section lookup HTTP server:
//
//	pulse serve [--source data/sections.json] [--default-section overview_core]
//
// sections - List sections from a dataset source:
//
//	pulse sections [--source URI] [--keys] [--format json|yaml|table] [--output FILE]
//
// resolve - Resolve a free-text query to a section, one shot:
//
//	pulse resolve --q "quarterly ROI" [--provider openai] [--model gpt-4o-mini]
//
// publish - Publish a dataset file as an OCI artifact:
//
//	pulse publish --file data/sections.json --ref oci://ghcr.io/metricquest/sections:v1
//
// # Dataset Sources
//
// Commands taking --source accept local file paths, HTTP/HTTPS URLs,
// ConfigMap URIs (cm://namespace/name), and OCI references
// (oci://registry/repo:tag).
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/metricquest/pulse/pkg/cli.version=1.0.0'"
package cli
