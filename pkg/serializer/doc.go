// Package serializer provides utilities for reading and writing structured
// data in the formats the pulse tooling speaks.
//
// Three output formats are supported:
//   - JSON: machine-readable structured data with indentation
//   - YAML: human-readable configuration format
//   - Table: flattened FIELD/VALUE output for terminals
//
// Usage:
//
//	writer := serializer.NewWriter(serializer.FormatJSON, os.Stdout)
//	defer writer.Close()
//	if err := writer.Serialize(ctx, data); err != nil {
//		log.Fatal(err)
//	}
//
// For HTTP responses:
//
//	serializer.RespondJSON(w, http.StatusOK, data)
//
// Readers accept local paths, HTTP/HTTPS URLs, and ConfigMap URIs
// (cm://namespace/name); writers additionally target ConfigMaps via
// Server-Side Apply.
package serializer
