// Package api composes the pulse daemon: configuration, dataset loading,
// resolver wiring, and the HTTP server lifecycle.
package api
