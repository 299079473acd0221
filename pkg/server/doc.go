// Package server provides the HTTP server hosting the pulse API: route
// registration, middleware (metrics, CORS, request IDs, panic recovery,
// rate limiting, logging), health probes, and graceful shutdown.
package server
