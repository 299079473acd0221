// Package defaults centralizes timeout constants used across the pulse
// service and CLI. Keeping them in one place makes the latency budget of a
// request visible: the server write timeout must cover the resolver call,
// and the resolver call must finish well before the client gives up.
package defaults
