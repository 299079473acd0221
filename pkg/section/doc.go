// Package section implements the core lookup domain: an immutable store of
// section records indexed by normalized name, the normalizer shared by index
// construction and lookups, the uniform response envelopes, and the HTTP
// handlers that tie them together.
package section
