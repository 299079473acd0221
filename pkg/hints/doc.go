// Package hints holds the short per-section descriptions fed to the
// free-text resolver prompt, with optional YAML overrides.
package hints
