// Package resolver implements constrained free-text section resolution: a
// single deterministic completion call that must answer with one key from a
// closed candidate set, validated with the same normalizer used for store
// lookups. Anything else is a structured error, never a propagated failure.
package resolver
