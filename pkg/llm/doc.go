// Package llm provides thin completion-provider clients behind a single
// Client interface. The service only ever needs one call shape: system
// contract, user content, deterministic sampling, tiny output cap.
//
// Two providers are supported: any OpenAI-compatible chat-completions
// endpoint (the default, with a configurable base URL) and the Anthropic
// Messages API.
package llm
