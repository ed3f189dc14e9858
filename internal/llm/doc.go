// Package llm provides the generative operations behind the badge assistant.
// Providers (Gemini, Anthropic) are fallible; the Assistant wrapper adds rate
// limiting, retries and response caching, and turns every failure into the
// fallback text the conversation shows instead.
package llm
