// Package llm abstracts the providers used for example-sentence generation.
// The app works without any provider configured; everything here is optional
// plumbing behind the example line on the card back.
package llm

import "context"

// Provider is the core abstraction for LLM interaction. Ordkort only ever
// needs short plain-text completions, so a request carries a single prompt
// and a response carries a single string.
type Provider interface {
	// Generate sends a prompt to the LLM and returns the text response.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Prompt is the user message. All generation here is single-turn.
	Prompt string

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Response holds the LLM's output.
type Response struct {
	// Text is the generated output, trimmed of surrounding whitespace.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
