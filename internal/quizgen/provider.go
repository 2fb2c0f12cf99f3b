// Package quizgen drafts quizzes with an LLM. A Provider abstracts the
// vendor SDKs behind one structured-output call; Generator turns a topic
// into a validated quiz document ready for the library.
package quizgen

import (
	"context"
	"encoding/json"

	"github.com/anirudh/quizdeck/internal/schema"
)

// Provider is the vendor abstraction. Implementations send one structured
// generation request and return validated JSON.
type Provider interface {
	// Generate sends a prompt and returns a structured response. When the
	// request carries a Schema, the provider uses its native structured
	// output mechanism and validates the content against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Drafting is single-turn, so this is
	// normally one user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to. When nil the
	// response Content is raw text.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0 to 1.0. Zero means deterministic.
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema definition for structured output. Name doubles
// as the schema name sent to the vendor and the compile-cache key.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the generated JSON (validated when a Schema was set), or
	// raw text otherwise.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to: "end", "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// validateResponse checks raw content against the request schema, wrapping
// failures in *ErrInvalidResponse so the retry layer can give the model one
// more chance.
func validateResponse(s *Schema, raw json.RawMessage) error {
	if s == nil {
		return nil
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	if err := schema.Validate(s.Name, s.Definition, parsed); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	return nil
}
