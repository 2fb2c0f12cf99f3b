package quizgen

import (
	"context"
	"fmt"
	"time"

	"github.com/anirudh/quizdeck/internal/quiz"
)

// DefaultQuestionCount is used when a draft request does not say how many
// questions to produce.
const DefaultQuestionCount = 5

const draftMaxTokens = 8192

// DraftRequest describes the quiz to draft.
type DraftRequest struct {
	// Topic is what the quiz should cover.
	Topic string

	// Questions is how many questions to produce. Zero means
	// DefaultQuestionCount.
	Questions int

	// Notes is optional extra guidance: source material, difficulty,
	// audience.
	Notes string
}

// Generator drafts quizzes through a Provider. The model's output goes
// through the same parser as hand-authored quiz files, so a returned quiz is
// guaranteed playable.
type Generator struct {
	provider Provider
	timeout  time.Duration
}

// NewGenerator builds the configured provider stack: base provider wrapped
// with retry.
func NewGenerator(ctx context.Context, cfg Config) (*Generator, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return &Generator{
		provider: WithRetry(base, cfg.Retry),
		timeout:  cfg.Timeout,
	}, nil
}

// NewGeneratorWith wraps an existing Provider, bypassing config. Used by
// tests and anywhere a provider is assembled by hand.
func NewGeneratorWith(p Provider, timeout time.Duration) *Generator {
	return &Generator{provider: p, timeout: timeout}
}

// ModelID reports the underlying model identifier.
func (g *Generator) ModelID() string {
	return g.provider.ModelID()
}

// Draft produces a complete quiz on the requested topic.
func (g *Generator) Draft(ctx context.Context, req DraftRequest) (*quiz.Quiz, error) {
	if req.Topic == "" {
		return nil, fmt.Errorf("draft topic is required")
	}
	if req.Questions <= 0 {
		req.Questions = DefaultQuestionCount
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.provider.Generate(ctx, Request{
		System: draftSystemPrompt,
		Messages: []Message{
			{Role: RoleUser, Content: buildDraftPrompt(req)},
		},
		Schema: &Schema{
			Name:        "quiz",
			Description: "A multiple-choice quiz document.",
			Definition:  quiz.SchemaDefinition,
		},
		MaxTokens: draftMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("draft quiz: %w", err)
	}

	drafted, err := quiz.Parse(resp.Content)
	if err != nil {
		return nil, &ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	return drafted, nil
}
