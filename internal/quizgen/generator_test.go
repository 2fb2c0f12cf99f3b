package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

const draftedQuizJSON = `{
  "quiz_title": "Goroutines",
  "description": "Concurrency fundamentals.",
  "questions": [
    {
      "id": 1,
      "question_text": "What starts a goroutine?",
      "options": [
        {"text": "the go keyword", "is_correct": true},
        {"text": "the run keyword", "is_correct": false}
      ],
      "explanation": "go f() starts f in a new goroutine."
    }
  ]
}`

func TestDraftReturnsParsedQuiz(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(draftedQuizJSON)},
	)
	g := NewGeneratorWith(mock, time.Second)

	q, err := g.Draft(context.Background(), DraftRequest{Topic: "goroutines", Questions: 1})
	if err != nil {
		t.Fatalf("Draft: %v", err)
	}
	if q.Title != "Goroutines" {
		t.Errorf("title = %q", q.Title)
	}
	if len(q.Questions) != 1 {
		t.Fatalf("questions = %d, want 1", len(q.Questions))
	}

	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "quiz" {
		t.Fatalf("schema = %+v, want the quiz schema", req.Schema)
	}
	if req.System == "" {
		t.Error("system prompt missing")
	}
	prompt := req.Messages[0].Content
	if !strings.Contains(prompt, "goroutines") || !strings.Contains(prompt, "Questions: 1") {
		t.Errorf("prompt = %q, want topic and count", prompt)
	}
}

func TestDraftDefaultsQuestionCount(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(draftedQuizJSON)},
	)
	g := NewGeneratorWith(mock, time.Second)

	if _, err := g.Draft(context.Background(), DraftRequest{Topic: "maps"}); err != nil {
		t.Fatalf("Draft: %v", err)
	}
	prompt := mock.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, "Questions: 5") {
		t.Errorf("prompt = %q, want default count 5", prompt)
	}
}

func TestDraftIncludesNotes(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(draftedQuizJSON)},
	)
	g := NewGeneratorWith(mock, time.Second)

	_, err := g.Draft(context.Background(), DraftRequest{
		Topic: "channels",
		Notes: "unbuffered channels block",
	})
	if err != nil {
		t.Fatalf("Draft: %v", err)
	}
	if !strings.Contains(mock.Calls[0].Messages[0].Content, "unbuffered channels block") {
		t.Error("notes not forwarded to the prompt")
	}
}

func TestDraftRequiresTopic(t *testing.T) {
	g := NewGeneratorWith(NewMockProvider(), time.Second)
	if _, err := g.Draft(context.Background(), DraftRequest{}); err == nil {
		t.Fatal("expected error for empty topic")
	}
}

func TestDraftRejectsUnplayableOutput(t *testing.T) {
	// Structurally valid JSON, but no option is marked correct.
	bad := `{
	  "quiz_title": "Broken",
	  "description": "No right answer.",
	  "questions": [
	    {
	      "id": 1,
	      "question_text": "q",
	      "options": [
	        {"text": "a", "is_correct": false},
	        {"text": "b", "is_correct": false}
	      ],
	      "explanation": "e"
	    }
	  ]
	}`
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(bad)},
	)
	g := NewGeneratorWith(mock, time.Second)

	_, err := g.Draft(context.Background(), DraftRequest{Topic: "x"})
	var invResp *ErrInvalidResponse
	if !errors.As(err, &invResp) {
		t.Fatalf("err = %v, want ErrInvalidResponse", err)
	}
}

func TestDraftPropagatesProviderErrors(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	g := NewGeneratorWith(mock, time.Second)

	_, err := g.Draft(context.Background(), DraftRequest{Topic: "x"})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("err = %v, want ErrProviderUnavailable", err)
	}
}

func TestNewGeneratorUnknownProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "carrier-pigeon"
	if _, err := NewGenerator(context.Background(), cfg); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewGeneratorMock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "mock"
	g, err := NewGenerator(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	if g.ModelID() != "mock" {
		t.Errorf("ModelID = %q, want mock", g.ModelID())
	}
}
