package creator

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/anirudh/quizdeck/internal/quiz"
)

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

const quizJSON = `{
	"quiz_title": "Capitals",
	"description": "",
	"questions": [
		{
			"id": 1,
			"question_text": "Capital of France?",
			"options": [
				{"text": "Paris", "is_correct": true},
				{"text": "Lyon", "is_correct": false}
			],
			"explanation": "Paris."
		}
	]
}`

const deckJSON = `{
	"concepts": [
		{
			"name": "Photosynthesis",
			"explanation": "Light into chemical energy.",
			"questions": [
				{
					"question_text": "What pigment?",
					"options": [
						{"text": "Chlorophyll", "is_correct": true},
						{"text": "Keratin", "is_correct": false}
					]
				}
			]
		}
	]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFile_Quiz(t *testing.T) {
	path := writeFile(t, "quiz.json", quizJSON)

	msg := parseFile(path)().(parsedMsg)
	if msg.Err != nil {
		t.Fatalf("unexpected error: %v", msg.Err)
	}
	if msg.Quiz == nil || msg.Deck != nil {
		t.Fatal("expected a flat quiz")
	}
	if msg.Quiz.Title != "Capitals" {
		t.Errorf("title = %q, want %q", msg.Quiz.Title, "Capitals")
	}
}

func TestParseFile_Deck(t *testing.T) {
	path := writeFile(t, "deck.json", deckJSON)

	msg := parseFile(path)().(parsedMsg)
	if msg.Err != nil {
		t.Fatalf("unexpected error: %v", msg.Err)
	}
	if msg.Deck == nil || msg.Quiz != nil {
		t.Fatal("expected a concept deck")
	}
}

func TestParseFile_BadJSON(t *testing.T) {
	path := writeFile(t, "broken.json", "{not json")

	msg := parseFile(path)().(parsedMsg)
	var syn *quiz.SyntaxError
	if !errors.As(msg.Err, &syn) {
		t.Fatalf("err = %T, want *quiz.SyntaxError", msg.Err)
	}

	lines := explainError(msg.Err)
	if len(lines) < 2 || lines[0] != "The file is not valid JSON:" {
		t.Errorf("explainError = %v, want syntax framing", lines)
	}
}

func TestParseFile_InvalidQuiz(t *testing.T) {
	path := writeFile(t, "invalid.json", `{"quiz_title": "x", "questions": []}`)

	msg := parseFile(path)().(parsedMsg)
	var val *quiz.ValidationError
	if !errors.As(msg.Err, &val) {
		t.Fatalf("err = %T, want *quiz.ValidationError", msg.Err)
	}
}

func TestCreator_QuizGoesStraightToPreview(t *testing.T) {
	c := New(nil)

	path := writeFile(t, "quiz.json", quizJSON)
	c.Update(parseFile(path)())

	if c.state != statePreview {
		t.Errorf("state = %d, want preview", c.state)
	}
}

func TestCreator_DeckAsksForTitle(t *testing.T) {
	c := New(nil)

	path := writeFile(t, "deck.json", deckJSON)
	c.Update(parseFile(path)())

	if c.state != stateDeckTitle {
		t.Fatalf("state = %d, want deck title prompt", c.state)
	}

	// An empty title is rejected.
	c.Update(specialKey(tea.KeyEnter))
	if c.state != stateDeckTitle {
		t.Error("expected empty title to be rejected")
	}

	c.titleInput.Model.SetValue("Biology basics")
	c.Update(specialKey(tea.KeyEnter))
	if c.state != statePreview {
		t.Errorf("state = %d, want preview", c.state)
	}
}

func TestCreator_ParseErrorStaysOnPath(t *testing.T) {
	c := New(nil)

	path := writeFile(t, "broken.json", "{not json")
	c.Update(parseFile(path)())

	if c.state != statePath {
		t.Errorf("state = %d, want path input", c.state)
	}
	if len(c.errLines) == 0 {
		t.Error("expected error lines to be shown")
	}
}

func TestCreator_SavedDonePops(t *testing.T) {
	c := New(nil)
	c.Update(savedMsg{ID: "abc"})

	if c.state != stateSaved {
		t.Fatalf("state = %d, want saved", c.state)
	}
	_, cmd := c.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Error("expected the done button to pop the screen")
	}
}
