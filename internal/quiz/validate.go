package quiz

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anirudh/quizdeck/internal/schema"
)

// SyntaxError reports malformed JSON, as opposed to a structurally valid
// document that violates the quiz schema.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid JSON: %v", e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// ValidationError aggregates the authoring problems found in a document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid quiz: " + strings.Join(e.Problems, "; ")
}

// Parse decodes and validates a quiz authoring document. The document is
// checked in three passes: JSON syntax (*SyntaxError), schema shape
// (*ValidationError), and semantic rules the schema can't express
// (*ValidationError). Nothing is constructed until all passes succeed.
func Parse(data []byte) (*Quiz, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &SyntaxError{Err: err}
	}

	if err := schema.Validate("quiz", SchemaDefinition, doc); err != nil {
		return nil, &ValidationError{Problems: []string{err.Error()}}
	}

	var q Quiz
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, &SyntaxError{Err: err}
	}

	if problems := check(q); len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	return &q, nil
}

// check enforces the rules the JSON Schema leaves open: every question and
// sub-question needs at least one correct option, and question ids must be
// unique within the quiz.
func check(q Quiz) []string {
	var problems []string
	seen := make(map[int]bool, len(q.Questions))

	for i, question := range q.Questions {
		if seen[question.ID] {
			problems = append(problems, fmt.Sprintf("question %d: duplicate id %d", i+1, question.ID))
		}
		seen[question.ID] = true

		if !hasCorrectOption(question.Options) {
			problems = append(problems, fmt.Sprintf("question %d: no option marked is_correct", i+1))
		}

		for j, sub := range question.SubQuestions {
			if !hasCorrectOption(sub.Options) {
				problems = append(problems, fmt.Sprintf("question %d, sub-question %d: no option marked is_correct", i+1, j+1))
			}
		}
	}
	return problems
}

func hasCorrectOption(options []Option) bool {
	for _, opt := range options {
		if opt.IsCorrect {
			return true
		}
	}
	return false
}
