package concepts

import (
	"encoding/json"
	"fmt"

	"github.com/anirudh/quizdeck/internal/quiz"
	"github.com/anirudh/quizdeck/internal/schema"
)

var questionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"question_text": map[string]any{"type": "string", "minLength": 1},
		"explanation":   map[string]any{"type": "string"},
		"options": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"text":       map[string]any{"type": "string"},
					"is_correct": map[string]any{"type": "boolean"},
					"score":      map[string]any{"type": "integer"},
				},
				"required":             []any{"text", "is_correct"},
				"additionalProperties": false,
			},
			"minItems": 1,
		},
	},
	"required":             []any{"question_text", "options"},
	"additionalProperties": false,
}

// SchemaDefinition is the JSON Schema for the concept-deck authoring document.
var SchemaDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"concepts": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":        map[string]any{"type": "string", "minLength": 1},
					"explanation": map[string]any{"type": "string", "minLength": 1},
					"questions": map[string]any{
						"type":  "array",
						"items": questionSchema,
					},
					"sub_explanations": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"title":       map[string]any{"type": "string", "minLength": 1},
								"explanation": map[string]any{"type": "string", "minLength": 1},
								"questions": map[string]any{
									"type":  "array",
									"items": questionSchema,
								},
							},
							"required":             []any{"title", "explanation"},
							"additionalProperties": false,
						},
					},
				},
				"required":             []any{"name", "explanation"},
				"additionalProperties": false,
			},
			"minItems": 1,
		},
	},
	"required":             []any{"concepts"},
	"additionalProperties": false,
}

// Parse decodes and validates a concept-deck document, with the same
// three-pass structure as quiz.Parse: syntax, schema, semantics.
func Parse(data []byte) (*Deck, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &quiz.SyntaxError{Err: err}
	}

	if err := schema.Validate("concept-deck", SchemaDefinition, doc); err != nil {
		return nil, &quiz.ValidationError{Problems: []string{err.Error()}}
	}

	var d Deck
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, &quiz.SyntaxError{Err: err}
	}

	if problems := check(d); len(problems) > 0 {
		return nil, &quiz.ValidationError{Problems: problems}
	}
	return &d, nil
}

// check requires at least one correct option anywhere a question list appears.
func check(d Deck) []string {
	var problems []string
	for i, c := range d.Concepts {
		for j, q := range c.Questions {
			if !hasCorrect(q.Options) {
				problems = append(problems, fmt.Sprintf("concept %d, question %d: no option marked is_correct", i+1, j+1))
			}
		}
		for s, sub := range c.SubExplanations {
			for j, q := range sub.Questions {
				if !hasCorrect(q.Options) {
					problems = append(problems, fmt.Sprintf("concept %d, sub-explanation %d, question %d: no option marked is_correct", i+1, s+1, j+1))
				}
			}
		}
	}
	return problems
}

func hasCorrect(options []quiz.Option) bool {
	for _, opt := range options {
		if opt.IsCorrect {
			return true
		}
	}
	return false
}
