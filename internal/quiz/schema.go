package quiz

// optionSchema is shared by question and sub-question option lists.
var optionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"text":       map[string]any{"type": "string"},
		"is_correct": map[string]any{"type": "boolean"},
		"score":      map[string]any{"type": "integer"},
	},
	"required":             []any{"text", "is_correct"},
	"additionalProperties": false,
}

var subQuestionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":            map[string]any{"type": "integer"},
		"question_text": map[string]any{"type": "string", "minLength": 1},
		"options": map[string]any{
			"type":     "array",
			"items":    optionSchema,
			"minItems": 1,
		},
		"explanation": map[string]any{"type": "string"},
		"citations":   map[string]any{"type": "string"},
	},
	"required":             []any{"id", "question_text", "options", "explanation"},
	"additionalProperties": false,
}

// SchemaDefinition is the JSON Schema for the quiz authoring document.
// It is used both to validate pasted/loaded quiz JSON and as the structured
// output schema for LLM draft generation.
var SchemaDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"quiz_title":  map[string]any{"type": "string", "minLength": 1},
		"description": map[string]any{"type": "string"},
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":            map[string]any{"type": "integer"},
					"question_text": map[string]any{"type": "string", "minLength": 1},
					"options": map[string]any{
						"type":     "array",
						"items":    optionSchema,
						"minItems": 1,
					},
					"explanation": map[string]any{"type": "string"},
					"citations":   map[string]any{"type": "string"},
					"concept_id":  map[string]any{"type": "integer"},
					"sub_questions": map[string]any{
						"type":  "array",
						"items": subQuestionSchema,
					},
					"correct_score":   map[string]any{"type": "integer"},
					"incorrect_score": map[string]any{"type": "integer"},
				},
				"required":             []any{"id", "question_text", "options", "explanation"},
				"additionalProperties": false,
			},
			"minItems": 1,
		},
		"concepts_used_in_quiz": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":      map[string]any{"type": "integer"},
					"concept": map[string]any{"type": "string", "minLength": 1},
				},
				"required":             []any{"id", "concept"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"quiz_title", "description", "questions"},
	"additionalProperties": false,
}
