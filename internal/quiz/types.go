package quiz

// Option is one selectable answer for a question. Option identity is
// positional: answers refer to options by index, never by value.
type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`

	// Score, when set, is awarded verbatim regardless of correctness.
	Score *int `json:"score,omitempty"`
}

// SubQuestion is a secondary question attached to a main question. It is
// scored independently at a reduced tariff.
type SubQuestion struct {
	ID          int      `json:"id"`
	Text        string   `json:"question_text"`
	Options     []Option `json:"options"`
	Explanation string   `json:"explanation"`
	Citations   string   `json:"citations,omitempty"`
}

// Question is a single quiz question. IDs are unique within a quiz.
type Question struct {
	ID          int      `json:"id"`
	Text        string   `json:"question_text"`
	Options     []Option `json:"options"`
	Explanation string   `json:"explanation"`
	Citations   string   `json:"citations,omitempty"`

	// ConceptID links the question to a Concept for analytics.
	ConceptID *int `json:"concept_id,omitempty"`

	SubQuestions []SubQuestion `json:"sub_questions,omitempty"`

	// CorrectScore and IncorrectScore override the default tariff for this
	// question. Either may be set independently.
	CorrectScore   *int `json:"correct_score,omitempty"`
	IncorrectScore *int `json:"incorrect_score,omitempty"`
}

// Concept is a labeled topic used to tag questions for analytics. Distinct
// from the concept-deck explanation tree in package concepts.
type Concept struct {
	ID    int    `json:"id"`
	Label string `json:"concept"`
}

// Quiz is a complete flat quiz document.
type Quiz struct {
	Title       string     `json:"quiz_title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
	Concepts    []Concept  `json:"concepts_used_in_quiz,omitempty"`
}

// SubAnswer records the learner's response to one sub-question.
type SubAnswer struct {
	SubQuestionID  int
	SelectedOption int
	IsCorrect      bool
	Score          int
}

// Answer records the learner's response to one question during a
// play-through. Answers are ephemeral: created as questions are submitted,
// discarded on restart.
type Answer struct {
	QuestionID     int
	SelectedOption int
	IsCorrect      bool
	Score          int
	SubAnswers     []SubAnswer
}

// TotalScore returns the answer's main score plus all sub-scores.
func (a Answer) TotalScore() int {
	total := a.Score
	for _, sub := range a.SubAnswers {
		total += sub.Score
	}
	return total
}
