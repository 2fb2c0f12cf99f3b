// Package concepts models the nested concept-deck authoring format: a
// sequence of concepts, each with an explanation, optional questions, and
// optional sub-explanations carrying their own questions.
package concepts

import "github.com/anirudh/quizdeck/internal/quiz"

// Question is a concept-level question. Unlike quiz.Question it has no id;
// identity is positional within its concept or sub-explanation.
type Question struct {
	Text        string        `json:"question_text"`
	Explanation string        `json:"explanation,omitempty"`
	Options     []quiz.Option `json:"options"`
}

// SubExplanation is a nested sub-topic under a concept.
type SubExplanation struct {
	Title       string     `json:"title"`
	Explanation string     `json:"explanation"`
	Questions   []Question `json:"questions,omitempty"`
}

// Concept is one explain-then-quiz unit of a deck.
type Concept struct {
	Name            string           `json:"name"`
	Explanation     string           `json:"explanation"`
	Questions       []Question       `json:"questions,omitempty"`
	SubExplanations []SubExplanation `json:"sub_explanations,omitempty"`
}

// Deck is a complete concept-deck document.
type Deck struct {
	Concepts []Concept `json:"concepts"`
}

// TotalQuestions counts every question in the deck, main and nested.
func (d Deck) TotalQuestions() int {
	total := 0
	for _, c := range d.Concepts {
		total += len(c.Questions)
		for _, sub := range c.SubExplanations {
			total += len(sub.Questions)
		}
	}
	return total
}
