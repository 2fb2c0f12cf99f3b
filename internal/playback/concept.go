package playback

import (
	"math"

	"github.com/anirudh/quizdeck/internal/concepts"
	"github.com/anirudh/quizdeck/internal/quiz"
)

// Stage is the current view of a concept-deck play-through.
type Stage int

const (
	StageExplanation Stage = iota
	StageQuestions
	StageSubExplanation
	StageSubQuestions
	StageResults
)

// mainSlot marks a slot belonging to the concept's own question list rather
// than a sub-explanation.
const mainSlot = -1

// slot identifies one answerable question position in the deck.
type slot struct {
	concept  int
	sub      int // mainSlot for concept-level questions
	question int
}

// ConceptAnswer records the learner's response to one deck question.
type ConceptAnswer struct {
	ConceptIndex        int
	QuestionIndex       int
	SelectedOption      int
	IsCorrect           bool
	Score               int
	IsSubExplanation    bool
	SubExplanationIndex int
}

// ConceptResults summarizes a completed (or in-progress) deck play-through.
type ConceptResults struct {
	Answered   int
	Correct    int
	TotalScore int
	// AccuracyPct is round(100 * Correct / Answered); 0 when nothing answered.
	AccuracyPct int
}

// ConceptSession drives a play-through of a concept deck:
// explanation → questions → sub-explanations → sub-questions, concept by
// concept, ending in results. Backward navigation retraces the forward path
// exactly; re-answering a revisited question overwrites the earlier record,
// so results never double-count a slot.
type ConceptSession struct {
	deck concepts.Deck

	stage    Stage
	concept  int
	sub      int
	question int

	selected int
	revealed bool

	answers map[slot]ConceptAnswer
	order   []slot
}

// NewConceptSession starts a session at the first concept's explanation.
func NewConceptSession(d concepts.Deck) *ConceptSession {
	return &ConceptSession{
		deck:     d,
		selected: noSelection,
		answers:  make(map[slot]ConceptAnswer),
	}
}

func (s *ConceptSession) Stage() Stage       { return s.stage }
func (s *ConceptSession) ConceptIndex() int  { return s.concept }
func (s *ConceptSession) SubIndex() int      { return s.sub }
func (s *ConceptSession) QuestionIndex() int { return s.question }
func (s *ConceptSession) Selected() int      { return s.selected }
func (s *ConceptSession) Revealed() bool     { return s.revealed }

// ConceptCount returns the number of concepts in the deck.
func (s *ConceptSession) ConceptCount() int { return len(s.deck.Concepts) }

// TotalQuestions returns the number of answerable questions in the deck.
func (s *ConceptSession) TotalQuestions() int { return s.deck.TotalQuestions() }

// AnswerCount returns how many distinct slots have been answered.
func (s *ConceptSession) AnswerCount() int { return len(s.order) }

// CurrentConcept returns the concept being traversed. Not valid in
// StageResults.
func (s *ConceptSession) CurrentConcept() concepts.Concept {
	return s.deck.Concepts[s.concept]
}

// CurrentSubExplanation returns the active sub-explanation. Only valid in
// StageSubExplanation and StageSubQuestions.
func (s *ConceptSession) CurrentSubExplanation() concepts.SubExplanation {
	return s.deck.Concepts[s.concept].SubExplanations[s.sub]
}

// CurrentQuestion returns the question being presented. Only valid in
// StageQuestions and StageSubQuestions.
func (s *ConceptSession) CurrentQuestion() concepts.Question {
	if s.stage == StageSubQuestions {
		return s.CurrentSubExplanation().Questions[s.question]
	}
	return s.CurrentConcept().Questions[s.question]
}

// Continue acknowledges an explanation view and moves forward. From a concept
// explanation it enters the concept's questions, or its sub-explanations, or
// skips straight to the next concept when the node has neither. From a
// sub-explanation it enters that sub-topic's questions or falls through the
// same way.
func (s *ConceptSession) Continue() error {
	switch s.stage {
	case StageExplanation:
		c := s.CurrentConcept()
		if len(c.Questions) > 0 {
			s.enterQuestion(StageQuestions, mainSlot, 0)
			return nil
		}
		if len(c.SubExplanations) > 0 {
			s.enterSubExplanation(0)
			return nil
		}
		s.nextConcept()
		return nil

	case StageSubExplanation:
		sub := s.CurrentSubExplanation()
		if len(sub.Questions) > 0 {
			s.enterQuestion(StageSubQuestions, s.sub, 0)
			return nil
		}
		s.afterSub()
		return nil
	}
	return ErrNotInProgress
}

// Select records an option choice for the current question. Changeable until
// submission.
func (s *ConceptSession) Select(option int) error {
	if s.stage != StageQuestions && s.stage != StageSubQuestions {
		return ErrNotInProgress
	}
	if s.revealed {
		return ErrAlreadySubmitted
	}
	if option < 0 || option >= len(s.CurrentQuestion().Options) {
		return ErrIndexOutOfRange
	}
	s.selected = option
	return nil
}

// Submit scores the current question and reveals its outcome. Submitting a
// revisited question replaces the earlier answer for the same slot.
func (s *ConceptSession) Submit() (ConceptAnswer, error) {
	if s.stage != StageQuestions && s.stage != StageSubQuestions {
		return ConceptAnswer{}, ErrNotInProgress
	}
	if s.revealed {
		return ConceptAnswer{}, ErrAlreadySubmitted
	}
	if s.selected == noSelection {
		return ConceptAnswer{}, ErrNoSelection
	}

	opt := s.CurrentQuestion().Options[s.selected]
	answer := ConceptAnswer{
		ConceptIndex:   s.concept,
		QuestionIndex:  s.question,
		SelectedOption: s.selected,
		IsCorrect:      opt.IsCorrect,
		Score:          quiz.ResolveScore(opt, quiz.Question{}, opt.IsCorrect),
	}
	if s.stage == StageSubQuestions {
		answer.IsSubExplanation = true
		answer.SubExplanationIndex = s.sub
	}

	key := s.currentSlot()
	if _, exists := s.answers[key]; !exists {
		s.order = append(s.order, key)
	}
	s.answers[key] = answer
	s.revealed = true
	return answer, nil
}

// Advance moves past a submitted question: the next question in the current
// context, or the context's fall-through (sub-explanations, next concept,
// results).
func (s *ConceptSession) Advance() error {
	if s.stage != StageQuestions && s.stage != StageSubQuestions {
		return ErrNotInProgress
	}
	if !s.revealed {
		return ErrNotSubmitted
	}

	if s.stage == StageQuestions {
		c := s.CurrentConcept()
		if s.question+1 < len(c.Questions) {
			s.enterQuestion(StageQuestions, mainSlot, s.question+1)
			return nil
		}
		if len(c.SubExplanations) > 0 {
			s.enterSubExplanation(0)
			return nil
		}
		s.nextConcept()
		return nil
	}

	sub := s.CurrentSubExplanation()
	if s.question+1 < len(sub.Questions) {
		s.enterQuestion(StageSubQuestions, s.sub, s.question+1)
		return nil
	}
	s.afterSub()
	return nil
}

// Back retraces one step of the forward path. Revisited questions come back
// revealed, showing the recorded answer; re-submitting after a fresh Select
// overwrites it. Back at the very first explanation is a no-op.
func (s *ConceptSession) Back() {
	switch s.stage {
	case StageExplanation:
		if s.concept == 0 {
			return
		}
		s.enterConceptEnd(s.concept - 1)

	case StageQuestions:
		if s.question > 0 {
			s.reenterQuestion(StageQuestions, mainSlot, s.question-1)
			return
		}
		s.enterExplanation(s.concept)

	case StageSubExplanation:
		if s.sub > 0 {
			s.enterSubEnd(s.sub - 1)
			return
		}
		c := s.CurrentConcept()
		if len(c.Questions) > 0 {
			s.reenterQuestion(StageQuestions, mainSlot, len(c.Questions)-1)
			return
		}
		s.enterExplanation(s.concept)

	case StageSubQuestions:
		if s.question > 0 {
			s.reenterQuestion(StageSubQuestions, s.sub, s.question-1)
			return
		}
		s.enterSubExplanation(s.sub)

	case StageResults:
		s.enterConceptEnd(len(s.deck.Concepts) - 1)
	}
}

// Restart clears every answer and returns to the first explanation.
func (s *ConceptSession) Restart() {
	s.stage = StageExplanation
	s.concept = 0
	s.sub = 0
	s.question = 0
	s.selected = noSelection
	s.revealed = false
	s.answers = make(map[slot]ConceptAnswer)
	s.order = nil
}

// Answers returns all recorded answers in first-answered order. Overwrites
// keep the slot's original position.
func (s *ConceptSession) Answers() []ConceptAnswer {
	out := make([]ConceptAnswer, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.answers[key])
	}
	return out
}

// Results summarizes the play-through so far.
func (s *ConceptSession) Results() ConceptResults {
	r := ConceptResults{Answered: len(s.order)}
	for _, key := range s.order {
		a := s.answers[key]
		r.TotalScore += a.Score
		if a.IsCorrect {
			r.Correct++
		}
	}
	if r.Answered > 0 {
		r.AccuracyPct = int(math.Round(100 * float64(r.Correct) / float64(r.Answered)))
	}
	return r
}

func (s *ConceptSession) currentSlot() slot {
	key := slot{concept: s.concept, sub: mainSlot, question: s.question}
	if s.stage == StageSubQuestions {
		key.sub = s.sub
	}
	return key
}

func (s *ConceptSession) enterExplanation(c int) {
	s.stage = StageExplanation
	s.concept = c
	s.sub = 0
	s.question = 0
	s.selected = noSelection
	s.revealed = false
}

func (s *ConceptSession) enterSubExplanation(sub int) {
	s.stage = StageSubExplanation
	s.sub = sub
	s.question = 0
	s.selected = noSelection
	s.revealed = false
}

// enterQuestion presents a question fresh (forward navigation).
func (s *ConceptSession) enterQuestion(stage Stage, sub, question int) {
	s.stage = stage
	if sub != mainSlot {
		s.sub = sub
	}
	s.question = question
	s.selected = noSelection
	s.revealed = false
}

// reenterQuestion presents a question on backward navigation, restoring the
// recorded answer when one exists.
func (s *ConceptSession) reenterQuestion(stage Stage, sub, question int) {
	s.enterQuestion(stage, sub, question)
	if a, ok := s.answers[s.currentSlot()]; ok {
		s.selected = a.SelectedOption
		s.revealed = true
	}
}

// nextConcept advances to the following concept's explanation, or Results
// after the last one.
func (s *ConceptSession) nextConcept() {
	if s.concept+1 < len(s.deck.Concepts) {
		s.enterExplanation(s.concept + 1)
		return
	}
	s.stage = StageResults
	s.selected = noSelection
	s.revealed = false
}

// afterSub handles the fall-through once a sub-explanation's questions (if
// any) are exhausted: next sub-explanation, else next concept.
func (s *ConceptSession) afterSub() {
	if s.sub+1 < len(s.CurrentConcept().SubExplanations) {
		s.enterSubExplanation(s.sub + 1)
		return
	}
	s.nextConcept()
}

// enterConceptEnd jumps to the last state of concept c's traversal, used when
// stepping backward across a concept boundary.
func (s *ConceptSession) enterConceptEnd(c int) {
	s.concept = c
	cpt := s.deck.Concepts[c]
	if len(cpt.SubExplanations) > 0 {
		s.enterSubEnd(len(cpt.SubExplanations) - 1)
		return
	}
	if len(cpt.Questions) > 0 {
		s.reenterQuestion(StageQuestions, mainSlot, len(cpt.Questions)-1)
		return
	}
	s.enterExplanation(c)
}

// enterSubEnd jumps to the last state of sub-explanation sub within the
// current concept.
func (s *ConceptSession) enterSubEnd(sub int) {
	questions := s.deck.Concepts[s.concept].SubExplanations[sub].Questions
	if len(questions) > 0 {
		s.reenterQuestion(StageSubQuestions, sub, len(questions)-1)
		return
	}
	s.enterSubExplanation(sub)
}
