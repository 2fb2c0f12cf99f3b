// Package playback holds the play-through state machines for flat quizzes
// and concept decks. The engines are pure in-memory state driven by discrete
// learner actions; the UI layer owns a session and renders from it, never
// keeping playback state of its own.
package playback

import (
	"errors"

	"github.com/anirudh/quizdeck/internal/quiz"
)

// QuizPhase is the lifecycle phase of a quiz play-through.
type QuizPhase int

const (
	PhaseNotStarted QuizPhase = iota
	PhaseInProgress
	PhaseCompleted
)

var (
	ErrNotStarted       = errors.New("playback not started")
	ErrNotInProgress    = errors.New("playback not in progress")
	ErrNoSelection      = errors.New("no option selected")
	ErrAlreadySubmitted = errors.New("question already submitted")
	ErrNotSubmitted     = errors.New("question not yet submitted")
	ErrSubUnanswered    = errors.New("all sub-questions must be answered first")
	ErrIndexOutOfRange  = errors.New("index out of range")
)

const noSelection = -1

// QuizSession drives one play-through of a flat quiz:
// NotStarted → InProgress(i) → Completed. The source quiz is never modified;
// Start takes a shuffled copy for the play-through.
type QuizSession struct {
	source quiz.Quiz
	played quiz.Quiz

	phase    QuizPhase
	index    int
	selected int
	subSel   []int
	revealed bool
	answers  []quiz.Answer
}

// NewQuizSession creates a session in the NotStarted phase.
func NewQuizSession(q quiz.Quiz) *QuizSession {
	return &QuizSession{source: q, selected: noSelection}
}

func (s *QuizSession) Phase() QuizPhase { return s.phase }

// Title and Description come from the source document.
func (s *QuizSession) Title() string       { return s.source.Title }
func (s *QuizSession) Description() string { return s.source.Description }

// Len returns the total question count.
func (s *QuizSession) Len() int { return len(s.source.Questions) }

// Index returns the current question index. Only meaningful InProgress.
func (s *QuizSession) Index() int { return s.index }

// Quiz returns the quiz as played this round (shuffled after Start).
// Before Start it returns the source ordering.
func (s *QuizSession) Quiz() quiz.Quiz {
	if s.phase == PhaseNotStarted {
		return s.source
	}
	return s.played
}

// Start shuffles the question and option order and presents the first
// question. The shuffle happens exactly once, here; restarting and starting
// again produces a fresh shuffle.
func (s *QuizSession) Start() error {
	if s.phase != PhaseNotStarted {
		return ErrNotInProgress
	}
	s.played = s.source.Shuffled()
	s.phase = PhaseInProgress
	s.beginQuestion(0)
	return nil
}

func (s *QuizSession) beginQuestion(i int) {
	s.index = i
	s.selected = noSelection
	s.revealed = false
	s.subSel = make([]int, len(s.played.Questions[i].SubQuestions))
	for j := range s.subSel {
		s.subSel[j] = noSelection
	}
}

// Current returns the question being presented.
func (s *QuizSession) Current() quiz.Question {
	return s.played.Questions[s.index]
}

// Select records the learner's option choice for the current question.
// Selections are freely changeable until submission.
func (s *QuizSession) Select(option int) error {
	if s.phase != PhaseInProgress {
		return ErrNotInProgress
	}
	if s.revealed {
		return ErrAlreadySubmitted
	}
	if option < 0 || option >= len(s.Current().Options) {
		return ErrIndexOutOfRange
	}
	s.selected = option
	return nil
}

// SelectSub records an option choice for sub-question sub of the current
// question.
func (s *QuizSession) SelectSub(sub, option int) error {
	if s.phase != PhaseInProgress {
		return ErrNotInProgress
	}
	if s.revealed {
		return ErrAlreadySubmitted
	}
	subs := s.Current().SubQuestions
	if sub < 0 || sub >= len(subs) {
		return ErrIndexOutOfRange
	}
	if option < 0 || option >= len(subs[sub].Options) {
		return ErrIndexOutOfRange
	}
	s.subSel[sub] = option
	return nil
}

// Selected returns the current main selection, or -1 when none.
func (s *QuizSession) Selected() int { return s.selected }

// SubSelected returns the selection for sub-question sub, or -1 when none.
func (s *QuizSession) SubSelected(sub int) int { return s.subSel[sub] }

// CanSubmit reports whether the current question is ready to submit: a main
// option is selected and every sub-question has a selection.
func (s *QuizSession) CanSubmit() bool {
	if s.phase != PhaseInProgress || s.revealed || s.selected == noSelection {
		return false
	}
	for _, sel := range s.subSel {
		if sel == noSelection {
			return false
		}
	}
	return true
}

// Submit scores the current question and its sub-questions, appends the
// Answer record, and reveals correctness markers and the explanation.
func (s *QuizSession) Submit() (quiz.Answer, error) {
	if s.phase != PhaseInProgress {
		return quiz.Answer{}, ErrNotInProgress
	}
	if s.revealed {
		return quiz.Answer{}, ErrAlreadySubmitted
	}
	if s.selected == noSelection {
		return quiz.Answer{}, ErrNoSelection
	}
	for _, sel := range s.subSel {
		if sel == noSelection {
			return quiz.Answer{}, ErrSubUnanswered
		}
	}

	q := s.Current()
	opt := q.Options[s.selected]
	correct := opt.IsCorrect

	answer := quiz.Answer{
		QuestionID:     q.ID,
		SelectedOption: s.selected,
		IsCorrect:      correct,
		Score:          quiz.ResolveScore(opt, q, correct),
	}

	for j, sub := range q.SubQuestions {
		subOpt := sub.Options[s.subSel[j]]
		answer.SubAnswers = append(answer.SubAnswers, quiz.SubAnswer{
			SubQuestionID:  sub.ID,
			SelectedOption: s.subSel[j],
			IsCorrect:      subOpt.IsCorrect,
			Score:          quiz.ResolveSubScore(subOpt, subOpt.IsCorrect),
		})
	}

	s.answers = append(s.answers, answer)
	s.revealed = true
	return answer, nil
}

// Revealed reports whether the current question has been submitted and its
// explanation is showing.
func (s *QuizSession) Revealed() bool { return s.revealed }

// Advance moves to the next question, or to Completed after the last one.
// Only legal after Submit.
func (s *QuizSession) Advance() error {
	if s.phase != PhaseInProgress {
		return ErrNotInProgress
	}
	if !s.revealed {
		return ErrNotSubmitted
	}
	if s.index+1 >= len(s.played.Questions) {
		s.phase = PhaseCompleted
		return nil
	}
	s.beginQuestion(s.index + 1)
	return nil
}

// Restart returns to NotStarted, discarding all answers and the shuffle.
func (s *QuizSession) Restart() {
	s.phase = PhaseNotStarted
	s.played = quiz.Quiz{}
	s.index = 0
	s.selected = noSelection
	s.subSel = nil
	s.revealed = false
	s.answers = nil
}

// Answers returns the answers recorded so far, in traversal order.
func (s *QuizSession) Answers() []quiz.Answer { return s.answers }

// CorrectCount returns how many main answers were correct.
func (s *QuizSession) CorrectCount() int {
	n := 0
	for _, a := range s.answers {
		if a.IsCorrect {
			n++
		}
	}
	return n
}

// TotalScore sums main and sub-question scores across all answers.
func (s *QuizSession) TotalScore() int {
	total := 0
	for _, a := range s.answers {
		total += a.TotalScore()
	}
	return total
}
