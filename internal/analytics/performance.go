// Package analytics derives per-concept performance from a finished quiz
// play-through. It only applies to quizzes that declare a concept list and
// tag questions with concept ids; for anything else it reports nothing.
package analytics

import (
	"math"
	"sort"

	"github.com/anirudh/quizdeck/internal/quiz"
)

// Band buckets a concept's accuracy for presentation.
type Band int

const (
	BandStrong   Band = iota // 80% and above
	BandModerate             // 60% to 79%
	BandWeak                 // below 60%
)

// ConceptPerformance is one concept's tally across the answered questions
// that reference it.
type ConceptPerformance struct {
	Concept quiz.Concept
	Correct int
	Total   int
	// Questions holds the indices of the played questions attributed to
	// this concept, in answer order.
	Questions []int
}

// Percentage returns the concept's accuracy as a whole-number percentage.
func (p ConceptPerformance) Percentage() int {
	if p.Total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(p.Correct) / float64(p.Total)))
}

// Band buckets the accuracy: strong at 80%+, moderate at 60% to 79%, weak
// below.
func (p ConceptPerformance) Band() Band {
	pct := p.Percentage()
	switch {
	case pct >= 80:
		return BandStrong
	case pct >= 60:
		return BandModerate
	default:
		return BandWeak
	}
}

// Compute tallies answers against the quiz's declared concepts. It returns
// nil when the quiz declares no concepts; concepts that no answered question
// references are dropped. Results keep the quiz's concept declaration order.
// The quiz must be the played (post-shuffle) document so question indices
// line up with what was shown.
func Compute(q quiz.Quiz, answers []quiz.Answer) []ConceptPerformance {
	if len(q.Concepts) == 0 {
		return nil
	}

	byID := make(map[int]*ConceptPerformance, len(q.Concepts))
	order := make([]int, 0, len(q.Concepts))
	for _, c := range q.Concepts {
		if _, dup := byID[c.ID]; dup {
			continue
		}
		byID[c.ID] = &ConceptPerformance{Concept: c}
		order = append(order, c.ID)
	}

	questionIndex := make(map[int]int, len(q.Questions))
	for i, question := range q.Questions {
		questionIndex[question.ID] = i
	}

	for _, a := range answers {
		i, ok := questionIndex[a.QuestionID]
		if !ok {
			continue
		}
		question := q.Questions[i]
		if question.ConceptID == nil {
			continue
		}
		perf, ok := byID[*question.ConceptID]
		if !ok {
			// Tagged with a concept the quiz never declared.
			continue
		}
		perf.Total++
		if a.IsCorrect {
			perf.Correct++
		}
		perf.Questions = append(perf.Questions, i)
	}

	out := make([]ConceptPerformance, 0, len(order))
	for _, id := range order {
		if perf := byID[id]; perf.Total > 0 {
			out = append(out, *perf)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Weakest returns the computed concepts ordered worst-first, for surfacing
// what to review. Ties keep declaration order.
func Weakest(perfs []ConceptPerformance) []ConceptPerformance {
	out := make([]ConceptPerformance, len(perfs))
	copy(out, perfs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Percentage() < out[j].Percentage()
	})
	return out
}
