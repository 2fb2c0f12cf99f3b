package quiz

// Default tariffs. Main questions pay out ±(100, 50); sub-questions use a
// reduced tariff unless an option carries its own score.
const (
	DefaultCorrectScore   = 100
	DefaultIncorrectScore = -50
	SubCorrectScore       = 50
	SubIncorrectScore     = -25
)

// ResolveScore returns the points earned for selecting opt on q.
// Priority order:
//  1. An explicit option score is returned verbatim.
//  2. A question-level correct/incorrect override applies next; when only one
//     side is set, the other falls back to the default tariff.
//  3. Otherwise the fixed default tariff applies.
//
// Pure function of its inputs; applied once at submission time.
func ResolveScore(opt Option, q Question, correct bool) int {
	if opt.Score != nil {
		return *opt.Score
	}
	if q.CorrectScore != nil || q.IncorrectScore != nil {
		if correct {
			if q.CorrectScore != nil {
				return *q.CorrectScore
			}
			return DefaultCorrectScore
		}
		if q.IncorrectScore != nil {
			return *q.IncorrectScore
		}
		return DefaultIncorrectScore
	}
	if correct {
		return DefaultCorrectScore
	}
	return DefaultIncorrectScore
}

// ResolveSubScore returns the points earned for a sub-question selection:
// an explicit option score verbatim, else the reduced fixed tariff.
func ResolveSubScore(opt Option, correct bool) int {
	if opt.Score != nil {
		return *opt.Score
	}
	if correct {
		return SubCorrectScore
	}
	return SubIncorrectScore
}
