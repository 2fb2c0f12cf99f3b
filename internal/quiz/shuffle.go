package quiz

import "math/rand/v2"

// Shuffle returns a new slice containing the elements of items in uniformly
// random order. The input slice is left unmodified. Fisher–Yates from the
// last index down: each element swaps with a uniformly chosen earlier-or-equal
// position, so every permutation is equally likely.
func Shuffle[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i >= 1; i-- {
		j := rand.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Shuffled returns a copy of q with question order permuted and, independently,
// each question's and sub-question's option order permuted. Values are
// untouched beyond position; correctness flags travel with their options.
func (q Quiz) Shuffled() Quiz {
	out := q
	out.Questions = Shuffle(q.Questions)
	for i := range out.Questions {
		out.Questions[i].Options = Shuffle(out.Questions[i].Options)
		if len(out.Questions[i].SubQuestions) > 0 {
			subs := make([]SubQuestion, len(out.Questions[i].SubQuestions))
			copy(subs, out.Questions[i].SubQuestions)
			for j := range subs {
				subs[j].Options = Shuffle(subs[j].Options)
			}
			out.Questions[i].SubQuestions = subs
		}
	}
	return out
}
