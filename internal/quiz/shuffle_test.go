package quiz

import "testing"

func TestShuffleIsPermutation(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	got := Shuffle(items)

	if len(got) != len(items) {
		t.Fatalf("expected length %d, got %d", len(items), len(got))
	}

	counts := make(map[int]int)
	for _, v := range items {
		counts[v]++
	}
	for _, v := range got {
		counts[v]--
	}
	for v, c := range counts {
		if c != 0 {
			t.Errorf("element %d count off by %d", v, c)
		}
	}
}

func TestShuffleLeavesInputUnmodified(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	want := []string{"a", "b", "c", "d", "e"}

	Shuffle(items)

	for i := range want {
		if items[i] != want[i] {
			t.Fatalf("input modified at %d: got %q, want %q", i, items[i], want[i])
		}
	}
}

func TestShuffleEdgeCases(t *testing.T) {
	if got := Shuffle([]int{}); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
	if got := Shuffle([]int{42}); len(got) != 1 || got[0] != 42 {
		t.Errorf("expected [42], got %v", got)
	}
}

func TestShuffledPreservesCorrectness(t *testing.T) {
	q := fiveByFour()
	shuffled := q.Shuffled()

	if len(shuffled.Questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(shuffled.Questions))
	}

	ids := make(map[int]bool)
	for _, question := range shuffled.Questions {
		ids[question.ID] = true

		correct := 0
		for _, opt := range question.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			t.Errorf("question %d: expected exactly 1 correct option after shuffle, got %d", question.ID, correct)
		}
	}

	for id := 1; id <= 5; id++ {
		if !ids[id] {
			t.Errorf("question id %d missing after shuffle", id)
		}
	}
}

func TestShuffledLeavesSourceUnmodified(t *testing.T) {
	q := fiveByFour()
	firstID := q.Questions[0].ID
	firstOpt := q.Questions[0].Options[0].Text

	for range 20 {
		q.Shuffled()
	}

	if q.Questions[0].ID != firstID || q.Questions[0].Options[0].Text != firstOpt {
		t.Error("source quiz modified by Shuffled")
	}
}

// fiveByFour builds a quiz with 5 questions of 4 options each, one correct.
func fiveByFour() Quiz {
	questions := make([]Question, 5)
	for i := range questions {
		options := make([]Option, 4)
		for j := range options {
			options[j] = Option{Text: string(rune('A' + j)), IsCorrect: j == i%4}
		}
		questions[i] = Question{
			ID:          i + 1,
			Text:        "q",
			Options:     options,
			Explanation: "e",
		}
	}
	return Quiz{Title: "t", Description: "d", Questions: questions}
}
