package analytics

import (
	"testing"

	"github.com/anirudh/quizdeck/internal/quiz"
)

func intp(v int) *int { return &v }

func taggedQuiz() quiz.Quiz {
	return quiz.Quiz{
		Title: "Networking",
		Concepts: []quiz.Concept{
			{ID: 1, Label: "TCP"},
			{ID: 2, Label: "UDP"},
			{ID: 3, Label: "ICMP"},
		},
		Questions: []quiz.Question{
			{ID: 1, ConceptID: intp(1)},
			{ID: 2, ConceptID: intp(1)},
			{ID: 3, ConceptID: intp(2)},
			{ID: 4}, // untagged
		},
	}
}

func answer(id int, correct bool) quiz.Answer {
	return quiz.Answer{QuestionID: id, IsCorrect: correct}
}

func TestComputeTallies(t *testing.T) {
	perfs := Compute(taggedQuiz(), []quiz.Answer{
		answer(1, true),
		answer(2, false),
		answer(3, true),
		answer(4, true),
	})

	if len(perfs) != 2 {
		t.Fatalf("len(perfs) = %d, want 2 (ICMP and untagged dropped)", len(perfs))
	}

	tcp := perfs[0]
	if tcp.Concept.Label != "TCP" || tcp.Correct != 1 || tcp.Total != 2 {
		t.Fatalf("tcp = %+v, want 1/2 for TCP", tcp)
	}
	if tcp.Percentage() != 50 {
		t.Fatalf("tcp.Percentage = %d, want 50", tcp.Percentage())
	}
	if got := tcp.Questions; len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("tcp.Questions = %v, want [0 1]", got)
	}

	udp := perfs[1]
	if udp.Concept.Label != "UDP" || udp.Correct != 1 || udp.Total != 1 {
		t.Fatalf("udp = %+v, want 1/1 for UDP", udp)
	}
}

func TestComputeWithoutConceptsIsNil(t *testing.T) {
	q := quiz.Quiz{Questions: []quiz.Question{{ID: 1}}}
	if perfs := Compute(q, []quiz.Answer{answer(1, true)}); perfs != nil {
		t.Fatalf("perfs = %+v, want nil for a quiz without concepts", perfs)
	}
}

func TestComputeNoAttributedAnswersIsNil(t *testing.T) {
	q := taggedQuiz()
	if perfs := Compute(q, []quiz.Answer{answer(4, true)}); perfs != nil {
		t.Fatalf("perfs = %+v, want nil when no answer maps to a concept", perfs)
	}
}

func TestComputeIgnoresUnknownReferences(t *testing.T) {
	q := taggedQuiz()
	q.Questions = append(q.Questions, quiz.Question{ID: 5, ConceptID: intp(99)})
	perfs := Compute(q, []quiz.Answer{
		answer(1, true),
		answer(5, true),
		answer(999, true),
	})
	if len(perfs) != 1 || perfs[0].Total != 1 {
		t.Fatalf("perfs = %+v, want only TCP with one answer", perfs)
	}
}

func TestBands(t *testing.T) {
	cases := []struct {
		correct, total int
		want           Band
	}{
		{4, 5, BandStrong},   // 80
		{5, 5, BandStrong},   // 100
		{3, 5, BandModerate}, // 60
		{79, 100, BandModerate},
		{59, 100, BandWeak},
		{0, 5, BandWeak},
	}
	for _, tc := range cases {
		p := ConceptPerformance{Correct: tc.correct, Total: tc.total}
		if got := p.Band(); got != tc.want {
			t.Errorf("Band(%d/%d) = %v, want %v", tc.correct, tc.total, got, tc.want)
		}
	}
}

func TestWeakestOrdersWorstFirst(t *testing.T) {
	perfs := []ConceptPerformance{
		{Concept: quiz.Concept{Label: "a"}, Correct: 5, Total: 5},
		{Concept: quiz.Concept{Label: "b"}, Correct: 1, Total: 5},
		{Concept: quiz.Concept{Label: "c"}, Correct: 3, Total: 5},
	}
	got := Weakest(perfs)
	if got[0].Concept.Label != "b" || got[1].Concept.Label != "c" || got[2].Concept.Label != "a" {
		t.Fatalf("order = %q %q %q, want b c a",
			got[0].Concept.Label, got[1].Concept.Label, got[2].Concept.Label)
	}
	if perfs[0].Concept.Label != "a" {
		t.Fatal("Weakest modified its input")
	}
}
