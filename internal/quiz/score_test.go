package quiz

import "testing"

func intp(v int) *int { return &v }

func TestResolveScoreOptionOverrideWinsRegardlessOfCorrectness(t *testing.T) {
	q := Question{CorrectScore: intp(500), IncorrectScore: intp(-500)}

	opt := Option{IsCorrect: true, Score: intp(7)}
	if got := ResolveScore(opt, q, true); got != 7 {
		t.Errorf("correct with option score: got %d, want 7", got)
	}

	opt = Option{IsCorrect: false, Score: intp(-3)}
	if got := ResolveScore(opt, q, false); got != -3 {
		t.Errorf("incorrect with option score: got %d, want -3", got)
	}
}

func TestResolveScoreQuestionOverrides(t *testing.T) {
	tests := []struct {
		name    string
		q       Question
		correct bool
		want    int
	}{
		{"both set, correct", Question{CorrectScore: intp(200), IncorrectScore: intp(-100)}, true, 200},
		{"both set, incorrect", Question{CorrectScore: intp(200), IncorrectScore: intp(-100)}, false, -100},
		{"only correct set, incorrect falls back", Question{CorrectScore: intp(200)}, false, DefaultIncorrectScore},
		{"only incorrect set, correct falls back", Question{IncorrectScore: intp(-10)}, true, DefaultCorrectScore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveScore(Option{}, tt.q, tt.correct); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolveScoreDefaults(t *testing.T) {
	if got := ResolveScore(Option{}, Question{}, true); got != 100 {
		t.Errorf("correct default: got %d, want 100", got)
	}
	if got := ResolveScore(Option{}, Question{}, false); got != -50 {
		t.Errorf("incorrect default: got %d, want -50", got)
	}
}

func TestResolveSubScore(t *testing.T) {
	if got := ResolveSubScore(Option{}, true); got != 50 {
		t.Errorf("correct sub default: got %d, want 50", got)
	}
	if got := ResolveSubScore(Option{}, false); got != -25 {
		t.Errorf("incorrect sub default: got %d, want -25", got)
	}
	if got := ResolveSubScore(Option{Score: intp(9)}, false); got != 9 {
		t.Errorf("sub option override: got %d, want 9", got)
	}
}

func TestAnswerTotalScore(t *testing.T) {
	a := Answer{
		Score: 100,
		SubAnswers: []SubAnswer{
			{Score: 50},
			{Score: -25},
		},
	}
	if got := a.TotalScore(); got != 125 {
		t.Errorf("got %d, want 125", got)
	}
}
