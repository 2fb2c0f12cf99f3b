package player

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/anirudh/quizdeck/internal/playback"
	"github.com/anirudh/quizdeck/internal/quiz"
	"github.com/anirudh/quizdeck/internal/screen"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testQuiz() quiz.Quiz {
	return quiz.Quiz{
		Title: "Capitals",
		Questions: []quiz.Question{
			{
				ID:   1,
				Text: "Capital of France?",
				Options: []quiz.Option{
					{Text: "Paris", IsCorrect: true},
					{Text: "Lyon"},
					{Text: "Nice"},
				},
				Explanation: "Paris has been the capital since 987.",
			},
		},
	}
}

func subQuestionQuiz() quiz.Quiz {
	q := testQuiz()
	q.Questions[0].SubQuestions = []quiz.SubQuestion{
		{
			ID:   1,
			Text: "Which river runs through it?",
			Options: []quiz.Option{
				{Text: "Seine", IsCorrect: true},
				{Text: "Rhone"},
			},
		},
	}
	return q
}

// startPlayer creates a player and presses enter to leave the intro.
func startPlayer(t *testing.T, q quiz.Quiz) *PlayerScreen {
	t.Helper()
	p := New(q)
	scr, _ := p.Update(specialKey(tea.KeyEnter))
	ps := scr.(*PlayerScreen)
	if ps.session.Phase() != playback.PhaseInProgress {
		t.Fatalf("phase after start = %v, want in progress", ps.session.Phase())
	}
	return ps
}

// chooseCorrect moves the cursor onto the correct option of the focused main
// question and picks it. Option order is shuffled at start, so the target
// index is looked up from the session.
func chooseCorrect(t *testing.T, p *PlayerScreen) {
	t.Helper()
	target := correctIndex(p.session.Current().Options)
	if target < 0 {
		t.Fatal("question has no correct option")
	}
	var scr screen.Screen = p
	for i := 0; i < target; i++ {
		scr, _ = scr.Update(keyPress('j'))
	}
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	if got := scr.(*PlayerScreen).session.Selected(); got != target {
		t.Fatalf("selected = %d, want %d", got, target)
	}
}

func TestPlayerScreen_Title(t *testing.T) {
	p := New(testQuiz())
	if p.Title() != "Capitals" {
		t.Errorf("Title = %q, want %q", p.Title(), "Capitals")
	}
}

func TestPlayerScreen_StartOnEnter(t *testing.T) {
	p := New(testQuiz())
	if p.session.Phase() != playback.PhaseNotStarted {
		t.Fatalf("phase = %v, want not started", p.session.Phase())
	}

	p = startPlayer(t, testQuiz())
	if got := len(p.main.Options); got != 3 {
		t.Errorf("main options = %d, want 3", got)
	}
}

func TestPlayerScreen_IgnoresOtherKeysAtIntro(t *testing.T) {
	p := New(testQuiz())
	scr, _ := p.Update(keyPress('x'))
	if scr.(*PlayerScreen).session.Phase() != playback.PhaseNotStarted {
		t.Error("expected intro to ignore non-enter keys")
	}
}

func TestPlayerScreen_SubmitRevealsAnswer(t *testing.T) {
	p := startPlayer(t, testQuiz())
	chooseCorrect(t, p)

	_, cmd := p.Update(specialKey(tea.KeyEnter))
	if !p.session.Revealed() {
		t.Fatal("expected answer to be revealed after submit")
	}
	if cmd == nil {
		t.Error("expected a reveal timer command")
	}
	if p.lastAnswer == nil {
		t.Fatal("expected last answer to be recorded")
	}
	if !p.lastAnswer.IsCorrect {
		t.Error("expected correct answer")
	}
	if p.lastAnswer.Score != quiz.DefaultCorrectScore {
		t.Errorf("score = %d, want %d", p.lastAnswer.Score, quiz.DefaultCorrectScore)
	}
	if !p.main.Revealed {
		t.Error("expected option list to be locked after reveal")
	}
}

func TestPlayerScreen_SubmitNeedsChoice(t *testing.T) {
	p := startPlayer(t, testQuiz())

	// Enter with nothing chosen picks the option under the cursor instead
	// of submitting.
	scr, _ := p.Update(specialKey(tea.KeyEnter))
	ps := scr.(*PlayerScreen)
	if ps.session.Revealed() {
		t.Error("expected first enter to choose, not submit")
	}
	if !ps.main.HasChosen() {
		t.Error("expected first enter to record a choice")
	}
}

func TestPlayerScreen_AnyKeyAfterRevealAdvances(t *testing.T) {
	p := startPlayer(t, testQuiz())
	chooseCorrect(t, p)
	p.Update(specialKey(tea.KeyEnter))

	_, cmd := p.Update(keyPress(' '))
	if p.session.Phase() != playback.PhaseCompleted {
		t.Fatalf("phase = %v, want completed", p.session.Phase())
	}
	if cmd == nil {
		t.Error("expected a results push command after the last question")
	}
}

func TestPlayerScreen_RevealTickAdvances(t *testing.T) {
	p := startPlayer(t, testQuiz())
	chooseCorrect(t, p)
	p.Update(specialKey(tea.KeyEnter))

	_, cmd := p.Update(revealTickMsg{})
	if p.session.Phase() != playback.PhaseCompleted {
		t.Fatalf("phase = %v, want completed", p.session.Phase())
	}
	if cmd == nil {
		t.Error("expected a results push command")
	}
}

func TestPlayerScreen_StaleRevealTickIgnored(t *testing.T) {
	p := startPlayer(t, testQuiz())

	scr, _ := p.Update(revealTickMsg{})
	if scr.(*PlayerScreen).session.Phase() != playback.PhaseInProgress {
		t.Error("expected tick before reveal to be a no-op")
	}
}

func TestPlayerScreen_SubQuestionFocusFlow(t *testing.T) {
	p := startPlayer(t, subQuestionQuiz())
	if len(p.subs) != 1 {
		t.Fatalf("subs = %d, want 1", len(p.subs))
	}

	chooseCorrect(t, p)

	// Choosing the main answer moves focus to the unanswered sub-question.
	if p.focus != 1 {
		t.Fatalf("focus = %d, want 1", p.focus)
	}

	// Enter cannot submit yet: the sub-question has no choice.
	p.Update(specialKey(tea.KeyEnter))
	if p.session.Revealed() {
		t.Fatal("expected submit to be blocked until all parts are answered")
	}

	// The sub list now has a choice from that enter press; submit for real.
	if !p.subs[0].HasChosen() {
		t.Fatal("expected enter to choose in the focused sub-question")
	}
	p.Update(specialKey(tea.KeyEnter))
	if !p.session.Revealed() {
		t.Fatal("expected submit once every part has a choice")
	}
	if p.lastAnswer == nil || len(p.lastAnswer.SubAnswers) != 1 {
		t.Fatal("expected a recorded sub-answer")
	}
}

func TestPlayerScreen_TabCyclesFocus(t *testing.T) {
	p := startPlayer(t, subQuestionQuiz())

	p.Update(specialKey(tea.KeyTab))
	if p.focus != 1 {
		t.Errorf("focus after tab = %d, want 1", p.focus)
	}
	p.Update(specialKey(tea.KeyTab))
	if p.focus != 0 {
		t.Errorf("focus after second tab = %d, want 0 (wrap)", p.focus)
	}
}

func TestPlayerScreen_Restart(t *testing.T) {
	p := startPlayer(t, testQuiz())
	chooseCorrect(t, p)
	p.Update(specialKey(tea.KeyEnter))

	p.Update(restartMsg{})
	if p.session.Phase() != playback.PhaseNotStarted {
		t.Errorf("phase after restart = %v, want not started", p.session.Phase())
	}
	if p.lastAnswer != nil {
		t.Error("expected last answer to be cleared on restart")
	}
}

func TestPlayerScreen_CompletedKeyPops(t *testing.T) {
	p := startPlayer(t, testQuiz())
	chooseCorrect(t, p)
	p.Update(specialKey(tea.KeyEnter))
	p.Update(keyPress(' '))

	_, cmd := p.Update(keyPress(' '))
	if cmd == nil {
		t.Error("expected a pop command from the completed view")
	}
}

func TestPlayerScreen_View(t *testing.T) {
	p := New(testQuiz())
	if p.View(80, 24) == "" {
		t.Error("expected non-empty intro view")
	}

	p = startPlayer(t, testQuiz())
	if p.View(80, 24) == "" {
		t.Error("expected non-empty question view")
	}

	chooseCorrect(t, p)
	p.Update(specialKey(tea.KeyEnter))
	if p.View(80, 24) == "" {
		t.Error("expected non-empty reveal view")
	}
}
