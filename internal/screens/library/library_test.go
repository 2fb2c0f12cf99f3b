package library

import (
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/anirudh/quizdeck/internal/store"
)

var errFake = errors.New("boom")

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func strPtr(s string) *string { return &s }

// loadedLibrary builds a screen populated as if the store load completed:
// one root folder ("Science", containing one deck) plus one unfiled quiz.
func loadedLibrary(t *testing.T) *LibraryScreen {
	t.Helper()
	l := New(nil)
	l.Update(loadedMsg{
		Tree: []*store.FolderNode{
			{
				Folder:    store.Folder{ID: "f1", Name: "Science", Color: "#3B82F6"},
				QuizCount: 1,
			},
		},
		Quizzes: []store.QuizSummary{
			{ID: "q1", Title: "Capitals", Type: store.TypeRegular, QuestionCount: 3},
			{ID: "q2", Title: "Biology", Type: store.TypeConcept, FolderID: strPtr("f1"), QuestionCount: 2},
		},
	})
	return l
}

func TestLibraryScreen_RowsAtRoot(t *testing.T) {
	l := loadedLibrary(t)

	// Folders first, then quizzes not in any folder.
	if len(l.rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(l.rows))
	}
	if l.rows[0].folder == nil || l.rows[0].folder.Name != "Science" {
		t.Error("expected first row to be the Science folder")
	}
	if l.rows[1].quiz == nil || l.rows[1].quiz.ID != "q1" {
		t.Error("expected second row to be the unfiled quiz")
	}
}

func TestLibraryScreen_DescendAndAscend(t *testing.T) {
	l := loadedLibrary(t)

	l.Update(specialKey(tea.KeyEnter))
	if l.Title() != "Science" {
		t.Fatalf("Title = %q, want %q", l.Title(), "Science")
	}
	if len(l.rows) != 1 || l.rows[0].quiz == nil || l.rows[0].quiz.ID != "q2" {
		t.Fatal("expected the folder to show only its own quiz")
	}

	l.Update(specialKey(tea.KeyLeft))
	if l.Title() != "Library" {
		t.Errorf("Title = %q, want %q after ascend", l.Title(), "Library")
	}
	if len(l.rows) != 2 {
		t.Errorf("rows = %d, want 2 back at root", len(l.rows))
	}
}

func TestLibraryScreen_OpenQuizIssuesLoad(t *testing.T) {
	l := loadedLibrary(t)
	l.Update(keyPress('j')) // onto the quiz row

	// The load command is not executed here; it would hit the store.
	if q := l.selectedQuiz(); q == nil || q.ID != "q1" {
		t.Fatal("expected the quiz row to be selected")
	}
}

func TestLibraryScreen_MoveFlow(t *testing.T) {
	l := loadedLibrary(t)
	l.Update(keyPress('j'))
	l.Update(keyPress('m'))

	if l.mode != modeMove {
		t.Fatalf("mode = %d, want move", l.mode)
	}
	if !l.CapturesEscape() {
		t.Error("expected the move dialog to capture esc")
	}
	if len(l.moveTargets) != 1 || l.moveTargets[0].ID != "f1" {
		t.Fatalf("move targets = %v, want the Science folder", l.moveTargets)
	}

	// Cursor 0 is "no folder"; step down to the Science folder and confirm.
	l.Update(keyPress('j'))
	_, cmd := l.Update(specialKey(tea.KeyEnter))
	if l.mode != modeBrowse {
		t.Error("expected move dialog to close")
	}
	if cmd == nil {
		t.Fatal("expected a persist command")
	}

	// The move is applied optimistically: the quiz left the root listing.
	if len(l.rows) != 1 {
		t.Errorf("rows = %d, want 1 after optimistic move", len(l.rows))
	}
}

func TestLibraryScreen_MoveCancel(t *testing.T) {
	l := loadedLibrary(t)
	l.Update(keyPress('j'))
	l.Update(keyPress('m'))

	l.Update(specialKey(tea.KeyEscape))
	if l.mode != modeBrowse {
		t.Error("expected esc to cancel the move dialog")
	}
	if len(l.rows) != 2 {
		t.Error("expected no rows to change on cancel")
	}
}

func TestLibraryScreen_MoveFailureResyncs(t *testing.T) {
	l := loadedLibrary(t)
	l.status = ""
	_, cmd := l.Update(movedMsg{QuizID: "q1", Err: errFake})
	if l.status == "" {
		t.Error("expected a failure status")
	}
	if cmd == nil {
		t.Error("expected a reload command to roll the move back")
	}
}

func TestLibraryScreen_DeleteConfirm(t *testing.T) {
	l := loadedLibrary(t)
	l.Update(keyPress('j'))
	l.Update(keyPress('d'))

	if l.mode != modeConfirmDelete {
		t.Fatalf("mode = %d, want confirm", l.mode)
	}
	if l.pendingDelete.ID != "q1" {
		t.Errorf("pending delete = %q, want q1", l.pendingDelete.ID)
	}

	l.Update(keyPress('n'))
	if l.mode != modeBrowse {
		t.Error("expected N to keep the quiz")
	}

	l.Update(keyPress('d'))
	_, cmd := l.Update(keyPress('y'))
	if l.mode != modeBrowse {
		t.Error("expected confirm dialog to close")
	}
	if cmd == nil {
		t.Error("expected a delete command")
	}
}

func TestLibraryScreen_FolderInput(t *testing.T) {
	l := loadedLibrary(t)

	l.Update(keyPress('n'))
	if l.mode != modeFolderInput {
		t.Fatalf("mode = %d, want folder input", l.mode)
	}
	if l.renameFolder != nil {
		t.Error("expected a create, not a rename")
	}

	l.Update(specialKey(tea.KeyEscape))
	if l.mode != modeBrowse {
		t.Error("expected esc to cancel the folder input")
	}
}

func TestLibraryScreen_RenameTargetsFolder(t *testing.T) {
	l := loadedLibrary(t)

	// Cursor starts on the folder row.
	l.Update(keyPress('r'))
	if l.mode != modeFolderInput {
		t.Fatalf("mode = %d, want folder input", l.mode)
	}
	if l.renameFolder == nil || l.renameFolder.ID != "f1" {
		t.Error("expected the rename to target the selected folder")
	}
}

func TestLibraryScreen_LoadErrorShown(t *testing.T) {
	l := New(nil)
	l.Update(loadedMsg{Err: errFake})
	if l.errMsg == "" {
		t.Error("expected a load error message")
	}
	if l.View(80, 24) == "" {
		t.Error("expected non-empty view with an error")
	}
}

func TestLibraryScreen_View(t *testing.T) {
	l := loadedLibrary(t)
	if l.View(80, 24) == "" {
		t.Error("expected non-empty browse view")
	}
}
