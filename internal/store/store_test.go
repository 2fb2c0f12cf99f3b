package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/anirudh/quizdeck/internal/concepts"
	"github.com/anirudh/quizdeck/internal/quiz"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "quizdeck.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleQuiz() quiz.Quiz {
	return quiz.Quiz{
		Title:       "Syntax",
		Description: "Basics of declarations.",
		Concepts: []quiz.Concept{
			{ID: 1, Label: "variables"},
		},
		Questions: []quiz.Question{
			{
				ID:   1,
				Text: "Which keyword declares a constant?",
				Options: []quiz.Option{
					{Text: "const", IsCorrect: true},
					{Text: "final"},
				},
				Explanation: "const.",
				ConceptID:   intp(1),
			},
		},
	}
}

func sampleDeck() concepts.Deck {
	return concepts.Deck{
		Concepts: []concepts.Concept{
			{
				Name:        "Pointers",
				Explanation: "Addresses of values.",
				Questions: []concepts.Question{
					{
						Text:        "What does & do?",
						Explanation: "Takes the address.",
						Options: []quiz.Option{
							{Text: "address-of", IsCorrect: true},
							{Text: "dereference"},
						},
					},
				},
			},
		},
	}
}

func intp(v int) *int { return &v }

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSaveAndGetQuiz(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveQuiz(ctx, sampleQuiz(), nil)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.GetQuiz(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Type != TypeRegular {
		t.Errorf("type = %q, want %q", got.Type, TypeRegular)
	}
	if got.Title != "Syntax" {
		t.Errorf("title = %q, want Syntax", got.Title)
	}
	if len(got.Quiz.Questions) != 1 || got.Quiz.Questions[0].ID != 1 {
		t.Fatalf("questions = %+v, want the saved question", got.Quiz.Questions)
	}
	if len(got.Quiz.Concepts) != 1 || got.Quiz.Concepts[0].Label != "variables" {
		t.Fatalf("concepts = %+v, want the saved concept list", got.Quiz.Concepts)
	}
	if got.Quiz.Questions[0].ConceptID == nil || *got.Quiz.Questions[0].ConceptID != 1 {
		t.Error("question concept tag lost in round trip")
	}
}

func TestSaveAndGetDeck(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveDeck(ctx, "Pointers", "A walkthrough.", sampleDeck(), nil)
	if err != nil {
		t.Fatalf("save deck: %v", err)
	}

	got, err := s.GetQuiz(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Type != TypeConcept {
		t.Errorf("type = %q, want %q", got.Type, TypeConcept)
	}
	if len(got.Deck.Concepts) != 1 || got.Deck.Concepts[0].Name != "Pointers" {
		t.Fatalf("deck = %+v, want the saved deck", got.Deck)
	}
	if got.Deck.TotalQuestions() != 1 {
		t.Errorf("TotalQuestions = %d, want 1", got.Deck.TotalQuestions())
	}
}

func TestGetMissingQuiz(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetQuiz(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListQuizzesAndCounts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.SaveQuiz(ctx, sampleQuiz(), nil); err != nil {
		t.Fatalf("save quiz: %v", err)
	}
	if _, err := s.SaveDeck(ctx, "Pointers", "", sampleDeck(), nil); err != nil {
		t.Fatalf("save deck: %v", err)
	}

	list, err := s.ListQuizzes(ctx, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len(list) = %d, want 2", len(list))
	}
	for _, item := range list {
		if item.QuestionCount != 1 {
			t.Errorf("%s: QuestionCount = %d, want 1", item.Title, item.QuestionCount)
		}
	}
}

func TestDeleteQuiz(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveQuiz(ctx, sampleQuiz(), nil)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.DeleteQuiz(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetQuiz(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete = %v, want ErrNotFound", err)
	}
	if err := s.DeleteQuiz(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete = %v, want ErrNotFound", err)
	}
}

func TestMoveQuizBetweenFolders(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	folder, err := s.CreateFolder(ctx, "Go", "", nil)
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}
	id, err := s.SaveQuiz(ctx, sampleQuiz(), nil)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := s.MoveQuiz(ctx, id, &folder); err != nil {
		t.Fatalf("move: %v", err)
	}
	got, err := s.GetQuiz(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FolderID == nil || *got.FolderID != folder {
		t.Fatalf("FolderID = %v, want %s", got.FolderID, folder)
	}

	filed, err := s.ListQuizzes(ctx, &folder)
	if err != nil {
		t.Fatalf("list filed: %v", err)
	}
	if len(filed) != 1 {
		t.Fatalf("filed count = %d, want 1", len(filed))
	}

	if err := s.MoveQuiz(ctx, id, nil); err != nil {
		t.Fatalf("move to root: %v", err)
	}
	got, err = s.GetQuiz(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FolderID != nil {
		t.Fatalf("FolderID = %v, want nil after move to root", got.FolderID)
	}
}

func TestFolderTree(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	parent, err := s.CreateFolder(ctx, "Languages", "#FF0000", nil)
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	child, err := s.CreateFolder(ctx, "Go", "", &parent)
	if err != nil {
		t.Fatalf("create child: %v", err)
	}

	id, err := s.SaveQuiz(ctx, sampleQuiz(), &child)
	if err != nil {
		t.Fatalf("save into child: %v", err)
	}
	_ = id

	tree, err := s.FolderTree(ctx)
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	if len(tree) != 1 {
		t.Fatalf("roots = %d, want 1", len(tree))
	}
	root := tree[0]
	if root.Name != "Languages" || root.Color != "#FF0000" {
		t.Fatalf("root = %+v", root.Folder)
	}
	if len(root.Children) != 1 || root.Children[0].Name != "Go" {
		t.Fatalf("children = %+v, want [Go]", root.Children)
	}
	if root.Children[0].Color != DefaultFolderColor {
		t.Errorf("child color = %q, want default %q", root.Children[0].Color, DefaultFolderColor)
	}
	if root.Children[0].QuizCount != 1 {
		t.Errorf("child QuizCount = %d, want 1", root.Children[0].QuizCount)
	}
}

func TestRenameAndRecolorFolder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.CreateFolder(ctx, "Drafts", "", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.RenameFolder(ctx, id, "Archive"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if err := s.RecolorFolder(ctx, id, "#00FF00"); err != nil {
		t.Fatalf("recolor: %v", err)
	}

	folders, err := s.ListFolders(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(folders) != 1 || folders[0].Name != "Archive" || folders[0].Color != "#00FF00" {
		t.Fatalf("folders = %+v", folders)
	}

	if err := s.RenameFolder(ctx, "missing", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("rename missing = %v, want ErrNotFound", err)
	}
}

func TestDeleteFolderUnfilesQuizzes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	parent, err := s.CreateFolder(ctx, "Languages", "", nil)
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	child, err := s.CreateFolder(ctx, "Go", "", &parent)
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	id, err := s.SaveQuiz(ctx, sampleQuiz(), &child)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := s.DeleteFolder(ctx, parent); err != nil {
		t.Fatalf("delete parent: %v", err)
	}
	folders, err := s.ListFolders(ctx)
	if err != nil {
		t.Fatalf("list folders: %v", err)
	}
	if len(folders) != 0 {
		t.Fatalf("folders after cascade = %+v, want none", folders)
	}

	got, err := s.GetQuiz(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FolderID != nil {
		t.Fatalf("FolderID = %v, want nil after folder deletion", got.FolderID)
	}
}

func TestComments(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	quizID, err := s.SaveQuiz(ctx, sampleQuiz(), nil)
	if err != nil {
		t.Fatalf("save quiz: %v", err)
	}

	first, err := s.AddComment(ctx, quizID, 1, "tricky wording")
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if _, err := s.AddComment(ctx, quizID, 1, "see chapter 3"); err != nil {
		t.Fatalf("add second comment: %v", err)
	}

	list, err := s.ListComments(ctx, quizID, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Body != "tricky wording" {
		t.Fatalf("comments = %+v, want oldest first", list)
	}

	if err := s.DeleteComment(ctx, first); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, err = s.ListComments(ctx, quizID, 1)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(list) != 1 || list[0].Body != "see chapter 3" {
		t.Fatalf("comments = %+v, want only the second", list)
	}

	// Deleting the quiz cascades its comments away.
	if err := s.DeleteQuiz(ctx, quizID); err != nil {
		t.Fatalf("delete quiz: %v", err)
	}
	list, err = s.ListComments(ctx, quizID, 1)
	if err != nil {
		t.Fatalf("list after quiz delete: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("comments = %+v, want none", list)
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"quizzes", "folders", "comments"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}
