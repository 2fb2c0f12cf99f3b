package library

import (
	"github.com/anirudh/quizdeck/internal/store"
)

// loadedMsg carries a refreshed folder tree and quiz listing.
type loadedMsg struct {
	Tree    []*store.FolderNode
	Quizzes []store.QuizSummary
	Err     error
}

// quizLoadedMsg carries a full saved entry fetched for playing.
type quizLoadedMsg struct {
	Saved *store.SavedQuiz
	Err   error
}

// movedMsg reports the outcome of a move. The previous folder is kept so a
// failed optimistic move can be rolled back.
type movedMsg struct {
	QuizID     string
	PrevFolder *string
	Err        error
}

// deletedMsg reports the outcome of a delete.
type deletedMsg struct {
	Err error
}

// folderSavedMsg reports the outcome of a folder create, rename, or recolor.
type folderSavedMsg struct {
	Err error
}

// commentsLoadedMsg carries the comment thread for one question.
type commentsLoadedMsg struct {
	Comments []store.Comment
	Err      error
}

// commentAddedMsg reports the outcome of posting a comment.
type commentAddedMsg struct {
	Err error
}
