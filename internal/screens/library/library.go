// Package library is the saved-quiz browser: folders, playback entry points,
// per-question comments, and quiz organization.
package library

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/anirudh/quizdeck/internal/router"
	"github.com/anirudh/quizdeck/internal/screen"
	"github.com/anirudh/quizdeck/internal/screens/conceptplayer"
	"github.com/anirudh/quizdeck/internal/screens/player"
	"github.com/anirudh/quizdeck/internal/store"
	"github.com/anirudh/quizdeck/internal/ui/components"
	"github.com/anirudh/quizdeck/internal/ui/layout"
)

type mode int

const (
	modeBrowse mode = iota
	modeMove
	modeConfirmDelete
	modeComments
	modeFolderInput
)

// folderColors is the palette cycled by the recolor key.
var folderColors = []string{"#3B82F6", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6"}

// row is one selectable line in the browse list: a folder or a quiz.
type row struct {
	folder *store.FolderNode
	quiz   *store.QuizSummary
}

// LibraryScreen browses saved quizzes and concept decks.
type LibraryScreen struct {
	store *store.Store

	tree    []*store.FolderNode
	quizzes []store.QuizSummary

	// path is the folder descent from the root; empty means root.
	path []*store.FolderNode

	rows   []row
	cursor int
	mode   mode

	moveCursor  int
	moveTargets []store.Folder

	pendingDelete store.QuizSummary

	commentQuiz  store.QuizSummary
	comments     []store.Comment
	commentInput components.TextInput

	renameFolder *store.FolderNode // nil when the input creates a folder
	folderInput  components.TextInput

	errMsg string
	status string
}

var _ screen.Screen = (*LibraryScreen)(nil)
var _ screen.KeyHintProvider = (*LibraryScreen)(nil)
var _ screen.EscapeHandler = (*LibraryScreen)(nil)

// CapturesEscape keeps esc inside the screen while a dialog is up.
func (l *LibraryScreen) CapturesEscape() bool {
	return l.mode != modeBrowse
}

// New creates the library screen backed by the given store.
func New(st *store.Store) *LibraryScreen {
	return &LibraryScreen{store: st}
}

func (l *LibraryScreen) Init() tea.Cmd {
	return l.load()
}

func (l *LibraryScreen) Title() string {
	if len(l.path) > 0 {
		return l.path[len(l.path)-1].Name
	}
	return "Library"
}

func (l *LibraryScreen) KeyHints() []layout.KeyHint {
	switch l.mode {
	case modeMove:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Target"},
			{Key: "Enter", Description: "Move"},
			{Key: "Esc", Description: "Cancel"},
		}
	case modeConfirmDelete:
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Keep"},
		}
	case modeComments:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Post"},
			{Key: "Esc", Description: "Close"},
		}
	case modeFolderInput:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Open / Play"},
		{Key: "M", Description: "Move"},
		{Key: "C", Description: "Comments"},
		{Key: "N", Description: "New folder"},
		{Key: "D", Description: "Delete"},
	}
}

func (l *LibraryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.Err != nil {
			l.errMsg = msg.Err.Error()
			return l, nil
		}
		l.errMsg = ""
		l.tree = msg.Tree
		l.quizzes = msg.Quizzes
		l.rebuildRows()
		return l, nil

	case quizLoadedMsg:
		if msg.Err != nil {
			l.errMsg = msg.Err.Error()
			return l, nil
		}
		return l, pushPlayer(msg.Saved)

	case movedMsg:
		if msg.Err != nil {
			// Roll the optimistic move back and resync from the store.
			l.status = "move failed: " + msg.Err.Error()
			return l, l.load()
		}
		l.status = "moved"
		return l, l.load()

	case deletedMsg:
		if msg.Err != nil {
			l.errMsg = msg.Err.Error()
		} else {
			l.status = "deleted"
		}
		return l, l.load()

	case folderSavedMsg:
		if msg.Err != nil {
			l.errMsg = msg.Err.Error()
		}
		return l, l.load()

	case commentsLoadedMsg:
		if msg.Err != nil {
			l.errMsg = msg.Err.Error()
			l.mode = modeBrowse
			return l, nil
		}
		l.comments = msg.Comments
		return l, nil

	case commentAddedMsg:
		if msg.Err != nil {
			l.errMsg = msg.Err.Error()
			return l, nil
		}
		return l, l.loadComments()

	case tea.KeyMsg:
		return l.handleKey(msg)
	}

	return l, nil
}

func (l *LibraryScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch l.mode {
	case modeMove:
		return l.handleMoveKey(msg)
	case modeConfirmDelete:
		return l.handleConfirmKey(msg)
	case modeComments:
		return l.handleCommentsKey(msg)
	case modeFolderInput:
		return l.handleFolderInputKey(msg)
	}
	return l.handleBrowseKey(msg)
}

func (l *LibraryScreen) handleBrowseKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	l.status = ""

	switch msg.String() {
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}
	case "down", "j":
		if l.cursor < len(l.rows)-1 {
			l.cursor++
		}
	case "left", "h", "backspace":
		if len(l.path) > 0 {
			l.path = l.path[:len(l.path)-1]
			l.cursor = 0
			l.rebuildRows()
		}
	case "enter":
		return l.openSelected()
	case "m", "M":
		if q := l.selectedQuiz(); q != nil {
			l.beginMove()
		}
	case "d", "D":
		if q := l.selectedQuiz(); q != nil {
			l.pendingDelete = *q
			l.mode = modeConfirmDelete
		} else if f := l.selectedFolder(); f != nil {
			return l, l.deleteFolder(f.ID)
		}
	case "c", "C":
		if q := l.selectedQuiz(); q != nil {
			l.commentQuiz = *q
			l.comments = nil
			l.commentInput = components.NewTextInput("Add a note...", false, 200)
			l.mode = modeComments
			return l, tea.Batch(l.loadComments(), l.commentInput.Init())
		}
	case "n", "N":
		l.renameFolder = nil
		l.folderInput = components.NewTextInput("Folder name", false, 60)
		l.mode = modeFolderInput
		return l, l.folderInput.Init()
	case "r", "R":
		if f := l.selectedFolder(); f != nil {
			l.renameFolder = f
			l.folderInput = components.NewTextInput(f.Name, false, 60)
			l.mode = modeFolderInput
			return l, l.folderInput.Init()
		}
	case "o", "O":
		if f := l.selectedFolder(); f != nil {
			return l, l.recolorFolder(f)
		}
	}
	return l, nil
}

func (l *LibraryScreen) openSelected() (screen.Screen, tea.Cmd) {
	if f := l.selectedFolder(); f != nil {
		l.path = append(l.path, f)
		l.cursor = 0
		l.rebuildRows()
		return l, nil
	}
	if q := l.selectedQuiz(); q != nil {
		return l, l.loadQuiz(q.ID)
	}
	return l, nil
}

func (l *LibraryScreen) handleMoveKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if l.moveCursor > 0 {
			l.moveCursor--
		}
	case "down", "j":
		if l.moveCursor < len(l.moveTargets) {
			l.moveCursor++
		}
	case "esc":
		l.mode = modeBrowse
	case "enter":
		q := l.selectedQuiz()
		l.mode = modeBrowse
		if q == nil {
			return l, nil
		}
		var target *string
		if l.moveCursor > 0 {
			id := l.moveTargets[l.moveCursor-1].ID
			target = &id
		}
		prev := q.FolderID
		// Optimistic: update the local copy, then persist.
		q.FolderID = target
		l.rebuildRows()
		return l, l.moveQuiz(q.ID, target, prev)
	}
	return l, nil
}

func (l *LibraryScreen) handleConfirmKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		l.mode = modeBrowse
		return l, l.deleteQuiz(l.pendingDelete.ID)
	case "n", "N", "esc":
		l.mode = modeBrowse
	}
	return l, nil
}

func (l *LibraryScreen) handleCommentsKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		l.mode = modeBrowse
		return l, nil
	case "enter":
		body := strings.TrimSpace(l.commentInput.Value())
		if body == "" {
			return l, nil
		}
		l.commentInput = components.NewTextInput("Add a note...", false, 200)
		return l, tea.Batch(l.addComment(body), l.commentInput.Init())
	}

	var cmd tea.Cmd
	l.commentInput, cmd = l.commentInput.Update(msg)
	return l, cmd
}

func (l *LibraryScreen) handleFolderInputKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		l.mode = modeBrowse
		return l, nil
	case "enter":
		name := strings.TrimSpace(l.folderInput.Value())
		l.mode = modeBrowse
		if name == "" {
			return l, nil
		}
		if l.renameFolder != nil {
			return l, l.saveFolderRename(l.renameFolder.ID, name)
		}
		return l, l.createFolder(name)
	}

	var cmd tea.Cmd
	l.folderInput, cmd = l.folderInput.Update(msg)
	return l, cmd
}

// beginMove collects every folder as a move target, root first.
func (l *LibraryScreen) beginMove() {
	l.moveTargets = nil
	var walk func(nodes []*store.FolderNode)
	walk = func(nodes []*store.FolderNode) {
		for _, n := range nodes {
			l.moveTargets = append(l.moveTargets, n.Folder)
			walk(n.Children)
		}
	}
	walk(l.tree)
	l.moveCursor = 0
	l.mode = modeMove
}

// rebuildRows recomputes the visible rows for the current folder.
func (l *LibraryScreen) rebuildRows() {
	l.rows = l.rows[:0]

	children := l.tree
	var folderID *string
	if len(l.path) > 0 {
		current := l.path[len(l.path)-1]
		children = current.Children
		folderID = &current.ID
	}

	for _, f := range children {
		l.rows = append(l.rows, row{folder: f})
	}
	for i := range l.quizzes {
		q := &l.quizzes[i]
		if sameFolder(q.FolderID, folderID) {
			l.rows = append(l.rows, row{quiz: q})
		}
	}

	if l.cursor >= len(l.rows) {
		l.cursor = len(l.rows) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

func sameFolder(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (l *LibraryScreen) selectedFolder() *store.FolderNode {
	if l.cursor < len(l.rows) {
		return l.rows[l.cursor].folder
	}
	return nil
}

func (l *LibraryScreen) selectedQuiz() *store.QuizSummary {
	if l.cursor < len(l.rows) {
		return l.rows[l.cursor].quiz
	}
	return nil
}

// pushPlayer routes a saved entry to the matching playback screen.
func pushPlayer(saved *store.SavedQuiz) tea.Cmd {
	return func() tea.Msg {
		if saved.Type == store.TypeConcept {
			return router.PushScreenMsg{
				Screen: conceptplayer.New(saved.Title, saved.Deck),
			}
		}
		return router.PushScreenMsg{Screen: player.New(saved.Quiz)}
	}
}

func (l *LibraryScreen) load() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		tree, err := l.store.FolderTree(ctx)
		if err != nil {
			return loadedMsg{Err: err}
		}
		quizzes, err := l.store.ListQuizzes(ctx, nil)
		if err != nil {
			return loadedMsg{Err: err}
		}
		return loadedMsg{Tree: tree, Quizzes: quizzes}
	}
}

func (l *LibraryScreen) loadQuiz(id string) tea.Cmd {
	return func() tea.Msg {
		saved, err := l.store.GetQuiz(context.Background(), id)
		return quizLoadedMsg{Saved: saved, Err: err}
	}
}

func (l *LibraryScreen) moveQuiz(id string, target, prev *string) tea.Cmd {
	return func() tea.Msg {
		err := l.store.MoveQuiz(context.Background(), id, target)
		return movedMsg{QuizID: id, PrevFolder: prev, Err: err}
	}
}

func (l *LibraryScreen) deleteQuiz(id string) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{Err: l.store.DeleteQuiz(context.Background(), id)}
	}
}

func (l *LibraryScreen) deleteFolder(id string) tea.Cmd {
	return func() tea.Msg {
		return folderSavedMsg{Err: l.store.DeleteFolder(context.Background(), id)}
	}
}

func (l *LibraryScreen) createFolder(name string) tea.Cmd {
	var parent *string
	if len(l.path) > 0 {
		parent = &l.path[len(l.path)-1].ID
	}
	return func() tea.Msg {
		_, err := l.store.CreateFolder(context.Background(), name, "", parent)
		return folderSavedMsg{Err: err}
	}
}

func (l *LibraryScreen) saveFolderRename(id, name string) tea.Cmd {
	return func() tea.Msg {
		return folderSavedMsg{Err: l.store.RenameFolder(context.Background(), id, name)}
	}
}

// recolorFolder cycles the folder through the preset palette.
func (l *LibraryScreen) recolorFolder(f *store.FolderNode) tea.Cmd {
	next := folderColors[0]
	for i, c := range folderColors {
		if c == f.Color {
			next = folderColors[(i+1)%len(folderColors)]
			break
		}
	}
	return func() tea.Msg {
		return folderSavedMsg{Err: l.store.RecolorFolder(context.Background(), f.ID, next)}
	}
}

func (l *LibraryScreen) loadComments() tea.Cmd {
	quizID := l.commentQuiz.ID
	return func() tea.Msg {
		comments, err := l.store.ListComments(context.Background(), quizID, 0)
		return commentsLoadedMsg{Comments: comments, Err: err}
	}
}

func (l *LibraryScreen) addComment(body string) tea.Cmd {
	quizID := l.commentQuiz.ID
	return func() tea.Msg {
		_, err := l.store.AddComment(context.Background(), quizID, 0, body)
		return commentAddedMsg{Err: err}
	}
}
