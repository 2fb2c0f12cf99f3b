package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultFolderColor is applied when a folder is created without one.
const DefaultFolderColor = "#3B82F6"

// Folder is one node of the library's folder tree.
type Folder struct {
	ID        string
	Name      string
	Color     string
	ParentID  *string
	CreatedAt time.Time
}

// FolderNode is a folder with its resolved children and quiz count, as
// produced by FolderTree.
type FolderNode struct {
	Folder
	Children  []*FolderNode
	QuizCount int
}

// CreateFolder adds a folder under parentID (nil for the root) and returns
// its id. An empty color falls back to DefaultFolderColor.
func (s *Store) CreateFolder(ctx context.Context, name, color string, parentID *string) (string, error) {
	if color == "" {
		color = DefaultFolderColor
	}
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO folders (id, name, color, parent_id, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, name, color, parentID, time.Now().UTC().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("create folder: %w", err)
	}
	return id, nil
}

// RenameFolder changes a folder's display name.
func (s *Store) RenameFolder(ctx context.Context, id, name string) error {
	return s.updateFolder(ctx, id, "name", name)
}

// RecolorFolder changes a folder's accent color.
func (s *Store) RecolorFolder(ctx context.Context, id, color string) error {
	if color == "" {
		color = DefaultFolderColor
	}
	return s.updateFolder(ctx, id, "color", color)
}

func (s *Store) updateFolder(ctx context.Context, id, column, value string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE folders SET `+column+` = ? WHERE id = ?`, value, id)
	if err != nil {
		return fmt.Errorf("update folder %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteFolder removes a folder. Descendant folders cascade away; quizzes
// filed anywhere under it fall back to the root.
func (s *Store) DeleteFolder(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete folder %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListFolders returns every folder, oldest first.
func (s *Store) ListFolders(ctx context.Context) ([]Folder, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, color, parent_id, created_at FROM folders ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	out := make([]Folder, 0)
	for rows.Next() {
		var (
			f       Folder
			created int64
		)
		if err := rows.Scan(&f.ID, &f.Name, &f.Color, &f.ParentID, &created); err != nil {
			return nil, err
		}
		f.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, f)
	}
	return out, rows.Err()
}

// FolderTree assembles the folder hierarchy with per-folder quiz counts.
// Top-level folders come back in creation order; orphaned parents (should
// not happen with cascades on) surface their subtrees at the top level.
func (s *Store) FolderTree(ctx context.Context) ([]*FolderNode, error) {
	folders, err := s.ListFolders(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	rows, err := s.db.QueryContext(ctx,
		`SELECT folder_id, COUNT(*) FROM quizzes WHERE folder_id IS NOT NULL GROUP BY folder_id`)
	if err != nil {
		return nil, fmt.Errorf("count filed quizzes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id string
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	nodes := make(map[string]*FolderNode, len(folders))
	for _, f := range folders {
		nodes[f.ID] = &FolderNode{Folder: f, QuizCount: counts[f.ID]}
	}

	roots := make([]*FolderNode, 0)
	for _, f := range folders {
		node := nodes[f.ID]
		if f.ParentID != nil {
			if parent, ok := nodes[*f.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots, nil
}
