package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Comment is a note attached to one question of a saved quiz.
type Comment struct {
	ID         string
	QuizID     string
	QuestionID int
	Body       string
	CreatedAt  time.Time
}

// AddComment attaches a note to a question of the given library entry and
// returns the comment id.
func (s *Store) AddComment(ctx context.Context, quizID string, questionID int, body string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO comments (id, quiz_id, question_id, body, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, quizID, questionID, body, time.Now().UTC().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("add comment: %w", err)
	}
	return id, nil
}

// ListComments returns a question's comments, oldest first.
func (s *Store) ListComments(ctx context.Context, quizID string, questionID int) ([]Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, quiz_id, question_id, body, created_at
		 FROM comments WHERE quiz_id = ? AND question_id = ?
		 ORDER BY created_at ASC, id ASC`,
		quizID, questionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	out := make([]Comment, 0)
	for rows.Next() {
		var (
			c       Comment
			created int64
		)
		if err := rows.Scan(&c.ID, &c.QuizID, &c.QuestionID, &c.Body, &created); err != nil {
			return nil, err
		}
		c.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteComment removes one comment.
func (s *Store) DeleteComment(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete comment %s: %w", id, err)
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
