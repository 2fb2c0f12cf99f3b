package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/anirudh/quizdeck/internal/concepts"
	"github.com/anirudh/quizdeck/internal/quiz"
)

// Quiz row types. Concept decks live in the same table as flat quizzes; the
// deck's concept list is serialized into the questions column so the library
// listing, folders, and deletion treat both kinds uniformly.
const (
	TypeRegular = "regular"
	TypeConcept = "concept"
)

// SavedQuiz is a fully loaded library entry. Exactly one of Quiz or Deck is
// populated, according to Type.
type SavedQuiz struct {
	ID          string
	Title       string
	Description string
	Type        string
	FolderID    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Quiz quiz.Quiz
	Deck concepts.Deck
}

// QuizSummary is a listing row: everything but the question payload.
type QuizSummary struct {
	ID            string
	Title         string
	Description   string
	Type          string
	FolderID      *string
	QuestionCount int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// deckEnvelope carries a concept deck through the questions column.
type deckEnvelope struct {
	Concepts []concepts.Concept `json:"concepts"`
}

// SaveQuiz stores a flat quiz as a new library entry and returns its id.
func (s *Store) SaveQuiz(ctx context.Context, q quiz.Quiz, folderID *string) (string, error) {
	questions, err := json.Marshal(q.Questions)
	if err != nil {
		return "", fmt.Errorf("marshal questions: %w", err)
	}
	var conceptsJSON any
	if len(q.Concepts) > 0 {
		b, err := json.Marshal(q.Concepts)
		if err != nil {
			return "", fmt.Errorf("marshal concepts: %w", err)
		}
		conceptsJSON = string(b)
	}

	id := uuid.NewString()
	now := time.Now().UTC().Unix()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO quizzes (id, title, description, quiz_type, questions, concepts, folder_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, q.Title, q.Description, TypeRegular, string(questions), conceptsJSON, folderID, now, now,
	)
	if err != nil {
		return "", fmt.Errorf("insert quiz: %w", err)
	}
	return id, nil
}

// SaveDeck stores a concept deck as a new library entry and returns its id.
func (s *Store) SaveDeck(ctx context.Context, title, description string, d concepts.Deck, folderID *string) (string, error) {
	payload, err := json.Marshal([]deckEnvelope{{Concepts: d.Concepts}})
	if err != nil {
		return "", fmt.Errorf("marshal deck: %w", err)
	}

	id := uuid.NewString()
	now := time.Now().UTC().Unix()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO quizzes (id, title, description, quiz_type, questions, concepts, folder_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, NULL, ?, ?, ?)`,
		id, title, description, TypeConcept, string(payload), folderID, now, now,
	)
	if err != nil {
		return "", fmt.Errorf("insert deck: %w", err)
	}
	return id, nil
}

// GetQuiz loads one library entry with its full payload.
func (s *Store) GetQuiz(ctx context.Context, id string) (*SavedQuiz, error) {
	var (
		entry        SavedQuiz
		questions    string
		conceptsJSON sql.NullString
		created      int64
		updated      int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, quiz_type, questions, concepts, folder_id, created_at, updated_at
		 FROM quizzes WHERE id = ?`,
		id,
	).Scan(&entry.ID, &entry.Title, &entry.Description, &entry.Type,
		&questions, &conceptsJSON, &entry.FolderID, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load quiz %s: %w", id, err)
	}
	entry.CreatedAt = time.Unix(created, 0).UTC()
	entry.UpdatedAt = time.Unix(updated, 0).UTC()

	switch entry.Type {
	case TypeConcept:
		var envelopes []deckEnvelope
		if err := json.Unmarshal([]byte(questions), &envelopes); err != nil {
			return nil, fmt.Errorf("decode deck %s: %w", id, err)
		}
		if len(envelopes) > 0 {
			entry.Deck = concepts.Deck{Concepts: envelopes[0].Concepts}
		}
	default:
		entry.Quiz = quiz.Quiz{Title: entry.Title, Description: entry.Description}
		if err := json.Unmarshal([]byte(questions), &entry.Quiz.Questions); err != nil {
			return nil, fmt.Errorf("decode questions %s: %w", id, err)
		}
		if conceptsJSON.Valid {
			if err := json.Unmarshal([]byte(conceptsJSON.String), &entry.Quiz.Concepts); err != nil {
				return nil, fmt.Errorf("decode concepts %s: %w", id, err)
			}
		}
	}
	return &entry, nil
}

// ListQuizzes returns summaries for all entries, newest first. folderID
// filters to one folder; nil lists everything, including unfiled entries.
func (s *Store) ListQuizzes(ctx context.Context, folderID *string) ([]QuizSummary, error) {
	query := `SELECT id, title, description, quiz_type, questions, folder_id, created_at, updated_at
		 FROM quizzes`
	args := []any{}
	if folderID != nil {
		query += ` WHERE folder_id = ?`
		args = append(args, *folderID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	out := make([]QuizSummary, 0)
	for rows.Next() {
		var (
			item      QuizSummary
			questions string
			created   int64
			updated   int64
		)
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Type,
			&questions, &item.FolderID, &created, &updated); err != nil {
			return nil, err
		}
		item.CreatedAt = time.Unix(created, 0).UTC()
		item.UpdatedAt = time.Unix(updated, 0).UTC()
		item.QuestionCount = countQuestions(item.Type, questions)
		out = append(out, item)
	}
	return out, rows.Err()
}

func countQuestions(quizType, questions string) int {
	if quizType == TypeConcept {
		var envelopes []deckEnvelope
		if json.Unmarshal([]byte(questions), &envelopes) != nil || len(envelopes) == 0 {
			return 0
		}
		return concepts.Deck{Concepts: envelopes[0].Concepts}.TotalQuestions()
	}
	var qs []json.RawMessage
	if json.Unmarshal([]byte(questions), &qs) != nil {
		return 0
	}
	return len(qs)
}

// DeleteQuiz removes an entry and, via cascade, its comments.
func (s *Store) DeleteQuiz(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete quiz %s: %w", id, err)
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

// MoveQuiz files an entry under folderID; nil moves it to the root.
func (s *Store) MoveQuiz(ctx context.Context, id string, folderID *string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE quizzes SET folder_id = ?, updated_at = ? WHERE id = ?`,
		folderID, time.Now().UTC().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("move quiz %s: %w", id, err)
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
