package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anirudh/quizdeck/internal/concepts"
	"github.com/anirudh/quizdeck/internal/quiz"
)

// parseDocument reads and validates an authoring file. A top-level "concepts"
// key marks a concept deck; everything else is treated as a flat quiz.
// Exactly one of the returned pointers is non-nil on success.
func parseDocument(path string) (*quiz.Quiz, *concepts.Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, nil, &quiz.SyntaxError{Err: err}
	}

	if _, ok := probe["concepts"]; ok {
		d, err := concepts.Parse(data)
		if err != nil {
			return nil, nil, err
		}
		return nil, d, nil
	}

	q, err := quiz.Parse(data)
	if err != nil {
		return nil, nil, err
	}
	return q, nil, nil
}

// titleFromPath derives a deck title from the file name, since deck documents
// carry no title of their own.
func titleFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")
	return strings.TrimSpace(base)
}

// printParseError writes a validation failure to stderr in a readable form.
func printParseError(err error) {
	var verr *quiz.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintln(os.Stderr, "Document is well-formed but not playable:")
		for _, p := range verr.Problems {
			fmt.Fprintln(os.Stderr, "  -", p)
		}
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
}
