package quizgen

import (
	"fmt"
	"strings"
)

const draftSystemPrompt = `You are a quiz author writing multiple-choice quizzes for self-study.

Rules:
- Produce one quiz document covering the requested topic with exactly the requested number of questions.
- Every question has 3 to 5 options with exactly one correct option.
- Distractors should reflect plausible misconceptions, not random values.
- Every question carries an explanation that teaches why the correct answer is right.
- Question ids are unique positive integers, numbered from 1.
- Write clear, self-contained question text. No markup, plain text only.
- When source notes are given, draw the questions from them and cite the relevant passage in the question's citations.`

// buildDraftPrompt constructs the user message for a DraftRequest.
func buildDraftPrompt(req DraftRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	fmt.Fprintf(&b, "Questions: %d\n", req.Questions)

	if req.Notes != "" {
		b.WriteString("\nSource notes:\n")
		b.WriteString(req.Notes)
	}

	return b.String()
}
