package cmd

import (
	"fmt"
	"strings"

	"github.com/anirudh/quizdeck/internal/store"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "library",
	Aliases: []string{"list"},
	Short:   "Print the library's folders and quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		tree, err := st.FolderTree(ctx)
		if err != nil {
			return fmt.Errorf("list folders: %w", err)
		}
		quizzes, err := st.ListQuizzes(ctx, nil)
		if err != nil {
			return fmt.Errorf("list quizzes: %w", err)
		}

		byFolder := map[string][]store.QuizSummary{}
		for _, q := range quizzes {
			key := ""
			if q.FolderID != nil {
				key = *q.FolderID
			}
			byFolder[key] = append(byFolder[key], q)
		}

		printLevel(tree, byFolder, 0)
		for _, q := range byFolder[""] {
			printQuiz(q, 0)
		}
		if len(tree) == 0 && len(quizzes) == 0 {
			fmt.Println("Library is empty.")
		}
		return nil
	},
}

func printLevel(nodes []*store.FolderNode, byFolder map[string][]store.QuizSummary, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		fmt.Printf("%s%s/ (%d)\n", indent, n.Name, n.QuizCount)
		printLevel(n.Children, byFolder, depth+1)
		for _, q := range byFolder[n.ID] {
			printQuiz(q, depth+1)
		}
	}
}

func printQuiz(q store.QuizSummary, depth int) {
	kind := "quiz"
	if q.Type == store.TypeConcept {
		kind = "deck"
	}
	fmt.Printf("%s%s  [%s, %d questions]  %s\n", strings.Repeat("  ", depth), q.Title, kind, q.QuestionCount, q.ID)
}
