package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anirudh/quizdeck/internal/quizgen"
	"github.com/anirudh/quizdeck/internal/store"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Draft a quiz on a topic with an LLM",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		topic := strings.Join(args, " ")

		gen, err := buildGenerator(ctx)
		if err != nil {
			return fmt.Errorf("no LLM provider configured: %w", err)
		}

		count, _ := cmd.Flags().GetInt("questions")
		if count <= 0 {
			if fc, cerr := loadedConfig(); cerr == nil && fc.Generate.Questions > 0 {
				count = fc.Generate.Questions
			} else {
				count = quizgen.DefaultQuestionCount
			}
		}

		fmt.Fprintf(os.Stderr, "Drafting %d questions on %q with %s...\n", count, topic, gen.ModelID())
		q, err := gen.Draft(ctx, quizgen.DraftRequest{
			Topic:     topic,
			Questions: count,
		})
		if err != nil {
			return fmt.Errorf("draft: %w", err)
		}

		if out, _ := cmd.Flags().GetString("output"); out != "" {
			data, err := json.MarshalIndent(q, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Println("Wrote", out)
			return nil
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		id, err := st.SaveQuiz(ctx, *q, nil)
		if err != nil {
			return fmt.Errorf("save: %w", err)
		}
		fmt.Println("Saved to library:", id)
		return nil
	},
}

func init() {
	generateCmd.Flags().IntP("questions", "n", 0, "Number of questions to draft")
	generateCmd.Flags().StringP("output", "o", "", "Write the drafted quiz to a JSON file instead of the library")
}
