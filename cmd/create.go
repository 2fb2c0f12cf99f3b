package cmd

import (
	"fmt"

	"github.com/anirudh/quizdeck/internal/store"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create <file>",
	Short: "Validate a quiz or concept deck file and save it to the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, d, err := parseDocument(args[0])
		if err != nil {
			printParseError(err)
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true
			return err
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

		ctx := cmd.Context()
		title, _ := cmd.Flags().GetString("title")

		var id string
		if d != nil {
			if title == "" {
				title = titleFromPath(args[0])
			}
			id, err = st.SaveDeck(ctx, title, "", *d, nil)
		} else {
			if title != "" {
				q.Title = title
			}
			id, err = st.SaveQuiz(ctx, *q, nil)
		}
		if err != nil {
			return fmt.Errorf("save: %w", err)
		}

		fmt.Println("Saved to library:", id)
		return nil
	},
}

func init() {
	createCmd.Flags().String("title", "", "Title to store the document under (required for decks without one)")
}
