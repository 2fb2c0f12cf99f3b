package cmd

import (
	"fmt"

	"github.com/anirudh/quizdeck/internal/app"
	"github.com/anirudh/quizdeck/internal/screens/conceptplayer"
	"github.com/spf13/cobra"
)

var conceptsCmd = &cobra.Command{
	Use:   "concepts <file>",
	Short: "Play a concept deck from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, d, err := parseDocument(args[0])
		if err != nil {
			printParseError(err)
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true
			return err
		}
		if d == nil {
			return fmt.Errorf("%s is a flat quiz, not a concept deck; use: quizdeck play", args[0])
		}

		return app.Run(app.Options{
			Version: version,
			Initial: conceptplayer.New(titleFromPath(args[0]), *d),
		})
	},
}
