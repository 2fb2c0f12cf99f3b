package cmd

import (
	"github.com/anirudh/quizdeck/internal/app"
	"github.com/anirudh/quizdeck/internal/screen"
	"github.com/anirudh/quizdeck/internal/screens/conceptplayer"
	"github.com/anirudh/quizdeck/internal/screens/player"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Play a quiz or concept deck from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, d, err := parseDocument(args[0])
		if err != nil {
			printParseError(err)
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true
			return err
		}

		var initial screen.Screen
		if d != nil {
			initial = conceptplayer.New(titleFromPath(args[0]), *d)
		} else {
			initial = player.New(*q)
		}

		return app.Run(app.Options{
			Version: version,
			Initial: initial,
		})
	},
}
