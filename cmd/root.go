package cmd

import (
	"os"

	"github.com/anirudh/quizdeck/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quizdeck",
	Short: "Terminal quiz player and authoring tool",
	Long:  "Quizdeck — play, author, and AI-draft multiple-choice quizzes and concept decks in the terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZDECK_DB env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(conceptsCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the QUIZDECK_DB env var, then the config file, then the default XDG
// path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if p := os.Getenv("QUIZDECK_DB"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg, err := loadedConfig(); err == nil && cfg.Database.Path != "" {
		return cfg.Database.Path, store.EnsureDir(cfg.Database.Path)
	}
	return store.DefaultDBPath()
}
