package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/anirudh/quizdeck/internal/app"
	"github.com/anirudh/quizdeck/internal/config"
	"github.com/anirudh/quizdeck/internal/quizgen"
	"github.com/anirudh/quizdeck/internal/store"
	"github.com/spf13/cobra"
)

var (
	configOnce sync.Once
	fileConfig config.Config
	configErr  error
)

// loadedConfig reads the config file once per process. A missing file yields
// the zero Config.
func loadedConfig() (config.Config, error) {
	configOnce.Do(func() {
		fileConfig, configErr = config.LoadDefault()
	})
	return fileConfig, configErr
}

// buildGenerator assembles a quiz generator from env vars, the config file,
// and finally the vendors' standard API key env vars. Returns an error when
// no provider is configured.
func buildGenerator(ctx context.Context) (*quizgen.Generator, error) {
	cfg := quizgen.ConfigFromEnv()
	if fc, err := loadedConfig(); err == nil {
		if fc.Generate.Provider != "" && os.Getenv("QUIZDECK_PROVIDER") == "" {
			cfg.Provider = fc.Generate.Provider
		}
	}

	if err := cfg.Validate(); err != nil {
		discovered, ok := quizgen.DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return quizgen.NewGenerator(ctx, cfg)
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
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

	opts := app.Options{
		Store:   st,
		Version: version,
	}

	gen, err := buildGenerator(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI drafting will be unavailable.")
	} else {
		opts.Generator = gen
	}

	return app.Run(opts)
}
