package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/PPRAMANIK62/word-quest/internal/config"
	"github.com/PPRAMANIK62/word-quest/internal/store"
)

var (
	cfg    *config.Config
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "wordquest",
	Short: "Vocabulary practice in your terminal",
	Long: `WordQuest drills vocabulary packs with multiple-choice, fill-in-the-blank
and translation exercises, tracks per-word mastery and schedules reviews
with spaced repetition.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger = newLogger(os.Stderr, verbose)
		slog.SetDefault(logger)

		configFile, _ := cmd.Flags().GetString("config")
		c, err := config.Load(config.Options{ConfigFile: configFile, Flags: cmd.Flags()})
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		logger.Debug("config loaded", "db", cfg.DBPath, "policy", cfg.Policy, "user", cfg.UserID)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

// Execute runs the root command with ctx, which is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides WORDQUEST_DB)")
	pf.String("policy", "", "Mastery policy: linear or exponential (overrides WORDQUEST_POLICY)")
	pf.Int("session-size", 0, "Questions per practice session")
	pf.String("user", "", "Learner ID progress is stored under")
	pf.String("config", "", "Config file (default $XDG_CONFIG_HOME/wordquest/config.yaml)")
	pf.BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(enrichCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openStore opens the configured database, creating its directory if needed.
func openStore() (*store.Store, error) {
	if err := store.EnsureDir(cfg.DBPath); err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// lessonDifficulty maps lesson IDs to their difficulty level.
func lessonDifficulty(ctx context.Context, repo store.VocabRepo) (map[string]int, error) {
	lessons, err := repo.Lessons(ctx)
	if err != nil {
		return nil, fmt.Errorf("load lessons: %w", err)
	}
	out := make(map[string]int, len(lessons))
	for _, l := range lessons {
		out[l.ID] = l.Difficulty
	}
	return out, nil
}
