package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/PPRAMANIK62/word-quest/internal/app"
	"github.com/PPRAMANIK62/word-quest/internal/badges"
	"github.com/PPRAMANIK62/word-quest/internal/diagnosis"
	"github.com/PPRAMANIK62/word-quest/internal/exercise"
	"github.com/PPRAMANIK62/word-quest/internal/mastery"
	"github.com/PPRAMANIK62/word-quest/internal/screens/home"
	sessionscreen "github.com/PPRAMANIK62/word-quest/internal/screens/session"
	sess "github.com/PPRAMANIK62/word-quest/internal/session"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, lessonID string) error {
	ctx := cmd.Context()
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	// The TUI owns the terminal, so logs go to a file beside the database.
	logPath := filepath.Join(filepath.Dir(cfg.DBPath), "wordquest.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	verbose, _ := cmd.Flags().GetBool("verbose")
	tuiLogger := newLogger(logFile, verbose)
	slog.SetDefault(tuiLogger)

	policy, err := cfg.MasteryPolicy()
	if err != nil {
		return err
	}
	difficulty, err := lessonDifficulty(ctx, st.VocabRepo())
	if err != nil {
		return err
	}

	progress := st.ProgressRepo()
	events := st.EventRepo()
	sessionDeps := sessionscreen.Deps{
		Planner:   sess.NewPlanner(st.VocabRepo(), progress, cfg.UserID),
		Generator: exercise.New(exercise.WithLogger(tuiLogger)),
		Recorder: sess.RecorderConfig{
			Mastery:          mastery.NewService(progress, policy, cfg.UserID),
			Diagnosis:        diagnosis.NewService(),
			Badges:           badges.NewService(events, tuiLogger),
			Events:           events,
			Logger:           tuiLogger,
			LessonDifficulty: difficulty,
		},
		Questions: cfg.SessionSize,
		Logger:    tuiLogger,
	}

	tuiLogger.Info("starting tui", "db", cfg.DBPath, "policy", policy.Name(), "lesson", lessonID)
	return app.Run(home.Deps{
		Session:     sessionDeps,
		Vocab:       st.VocabRepo(),
		Records:     progress,
		Events:      events,
		UserID:      cfg.UserID,
		ReviewLimit: cfg.ReviewLimit,
		Logger:      tuiLogger,
	}, app.Options{LessonID: lessonID})
}
