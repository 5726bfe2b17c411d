package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/PPRAMANIK62/word-quest/internal/badges"
	"github.com/PPRAMANIK62/word-quest/internal/mastery"
	"github.com/PPRAMANIK62/word-quest/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		w := cmd.OutOrStdout()

		entries, err := st.VocabRepo().AllEntries(ctx)
		if err != nil {
			return fmt.Errorf("load vocabulary: %w", err)
		}
		records, err := st.ProgressRepo().All(ctx, cfg.UserID)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}

		levels := make([]int, mastery.MaxLevel+1)
		var attempts, correct int
		for _, r := range records {
			levels[min(max(r.Level, 0), mastery.MaxLevel)]++
			attempts += r.TotalAttempts
			correct += r.CorrectAnswers
		}
		// Words never answered have no record.
		levels[0] += max(len(entries)-len(records), 0)

		fmt.Fprintf(w, "Vocabulary: %d words\n\n", len(entries))
		fmt.Fprintln(w, "Mastery levels")
		fmt.Fprintln(w, strings.Repeat("─", 40))
		for lvl, n := range levels {
			fmt.Fprintf(w, "  %d %-10s %5d  %s\n", lvl, mastery.LevelLabel(lvl), n, bar(n, len(entries), 20))
		}
		if attempts > 0 {
			fmt.Fprintf(w, "\nAnswers: %d (%.0f%% correct)\n", attempts, float64(correct)/float64(attempts)*100)
		}
		due, err := st.ProgressRepo().Due(ctx, cfg.UserID, time.Now(), 0)
		if err != nil {
			return fmt.Errorf("load due words: %w", err)
		}
		fmt.Fprintf(w, "Due for review: %d\n", len(due))

		events := st.EventRepo()
		sessions, err := events.QuerySessions(ctx, store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("load sessions: %w", err)
		}
		points, err := events.TotalPoints(ctx)
		if err != nil {
			return fmt.Errorf("load points: %w", err)
		}
		fmt.Fprintf(w, "Sessions: %d    Points: %d\n", len(sessions), points)

		byType, total, err := events.BadgeCounts(ctx)
		if err != nil {
			return fmt.Errorf("load badges: %w", err)
		}
		fmt.Fprintf(w, "\nBadges: %d\n", total)
		for _, t := range badges.AllBadgeTypes() {
			fmt.Fprintf(w, "  %s %-10s %d\n", t.Icon(), t.DisplayName(), byType[string(t)])
		}

		usage, err := events.LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("load llm usage: %w", err)
		}
		if len(usage) > 0 {
			fmt.Fprintf(w, "\n%-14s  %8s  %10s  %10s\n", "LLM purpose", "Requests", "In tokens", "Out tokens")
			fmt.Fprintln(w, strings.Repeat("─", 48))
			for _, u := range usage {
				fmt.Fprintf(w, "%-14s  %8d  %10d  %10d\n", u.Purpose, u.Requests, u.InputTokens, u.OutputTokens)
			}
		}
		return nil
	},
}

func bar(n, total, width int) string {
	if total == 0 {
		return ""
	}
	return strings.Repeat("█", n*width/total)
}
