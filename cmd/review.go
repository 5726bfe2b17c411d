package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/PPRAMANIK62/word-quest/internal/mastery"
	"github.com/PPRAMANIK62/word-quest/internal/spacedrep"
	"github.com/PPRAMANIK62/word-quest/internal/vocab"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Show words due for review and frequent mistakes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		if !cmd.Flags().Changed("limit") {
			limit = cfg.ReviewLimit
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		records, err := st.ProgressRepo().All(ctx, cfg.UserID)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		entries, err := st.VocabRepo().AllEntries(ctx)
		if err != nil {
			return fmt.Errorf("load vocabulary: %w", err)
		}

		printReview(cmd.OutOrStdout(), records, entries, limit, time.Now())
		return nil
	},
}

func init() {
	reviewCmd.Flags().Int("limit", 0, "Maximum due words to list (default from config)")
}

func printReview(w io.Writer, records []mastery.Record, entries []vocab.Entry, limit int, now time.Time) {
	words := make(map[string]vocab.Entry, len(entries))
	for _, e := range entries {
		words[e.ID] = e
	}
	name := func(id string) (string, string) {
		if e, ok := words[id]; ok {
			return e.TargetWord, e.SourceWord
		}
		return id, ""
	}

	all := spacedrep.DueQueue(records, now, 0)
	due := all
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}

	if len(all) == 0 {
		fmt.Fprintln(w, "No words due for review.")
	} else {
		fmt.Fprintf(w, "%-24s  %-24s  %-10s  %s\n", "Word", "Meaning", "Level", "Status")
		fmt.Fprintln(w, strings.Repeat("─", 76))
		for i := range due {
			r := &due[i]
			target, source := name(r.VocabularyID)
			status := "due"
			if spacedrep.Status(r, now) == spacedrep.ReviewOverdue {
				status = fmt.Sprintf("overdue %.0fd", spacedrep.OverdueDays(r, now))
			}
			fmt.Fprintf(w, "%-24s  %-24s  %-10s  %s\n", target, source, mastery.LevelLabel(r.Level), status)
		}
		if len(due) < len(all) {
			fmt.Fprintf(w, "... and %d more\n", len(all)-len(due))
		}
		fmt.Fprintf(w, "\n%d due. Run `wordquest` and pick \"Review due words\".\n", len(all))
	}

	mistakes := spacedrep.Mistakes(records)
	if len(mistakes) == 0 {
		return
	}
	fmt.Fprintln(w, "\nFrequent mistakes")
	fmt.Fprintln(w, strings.Repeat("─", 76))
	for _, r := range mistakes {
		target, source := name(r.VocabularyID)
		fmt.Fprintf(w, "%-24s  %-24s  %d/%d correct\n", target, source, r.CorrectAnswers, r.TotalAttempts)
	}
}
