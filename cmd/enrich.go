package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PPRAMANIK62/word-quest/internal/enrich"
	"github.com/PPRAMANIK62/word-quest/internal/llm"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Generate missing example sentences with an LLM",
	Long: `Ask the configured LLM provider for example sentence pairs for words
that have none, so they can appear in fill-in-the-blank exercises.

Configure a provider with WORDQUEST_LLM_PROVIDER and its API key, or set one
of ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY or OPENROUTER_API_KEY.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		language, _ := cmd.Flags().GetString("language")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		w := cmd.OutOrStdout()

		if !cfg.LLM.Enabled() {
			return fmt.Errorf("no LLM provider configured")
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		repo := st.VocabRepo()

		if language == "" {
			packs, err := repo.Packs(ctx)
			if err != nil {
				return fmt.Errorf("list packs: %w", err)
			}
			if len(packs) != 1 {
				return fmt.Errorf("%d packs imported; choose the language with --language", len(packs))
			}
			language = packs[0].Language.Name
		}

		entries, err := repo.AllEntries(ctx)
		if err != nil {
			return fmt.Errorf("load vocabulary: %w", err)
		}
		missing := enrich.Missing(entries, limit)
		if len(missing) == 0 {
			fmt.Fprintln(w, "Every word already has example sentences.")
			return nil
		}
		if dryRun {
			for _, e := range missing {
				fmt.Fprintf(w, "  %s  %s → %s\n", e.ID, e.SourceWord, e.TargetWord)
			}
			fmt.Fprintf(w, "%d words would be enriched.\n", len(missing))
			return nil
		}

		provider, err := llm.New(ctx, cfg.LLM, st.EventRepo(), logger)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}

		fmt.Fprintf(w, "Enriching %d words with %s...\n", len(missing), provider.Model())
		report, err := enrich.New(provider, repo, enrich.DefaultConfig(), logger).Run(ctx, missing, language)
		if err != nil {
			return fmt.Errorf("enrich: %w", err)
		}

		for _, r := range report.Results {
			if r.Err != nil {
				fmt.Fprintf(w, "  ✗ %s (%s): %v\n", r.Entry.SourceWord, r.Entry.TargetWord, r.Err)
			}
		}
		fmt.Fprintf(w, "Updated %d, rejected %d, failed %d.\n", report.Updated, report.Rejected, report.Failed)
		return nil
	},
}

func init() {
	enrichCmd.Flags().Int("limit", 20, "Maximum words to enrich (0 = all)")
	enrichCmd.Flags().String("language", "", "Target language name for prompts (default: the imported pack's)")
	enrichCmd.Flags().Bool("dry-run", false, "List the words that would be enriched")
}
