package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PPRAMANIK62/word-quest/internal/store"
	"github.com/PPRAMANIK62/word-quest/internal/vocab"
)

var importCmd = &cobra.Command{
	Use:   "import <pack.json|pack.xlsx>",
	Short: "Import a vocabulary pack",
	Long: `Load a vocabulary pack from JSON or an Excel workbook, validate it and
store its lessons. Re-importing a pack replaces its lessons when the version
is newer; use --force to re-import the same or an older version.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		w := cmd.OutOrStdout()

		pack, err := vocab.LoadPack(args[0])
		if err != nil {
			var verr *vocab.ValidationError
			if errors.As(err, &verr) {
				for _, p := range verr.Problems {
					fmt.Fprintf(cmd.ErrOrStderr(), "  ✗ %s\n", p)
				}
			}
			return fmt.Errorf("load %s: %w", args[0], err)
		}

		for _, issue := range vocab.Lint(pack.Entries()) {
			logger.Warn("lint", "issue", issue.String())
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		repo := st.VocabRepo()
		existing, err := repo.PackVersion(ctx, pack.Name)
		switch {
		case errors.Is(err, store.ErrNotFound):
		case err != nil:
			return fmt.Errorf("check installed version: %w", err)
		case !force && vocab.CompareVersions(pack.Version, existing) <= 0:
			return fmt.Errorf("pack %q %s is already imported (have %s); use --force to re-import",
				pack.Name, pack.Version, existing)
		}

		if err := repo.SavePack(ctx, pack); err != nil {
			return fmt.Errorf("save pack: %w", err)
		}

		logger.Info("pack imported", "pack", pack.Name, "version", pack.Version, "lessons", len(pack.Lessons))
		fmt.Fprintf(w, "Imported %s %s (%s): %d lessons, %d words\n",
			pack.Name, pack.Version, pack.Language.Name, len(pack.Lessons), len(pack.Entries()))
		if existing != "" {
			fmt.Fprintf(w, "Replaced version %s.\n", existing)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().Bool("force", false, "Import even if the same or a newer version is installed")
}
