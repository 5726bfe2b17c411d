package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PPRAMANIK62/word-quest/internal/diagnosis"
	"github.com/PPRAMANIK62/word-quest/internal/exercise"
	"github.com/PPRAMANIK62/word-quest/internal/vocab"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate exercises from imported vocabulary (no progress tracking)",
	Long: `Generate a batch of exercises and print them, or answer them on the
console with --interactive.

This is stateless: answers are graded but no mastery or events are recorded.
Useful for checking how a pack's exercises read.`,
	RunE: runQuiz,
}

func init() {
	quizCmd.Flags().Int("count", 5, "Number of questions to generate")
	quizCmd.Flags().String("type", "mixed", "Exercise type: mixed, mc, fib, to or from")
	quizCmd.Flags().String("lesson", "", "Draw vocabulary from one lesson")
	quizCmd.Flags().Uint64("seed", 0, "Random seed for reproducible output (0 = random)")
	quizCmd.Flags().Bool("json", false, "Print questions as JSON")
	quizCmd.Flags().BoolP("interactive", "i", false, "Answer the questions on the console")
}

func runQuiz(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	kind, _ := cmd.Flags().GetString("type")
	lesson, _ := cmd.Flags().GetString("lesson")
	seed, _ := cmd.Flags().GetUint64("seed")
	asJSON, _ := cmd.Flags().GetBool("json")
	interactive, _ := cmd.Flags().GetBool("interactive")

	if count < 1 {
		return fmt.Errorf("--count must be at least 1")
	}
	if asJSON && interactive {
		return fmt.Errorf("use --json or --interactive, not both")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	var pool []vocab.Entry
	if lesson != "" {
		pool, err = st.VocabRepo().Entries(ctx, lesson)
	} else {
		pool, err = st.VocabRepo().AllEntries(ctx)
	}
	if err != nil {
		return fmt.Errorf("load vocabulary: %w", err)
	}

	opts := []exercise.Option{exercise.WithLogger(logger)}
	if seed != 0 {
		opts = append(opts, exercise.WithSeed(seed))
	}
	questions, err := generate(exercise.New(opts...), kind, pool, count)
	if err != nil {
		var insufficient *exercise.InsufficientDataError
		if errors.As(err, &insufficient) {
			return fmt.Errorf("%w\n\nImport more vocabulary with `wordquest import`", err)
		}
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case asJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(questions)
	case interactive:
		return askQuestions(cmd.InOrStdin(), out, questions, pool)
	default:
		printQuestions(out, questions)
		return nil
	}
}

func generate(g *exercise.Generator, kind string, pool []vocab.Entry, count int) ([]exercise.Question, error) {
	switch strings.ToLower(kind) {
	case "mixed":
		return g.Mixed(pool, count)
	case "mc":
		return g.MultipleChoice(pool, count)
	case "fib":
		return g.FillInBlank(pool, count)
	case "to":
		return g.Translation(pool, count, exercise.ToSource)
	case "from":
		return g.Translation(pool, count, exercise.FromSource)
	default:
		// Long forms such as "to_source" are accepted too.
		dir, err := exercise.ParseDirection(strings.ToLower(kind))
		if err != nil {
			return nil, fmt.Errorf("invalid type %q: must be mixed, mc, fib, to or from", kind)
		}
		return g.Translation(pool, count, dir)
	}
}

func printQuestions(w io.Writer, questions []exercise.Question) {
	for i, q := range questions {
		fmt.Fprintf(w, "── Question %d/%d · %s ──\n", i+1, len(questions), q.Type.Label())
		fmt.Fprintln(w, q.Prompt)
		if q.Hint != "" {
			fmt.Fprintf(w, "Hint: %s\n", q.Hint)
		}
		for j, o := range q.Options {
			fmt.Fprintf(w, "  %d) %s\n", j+1, o)
		}
		fmt.Fprintf(w, "Answer: %s\n\n", q.Answer)
	}
}

func askQuestions(r io.Reader, w io.Writer, questions []exercise.Question, pool []vocab.Entry) error {
	scanner := bufio.NewScanner(r)
	diag := diagnosis.NewService()
	var correct int

	for i := range questions {
		q := &questions[i]
		if err := exercise.CheckRenderable(q); err != nil {
			return fmt.Errorf("data integrity error: %w", err)
		}

		fmt.Fprintf(w, "── Question %d/%d · %s ──\n", i+1, len(questions), q.Type.Label())
		fmt.Fprintln(w, q.Prompt)
		if q.Hint != "" {
			fmt.Fprintf(w, "Hint: %s\n", q.Hint)
		}
		for j, o := range q.Options {
			fmt.Fprintf(w, "  %d) %s\n", j+1, o)
		}

		fmt.Fprint(w, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(w, "\n(input closed)")
			break
		}
		answer := resolveChoice(q, strings.TrimSpace(scanner.Text()))

		if exercise.ValidateAnswer(answer, q.Answer) {
			correct++
			fmt.Fprintln(w, "\033[32m✓ Correct!\033[0m")
		} else {
			res := diag.Diagnose(q, answer, pool, diagnosis.History{})
			fmt.Fprintf(w, "\033[31m✗ Wrong.\033[0m %s\n", res.Feedback())
		}
		if q.Explanation != "" {
			fmt.Fprintf(w, "%s\n", q.Explanation)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "── Summary: %d/%d correct ──\n", correct, len(questions))
	return nil
}

// resolveChoice maps a typed option number to the option text.
func resolveChoice(q *exercise.Question, answer string) string {
	if len(q.Options) == 0 {
		return answer
	}
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(q.Options) {
		return q.Options[n-1]
	}
	return answer
}
