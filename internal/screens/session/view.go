package session

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/PPRAMANIK62/word-quest/internal/exercise"
	"github.com/PPRAMANIK62/word-quest/internal/mastery"
	"github.com/PPRAMANIK62/word-quest/internal/ui/theme"
)

// centered renders text centered across width in the given color.
func centered(width int, fg color.Color, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(fg).
		Render(text)
}

// renderQuestionView renders the active question display.
func (s *SessionScreen) renderQuestionView(width, height int) string {
	q := s.session.Current()
	if q == nil {
		return renderLoading(width, height)
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(q, width))

	questionStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(questionStyle.Render(q.Prompt))
	b.WriteString("\n")
	if q.Hint != "" {
		b.WriteString(theme.Hint.
			Width(width).
			Align(lipgloss.Center).
			Render(q.Hint))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if s.mcActive() {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("Answer: " + s.input.View()))
	}
	return b.String()
}

// renderInfoLine renders the question type, progress, score and timer.
func (s *SessionScreen) renderInfoLine(q *exercise.Question, width int) string {
	mins := int(s.elapsed.Minutes())
	secs := int(s.elapsed.Seconds()) % 60

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + q.Type.Label())

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d  %s %d:%02d",
			s.session.Index()+1,
			len(s.session.Questions),
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			s.session.Correct(),
			lipgloss.NewStyle().Foreground(theme.Accent).Render("⏱"),
			mins, secs,
		))

	line := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + infoRight
	}

	var b strings.Builder
	b.WriteString(line)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")
	return b.String()
}

// renderFeedback renders the result of the last answer.
func (s *SessionScreen) renderFeedback(width, height int) string {
	out := s.lastOutcome
	q := s.lastQuestion()
	if out == nil || q == nil {
		return renderLoading(width, height)
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(q, width))

	if s.mcActive() {
		b.WriteString(centered(width, theme.Text, q.Prompt))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))
		b.WriteString("\n")
	}

	if out.Answer.Correct {
		b.WriteString(theme.Correct.
			Width(width).
			Align(lipgloss.Center).
			Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.
			Width(width).
			Align(lipgloss.Center).
			Render("Not quite"))
		b.WriteString("\n")
		msg := fmt.Sprintf("Correct answer: %s", q.Answer)
		if out.Diagnosis != nil {
			msg = out.Diagnosis.Feedback()
		}
		b.WriteString(centered(width, theme.TextDim, msg))
	}
	b.WriteString("\n\n")

	if q.Explanation != "" {
		exp := theme.Body.
			Width(min(width-8, 70)).
			Render(q.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n\n")
	}

	if ch := out.Change; ch != nil {
		b.WriteString(renderLevelChange(ch, width))
		b.WriteString("\n\n")
	}

	for _, a := range out.Badges {
		line := fmt.Sprintf("%s %s %s badge! %s", a.Type.Icon(), a.Rarity.DisplayName(), a.Type.DisplayName(), a.Reason)
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.RarityColor(string(a.Rarity))).
			Bold(true).
			Render(line))
		b.WriteString("\n")
	}
	if len(out.Badges) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(centered(width, theme.TextDim, "Press any key to continue..."))
	return b.String()
}

func renderLevelChange(ch *mastery.LevelChange, width int) string {
	switch {
	case ch.Trigger == mastery.TriggerMastered:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render(fmt.Sprintf("%q mastered!", ch.Word))
	case ch.Learned():
		return centered(width, theme.Success, fmt.Sprintf("New word learned: %q", ch.Word))
	case ch.To > ch.From:
		return centered(width, theme.LevelColor(ch.To), fmt.Sprintf("%q level %d → %d", ch.Word, ch.From, ch.To))
	default:
		return centered(width, theme.TextDim, fmt.Sprintf("%q level %d → %d", ch.Word, ch.From, ch.To))
	}
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width, height, answered int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("End session early?"))
	b.WriteString("\n")
	note := "Nothing has been answered yet."
	if answered > 0 {
		note = fmt.Sprintf("Your %d answers are saved.", answered)
	}
	b.WriteString(centered(width, theme.TextDim, note))
	b.WriteString("\n\n")

	b.WriteString(centered(width, theme.Success, "[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Primary, "[N] No, keep going"))

	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width, height int) string {
	return centered(width, theme.TextDim, "\n\n\n  Preparing your session...")
}

// renderError renders an error message. Integrity errors come from corrupt
// question data rather than from the learner's setup.
func renderError(width, height int, errMsg string, integrity bool) string {
	if integrity {
		return centered(width, theme.Error, fmt.Sprintf(
			"\n\n\n  Data integrity error: %s\n\n  This question cannot be shown. Press any key to end the session.", errMsg))
	}
	return centered(width, theme.Error, fmt.Sprintf("\n\n\n  %s\n\n  Press any key to go back.", errMsg))
}
