package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/PPRAMANIK62/word-quest/internal/exercise"
	"github.com/PPRAMANIK62/word-quest/internal/router"
	"github.com/PPRAMANIK62/word-quest/internal/screen"
	"github.com/PPRAMANIK62/word-quest/internal/screens/summary"
	sess "github.com/PPRAMANIK62/word-quest/internal/session"
	"github.com/PPRAMANIK62/word-quest/internal/ui/components"
	"github.com/PPRAMANIK62/word-quest/internal/ui/layout"
)

// ErrNothingDue is shown when a review session finds no due words.
var ErrNothingDue = errors.New("no words are due for review")

// Deps are the collaborators a practice session needs.
type Deps struct {
	Planner   *sess.Planner
	Generator *exercise.Generator

	// Recorder is copied for every session; Pool is filled from the plan.
	Recorder sess.RecorderConfig

	PoolSize  int // vocabulary drawn into a session
	Questions int // questions per session
	Logger    *slog.Logger
	Now       func() time.Time
}

// Options select what a session practices.
type Options struct {
	LessonID   string // empty for every imported word
	ReviewOnly bool
}

type phase int

const (
	phaseLoading phase = iota
	phaseQuestion
	phaseFeedback
	phaseEnding
)

// SessionScreen runs one practice session.
type SessionScreen struct {
	deps Deps
	opts Options

	session  *sess.Session
	recorder *sess.Recorder
	plan     *sess.Plan

	phase        phase
	quitConfirm  bool
	input        components.TextInput
	choices      components.MultiChoice
	lastOutcome  *sess.Outcome
	elapsed      time.Duration
	errMsg       string
	integrityErr bool
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.EscapeInterceptor = (*SessionScreen)(nil)

// New creates a SessionScreen.
func New(deps Deps, opts Options) *SessionScreen {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.PoolSize <= 0 {
		deps.PoolSize = sess.DefaultPoolSize
	}
	if deps.Questions <= 0 {
		deps.Questions = sess.DefaultQuestionCount
	}
	return &SessionScreen{
		deps:  deps,
		opts:  opts,
		input: components.NewTextInput("Type your answer...", 40),
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	return tea.Batch(
		s.initSession(),
		s.input.Init(),
	)
}

func (s *SessionScreen) Title() string {
	if s.opts.ReviewOnly {
		return "Review"
	}
	return "Practice"
}

// InterceptsEscape keeps the app from popping a running session; Esc asks
// for confirmation instead.
func (s *SessionScreen) InterceptsEscape() bool {
	return s.errMsg == "" && (s.phase == phaseQuestion || s.phase == phaseFeedback)
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.quitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case s.phase == phaseFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case s.phase == phaseQuestion && s.mcActive():
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓ Enter", Description: "Select"},
			{Key: "Esc", Description: "Quit"},
		}
	case s.phase == phaseQuestion:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Tab", Description: "Don't know"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return nil
}

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg, s.integrityErr)
	}
	if s.phase == phaseLoading || s.session == nil {
		return renderLoading(width, height)
	}
	if s.quitConfirm {
		return renderQuitConfirm(width, height, len(s.session.Answers))
	}
	if s.phase == phaseFeedback {
		return s.renderFeedback(width, height)
	}
	return s.renderQuestionView(width, height)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionInitMsg:
		return s.handleInit(msg)

	case timerTickMsg:
		return s.handleTimerTick(msg)

	case components.ChoiceMadeMsg:
		if s.phase == phaseQuestion && !s.quitConfirm {
			return s.submitAnswer(msg.Value)
		}
		return s, nil

	case feedbackDoneMsg:
		return s.handleFeedbackDone()

	case sessionEndMsg:
		return s.handleSessionEnd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseQuestion && !s.quitConfirm && !s.mcActive() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// initSession builds the plan and the question batch off the UI loop.
func (s *SessionScreen) initSession() tea.Cmd {
	deps, opts := s.deps, s.opts
	return func() tea.Msg {
		ctx := context.Background()
		now := deps.Now()

		plan, err := deps.Planner.BuildPlan(ctx, sess.PlanOptions{
			LessonID:   opts.LessonID,
			Size:       deps.PoolSize,
			ReviewOnly: opts.ReviewOnly,
		}, now)
		if err != nil {
			return sessionInitMsg{Err: err}
		}
		if opts.ReviewOnly && len(plan.Slots) == 0 {
			return sessionInitMsg{Err: ErrNothingDue}
		}

		questions, err := deps.Generator.Mixed(plan.Entries(), deps.Questions)
		if err != nil {
			var insufficient *exercise.InsufficientDataError
			if errors.As(err, &insufficient) {
				return sessionInitMsg{Err: fmt.Errorf("not enough vocabulary to practice (%d of %d words); import a pack with `wordquest import`", insufficient.Have, insufficient.Need)}
			}
			return sessionInitMsg{Err: err}
		}
		if len(questions) == 0 {
			return sessionInitMsg{Err: errors.New("no questions could be generated from this vocabulary")}
		}

		cfg := deps.Recorder
		cfg.Pool = plan.Entries()
		if cfg.Logger == nil {
			cfg.Logger = deps.Logger
		}
		recorder := sess.NewRecorder(cfg)
		ss := sess.New("", questions, now)
		if err := recorder.Start(ctx, ss); err != nil {
			deps.Logger.Warn("session start not recorded", "session", ss.ID, "err", err)
		}

		deps.Logger.Info("session started",
			"session", ss.ID, "questions", len(questions),
			"review", plan.Count(sess.CategoryReview), "new", plan.Count(sess.CategoryNew))
		return sessionInitMsg{Session: ss, Recorder: recorder, Plan: plan}
	}
}

func (s *SessionScreen) handleInit(msg sessionInitMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.session = msg.Session
	s.recorder = msg.Recorder
	s.plan = msg.Plan
	return s, tea.Batch(s.showQuestion(), tickCmd())
}

// showQuestion prepares the input for the current question. A choice
// question without options is corrupt data and stops the session.
func (s *SessionScreen) showQuestion() tea.Cmd {
	q := s.session.Current()
	if q == nil {
		return func() tea.Msg { return sessionEndMsg{} }
	}
	if err := exercise.CheckRenderable(q); err != nil {
		s.deps.Logger.Error("question cannot be rendered", "session", s.session.ID, "question", q.ID, "err", err)
		s.errMsg = err.Error()
		s.integrityErr = true
		return nil
	}

	s.phase = phaseQuestion
	s.lastOutcome = nil
	s.session.Shown(s.deps.Now())
	if q.Type.HasOptions() {
		s.choices = components.NewMultiChoice(q.Options)
		return nil
	}
	s.input = components.NewTextInput("Type your answer...", 40)
	return s.input.Init()
}

func (s *SessionScreen) handleTimerTick(_ timerTickMsg) (screen.Screen, tea.Cmd) {
	if s.session == nil || s.phase == phaseEnding || s.errMsg != "" {
		return s, nil
	}
	s.elapsed = s.deps.Now().Sub(s.session.StartedAt)
	return s, tickCmd()
}

func (s *SessionScreen) handleFeedbackDone() (screen.Screen, tea.Cmd) {
	if s.session == nil || s.phase != phaseFeedback {
		return s, nil
	}
	if s.session.Done() {
		return s, func() tea.Msg { return sessionEndMsg{} }
	}
	return s, s.showQuestion()
}

func (s *SessionScreen) handleSessionEnd() (screen.Screen, tea.Cmd) {
	if s.session == nil || s.phase == phaseEnding {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	s.phase = phaseEnding

	sum, err := s.recorder.Finish(context.Background(), s.session, s.deps.Now())
	if err != nil {
		s.deps.Logger.Warn("session end not recorded", "session", s.session.ID, "err", err)
	}
	if len(s.session.Answers) == 0 || sum == nil {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	s.deps.Logger.Info("session finished",
		"session", sum.SessionID, "correct", sum.TotalCorrect, "questions", sum.TotalQuestions, "points", sum.Points)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key leaves. A corrupt question ends the session
	// through the normal path so answers given so far are kept.
	if s.errMsg != "" {
		if s.integrityErr && s.session != nil {
			s.errMsg = ""
			return s, func() tea.Msg { return sessionEndMsg{} }
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.session == nil {
		return s, nil
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.quitConfirm = false
			return s, func() tea.Msg { return sessionEndMsg{} }
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	if s.phase == phaseFeedback {
		if key == "esc" {
			s.quitConfirm = true
			return s, nil
		}
		return s, func() tea.Msg { return feedbackDoneMsg{} }
	}

	if s.phase != phaseQuestion {
		return s, nil
	}

	switch key {
	case "esc":
		s.quitConfirm = true
		return s, nil
	case "tab":
		if !s.mcActive() {
			return s.submitAnswer("")
		}
	case "enter":
		if !s.mcActive() {
			if s.input.Value() == "" {
				return s, nil
			}
			return s.submitAnswer(s.input.Value())
		}
	}

	var cmd tea.Cmd
	if s.mcActive() {
		s.choices, cmd = s.choices.Update(msg)
	} else {
		s.input, cmd = s.input.Update(msg)
	}
	return s, cmd
}

// submitAnswer grades the answer, applies it to the learner's progress and
// shows feedback.
func (s *SessionScreen) submitAnswer(answer string) (screen.Screen, tea.Cmd) {
	q := s.session.Current()
	if q == nil {
		return s, nil
	}

	a, err := s.session.Submit(answer, s.deps.Now())
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	outcome, err := s.recorder.Record(context.Background(), s.session, a)
	if err != nil {
		s.deps.Logger.Error("answer not recorded", "session", s.session.ID, "question", a.QuestionID, "err", err)
		outcome = &sess.Outcome{Answer: a}
	}
	s.lastOutcome = outcome

	if s.mcActive() {
		s.choices.Reveal(q.Answer)
	} else {
		s.input.Submit(a.Correct)
	}
	s.phase = phaseFeedback
	return s, nil
}

// mcActive reports whether the current question is answered by choosing.
func (s *SessionScreen) mcActive() bool {
	if s.session == nil {
		return false
	}
	q := s.lastQuestion()
	return q != nil && q.Type.HasOptions()
}

// lastQuestion is the question on screen: the current one while answering,
// the one just answered while showing feedback.
func (s *SessionScreen) lastQuestion() *exercise.Question {
	if s.phase == phaseFeedback && len(s.session.Answers) > 0 {
		return s.session.Question(s.session.Answers[len(s.session.Answers)-1].QuestionID)
	}
	return s.session.Current()
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
