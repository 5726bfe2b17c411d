package session

import (
	"time"

	sess "github.com/PPRAMANIK62/word-quest/internal/session"
)

// sessionInitMsg is sent when the plan and questions are ready.
type sessionInitMsg struct {
	Session  *sess.Session
	Recorder *sess.Recorder
	Plan     *sess.Plan
	Err      error
}

// timerTickMsg is sent every second to update the elapsed time.
type timerTickMsg time.Time

// feedbackDoneMsg is sent when the learner dismisses the feedback view.
type feedbackDoneMsg struct{}

// sessionEndMsg is sent to trigger the session end flow.
type sessionEndMsg struct{}
