package store

import (
	"context"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/PPRAMANIK62/word-quest/internal/mastery"
	"github.com/PPRAMANIK62/word-quest/internal/vocab"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

func (o QueryOpts) where(base *entsql.Predicate) *entsql.Predicate {
	preds := []*entsql.Predicate{base}
	if o.After > 0 {
		preds = append(preds, entsql.GT("sequence", o.After))
	}
	if o.Before > 0 {
		preds = append(preds, entsql.LT("sequence", o.Before))
	}
	if !o.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", o.From.UnixMilli()))
	}
	if !o.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", o.To.UnixMilli()))
	}
	return entsql.And(preds...)
}

var (
	entEQ = entsql.EQ
	desc  = entsql.Desc
)

const countAll = "COUNT(*)"

// PackInfo describes an imported vocabulary pack.
type PackInfo struct {
	Name       string
	Version    string
	Language   vocab.Language
	ImportedAt time.Time
}

// VocabRepo stores imported vocabulary.
type VocabRepo interface {
	// SavePack replaces the pack's lessons and entries in one transaction.
	SavePack(ctx context.Context, p *vocab.Pack) error

	// PackVersion returns the stored version of a pack, or ErrNotFound.
	PackVersion(ctx context.Context, name string) (string, error)

	// Packs lists imported packs.
	Packs(ctx context.Context) ([]PackInfo, error)

	// Lessons lists lessons (without entries) ordered by pack and position.
	Lessons(ctx context.Context) ([]vocab.Lesson, error)

	// Entries returns a lesson's entries in pack order.
	Entries(ctx context.Context, lessonID string) ([]vocab.Entry, error)

	// AllEntries returns every imported entry.
	AllEntries(ctx context.Context) ([]vocab.Entry, error)

	// UpdateExamples sets the example sentence pair of one entry.
	UpdateExamples(ctx context.Context, entryID, source, target string) error
}

// ProgressRepo stores mastery records. It satisfies mastery.Store.
type ProgressRepo interface {
	// Get returns the record for a (user, word) pair, or nil if absent.
	Get(ctx context.Context, userID, vocabularyID string) (*mastery.Record, error)

	// Upsert inserts or replaces the record for its (user, word) pair.
	Upsert(ctx context.Context, r mastery.Record) error

	// All returns every record for a user.
	All(ctx context.Context, userID string) ([]mastery.Record, error)

	// Due returns learned records due at now, earliest first.
	Due(ctx context.Context, userID string, now time.Time, limit int) ([]mastery.Record, error)

	// Reset deletes every record for a user and returns how many were removed.
	Reset(ctx context.Context, userID string) (int64, error)
}

// Session event actions.
const (
	SessionActionStart = "start"
	SessionActionEnd   = "end"
)

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID      string
	Action         string // SessionActionStart or SessionActionEnd
	Policy         string
	Questions      int
	CorrectAnswers int
	DurationSecs   int
	Points         int
}

// SessionSummaryRecord is a completed session read back from the store.
type SessionSummaryRecord struct {
	SessionID      string
	Policy         string
	Questions      int
	CorrectAnswers int
	DurationSecs   int
	Points         int
	Sequence       int64
	Timestamp      time.Time
}

// AnswerEventData captures one graded answer.
type AnswerEventData struct {
	SessionID     string
	QuestionID    string
	VocabularyID  string
	QuestionType  string
	Prompt        string
	Expected      string
	LearnerAnswer string
	Correct       bool
	ElapsedSecs   float64
	Attempts      int
	LevelBefore   int
	LevelAfter    int
	Diagnosis     string // empty for correct answers
}

// BadgeEventData captures a badge award.
type BadgeEventData struct {
	BadgeType    string
	Rarity       string
	SessionID    string
	VocabularyID string // empty for session and streak badges
	Word         string
	Reason       string
}

// BadgeEventRecord is a badge award read back from the store.
type BadgeEventRecord struct {
	BadgeEventData
	Sequence  int64
	Timestamp time.Time
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMUsageStats aggregates LLM requests for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Requests     int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	AppendBadgeEvent(ctx context.Context, data BadgeEventData) error
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QuerySessions returns completed sessions, newest first.
	QuerySessions(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// BadgeCounts returns badge counts by type and the overall total.
	BadgeCounts(ctx context.Context) (map[string]int, int, error)

	// RecentBadges returns the newest badge awards.
	RecentBadges(ctx context.Context, limit int) ([]BadgeEventRecord, error)

	// TotalPoints sums points over completed sessions.
	TotalPoints(ctx context.Context) (int, error)

	// LLMUsageByPurpose aggregates LLM requests per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)
}
