package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// sequenceCounter hands out one increasing number shared by every event
// table, so session, answer, badge, and LLM events can be merged back into
// the order they happened.
//
// The row lives outside the migrated schema because the schema builder has
// no notion of an atomic counter. The mutex serializes within the process;
// UPDATE ... RETURNING makes the increment atomic in the database.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS global_sequence (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			next_val INTEGER NOT NULL DEFAULT 1
		)`,
		`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("init sequence: %w", err)
		}
	}
	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo on top of the sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// appendEvent inserts one row into an event table, prefixing the sequence
// and timestamp columns.
func (r *eventRepo) appendEvent(ctx context.Context, table string, columns []string, values []any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	query, args := builder().Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, columns...)...).
		Values(append([]any{seqNum, time.Now().UTC().UnixMilli()}, values...)...).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.appendEvent(ctx, tableSessions,
		[]string{"session_id", "action", "policy", "questions", "correct_answers", "duration_secs", "points"},
		[]any{data.SessionID, data.Action, data.Policy, data.Questions, data.CorrectAnswers, data.DurationSecs, data.Points},
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	err := r.appendEvent(ctx, tableAnswers,
		[]string{
			"session_id", "question_id", "vocabulary_id", "question_type", "prompt", "expected",
			"learner_answer", "correct", "elapsed_secs", "attempts", "level_before", "level_after", "diagnosis",
		},
		[]any{
			data.SessionID, data.QuestionID, data.VocabularyID, data.QuestionType, data.Prompt, data.Expected,
			data.LearnerAnswer, data.Correct, data.ElapsedSecs, data.Attempts, data.LevelBefore, data.LevelAfter, data.Diagnosis,
		},
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendBadgeEvent(ctx context.Context, data BadgeEventData) error {
	err := r.appendEvent(ctx, tableBadges,
		[]string{"badge_type", "rarity", "session_id", "vocabulary_id", "word", "reason"},
		[]any{data.BadgeType, data.Rarity, data.SessionID, data.VocabularyID, data.Word, data.Reason},
	)
	if err != nil {
		return fmt.Errorf("save badge event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	err := r.appendEvent(ctx, tableLLM,
		[]string{"provider", "model", "purpose", "input_tokens", "output_tokens", "latency_ms", "success", "error_message"},
		[]any{data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage},
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

// QuerySessions returns completed sessions, newest first.
func (r *eventRepo) QuerySessions(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	b := builder()
	sel := b.Select("session_id", "policy", "questions", "correct_answers", "duration_secs", "points", "sequence", "timestamp").
		From(b.Table(tableSessions)).
		Where(opts.where(entEQ("action", SessionActionEnd))).
		OrderBy(desc("sequence"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummaryRecord
	for rows.Next() {
		var rec SessionSummaryRecord
		var ts int64
		if err := rows.Scan(&rec.SessionID, &rec.Policy, &rec.Questions, &rec.CorrectAnswers,
			&rec.DurationSecs, &rec.Points, &rec.Sequence, &ts); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

// BadgeCounts returns the number of badges earned per type and in total.
func (r *eventRepo) BadgeCounts(ctx context.Context) (map[string]int, int, error) {
	b := builder()
	query, args := b.Select("badge_type", countAll).
		From(b.Table(tableBadges)).
		GroupBy("badge_type").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query badge counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	total := 0
	for rows.Next() {
		var typ string
		var n int
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, 0, fmt.Errorf("scan badge count: %w", err)
		}
		counts[typ] = n
		total += n
	}
	return counts, total, rows.Err()
}

// RecentBadges returns the newest badge events.
func (r *eventRepo) RecentBadges(ctx context.Context, limit int) ([]BadgeEventRecord, error) {
	b := builder()
	sel := b.Select("badge_type", "rarity", "session_id", "vocabulary_id", "word", "reason", "sequence", "timestamp").
		From(b.Table(tableBadges)).
		OrderBy(desc("sequence"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query badges: %w", err)
	}
	defer rows.Close()

	var out []BadgeEventRecord
	for rows.Next() {
		var rec BadgeEventRecord
		var ts int64
		if err := rows.Scan(&rec.BadgeType, &rec.Rarity, &rec.SessionID, &rec.VocabularyID,
			&rec.Word, &rec.Reason, &rec.Sequence, &ts); err != nil {
			return nil, fmt.Errorf("scan badge: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

// TotalPoints sums the points of every completed session.
func (r *eventRepo) TotalPoints(ctx context.Context) (int, error) {
	b := builder()
	query, args := b.Select("COALESCE(SUM(`points`), 0)").
		From(b.Table(tableSessions)).
		Where(entEQ("action", SessionActionEnd)).
		Query()

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum points: %w", err)
	}
	return total, nil
}

// LLMUsageByPurpose aggregates LLM request events per purpose.
func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error) {
	b := builder()
	query, args := b.Select("purpose", countAll, "COALESCE(SUM(`input_tokens`), 0)", "COALESCE(SUM(`output_tokens`), 0)").
		From(b.Table(tableLLM)).
		GroupBy("purpose").
		OrderBy("purpose").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query llm usage: %w", err)
	}
	defer rows.Close()

	var out []LLMUsageStats
	for rows.Next() {
		var s LLMUsageStats
		if err := rows.Scan(&s.Purpose, &s.Requests, &s.InputTokens, &s.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan llm usage: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
