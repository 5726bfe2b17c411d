package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/PPRAMANIK62/word-quest/internal/mastery"
)

// progressRepo implements ProgressRepo.
type progressRepo struct {
	db *sql.DB
}

var masteryColumns = []string{
	"user_id", "vocabulary_id", "total_attempts", "correct_answers",
	"level", "last_reviewed_at", "next_review_at",
}

func (r *progressRepo) Get(ctx context.Context, userID, vocabularyID string) (*mastery.Record, error) {
	b := builder()
	query, args := b.Select(masteryColumns...).
		From(b.Table(tableMastery)).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("vocabulary_id", vocabularyID))).
		Query()

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query mastery %s: %w", vocabularyID, err)
	}
	return rec, nil
}

func (r *progressRepo) Upsert(ctx context.Context, rec mastery.Record) error {
	query, args := builder().Insert(tableMastery).
		Columns(masteryColumns...).
		Values(rec.UserID, rec.VocabularyID, rec.TotalAttempts, rec.CorrectAnswers,
			rec.Level, toMillis(rec.LastReviewedAt), toMillis(rec.NextReviewAt)).
		OnConflict(entsql.ConflictColumns("user_id", "vocabulary_id"), entsql.ResolveWithNewValues()).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert mastery %s: %w", rec.VocabularyID, err)
	}
	return nil
}

func (r *progressRepo) All(ctx context.Context, userID string) ([]mastery.Record, error) {
	b := builder()
	query, args := b.Select(masteryColumns...).
		From(b.Table(tableMastery)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy("vocabulary_id").
		Query()
	return r.query(ctx, query, args)
}

func (r *progressRepo) Due(ctx context.Context, userID string, now time.Time, limit int) ([]mastery.Record, error) {
	b := builder()
	sel := b.Select(masteryColumns...).
		From(b.Table(tableMastery)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.GT("level", 0),
			entsql.LTE("next_review_at", now.UnixMilli()),
		)).
		OrderBy(entsql.Asc("next_review_at"), entsql.Asc("vocabulary_id"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()
	return r.query(ctx, query, args)
}

func (r *progressRepo) Reset(ctx context.Context, userID string) (int64, error) {
	query, args := builder().Delete(tableMastery).Where(entsql.EQ("user_id", userID)).Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("reset progress: %w", err)
	}
	return res.RowsAffected()
}

func (r *progressRepo) query(ctx context.Context, query string, args []any) ([]mastery.Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query mastery: %w", err)
	}
	defer rows.Close()

	var out []mastery.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mastery: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*mastery.Record, error) {
	var rec mastery.Record
	var last, next int64
	if err := row.Scan(&rec.UserID, &rec.VocabularyID, &rec.TotalAttempts, &rec.CorrectAnswers,
		&rec.Level, &last, &next); err != nil {
		return nil, err
	}
	rec.LastReviewedAt = fromMillis(last)
	rec.NextReviewAt = fromMillis(next)
	return &rec, nil
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
