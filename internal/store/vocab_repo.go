package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/PPRAMANIK62/word-quest/internal/vocab"
)

// vocabRepo implements VocabRepo.
type vocabRepo struct {
	db *sql.DB
}

var vocabularyColumns = []string{
	"id", "lesson_id", "position", "source_word", "target_word", "pronunciation",
	"word_type", "example_source", "example_target", "audio_url",
}

func (r *vocabRepo) SavePack(ctx context.Context, p *vocab.Pack) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	b := builder()
	query, args := b.Insert(tablePacks).
		Columns("name", "version", "language_code", "language_name", "native_name", "flag", "imported_at").
		Values(p.Name, p.Version, p.Language.Code, p.Language.Name, p.Language.NativeName, p.Language.Flag, time.Now().UTC().UnixMilli()).
		OnConflict(entsql.ConflictColumns("name"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save pack %s: %w", p.Name, err)
	}

	if err := deletePackContent(ctx, tx, p.Name); err != nil {
		return err
	}

	if len(p.Lessons) > 0 {
		ins := b.Insert(tableLessons).
			Columns("id", "pack_name", "title", "description", "order_index", "difficulty", "estimated_minutes")
		for _, l := range p.Lessons {
			ins.Values(l.ID, p.Name, l.Title, l.Description, l.OrderIndex, l.Difficulty, l.EstimatedMinutes)
		}
		query, args = ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("save lessons: %w", err)
		}
	}

	for _, l := range p.Lessons {
		if len(l.Entries) == 0 {
			continue
		}
		ins := b.Insert(tableVocabulary).Columns(vocabularyColumns...)
		for i, e := range l.Entries {
			ins.Values(e.ID, l.ID, i, e.SourceWord, e.TargetWord, e.Pronunciation,
				e.WordType, e.ExampleSource, e.ExampleTarget, e.AudioURL)
		}
		query, args = ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("save entries for lesson %s: %w", l.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit pack %s: %w", p.Name, err)
	}
	return nil
}

// deletePackContent removes the lessons and entries previously stored for a
// pack. Mastery records are keyed by entry ID and survive a re-import.
func deletePackContent(ctx context.Context, tx *sql.Tx, pack string) error {
	b := builder()
	query, args := b.Select("id").From(b.Table(tableLessons)).Where(entsql.EQ("pack_name", pack)).Query()
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query lessons of %s: %w", pack, err)
	}
	var ids []any
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scan lesson id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	query, args = b.Delete(tableVocabulary).Where(entsql.In("lesson_id", ids...)).Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete entries of %s: %w", pack, err)
	}
	query, args = b.Delete(tableLessons).Where(entsql.EQ("pack_name", pack)).Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete lessons of %s: %w", pack, err)
	}
	return nil
}

func (r *vocabRepo) PackVersion(ctx context.Context, name string) (string, error) {
	b := builder()
	query, args := b.Select("version").From(b.Table(tablePacks)).Where(entsql.EQ("name", name)).Query()

	var version string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("query pack version: %w", err)
	}
	return version, nil
}

func (r *vocabRepo) Packs(ctx context.Context) ([]PackInfo, error) {
	b := builder()
	query, args := b.Select("name", "version", "language_code", "language_name", "native_name", "flag", "imported_at").
		From(b.Table(tablePacks)).
		OrderBy("name").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query packs: %w", err)
	}
	defer rows.Close()

	var out []PackInfo
	for rows.Next() {
		var p PackInfo
		var imported int64
		if err := rows.Scan(&p.Name, &p.Version, &p.Language.Code, &p.Language.Name,
			&p.Language.NativeName, &p.Language.Flag, &imported); err != nil {
			return nil, fmt.Errorf("scan pack: %w", err)
		}
		p.ImportedAt = time.UnixMilli(imported).UTC()
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *vocabRepo) Lessons(ctx context.Context) ([]vocab.Lesson, error) {
	b := builder()
	query, args := b.Select("id", "title", "description", "order_index", "difficulty", "estimated_minutes").
		From(b.Table(tableLessons)).
		OrderBy("pack_name", "order_index").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lessons: %w", err)
	}
	defer rows.Close()

	var out []vocab.Lesson
	for rows.Next() {
		var l vocab.Lesson
		if err := rows.Scan(&l.ID, &l.Title, &l.Description, &l.OrderIndex, &l.Difficulty, &l.EstimatedMinutes); err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *vocabRepo) Entries(ctx context.Context, lessonID string) ([]vocab.Entry, error) {
	return r.queryEntries(ctx, entsql.EQ("lesson_id", lessonID))
}

func (r *vocabRepo) AllEntries(ctx context.Context) ([]vocab.Entry, error) {
	return r.queryEntries(ctx, nil)
}

func (r *vocabRepo) queryEntries(ctx context.Context, where *entsql.Predicate) ([]vocab.Entry, error) {
	b := builder()
	sel := b.Select(vocabularyColumns...).From(b.Table(tableVocabulary))
	if where != nil {
		sel = sel.Where(where)
	}
	query, args := sel.OrderBy("lesson_id", "position").Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var out []vocab.Entry
	for rows.Next() {
		var e vocab.Entry
		var pos int
		if err := rows.Scan(&e.ID, &e.LessonID, &pos, &e.SourceWord, &e.TargetWord, &e.Pronunciation,
			&e.WordType, &e.ExampleSource, &e.ExampleTarget, &e.AudioURL); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *vocabRepo) UpdateExamples(ctx context.Context, entryID, source, target string) error {
	query, args := builder().Update(tableVocabulary).
		Set("example_source", source).
		Set("example_target", target).
		Where(entsql.EQ("id", entryID)).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update examples for %s: %w", entryID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("entry %s: %w", entryID, ErrNotFound)
	}
	return nil
}
