package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names shared by the repos.
const (
	tablePacks      = "packs"
	tableLessons    = "lessons"
	tableVocabulary = "vocabulary"
	tableMastery    = "mastery_records"
	tableSessions   = "session_events"
	tableAnswers    = "answer_events"
	tableBadges     = "badge_events"
	tableLLM        = "llm_request_events"
)

func col(name string, typ field.Type) *schema.Column {
	return &schema.Column{Name: name, Type: typ}
}

func idColumn() *schema.Column {
	return &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
}

// eventTable builds an append-only event table. Every event carries the
// global sequence number and a millisecond UTC timestamp.
func eventTable(name string, fields ...*schema.Column) *schema.Table {
	id := idColumn()
	seq := &schema.Column{Name: "sequence", Type: field.TypeInt64, Unique: true}
	ts := col("timestamp", field.TypeInt64)

	columns := append([]*schema.Column{id, seq, ts}, fields...)
	return &schema.Table{
		Name:       name,
		Columns:    columns,
		PrimaryKey: []*schema.Column{id},
		Indexes: []*schema.Index{
			{Name: name + "_timestamp", Columns: []*schema.Column{ts}},
		},
	}
}

func packsTable() *schema.Table {
	name := &schema.Column{Name: "name", Type: field.TypeString, Unique: true}
	return &schema.Table{
		Name: tablePacks,
		Columns: []*schema.Column{
			name,
			col("version", field.TypeString),
			col("language_code", field.TypeString),
			col("language_name", field.TypeString),
			col("native_name", field.TypeString),
			col("flag", field.TypeString),
			col("imported_at", field.TypeInt64),
		},
		PrimaryKey: []*schema.Column{name},
	}
}

func lessonsTable() *schema.Table {
	id := &schema.Column{Name: "id", Type: field.TypeString, Unique: true}
	pack := col("pack_name", field.TypeString)
	order := col("order_index", field.TypeInt)
	return &schema.Table{
		Name: tableLessons,
		Columns: []*schema.Column{
			id,
			pack,
			col("title", field.TypeString),
			col("description", field.TypeString),
			order,
			col("difficulty", field.TypeInt),
			col("estimated_minutes", field.TypeInt),
		},
		PrimaryKey: []*schema.Column{id},
		Indexes: []*schema.Index{
			{Name: "lessons_pack_order", Columns: []*schema.Column{pack, order}},
		},
	}
}

func vocabularyTable() *schema.Table {
	id := &schema.Column{Name: "id", Type: field.TypeString, Unique: true}
	lesson := col("lesson_id", field.TypeString)
	return &schema.Table{
		Name: tableVocabulary,
		Columns: []*schema.Column{
			id,
			lesson,
			col("position", field.TypeInt),
			col("source_word", field.TypeString),
			col("target_word", field.TypeString),
			col("pronunciation", field.TypeString),
			col("word_type", field.TypeString),
			col("example_source", field.TypeString),
			col("example_target", field.TypeString),
			col("audio_url", field.TypeString),
		},
		PrimaryKey: []*schema.Column{id},
		Indexes: []*schema.Index{
			{Name: "vocabulary_lesson", Columns: []*schema.Column{lesson}},
		},
	}
}

func masteryTable() *schema.Table {
	id := idColumn()
	user := col("user_id", field.TypeString)
	vocab := col("vocabulary_id", field.TypeString)
	next := col("next_review_at", field.TypeInt64)
	return &schema.Table{
		Name: tableMastery,
		Columns: []*schema.Column{
			id,
			user,
			vocab,
			col("total_attempts", field.TypeInt),
			col("correct_answers", field.TypeInt),
			col("level", field.TypeInt),
			col("last_reviewed_at", field.TypeInt64),
			next,
		},
		PrimaryKey: []*schema.Column{id},
		Indexes: []*schema.Index{
			{Name: "mastery_user_vocabulary", Unique: true, Columns: []*schema.Column{user, vocab}},
			{Name: "mastery_user_next_review", Columns: []*schema.Column{user, next}},
		},
	}
}

// Tables returns every table the store manages, in creation order.
func Tables() []*schema.Table {
	return []*schema.Table{
		packsTable(),
		lessonsTable(),
		vocabularyTable(),
		masteryTable(),
		eventTable(tableSessions,
			col("session_id", field.TypeString),
			col("action", field.TypeString),
			col("policy", field.TypeString),
			col("questions", field.TypeInt),
			col("correct_answers", field.TypeInt),
			col("duration_secs", field.TypeInt),
			col("points", field.TypeInt),
		),
		eventTable(tableAnswers,
			col("session_id", field.TypeString),
			col("question_id", field.TypeString),
			col("vocabulary_id", field.TypeString),
			col("question_type", field.TypeString),
			col("prompt", field.TypeString),
			col("expected", field.TypeString),
			col("learner_answer", field.TypeString),
			col("correct", field.TypeBool),
			col("elapsed_secs", field.TypeFloat64),
			col("attempts", field.TypeInt),
			col("level_before", field.TypeInt),
			col("level_after", field.TypeInt),
			col("diagnosis", field.TypeString),
		),
		eventTable(tableBadges,
			col("badge_type", field.TypeString),
			col("rarity", field.TypeString),
			col("session_id", field.TypeString),
			col("vocabulary_id", field.TypeString),
			col("word", field.TypeString),
			col("reason", field.TypeString),
		),
		eventTable(tableLLM,
			col("provider", field.TypeString),
			col("model", field.TypeString),
			col("purpose", field.TypeString),
			col("input_tokens", field.TypeInt),
			col("output_tokens", field.TypeInt),
			col("latency_ms", field.TypeInt64),
			col("success", field.TypeBool),
			col("error_message", field.TypeString),
		),
	}
}
