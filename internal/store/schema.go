package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Table names.
const (
	tableUsers        = "users"
	tableScores       = "scores"
	tableProfile      = "profile_entries"
	tableLLMEvents    = "llm_request_events"
	tableLessonEvents = "lesson_events"
	tableAchievements = "achievement_events"
)

// Timestamps are stored as Unix nanoseconds.
var ddl = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		display_name TEXT NOT NULL DEFAULT '',
		photo_url TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS scores (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		user_name TEXT NOT NULL DEFAULT '',
		topic TEXT NOT NULL,
		score INTEGER NOT NULL,
		total_questions INTEGER NOT NULL,
		percentage INTEGER NOT NULL,
		time_spent INTEGER NOT NULL,
		timestamp INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS scores_user_ts ON scores (user_id, timestamp DESC)`,
	`CREATE INDEX IF NOT EXISTS scores_rank ON scores (percentage DESC, time_spent ASC)`,
	`CREATE INDEX IF NOT EXISTS scores_topic_rank ON scores (topic, percentage DESC, time_spent ASC)`,
	`CREATE TABLE IF NOT EXISTS profile_entries (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		timestamp INTEGER NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success BOOLEAN NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS lesson_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		timestamp INTEGER NOT NULL,
		topic TEXT NOT NULL,
		insight_live BOOLEAN NOT NULL,
		text_live BOOLEAN NOT NULL,
		images_live BOOLEAN NOT NULL,
		fallback BOOLEAN NOT NULL,
		latency_ms INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS achievement_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		timestamp INTEGER NOT NULL,
		user_id TEXT NOT NULL,
		achievement TEXT NOT NULL,
		topic TEXT NOT NULL DEFAULT '',
		score_id TEXT NOT NULL DEFAULT ''
	)`,
}

// migrate creates any missing tables and indexes.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
