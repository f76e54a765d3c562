package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Timestamps are stored as Unix nanoseconds (UTC).
var schema = []string{
	`CREATE TABLE IF NOT EXISTS students (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		subjects TEXT NOT NULL DEFAULT '[]',
		progress TEXT NOT NULL DEFAULT '{}',
		preferred_exercise_type TEXT NOT NULL DEFAULT '',
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS assessment_records (
		id TEXT PRIMARY KEY,
		sequence INTEGER NOT NULL UNIQUE,
		student_id TEXT NOT NULL,
		subject TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		current_level REAL NOT NULL,
		tier TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_assessment_student_subject
		ON assessment_records (student_id, subject, sequence)`,
	`CREATE TABLE IF NOT EXISTS assessment_skills (
		record_id TEXT NOT NULL REFERENCES assessment_records(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		skill_id TEXT NOT NULL,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		gap_level REAL NOT NULL,
		level TEXT NOT NULL,
		PRIMARY KEY (record_id, position)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_assessment_skills_skill
		ON assessment_skills (skill_id)`,
	`CREATE TABLE IF NOT EXISTS learning_history (
		student_id TEXT NOT NULL,
		subject TEXT NOT NULL,
		skill_id TEXT NOT NULL,
		attempts INTEGER NOT NULL,
		completions TEXT NOT NULL,
		average_completion REAL NOT NULL,
		last_attempt INTEGER NOT NULL,
		feedback TEXT NOT NULL,
		PRIMARY KEY (student_id, subject, skill_id)
	)`,
	`CREATE TABLE IF NOT EXISTS progress_records (
		id TEXT PRIMARY KEY,
		sequence INTEGER NOT NULL UNIQUE,
		student_id TEXT NOT NULL,
		exercise_id TEXT NOT NULL,
		skill_id TEXT NOT NULL,
		skill_name TEXT NOT NULL,
		subject TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		completion REAL NOT NULL,
		feedback TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS skill_progress_records (
		id TEXT PRIMARY KEY,
		sequence INTEGER NOT NULL UNIQUE,
		student_id TEXT NOT NULL,
		skill_id TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		exercise_count INTEGER NOT NULL,
		average_score REAL NOT NULL,
		progress_level REAL NOT NULL,
		exercise_ids TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL,
		output_tokens INTEGER NOT NULL,
		latency_ms INTEGER NOT NULL,
		success INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
