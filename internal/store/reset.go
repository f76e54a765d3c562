package store

import (
	"context"
	"fmt"
)

// studentTables lists the tables holding per-student rows, children first.
// foreign_keys is a per-connection pragma, so cascades are not relied on.
var studentTables = []string{
	"assessment_skills",
	"assessment_records",
	"learning_history",
	"progress_records",
	"skill_progress_records",
}

// DeleteStudent removes the student and every record kept for them in a
// single transaction. It reports whether a profile existed.
func (s *Store) DeleteStudent(ctx context.Context, id string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, table := range studentTables {
		where := "student_id = ?"
		if table == "assessment_skills" {
			where = "record_id IN (SELECT id FROM assessment_records WHERE student_id = ?)"
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE "+where, id); err != nil {
			return false, fmt.Errorf("delete from %s: %w", table, err)
		}
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM students WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete student: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete student: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return n > 0, nil
}
