package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type assessmentRepo struct {
	db  dbtx
	seq *sequenceCounter
}

func (r *assessmentRepo) Append(ctx context.Context, rec *AssessmentRecord) error {
	// A record and its skills are written together.
	if db, ok := r.db.(*sql.DB); ok {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck

		if err := (&assessmentRepo{db: tx, seq: r.seq}).Append(ctx, rec); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit assessment record: %w", err)
		}
		return nil
	}

	seqNum, err := r.seq.Next(ctx, r.db)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO assessment_records
		(id, sequence, student_id, subject, timestamp, current_level, tier)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, seqNum, rec.StudentID, rec.Subject, toNanos(rec.Timestamp),
		rec.CurrentLevel, rec.Tier,
	)
	if err != nil {
		return fmt.Errorf("insert assessment record: %w", err)
	}

	for i := range rec.Skills {
		sk := &rec.Skills[i]
		sk.Position = i
		_, err = r.db.ExecContext(ctx, `INSERT INTO assessment_skills
			(record_id, position, skill_id, name, category, gap_level, level)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, i, sk.SkillID, sk.Name, sk.Category, sk.GapLevel, sk.Level,
		)
		if err != nil {
			return fmt.Errorf("insert assessed skill %q: %w", sk.SkillID, err)
		}
	}

	rec.Sequence = seqNum
	return nil
}

func (r *assessmentRepo) ListByStudent(ctx context.Context, studentID, subject string) ([]AssessmentRecord, error) {
	var w whereBuilder
	w.add("student_id = ?", studentID)
	if subject != "" {
		w.add("subject = ?", subject)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id, sequence, student_id, subject,
		timestamp, current_level, tier FROM assessment_records`+w.String()+
		` ORDER BY sequence`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("query assessment records: %w", err)
	}

	var (
		out   []AssessmentRecord
		index = map[string]int{}
	)
	for rows.Next() {
		var (
			rec AssessmentRecord
			ts  int64
		)
		if err := rows.Scan(&rec.ID, &rec.Sequence, &rec.StudentID, &rec.Subject,
			&ts, &rec.CurrentLevel, &rec.Tier); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan assessment record: %w", err)
		}
		rec.Timestamp = fromNanos(ts)
		index[rec.ID] = len(out)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate assessment records: %w", err)
	}
	rows.Close()

	if len(out) == 0 {
		return out, nil
	}

	skillRows, err := r.db.QueryContext(ctx, `SELECT s.record_id, s.position, s.skill_id,
		s.name, s.category, s.gap_level, s.level
		FROM assessment_skills s JOIN assessment_records r ON r.id = s.record_id`+
		w.String()+` ORDER BY r.sequence, s.position`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("query assessed skills: %w", err)
	}
	defer skillRows.Close()

	for skillRows.Next() {
		var (
			recordID string
			sk       AssessedSkill
		)
		if err := skillRows.Scan(&recordID, &sk.Position, &sk.SkillID, &sk.Name,
			&sk.Category, &sk.GapLevel, &sk.Level); err != nil {
			return nil, fmt.Errorf("scan assessed skill: %w", err)
		}
		if i, ok := index[recordID]; ok {
			out[i].Skills = append(out[i].Skills, sk)
		}
	}
	return out, skillRows.Err()
}

func (r *assessmentRepo) FirstSkillMatch(ctx context.Context, studentID, subject, skillID string) (*SkillMatch, error) {
	var w whereBuilder
	w.add("r.student_id = ?", studentID)
	if subject != "" {
		w.add("r.subject = ?", subject)
	}
	w.add("s.skill_id = ?", skillID)

	var m SkillMatch
	err := r.db.QueryRowContext(ctx, `SELECT r.id, r.sequence, r.subject,
		s.position, s.skill_id, s.name, s.category, s.gap_level, s.level
		FROM assessment_records r JOIN assessment_skills s ON s.record_id = r.id`+
		w.String()+` ORDER BY r.sequence, s.position LIMIT 1`, w.args...,
	).Scan(&m.RecordID, &m.Sequence, &m.Subject, &m.Skill.Position, &m.Skill.SkillID,
		&m.Skill.Name, &m.Skill.Category, &m.Skill.GapLevel, &m.Skill.Level)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find skill match: %w", err)
	}
	return &m, nil
}

func (r *assessmentRepo) UpdateSkillGap(ctx context.Context, recordID string, position int, gap float64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE assessment_skills SET gap_level = ? WHERE record_id = ? AND position = ?`,
		gap, recordID, position)
	if err != nil {
		return fmt.Errorf("update skill gap: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update skill gap: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update skill gap: no skill at %s[%d]", recordID, position)
	}
	return nil
}
