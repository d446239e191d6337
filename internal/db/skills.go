package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/career-recommender/internal/types"
)

// UpsertUserSkill records a skill for a user. The unique (user_id, skill_id)
// constraint keeps one row per skill; a repeat add updates level and years.
func (db *DB) UpsertUserSkill(ctx context.Context, userID uuid.UUID, skillID string, level types.Level, years float64) (*UserSkill, error) {
	var s UserSkill
	err := db.pool.QueryRow(ctx,
		`INSERT INTO user_skills (user_id, skill_id, level, years_experience)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, skill_id) DO UPDATE SET
		   level = EXCLUDED.level,
		   years_experience = EXCLUDED.years_experience,
		   updated_at = NOW()
		 RETURNING id, user_id, skill_id, level, years_experience, created_at, updated_at`,
		userID, skillID, string(level), years,
	).Scan(&s.ID, &s.UserID, &s.SkillID, &s.Level, &s.YearsExperience, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert skill %s: %w", skillID, err)
	}
	return &s, nil
}

// ListUserSkills returns a user's skills ordered by skill id.
func (db *DB) ListUserSkills(ctx context.Context, userID uuid.UUID) ([]UserSkill, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, skill_id, level, years_experience, created_at, updated_at
		 FROM user_skills WHERE user_id = $1 ORDER BY skill_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}

	skills, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (UserSkill, error) {
		var s UserSkill
		err := row.Scan(&s.ID, &s.UserID, &s.SkillID, &s.Level, &s.YearsExperience, &s.CreatedAt, &s.UpdatedAt)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan skills: %w", err)
	}
	return skills, nil
}

// DeleteUserSkill removes one skill and reports whether a row existed.
func (db *DB) DeleteUserSkill(ctx context.Context, userID uuid.UUID, skillID string) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM user_skills WHERE user_id = $1 AND skill_id = $2`,
		userID, skillID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete skill %s: %w", skillID, err)
	}
	return tag.RowsAffected() > 0, nil
}
