package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveResume stores the parsed resume, replacing the previous one.
func (db *DB) SaveResume(ctx context.Context, r *Resume) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO resumes (user_id, filename, file_type, parsed_text, detected_skills)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id) DO UPDATE SET
		   filename = EXCLUDED.filename,
		   file_type = EXCLUDED.file_type,
		   parsed_text = EXCLUDED.parsed_text,
		   detected_skills = EXCLUDED.detected_skills,
		   created_at = NOW()`,
		r.UserID, r.Filename, r.FileType, r.ParsedText, r.DetectedSkills,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	return nil
}

// GetResume returns the latest parsed resume of userID, or nil, nil.
func (db *DB) GetResume(ctx context.Context, userID uuid.UUID) (*Resume, error) {
	var r Resume
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, filename, file_type, parsed_text, detected_skills, created_at
		 FROM resumes WHERE user_id = $1`,
		userID,
	).Scan(&r.UserID, &r.Filename, &r.FileType, &r.ParsedText, &r.DetectedSkills, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return &r, nil
}
