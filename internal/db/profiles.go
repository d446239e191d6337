package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UpsertProfile creates or replaces the manual profile of p.UserID.
func (db *DB) UpsertProfile(ctx context.Context, p *Profile) (*Profile, error) {
	var out Profile
	err := db.pool.QueryRow(ctx,
		`INSERT INTO profiles (user_id, education_level, branch, experience_years, preferred_domains)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id) DO UPDATE SET
		   education_level = EXCLUDED.education_level,
		   branch = EXCLUDED.branch,
		   experience_years = EXCLUDED.experience_years,
		   preferred_domains = EXCLUDED.preferred_domains,
		   updated_at = NOW()
		 RETURNING user_id, education_level, branch, experience_years, preferred_domains, created_at, updated_at`,
		p.UserID, p.EducationLevel, p.Branch, p.ExperienceYears, p.PreferredDomains,
	).Scan(&out.UserID, &out.EducationLevel, &out.Branch, &out.ExperienceYears, &out.PreferredDomains, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return &out, nil
}

// GetProfile returns the profile of userID, or nil, nil when none exists.
func (db *DB) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	var p Profile
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, education_level, branch, experience_years, preferred_domains, created_at, updated_at
		 FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.EducationLevel, &p.Branch, &p.ExperienceYears, &p.PreferredDomains, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}
