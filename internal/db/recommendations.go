package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/career-recommender/internal/types"
)

// UpsertRecommendation persists a computed recommendation. Concurrent writes for
// the same (user, job) are serialized by the unique constraint; the last one wins.
func (db *DB) UpsertRecommendation(ctx context.Context, userID uuid.UUID, rec *types.Recommendation) (time.Time, error) {
	var updatedAt time.Time
	err := db.pool.QueryRow(ctx,
		`INSERT INTO recommendations (user_id, job_id, match_score, matched_skills, missing_skills, reasoning, learning_path)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id, job_id) DO UPDATE SET
		   match_score = EXCLUDED.match_score,
		   matched_skills = EXCLUDED.matched_skills,
		   missing_skills = EXCLUDED.missing_skills,
		   reasoning = EXCLUDED.reasoning,
		   learning_path = EXCLUDED.learning_path,
		   updated_at = NOW()
		 RETURNING updated_at`,
		userID, rec.JobID, rec.MatchScore,
		StringArray(rec.MatchedSkills), StringArray(rec.MissingSkills),
		rec.Reasoning, RoadmapSteps(rec.LearningPath),
	).Scan(&updatedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to upsert recommendation for job %d: %w", rec.JobID, err)
	}
	return updatedAt, nil
}

func scanRecommendation(row pgx.Row) (*types.Recommendation, error) {
	var (
		rec     types.Recommendation
		userID  uuid.UUID
		matched StringArray
		missing StringArray
		path    RoadmapSteps
	)
	if err := row.Scan(&userID, &rec.JobID, &rec.MatchScore, &matched, &missing, &rec.Reasoning, &path, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	rec.UserID = userID.String()
	rec.MatchedSkills = []string(matched)
	rec.MissingSkills = []string(missing)
	rec.LearningPath = []types.RoadmapStep(path)
	return &rec, nil
}

const recommendationColumns = `user_id, job_id, match_score, matched_skills, missing_skills, reasoning, learning_path, updated_at`

// GetRecommendation returns the stored recommendation, or nil, nil.
func (db *DB) GetRecommendation(ctx context.Context, userID uuid.UUID, jobID int) (*types.Recommendation, error) {
	rec, err := scanRecommendation(db.pool.QueryRow(ctx,
		`SELECT `+recommendationColumns+` FROM recommendations WHERE user_id = $1 AND job_id = $2`,
		userID, jobID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recommendation: %w", err)
	}
	return rec, nil
}

// ListRecommendations returns stored recommendations, best score first.
func (db *DB) ListRecommendations(ctx context.Context, userID uuid.UUID, limit int) ([]types.Recommendation, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+recommendationColumns+` FROM recommendations
		 WHERE user_id = $1 ORDER BY match_score DESC, job_id ASC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	defer rows.Close()

	var recs []types.Recommendation
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}
