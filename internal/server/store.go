package server

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-recommender/internal/db"
	"github.com/jonathan/career-recommender/internal/types"
)

// UserStore is the account persistence used by UserService.
type UserStore interface {
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
}

// Store is everything the handlers persist. *db.DB implements it.
type Store interface {
	UserStore

	Ping(ctx context.Context) error

	UpsertProfile(ctx context.Context, p *db.Profile) (*db.Profile, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*db.Profile, error)

	UpsertUserSkill(ctx context.Context, userID uuid.UUID, skillID string, level types.Level, years float64) (*db.UserSkill, error)
	ListUserSkills(ctx context.Context, userID uuid.UUID) ([]db.UserSkill, error)
	DeleteUserSkill(ctx context.Context, userID uuid.UUID, skillID string) (bool, error)

	SaveResume(ctx context.Context, r *db.Resume) error
	GetResume(ctx context.Context, userID uuid.UUID) (*db.Resume, error)

	UpsertRecommendation(ctx context.Context, userID uuid.UUID, rec *types.Recommendation) (time.Time, error)
	GetRecommendation(ctx context.Context, userID uuid.UUID, jobID int) (*types.Recommendation, error)
	ListRecommendations(ctx context.Context, userID uuid.UUID, limit int) ([]types.Recommendation, error)
}

var _ Store = (*db.DB)(nil)
