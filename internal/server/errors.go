package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/career-recommender/internal/matching"
	"github.com/jonathan/career-recommender/internal/resume"
	"github.com/jonathan/career-recommender/internal/skills"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrSkillNotFound indicates the user has no such skill
type ErrSkillNotFound struct {
	Skill string
}

func (e *ErrSkillNotFound) Error() string {
	return fmt.Sprintf("skill not found: %s", e.Skill)
}

// ErrResumeNotFound indicates no resume has been uploaded yet
type ErrResumeNotFound struct{}

func (e *ErrResumeNotFound) Error() string {
	return "no resume uploaded"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error. Wrapped
// errors are unwrapped.
func HTTPStatus(err error) int {
	var (
		emailExists   *ErrEmailAlreadyExists
		invalidCreds  *ErrInvalidCredentials
		userNotFound  *ErrUserNotFound
		skillNotFound *ErrSkillNotFound
		noResume      *ErrResumeNotFound
		noProfile     *ErrProfileNotFound
		validation    *ErrValidation
		jobNotFound   *matching.NotFoundError
		matchInput    *matching.ValidationError
		badLevel      *skills.LevelError
	)
	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.As(err, &emailExists):
		return http.StatusConflict
	case errors.As(err, &invalidCreds):
		return http.StatusUnauthorized
	case errors.As(err, &userNotFound), errors.As(err, &skillNotFound),
		errors.As(err, &noResume), errors.As(err, &noProfile), errors.As(err, &jobNotFound):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &matchInput), errors.As(err, &badLevel),
		errors.Is(err, resume.ErrUnsupportedFileType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrProfileNotFound indicates the user has not entered a profile yet
type ErrProfileNotFound struct{}

func (e *ErrProfileNotFound) Error() string {
	return "profile not found"
}
