package server

import (
	"context"
	"net/http"
	"net/url"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jonathan/career-recommender/internal/catalog"
	"github.com/jonathan/career-recommender/internal/db"
	"github.com/jonathan/career-recommender/internal/server/middleware"
	"github.com/jonathan/career-recommender/internal/skills"
	"github.com/jonathan/career-recommender/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// snapshot is everything stored about a user that the profile and dashboard read.
type snapshot struct {
	User    *types.User
	Profile *db.Profile
	Skills  []db.UserSkill
}

// loadSnapshot fetches the user, profile and skills concurrently.
func (s *Server) loadSnapshot(ctx context.Context, userID uuid.UUID) (*snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		user, err := s.users.GetUser(gctx, userID)
		snap.User = user
		return err
	})
	g.Go(func() error {
		profile, err := s.store.GetProfile(gctx, userID)
		snap.Profile = profile
		return err
	})
	g.Go(func() error {
		rows, err := s.store.ListUserSkills(gctx, userID)
		snap.Skills = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if snap.Skills == nil {
		snap.Skills = []db.UserSkill{}
	}
	return &snap, nil
}

// requireUser returns the authenticated user id, writing a 401 when absent.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	snap, err := s.loadSnapshot(r.Context(), userID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if snap.Profile == nil {
		writeError(w, s.logger, &ErrProfileNotFound{})
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"user":         snap.User,
		"profile":      snap.Profile,
		"completeness": snap.Profile.Completeness(),
		"skills":       snap.Skills,
	})
}

// handleUpsertProfile creates or replaces the manual profile. Preferred domains
// must be catalog domains.
func (s *Server) handleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	var req types.ManualProfileRequest
	if err := decodeJSON(r, s.validator, &req); err != nil {
		writeError(w, s.logger, err)
		return
	}

	known := s.catalog.Domains()
	domains := make([]string, 0, len(req.PreferredDomains))
	for _, raw := range req.PreferredDomains {
		d := catalog.NormalizeDomain(raw)
		if !slices.Contains(known, d) {
			writeError(w, s.logger, &ErrValidation{Field: "preferred_domains", Message: "unknown domain " + raw})
			return
		}
		if !slices.Contains(domains, d) {
			domains = append(domains, d)
		}
	}

	profile, err := s.store.UpsertProfile(r.Context(), &db.Profile{
		UserID:           userID,
		EducationLevel:   req.EducationLevel,
		Branch:           req.Branch,
		ExperienceYears:  req.ExperienceYears,
		PreferredDomains: db.StringArray(domains),
	})
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	jsonResponse(w, http.StatusCreated, map[string]any{
		"message":      "Profile saved",
		"profile":      profile,
		"completeness": profile.Completeness(),
	})
}

func (s *Server) handleListSkills(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	rows, err := s.store.ListUserSkills(r.Context(), userID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if rows == nil {
		rows = []db.UserSkill{}
	}
	jsonResponse(w, http.StatusOK, map[string]any{"skills": rows, "total": len(rows)})
}

// handleAddSkill stores a skill under its normalized id. Adding an existing
// skill updates its level and years.
func (s *Server) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	var req types.AddSkillRequest
	if err := decodeJSON(r, s.validator, &req); err != nil {
		writeError(w, s.logger, err)
		return
	}

	norm := s.engine.Normalizer()
	skillID := norm.Normalize(req.Skill)
	if skillID == "" {
		writeError(w, s.logger, &ErrValidation{Field: "skill_name", Message: "no usable skill name"})
		return
	}
	level := types.LevelIntermediate
	if req.Level != "" {
		parsed, err := skills.ParseLevel(req.Level)
		if err != nil {
			writeError(w, s.logger, err)
			return
		}
		level = parsed
	}

	row, err := s.store.UpsertUserSkill(r.Context(), userID, skillID, level, req.YearsExperience)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if !norm.Known(skillID) {
		s.logger.Debug("skill outside catalog vocabulary", zap.String("skill_id", skillID))
	}
	jsonResponse(w, http.StatusCreated, map[string]any{
		"message": "Skill added",
		"skill":   row,
		"known":   norm.Known(skillID),
	})
}

// handleDeleteSkill removes a skill given by raw or normalized name.
func (s *Server) handleDeleteSkill(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	raw, err := url.PathUnescape(chi.URLParam(r, "skill"))
	if err != nil {
		writeError(w, s.logger, &ErrValidation{Field: "skill", Message: "invalid escape"})
		return
	}
	skillID := s.engine.Normalizer().Normalize(raw)
	if skillID == "" {
		writeError(w, s.logger, &ErrSkillNotFound{Skill: raw})
		return
	}

	deleted, err := s.store.DeleteUserSkill(r.Context(), userID, skillID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if !deleted {
		writeError(w, s.logger, &ErrSkillNotFound{Skill: raw})
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "Skill removed", "skill_id": skillID})
}
