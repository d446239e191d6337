package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonathan/career-recommender/internal/db"
	"github.com/jonathan/career-recommender/internal/reasoning"
	"github.com/jonathan/career-recommender/internal/roadmap"
	"github.com/jonathan/career-recommender/internal/types"
	"github.com/jonathan/career-recommender/internal/xai"
	"go.uber.org/zap"
)

const (
	defaultRecommendationLimit = 10
	maxRecommendationLimit     = 50
)

// parseLimit reads ?limit=, defaulting to defaultRecommendationLimit.
func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultRecommendationLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > maxRecommendationLimit {
		return 0, &ErrValidation{Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", maxRecommendationLimit)}
	}
	return limit, nil
}

func (s *Server) userSkills(ctx context.Context, userID uuid.UUID) ([]types.UserSkill, error) {
	rows, err := s.store.ListUserSkills(ctx, userID)
	if err != nil {
		return nil, err
	}
	return db.CoreSkills(rows), nil
}

// rank scores every catalog job for the user and returns the best limit.
func (s *Server) rank(skillSet []types.UserSkill, limit int) ([]types.RecommendationSummary, error) {
	ranked, err := s.engine.GetAllRecommendations(skillSet, limit)
	if err != nil {
		return nil, err
	}
	out := make([]types.RecommendationSummary, 0, len(ranked))
	for _, rj := range ranked {
		s.metrics.ObserveMatch("list", rj.Score)
		out = append(out, types.RecommendationSummary{
			JobID:         rj.Job.ID,
			Title:         rj.Job.Title,
			Domain:        rj.Job.Domain,
			MarketDemand:  rj.Job.MarketDemand,
			AverageSalary: rj.Job.AverageSalary,
			MatchScore:    rj.Score,
		})
	}
	return out, nil
}

func (s *Server) handleListRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	skillSet, err := s.userSkills(r.Context(), userID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	recs, err := s.rank(skillSet, limit)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"recommendations": recs, "total": len(recs)})
}

// analyze runs matching, reasoning, explanation and roadmap for one job.
func (s *Server) analyze(ctx context.Context, userID uuid.UUID, jobID int, source string) (*types.RecommendationDetail, error) {
	job, err := s.engine.Job(jobID)
	if err != nil {
		return nil, err
	}
	skillSet, err := s.userSkills(ctx, userID)
	if err != nil {
		return nil, err
	}
	result, err := s.engine.Match(skillSet, jobID)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveMatch(source, result.Score)

	text := reasoning.GenerateReasoning(result.Matched, result.Missing, result.Score)
	steps := s.roadmaps.GenerateRoadmap(job.Domain, result.Missing)
	return &types.RecommendationDetail{
		Job:         job,
		Match:       result,
		Reasoning:   text,
		Explanation: xai.GenerateExplanation(result, text),
		Roadmap:     steps,
		TotalWeeks:  roadmap.TotalWeeks(steps),
	}, nil
}

// handleRecommendationDetail analyzes one job and persists the outcome.
func (s *Server) handleRecommendationDetail(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	jobID, err := pathJobID(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	detail, err := s.analyze(r.Context(), userID, jobID, "detail")
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	previous, err := s.store.GetRecommendation(r.Context(), userID, jobID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if previous != nil {
		score := previous.MatchScore
		detail.PreviousScore = &score
	}

	updatedAt, err := s.store.UpsertRecommendation(r.Context(), userID, &types.Recommendation{
		UserID:        userID.String(),
		JobID:         jobID,
		MatchScore:    detail.Match.Score,
		MatchedSkills: detail.Match.MatchedIDs(),
		MissingSkills: detail.Match.MissingIDs(),
		Reasoning:     detail.Reasoning,
		LearningPath:  detail.Roadmap,
	})
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	detail.UpdatedAt = updatedAt

	s.logger.Debug("recommendation stored",
		zap.String("user_id", userID.String()),
		zap.Int("job_id", jobID),
		zap.Float64("score", detail.Match.Score),
	)
	jsonResponse(w, http.StatusOK, detail)
}

func (s *Server) handleExplainRecommendation(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	jobID, err := pathJobID(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	detail, err := s.analyze(r.Context(), userID, jobID, "explain")
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"job_id":      jobID,
		"title":       detail.Job.Title,
		"explanation": detail.Explanation,
	})
}

func (s *Server) handleRecommendationRoadmap(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	jobID, err := pathJobID(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	detail, err := s.analyze(r.Context(), userID, jobID, "roadmap")
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	jsonResponse(w, http.StatusOK, types.RoadmapResponse{
		JobID:      jobID,
		Title:      detail.Job.Title,
		Domain:     detail.Job.Domain,
		MatchScore: detail.Match.Score,
		Steps:      detail.Roadmap,
		TotalWeeks: detail.TotalWeeks,
	})
}

// handleListSavedRecommendations lists previously analyzed jobs, best score first.
func (s *Server) handleListSavedRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	recs, err := s.store.ListRecommendations(r.Context(), userID, limit)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if recs == nil {
		recs = []types.Recommendation{}
	}
	jsonResponse(w, http.StatusOK, map[string]any{"recommendations": recs, "total": len(recs)})
}
