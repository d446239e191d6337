package server

import (
	"math"
	"net/http"

	"github.com/jonathan/career-recommender/internal/db"
	"github.com/jonathan/career-recommender/internal/types"
)

const (
	summaryRecommendations = 5
	statsRecommendations   = 10
	// minSkillsForProgress is the skill count below which users are nudged to add more.
	minSkillsForProgress = 5
)

// Progress hints, in the order they are suggested.
const (
	hintCompleteProfile = "Complete your profile information"
	hintAddSkills       = "Add more skills to your profile"
	hintRecommendations = "Get personalized career recommendations"
)

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func (s *Server) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	snap, err := s.loadSnapshot(r.Context(), userID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	recs, err := s.rank(db.CoreSkills(snap.Skills), summaryRecommendations)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	skillIDs := make([]string, 0, len(snap.Skills))
	for _, row := range snap.Skills {
		skillIDs = append(skillIDs, row.SkillID)
	}
	profile := map[string]any{
		"completeness":     snap.Profile.Completeness(),
		"education":        nil,
		"experience_years": 0.0,
	}
	if snap.Profile != nil {
		profile["education"] = snap.Profile.EducationLevel
		profile["experience_years"] = snap.Profile.ExperienceYears
	}
	top := map[string]any{
		"total_count":         len(recs),
		"top_match_job":       nil,
		"top_match_score":     0.0,
		"top_recommendations": recs,
	}
	if len(recs) > 0 {
		top["top_match_job"] = recs[0].Title
		top["top_match_score"] = round1(recs[0].MatchScore)
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"user":            snap.User,
		"profile":         profile,
		"skills":          map[string]any{"total_count": len(snap.Skills), "skill_list": skillIDs},
		"recommendations": top,
	})
}

func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	snap, err := s.loadSnapshot(r.Context(), userID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	recs, err := s.rank(db.CoreSkills(snap.Skills), statsRecommendations)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	distribution := map[types.Level]int{
		types.LevelExpert:       0,
		types.LevelIntermediate: 0,
		types.LevelBeginner:     0,
	}
	for _, row := range snap.Skills {
		distribution[row.Level]++
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	total := 0.0
	for _, rec := range recs {
		sums[rec.Domain] += rec.MatchScore
		counts[rec.Domain]++
		total += rec.MatchScore
	}
	domainScores := make(map[string]float64, len(sums))
	for domain, sum := range sums {
		domainScores[domain] = round1(sum / float64(counts[domain]))
	}
	average := 0.0
	if len(recs) > 0 {
		average = round1(total / float64(len(recs)))
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"profile_completion":   snap.Profile.Completeness(),
		"total_skills":         len(snap.Skills),
		"skill_distribution":   distribution,
		"domain_scores":        domainScores,
		"job_count":            s.catalog.Len(),
		"recommendation_count": len(recs),
		"average_match_score":  average,
	})
}

// progressHints lists the next steps for a user.
func progressHints(profile *db.Profile, skillCount int) []string {
	hints := []string{}
	if profile.Completeness() < 100 {
		hints = append(hints, hintCompleteProfile)
	}
	if skillCount < minSkillsForProgress {
		hints = append(hints, hintAddSkills)
	}
	return append(hints, hintRecommendations)
}

func (s *Server) handleDashboardProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	snap, err := s.loadSnapshot(r.Context(), userID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"profile_completeness": snap.Profile.Completeness(),
		"skill_count":          len(snap.Skills),
		"next_steps":           progressHints(snap.Profile, len(snap.Skills)),
	})
}
