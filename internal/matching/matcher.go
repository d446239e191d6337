// Package matching scores a user's skills against job skill requirements.
package matching

import (
	"fmt"
	"math"

	"github.com/jonathan/career-recommender/internal/skills"
	"github.com/jonathan/career-recommender/internal/types"
)

// Partial credit granted when the user is exactly one level below the requirement.
const oneLevelBelowFactor = 0.5

// LevelFactor returns the level-adequacy factor for holding `have` against a requirement of `need`:
// 1.0 at or above, 0.5 one level below, 0 otherwise. An unset requirement level counts as beginner.
func LevelFactor(have, need types.Level) float64 {
	haveRank := skills.Rank(have)
	needRank := skills.Rank(need)
	if needRank == 0 {
		needRank = skills.Rank(types.LevelBeginner)
	}
	if haveRank == 0 {
		return 0
	}
	switch gap := needRank - haveRank; {
	case gap <= 0:
		return 1.0
	case gap == 1:
		return oneLevelBelowFactor
	default:
		return 0
	}
}

// Match computes the match result of userSkills against job.
//
// Requirements are walked in stored order so Matched and Missing are reproducible.
// Any factor above zero counts as matched, with contribution weight*factor; a factor of
// zero or an absent skill counts as missing with the full weight. A job without
// requirements or weight yields Score 0 and Degenerate set, not an error.
func Match(userSkills []types.UserSkill, job *types.JobProfile, norm *skills.Normalizer) (*types.MatchResult, error) {
	if job == nil {
		return nil, &ValidationError{Field: "job", Message: "job is required"}
	}
	held, err := indexUserSkills(userSkills, norm)
	if err != nil {
		return nil, err
	}

	result := &types.MatchResult{
		JobID:            job.ID,
		Matched:          []types.MatchedSkill{},
		Missing:          []types.MissingSkill{},
		RequirementCount: len(job.Requirements),
	}

	earned := 0.0
	for _, req := range job.Requirements {
		result.TotalWeight += req.Weight

		id := norm.Normalize(req.SkillID)
		if id == "" {
			// Not evaluable; still part of the total weight.
			continue
		}
		result.Evaluated++

		factor := 0.0
		if us, ok := held[id]; ok {
			result.Held++
			factor = LevelFactor(us.Level, req.MinLevel)
		}

		if factor > 0 {
			contribution := req.Weight * factor
			earned += contribution
			result.Matched = append(result.Matched, types.MatchedSkill{
				SkillID:      id,
				Weight:       req.Weight,
				Factor:       factor,
				Contribution: contribution,
			})
			continue
		}

		result.Missing = append(result.Missing, types.MissingSkill{
			SkillID:  id,
			Weight:   req.Weight,
			MinLevel: req.MinLevel,
		})
	}

	if result.RequirementCount == 0 || result.TotalWeight <= 0 {
		result.Degenerate = true
		result.Score = 0
		return result, nil
	}

	result.Score = math.Max(0, math.Min(100, 100*earned/result.TotalWeight))
	return result, nil
}

// indexUserSkills validates user skills and indexes them by normalized id.
// When the same skill appears twice, the higher level wins.
func indexUserSkills(userSkills []types.UserSkill, norm *skills.Normalizer) (map[string]types.UserSkill, error) {
	held := make(map[string]types.UserSkill, len(userSkills))
	for i, us := range userSkills {
		if !skills.ValidLevel(us.Level) {
			return nil, &ValidationError{
				Field:   fmt.Sprintf("skills[%d].level", i),
				Message: fmt.Sprintf("unrecognized level %q", us.Level),
			}
		}
		if us.YearsExperience < 0 || math.IsNaN(us.YearsExperience) {
			return nil, &ValidationError{
				Field:   fmt.Sprintf("skills[%d].years_experience", i),
				Message: "must be non-negative",
			}
		}

		id := norm.Normalize(us.SkillID)
		if id == "" {
			continue
		}
		us.SkillID = id
		if existing, ok := held[id]; ok && skills.Rank(existing.Level) >= skills.Rank(us.Level) {
			continue
		}
		held[id] = us
	}
	return held, nil
}
