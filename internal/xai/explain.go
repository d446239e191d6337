// Package xai turns a match result into an attributable explanation: per-skill
// contributions, a coverage-based confidence, and a counterfactual showing which
// missing skills would lift the score into the next tone bucket.
package xai

import (
	"sort"

	"github.com/jonathan/career-recommender/internal/reasoning"
	"github.com/jonathan/career-recommender/internal/types"
)

// GenerateExplanation builds the structured explanation for result.
// The reasoning text is carried through unchanged.
func GenerateExplanation(result *types.MatchResult, reasoningText string) types.Explanation {
	explanation := types.Explanation{
		Score:                result.Score,
		Tone:                 reasoning.ToneFor(result.Score),
		ReasoningText:        reasoningText,
		FeatureContributions: FeatureContributions(result),
	}

	explanation.Coverage = Coverage(result)
	explanation.Confidence = explanation.Coverage
	explanation.Counterfactual = Counterfactual(result)
	return explanation
}

// FeatureContributions attributes the score to individual skills in score points.
// Matched skills carry +contribution/total*100; missing skills carry the points they
// would add at full credit as a negative value. Sorted by signed value desc, stable.
func FeatureContributions(result *types.MatchResult) []types.FeatureContribution {
	features := make([]types.FeatureContribution, 0, len(result.Matched)+len(result.Missing))
	if result.TotalWeight <= 0 {
		return features
	}

	for _, m := range result.Matched {
		features = append(features, types.FeatureContribution{
			SkillID:      m.SkillID,
			Contribution: m.Contribution / result.TotalWeight * 100,
			Direction:    types.DirectionPositive,
		})
	}
	for _, m := range result.Missing {
		features = append(features, types.FeatureContribution{
			SkillID:      m.SkillID,
			Contribution: -m.Weight / result.TotalWeight * 100,
			Direction:    types.DirectionNegative,
		})
	}

	sort.SliceStable(features, func(i, j int) bool {
		return types.Greater(features[i].Contribution, features[j].Contribution)
	})
	return features
}

// Coverage is the fraction of requirements the user has any recorded skill for,
// whether or not the level is adequate. It is 0 for a job without requirements.
func Coverage(result *types.MatchResult) float64 {
	if result.RequirementCount <= 0 {
		return 0
	}
	coverage := float64(result.Held) / float64(result.RequirementCount)
	if coverage > 1 {
		return 1
	}
	return coverage
}

// NextThreshold returns the lower bound of the tone bucket above score, or false
// when score is already in the top bucket.
func NextThreshold(score float64) (float64, bool) {
	switch {
	case score < reasoning.ModerateThreshold:
		return reasoning.ModerateThreshold, true
	case score < reasoning.StrongThreshold:
		return reasoning.StrongThreshold, true
	default:
		return 0, false
	}
}

// Counterfactual picks missing skills, heaviest first, until satisfying them at expert
// level would lift the score to the next tone threshold. Returns nil when the score is
// already in the top bucket, nothing is missing, or the result is degenerate.
//
// This is greedy and not an exact minimum-weight subset-sum; heaviest-first reaches the
// threshold with the fewest skills, which may overshoot a lighter exact combination.
// Reached is false when every missing skill together still falls short.
func Counterfactual(result *types.MatchResult) *types.Counterfactual {
	if result.Degenerate || result.TotalWeight <= 0 || len(result.Missing) == 0 {
		return nil
	}
	threshold, ok := NextThreshold(result.Score)
	if !ok {
		return nil
	}

	candidates := append([]types.MissingSkill(nil), result.Missing...)
	sort.SliceStable(candidates, func(i, j int) bool {
		return types.Greater(candidates[i].Weight, candidates[j].Weight)
	})

	cf := &types.Counterfactual{
		Skills:            []string{},
		HypotheticalScore: result.Score,
		TargetThreshold:   threshold,
	}
	for _, m := range candidates {
		cf.Skills = append(cf.Skills, m.SkillID)
		cf.AddedWeight += m.Weight
		cf.HypotheticalScore = min(100, result.Score+cf.AddedWeight/result.TotalWeight*100)
		if cf.HypotheticalScore >= threshold {
			cf.Reached = true
			break
		}
	}
	return cf
}
