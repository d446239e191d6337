package matching

import (
	"testing"

	"github.com/jonathan/career-recommender/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticJobs is an in-memory JobSource for tests.
type staticJobs []*types.JobProfile

func (s staticJobs) Job(id int) (*types.JobProfile, bool) {
	for _, j := range s {
		if j.ID == id {
			return j, true
		}
	}
	return nil, false
}

func (s staticJobs) Jobs() []*types.JobProfile {
	return append([]*types.JobProfile(nil), s...)
}

func rankingCatalog() staticJobs {
	req := func(id string, w float64) types.SkillRequirement {
		return types.SkillRequirement{SkillID: id, Weight: w, MinLevel: types.LevelBeginner}
	}
	return staticJobs{
		{ID: 1, Title: "Zeta Engineer", MarketDemand: types.DemandLow, Requirements: []types.SkillRequirement{req("go", 1)}},
		{ID: 2, Title: "Alpha Engineer", MarketDemand: types.DemandLow, Requirements: []types.SkillRequirement{req("go", 1)}},
		{ID: 3, Title: "Mid Engineer", MarketDemand: types.DemandHigh, Requirements: []types.SkillRequirement{req("go", 1)}},
		{ID: 4, Title: "Half Engineer", MarketDemand: types.DemandHigh, Requirements: []types.SkillRequirement{req("go", 0.5), req("rust", 0.5)}},
		{ID: 5, Title: "Nothing Engineer", MarketDemand: types.DemandMedium, Requirements: []types.SkillRequirement{req("cobol", 1)}},
	}
}

func TestEngine_JobNotFound(t *testing.T) {
	engine := NewEngine(rankingCatalog(), testNormalizer())

	_, err := engine.Match(nil, 999)
	require.Error(t, err)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, 999, nf.ID)
	assert.Equal(t, "job not found: 999", err.Error())
}

func TestEngine_SubOperations(t *testing.T) {
	engine := NewEngine(rankingCatalog(), testNormalizer())
	userSkills := []types.UserSkill{{SkillID: "golang", Level: types.LevelExpert}}

	score, err := engine.CalculateMatchScore(userSkills, 4)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, score, 1e-9)

	matched, err := engine.GetMatchedSkills(userSkills, 4)
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "go", matched[0].SkillID)

	missing, err := engine.GetMissingSkills(userSkills, 4)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, "rust", missing[0].SkillID)
}

func TestEngine_GetAllRecommendations_Ordering(t *testing.T) {
	engine := NewEngine(rankingCatalog(), testNormalizer())
	userSkills := []types.UserSkill{{SkillID: "go", Level: types.LevelExpert}}

	ranked, err := engine.GetAllRecommendations(userSkills, 0)
	require.NoError(t, err)
	require.Len(t, ranked, 5)

	ids := make([]int, len(ranked))
	for i, r := range ranked {
		ids[i] = r.Job.ID
	}
	// 100: high demand first, then low demand by title; then 50; then 0.
	assert.Equal(t, []int{3, 2, 1, 4, 5}, ids)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestEngine_GetAllRecommendations_RoundedScoresTie(t *testing.T) {
	jobs := staticJobs{
		{ID: 1, Title: "Backend Engineer", MarketDemand: types.DemandLow, Requirements: []types.SkillRequirement{
			{SkillID: "go", Weight: 0.1, MinLevel: types.LevelBeginner},
			{SkillID: "sql", Weight: 0.2, MinLevel: types.LevelBeginner},
			{SkillID: "rust", Weight: 0.7, MinLevel: types.LevelBeginner},
		}},
		{ID: 2, Title: "Systems Engineer", MarketDemand: types.DemandHigh, Requirements: []types.SkillRequirement{
			{SkillID: "go", Weight: 0.3, MinLevel: types.LevelBeginner},
			{SkillID: "rust", Weight: 0.7, MinLevel: types.LevelBeginner},
		}},
	}
	engine := NewEngine(jobs, testNormalizer())
	userSkills := []types.UserSkill{
		{SkillID: "go", Level: types.LevelExpert},
		{SkillID: "sql", Level: types.LevelExpert},
	}

	ranked, err := engine.GetAllRecommendations(userSkills, 0)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	// 0.1+0.2 and 0.3 both score 30 but differ in the last bit.
	assert.InDelta(t, ranked[0].Score, ranked[1].Score, types.ScoreTolerance)
	assert.Equal(t, 2, ranked[0].Job.ID, "equal scores fall through to market demand")
	assert.Equal(t, 1, ranked[1].Job.ID)
}

func TestEngine_GetAllRecommendations_Limit(t *testing.T) {
	engine := NewEngine(rankingCatalog(), testNormalizer())

	ranked, err := engine.GetAllRecommendations([]types.UserSkill{{SkillID: "go", Level: types.LevelExpert}}, 2)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, 3, ranked[0].Job.ID)
	assert.Equal(t, 2, ranked[1].Job.ID)
}

func TestEngine_GetAllRecommendations_InvalidSkill(t *testing.T) {
	engine := NewEngine(rankingCatalog(), testNormalizer())

	_, err := engine.GetAllRecommendations([]types.UserSkill{{SkillID: "go", Level: "pro"}}, 10)
	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)
}
