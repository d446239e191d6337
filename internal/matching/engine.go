package matching

import (
	"sort"

	"github.com/jonathan/career-recommender/internal/skills"
	"github.com/jonathan/career-recommender/internal/types"
)

// JobSource provides read-only access to the job catalog.
type JobSource interface {
	Job(id int) (*types.JobProfile, bool)
	Jobs() []*types.JobProfile
}

// Engine answers match queries against a fixed job catalog.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	jobs       JobSource
	normalizer *skills.Normalizer
}

// NewEngine creates an Engine over the given catalog and normalizer.
func NewEngine(jobs JobSource, normalizer *skills.Normalizer) *Engine {
	return &Engine{
		jobs:       jobs,
		normalizer: normalizer,
	}
}

// Normalizer returns the normalizer the engine matches with.
func (e *Engine) Normalizer() *skills.Normalizer {
	return e.normalizer
}

// Job returns the job with the given id, or a NotFoundError.
func (e *Engine) Job(jobID int) (*types.JobProfile, error) {
	job, ok := e.jobs.Job(jobID)
	if !ok {
		return nil, &NotFoundError{Resource: "job", ID: jobID}
	}
	return job, nil
}

// Match matches userSkills against the job with the given id.
func (e *Engine) Match(userSkills []types.UserSkill, jobID int) (*types.MatchResult, error) {
	job, err := e.Job(jobID)
	if err != nil {
		return nil, err
	}
	return Match(userSkills, job, e.normalizer)
}

// CalculateMatchScore returns only the score for the job.
func (e *Engine) CalculateMatchScore(userSkills []types.UserSkill, jobID int) (float64, error) {
	result, err := e.Match(userSkills, jobID)
	if err != nil {
		return 0, err
	}
	return result.Score, nil
}

// GetMatchedSkills returns the matched requirements in the job's requirement order.
func (e *Engine) GetMatchedSkills(userSkills []types.UserSkill, jobID int) ([]types.MatchedSkill, error) {
	result, err := e.Match(userSkills, jobID)
	if err != nil {
		return nil, err
	}
	return result.Matched, nil
}

// GetMissingSkills returns the missing requirements in the job's requirement order.
func (e *Engine) GetMissingSkills(userSkills []types.UserSkill, jobID int) ([]types.MissingSkill, error) {
	result, err := e.Match(userSkills, jobID)
	if err != nil {
		return nil, err
	}
	return result.Missing, nil
}

// GetAllRecommendations scores every job in the catalog and returns the best `limit`
// of them. Order: score desc, market demand desc, title asc, then id asc.
// A limit of zero or less returns every job.
func (e *Engine) GetAllRecommendations(userSkills []types.UserSkill, limit int) ([]types.RankedJob, error) {
	jobs := e.jobs.Jobs()
	ranked := make([]types.RankedJob, 0, len(jobs))
	for _, job := range jobs {
		result, err := Match(userSkills, job, e.normalizer)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, types.RankedJob{Job: job, Score: result.Score})
	}

	SortRanked(ranked)

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// SortRanked sorts ranked jobs in recommendation order. Scores within
// types.ScoreTolerance are equal and fall through to demand, title and id.
func SortRanked(ranked []types.RankedJob) {
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if types.Greater(a.Score, b.Score) {
			return true
		}
		if types.Greater(b.Score, a.Score) {
			return false
		}
		if ra, rb := a.Job.MarketDemand.Rank(), b.Job.MarketDemand.Rank(); ra != rb {
			return ra > rb
		}
		if a.Job.Title != b.Job.Title {
			return a.Job.Title < b.Job.Title
		}
		return a.Job.ID < b.Job.ID
	})
}
