// Package types provides type definitions for structured data used throughout the career-recommender system.
package types

import "time"

// Level is a proficiency level on the beginner < intermediate < expert scale.
type Level string

// Proficiency levels
const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelExpert       Level = "expert"
)

// Demand is the market demand for a job profile.
type Demand string

// Market demand values
const (
	DemandLow    Demand = "low"
	DemandMedium Demand = "medium"
	DemandHigh   Demand = "high"
)

// Rank orders demand values: high > medium > low. Unknown values rank lowest.
func (d Demand) Rank() int {
	switch d {
	case DemandHigh:
		return 3
	case DemandMedium:
		return 2
	case DemandLow:
		return 1
	default:
		return 0
	}
}

// ResourceType is the kind of learning resource suggested for a roadmap step.
type ResourceType string

// Resource types
const (
	ResourceCourse        ResourceType = "course"
	ResourceProject       ResourceType = "project"
	ResourceCertification ResourceType = "certification"
)

// Direction marks whether a feature raised or lowered the score.
type Direction string

// Feature directions
const (
	DirectionPositive Direction = "positive"
	DirectionNegative Direction = "negative"
)

// SkillRequirement is one weighted skill a job asks for.
type SkillRequirement struct {
	SkillID  string  `json:"skill_id"`
	Weight   float64 `json:"weight"`
	MinLevel Level   `json:"min_level"`
}

// JobProfile is a read-only entry of the job catalog.
type JobProfile struct {
	ID            int                `json:"id"`
	Title         string             `json:"title"`
	Domain        string             `json:"domain"`
	Requirements  []SkillRequirement `json:"requirements"`
	AverageSalary float64            `json:"average_salary"`
	MarketDemand  Demand             `json:"market_demand"`
}

// TotalWeight sums the weight of every requirement.
func (j *JobProfile) TotalWeight() float64 {
	total := 0.0
	for _, r := range j.Requirements {
		total += r.Weight
	}
	return total
}

// UserSkill is a skill recorded on a user's profile.
type UserSkill struct {
	SkillID         string  `json:"skill_id"`
	Level           Level   `json:"level"`
	YearsExperience float64 `json:"years_experience"`
}

// MatchedSkill is a requirement the user satisfies at least partially.
type MatchedSkill struct {
	SkillID      string  `json:"skill_id"`
	Weight       float64 `json:"weight"`
	Factor       float64 `json:"factor"`
	Contribution float64 `json:"contribution"`
}

// MissingSkill is a requirement the user does not satisfy at all.
type MissingSkill struct {
	SkillID  string  `json:"skill_id"`
	Weight   float64 `json:"weight"`
	MinLevel Level   `json:"min_level,omitempty"`
}

// MatchResult is the outcome of matching a user's skills against one job.
// Matched and Missing follow the job's requirement order.
type MatchResult struct {
	JobID            int            `json:"job_id"`
	Score            float64        `json:"score"`
	Matched          []MatchedSkill `json:"matched"`
	Missing          []MissingSkill `json:"missing"`
	TotalWeight      float64        `json:"total_weight"`
	RequirementCount int            `json:"requirement_count"`
	Evaluated        int            `json:"evaluated"`
	// Held counts requirements the user has recorded at any level, adequate or not.
	Held int `json:"held"`
	// Degenerate is set when the job has no requirements or no weight; Score is 0.
	Degenerate bool `json:"degenerate"`
}

// MatchedMap returns matched skills as skill_id -> contribution.
func (m *MatchResult) MatchedMap() map[string]float64 {
	out := make(map[string]float64, len(m.Matched))
	for _, s := range m.Matched {
		out[s.SkillID] = s.Contribution
	}
	return out
}

// MissingMap returns missing skills as skill_id -> weight.
func (m *MatchResult) MissingMap() map[string]float64 {
	out := make(map[string]float64, len(m.Missing))
	for _, s := range m.Missing {
		out[s.SkillID] = s.Weight
	}
	return out
}

// MatchedIDs returns matched skill ids in requirement order.
func (m *MatchResult) MatchedIDs() []string {
	ids := make([]string, 0, len(m.Matched))
	for _, s := range m.Matched {
		ids = append(ids, s.SkillID)
	}
	return ids
}

// MissingIDs returns missing skill ids in requirement order.
func (m *MatchResult) MissingIDs() []string {
	ids := make([]string, 0, len(m.Missing))
	for _, s := range m.Missing {
		ids = append(ids, s.SkillID)
	}
	return ids
}

// ScoreTolerance is the margin under which two scores or weights compare as equal.
const ScoreTolerance = 1e-9

// Greater reports whether a exceeds b by more than ScoreTolerance.
func Greater(a, b float64) bool {
	return a-b > ScoreTolerance
}

// RankedJob pairs a job with the user's score for it.
type RankedJob struct {
	Job   *JobProfile `json:"job"`
	Score float64     `json:"score"`
}

// FeatureContribution attributes part of the score to a single skill, in score points.
type FeatureContribution struct {
	SkillID      string    `json:"skill_id"`
	Contribution float64   `json:"contribution"`
	Direction    Direction `json:"direction"`
}

// Counterfactual describes the missing skills that would move the score into the next tone bucket.
type Counterfactual struct {
	Skills            []string `json:"skills"`
	AddedWeight       float64  `json:"added_weight"`
	HypotheticalScore float64  `json:"hypothetical_score"`
	TargetThreshold   float64  `json:"target_threshold"`
	Reached           bool     `json:"reached"`
}

// Explanation is the structured, attributable account of a match score.
type Explanation struct {
	Score                float64               `json:"score"`
	Tone                 string                `json:"tone"`
	ReasoningText        string                `json:"reasoning_text"`
	FeatureContributions []FeatureContribution `json:"feature_contributions"`
	Coverage             float64               `json:"coverage"`
	Confidence           float64               `json:"confidence"`
	Counterfactual       *Counterfactual       `json:"counterfactual,omitempty"`
}

// RoadmapStep is one ordered unit of learning toward a missing skill.
type RoadmapStep struct {
	Order                 int          `json:"order"`
	SkillID               string       `json:"skill_id"`
	SuggestedResourceType ResourceType `json:"suggested_resource_type"`
	EstimatedWeeks        float64      `json:"estimated_weeks"`
	Weight                float64      `json:"weight"`
	Tier                  string       `json:"tier"`
	Description           string       `json:"description"`
}

// Recommendation is the persisted result of a detailed recommendation request.
type Recommendation struct {
	UserID        string        `json:"user_id"`
	JobID         int           `json:"job_id"`
	MatchScore    float64       `json:"match_score"`
	MatchedSkills []string      `json:"matched_skills"`
	MissingSkills []string      `json:"missing_skills"`
	Reasoning     string        `json:"reasoning"`
	LearningPath  []RoadmapStep `json:"learning_path"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
