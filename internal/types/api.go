package types

import "time"

// ManualProfileRequest sets the manually entered profile fields.
type ManualProfileRequest struct {
	EducationLevel   string   `json:"education_level" validate:"max=100"`
	Branch           string   `json:"branch" validate:"max=100"`
	ExperienceYears  float64  `json:"experience_years" validate:"gte=0,lte=60"`
	PreferredDomains []string `json:"preferred_domains" validate:"max=10,dive,required,max=50"`
}

// AddSkillRequest adds or updates one skill. Level defaults to intermediate.
type AddSkillRequest struct {
	Skill           string  `json:"skill_name" validate:"required,max=100"`
	Level           string  `json:"skill_level" validate:"omitempty,oneof=beginner intermediate expert Beginner Intermediate Expert"`
	YearsExperience float64 `json:"years_experience" validate:"gte=0,lte=60"`
}

// RecommendationSummary is one entry of the ranked recommendation list.
type RecommendationSummary struct {
	JobID         int     `json:"job_id"`
	Title         string  `json:"title"`
	Domain        string  `json:"domain"`
	MarketDemand  Demand  `json:"market_demand"`
	AverageSalary float64 `json:"average_salary"`
	MatchScore    float64 `json:"match_score"`
}

// RecommendationDetail is the full analysis of one job for a user.
type RecommendationDetail struct {
	Job         *JobProfile   `json:"job"`
	Match       *MatchResult  `json:"match"`
	Reasoning   string        `json:"reasoning"`
	Explanation Explanation   `json:"explanation"`
	Roadmap     []RoadmapStep `json:"roadmap"`
	TotalWeeks  float64       `json:"total_weeks"`

	// PreviousScore is the score stored by the last analysis of this job, if any.
	PreviousScore *float64  `json:"previous_score,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RoadmapResponse is the learning plan for one job.
type RoadmapResponse struct {
	JobID      int           `json:"job_id"`
	Title      string        `json:"title"`
	Domain     string        `json:"domain"`
	MatchScore float64       `json:"match_score"`
	Steps      []RoadmapStep `json:"steps"`
	TotalWeeks float64       `json:"total_weeks"`
}
