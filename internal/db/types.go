package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-recommender/internal/types"
)

// User is an account row.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize to JSON
	PasswordSet  bool      `json:"password_set" db:"password_set"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the manually entered part of a user's profile.
type Profile struct {
	UserID           uuid.UUID   `json:"user_id"`
	EducationLevel   string      `json:"education_level"`
	Branch           string      `json:"branch"`
	ExperienceYears  float64     `json:"experience_years"`
	PreferredDomains StringArray `json:"preferred_domains"` // JSONB array
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// profileFieldPoints is what each filled profile field adds to completeness.
const profileFieldPoints = 25

// Completeness scores the profile 0-100, 25 points per filled field.
func (p *Profile) Completeness() int {
	if p == nil {
		return 0
	}
	score := 0
	if p.EducationLevel != "" {
		score += profileFieldPoints
	}
	if p.Branch != "" {
		score += profileFieldPoints
	}
	if p.ExperienceYears > 0 {
		score += profileFieldPoints
	}
	if len(p.PreferredDomains) > 0 {
		score += profileFieldPoints
	}
	return score
}

// UserSkill is a skill row; SkillID is always normalized.
type UserSkill struct {
	ID              uuid.UUID   `json:"id"`
	UserID          uuid.UUID   `json:"user_id"`
	SkillID         string      `json:"skill_id"`
	Level           types.Level `json:"level"`
	YearsExperience float64     `json:"years_experience"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// ToCore converts the row into the value the matcher consumes.
func (s UserSkill) ToCore() types.UserSkill {
	return types.UserSkill{
		SkillID:         s.SkillID,
		Level:           s.Level,
		YearsExperience: s.YearsExperience,
	}
}

// CoreSkills converts skill rows for the matcher.
func CoreSkills(rows []UserSkill) []types.UserSkill {
	out := make([]types.UserSkill, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToCore())
	}
	return out
}

// Resume is the latest parsed resume of a user. The file itself is not stored.
type Resume struct {
	UserID         uuid.UUID   `json:"user_id"`
	Filename       string      `json:"filename"`
	FileType       string      `json:"file_type"`
	ParsedText     string      `json:"parsed_text"`
	DetectedSkills StringArray `json:"detected_skills"` // JSONB array
	CreatedAt      time.Time   `json:"created_at"`
}

// StringArray handles JSONB string arrays
type StringArray []string

// Scan implements the Scanner interface for StringArray
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = []string{}
		return nil
	}
	source, err := jsonBytes(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(source, a)
}

// Value implements the Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

// RoadmapSteps handles the JSONB learning path column.
type RoadmapSteps []types.RoadmapStep

// Scan implements the Scanner interface for RoadmapSteps
func (r *RoadmapSteps) Scan(src interface{}) error {
	if src == nil {
		*r = RoadmapSteps{}
		return nil
	}
	source, err := jsonBytes(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(source, r)
}

// Value implements the Valuer interface for RoadmapSteps
func (r RoadmapSteps) Value() (driver.Value, error) {
	if r == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r)
}

// jsonBytes accepts the forms a JSONB column may be handed to a Scanner in.
func jsonBytes(src interface{}) ([]byte, error) {
	switch v := src.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New("type assertion .([]byte) failed")
	}
}
