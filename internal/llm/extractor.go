package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// maxPromptChars caps how much resume text is sent to the model.
const maxPromptChars = 12000

const skillPrompt = `You extract technical and professional skills from resumes.
Return ONLY valid JSON of the form {"skills": ["skill", ...]}.
List each skill once using its common short name (for example "Python", "SQL", "Kubernetes").
Do not include soft skills, job titles, company names or degrees.

Resume:
"""
%s
"""
`

// SkillExtractor asks a Generator for the skills mentioned in resume text.
type SkillExtractor struct {
	gen     Generator
	timeout time.Duration
}

// NewSkillExtractor returns an extractor. A zero timeout means the caller's
// context alone bounds each request.
func NewSkillExtractor(gen Generator, timeout time.Duration) *SkillExtractor {
	return &SkillExtractor{gen: gen, timeout: timeout}
}

type skillResponse struct {
	Skills []string `json:"skills"`
}

// ExtractSkills returns the raw skill names the model found. Names are not
// normalized here.
func (e *SkillExtractor) ExtractSkills(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if len(text) > maxPromptChars {
		text = text[:maxPromptChars]
	}
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	raw, err := e.gen.GenerateJSON(ctx, fmt.Sprintf(skillPrompt, text))
	if err != nil {
		return nil, fmt.Errorf("skill extraction failed: %w", err)
	}
	return ParseSkills(raw)
}

// ParseSkills decodes a model response. Both {"skills": [...]} and a bare array
// are accepted; blank entries are dropped.
func ParseSkills(raw string) ([]string, error) {
	raw = CleanJSONBlock(raw)

	var names []string
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &names); err != nil {
			return nil, fmt.Errorf("failed to parse skills array: %w", err)
		}
	} else {
		var resp skillResponse
		if err := json.Unmarshal([]byte(raw), &resp); err != nil {
			return nil, fmt.Errorf("failed to parse skills response: %w", err)
		}
		names = resp.Skills
	}

	out := names[:0]
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out, nil
}
