package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/career-recommender/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintJob(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJob(&types.JobProfile{
		ID:           7,
		Title:        "Backend Developer",
		Domain:       "web",
		MarketDemand: types.DemandHigh,
		Requirements: []types.SkillRequirement{
			{SkillID: "go", Weight: 0.6, MinLevel: types.LevelIntermediate},
			{SkillID: "docker", Weight: 0.4, MinLevel: types.LevelBeginner},
		},
	})

	output := buf.String()
	assert.Contains(t, output, "JOB PROFILE")
	assert.Contains(t, output, "#7 Backend Developer")
	assert.Contains(t, output, "go (intermediate, 0.60)")
	assert.Contains(t, output, "docker (beginner, 0.40)")
}

func TestPrintJob_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintJob(nil)
	assert.Empty(t, buf.String())
}

func TestPrintMatch(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatch(&types.MatchResult{
		Score: 45,
		Matched: []types.MatchedSkill{
			{SkillID: "python", Weight: 0.3, Factor: 1, Contribution: 0.3},
			{SkillID: "sql", Weight: 0.3, Factor: 0.5, Contribution: 0.15},
		},
		Missing: []types.MissingSkill{{SkillID: "statistics", Weight: 0.4}},
	}, "You partially match this role. Strong skills in python and sql. Consider learning statistics to improve your fit.")

	output := buf.String()
	assert.Contains(t, output, "Score: 45.0 / 100")
	assert.Contains(t, output, "✓ python  +0.30")
	assert.Contains(t, output, "✓ sql  +0.15 (partial)")
	assert.Contains(t, output, "✗ statistics  0.40")
	assert.Contains(t, output, "Consider learning")
	assert.NotContains(t, output, "...", "reasoning is wrapped, not truncated")
}

func TestPrintMatch_Degenerate(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintMatch(&types.MatchResult{Degenerate: true}, "")
	assert.Contains(t, buf.String(), "no weighted requirements")
}

func TestPrintExplanation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	features := make([]types.FeatureContribution, 0, 7)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		features = append(features, types.FeatureContribution{SkillID: id, Contribution: 10, Direction: types.DirectionPositive})
	}
	p.PrintExplanation(&types.Explanation{
		Tone:                 "moderate",
		Coverage:             0.5,
		Confidence:           0.75,
		FeatureContributions: features,
		Counterfactual:       &types.Counterfactual{Skills: []string{"h"}, TargetThreshold: 80, HypotheticalScore: 72},
	})

	output := buf.String()
	assert.Contains(t, output, "Coverage:    50%")
	assert.Contains(t, output, "... and 2 more")
	assert.Contains(t, output, "To reach 80: learn h (gets to 72.0)")
}

func TestPrintRoadmap(t *testing.T) {
	t.Run("with steps", func(t *testing.T) {
		var buf bytes.Buffer
		NewPrinter(&buf).PrintRoadmap([]types.RoadmapStep{
			{Order: 1, SkillID: "statistics", Tier: "foundational", EstimatedWeeks: 2, Description: "Complete a course on statistics"},
			{Order: 2, SkillID: "docker", Tier: "intermediate", EstimatedWeeks: 4, Description: "Build a project using docker"},
		}, 6)

		output := buf.String()
		assert.Contains(t, output, "LEARNING ROADMAP")
		assert.Contains(t, output, "1. statistics  [foundational, ~2 wk]")
		assert.Contains(t, output, "Build a project using docker")
		assert.Contains(t, output, "Total: ~6 weeks")
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		NewPrinter(&buf).PrintRoadmap(nil, 0)
		assert.Contains(t, buf.String(), "NOTHING LEFT TO LEARN")
	})
}

func TestPrintRanking(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRanking([]types.RankedJob{
		{Job: &types.JobProfile{Title: "Data Analyst", Domain: "data"}, Score: 60},
		{Job: &types.JobProfile{Title: "Data Scientist", Domain: "data"}, Score: 60},
	})

	output := buf.String()
	assert.Contains(t, output, "#1   60.0  Data Analyst (data)")
	assert.Contains(t, output, "#2   60.0  Data Scientist (data)")
}

func TestPrintBox_LineWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 200))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
}

func TestWrap(t *testing.T) {
	assert.Equal(t, "one two\nthree", wrap("one two three", 8))
	assert.Equal(t, "", wrap("   ", 10))
}
