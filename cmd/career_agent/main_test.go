package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/career-recommender/internal/catalog"
	"github.com/jonathan/career-recommender/internal/matching"
	"github.com/jonathan/career-recommender/internal/observability"
	"github.com/jonathan/career-recommender/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestDatasets(t *testing.T) *catalog.Datasets {
	t.Helper()
	ds, err := catalog.LoadDefault()
	require.NoError(t, err)
	return ds
}

func TestParseSkills(t *testing.T) {
	list, err := parseSkills([]byte(`[{"skill_id": "Python", "level": "expert", "years_experience": 3}]`))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Python", list[0].SkillID)
	assert.Equal(t, types.LevelExpert, list[0].Level)

	tests := []struct {
		name string
		data string
	}{
		{"not an array", `{"skill_id": "go"}`},
		{"bad level", `[{"skill_id": "go", "level": "guru"}]`},
		{"missing level", `[{"skill_id": "go"}]`},
		{"unknown field", `[{"skill_id": "go", "level": "expert", "stars": 5}]`},
		{"malformed", `[{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSkills([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestReadSkills_Stdin(t *testing.T) {
	list, err := readSkills("-", strings.NewReader(`[{"skill_id": "sql", "level": "beginner"}]`))
	require.NoError(t, err)
	assert.Equal(t, []types.UserSkill{{SkillID: "sql", Level: types.LevelBeginner}}, list)

	_, err = readSkills(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)
}

func TestBuildMatchReport(t *testing.T) {
	ds := loadTestDatasets(t)
	userSkills := []types.UserSkill{{SkillID: "sql", Level: types.LevelIntermediate}}

	report, err := buildMatchReport(ds, userSkills, 2, false)
	require.NoError(t, err)
	assert.Equal(t, "Data Analyst", report.Job.Title)
	assert.InDelta(t, 30.0, report.Match.Score, 1e-6)
	assert.Nil(t, report.Explanation)
	assert.Len(t, report.Roadmap, 4)
	assert.NotEmpty(t, report.Reasoning)

	report, err = buildMatchReport(ds, userSkills, 2, true)
	require.NoError(t, err)
	require.NotNil(t, report.Explanation)

	_, err = buildMatchReport(ds, userSkills, 999, false)
	var notFound *matching.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestRankJobs(t *testing.T) {
	ds := loadTestDatasets(t)

	ranked, err := rankJobs(ds, []types.UserSkill{
		{SkillID: "python", Level: types.LevelExpert},
		{SkillID: "sql", Level: types.LevelIntermediate},
		{SkillID: "statistics", Level: types.LevelIntermediate},
	}, 2)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Data Analyst", ranked[0].Job.Title)
	assert.Equal(t, "Data Scientist", ranked[1].Job.Title)

	entries := rankedEntries(ranked)
	assert.Equal(t, 2, entries[0].JobID)
	assert.InDelta(t, 60.0, entries[0].Score, 1e-6)

	_, err = rankJobs(ds, nil, -1)
	assert.Error(t, err)
}

func TestBuildRoadmap(t *testing.T) {
	ds := loadTestDatasets(t)

	resp, err := buildRoadmap(ds, nil, 7, "")
	require.NoError(t, err)
	assert.Equal(t, "web", resp.Domain)
	assert.Len(t, resp.Steps, 6)
	assert.Positive(t, resp.TotalWeeks)

	resp, err = buildRoadmap(ds, nil, 7, " Cloud ")
	require.NoError(t, err)
	assert.Equal(t, "cloud", resp.Domain)
}

func TestCatalogValidateCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"catalog", "validate"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	var summary catalogSummary
	require.NoError(t, json.Unmarshal(out.Bytes(), &summary))
	assert.True(t, summary.Valid)
	assert.Equal(t, 12, summary.Jobs)
	assert.Contains(t, summary.Domains, "data")
	assert.Contains(t, summary.PrerequisiteDomains, "data")
}

func TestCatalogValidate_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"jobs": [{"id": 1}]}`), 0644))

	catalogJobsPath = path
	t.Cleanup(func() { catalogJobsPath = "" })

	err := runCatalogValidate(catalogValidateCmd, nil)
	assert.Error(t, err)
}

func TestCatalogSkillsCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"catalog", "skills"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	var entries []skillEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &entries))
	bySkill := make(map[string][]string, len(entries))
	for _, e := range entries {
		assert.NotNil(t, e.Aliases)
		bySkill[e.SkillID] = e.Aliases
	}
	assert.Contains(t, bySkill["javascript"], "js")
	assert.Contains(t, bySkill["kubernetes"], "k8s")
	assert.Contains(t, bySkill, "sql", "catalog requirement ids are listed even without synonyms")
}

func TestReadSkills_FileSchemaError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"skill_id": "sql", "level": "guru"}]`), 0644))

	_, err := readSkills(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)

	require.NoError(t, os.WriteFile(path, []byte(`[{"skill_id": "sql", "level": "expert"}]`), 0644))
	list, err := readSkills(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []types.UserSkill{{SkillID: "sql", Level: types.LevelExpert}}, list)
}

func TestCheckFormat(t *testing.T) {
	assert.NoError(t, checkFormat("json"))
	assert.NoError(t, checkFormat("text"))
	assert.Error(t, checkFormat("yaml"))
}

func TestPrintReport(t *testing.T) {
	ds := loadTestDatasets(t)
	report, err := buildMatchReport(ds, []types.UserSkill{{SkillID: "sql", Level: types.LevelIntermediate}}, 2, true)
	require.NoError(t, err)

	var out bytes.Buffer
	printReport(observability.NewPrinter(&out), report)

	text := out.String()
	for _, want := range []string{"JOB PROFILE", "Data Analyst", "MATCH", "EXPLANATION", "LEARNING ROADMAP", "✓ sql"} {
		assert.Contains(t, text, want)
	}
}
