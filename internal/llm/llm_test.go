package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"json code block", "```json\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"generic code block", "```\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"code block with language", "```javascript\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"plain JSON", `{"key": "value"}`, `{"key": "value"}`},
		{"preamble and trailer", "Here you go:\n{\"skills\": []}\nHope that helps!", `{"skills": []}`},
		{"array", "```\n[\"go\"]\n```", `["go"]`},
		{"no json", "nothing here", "nothing here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestParseSkills(t *testing.T) {
	got, err := ParseSkills("```json\n{\"skills\": [\"Python\", \" \", \"SQL\"]}\n```")
	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "SQL"}, got)

	got, err = ParseSkills(`["Docker"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Docker"}, got)

	_, err = ParseSkills("not json")
	assert.Error(t, err)
}

type fakeGenerator struct {
	response string
	err      error
	prompt   string
	deadline bool
}

func (f *fakeGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	_, f.deadline = ctx.Deadline()
	return f.response, f.err
}

func TestSkillExtractor_ExtractSkills(t *testing.T) {
	gen := &fakeGenerator{response: `{"skills": ["Go", "Kubernetes"]}`}
	ex := NewSkillExtractor(gen, time.Second)

	got, err := ex.ExtractSkills(context.Background(), "Built services in Go on Kubernetes")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Kubernetes"}, got)
	assert.Contains(t, gen.prompt, "Built services in Go on Kubernetes")
	assert.True(t, gen.deadline)
}

func TestSkillExtractor_TruncatesAndSkipsEmpty(t *testing.T) {
	gen := &fakeGenerator{response: `{"skills": []}`}
	ex := NewSkillExtractor(gen, 0)

	got, err := ex.ExtractSkills(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, gen.prompt, "blank text never reaches the model")

	_, err = ex.ExtractSkills(context.Background(), strings.Repeat("x", maxPromptChars+500))
	require.NoError(t, err)
	assert.NotContains(t, gen.prompt, strings.Repeat("x", maxPromptChars+1))
	assert.False(t, gen.deadline)
}

func TestSkillExtractor_GeneratorError(t *testing.T) {
	ex := NewSkillExtractor(&fakeGenerator{err: errors.New("quota")}, 0)

	_, err := ex.ExtractSkills(context.Background(), "python")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota")
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "", "")
	assert.Error(t, err)
}
