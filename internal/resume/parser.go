package resume

import (
	"context"
	"fmt"
	"sort"

	"github.com/jonathan/career-recommender/internal/skills"
	"go.uber.org/zap"
)

// SkillExtractor finds skill names in free text, typically with an LLM.
type SkillExtractor interface {
	ExtractSkills(ctx context.Context, text string) ([]string, error)
}

// Parsed is the outcome of parsing one resume upload.
type Parsed struct {
	Filename       string   `json:"filename"`
	FileType       FileType `json:"file_type"`
	Text           string   `json:"parsed_text"`
	DetectedSkills []string `json:"detected_skills"`
}

// Parser turns uploaded files into text and normalized skill ids.
type Parser struct {
	norm      *skills.Normalizer
	extractor SkillExtractor
	logger    *zap.Logger
}

// NewParser returns a Parser. extractor may be nil to use only the vocabulary scan.
func NewParser(norm *skills.Normalizer, extractor SkillExtractor, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{norm: norm, extractor: extractor, logger: logger}
}

// Parse extracts text from data and detects skills. Extractor failures are
// logged and do not fail the parse.
func (p *Parser) Parse(ctx context.Context, filename string, data []byte) (*Parsed, error) {
	fileType, err := DetectFileType(filename)
	if err != nil {
		return nil, err
	}
	text, err := ExtractText(fileType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", filename, err)
	}

	detected := DetectSkills(text, p.norm)
	if p.extractor != nil && text != "" {
		extra, err := p.extractor.ExtractSkills(ctx, text)
		if err != nil {
			p.logger.Warn("llm skill extraction failed", zap.String("file", filename), zap.Error(err))
		} else {
			detected = p.merge(detected, extra)
		}
	}

	p.logger.Debug("resume parsed",
		zap.String("file", filename),
		zap.String("type", string(fileType)),
		zap.Int("chars", len(text)),
		zap.Int("skills", len(detected)),
	)
	return &Parsed{
		Filename:       filename,
		FileType:       fileType,
		Text:           text,
		DetectedSkills: detected,
	}, nil
}

// merge normalizes extra names and adds them to ids, sorted and unique.
func (p *Parser) merge(ids []string, extra []string) []string {
	seen := make(map[string]bool, len(ids)+len(extra))
	out := make([]string, 0, len(ids)+len(extra))
	for _, id := range ids {
		seen[id] = true
		out = append(out, id)
	}
	for _, raw := range extra {
		id := p.norm.Normalize(raw)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
