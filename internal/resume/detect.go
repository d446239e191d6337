package resume

import (
	"sort"
	"strings"
	"unicode"

	"github.com/jonathan/career-recommender/internal/skills"
)

// maxPhraseWords bounds the n-grams tried against the vocabulary, which covers
// ids like "natural-language-processing".
const maxPhraseWords = 3

// DetectSkills scans text for phrases that normalize to a known skill id and
// returns the distinct ids in lexical order.
func DetectSkills(text string, norm *skills.Normalizer) []string {
	found := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		words := tokenize(line)
		for i := range words {
			for n := 1; n <= maxPhraseWords && i+n <= len(words); n++ {
				id := norm.Normalize(strings.Join(words[i:i+n], " "))
				if id != "" && norm.Known(id) {
					found[id] = true
				}
			}
		}
	}

	out := make([]string, 0, len(found))
	for id := range found {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// tokenize splits a line into words. Characters that appear inside skill names
// ('+', '#', '.', '/', '-') stay attached; a trailing '.' is treated as punctuation.
func tokenize(line string) []string {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
		switch r {
		case '+', '#', '.', '/', '-':
			return false
		}
		return true
	})

	words := fields[:0]
	for _, f := range fields {
		f = strings.TrimRight(f, ".")
		f = strings.Trim(f, "-/")
		if f != "" {
			words = append(words, f)
		}
	}
	return words
}
