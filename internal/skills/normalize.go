package skills

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultSynonyms is the built-in synonym table used when no reference data overrides it.
var DefaultSynonyms = map[string]string{
	"js":                  "javascript",
	"ecmascript":          "javascript",
	"ts":                  "typescript",
	"golang":              "go",
	"go lang":             "go",
	"py":                  "python",
	"python3":             "python",
	"k8s":                 "kubernetes",
	"node":                "nodejs",
	"node.js":             "nodejs",
	"react.js":            "react",
	"reactjs":             "react",
	"vue.js":              "vue",
	"postgres":            "postgresql",
	"psql":                "postgresql",
	"ml":                  "machine-learning",
	"machine learning":    "machine-learning",
	"dl":                  "deep-learning",
	"stats":               "statistics",
	"aws cloud":           "aws",
	"amazon web services": "aws",
	"gcp":                 "google-cloud",
	"ci/cd":               "ci-cd",
}

// Normalizer maps raw skill names into the canonical skill id space.
// It is immutable after construction and safe for concurrent use.
type Normalizer struct {
	synonyms map[string]string
	vocab    map[string]struct{}
}

// NewNormalizer builds a normalizer from a synonym table. Keys and values are
// canonicalized the same way as input, so "Node.js" and "node-js" are equivalent keys.
func NewNormalizer(synonyms map[string]string) *Normalizer {
	n := &Normalizer{
		synonyms: make(map[string]string, len(synonyms)),
		vocab:    make(map[string]struct{}, len(synonyms)),
	}
	for raw, target := range synonyms {
		key := canonicalize(raw)
		value := canonicalize(target)
		if key == "" || value == "" {
			continue
		}
		n.synonyms[key] = value
		n.vocab[value] = struct{}{}
	}
	return n
}

// WithVocabulary returns a copy of n that also treats ids as known skills.
func (n *Normalizer) WithVocabulary(ids ...string) *Normalizer {
	out := &Normalizer{
		synonyms: n.synonyms,
		vocab:    make(map[string]struct{}, len(n.vocab)+len(ids)),
	}
	for id := range n.vocab {
		out.vocab[id] = struct{}{}
	}
	for _, id := range ids {
		if c := n.Normalize(id); c != "" {
			out.vocab[c] = struct{}{}
		}
	}
	return out
}

// Normalize returns the canonical skill id for raw. Unknown skills pass through
// canonicalized; input with no letters or digits yields "".
func (n *Normalizer) Normalize(raw string) string {
	id := canonicalize(raw)
	if id == "" {
		return ""
	}
	if target, ok := n.synonyms[id]; ok {
		return target
	}
	return id
}

// Known reports whether id (already normalized) is part of the vocabulary.
func (n *Normalizer) Known(id string) bool {
	_, ok := n.vocab[id]
	return ok
}

// Vocabulary returns the known skill ids in lexical order.
func (n *Normalizer) Vocabulary() []string {
	out := make([]string, 0, len(n.vocab))
	for id := range n.vocab {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Aliases returns every synonym key that maps to id, in lexical order.
func (n *Normalizer) Aliases(id string) []string {
	var out []string
	for key, target := range n.synonyms {
		if target == id {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

// canonicalize folds case and accents and collapses separator runs into "-".
// '+' and '#' are kept so "C++" and "C#" stay distinct from "C".
func canonicalize(raw string) string {
	// Transformers carry state, so a fresh chain is built per call.
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, raw)
	if err != nil {
		stripped = raw
	}
	folded := cases.Fold().String(stripped)

	var b strings.Builder
	b.Grow(len(folded))
	pendingSep := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}
