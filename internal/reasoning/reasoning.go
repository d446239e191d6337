// Package reasoning composes a plain-language rationale for a match score.
//
// Output is template-driven and byte-identical for identical inputs, so a stored
// rationale only changes when the score or the skill breakdown changes.
package reasoning

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/career-recommender/internal/types"
)

// Tone bucket thresholds, inclusive lower bounds.
const (
	StrongThreshold   = 80.0
	ModerateThreshold = 50.0
)

// Tone names
const (
	ToneStrong     = "strong fit"
	ToneModerate   = "moderate fit"
	ToneDeveloping = "developing fit"
)

// TopN is the number of matched and missing skills named in the rationale.
const TopN = 3

// ToneFor returns the tone bucket for a score.
func ToneFor(score float64) string {
	switch {
	case score >= StrongThreshold:
		return ToneStrong
	case score >= ModerateThreshold:
		return ToneModerate
	default:
		return ToneDeveloping
	}
}

// GenerateReasoning builds the rationale paragraph from the match breakdown.
func GenerateReasoning(matched []types.MatchedSkill, missing []types.MissingSkill, score float64) string {
	tone := ToneFor(score)

	var b strings.Builder
	fmt.Fprintf(&b, "This role is a %s for you with a match score of %.1f/100.", tone, score)

	top := topMatched(matched, TopN)
	if len(top) == 0 {
		b.WriteString(" None of the required skills are covered by your current profile yet.")
	} else {
		parts := make([]string, len(top))
		for i, m := range top {
			parts[i] = fmt.Sprintf("%s (%.2f of %.2f weight)", m.SkillID, m.Contribution, m.Weight)
		}
		fmt.Fprintf(&b, " Your strongest contributing skills are %s.", joinList(parts))
		if extra := len(matched) - len(top); extra > 0 {
			fmt.Fprintf(&b, " %d more matched %s also %s to the score.", extra,
				plural(extra, "skill", "skills"), plural(extra, "adds", "add"))
		}
	}

	gaps := topMissing(missing, TopN)
	if len(gaps) == 0 {
		b.WriteString(" You already cover every listed requirement.")
	} else {
		parts := make([]string, len(gaps))
		for i, m := range gaps {
			parts[i] = fmt.Sprintf("%s (weight %.2f)", m.SkillID, m.Weight)
		}
		fmt.Fprintf(&b, " To improve your fit, focus on %s.", joinList(parts))
		if extra := len(missing) - len(gaps); extra > 0 {
			fmt.Fprintf(&b, " %d further %s %s.", extra, plural(extra, "gap", "gaps"), plural(extra, "remains", "remain"))
		}
	}

	b.WriteString(" ")
	b.WriteString(closingFor(tone))
	return b.String()
}

func closingFor(tone string) string {
	switch tone {
	case ToneStrong:
		return "You are well positioned to apply now."
	case ToneModerate:
		return "Closing the listed gaps would make you a competitive candidate."
	default:
		return "Following the learning roadmap is the most direct way to build toward this role."
	}
}

// topMatched returns up to n matched skills by contribution desc, keeping input order on ties.
func topMatched(matched []types.MatchedSkill, n int) []types.MatchedSkill {
	sorted := append([]types.MatchedSkill(nil), matched...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return types.Greater(sorted[i].Contribution, sorted[j].Contribution)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// topMissing returns up to n missing skills by weight desc, keeping input order on ties.
func topMissing(missing []types.MissingSkill, n int) []types.MissingSkill {
	sorted := append([]types.MissingSkill(nil), missing...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return types.Greater(sorted[i].Weight, sorted[j].Weight)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
