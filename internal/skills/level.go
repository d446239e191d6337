// Package skills canonicalizes free-text skill names and proficiency levels.
package skills

import (
	"fmt"
	"strings"

	"github.com/jonathan/career-recommender/internal/types"
)

// LevelError reports a proficiency level outside beginner/intermediate/expert.
type LevelError struct {
	Value string
}

func (e *LevelError) Error() string {
	return fmt.Sprintf("invalid skill level %q (must be beginner, intermediate or expert)", e.Value)
}

// ParseLevel parses a level case-insensitively. An empty string is rejected.
func ParseLevel(raw string) (types.Level, error) {
	switch types.Level(strings.ToLower(strings.TrimSpace(raw))) {
	case types.LevelBeginner:
		return types.LevelBeginner, nil
	case types.LevelIntermediate:
		return types.LevelIntermediate, nil
	case types.LevelExpert:
		return types.LevelExpert, nil
	default:
		return "", &LevelError{Value: raw}
	}
}

// Rank returns 1, 2 or 3 for beginner, intermediate and expert; 0 for anything else.
func Rank(level types.Level) int {
	switch level {
	case types.LevelBeginner:
		return 1
	case types.LevelIntermediate:
		return 2
	case types.LevelExpert:
		return 3
	default:
		return 0
	}
}

// ValidLevel reports whether level is one of the three defined values.
func ValidLevel(level types.Level) bool {
	return Rank(level) > 0
}
