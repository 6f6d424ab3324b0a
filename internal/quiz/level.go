package quiz

import (
	"fmt"
	"strings"
)

// Level is a difficulty tier for quiz content.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelExpert       Level = "expert"
)

var levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}

// Levels returns all tiers, lowest first.
func Levels() []Level {
	out := make([]Level, len(levels))
	copy(out, levels)
	return out
}

// Valid reports whether l is one of the four known tiers.
func (l Level) Valid() bool {
	return l.Rank() >= 0
}

// Rank returns the position of l in the tier order, or -1.
func (l Level) Rank() int {
	for i, v := range levels {
		if v == l {
			return i
		}
	}
	return -1
}

// Label returns the display name.
func (l Level) Label() string {
	switch l {
	case LevelBeginner:
		return "Beginner"
	case LevelIntermediate:
		return "Intermediate"
	case LevelAdvanced:
		return "Advanced"
	case LevelExpert:
		return "Expert"
	}
	return string(l)
}

// Next returns the following tier, wrapping around to the lowest.
func (l Level) Next() Level {
	r := l.Rank()
	if r < 0 {
		return LevelBeginner
	}
	return levels[(r+1)%len(levels)]
}

// Prev returns the preceding tier, wrapping around to the highest.
func (l Level) Prev() Level {
	r := l.Rank()
	if r < 0 {
		return LevelBeginner
	}
	return levels[(r+len(levels)-1)%len(levels)]
}

// ParseLevel accepts a tier name (case-insensitive) or its 1-based rank.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, l := range levels {
		if s == string(l) || s == fmt.Sprint(i+1) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown level %q (want one of %s)", s, strings.Join(levelNames(), ", "))
}

func levelNames() []string {
	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = string(l)
	}
	return names
}
