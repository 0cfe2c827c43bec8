package model

import (
	"fmt"
	"strings"
)

// Difficulty controls how receptive the simulated match is. It only changes prompt phrasing.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty accepts the three level names case-insensitively. Empty input means medium.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return DifficultyMedium, nil
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", s)
	}
}

// Hint is the extra instruction appended to the chat prompt for the level.
func (d Difficulty) Hint() string {
	switch d {
	case DifficultyEasy:
		return "(Be receptive and interested from the start)"
	case DifficultyHard:
		return "(Be somewhat challenging, take longer to warm up)"
	default:
		return ""
	}
}
