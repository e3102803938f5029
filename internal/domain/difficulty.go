package domain

import "strings"

// Difficulty selects the strength of the computer opponent.
type Difficulty string

const (
	Easy     Difficulty = "easy"
	Medium   Difficulty = "medium"
	Hard     Difficulty = "hard"
	VeryHard Difficulty = "very-hard"
)

// Profile is the fixed configuration attached to a Difficulty.
// MinimaxPercent and RandomPercent always sum to 100.
type Profile struct {
	Difficulty     Difficulty `json:"difficulty"`
	BotName        string     `json:"botName"`
	SearchDepth    int        `json:"searchDepth"`
	MinimaxPercent int        `json:"minimaxPercent"`
	RandomPercent  int        `json:"randomPercent"`
}

// RandomProbability is the chance of an open move being picked at random.
func (p Profile) RandomProbability() float64 {
	return float64(p.RandomPercent) / 100
}

func (p Profile) MinimaxProbability() float64 {
	return float64(p.MinimaxPercent) / 100
}

var profiles = map[Difficulty]Profile{
	Easy:     {Difficulty: Easy, BotName: "Alice", SearchDepth: 2, MinimaxPercent: 33, RandomPercent: 67},
	Medium:   {Difficulty: Medium, BotName: "Bob", SearchDepth: 4, MinimaxPercent: 60, RandomPercent: 40},
	Hard:     {Difficulty: Hard, BotName: "Charles", SearchDepth: 6, MinimaxPercent: 85, RandomPercent: 15},
	VeryHard: {Difficulty: VeryHard, BotName: "Diana", SearchDepth: 8, MinimaxPercent: 95, RandomPercent: 5},
}

// Difficulties lists every level from weakest to strongest.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard, VeryHard}
}

func ProfileFor(d Difficulty) (Profile, error) {
	p, ok := profiles[d]
	if !ok {
		return Profile{}, ErrUnknownDifficulty
	}
	return p, nil
}

// ParseDifficulty accepts the canonical names plus a few spellings clients send.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	case "very-hard", "very_hard", "veryhard", "expert":
		return VeryHard, nil
	default:
		return "", ErrUnknownDifficulty
	}
}

func (d Difficulty) IsValid() bool {
	_, ok := profiles[d]
	return ok
}
