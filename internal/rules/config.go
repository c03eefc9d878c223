package rules

import "fmt"

// FirstPlayerPolicy decides who is seated when a game starts.
type FirstPlayerPolicy string

const (
	// FirstPlayerRoster seats the earliest-joined player.
	FirstPlayerRoster FirstPlayerPolicy = "roster"
	// FirstPlayerRandom seats a random roster member.
	FirstPlayerRandom FirstPlayerPolicy = "random"
)

// Config carries the game rules that are product decisions, not code:
// how many times one present may be stolen and how the opening player is
// chosen. StealLimit has no default on purpose; deployments must state it.
type Config struct {
	StealLimit  int
	FirstPlayer FirstPlayerPolicy
}

func (c Config) Validate() error {
	if c.StealLimit < 1 {
		return fmt.Errorf("rules: steal limit must be at least 1, got %d", c.StealLimit)
	}
	switch c.FirstPlayer {
	case FirstPlayerRoster, FirstPlayerRandom:
		return nil
	default:
		return fmt.Errorf("rules: unknown first-player policy %q", c.FirstPlayer)
	}
}
