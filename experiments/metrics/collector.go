package metrics

import (
	"strconv"
	"time"

	"connect4/game"
	"connect4/searcher"
)

// AgentConfig describes one side of a matchup.
type AgentConfig struct {
	ID    int    `yaml:"id"`
	Kind  string `yaml:"kind"`            // AgentSearch or AgentRandom
	Depth int    `yaml:"depth,omitempty"` // Search agents only
}

const (
	AgentSearch = "search"
	AgentRandom = "random"
)

func (c AgentConfig) String() string {
	if c.Kind == AgentRandom {
		return AgentRandom
	}
	return "depth " + strconv.Itoa(c.Depth)
}

type MoveMetric struct {
	Step   int
	Side   game.Cell
	Column int
	searcher.SearchMetric
}

type GameMetric struct {
	StartingSide game.Cell
	Winner       game.Cell // Empty on a draw
	Draw         bool
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	TotalMoves   int
}
