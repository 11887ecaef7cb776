package searcher

import (
	"errors"
	"fmt"

	"connect4/game"

	"golang.org/x/exp/rand"
)

const (
	DefaultDepth    = 5
	DefaultSentinel = int64(1_000_000_000_000) // Score of a guaranteed win
)

var (
	ErrInvalidDepth    = errors.New("search depth must be at least 1")
	ErrInvalidSentinel = errors.New("sentinel must be positive")
	ErrGameOver        = errors.New("game is already over")
)

// Config holds the tunable constants of a search.
type Config struct {
	Depth    int
	Weights  game.Weights
	Sentinel int64
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		Depth:    DefaultDepth,
		Weights:  game.DefaultWeights(),
		Sentinel: DefaultSentinel,
	}
}

func (c Config) Validate() error {
	if c.Depth < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidDepth, c.Depth)
	}
	if c.Sentinel <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSentinel, c.Sentinel)
	}
	return nil
}

type Option func(s *Searcher)

// WithConfig replaces the whole configuration.
func WithConfig(config Config) Option {
	return func(s *Searcher) {
		s.config = config
	}
}

func WithDepth(depth int) Option {
	return func(s *Searcher) {
		if depth > 0 {
			s.config.Depth = depth
		}
	}
}

func WithWeights(weights game.Weights) Option {
	return func(s *Searcher) {
		s.config.Weights = weights
	}
}

func WithSentinel(sentinel int64) Option {
	return func(s *Searcher) {
		if sentinel > 0 {
			s.config.Sentinel = sentinel
		}
	}
}

// WithSeed makes the random fallback column reproducible.
func WithSeed(seed uint64) Option {
	return func(s *Searcher) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand shares an existing random source.
func WithRand(rng *rand.Rand) Option {
	return func(s *Searcher) {
		if rng != nil {
			s.rng = rng
		}
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.metrics = NewCollector()
	}
}
