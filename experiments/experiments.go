// Package experiments measures search strength by playing batches of games.
package experiments

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"connect4/agent"
	"connect4/engine"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultGames       = 100 // Per depth or matchup
	DefaultParallelism = 4
	DefaultOutputDir   = "results"
	Confidence         = 95.0 // Percent, for win-rate intervals
)

var (
	ErrNoDepths     = errors.New("at least one depth is required")
	ErrInvalidGames = errors.New("games per matchup must be at least 1")
)

type Options struct {
	Depths      []int
	Games       int
	Seed        uint64 // Game i derives all of its randomness from Seed+i
	Parallelism int
	OutputDir   string // Nothing is written when empty
	Search      searcher.Config
	Rows        int
	Cols        int
}

func DefaultOptions() Options {
	return Options{
		Depths:      []int{1, 2, 3, 4, 5},
		Games:       DefaultGames,
		Seed:        1,
		Parallelism: DefaultParallelism,
		OutputDir:   DefaultOutputDir,
		Search:      searcher.DefaultConfig(),
		Rows:        game.StandardRows,
		Cols:        game.StandardCols,
	}
}

func (o Options) validate(minDepths int) error {
	if len(o.Depths) < minDepths {
		return fmt.Errorf("%w: got %d, need %d", ErrNoDepths, len(o.Depths), minDepths)
	}
	for _, depth := range o.Depths {
		if depth < 1 {
			return fmt.Errorf("%w: got %d", searcher.ErrInvalidDepth, depth)
		}
	}
	if o.Games < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidGames, o.Games)
	}
	if o.Rows < game.WindowLength || o.Cols < game.WindowLength {
		return fmt.Errorf("%w: %dx%d is smaller than a winning run", game.ErrInvalidBoard, o.Rows, o.Cols)
	}
	search := o.Search
	search.Depth = o.Depths[0]
	return search.Validate()
}

// matchUp is a single game to play. Agents[0] plays SideA.
type matchUp struct {
	index  int
	agents [2]metrics.AgentConfig
}

type playedGame struct {
	matchUp
	result engine.GameResult
}

// playAll runs every matchup concurrently and returns the games in matchup order.
func playAll(ctx context.Context, opts Options, matchUps []matchUp) ([]playedGame, error) {
	played := make([]playedGame, len(matchUps))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Parallelism, 1))
	for i, m := range matchUps {
		i, m := i, m
		g.Go(func() error {
			result, err := runGame(ctx, opts, m)
			if err != nil {
				return fmt.Errorf("failed to play game %d: %w", m.index, err)
			}
			played[i] = playedGame{matchUp: m, result: result}
			if (i+1)%max(len(matchUps)/10, 1) == 0 {
				log.Info().Msgf("completed game %d of %d", i+1, len(matchUps))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return played, nil
}

// runGame plays one game. The starting side and both agents' random sources
// are derived from the game's seed.
func runGame(ctx context.Context, opts Options, m matchUp) (engine.GameResult, error) {
	rng := rand.New(rand.NewSource(opts.Seed + uint64(m.index)))
	starting := game.SideA
	if rng.Float64() >= 0.5 {
		starting = game.SideB
	}
	agents := [2]agent.Agent{
		createAgent(opts.Search, m.agents[0], rng.Uint64()),
		createAgent(opts.Search, m.agents[1], rng.Uint64()),
	}
	e := engine.LocalEngine(agents, game.NewBoard(opts.Rows, opts.Cols), starting)
	return e.Run(ctx)
}

func createAgent(base searcher.Config, config metrics.AgentConfig, seed uint64) agent.Agent {
	if config.Kind == metrics.AgentRandom {
		return agent.NewRandomAgent(seed)
	}
	return agent.NewSearchAgent(searcher.NewSearcher(
		searcher.WithConfig(base),
		searcher.WithDepth(config.Depth),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	))
}

func records(played []playedGame) ([]metrics.GameRecord, []metrics.MoveRecord) {
	gameRecords := make([]metrics.GameRecord, 0, len(played))
	moveRecords := []metrics.MoveRecord{}
	for _, p := range played {
		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         p.index,
			Agent1:     p.agents[0].ID,
			Agent2:     p.agents[1].ID,
			GameMetric: p.result.Game,
		})
		for _, mm := range p.result.Moves {
			mover := p.agents[0].ID
			if mm.Side == game.SideB {
				mover = p.agents[1].ID
			}
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game:       p.index,
				Agent:      mover,
				MoveMetric: mm,
			})
		}
	}
	return gameRecords, moveRecords
}

func writeRecords(writer *metrics.Writer, played []playedGame) error {
	gameRecords, moveRecords := records(played)
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return err
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return err
	}
	log.Info().Msg("stored move records")
	return nil
}

func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(count) / float64(total)
}

func formatFloat(x float64, decimals int) string {
	scale := math.Pow10(decimals)
	return strconv.FormatFloat(math.Round(x*scale)/scale, 'f', -1, 64)
}
