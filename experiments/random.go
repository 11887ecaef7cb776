package experiments

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/stats"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// RandomResult aggregates the games of one search depth against the random agent.
type RandomResult struct {
	Depth       int
	Games       int
	AIWins      int
	RandomWins  int
	Draws       int
	AvgMoveTime float64       // Seconds per search move
	MoveTime    stats.Summary // Milliseconds per search move
	WinRate     stats.Interval
}

// VsRandom plays the search agent at every depth against the random agent.
// The search agent always plays SideB; the starting side is random per game.
func VsRandom(ctx context.Context, opts Options) ([]RandomResult, error) {
	if err := opts.validate(1); err != nil {
		return nil, fmt.Errorf("failed to start experiment: %w", err)
	}

	log.Info().Msgf("starting ai vs random experiment with depths %v...", opts.Depths)

	random := metrics.AgentConfig{ID: 0, Kind: metrics.AgentRandom}
	configs := []metrics.AgentConfig{random}
	matchUps := []matchUp{}
	for di, depth := range opts.Depths {
		ai := metrics.AgentConfig{ID: di + 1, Kind: metrics.AgentSearch, Depth: depth}
		configs = append(configs, ai)
		for i := 0; i < opts.Games; i++ {
			matchUps = append(matchUps, matchUp{
				index:  len(matchUps),
				agents: [2]metrics.AgentConfig{random, ai},
			})
		}
	}

	played, err := playAll(ctx, opts, matchUps)
	if err != nil {
		return nil, err
	}

	results := make([]RandomResult, 0, len(opts.Depths))
	for di, depth := range opts.Depths {
		games := played[di*opts.Games : (di+1)*opts.Games]
		results = append(results, summarizeVsRandom(depth, games))
		log.Info().Msgf("completed depth %d with %d ai wins of %d games", depth, results[di].AIWins, results[di].Games)
	}

	log.Info().Msg("completed ai vs random experiment")

	if opts.OutputDir == "" {
		return results, nil
	}
	err = writeVsRandom(opts, configs, played, results)
	if err != nil {
		return nil, fmt.Errorf("failed to store results: %w", err)
	}
	return results, nil
}

func summarizeVsRandom(depth int, games []playedGame) RandomResult {
	result := RandomResult{Depth: depth, Games: len(games)}
	result.AIWins = lo.CountBy(games, func(p playedGame) bool { return p.result.Winner == game.SideB })
	result.RandomWins = lo.CountBy(games, func(p playedGame) bool { return p.result.Winner == game.SideA })
	result.Draws = lo.CountBy(games, func(p playedGame) bool { return p.result.IsDraw() })

	times := aiMoveTimes(games)
	if len(times) > 0 {
		total := lo.Sum(times)
		result.AvgMoveTime = total.Seconds() / float64(len(times))
	}
	result.MoveTime = stats.Summarize(lo.Map(times, func(d time.Duration, _ int) float64 {
		return float64(d.Microseconds()) / 1000
	}))
	result.WinRate = stats.WinRateInterval(result.AIWins, result.Games, Confidence)
	return result
}

func aiMoveTimes(games []playedGame) []time.Duration {
	times := []time.Duration{}
	for _, p := range games {
		for _, move := range p.result.Moves {
			if move.Side == game.SideB {
				times = append(times, move.Duration)
			}
		}
	}
	return times
}

func writeVsRandom(opts Options, configs []metrics.AgentConfig, played []playedGame, results []RandomResult) error {
	writer, err := metrics.NewWriter(opts.OutputDir, "vs_random")
	if err != nil {
		return err
	}

	err = writer.WriteSetup(metrics.Setup{
		Name:        "vs_random",
		Seed:        opts.Seed,
		Games:       opts.Games,
		Depths:      opts.Depths,
		Parallelism: opts.Parallelism,
		Agents:      configs,
	})
	if err != nil {
		return err
	}
	log.Info().Msg("stored setup")

	header := []string{"depth", "games", "ai_wins", "random_wins", "draws", "avg_move_time_sec"}
	rows := lo.Map(results, func(r RandomResult, _ int) []string {
		return []string{
			strconv.Itoa(r.Depth),
			strconv.Itoa(r.Games),
			strconv.Itoa(r.AIWins),
			strconv.Itoa(r.RandomWins),
			strconv.Itoa(r.Draws),
			formatFloat(r.AvgMoveTime, 4),
		}
	})
	if err := writer.WriteTable("ai_vs_random_by_depth.csv", header, rows); err != nil {
		return err
	}
	log.Info().Msgf("saved %s", "ai_vs_random_by_depth.csv")

	if err := writer.WriteText("summary.txt", VsRandomTable(results)); err != nil {
		return err
	}
	if err := writer.WriteHistogram(aiMoveTimes(played)); err != nil {
		return err
	}
	return writeRecords(writer, played)
}

// VsRandomTable renders win rates with confidence intervals and move times.
func VsRandomTable(results []RandomResult) string {
	var ss strings.Builder
	fmt.Fprintf(&ss, "%-7s%-7s%-10s%-18s%-7s%-14s%-14s\n", "Depth", "Games", "Win %", "95% CI", "Draws", "Mean ms", "Stdev ms")
	for _, r := range results {
		interval := fmt.Sprintf("%.1f-%.1f", 100*r.WinRate.Low, 100*r.WinRate.High)
		fmt.Fprintf(&ss, "%-7d%-7d%-10.1f%-18s%-7d%-14.3f%-14.3f\n",
			r.Depth, r.Games, percent(r.AIWins, r.Games), interval, r.Draws, r.MoveTime.Mean, r.MoveTime.Stdev)
	}
	return ss.String()
}
