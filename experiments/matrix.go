package experiments

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"connect4/experiments/metrics"
	"connect4/game"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// PairResult aggregates the games of AI1 (SideA) against AI2 (SideB).
type PairResult struct {
	AI1Depth int
	AI2Depth int
	Games    int
	AI1Wins  int
	AI2Wins  int
	Draws    int
	AI1Pct   float64
	AI2Pct   float64
	DrawPct  float64
}

// mirror swaps the roles of the two depths.
func (p PairResult) mirror() PairResult {
	return PairResult{
		AI1Depth: p.AI2Depth,
		AI2Depth: p.AI1Depth,
		Games:    p.Games,
		AI1Wins:  p.AI2Wins,
		AI2Wins:  p.AI1Wins,
		Draws:    p.Draws,
		AI1Pct:   p.AI2Pct,
		AI2Pct:   p.AI1Pct,
		DrawPct:  p.DrawPct,
	}
}

type MatrixResult struct {
	Depths []int
	// Win[i][j] is the win percentage of depth i against depth j; the
	// diagonal is unused
	Win   [][]float64
	Draw  [][]float64
	Pairs map[[2]int]PairResult // Keyed by depth indexes, both orders
}

// DepthMatrix plays every pair of distinct depths against each other.
func DepthMatrix(ctx context.Context, opts Options) (MatrixResult, error) {
	if err := opts.validate(2); err != nil {
		return MatrixResult{}, fmt.Errorf("failed to start experiment: %w", err)
	}

	log.Info().Msgf("starting ai vs ai experiment with depths %v...", opts.Depths)

	configs := lo.Map(opts.Depths, func(depth int, i int) metrics.AgentConfig {
		return metrics.AgentConfig{ID: i, Kind: metrics.AgentSearch, Depth: depth}
	})
	pairs := [][2]int{}
	matchUps := []matchUp{}
	for i := range configs {
		for j := i + 1; j < len(configs); j++ {
			pairs = append(pairs, [2]int{i, j})
			for g := 0; g < opts.Games; g++ {
				matchUps = append(matchUps, matchUp{
					index:  len(matchUps),
					agents: [2]metrics.AgentConfig{configs[i], configs[j]},
				})
			}
		}
	}

	played, err := playAll(ctx, opts, matchUps)
	if err != nil {
		return MatrixResult{}, err
	}

	size := len(opts.Depths)
	result := MatrixResult{
		Depths: opts.Depths,
		Win:    square(size),
		Draw:   square(size),
		Pairs:  map[[2]int]PairResult{},
	}
	for pi, pair := range pairs {
		i, j := pair[0], pair[1]
		pr := summarizePair(opts.Depths[i], opts.Depths[j], played[pi*opts.Games:(pi+1)*opts.Games])
		result.Pairs[[2]int{i, j}] = pr
		result.Pairs[[2]int{j, i}] = pr.mirror()
		result.Win[i][j], result.Win[j][i] = pr.AI1Pct, pr.AI2Pct
		result.Draw[i][j], result.Draw[j][i] = pr.DrawPct, pr.DrawPct
		log.Info().Msgf("completed depth %d vs depth %d: %.0f%% / %.0f%% / draws %.0f%%",
			pr.AI1Depth, pr.AI2Depth, pr.AI1Pct, pr.AI2Pct, pr.DrawPct)
	}

	log.Info().Msg("completed ai vs ai experiment")

	if opts.OutputDir == "" {
		return result, nil
	}
	if err := writeMatrix(opts, configs, played, result); err != nil {
		return MatrixResult{}, fmt.Errorf("failed to store results: %w", err)
	}
	return result, nil
}

func square(size int) [][]float64 {
	m := make([][]float64, size)
	for i := range m {
		m[i] = make([]float64, size)
	}
	return m
}

func summarizePair(d1, d2 int, games []playedGame) PairResult {
	pr := PairResult{AI1Depth: d1, AI2Depth: d2, Games: len(games)}
	pr.AI1Wins = lo.CountBy(games, func(p playedGame) bool { return p.result.Winner == game.SideA })
	pr.AI2Wins = lo.CountBy(games, func(p playedGame) bool { return p.result.Winner == game.SideB })
	pr.Draws = lo.CountBy(games, func(p playedGame) bool { return p.result.IsDraw() })
	pr.AI1Pct = percent(pr.AI1Wins, pr.Games)
	pr.AI2Pct = percent(pr.AI2Wins, pr.Games)
	pr.DrawPct = percent(pr.Draws, pr.Games)
	return pr
}

func depthLabel(depth int) string {
	return "Depth " + strconv.Itoa(depth)
}

func writeMatrix(opts Options, configs []metrics.AgentConfig, played []playedGame, result MatrixResult) error {
	writer, err := metrics.NewWriter(opts.OutputDir, "depth_matrix")
	if err != nil {
		return err
	}

	err = writer.WriteSetup(metrics.Setup{
		Name:        "depth_matrix",
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

	header := append([]string{""}, lo.Map(result.Depths, func(d int, _ int) string { return depthLabel(d) })...)
	rows := [][]string{}
	for i, d := range result.Depths {
		row := []string{depthLabel(d)}
		for j := range result.Depths {
			if i == j {
				row = append(row, "")
				continue
			}
			row = append(row, formatFloat(result.Win[i][j], 2))
		}
		rows = append(rows, row)
	}
	if err := writer.WriteTable("ai_vs_ai_matrix.csv", header, rows); err != nil {
		return err
	}
	log.Info().Msgf("saved %s", "ai_vs_ai_matrix.csv")

	header = []string{"ai1_depth", "ai2_depth", "ai1_pct", "ai2_pct", "draw_pct"}
	rows = [][]string{}
	for i := range result.Depths {
		for j := range result.Depths {
			pr, ok := result.Pairs[[2]int{i, j}]
			if !ok {
				continue
			}
			rows = append(rows, []string{
				strconv.Itoa(pr.AI1Depth),
				strconv.Itoa(pr.AI2Depth),
				formatFloat(pr.AI1Pct, 2),
				formatFloat(pr.AI2Pct, 2),
				formatFloat(pr.DrawPct, 2),
			})
		}
	}
	if err := writer.WriteTable("ai_vs_ai_full_stats.csv", header, rows); err != nil {
		return err
	}
	log.Info().Msgf("saved %s", "ai_vs_ai_full_stats.csv")

	if err := writer.WriteText("summary.txt", MatrixTable(result)); err != nil {
		return err
	}

	allTimes := []time.Duration{}
	for _, p := range played {
		for _, move := range p.result.Moves {
			allTimes = append(allTimes, move.Duration)
		}
	}
	if err := writer.WriteHistogram(allTimes); err != nil {
		return err
	}
	return writeRecords(writer, played)
}

// MatrixTable renders each pairing as row-side win %, draw % and column-side win %.
func MatrixTable(result MatrixResult) string {
	var ss strings.Builder
	fmt.Fprintf(&ss, "%-10s", "")
	for _, d := range result.Depths {
		fmt.Fprintf(&ss, "%-22s", depthLabel(d))
	}
	ss.WriteString("\n")
	for i, d := range result.Depths {
		fmt.Fprintf(&ss, "%-10s", depthLabel(d))
		for j := range result.Depths {
			if i == j {
				fmt.Fprintf(&ss, "%-22s", "-")
				continue
			}
			pr := result.Pairs[[2]int{i, j}]
			fmt.Fprintf(&ss, "%-22s", fmt.Sprintf("%.0f/%.0f/%.0f", pr.AI1Pct, pr.DrawPct, pr.AI2Pct))
		}
		ss.WriteString("\n")
	}
	return ss.String()
}
