package metrics

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"connect4/game"
	"connect4/searcher"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "vs_random")
	require.NoError(t, err)

	t.Run("creating a timestamped directory", func(t *testing.T) {
		rel, err := filepath.Rel(root, w.Dir())
		require.NoError(t, err)
		require.Equal(t, "vs_random", filepath.Dir(rel))
		require.DirExists(t, w.Dir())
	})

	t.Run("writing the setup", func(t *testing.T) {
		setup := Setup{
			Name:        "vs_random",
			Seed:        42,
			Games:       10,
			Depths:      []int{1, 2},
			Parallelism: 4,
			Agents: []AgentConfig{
				{ID: 0, Kind: AgentRandom},
				{ID: 1, Kind: AgentSearch, Depth: 1},
			},
		}
		require.NoError(t, w.WriteSetup(setup))

		data, err := os.ReadFile(filepath.Join(w.Dir(), "setup.yaml"))
		require.NoError(t, err)
		var loaded Setup
		require.NoError(t, yaml.Unmarshal(data, &loaded))
		require.Equal(t, setup, loaded)
	})

	t.Run("writing game records", func(t *testing.T) {
		start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		records := []GameRecord{
			{ID: 1, Agent1: 1, Agent2: 0, GameMetric: GameMetric{
				StartingSide: game.SideA, Winner: game.SideA,
				StartTime: start, EndTime: start.Add(time.Second), Duration: time.Second, TotalMoves: 7,
			}},
			{ID: 2, Agent1: 0, Agent2: 1, GameMetric: GameMetric{
				StartingSide: game.SideB, Winner: game.Empty, Draw: true,
				StartTime: start, EndTime: start, TotalMoves: 42,
			}},
		}
		require.NoError(t, w.WriteGameRecords(records))

		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, "id", rows[0][0])
		require.Equal(t, []string{"1", "1", "0", "A", "A", "false"}, rows[1][:6])
		require.Equal(t, []string{"2", "0", "1", "B", ".", "true"}, rows[2][:6])
		require.Equal(t, "42", rows[2][9])
	})

	t.Run("writing move records", func(t *testing.T) {
		records := []MoveRecord{
			{Game: 1, Agent: 1, MoveMetric: MoveMetric{
				Step: 1, Side: game.SideB, Column: 3,
				SearchMetric: searcher.SearchMetric{Depth: 2, Duration: time.Millisecond, Nodes: 57, Leaves: 49, Cutoffs: 6},
			}},
		}
		require.NoError(t, w.WriteMoveRecords(records))

		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"1", "1", "1", "B", "3", "2", "1ms", "57", "49", "0", "6"}, rows[1])
	})

	t.Run("writing a table", func(t *testing.T) {
		require.NoError(t, w.WriteTable("table.csv", []string{"", "Depth 2"}, [][]string{{"Depth 2", ""}}))

		rows := readCSV(t, filepath.Join(w.Dir(), "table.csv"))
		require.Equal(t, [][]string{{"", "Depth 2"}, {"Depth 2", ""}}, rows)
	})

	t.Run("writing a histogram", func(t *testing.T) {
		times := []time.Duration{time.Millisecond, 2 * time.Millisecond, 2 * time.Millisecond, 9 * time.Millisecond}
		require.NoError(t, w.WriteHistogram(times))

		data, err := os.ReadFile(filepath.Join(w.Dir(), "histogram.txt"))
		require.NoError(t, err)
		require.Contains(t, string(data), "move time (ms)")
	})
}

func TestFprintHistogram(t *testing.T) {
	t.Run("without samples", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, FprintHistogram(&buf, nil))
		require.Equal(t, "no moves recorded\n", buf.String())
	})

	t.Run("with identical samples", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, FprintHistogram(&buf, []time.Duration{time.Millisecond, time.Millisecond}))
		require.Equal(t, "all 2 moves took 1.000 ms\n", buf.String())
	})
}

func TestAgentConfigString(t *testing.T) {
	require.Equal(t, "random", AgentConfig{Kind: AgentRandom}.String())
	require.Equal(t, "depth 3", AgentConfig{Kind: AgentSearch, Depth: 3}.String())
}
