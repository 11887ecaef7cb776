package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"gopkg.in/yaml.v3"
)

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID playing SideA
	Agent2 int // AgentConfig.ID playing SideB
	GameMetric
}

type MoveRecord struct {
	Game  int // GameRecord.ID
	Agent int // AgentConfig.ID of the mover
	MoveMetric
}

// Setup is stored next to the results so a run can be reproduced.
type Setup struct {
	Name        string        `yaml:"name"`
	Seed        uint64        `yaml:"seed"`
	Games       int           `yaml:"games"`
	Depths      []int         `yaml:"depths"`
	Parallelism int           `yaml:"parallelism"`
	Agents      []AgentConfig `yaml:"agents"`
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<UTC timestamp> for the run's files.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteSetup(setup Setup) error {
	path := filepath.Join(w.baseDir, "setup.yaml")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create setup file: %w", err)
	}
	defer f.Close()

	encoder := yaml.NewEncoder(f)
	defer encoder.Close()
	if err := encoder.Encode(setup); err != nil {
		return fmt.Errorf("failed to write setup: %w", err)
	}
	return nil
}

// WriteTable writes a header and rows to a CSV file named name.
func (w *Writer) WriteTable(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "starting_side", "winner", "draw", "start_time", "end_time", "duration", "total_moves"}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			record.StartingSide.String(),
			record.Winner.String(),
			strconv.FormatBool(record.Draw),
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.WriteTable("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "agent", "step", "side", "column", "depth", "duration", "nodes", "leaves", "terminal_leaves", "cutoffs"}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Agent),
			strconv.Itoa(record.Step),
			record.Side.String(),
			strconv.Itoa(record.Column),
			strconv.Itoa(record.Depth),
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Leaves),
			strconv.Itoa(record.TerminalLeaves),
			strconv.Itoa(record.Cutoffs),
		})
	}
	return w.WriteTable("move_records.csv", header, rows)
}

// WriteText stores a free-form report such as a rendered table.
func (w *Writer) WriteText(name, text string) error {
	path := filepath.Join(w.baseDir, name)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// WriteHistogram renders move times in milliseconds to histogram.txt.
func (w *Writer) WriteHistogram(moveTimes []time.Duration) error {
	path := filepath.Join(w.baseDir, "histogram.txt")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create histogram file: %w", err)
	}
	defer f.Close()

	if err := FprintHistogram(f, moveTimes); err != nil {
		return fmt.Errorf("failed to write histogram: %w", err)
	}
	return nil
}

func FprintHistogram(out io.Writer, moveTimes []time.Duration) error {
	if len(moveTimes) == 0 {
		_, err := fmt.Fprintln(out, "no moves recorded")
		return err
	}
	millis := make([]float64, len(moveTimes))
	for i, d := range moveTimes {
		millis[i] = float64(d.Microseconds()) / 1000
	}
	if slices.Min(millis) == slices.Max(millis) {
		// Bucket width would be zero
		_, err := fmt.Fprintf(out, "all %d moves took %.3f ms\n", len(millis), millis[0])
		return err
	}
	fmt.Fprintln(out, "move time (ms)")
	return histogram.Fprint(out, histogram.Hist(15, millis), histogram.Linear(40))
}
