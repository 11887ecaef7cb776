// Package config loads settings from flags, environment and an optional YAML
// file.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"connect4/experiments"
	"connect4/game"
	"connect4/searcher"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "CONNECT4"

const (
	KeyDebug         = "debug"
	KeyRows          = "rows"
	KeyCols          = "cols"
	KeyDepth         = "depth"
	KeySeed          = "seed"
	KeySentinel      = "sentinel"
	KeyCenter        = "weights.center"
	KeyFour          = "weights.four"
	KeyThree         = "weights.three"
	KeyTwo           = "weights.two"
	KeyOpponentThree = "weights.opponent-three"
	KeyGames         = "experiment.games"
	KeyDepths        = "experiment.depths"
	KeyMatrixDepths  = "experiment.matrix-depths"
	KeyParallelism   = "experiment.parallelism"
	KeyOutputDir     = "experiment.output-dir"
	KeyHistoryFile   = "history-file"
)

var ErrInvalidConfig = errors.New("invalid config")

type ExperimentConfig struct {
	Games        int
	Depths       []int
	MatrixDepths []int
	Parallelism  int
	OutputDir    string
}

type Config struct {
	Debug       bool
	Rows        int
	Cols        int
	Depth       int
	Seed        uint64 // Zero seeds from the clock
	Sentinel    int64
	weights     game.Weights
	Experiment  ExperimentConfig
	HistoryFile string
	Args        []string // Positional arguments left after the flags
}

func defaults(v *viper.Viper) {
	w := game.DefaultWeights()
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyRows, game.StandardRows)
	v.SetDefault(KeyCols, game.StandardCols)
	v.SetDefault(KeyDepth, searcher.DefaultDepth)
	v.SetDefault(KeySeed, 0)
	v.SetDefault(KeySentinel, searcher.DefaultSentinel)
	v.SetDefault(KeyCenter, w.Center)
	v.SetDefault(KeyFour, w.Four)
	v.SetDefault(KeyThree, w.Three)
	v.SetDefault(KeyTwo, w.Two)
	v.SetDefault(KeyOpponentThree, w.OpponentThree)
	v.SetDefault(KeyGames, experiments.DefaultGames)
	v.SetDefault(KeyDepths, []int{1, 2, 3, 4, 5})
	v.SetDefault(KeyMatrixDepths, []int{2, 3, 4, 5})
	v.SetDefault(KeyParallelism, experiments.DefaultParallelism)
	v.SetDefault(KeyOutputDir, experiments.DefaultOutputDir)
	v.SetDefault(KeyHistoryFile, "")
}

func flags(fs *pflag.FlagSet) map[string]string {
	fs.String("config", "", "YAML file with settings")
	fs.Bool("debug", false, "enable debug logging")
	fs.Int("rows", game.StandardRows, "board rows")
	fs.Int("cols", game.StandardCols, "board columns")
	fs.Int("depth", searcher.DefaultDepth, "search depth in plies")
	fs.Uint64("seed", 0, "random seed for tie-breaks, agents and starting sides (0 uses the clock)")
	fs.Int("games", experiments.DefaultGames, "games per depth or matchup")
	fs.IntSlice("depths", []int{1, 2, 3, 4, 5}, "depths played against the random agent")
	fs.IntSlice("matrix-depths", []int{2, 3, 4, 5}, "depths played against each other")
	fs.Int("parallelism", experiments.DefaultParallelism, "games played at once")
	fs.String("output-dir", experiments.DefaultOutputDir, "directory for experiment results")
	fs.String("history-file", "", "shell history file")

	// Flag name to config key
	return map[string]string{
		"debug":         KeyDebug,
		"rows":          KeyRows,
		"cols":          KeyCols,
		"depth":         KeyDepth,
		"seed":          KeySeed,
		"games":         KeyGames,
		"depths":        KeyDepths,
		"matrix-depths": KeyMatrixDepths,
		"parallelism":   KeyParallelism,
		"output-dir":    KeyOutputDir,
		"history-file":  KeyHistoryFile,
	}
}

// Load reads settings with precedence flags > environment > config file > defaults.
func (c *Config) Load(args []string) error {
	fs := pflag.NewFlagSet("connect4", pflag.ContinueOnError)
	bindings := flags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	v := viper.New()
	defaults(v)
	for name, key := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := c.fill(v); err != nil {
		return err
	}
	c.Args = fs.Args()
	return c.Validate()
}

func (c *Config) fill(v *viper.Viper) error {
	var err error
	c.Debug = v.GetBool(KeyDebug)
	c.Rows = v.GetInt(KeyRows)
	c.Cols = v.GetInt(KeyCols)
	c.Depth = v.GetInt(KeyDepth)
	c.Seed = v.GetUint64(KeySeed)
	c.Sentinel = v.GetInt64(KeySentinel)
	c.weights = game.Weights{
		Center:        v.GetInt64(KeyCenter),
		Four:          v.GetInt64(KeyFour),
		Three:         v.GetInt64(KeyThree),
		Two:           v.GetInt64(KeyTwo),
		OpponentThree: v.GetInt64(KeyOpponentThree),
	}
	c.Experiment.Games = v.GetInt(KeyGames)
	c.Experiment.Parallelism = v.GetInt(KeyParallelism)
	c.Experiment.OutputDir = v.GetString(KeyOutputDir)
	if c.Experiment.Depths, err = intSlice(v, KeyDepths); err != nil {
		return err
	}
	if c.Experiment.MatrixDepths, err = intSlice(v, KeyMatrixDepths); err != nil {
		return err
	}
	c.HistoryFile = v.GetString(KeyHistoryFile)
	return nil
}

// intSlice also accepts the comma or space separated form environment
// variables arrive in.
func intSlice(v *viper.Viper, key string) ([]int, error) {
	raw, ok := v.Get(key).(string)
	if !ok {
		return v.GetIntSlice(key), nil
	}
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' })
	ints := make([]int, 0, len(fields))
	for _, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
		}
		ints = append(ints, n)
	}
	return ints, nil
}

func (c *Config) Validate() error {
	if c.Rows < game.WindowLength || c.Cols < game.WindowLength {
		return fmt.Errorf("%w: board %dx%d is smaller than %d", ErrInvalidConfig, c.Rows, c.Cols, game.WindowLength)
	}
	if c.Depth < 1 {
		return fmt.Errorf("%w: depth %d", ErrInvalidConfig, c.Depth)
	}
	if c.Sentinel <= 0 {
		return fmt.Errorf("%w: sentinel %d", ErrInvalidConfig, c.Sentinel)
	}
	if c.Experiment.Games < 1 {
		return fmt.Errorf("%w: games %d", ErrInvalidConfig, c.Experiment.Games)
	}
	return nil
}

func (c *Config) Weights() game.Weights {
	return c.weights
}

// SearchConfig is the searcher configuration at the configured depth.
func (c *Config) SearchConfig() searcher.Config {
	return searcher.Config{
		Depth:    c.Depth,
		Weights:  c.weights,
		Sentinel: c.Sentinel,
	}
}

func (c *Config) SearchOptions() []searcher.Option {
	options := []searcher.Option{searcher.WithConfig(c.SearchConfig())}
	if c.Seed != 0 {
		options = append(options, searcher.WithSeed(c.Seed))
	}
	return options
}

// ExperimentOptions returns harness options over the given depths. The seed
// actually used is recorded in the run's setup file.
func (c *Config) ExperimentOptions(depths []int) experiments.Options {
	seed := c.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return experiments.Options{
		Depths:      depths,
		Games:       c.Experiment.Games,
		Seed:        seed,
		Parallelism: c.Experiment.Parallelism,
		OutputDir:   c.Experiment.OutputDir,
		Search:      c.SearchConfig(),
		Rows:        c.Rows,
		Cols:        c.Cols,
	}
}
