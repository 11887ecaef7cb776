package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"connect4/config"
	"connect4/experiments"
	"connect4/shell"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

const usage = `usage: connect4 [flags] [play|vs-random|matrix]

  play        play against the engine in an interactive shell (default)
  vs-random   play each experiment depth against a random agent
  matrix      play each pair of matrix depths against each other

Run with --help for the flags. Every flag can also be set with a
CONNECT4_ environment variable or a --config YAML file.`

func setupLogging(debug bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
	log.Debug().Msg("debug logging is on")
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, usage)
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogging(cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := "play"
	if len(cfg.Args) > 0 {
		command = cfg.Args[0]
	}

	switch command {
	case "play":
		sc := shell.NewShellController(cfg, os.Stdout)
		if err := sc.Loop(cfg.HistoryFile); err != nil {
			log.Fatal().Err(err).Msg("shell failed")
		}
	case "vs-random":
		results, err := experiments.VsRandom(ctx, cfg.ExperimentOptions(cfg.Experiment.Depths))
		if err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
		fmt.Print(experiments.VsRandomTable(results))
	case "matrix":
		result, err := experiments.DepthMatrix(ctx, cfg.ExperimentOptions(cfg.Experiment.MatrixDepths))
		if err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
		fmt.Print(experiments.MatrixTable(result))
	default:
		fmt.Fprintln(os.Stderr, usage)
		log.Fatal().Msgf("unknown command %q", command)
	}
}
