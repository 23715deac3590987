package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"wargame/engine"
	"wargame/experiments"
	"wargame/game"
	"wargame/player"
	"wargame/searcher"
)

func main() {
	mode := flag.String("mode", "manual", "game mode: manual|attacker|defender|auto")
	depth := flag.Int("depth", 0, "maximum search depth")
	budget := flag.Float64("time", 0, "search time budget in seconds")
	turns := flag.Int("turns", 0, "maximum number of turns")
	alphaBeta := flag.Bool("alphabeta", true, "enable alpha-beta pruning")
	heuristic := flag.String("heuristic", "", "heuristic: e0|e1|e2|composite")
	configPath := flag.String("config", "", "YAML tuning file for options and heuristic weights")
	trace := flag.String("trace", "", "game trace file (default: stdout)")
	experiment := flag.Bool("experiment", false, "run the pruning experiment instead of a game")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)

	opts := game.DefaultOptions()
	if *configPath != "" {
		var err error
		opts, err = game.LoadOptions(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load options")
		}
	}
	// Explicit flags win over the tuning file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "depth":
			opts.MaxDepth = *depth
		case "time":
			opts.MaxTime = *budget
		case "turns":
			opts.MaxTurns = *turns
		case "alphabeta":
			opts.AlphaBeta = *alphaBeta
		case "heuristic":
			opts.Heuristic = game.HeuristicId(*heuristic)
		}
	})

	if *experiment {
		if err := experiments.RunPruningExperiment(opts.Budget()); err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
		return
	}

	transcript := os.Stdout
	if *trace != "" {
		f, err := os.Create(*trace)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create trace file")
		}
		defer f.Close()
		transcript = f
	}

	attacker, defender, err := buildAgents(*mode, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid game mode")
	}

	state := game.NewGameState(opts)
	e := engine.NewLocalEngine(state, attacker, defender, engine.WithTranscript(transcript))

	winner, gameMetric, _, err := e.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("game aborted")
	}
	fmt.Printf("%s wins! (%d moves in %s)\n", winner, gameMetric.TotalMoves, gameMetric.Duration.Round(time.Millisecond))
}

// buildAgents maps a play mode onto per-side agents: "attacker" means a
// human attacker against the computer, "defender" the reverse, "manual"
// two humans, "auto" two computers.
func buildAgents(mode string, opts game.Options) (attacker, defender player.Agent, err error) {
	human := func() player.Agent { return player.NewConsoleAgent(os.Stdin, os.Stdout) }
	computer := func() player.Agent {
		return player.NewSearchAgent(searcher.NewMinimax(
			searcher.WithMaxDepth(opts.MaxDepth),
			searcher.WithBudget(opts.Budget()),
			searcher.WithAlphaBeta(opts.AlphaBeta),
			searcher.WithEvaluationFn(game.HeuristicByID(opts.Heuristic, opts.Weights)),
			searcher.WithMetrics(),
		))
	}

	switch mode {
	case "manual":
		return human(), human(), nil
	case "attacker":
		return human(), computer(), nil
	case "defender":
		return computer(), human(), nil
	case "auto":
		return computer(), computer(), nil
	default:
		return nil, nil, fmt.Errorf("unknown mode %q", mode)
	}
}
