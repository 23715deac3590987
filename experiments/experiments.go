// Package experiments runs batch AI-vs-AI games across search
// configurations and stores the outcomes and per-move search metrics as CSV.
package experiments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"wargame/engine"
	"wargame/experiments/metrics"
	"wargame/game"
	"wargame/player"
	"wargame/searcher"
)

const NumGames = 5 // Per match up

// RunPruningExperiment plays identical search configurations against each
// other with pruning on and off at increasing depth, to measure what
// alpha-beta buys in nodes and time without changing outcomes.
func RunPruningExperiment(budget time.Duration) error {
	configs := []metrics.AgentConfig{
		{ID: 1, MaxDepth: 2, Budget: budget, AlphaBeta: false, Heuristic: string(game.HeuristicComposite)},
		{ID: 2, MaxDepth: 2, Budget: budget, AlphaBeta: true, Heuristic: string(game.HeuristicComposite)},
		{ID: 3, MaxDepth: 4, Budget: budget, AlphaBeta: false, Heuristic: string(game.HeuristicComposite)},
		{ID: 4, MaxDepth: 4, Budget: budget, AlphaBeta: true, Heuristic: string(game.HeuristicComposite)},
	}
	// Same config for both players in each game
	// for the same playing strength and similar game length
	matchUps := [][2]metrics.AgentConfig{
		{configs[0], configs[0]},
		{configs[1], configs[1]},
		{configs[2], configs[2]},
		{configs[3], configs[3]},
	}

	writer, err := metrics.NewWriter("pruning")
	if err != nil {
		return fmt.Errorf("create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("store agent configs: %w", err)
	}

	count := 0
	var gameRecords []metrics.GameRecord
	var moveRecords []metrics.MoveRecord

	log.Info().Msg("starting pruning experiment...")
	for _, matchUp := range matchUps {
		config1, config2 := matchUp[0], matchUp[1]
		log.Info().Msgf("starting matchup between agent1=%+v and agent2=%+v...", config1, config2)

		for i := 0; i < NumGames; i++ {
			winner, gameMetric, moveMetrics, err := runGame(config1, config2)
			if err != nil {
				return fmt.Errorf("game %d: %w", count+1, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}
			log.Info().Msgf("completed game %d with winner: %s", i+1, winner)
		}
		log.Info().Msg("completed matchup")
	}
	log.Info().Msg("completed pruning experiment")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("write move records: %w", err)
	}
	return nil
}

// runGame executes a single game between two search agents and returns the
// winner and collected metrics.
func runGame(config1, config2 metrics.AgentConfig) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	opts := game.DefaultOptions()
	attacker := player.NewSearchAgent(newSearcher(config1, opts.Weights))
	defender := player.NewSearchAgent(newSearcher(config2, opts.Weights))

	e := engine.NewLocalEngine(game.NewGameState(opts), attacker, defender)
	winner, gameMetric, moveMetrics, err := e.Run()
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}
	return winner.String(), gameMetric, moveMetrics, nil
}

func newSearcher(config metrics.AgentConfig, weights game.Weights) *searcher.Minimax {
	return searcher.NewMinimax(
		searcher.WithMaxDepth(config.MaxDepth),
		searcher.WithBudget(config.Budget),
		searcher.WithAlphaBeta(config.AlphaBeta),
		searcher.WithEvaluationFn(game.HeuristicByID(game.HeuristicId(config.Heuristic), weights)),
		searcher.WithMetrics(),
	)
}
