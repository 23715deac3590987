package engine

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"wargame/experiments/metrics"
	"wargame/game"
	"wargame/player"
	"wargame/searcher"
)

type Option func(*LocalEngine)

// WithTranscript mirrors each turn (move played, resulting board, search
// stats) to a writer, typically the game trace file.
func WithTranscript(w io.Writer) Option {
	return func(e *LocalEngine) {
		e.transcript = w
	}
}

// LocalEngine drives a single in-process game between two agents. It owns
// the authoritative state: agents only ever see it read-only and the engine
// applies their moves through Apply, which re-validates, so a misbehaving
// agent fails loudly instead of corrupting the game.
type LocalEngine struct {
	state      *game.GameState
	agents     map[game.Player]player.Agent
	transcript io.Writer
}

func NewLocalEngine(state *game.GameState, attacker, defender player.Agent, options ...Option) *LocalEngine {
	e := &LocalEngine{
		state: state,
		agents: map[game.Player]player.Agent{
			game.Attacker: attacker,
			game.Defender: defender,
		},
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// State exposes the authoritative state, read-only by convention.
func (e *LocalEngine) State() *game.GameState {
	return e.state
}

func (e *LocalEngine) Run() (game.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	start := time.Now()
	var moveMetrics []metrics.MoveMetric

	e.print(e.state.Render())
	step := 0
	for !e.state.Terminal() {
		side := e.state.ToMove
		move, searchMetric, err := e.agents[side].FindMove(e.state)
		if err != nil {
			if errors.Is(err, searcher.ErrNoLegalMove) {
				// The stuck side forfeits the game.
				log.Info().Stringer("player", side).Msg("no legal moves, forfeits")
				winner := side.Opponent()
				e.print(fmt.Sprintf("%s has no legal moves. %s wins!\n", side, winner))
				return winner, e.gameMetric(winner, start, step), moveMetrics, nil
			}
			return 0, metrics.GameMetric{}, moveMetrics, fmt.Errorf("agent for %s: %w", side, err)
		}

		next, err := e.state.Apply(move)
		if err != nil {
			return 0, metrics.GameMetric{}, moveMetrics, fmt.Errorf("agent for %s returned %s: %w", side, move, err)
		}

		step++
		log.Info().Int("turn", step).Stringer("player", side).Stringer("move", move).Msg("move played")
		e.print(fmt.Sprintf("%s: %s\n", side, move))
		if searchMetric.Nodes > 0 {
			e.print(fmt.Sprintf("depth completed: %d, score: %d, evals: %d, avg branching: %.2f, time: %s\n",
				searchMetric.DepthCompleted, searchMetric.Score,
				searchMetric.TotalEvals(), searchMetric.AvgBranching(), searchMetric.Duration))
		}

		e.state = next
		e.print(e.state.Render())
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       side.String(),
			SearchMetric: searchMetric,
		})
	}

	winner, _ := e.state.Winner()
	log.Info().Stringer("winner", winner).Int("turns", e.state.TurnsPlayed).Msg("game over")
	e.print(fmt.Sprintf("%s wins in %d turns!\n", winner, e.state.TurnsPlayed))
	return winner, e.gameMetric(winner, start, step), moveMetrics, nil
}

func (e *LocalEngine) gameMetric(winner game.Player, start time.Time, moves int) metrics.GameMetric {
	end := time.Now()
	return metrics.GameMetric{
		Winner:     winner.String(),
		StartTime:  start,
		EndTime:    end,
		Duration:   end.Sub(start),
		TotalMoves: moves,
	}
}

func (e *LocalEngine) print(s string) {
	if e.transcript == nil {
		return
	}
	io.WriteString(e.transcript, s)
}
