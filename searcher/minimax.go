// Package searcher implements the decision engine: depth-limited minimax
// with optional alpha-beta pruning, run under iterative deepening and a
// wall-clock budget.
package searcher

import (
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"wargame/experiments/metrics"
	"wargame/game"
)

// ErrNoLegalMove is returned when the side to act has no legal moves at the
// root. The driver decides what that means for the game.
var ErrNoLegalMove = errors.New("no legal move for side to act")

// Alpha-beta window bounds. Wider than any evaluation, including the
// saturating win scores, and safe to negate.
const (
	alphaMin = math.MinInt / 2
	betaMax  = math.MaxInt / 2
)

type Option func(*Minimax)

// Minimax selects moves by iterative-deepening minimax over the game tree.
// The Attacker maximizes and the Defender minimizes the same evaluation
// scale, so one searcher instance can play either side.
type Minimax struct {
	maxDepth  int
	budget    time.Duration
	alphaBeta bool
	evaluate  game.Evaluate
	metrics   metrics.Collector
}

func WithMaxDepth(depth int) Option {
	return func(m *Minimax) {
		if depth > 0 {
			m.maxDepth = depth
		}
	}
}

func WithBudget(budget time.Duration) Option {
	return func(m *Minimax) {
		if budget > 0 {
			m.budget = budget
		}
	}
}

func WithAlphaBeta(enabled bool) Option {
	return func(m *Minimax) {
		m.alphaBeta = enabled
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMinimax(options ...Option) *Minimax {
	defaults := game.DefaultOptions()
	m := &Minimax{
		maxDepth:  defaults.MaxDepth,
		budget:    defaults.Budget(),
		alphaBeta: defaults.AlphaBeta,
		evaluate:  game.HeuristicByID(defaults.Heuristic, defaults.Weights),
		metrics:   metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// FindMove returns the best move for the side to act, searching depth 1 up
// to the depth limit and keeping the result of the deepest iteration that
// completed within budget. With at least one legal move it always returns a
// move: if not even depth 1 finishes, the first move in canonical order is
// the fallback. Returns ErrNoLegalMove only when the root has no moves.
func (m *Minimax) FindMove(state *game.GameState) (game.Move, metrics.SearchMetric, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, metrics.SearchMetric{}, ErrNoLegalMove
	}

	m.metrics.Start(m.maxDepth, m.alphaBeta)
	deadline := time.Now().Add(m.budget)

	best := moves[0]
	bestScore := 0
	for depth := 1; depth <= m.maxDepth; depth++ {
		move, score, complete := m.searchRoot(state, moves, depth, deadline)
		if !complete {
			log.Debug().Int("depth", depth).Msg("budget exhausted, keeping previous depth")
			break
		}
		best, bestScore = move, score
		m.metrics.DepthComplete(depth, score)
		log.Debug().Int("depth", depth).Int("score", score).Stringer("move", best).
			Msg("depth complete")
	}

	metric := m.metrics.Complete()
	log.Debug().Stringer("player", state.ToMove).Stringer("move", best).
		Int("score", bestScore).Dur("elapsed", metric.Duration).
		Msg("move selected")
	return best, metric, nil
}

// searchRoot runs one fixed-depth iteration over the root moves. Ties keep
// the earliest move in canonical order, which makes the choice reproducible
// and identical with pruning on or off.
func (m *Minimax) searchRoot(state *game.GameState, moves []game.Move, depth int, deadline time.Time) (game.Move, int, bool) {
	m.metrics.AddNode()
	maximizing := state.ToMove == game.Attacker
	alpha, beta := alphaMin, betaMax

	best := moves[0]
	bestScore := alphaMin
	if !maximizing {
		bestScore = betaMax
	}

	for _, move := range moves {
		child, err := state.Apply(move)
		if err != nil {
			// Root moves come from LegalMoves on the same state.
			log.Error().Err(err).Stringer("move", move).Msg("generated move failed validation")
			continue
		}
		score, ok := m.search(child, depth-1, alpha, beta, deadline)
		if !ok {
			return best, bestScore, false
		}
		if maximizing {
			if score > bestScore {
				best, bestScore = move, score
			}
			if m.alphaBeta && bestScore > alpha {
				alpha = bestScore
			}
		} else {
			if score < bestScore {
				best, bestScore = move, score
			}
			if m.alphaBeta && bestScore < beta {
				beta = bestScore
			}
		}
	}
	return best, bestScore, true
}

// search evaluates a node to the given remaining depth. The boolean result
// is false when the deadline passed, which aborts the whole iteration: a
// partially searched depth is never trusted.
func (m *Minimax) search(state *game.GameState, depth int, alpha, beta int, deadline time.Time) (int, bool) {
	if !time.Now().Before(deadline) {
		return 0, false
	}
	m.metrics.AddNode()

	if depth == 0 || state.Terminal() {
		m.metrics.AddEvaluation(depth)
		return m.evaluate(state), true
	}

	moves := state.LegalMoves()
	if len(moves) == 0 {
		// Pass-equivalent: the side to act is stuck but the game is not
		// over. Score it statically.
		m.metrics.AddEvaluation(depth)
		return m.evaluate(state), true
	}

	maximizing := state.ToMove == game.Attacker
	value := alphaMin
	if !maximizing {
		value = betaMax
	}

	for _, move := range moves {
		child, err := state.Apply(move)
		if err != nil {
			log.Error().Err(err).Stringer("move", move).Msg("generated move failed validation")
			continue
		}
		score, ok := m.search(child, depth-1, alpha, beta, deadline)
		if !ok {
			return 0, false
		}
		if maximizing {
			if score > value {
				value = score
			}
			if m.alphaBeta {
				if value > alpha {
					alpha = value
				}
				if alpha >= beta {
					break
				}
			}
		} else {
			if score < value {
				value = score
			}
			if m.alphaBeta {
				if value < beta {
					beta = value
				}
				if alpha >= beta {
					break
				}
			}
		}
	}
	return value, true
}
