// Package player provides the agents the engine can dispatch a turn to:
// search-driven, random, and console-driven (manual play).
package player

import (
	"errors"

	"wargame/experiments/metrics"
	"wargame/game"
	"wargame/searcher"
)

// Agent decides one move for the side to act in the given state. Agents
// never mutate the state they are given.
type Agent interface {
	FindMove(state *game.GameState) (game.Move, metrics.SearchMetric, error)
}

// SearchAgent plays moves chosen by the minimax searcher.
type SearchAgent struct {
	search *searcher.Minimax
}

func NewSearchAgent(search *searcher.Minimax) *SearchAgent {
	return &SearchAgent{search: search}
}

func (a *SearchAgent) FindMove(state *game.GameState) (game.Move, metrics.SearchMetric, error) {
	return a.search.FindMove(state)
}

// ErrQuit is returned by the console agent when the player quits instead of
// entering a move.
var ErrQuit = errors.New("player quit")
