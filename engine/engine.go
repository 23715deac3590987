// Package engine owns the outer game loop: it holds the authoritative state,
// dispatches each turn to the right agent, applies the returned move, and
// records the transcript.
package engine

import (
	"wargame/experiments/metrics"
	"wargame/game"
)

// Engine runs a game to completion.
type Engine interface {
	// Run starts a game and plays until it is decided.
	Run() (winner game.Player, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
