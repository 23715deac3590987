package player

import (
	"golang.org/x/exp/rand"

	"wargame/experiments/metrics"
	"wargame/game"
	"wargame/searcher"
)

// RandomAgent plays a uniformly random legal move. Used as a weak baseline
// in experiments and tests.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) FindMove(state *game.GameState) (game.Move, metrics.SearchMetric, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, metrics.SearchMetric{}, searcher.ErrNoLegalMove
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{}, nil
}
