package engine

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wargame/experiments/metrics"
	"wargame/game"
	"wargame/player"
	"wargame/searcher"
)

func searchAgent(depth int) player.Agent {
	return player.NewSearchAgent(searcher.NewMinimax(
		searcher.WithMaxDepth(depth),
		searcher.WithBudget(200*time.Millisecond),
	))
}

func TestLocalEngineAutoGame(t *testing.T) {
	opts := game.DefaultOptions()
	opts.MaxTurns = 30

	var transcript bytes.Buffer
	e := NewLocalEngine(game.NewGameState(opts), searchAgent(2), searchAgent(2),
		WithTranscript(&transcript))

	winner, gameMetric, moveMetrics, err := e.Run()
	require.NoError(t, err)

	require.Contains(t, []game.Player{game.Attacker, game.Defender}, winner)
	require.Equal(t, winner.String(), gameMetric.Winner)
	require.Len(t, moveMetrics, gameMetric.TotalMoves, "one metric per move played")
	require.LessOrEqual(t, gameMetric.TotalMoves, opts.MaxTurns, "the turn limit bounds the game")
	require.NotEmpty(t, transcript.String(), "every turn is mirrored to the transcript")
	require.True(t, e.State().Terminal(), "the engine stops on a terminal state")
}

type stubAgent struct {
	move game.Move
	err  error
}

func (a stubAgent) FindMove(*game.GameState) (game.Move, metrics.SearchMetric, error) {
	return a.move, metrics.SearchMetric{}, a.err
}

func TestLocalEngineRejectsIllegalAgentMove(t *testing.T) {
	// An agent that returns a move failing re-validation is a fatal
	// engine error, never a silent corruption.
	illegal := stubAgent{move: game.Move{Action: game.MoveAction, From: game.Coord{Row: 4, Col: 4}, To: game.Coord{Row: 3, Col: 4}}}
	e := NewLocalEngine(game.NewGameState(game.DefaultOptions()), illegal, searchAgent(1))

	_, _, _, err := e.Run()
	require.ErrorIs(t, err, game.ErrIllegalMove)
}

func TestLocalEngineForfeitsStuckSide(t *testing.T) {
	stuck := stubAgent{err: searcher.ErrNoLegalMove}
	e := NewLocalEngine(game.NewGameState(game.DefaultOptions()), stuck, searchAgent(1))

	winner, _, _, err := e.Run()
	require.NoError(t, err, "a stuck side forfeits, the game still ends cleanly")
	require.Equal(t, game.Defender, winner)
}
