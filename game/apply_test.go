package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// checkInvariants asserts the board invariants that must hold after any
// successful Apply: health in [1, MaxHealth] on occupied cells, at most one
// command unit per side.
func checkInvariants(t *testing.T, gs *GameState) {
	t.Helper()
	commandUnits := map[Player]int{}
	for row := 0; row < Dim; row++ {
		for col := 0; col < Dim; col++ {
			u := gs.Board[row][col]
			if !u.Alive() {
				require.Equal(t, Unit{}, u, "dead units must be removed from the board")
				continue
			}
			require.GreaterOrEqual(t, u.Health, 1)
			require.LessOrEqual(t, u.Health, MaxHealth)
			if u.Type == AI {
				commandUnits[u.Owner]++
			}
		}
	}
	for p, n := range commandUnits {
		require.LessOrEqual(t, n, 1, "player %s has more than one command unit", p)
	}
}

func TestApplyMove(t *testing.T) {
	gs := NewGameState(testOptions())
	before := *gs

	next, err := gs.Apply(Move{MoveAction, Coord{2, 0}, Coord{3, 0}})
	require.NoError(t, err)

	require.Equal(t, before, *gs, "Apply must not mutate its input")
	_, occupied := next.At(Coord{2, 0})
	require.False(t, occupied, "source cell is vacated")
	u, occupied := next.At(Coord{3, 0})
	require.True(t, occupied)
	require.Equal(t, Program, u.Type)
	require.Equal(t, 1, next.TurnsPlayed, "turn counter advances")
	require.Equal(t, Defender, next.ToMove, "side to act flips")
	checkInvariants(t, next)
}

func TestApplyAttack(t *testing.T) {
	t.Run("damage is mutual and simultaneous", func(t *testing.T) {
		gs := place(Attacker, map[Coord]Unit{
			{2, 2}: {Attacker, Program, MaxHealth},
			{2, 3}: {Defender, Program, MaxHealth},
			{0, 0}: {Attacker, AI, MaxHealth},
			{4, 4}: {Defender, AI, MaxHealth},
		})
		next, err := gs.Apply(Move{AttackAction, Coord{2, 2}, Coord{2, 3}})
		require.NoError(t, err)

		src, _ := next.At(Coord{2, 2})
		dst, _ := next.At(Coord{2, 3})
		require.Equal(t, MaxHealth-3, src.Health, "defending program strikes back for 3")
		require.Equal(t, MaxHealth-3, dst.Health, "attacking program deals 3")
		checkInvariants(t, next)
	})

	t.Run("a destroyed unit leaves the board", func(t *testing.T) {
		gs := place(Attacker, map[Coord]Unit{
			{0, 0}: {Attacker, AI, MaxHealth},
			{2, 2}: {Attacker, Virus, MaxHealth},
			{2, 3}: {Defender, Tech, 5},
			{4, 4}: {Defender, AI, MaxHealth},
		})
		next, err := gs.Apply(Move{AttackAction, Coord{2, 2}, Coord{2, 3}})
		require.NoError(t, err)

		_, occupied := next.At(Coord{2, 3})
		require.False(t, occupied, "virus deals 6 to a tech at 5 health")
		src, _ := next.At(Coord{2, 2})
		require.Equal(t, MaxHealth-6, src.Health, "tech strikes back for 6 even while destroyed")
		checkInvariants(t, next)
	})

	t.Run("destroying the command unit decides the game", func(t *testing.T) {
		gs := place(Attacker, map[Coord]Unit{
			{0, 0}: {Attacker, AI, MaxHealth},
			{3, 4}: {Attacker, Virus, MaxHealth},
			{4, 4}: {Defender, AI, MaxHealth},
		})
		next, err := gs.Apply(Move{AttackAction, Coord{3, 4}, Coord{4, 4}})
		require.NoError(t, err)

		winner, over := next.Winner()
		require.True(t, over, "virus deals 9 to the command unit")
		require.Equal(t, Attacker, winner)
	})
}

func TestApplyRepair(t *testing.T) {
	t.Run("tech repairs a program by 3, clamped at max", func(t *testing.T) {
		gs := place(Defender, map[Coord]Unit{
			{0, 0}: {Attacker, AI, MaxHealth},
			{2, 2}: {Defender, Tech, MaxHealth},
			{2, 3}: {Defender, Program, 8},
			{4, 4}: {Defender, AI, MaxHealth},
		})
		next, err := gs.Apply(Move{RepairAction, Coord{2, 2}, Coord{2, 3}})
		require.NoError(t, err)

		dst, _ := next.At(Coord{2, 3})
		require.Equal(t, MaxHealth, dst.Health, "repair clamps at max health")
		src, _ := next.At(Coord{2, 2})
		require.Equal(t, MaxHealth, src.Health, "repair leaves the source untouched")
		checkInvariants(t, next)
	})

	t.Run("repairing a full-health unit is illegal", func(t *testing.T) {
		gs := place(Defender, map[Coord]Unit{
			{0, 0}: {Attacker, AI, MaxHealth},
			{2, 2}: {Defender, Tech, MaxHealth},
			{2, 3}: {Defender, Program, MaxHealth},
			{4, 4}: {Defender, AI, MaxHealth},
		})
		_, err := gs.Apply(Move{RepairAction, Coord{2, 2}, Coord{2, 3}})
		require.ErrorIs(t, err, ErrIllegalMove)
	})

	t.Run("a type with zero repair strength cannot repair", func(t *testing.T) {
		gs := place(Attacker, map[Coord]Unit{
			{0, 0}: {Attacker, AI, MaxHealth},
			{2, 2}: {Attacker, Virus, MaxHealth},
			{2, 3}: {Attacker, Program, 4},
			{4, 4}: {Defender, AI, MaxHealth},
		})
		_, err := gs.Apply(Move{RepairAction, Coord{2, 2}, Coord{2, 3}})
		require.ErrorIs(t, err, ErrIllegalMove)
	})
}

func TestApplySelfDestruct(t *testing.T) {
	t.Run("splash hits the full 3x3 block and nothing else", func(t *testing.T) {
		gs := place(Attacker, map[Coord]Unit{
			{2, 2}: {Attacker, Program, MaxHealth}, // the actor
			{1, 1}: {Defender, Program, MaxHealth}, // diagonal neighbor
			{1, 2}: {Attacker, Virus, MaxHealth},   // friendly neighbor
			{3, 3}: {Defender, Tech, 2},            // destroyed by splash
			{0, 0}: {Attacker, AI, MaxHealth},      // outside the block
			{4, 4}: {Defender, AI, MaxHealth},      // outside the block
		})
		next, err := gs.Apply(Move{SelfDestructAction, Coord{2, 2}, Coord{2, 2}})
		require.NoError(t, err)

		_, occupied := next.At(Coord{2, 2})
		require.False(t, occupied, "the acting unit is destroyed")

		diag, _ := next.At(Coord{1, 1})
		require.Equal(t, MaxHealth-SplashDamage, diag.Health, "diagonal neighbors take splash")
		friend, _ := next.At(Coord{1, 2})
		require.Equal(t, MaxHealth-SplashDamage, friend.Health, "splash hits friend and foe alike")
		_, occupied = next.At(Coord{3, 3})
		require.False(t, occupied, "splash destroys a unit at 2 health")

		far, _ := next.At(Coord{0, 0})
		require.Equal(t, MaxHealth, far.Health, "cells outside the block are unaffected")
		far, _ = next.At(Coord{4, 4})
		require.Equal(t, MaxHealth, far.Health, "cells outside the block are unaffected")
		checkInvariants(t, next)
	})

	t.Run("splash clamps at board edges", func(t *testing.T) {
		gs := place(Attacker, map[Coord]Unit{
			{0, 0}: {Attacker, AI, MaxHealth},
			{0, 1}: {Attacker, Virus, MaxHealth},
			{4, 4}: {Defender, AI, MaxHealth},
		})
		next, err := gs.Apply(Move{SelfDestructAction, Coord{0, 1}, Coord{0, 1}})
		require.NoError(t, err)

		ai, _ := next.At(Coord{0, 0})
		require.Equal(t, MaxHealth-SplashDamage, ai.Health)
		checkInvariants(t, next)
	})
}

func TestApplyRejectsIllegalMoves(t *testing.T) {
	gs := NewGameState(testOptions())

	cases := []struct {
		name string
		move Move
	}{
		{"moving an enemy unit", Move{MoveAction, Coord{4, 4}, Coord{3, 4}}},
		{"moving from an empty cell", Move{MoveAction, Coord{2, 2}, Coord{2, 3}}},
		{"moving onto an occupied cell", Move{MoveAction, Coord{0, 1}, Coord{1, 1}}},
		{"moving off the board", Move{MoveAction, Coord{0, 0}, Coord{-1, 0}}},
		{"moving two cells", Move{MoveAction, Coord{2, 0}, Coord{4, 0}}},
		{"attacking with no target", Move{AttackAction, Coord{2, 0}, Coord{3, 0}}},
		{"attacking a friend", Move{AttackAction, Coord{0, 0}, Coord{0, 1}}},
		{"repairing a unit already at full health", Move{RepairAction, Coord{0, 0}, Coord{1, 0}}},
		{"self-destructing an enemy unit", Move{SelfDestructAction, Coord{4, 4}, Coord{4, 4}}},
		{"self-destructing an empty cell", Move{SelfDestructAction, Coord{2, 2}, Coord{2, 2}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gs.Apply(tc.move)
			require.ErrorIs(t, err, ErrIllegalMove)
		})
	}
}

func TestGeneratedMovesAllApply(t *testing.T) {
	// Every move the generator produces must pass Apply's re-validation.
	gs := NewGameState(testOptions())
	for _, m := range gs.LegalMoves() {
		next, err := gs.Apply(m)
		require.NoError(t, err, "generated move %s must be applicable", m)
		checkInvariants(t, next)
	}
}
