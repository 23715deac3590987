package game

import (
	"errors"
	"fmt"
)

// ErrIllegalMove is returned by Apply when a move fails legality
// re-validation against the given state.
var ErrIllegalMove = errors.New("illegal move")

// SplashDamage is the damage a self-destruct deals to every unit in the 3x3
// block around the origin. Tunable alongside the heuristic weights.
const SplashDamage = 2

// check re-validates a move against the legality rules for the side to act.
// Apply never trusts its caller, including the search engine.
func (gs *GameState) check(m Move) error {
	p := gs.ToMove
	switch m.Action {
	case MoveAction:
		if !gs.canMove(p, m.From, m.To) {
			return fmt.Errorf("%w: cannot move %s to %s", ErrIllegalMove, m.From, m.To)
		}
	case AttackAction:
		if !gs.canAttack(p, m.From, m.To) {
			return fmt.Errorf("%w: cannot attack %s from %s", ErrIllegalMove, m.To, m.From)
		}
	case RepairAction:
		if !gs.canRepair(p, m.From, m.To) {
			return fmt.Errorf("%w: cannot repair %s from %s", ErrIllegalMove, m.To, m.From)
		}
	case SelfDestructAction:
		if !gs.canSelfDestruct(p, m.From) {
			return fmt.Errorf("%w: cannot self-destruct at %s", ErrIllegalMove, m.From)
		}
	default:
		return fmt.Errorf("%w: unknown action %d", ErrIllegalMove, int(m.Action))
	}
	return nil
}

// Apply produces the successor state for a move: a new value with the move's
// effects, the turn counter advanced and the side to act flipped. The input
// state is never mutated. Returns ErrIllegalMove if the move does not pass
// re-validation.
func (gs *GameState) Apply(m Move) (*GameState, error) {
	if err := gs.check(m); err != nil {
		return nil, err
	}

	next := gs.Clone()
	switch m.Action {
	case MoveAction:
		u, _ := next.At(m.From)
		next.set(m.To, u)
		next.set(m.From, Unit{})
	case AttackAction:
		src, _ := next.At(m.From)
		dst, _ := next.At(m.To)
		// Combat damage is mutual and simultaneous.
		next.modHealth(m.To, -src.DamageTo(dst))
		next.modHealth(m.From, -dst.DamageTo(src))
	case RepairAction:
		src, _ := next.At(m.From)
		dst, _ := next.At(m.To)
		next.modHealth(m.To, src.RepairTo(dst))
	case SelfDestructAction:
		next.set(m.From, Unit{})
		for _, c := range m.From.Neighborhood() {
			next.modHealth(c, -SplashDamage)
		}
	}

	next.TurnsPlayed++
	next.ToMove = next.ToMove.Opponent()
	return next, nil
}

// modHealth adjusts the health of the unit at c, clamps it to
// [0, MaxHealth], and clears the cell when the unit is destroyed. No-op on
// empty cells.
func (gs *GameState) modHealth(c Coord, delta int) {
	u, ok := gs.At(c)
	if !ok {
		return
	}
	u.Health += delta
	if u.Health <= 0 {
		gs.set(c, Unit{})
		return
	}
	if u.Health > MaxHealth {
		u.Health = MaxHealth
	}
	gs.set(c, u)
}
