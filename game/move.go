package game

import "fmt"

// Action discriminates the move variants.
type Action int

const (
	MoveAction Action = iota
	AttackAction
	RepairAction
	SelfDestructAction
)

func (a Action) String() string {
	switch a {
	case MoveAction:
		return "move"
	case AttackAction:
		return "attack"
	case RepairAction:
		return "repair"
	case SelfDestructAction:
		return "self-destruct"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Move is a tagged variant over the four action kinds. From and To are
// 4-adjacent for move/attack/repair; a self-destruct names only its source
// (To mirrors From).
type Move struct {
	Action Action
	From   Coord
	To     Coord
}

func (m Move) String() string {
	if m.Action == SelfDestructAction {
		return fmt.Sprintf("%s at %s", m.Action, m.From)
	}
	return fmt.Sprintf("%s %s %s", m.Action, m.From, m.To)
}

// ResolveMove interprets a raw coordinate pair, as entered in manual play,
// against the current state: the first of move, attack, repair (or
// self-destruct when from == to) that is legal for the side to act. Returns
// ErrIllegalMove when none applies.
func ResolveMove(gs *GameState, from, to Coord) (Move, error) {
	candidates := []Move{
		{Action: MoveAction, From: from, To: to},
		{Action: AttackAction, From: from, To: to},
		{Action: RepairAction, From: from, To: to},
	}
	if from == to {
		candidates = []Move{{Action: SelfDestructAction, From: from, To: from}}
	}
	for _, m := range candidates {
		if gs.check(m) == nil {
			return m, nil
		}
	}
	return Move{}, fmt.Errorf("%w: no action from %s to %s", ErrIllegalMove, from, to)
}
