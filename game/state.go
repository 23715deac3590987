package game

import "strings"

// Board maps each cell to a Unit. The zero Unit marks an empty cell, so a
// Board is a plain value: assignment is a deep copy.
type Board [Dim][Dim]Unit

// GameState is the complete game position. It is a value type: Clone (or
// plain assignment of the dereferenced value) yields an independent copy, so
// search can derive successors without ever touching an ancestor.
type GameState struct {
	Board       Board
	TurnsPlayed int
	ToMove      Player
	MaxTurns    int
}

// PlacedUnit pairs a live unit with its cell.
type PlacedUnit struct {
	Coord Coord
	Unit  Unit
}

// NewGameState sets up the fixed initial position: the Attacker anchored in
// the top-left corner, the Defender in the bottom-right, command units on
// the corner cells. The Attacker moves first.
func NewGameState(opts Options) *GameState {
	gs := &GameState{
		ToMove:   Attacker,
		MaxTurns: opts.MaxTurns,
	}
	md := Dim - 1

	gs.set(Coord{0, 0}, Unit{Attacker, AI, MaxHealth})
	gs.set(Coord{1, 0}, Unit{Attacker, Virus, MaxHealth})
	gs.set(Coord{0, 1}, Unit{Attacker, Virus, MaxHealth})
	gs.set(Coord{2, 0}, Unit{Attacker, Program, MaxHealth})
	gs.set(Coord{0, 2}, Unit{Attacker, Program, MaxHealth})
	gs.set(Coord{1, 1}, Unit{Attacker, Firewall, MaxHealth})

	gs.set(Coord{md, md}, Unit{Defender, AI, MaxHealth})
	gs.set(Coord{md - 1, md}, Unit{Defender, Tech, MaxHealth})
	gs.set(Coord{md, md - 1}, Unit{Defender, Tech, MaxHealth})
	gs.set(Coord{md - 2, md}, Unit{Defender, Firewall, MaxHealth})
	gs.set(Coord{md, md - 2}, Unit{Defender, Firewall, MaxHealth})
	gs.set(Coord{md - 1, md - 1}, Unit{Defender, Program, MaxHealth})

	return gs
}

// Clone returns an independent copy of the state.
func (gs *GameState) Clone() *GameState {
	next := *gs
	return &next
}

// At returns the unit at c and whether the cell is occupied.
func (gs *GameState) At(c Coord) (Unit, bool) {
	if !c.Valid() {
		return Unit{}, false
	}
	u := gs.Board[c.Row][c.Col]
	return u, u.Alive()
}

func (gs *GameState) set(c Coord, u Unit) {
	gs.Board[c.Row][c.Col] = u
}

// UnitsOf lists a player's live units in row-major order.
func (gs *GameState) UnitsOf(p Player) []PlacedUnit {
	var units []PlacedUnit
	for row := 0; row < Dim; row++ {
		for col := 0; col < Dim; col++ {
			u := gs.Board[row][col]
			if u.Alive() && u.Owner == p {
				units = append(units, PlacedUnit{Coord{row, col}, u})
			}
		}
	}
	return units
}

// CommandUnit locates p's command unit, if it is still on the board.
func (gs *GameState) CommandUnit(p Player) (Coord, bool) {
	for _, pu := range gs.UnitsOf(p) {
		if pu.Unit.Type == AI {
			return pu.Coord, true
		}
	}
	return Coord{}, false
}

// Engaged reports whether the unit at c has an enemy in a 4-adjacent cell.
func (gs *GameState) Engaged(c Coord) bool {
	u, ok := gs.At(c)
	if !ok {
		return false
	}
	for _, adj := range c.Adjacent() {
		if other, ok := gs.At(adj); ok && other.Owner != u.Owner {
			return true
		}
	}
	return false
}

// Winner returns the winning player once the game is over. Turn-limit
// expiry counts as a Defender win.
func (gs *GameState) Winner() (Player, bool) {
	if gs.TurnsPlayed >= gs.MaxTurns {
		return Defender, true
	}
	if _, ok := gs.CommandUnit(Attacker); !ok {
		return Defender, true
	}
	if _, ok := gs.CommandUnit(Defender); !ok {
		return Attacker, true
	}
	return 0, false
}

// Terminal reports whether the game is over.
func (gs *GameState) Terminal() bool {
	_, over := gs.Winner()
	return over
}

// forward reports whether a step from src to dst goes toward the enemy
// corner for player p: down/right for the Attacker, up/left for the
// Defender. Only direction-restricted types consult this.
func forward(p Player, src, dst Coord) bool {
	if p == Attacker {
		return dst.Row == src.Row+1 || dst.Col == src.Col+1
	}
	return dst.Row == src.Row-1 || dst.Col == src.Col-1
}

func (gs *GameState) canMove(p Player, from, to Coord) bool {
	u, ok := gs.At(from)
	if !ok || u.Owner != p {
		return false
	}
	if !to.Valid() || !from.IsAdjacentTo(to) {
		return false
	}
	if _, occupied := gs.At(to); occupied {
		return false
	}
	if !u.Type.freeMover() {
		if gs.Engaged(from) {
			return false
		}
		if !forward(p, from, to) {
			return false
		}
	}
	return true
}

func (gs *GameState) canAttack(p Player, from, to Coord) bool {
	src, ok := gs.At(from)
	if !ok || src.Owner != p {
		return false
	}
	dst, ok := gs.At(to)
	if !ok || dst.Owner == p {
		return false
	}
	return from.IsAdjacentTo(to)
}

func (gs *GameState) canRepair(p Player, from, to Coord) bool {
	src, ok := gs.At(from)
	if !ok || src.Owner != p {
		return false
	}
	dst, ok := gs.At(to)
	if !ok || dst.Owner != p {
		return false
	}
	return from.IsAdjacentTo(to) && dst.Health < MaxHealth && src.RepairTo(dst) > 0
}

func (gs *GameState) canSelfDestruct(p Player, at Coord) bool {
	u, ok := gs.At(at)
	return ok && u.Owner == p
}

// LegalMoves enumerates every legal move for the side to act, in canonical
// order: row-major by source, then by action kind (move, attack, repair,
// self-destruct), directions up/left/down/right. Search pruning and
// tie-breaking depend on this order being stable.
func (gs *GameState) LegalMoves() []Move {
	return gs.LegalMovesFor(gs.ToMove)
}

// LegalMovesFor enumerates legal moves as if p were the side to act. The
// mobility heuristic uses this for both players on the same state.
func (gs *GameState) LegalMovesFor(p Player) []Move {
	var moves []Move
	for _, pu := range gs.UnitsOf(p) {
		src := pu.Coord
		for _, dst := range src.Adjacent() {
			if gs.canMove(p, src, dst) {
				moves = append(moves, Move{MoveAction, src, dst})
			}
		}
		for _, dst := range src.Adjacent() {
			if gs.canAttack(p, src, dst) {
				moves = append(moves, Move{AttackAction, src, dst})
			}
		}
		for _, dst := range src.Adjacent() {
			if gs.canRepair(p, src, dst) {
				moves = append(moves, Move{RepairAction, src, dst})
			}
		}
		moves = append(moves, Move{SelfDestructAction, src, src})
	}
	return moves
}

// Render returns a text picture of the board with row letters and column
// numbers, used by the transcript and the console player.
func (gs *GameState) Render() string {
	var b strings.Builder
	b.WriteString("    ")
	for col := 0; col < Dim; col++ {
		b.WriteByte('0' + byte(col))
		b.WriteString("   ")
	}
	b.WriteByte('\n')
	for row := 0; row < Dim; row++ {
		b.WriteByte(rowLetters[row])
		b.WriteString(": ")
		for col := 0; col < Dim; col++ {
			u := gs.Board[row][col]
			if u.Alive() {
				b.WriteString(u.String())
				b.WriteByte(' ')
			} else {
				b.WriteString(" .  ")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
