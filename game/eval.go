package game

import (
	"github.com/rs/zerolog/log"
)

// Evaluate scores a state from the Attacker's perspective: positive favors
// the Attacker, negative the Defender. Implementations are total over every
// reachable state, terminal states included.
type Evaluate func(*GameState) int

// HeuristicId selects a named heuristic variant.
type HeuristicId string

const (
	// HeuristicE0 is plain material: a flat value per combat unit and a
	// dominant value per command unit.
	HeuristicE0 HeuristicId = "e0"
	// HeuristicE1 is unit count plus command-unit safety: a penalty while
	// the command unit is engaged.
	HeuristicE1 HeuristicId = "e1"
	// HeuristicE2 favors mobile types (Virus, Tech) and adds the
	// legal-move mobility difference.
	HeuristicE2 HeuristicId = "e2"
	// HeuristicComposite combines material, health-weighted material and a
	// positional term pulling each side toward the enemy command unit.
	HeuristicComposite HeuristicId = "composite"
)

// WinScore is the saturating score for a decided game. Large enough to
// dominate every heuristic term, small enough that alpha-beta bounds can add
// to it without overflowing.
const WinScore = 2_000_000_000

// Fixed per-heuristic scoring constants (see also Weights for the composite
// heuristic's tunable terms).
const (
	commandValue     = 9999
	e0CombatValue    = 3
	e1EngagedPenalty = 100
	e2MobileValue    = 1000
)

// HeuristicByID resolves a heuristic id. Unknown ids fall back to the
// composite heuristic with a logged warning rather than failing: evaluation
// must stay total.
func HeuristicByID(id HeuristicId, w Weights) Evaluate {
	switch id {
	case HeuristicE0:
		return saturating(heuristicE0)
	case HeuristicE1:
		return saturating(heuristicE1)
	case HeuristicE2:
		return saturating(heuristicE2)
	case HeuristicComposite, "":
		return saturating(heuristicComposite(w))
	default:
		log.Warn().Str("heuristic", string(id)).Msg("unknown heuristic id, using composite")
		return saturating(heuristicComposite(w))
	}
}

// saturating wraps a heuristic body with the terminal check: a decided game
// scores +/-WinScore regardless of material on the board.
func saturating(body func(*GameState) int) Evaluate {
	return func(gs *GameState) int {
		if winner, over := gs.Winner(); over {
			if winner == Attacker {
				return WinScore
			}
			return -WinScore
		}
		return body(gs)
	}
}

func heuristicE0(gs *GameState) int {
	return e0Side(gs, Attacker) - e0Side(gs, Defender)
}

func e0Side(gs *GameState, p Player) int {
	score := 0
	for _, pu := range gs.UnitsOf(p) {
		if pu.Unit.Type == AI {
			score += commandValue
		} else {
			score += e0CombatValue
		}
	}
	return score
}

func heuristicE1(gs *GameState) int {
	return e1Side(gs, Attacker) - e1Side(gs, Defender)
}

func e1Side(gs *GameState, p Player) int {
	score := 0
	for _, pu := range gs.UnitsOf(p) {
		score++
		if pu.Unit.Type == AI {
			score += commandValue
			if gs.Engaged(pu.Coord) {
				score -= e1EngagedPenalty
			}
		}
	}
	return score
}

func heuristicE2(gs *GameState) int {
	material := e2Side(gs, Attacker) - e2Side(gs, Defender)
	mobility := len(gs.LegalMovesFor(Attacker)) - len(gs.LegalMovesFor(Defender))
	return material + mobility
}

func e2Side(gs *GameState, p Player) int {
	score := 0
	for _, pu := range gs.UnitsOf(p) {
		switch pu.Unit.Type {
		case AI:
			score += commandValue
		case Virus, Tech:
			score += e2MobileValue
		}
	}
	return score
}

// heuristicComposite is the default evaluation: weighted material,
// health-weighted material (unit value scaled by current health, i.e. the
// health fraction times MaxHealth), and a positional term rewarding each
// side's units for closing on the enemy command unit.
func heuristicComposite(w Weights) func(*GameState) int {
	values := w.unitValues()
	return func(gs *GameState) int {
		matA, healthA := materialSide(gs, Attacker, values)
		matD, healthD := materialSide(gs, Defender, values)

		score := w.Material*(matA-matD) + w.Health*(healthA-healthD)

		// Both command units are present here: the terminal wrapper has
		// already handled decided games.
		attackerAI, _ := gs.CommandUnit(Attacker)
		defenderAI, _ := gs.CommandUnit(Defender)
		posA := proximitySide(gs, Attacker, defenderAI)
		posD := proximitySide(gs, Defender, attackerAI)
		score += w.Position * (posA - posD)

		return score
	}
}

func materialSide(gs *GameState, p Player, values [NumUnitTypes]int) (material, health int) {
	for _, pu := range gs.UnitsOf(p) {
		v := values[pu.Unit.Type]
		material += v
		health += v * pu.Unit.Health
	}
	return material, health
}

// proximitySide sums, over p's units, how close each is to the enemy
// command unit: the board's maximum Manhattan distance minus the actual one.
func proximitySide(gs *GameState, p Player, enemyAI Coord) int {
	const maxDistance = 2 * (Dim - 1)
	score := 0
	for _, pu := range gs.UnitsOf(p) {
		score += maxDistance - pu.Coord.ManhattanTo(enemyAI)
	}
	return score
}
