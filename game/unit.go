package game

import "fmt"

// Player identifies one of the two sides.
type Player int

const (
	Attacker Player = iota
	Defender
)

func (p Player) Opponent() Player {
	if p == Attacker {
		return Defender
	}
	return Attacker
}

func (p Player) String() string {
	if p == Attacker {
		return "Attacker"
	}
	return "Defender"
}

// UnitType enumerates the unit roles. AI is the command unit: losing it
// loses the game.
type UnitType int

const (
	AI UnitType = iota
	Tech
	Virus
	Program
	Firewall
)

// NumUnitTypes is the size of the closed unit-type set.
const NumUnitTypes = 5

// MaxHealth is the health cap shared by every unit type.
const MaxHealth = 9

var unitTypeNames = [NumUnitTypes]string{"AI", "Tech", "Virus", "Program", "Firewall"}

func (t UnitType) String() string {
	if t < 0 || int(t) >= NumUnitTypes {
		return fmt.Sprintf("UnitType(%d)", int(t))
	}
	return unitTypeNames[t]
}

// UnitTypeFromString resolves a type name, case-sensitively.
func UnitTypeFromString(s string) (UnitType, bool) {
	for i, name := range unitTypeNames {
		if name == s {
			return UnitType(i), true
		}
	}
	return 0, false
}

// damageTable[src][dst] is the damage a src-typed unit deals to a dst-typed
// unit in one attack. Indexed by UnitType constants.
var damageTable = [NumUnitTypes][NumUnitTypes]int{
	AI:       {3, 3, 3, 3, 1},
	Tech:     {1, 1, 6, 1, 1},
	Virus:    {9, 6, 1, 6, 1},
	Program:  {3, 3, 3, 3, 1},
	Firewall: {1, 1, 1, 1, 1},
}

// repairTable[src][dst] is the health a src-typed unit restores to a
// dst-typed friendly unit. Zero means src cannot repair dst.
var repairTable = [NumUnitTypes][NumUnitTypes]int{
	AI:   {0, 1, 1, 0, 0},
	Tech: {3, 0, 0, 3, 3},
}

// freeMover reports whether the type moves in any direction and may retreat
// while engaged. AI, Firewall and Program are locked in place by adjacent
// enemies and only ever advance toward the enemy corner.
func (t UnitType) freeMover() bool {
	return t == Tech || t == Virus
}

// Unit occupies a single board cell. The zero Unit (health 0) stands for an
// empty cell; live units always have health > 0.
type Unit struct {
	Owner  Player
	Type   UnitType
	Health int
}

func (u Unit) Alive() bool {
	return u.Health > 0
}

// DamageTo returns the table damage u deals to target per attack, before
// health clamping.
func (u Unit) DamageTo(target Unit) int {
	return damageTable[u.Type][target.Type]
}

// RepairTo returns the table health u restores to target, before clamping.
func (u Unit) RepairTo(target Unit) int {
	return repairTable[u.Type][target.Type]
}

// String renders a unit as owner initial + type initial + health, e.g. "aV9".
func (u Unit) String() string {
	owner := byte('d')
	if u.Owner == Attacker {
		owner = 'a'
	}
	return fmt.Sprintf("%c%c%d", owner, u.Type.String()[0], u.Health)
}
