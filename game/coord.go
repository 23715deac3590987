package game

import "fmt"

// Dim is the board dimension. The game is played on a Dim x Dim grid.
const Dim = 5

const rowLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Coord is a board cell position. Immutable value.
type Coord struct {
	Row int
	Col int
}

// Valid reports whether the coordinate lies on the board.
func (c Coord) Valid() bool {
	return c.Row >= 0 && c.Row < Dim && c.Col >= 0 && c.Col < Dim
}

// Adjacent returns the 4-adjacent coordinates in canonical order:
// up, left, down, right. Results may be off-board; callers filter with Valid.
func (c Coord) Adjacent() [4]Coord {
	return [4]Coord{
		{c.Row - 1, c.Col},
		{c.Row, c.Col - 1},
		{c.Row + 1, c.Col},
		{c.Row, c.Col + 1},
	}
}

// IsAdjacentTo reports 4-adjacency between two coordinates.
func (c Coord) IsAdjacentTo(o Coord) bool {
	if c.Row == o.Row && abs(c.Col-o.Col) == 1 {
		return true
	}
	return c.Col == o.Col && abs(c.Row-o.Row) == 1
}

// ManhattanTo returns the Manhattan distance to another coordinate.
func (c Coord) ManhattanTo(o Coord) int {
	return abs(c.Row-o.Row) + abs(c.Col-o.Col)
}

// Neighborhood returns the on-board cells of the 3x3 block centered on c,
// including c itself.
func (c Coord) Neighborhood() []Coord {
	cells := make([]Coord, 0, 9)
	for row := c.Row - 1; row <= c.Row+1; row++ {
		for col := c.Col - 1; col <= c.Col+1; col++ {
			n := Coord{row, col}
			if n.Valid() {
				cells = append(cells, n)
			}
		}
	}
	return cells
}

// String renders a coordinate as letter+digit, e.g. "C3".
func (c Coord) String() string {
	if !c.Valid() {
		return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
	}
	return fmt.Sprintf("%c%d", rowLetters[c.Row], c.Col)
}

// CoordFromString parses a letter+digit coordinate such as "C3" or "c3".
func CoordFromString(s string) (Coord, bool) {
	if len(s) != 2 {
		return Coord{}, false
	}
	row := int(upper(s[0]) - 'A')
	col := int(s[1] - '0')
	c := Coord{row, col}
	if !c.Valid() {
		return Coord{}, false
	}
	return c, true
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
