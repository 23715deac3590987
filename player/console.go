package player

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"wargame/experiments/metrics"
	"wargame/game"
)

// ConsoleAgent reads moves from a text stream for manual play. A move is a
// coordinate pair like "C3 C4"; naming the same cell twice self-destructs.
type ConsoleAgent struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewConsoleAgent(in io.Reader, out io.Writer) *ConsoleAgent {
	return &ConsoleAgent{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

func (a *ConsoleAgent) FindMove(state *game.GameState) (game.Move, metrics.SearchMetric, error) {
	for {
		fmt.Fprintf(a.out, "%s, enter your move (e.g. C3 C4, same cell twice to self-destruct, q to quit): ", state.ToMove)
		if !a.in.Scan() {
			if err := a.in.Err(); err != nil {
				return game.Move{}, metrics.SearchMetric{}, fmt.Errorf("read move: %w", err)
			}
			return game.Move{}, metrics.SearchMetric{}, ErrQuit
		}
		line := strings.TrimSpace(a.in.Text())
		if strings.EqualFold(line, "q") {
			return game.Move{}, metrics.SearchMetric{}, ErrQuit
		}

		from, to, ok := parseCoordPair(line)
		if !ok {
			fmt.Fprintln(a.out, "Invalid coordinates! Try again.")
			continue
		}
		move, err := game.ResolveMove(state, from, to)
		if err != nil {
			fmt.Fprintln(a.out, "The move is not valid! Try again.")
			continue
		}
		return move, metrics.SearchMetric{}, nil
	}
}

func parseCoordPair(line string) (game.Coord, game.Coord, bool) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return game.Coord{}, game.Coord{}, false
	}
	from, ok := game.CoordFromString(fields[0])
	if !ok {
		return game.Coord{}, game.Coord{}, false
	}
	to, ok := game.CoordFromString(fields[1])
	if !ok {
		return game.Coord{}, game.Coord{}, false
	}
	return from, to, true
}
