package cli

import (
	"errors"
	"example.com/cluedo-engine/internal/board"
	"fmt"
	"strconv"
	"strings"
)

var errUsage = errors.New("usage")

// commandNames feeds tab completion at the game prompt.
var commandNames = []string{
	"roll", "move", "exit", "goto", "stop", "suggest", "pass", "accuse",
	"board", "hand", "notes", "end", "help", "quit",
}

func completeCommand(line string) []string {
	var matches []string
	for _, name := range commandNames {
		if strings.HasPrefix(name, strings.ToLower(line)) {
			matches = append(matches, name)
		}
	}
	return matches
}

// parseMoves reads a walk such as "wwd" or "north east" into directions.
func parseMoves(args []string) ([]board.Direction, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: move <wasd...> or move <direction>...", errUsage)
	}
	var dirs []board.Direction
	for _, arg := range args {
		if len(arg) > 1 && strings.Trim(strings.ToLower(arg), "wasd") == "" {
			for _, key := range arg {
				d, err := board.ParseDirection(string(key))
				if err != nil {
					return nil, err
				}
				dirs = append(dirs, d)
			}
			continue
		}
		d, err := board.ParseDirection(arg)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, d)
	}
	return dirs, nil
}

// parseSquare reads "<row> <col>".
func parseSquare(args []string) (board.Position, error) {
	if len(args) != 2 {
		return board.Position{}, fmt.Errorf("%w: goto <row> <col>", errUsage)
	}
	row, err1 := strconv.Atoi(args[0])
	col, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		return board.Position{}, fmt.Errorf("%w: row and column must be numbers", errUsage)
	}
	return board.Position{Row: row, Col: col}, nil
}

// parseExit picks the n-th free exit, counting from 1 as drawn on the board.
func parseExit(args []string, exits []board.Position) (board.Position, error) {
	if len(exits) == 0 {
		return board.Position{}, fmt.Errorf("%w: every exit is blocked", board.ErrOccupied)
	}
	if len(args) != 1 {
		if len(exits) == 1 && len(args) == 0 {
			return exits[0], nil
		}
		return board.Position{}, fmt.Errorf("%w: exit <1-%d>", errUsage, len(exits))
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(exits) {
		return board.Position{}, fmt.Errorf("%w: exit <1-%d>", errUsage, len(exits))
	}
	return exits[n-1], nil
}
