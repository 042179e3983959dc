package board

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// CellSpec is one parsed layout token: the owning room name (empty for an
// unused square) and its wall flags.
type CellSpec struct {
	Room  string
	Walls Walls
}

// ParseLayout reads a comma-delimited, row-major grid of width*height tokens.
// A token is a room code optionally followed by "_" and wall letters, e.g.
// "K_NW". codes maps room codes to room names; unused marks squares outside
// the board.
func ParseLayout(r io.Reader, width, height int, codes map[string]string, unused string) ([]CellSpec, error) {
	var tokens []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		for _, tok := range strings.Split(scanner.Text(), ",") {
			tok = strings.TrimSpace(tok)
			if tok != "" {
				tokens = append(tokens, tok)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	if len(tokens) != width*height {
		return nil, fmt.Errorf("%w: expected %d squares (%dx%d), found %d", ErrInvalidLayout, width*height, width, height, len(tokens))
	}

	specs := make([]CellSpec, len(tokens))
	for i, tok := range tokens {
		code, wallCode, _ := strings.Cut(tok, "_")
		var spec CellSpec
		if code != unused {
			name, ok := codes[code]
			if !ok {
				return nil, fmt.Errorf("%w: unknown room code %q at row %d, column %d", ErrInvalidLayout, code, i/width, i%width)
			}
			spec.Room = name
		}
		for _, ch := range wallCode {
			w, ok := wallLetters[ch]
			if !ok {
				return nil, fmt.Errorf("%w: bad wall %q at row %d, column %d", ErrInvalidLayout, ch, i/width, i%width)
			}
			spec.Walls |= w
		}
		specs[i] = spec
	}
	return specs, nil
}

var wallLetters = map[rune]Walls{
	'N': WallNorth,
	'E': WallEast,
	'S': WallSouth,
	'W': WallWest,
}
