package board

import (
	"fmt"
	"strings"
)

// Direction is one of the four sides of a square, clockwise from North.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

var (
	directionNames = []string{"North", "East", "South", "West"}

	// offsets is the move one square in each direction, indexed by Direction.
	offsets = []Position{North: {Row: -1}, East: {Col: 1}, South: {Row: 1}, West: {Col: -1}}
)

// AllDirections lists the directions clockwise from North.
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

func (d Direction) String() string {
	if !d.IsValid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

func (d Direction) IsValid() bool {
	return d >= North && d <= West
}

// Opposite is the side facing d across a shared edge.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Offset is the change of Position for one step in direction d. An invalid
// direction does not move.
func (d Direction) Offset() Position {
	if !d.IsValid() {
		return Position{}
	}
	return offsets[d]
}

// ParseDirection accepts compass letters (N/E/S/W), keyboard letters (W/A/S/D
// for up/left/down/right) and full names. A bare "W" or "S" is read as a key,
// matching the console controls.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "w", "up", "n", "north":
		return North, nil
	case "d", "right", "e", "east":
		return East, nil
	case "s", "down", "south":
		return South, nil
	case "a", "left", "west":
		return West, nil
	}
	return North, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}
