package board

import "fmt"

// Position is a square on the board, addressed by row and column.
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Add offsets p by o.
func (p Position) Add(o Position) Position {
	return Position{Row: p.Row + o.Row, Col: p.Col + o.Col}
}

// Neighbor returns the position one square away in the given direction.
func (p Position) Neighbor(d Direction) Position {
	return p.Add(d.Offset())
}

// DirectionTo returns the direction that leads from p to an adjacent position q.
func (p Position) DirectionTo(q Position) (Direction, bool) {
	for _, d := range AllDirections() {
		if p.Neighbor(d) == q {
			return d, true
		}
	}
	return North, false
}

// Walls is a bit set of the four sides of a square.
type Walls uint8

const (
	WallNorth Walls = 1 << iota
	WallEast
	WallSouth
	WallWest
)

// Has reports whether the side facing d is walled.
func (w Walls) Has(d Direction) bool {
	return w&wallFor(d) != 0
}

func wallFor(d Direction) Walls {
	switch d {
	case North:
		return WallNorth
	case East:
		return WallEast
	case South:
		return WallSouth
	case West:
		return WallWest
	}
	return 0
}

// RoomID indexes Board rooms. NoRoom marks a square outside the playable board.
type RoomID int

const NoRoom RoomID = -1

// Cell is one square of the grid. Occupancy is kept by the Board, not the cell.
type Cell struct {
	Position Position
	Room     RoomID
	Walls    Walls
}

// Used reports whether the square belongs to a room (the corridor included).
func (c Cell) Used() bool {
	return c.Room != NoRoom
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// InBounds checks if a position lies within the grid.
func (b *Board) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < b.height && p.Col >= 0 && p.Col < b.width
}

func (b *Board) index(p Position) int {
	return p.Row*b.width + p.Col
}

// CellAt returns the square at p, or false if p is off the board.
func (b *Board) CellAt(p Position) (Cell, bool) {
	if !b.InBounds(p) {
		return Cell{}, false
	}
	return b.cells[b.index(p)], true
}

// RoomAt returns the room owning p, or nil for unused or off-board squares.
func (b *Board) RoomAt(p Position) *Room {
	c, ok := b.CellAt(p)
	if !ok || !c.Used() {
		return nil
	}
	return b.rooms[c.Room]
}

// Occupant returns the piece standing on p, if any.
func (b *Board) Occupant(p Position) (*Piece, bool) {
	if !b.InBounds(p) {
		return nil, false
	}
	id := b.occupant[b.index(p)]
	if id == NoPiece {
		return nil, false
	}
	return b.pieces[id], true
}

// IsOccupied reports whether a piece stands on p.
func (b *Board) IsOccupied(p Position) bool {
	_, ok := b.Occupant(p)
	return ok
}

// walled reports whether the side of p facing d is closed, checking the walls
// of both squares that share the edge.
func (b *Board) walled(p Position, d Direction) bool {
	if b.cells[b.index(p)].Walls.Has(d) {
		return true
	}
	n := p.Neighbor(d)
	if !b.InBounds(n) {
		return true
	}
	return b.cells[b.index(n)].Walls.Has(d.Opposite())
}
