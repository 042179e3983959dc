package board

import "fmt"

// PieceKind tells characters and weapons apart.
type PieceKind int

const (
	CharacterPiece PieceKind = iota
	WeaponPiece
)

func (k PieceKind) String() string {
	return []string{"character", "weapon"}[k]
}

// PieceID indexes Board pieces. NoPiece marks an empty square.
type PieceID int

const NoPiece PieceID = -1

// Piece is a movable token. Its square is tracked by the Board.
type Piece struct {
	ID   PieceID
	Name string
	Icon string
	Kind PieceKind
}

// Pieces returns every piece, characters first.
func (b *Board) Pieces() []*Piece {
	return append([]*Piece(nil), b.pieces...)
}

// Piece looks a piece up by name.
func (b *Board) Piece(name string) (*Piece, bool) {
	id, ok := b.pieceIndex[name]
	if !ok {
		return nil, false
	}
	return b.pieces[id], true
}

// Location returns the square the piece stands on.
func (b *Board) Location(p *Piece) Position {
	return b.cells[b.location[p.ID]].Position
}

// PieceRoom returns the room the piece stands in.
func (b *Board) PieceRoom(p *Piece) *Room {
	return b.RoomAt(b.Location(p))
}

// InRoom reports whether the piece stands inside a room other than the corridor.
func (b *Board) InRoom(p *Piece) bool {
	r := b.PieceRoom(p)
	return r != nil && !r.Corridor
}

func (b *Board) addPiece(name, icon string, kind PieceKind, at Position) error {
	id := PieceID(len(b.pieces))
	piece := &Piece{ID: id, Name: name, Icon: icon, Kind: kind}
	b.pieces = append(b.pieces, piece)
	b.location = append(b.location, -1)
	b.pieceIndex[name] = id
	if err := b.Place(piece, at); err != nil {
		return fmt.Errorf("%w: cannot place %s: %v", ErrInvalidLayout, name, err)
	}
	return nil
}

// Place puts a piece on a square without any movement rules, only enforcing
// that the square is part of the board and empty. Movement goes through Step,
// ExitRoom and MoveTo instead.
func (b *Board) Place(p *Piece, at Position) error {
	c, ok := b.CellAt(at)
	if !ok {
		return fmt.Errorf("%w: %v", ErrOffBoard, at)
	}
	if !c.Used() {
		return fmt.Errorf("%w: %v", ErrUnusedCell, at)
	}
	idx := b.index(at)
	if occ := b.occupant[idx]; occ != NoPiece && occ != p.ID {
		return fmt.Errorf("%w: %v holds %s", ErrOccupied, at, b.pieces[occ].Name)
	}
	if old := b.location[p.ID]; old >= 0 {
		b.occupant[old] = NoPiece
	}
	b.occupant[idx] = p.ID
	b.location[p.ID] = idx
	return nil
}

// MoveIntoRoom relocates a piece to a random free square of the room, as a
// suggestion does. A piece already in the room stays put and a full room is a
// no-op; moved reports whether the piece changed square.
func (b *Board) MoveIntoRoom(p *Piece, r *Room) (moved bool, err error) {
	if r == nil || r.Corridor {
		return false, ErrNotInRoom
	}
	if b.PieceRoom(p) == r {
		return false, nil
	}
	dest, ok := b.RandomRoomLocation(r)
	if !ok {
		b.log.Debugf("No free square in %s for %s", r.Name, p.Name)
		return false, nil
	}
	if err := b.Place(p, dest); err != nil {
		return false, err
	}
	b.log.Debugf("Relocated %s into %s at %v", p.Name, r.Name, dest)
	return true, nil
}
