package board

import (
	"github.com/zyedidia/generic/mapset"
)

// Room is a named region of squares. Entrances are room squares that open onto
// the corridor; exits are the corridor squares on the other side of those
// openings. Both are derived once when the board is built.
type Room struct {
	ID       RoomID
	Name     string
	Corridor bool
	Reserved bool

	locations []Position
	entrances mapset.Set[Position]
	exits     []Position
	exitSet   mapset.Set[Position]
}

func newRoom(id RoomID, name string, corridor, reserved bool) *Room {
	return &Room{
		ID:        id,
		Name:      name,
		Corridor:  corridor,
		Reserved:  reserved,
		entrances: mapset.New[Position](),
		exitSet:   mapset.New[Position](),
	}
}

func (r *Room) addLocation(p Position) {
	r.locations = append(r.locations, p)
}

func (r *Room) addEntrance(p Position) {
	r.entrances.Put(p)
}

func (r *Room) addExit(p Position) {
	if r.exitSet.Has(p) {
		return
	}
	r.exitSet.Put(p)
	r.exits = append(r.exits, p)
}

// Locations returns every square of the room in row-major order.
func (r *Room) Locations() []Position {
	return append([]Position(nil), r.locations...)
}

// Exits returns the room's exit squares in the order they were found.
func (r *Room) Exits() []Position {
	return append([]Position(nil), r.exits...)
}

// IsEntrance reports whether p is a room square at a doorway.
func (r *Room) IsEntrance(p Position) bool {
	return r.entrances.Has(p)
}

// IsExit reports whether p is a corridor square leading into this room.
func (r *Room) IsExit(p Position) bool {
	return r.exitSet.Has(p)
}

// EntranceCount returns the number of doorway squares inside the room.
func (r *Room) EntranceCount() int {
	return r.entrances.Size()
}

// deriveEntrancesAndExits records, for every non-corridor room square that
// opens onto a corridor square, the room square as an entrance and the
// corridor square as an exit. Needs the complete grid.
func (b *Board) deriveEntrancesAndExits() {
	for _, room := range b.rooms {
		if room.Corridor {
			continue
		}
		for _, loc := range room.locations {
			for _, d := range AllDirections() {
				n := loc.Neighbor(d)
				if !b.InBounds(n) || b.walled(loc, d) {
					continue
				}
				if b.cells[b.index(n)].Room != b.corridor {
					continue
				}
				room.addEntrance(loc)
				room.addExit(n)
			}
		}
	}
}

// UnoccupiedExits returns the room's exits that no piece is standing on.
func (b *Board) UnoccupiedExits(r *Room) []Position {
	var free []Position
	for _, p := range r.exits {
		if !b.IsOccupied(p) {
			free = append(free, p)
		}
	}
	return free
}

// RandomRoomLocation picks a uniformly random square inside the room that is
// neither occupied nor an entrance. It returns false when the room is full.
func (b *Board) RandomRoomLocation(r *Room) (Position, bool) {
	var free []Position
	for _, p := range r.locations {
		if !b.IsOccupied(p) && !r.entrances.Has(p) {
			free = append(free, p)
		}
	}
	if len(free) == 0 {
		return Position{}, false
	}
	return free[b.rand.Intn(len(free))], true
}

// PlayerCanRoll is false only when a piece is sealed inside a room because
// every exit is blocked. The corridor never blocks rolling.
func (b *Board) PlayerCanRoll(r *Room) bool {
	if r == nil || r.Corridor {
		return true
	}
	for _, p := range r.exits {
		if !b.IsOccupied(p) {
			return true
		}
	}
	return false
}

// Corridor returns the connective room between all other rooms.
func (b *Board) Corridor() *Room {
	return b.rooms[b.corridor]
}

// Rooms returns every room, the corridor first.
func (b *Board) Rooms() []*Room {
	return append([]*Room(nil), b.rooms...)
}

// RoomByName looks a room up by its name.
func (b *Board) RoomByName(name string) (*Room, bool) {
	id, ok := b.roomIndex[name]
	if !ok {
		return nil, false
	}
	return b.rooms[id], true
}
