// Package board holds the grid, rooms, pieces and movement rules of a Cluedo board.
package board

import (
	"example.com/cluedo-engine/internal/config"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/sirupsen/logrus"
)

// Board is the authoritative owner of the grid and of every piece's square.
// Rooms and pieces refer to squares by position; only the Board writes occupancy.
type Board struct {
	width, height int
	cells         []Cell
	occupant      []PieceID

	rooms     []*Room
	roomIndex map[string]RoomID
	corridor  RoomID

	pieces     []*Piece
	location   []int
	pieceIndex map[string]PieceID

	rand *rand.Rand
	log  logrus.FieldLogger
}

// Load opens the layout file named by the config and builds the board.
func Load(cfg *config.GameConfig, rnd *rand.Rand, log logrus.FieldLogger) (*Board, error) {
	f, err := os.Open(cfg.BoardPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	defer f.Close()
	return New(cfg, f, rnd, log)
}

// New builds a board from a layout, derives room entrances and exits, puts the
// characters on their starting squares and deals the weapons into random rooms.
func New(cfg *config.GameConfig, layout io.Reader, rnd *rand.Rand, log logrus.FieldLogger) (*Board, error) {
	specs, err := ParseLayout(layout, cfg.Width, cfg.Height, cfg.LayoutCodes(), cfg.UnusedCode)
	if err != nil {
		return nil, err
	}

	b := &Board{
		width:      cfg.Width,
		height:     cfg.Height,
		cells:      make([]Cell, len(specs)),
		occupant:   make([]PieceID, len(specs)),
		roomIndex:  make(map[string]RoomID),
		pieceIndex: make(map[string]PieceID),
		rand:       rnd,
		log:        log,
	}

	b.corridor = b.addRoom(cfg.Corridor.Name, true, false)
	for _, def := range cfg.RoomDefs {
		b.addRoom(def.Name, false, def.Reserved)
	}

	for i, spec := range specs {
		pos := Position{Row: i / b.width, Col: i % b.width}
		cell := Cell{Position: pos, Room: NoRoom, Walls: spec.Walls}
		if spec.Room != "" {
			cell.Room = b.roomIndex[spec.Room]
			b.rooms[cell.Room].addLocation(pos)
		}
		b.cells[i] = cell
		b.occupant[i] = NoPiece
	}
	b.deriveEntrancesAndExits()

	for _, ch := range cfg.CharacterDefs {
		at := Position{Row: ch.Start.Row, Col: ch.Start.Col}
		if err := b.addPiece(ch.Name, ch.Icon, CharacterPiece, at); err != nil {
			return nil, err
		}
	}
	if err := b.placeWeapons(cfg.WeaponDefs); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Board) addRoom(name string, corridor, reserved bool) RoomID {
	id := RoomID(len(b.rooms))
	b.rooms = append(b.rooms, newRoom(id, name, corridor, reserved))
	b.roomIndex[name] = id
	return id
}

// placeWeapons puts each weapon in a different room, chosen as a random
// bijection over the rooms that may hold a starting weapon.
func (b *Board) placeWeapons(weapons []config.WeaponDef) error {
	var eligible []*Room
	for _, r := range b.rooms {
		if !r.Corridor && !r.Reserved {
			eligible = append(eligible, r)
		}
	}
	if len(weapons) > len(eligible) {
		return fmt.Errorf("%w: %d weapons but only %d rooms to start them in", ErrInvalidLayout, len(weapons), len(eligible))
	}
	b.rand.Shuffle(len(eligible), func(i, j int) { eligible[i], eligible[j] = eligible[j], eligible[i] })

	for i, w := range weapons {
		at, ok := b.RandomRoomLocation(eligible[i])
		if !ok {
			return fmt.Errorf("%w: no free square in %s for %s", ErrInvalidLayout, eligible[i].Name, w.Name)
		}
		if err := b.addPiece(w.Name, w.Icon, WeaponPiece, at); err != nil {
			return err
		}
		b.log.Debugf("%s starts in the %s at %v", w.Name, eligible[i].Name, at)
	}
	return nil
}
