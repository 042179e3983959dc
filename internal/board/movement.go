package board

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/stack"
)

// Outcome classifies the result of a movement attempt.
type Outcome int

const (
	Blocked Outcome = iota
	Repeated
	Success
)

func (o Outcome) String() string {
	return []string{"blocked", "repeated", "success"}[o]
}

// StepResult describes a movement attempt. On a rejection From and To are equal
// and the accompanying error names the cause.
type StepResult struct {
	Outcome     Outcome
	From        Position
	To          Position
	Refunded    bool
	EnteredRoom string
	Remaining   int
}

// TurnMoves is the movement state of one turn: the step budget, the squares
// left behind and the order they were left in. Stepping back onto the square
// just vacated undoes that step and refunds it; stepping onto any other
// vacated square is refused, so cycles cannot be used to gain steps.
type TurnMoves struct {
	roll      int
	remaining int
	visited   mapset.Set[Position]
	history   *stack.Stack[Position]
}

// NewTurnMoves starts a turn with the given step budget.
func NewTurnMoves(budget int) *TurnMoves {
	return &TurnMoves{
		roll:      budget,
		remaining: budget,
		visited:   mapset.New[Position](),
		history:   stack.New[Position](),
	}
}

// Roll returns the budget the turn started with.
func (t *TurnMoves) Roll() int { return t.roll }

// Remaining returns the steps left.
func (t *TurnMoves) Remaining() int { return t.remaining }

// Visited reports whether p was vacated earlier this turn and not undone.
func (t *TurnMoves) Visited(p Position) bool { return t.visited.Has(p) }

// Depth returns how many steps can currently be undone.
func (t *TurnMoves) Depth() int { return t.history.Size() }

// Exhaust ends movement for the turn.
func (t *TurnMoves) Exhaust() { t.remaining = 0 }

// Step moves a piece one square in the given direction. Pieces inside a room
// must leave through ExitRoom. Stepping through a doorway lands on a random
// free square inside the room and ends movement.
func (b *Board) Step(p *Piece, dir Direction, turn *TurnMoves) (StepResult, error) {
	from := b.Location(p)
	res := StepResult{Outcome: Blocked, From: from, To: from, Remaining: turn.remaining}

	if !dir.IsValid() {
		return res, ErrInvalidDirection
	}
	if turn.remaining <= 0 {
		return res, ErrNoSteps
	}
	if here := b.RoomAt(from); here == nil || !here.Corridor {
		return res, fmt.Errorf("%w: leave the room through an exit", ErrInRoom)
	}

	to := from.Neighbor(dir)
	if !b.InBounds(to) {
		return res, fmt.Errorf("%w: %s from %v", ErrOffBoard, dir, from)
	}
	if b.walled(from, dir) {
		return res, fmt.Errorf("%w: %s from %v", ErrWall, dir, from)
	}
	target := b.cells[b.index(to)]
	if !target.Used() {
		return res, fmt.Errorf("%w: %v", ErrUnusedCell, to)
	}
	if occ, ok := b.Occupant(to); ok {
		return res, fmt.Errorf("%w: %s is on %v", ErrOccupied, occ.Name, to)
	}

	room := b.rooms[target.Room]
	if !room.Corridor {
		if !room.IsEntrance(to) || !room.IsExit(from) {
			return res, fmt.Errorf("%w: no door into the %s here", ErrWall, room.Name)
		}
		dest, ok := b.RandomRoomLocation(room)
		if !ok {
			return res, fmt.Errorf("%w: %s", ErrRoomFull, room.Name)
		}
		if err := b.Place(p, dest); err != nil {
			return res, err
		}
		turn.remaining = 0
		b.log.Debugf("%s entered the %s at %v", p.Name, room.Name, dest)
		return StepResult{Outcome: Success, From: from, To: dest, EnteredRoom: room.Name}, nil
	}

	if turn.history.Size() > 0 && turn.history.Peek() == to {
		if err := b.Place(p, to); err != nil {
			return res, err
		}
		turn.history.Pop()
		turn.visited.Remove(to)
		turn.remaining++
		b.log.Debugf("%s stepped back to %v, %d steps left", p.Name, to, turn.remaining)
		return StepResult{Outcome: Success, From: from, To: to, Refunded: true, Remaining: turn.remaining}, nil
	}
	if turn.visited.Has(to) {
		res.Outcome = Repeated
		return res, fmt.Errorf("%w: %v", ErrRepeated, to)
	}

	if err := b.Place(p, to); err != nil {
		return res, err
	}
	turn.visited.Put(from)
	turn.history.Push(from)
	turn.remaining--
	b.log.Debugf("%s moved %s to %v, %d steps left", p.Name, dir, to, turn.remaining)
	return StepResult{Outcome: Success, From: from, To: to, Remaining: turn.remaining}, nil
}

// ExitRoom moves a piece out of its room onto one of the room's free exits.
// Choosing between several exits is the player's decision; this only checks it.
func (b *Board) ExitRoom(p *Piece, exit Position, turn *TurnMoves) (StepResult, error) {
	from := b.Location(p)
	res := StepResult{Outcome: Blocked, From: from, To: from, Remaining: turn.remaining}

	if turn.remaining <= 0 {
		return res, ErrNoSteps
	}
	room := b.PieceRoom(p)
	if room == nil || room.Corridor {
		return res, ErrNotInRoom
	}
	if !room.IsExit(exit) {
		return res, fmt.Errorf("%w: %v does not lead out of the %s", ErrNotAnExit, exit, room.Name)
	}
	if occ, ok := b.Occupant(exit); ok {
		return res, fmt.Errorf("%w: %s is on %v", ErrOccupied, occ.Name, exit)
	}

	if err := b.Place(p, exit); err != nil {
		return res, err
	}
	turn.remaining--
	b.log.Debugf("%s left the %s by %v, %d steps left", p.Name, room.Name, exit, turn.remaining)
	return StepResult{Outcome: Success, From: from, To: exit, Remaining: turn.remaining}, nil
}

// MoveTo moves a piece towards a chosen square: an exit when the piece is in a
// room, otherwise a neighbouring square.
func (b *Board) MoveTo(p *Piece, dest Position, turn *TurnMoves) (StepResult, error) {
	if b.InRoom(p) {
		return b.ExitRoom(p, dest, turn)
	}
	from := b.Location(p)
	dir, ok := from.DirectionTo(dest)
	if !ok {
		return StepResult{Outcome: Blocked, From: from, To: from, Remaining: turn.remaining},
			fmt.Errorf("%w: %v", ErrNotAdjacent, dest)
	}
	return b.Step(p, dir, turn)
}
