package board

import "errors"

// ErrInvalidLayout marks a board layout or piece setup that cannot produce a playable board.
var ErrInvalidLayout = errors.New("invalid board layout")

// Movement rejections. A rejected move never changes the board or the turn state.
var (
	ErrInvalidDirection = errors.New("unknown direction")
	ErrUnknownPiece     = errors.New("unknown piece")
	ErrOffBoard         = errors.New("off the edge of the board")
	ErrWall             = errors.New("a wall is in the way")
	ErrUnusedCell       = errors.New("square is not part of the board")
	ErrOccupied         = errors.New("square is occupied")
	ErrNoSteps          = errors.New("no steps left this turn")
	ErrRepeated         = errors.New("square already visited this turn")
	ErrInRoom           = errors.New("piece is inside a room")
	ErrNotInRoom        = errors.New("piece is not inside a room")
	ErrNotAnExit        = errors.New("square is not an exit of this room")
	ErrNotAdjacent      = errors.New("square is not next to the piece")
	ErrRoomFull         = errors.New("no free square in the room")
)
