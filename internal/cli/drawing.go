package cli

import (
	"example.com/cluedo-engine/internal/board"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Each square is drawn three characters wide and one high, with a line of
// wall characters between neighbouring squares.
const cellWidth = 3

type canvas [][]string

func newCanvas(rows, cols int) canvas {
	cv := make(canvas, rows)
	for i := range cv {
		cv[i] = make([]string, cols)
		for j := range cv[i] {
			cv[i][j] = " "
		}
	}
	return cv
}

func (cv canvas) isWall(r, c int) bool {
	if r < 0 || r >= len(cv) || c < 0 || c >= len(cv[r]) {
		return false
	}
	return cv[r][c] == "-" || cv[r][c] == "|"
}

func (cv canvas) String() string {
	lines := make([]string, len(cv))
	for i, row := range cv {
		lines[i] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

// DrawBoard renders the board as text. Pieces are drawn with their icons and,
// when highlight is a room, its free exits are numbered from 1 in the order
// ExitRoom expects them.
func DrawBoard(b *board.Board, highlight *board.Room) string {
	h, w := b.Height(), b.Width()
	cv := newCanvas(2*h+1, (cellWidth+1)*w+1)
	cell := func(r, c int) board.Cell {
		cl, _ := b.CellAt(board.Position{Row: r, Col: c})
		return cl
	}

	for r := 0; r <= h; r++ {
		for c := 0; c < w; c++ {
			walled := (r > 0 && cell(r-1, c).Walls.Has(board.South)) || (r < h && cell(r, c).Walls.Has(board.North))
			if walled {
				for i := 1; i <= cellWidth; i++ {
					cv[2*r][(cellWidth+1)*c+i] = "-"
				}
			}
		}
	}
	for r := 0; r < h; r++ {
		for c := 0; c <= w; c++ {
			walled := (c > 0 && cell(r, c-1).Walls.Has(board.East)) || (c < w && cell(r, c).Walls.Has(board.West))
			if walled {
				cv[2*r+1][(cellWidth+1)*c] = "|"
			}
		}
	}
	for r := 0; r <= h; r++ {
		for c := 0; c <= w; c++ {
			y, x := 2*r, (cellWidth+1)*c
			if cv.isWall(y-1, x) || cv.isWall(y+1, x) || cv.isWall(y, x-1) || cv.isWall(y, x+1) {
				cv[y][x] = "+"
			}
		}
	}

	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			cl := cell(r, c)
			x := (cellWidth+1)*c + 1
			switch {
			case !cl.Used():
				for i := 0; i < cellWidth; i++ {
					cv[2*r+1][x+i] = "#"
				}
			case cl.Room == b.Corridor().ID:
				cv[2*r+1][x+1] = "."
			}
		}
	}

	for _, room := range b.Rooms() {
		if !room.Corridor {
			labelRoom(cv, room)
		}
	}

	if highlight != nil && !highlight.Corridor {
		for i, p := range b.UnoccupiedExits(highlight) {
			label := strconv.Itoa(i + 1)
			x := (cellWidth+1)*p.Col + 2
			for j, ch := range label {
				cv[2*p.Row+1][x+j-len(label)/2] = C.Yes.Sprint(string(ch))
			}
		}
	}

	for _, piece := range b.Pieces() {
		p := b.Location(piece)
		x := (cellWidth+1)*p.Col + 1
		cv[2*p.Row+1][x] = " "
		cv[2*p.Row+1][x+1] = pieceIcon(piece)
		cv[2*p.Row+1][x+2] = " "
	}
	return cv.String()
}

// labelRoom writes the room name across the middle row of its bounding box.
func labelRoom(cv canvas, room *board.Room) {
	locs := room.Locations()
	if len(locs) == 0 {
		return
	}
	minRow, maxRow, minCol, maxCol := locs[0].Row, locs[0].Row, locs[0].Col, locs[0].Col
	for _, p := range locs[1:] {
		minRow, maxRow = min(minRow, p.Row), max(maxRow, p.Row)
		minCol, maxCol = min(minCol, p.Col), max(maxCol, p.Col)
	}
	y := 2*((minRow+maxRow)/2) + 1
	left, right := (cellWidth+1)*minCol+1, (cellWidth+1)*maxCol+cellWidth
	name := room.Name
	if span := right - left + 1; len(name) > span {
		name = name[:span]
	}
	start := left + (right-left+1-len(name))/2
	for i, ch := range name {
		if cv[y][start+i] == " " {
			cv[y][start+i] = string(ch)
		}
	}
}

func pieceIcon(p *board.Piece) string {
	if p.Kind == board.CharacterPiece {
		if c, ok := CharacterColors[p.Name]; ok {
			return c.Sprint(p.Icon)
		}
	}
	return C.Debug.Sprint(p.Icon)
}

// RenderLegend writes the icon of every piece and where it stands.
func RenderLegend(w io.Writer, b *board.Board) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Icon", "Piece", "Kind", "Room", "Square"})
	for _, p := range b.Pieces() {
		room := b.PieceRoom(p)
		t.AppendRow(table.Row{pieceIcon(p), ColorizeCard(p.Name), p.Kind.String(), room.Name, b.Location(p).String()})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}
