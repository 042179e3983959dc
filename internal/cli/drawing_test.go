package cli

import (
	"bytes"
	"example.com/cluedo-engine/internal/board"
	"example.com/cluedo-engine/internal/config"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

func standardBoard(t *testing.T) *board.Board {
	t.Helper()
	color.NoColor = true
	cfg, err := config.Load("../../default_config.json")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	b, err := board.Load(cfg, rand.New(rand.NewSource(1)), log)
	if err != nil {
		t.Fatalf("Failed to load board: %v", err)
	}
	return b
}

// glyph returns the character drawn in the middle of a square.
func glyph(lines []string, p board.Position) byte {
	return lines[2*p.Row+1][(cellWidth+1)*p.Col+2]
}

func TestDrawBoard(t *testing.T) {
	// GIVEN the standard board at the start of a game
	b := standardBoard(t)

	// WHEN it is drawn with no room highlighted
	lines := strings.Split(DrawBoard(b, nil), "\n")

	t.Run("it draws a wall line around every row", func(t *testing.T) {
		if len(lines) != 2*b.Height()+1 {
			t.Fatalf("Expected %d lines, got %d", 2*b.Height()+1, len(lines))
		}
		for i, line := range lines {
			if len(line) != (cellWidth+1)*b.Width()+1 {
				t.Errorf("Line %d has width %d", i, len(line))
			}
		}
	})

	t.Run("characters stand on their starting squares", func(t *testing.T) {
		for _, def := range b.Pieces()[:6] {
			start := b.Location(def)
			if got := glyph(lines, start); string(got) != def.Icon {
				t.Errorf("Expected %s at %v, got %q", def.Icon, start, got)
			}
		}
	})

	t.Run("squares off the board are filled in", func(t *testing.T) {
		if got := glyph(lines, board.Position{Row: 0, Col: 0}); got != '#' {
			t.Errorf("Expected '#' at (0,0), got %q", got)
		}
	})

	t.Run("corridor squares are dotted", func(t *testing.T) {
		if got := glyph(lines, board.Position{Row: 23, Col: 7}); got != '.' {
			t.Errorf("Expected '.' at (23,7), got %q", got)
		}
	})
}

func TestDrawBoardNumbersExits(t *testing.T) {
	b := standardBoard(t)
	hall, _ := b.RoomByName("Hall")

	lines := strings.Split(DrawBoard(b, hall), "\n")

	for i, exit := range b.UnoccupiedExits(hall) {
		want := byte('1' + i)
		if got := glyph(lines, exit); got != want {
			t.Errorf("Expected exit %c at %v, got %q", want, exit, got)
		}
	}
}

func TestRenderLegend(t *testing.T) {
	b := standardBoard(t)
	var buf bytes.Buffer

	RenderLegend(&buf, b)

	for _, p := range b.Pieces() {
		if !strings.Contains(buf.String(), p.Name) {
			t.Errorf("Expected %s in the legend", p.Name)
		}
	}
}
