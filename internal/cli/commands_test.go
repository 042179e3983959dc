package cli

import (
	"errors"
	"example.com/cluedo-engine/internal/board"
	"reflect"
	"testing"
)

func TestParseMoves(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want []board.Direction
		err  error
	}{
		{"keys run together", []string{"wwd"}, []board.Direction{board.North, board.North, board.East}, nil},
		{"single key", []string{"s"}, []board.Direction{board.South}, nil},
		{"words", []string{"north", "West"}, []board.Direction{board.North, board.West}, nil},
		{"mixed", []string{"aa", "up"}, []board.Direction{board.West, board.West, board.North}, nil},
		{"nothing", nil, nil, errUsage},
		{"rubbish", []string{"sideways"}, nil, board.ErrInvalidDirection},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseMoves(tc.args)
			if !errors.Is(err, tc.err) {
				t.Fatalf("Expected error %v, got %v", tc.err, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestParseExit(t *testing.T) {
	exits := []board.Position{{Row: 17, Col: 11}, {Row: 17, Col: 12}}

	got, err := parseExit([]string{"2"}, exits)
	if err != nil || got != exits[1] {
		t.Errorf("Expected %v, got %v (%v)", exits[1], got, err)
	}
	if _, err := parseExit([]string{"3"}, exits); !errors.Is(err, errUsage) {
		t.Errorf("Expected a usage error for exit 3, got %v", err)
	}
	if _, err := parseExit(nil, exits); !errors.Is(err, errUsage) {
		t.Errorf("Expected a usage error when two exits are open, got %v", err)
	}
	if got, err := parseExit(nil, exits[:1]); err != nil || got != exits[0] {
		t.Errorf("Expected the only exit to be taken, got %v (%v)", got, err)
	}
	if _, err := parseExit([]string{"1"}, nil); !errors.Is(err, board.ErrOccupied) {
		t.Errorf("Expected a sealed room to be reported, got %v", err)
	}
}

func TestParseSquare(t *testing.T) {
	got, err := parseSquare([]string{"16", "7"})
	if err != nil || got != (board.Position{Row: 16, Col: 7}) {
		t.Errorf("Expected (16,7), got %v (%v)", got, err)
	}
	if _, err := parseSquare([]string{"x", "7"}); !errors.Is(err, errUsage) {
		t.Errorf("Expected a usage error, got %v", err)
	}
}

func TestSelectOption(t *testing.T) {
	options := []string{"Mr Green", "Mrs White"}
	if got, ok := selectOption(options, "2"); !ok || got != "Mrs White" {
		t.Errorf("Expected selection by number, got %q", got)
	}
	if got, ok := selectOption(options, "mr green"); !ok || got != "Mr Green" {
		t.Errorf("Expected selection by name, got %q", got)
	}
	if _, ok := selectOption(options, "0"); ok {
		t.Error("Expected 0 to be out of range")
	}
}

func TestCompleteCommand(t *testing.T) {
	got := completeCommand("s")
	want := []string{"stop", "suggest"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
