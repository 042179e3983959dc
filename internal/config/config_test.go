package config

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadDefaultConfig(t *testing.T) {
	// GIVEN the shipped game definition
	cfg, err := Load("../../default_config.json")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	t.Run("it builds the full deck", func(t *testing.T) {
		if len(cfg.Characters) != 6 || len(cfg.Weapons) != 6 || len(cfg.Rooms) != 9 {
			t.Fatalf("expected 6/6/9 cards, got %d/%d/%d", len(cfg.Characters), len(cfg.Weapons), len(cfg.Rooms))
		}
		if len(cfg.AllCards) != 21 {
			t.Errorf("expected 21 cards, got %d", len(cfg.AllCards))
		}
	})

	t.Run("the reserved room has no card", func(t *testing.T) {
		if _, ok := cfg.CardToType["Cellar"]; ok {
			t.Error("Cellar should not be a card")
		}
		if _, ok := cfg.CardToType["Passageway"]; ok {
			t.Error("the corridor should not be a card")
		}
	})

	t.Run("card types are recorded", func(t *testing.T) {
		cases := map[string]CardCategory{
			"Miss Scarlet": CategoryCharacter,
			"Lead Pipe":    CategoryWeapon,
			"Ball Room":    CategoryRoom,
		}
		for card, want := range cases {
			if got := cfg.CardToType[card]; got != want {
				t.Errorf("%s: expected %v, got %v", card, want, got)
			}
		}
	})

	t.Run("the board path is resolved next to the config", func(t *testing.T) {
		if !strings.HasSuffix(cfg.BoardPath, "standard_board.txt") {
			t.Errorf("unexpected board path %q", cfg.BoardPath)
		}
	})

	t.Run("layout codes include the corridor", func(t *testing.T) {
		codes := cfg.LayoutCodes()
		if codes["P"] != "Passageway" || codes["Z"] != "Cellar" {
			t.Errorf("unexpected layout codes: %v", codes)
		}
	})
}

func TestDeepCopyIsIndependent(t *testing.T) {
	cfg, err := Load("../../default_config.json")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	cp := cfg.DeepCopy()
	cp.Characters[0] = "Nobody"
	cp.CardToType["Nobody"] = CategoryCharacter
	cp.CharacterDefs[0].Start.Row = 99

	if cfg.Characters[0] == "Nobody" {
		t.Error("copy shares the Characters slice")
	}
	if _, ok := cfg.CardToType["Nobody"]; ok {
		t.Error("copy shares the CardToType map")
	}
	if cfg.CharacterDefs[0].Start.Row == 99 {
		t.Error("copy shares the CharacterDefs slice")
	}
}

func TestParseRejectsBrokenDefinitions(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"malformed json", `{"width": 2,`},
		{"no dimensions", `{"unused_code":"X","corridor":{"name":"P","code":"P"}}`},
		{"duplicate names", `{"width":2,"height":2,"unused_code":"X","corridor":{"name":"Hall","code":"P"},
			"characters":[{"name":"A","icon":"A","start":{"row":0,"col":0}}],
			"weapons":[{"name":"W","icon":"w"}],
			"rooms":[{"name":"Hall","code":"H"}]}`},
		{"start off board", `{"width":2,"height":2,"unused_code":"X","corridor":{"name":"P","code":"P"},
			"characters":[{"name":"A","icon":"A","start":{"row":5,"col":0}}],
			"weapons":[{"name":"W","icon":"w"}],
			"rooms":[{"name":"Hall","code":"H"}]}`},
		{"clashing codes", `{"width":2,"height":2,"unused_code":"X","corridor":{"name":"P","code":"P"},
			"characters":[{"name":"A","icon":"A","start":{"row":0,"col":0}}],
			"weapons":[{"name":"W","icon":"w"}],
			"rooms":[{"name":"Hall","code":"P"}]}`},
		{"only reserved rooms", `{"width":2,"height":2,"unused_code":"X","corridor":{"name":"P","code":"P"},
			"characters":[{"name":"A","icon":"A","start":{"row":0,"col":0}}],
			"weapons":[{"name":"W","icon":"w"}],
			"rooms":[{"name":"Hall","code":"H","reserved":true}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.json))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
