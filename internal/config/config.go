package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrInvalidConfig is returned when a game definition cannot be used to set up a game.
var ErrInvalidConfig = errors.New("invalid configuration")

// CardCategory defines the type of a card using a typed enum.
type CardCategory int

const (
	CategoryCharacter CardCategory = iota
	CategoryWeapon
	CategoryRoom
)

func (cc CardCategory) String() string {
	return []string{"characters", "weapons", "rooms"}[cc]
}

// Categories returns every category in deck order.
func Categories() []CardCategory {
	return []CardCategory{CategoryCharacter, CategoryWeapon, CategoryRoom}
}

// Cell is a board coordinate as written in the config file.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// CharacterDef describes a character piece and its fixed starting square.
type CharacterDef struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Start Cell   `json:"start"`
}

// WeaponDef describes a weapon piece.
type WeaponDef struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// RoomDef maps a board layout code to a room. Reserved rooms exist on the board
// but have no card and never receive a starting weapon.
type RoomDef struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	Reserved bool   `json:"reserved,omitempty"`
}

// GameConfig holds the static definitions for a game of Cluedo.
type GameConfig struct {
	BoardFile     string         `json:"board"`
	Width         int            `json:"width"`
	Height        int            `json:"height"`
	UnusedCode    string         `json:"unused_code"`
	Corridor      RoomDef        `json:"corridor"`
	CharacterDefs []CharacterDef `json:"characters"`
	WeaponDefs    []WeaponDef    `json:"weapons"`
	RoomDefs      []RoomDef      `json:"rooms"`

	BoardPath  string                  `json:"-"`
	Characters []string                `json:"-"`
	Weapons    []string                `json:"-"`
	Rooms      []string                `json:"-"`
	AllCards   []string                `json:"-"`
	CardToType map[string]CardCategory `json:"-"`
}

// Load reads, parses, and prepares the game configuration from a file.
// The board layout path is resolved relative to the config file.
func Load(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.BoardFile != "" && !filepath.IsAbs(cfg.BoardFile) {
		cfg.BoardPath = filepath.Join(filepath.Dir(path), cfg.BoardFile)
	} else {
		cfg.BoardPath = cfg.BoardFile
	}
	return cfg, nil
}

// Parse decodes and validates a JSON game definition and derives the card lists.
func Parse(data []byte) (*GameConfig, error) {
	var cfg GameConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.CardToType = make(map[string]CardCategory)
	for _, c := range cfg.CharacterDefs {
		cfg.Characters = append(cfg.Characters, c.Name)
	}
	for _, w := range cfg.WeaponDefs {
		cfg.Weapons = append(cfg.Weapons, w.Name)
	}
	for _, r := range cfg.RoomDefs {
		if !r.Reserved {
			cfg.Rooms = append(cfg.Rooms, r.Name)
		}
	}
	sort.Strings(cfg.Characters)
	sort.Strings(cfg.Weapons)
	sort.Strings(cfg.Rooms)

	for _, card := range cfg.Characters {
		cfg.AllCards = append(cfg.AllCards, card)
		cfg.CardToType[card] = CategoryCharacter
	}
	for _, card := range cfg.Weapons {
		cfg.AllCards = append(cfg.AllCards, card)
		cfg.CardToType[card] = CategoryWeapon
	}
	for _, card := range cfg.Rooms {
		cfg.AllCards = append(cfg.AllCards, card)
		cfg.CardToType[card] = CategoryRoom
	}
	return &cfg, nil
}

func (c *GameConfig) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: board must have positive dimensions, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.UnusedCode == "" {
		return fmt.Errorf("%w: unused_code is required", ErrInvalidConfig)
	}
	if c.Corridor.Name == "" || c.Corridor.Code == "" {
		return fmt.Errorf("%w: corridor needs a name and a code", ErrInvalidConfig)
	}
	if len(c.CharacterDefs) == 0 || len(c.WeaponDefs) == 0 || len(c.RoomDefs) == 0 {
		return fmt.Errorf("%w: characters, weapons and rooms must all be defined", ErrInvalidConfig)
	}

	names := map[string]bool{c.Corridor.Name: true}
	codes := map[string]bool{c.Corridor.Code: true, c.UnusedCode: true}
	if c.Corridor.Code == c.UnusedCode {
		return fmt.Errorf("%w: corridor code %q clashes with unused_code", ErrInvalidConfig, c.UnusedCode)
	}
	icons := make(map[string]bool)
	addName := func(name string) error {
		if name == "" {
			return fmt.Errorf("%w: empty name", ErrInvalidConfig)
		}
		if names[name] {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidConfig, name)
		}
		names[name] = true
		return nil
	}
	addIcon := func(name, icon string) error {
		if icon == "" || icons[icon] {
			return fmt.Errorf("%w: %q needs a unique icon", ErrInvalidConfig, name)
		}
		icons[icon] = true
		return nil
	}

	for _, ch := range c.CharacterDefs {
		if err := addName(ch.Name); err != nil {
			return err
		}
		if err := addIcon(ch.Name, ch.Icon); err != nil {
			return err
		}
		if ch.Start.Row < 0 || ch.Start.Row >= c.Height || ch.Start.Col < 0 || ch.Start.Col >= c.Width {
			return fmt.Errorf("%w: start of %q is off the board", ErrInvalidConfig, ch.Name)
		}
	}
	for _, w := range c.WeaponDefs {
		if err := addName(w.Name); err != nil {
			return err
		}
		if err := addIcon(w.Name, w.Icon); err != nil {
			return err
		}
	}
	cardRooms := 0
	for _, r := range c.RoomDefs {
		if err := addName(r.Name); err != nil {
			return err
		}
		if r.Code == "" || codes[r.Code] {
			return fmt.Errorf("%w: room %q needs a unique layout code", ErrInvalidConfig, r.Name)
		}
		codes[r.Code] = true
		if !r.Reserved {
			cardRooms++
		}
	}
	if cardRooms == 0 {
		return fmt.Errorf("%w: at least one room must carry a card", ErrInvalidConfig)
	}
	return nil
}

// DeepCopy creates a new GameConfig with all slices copied to prevent shared state.
func (c *GameConfig) DeepCopy() *GameConfig {
	newCfg := *c
	newCfg.CharacterDefs = append([]CharacterDef(nil), c.CharacterDefs...)
	newCfg.WeaponDefs = append([]WeaponDef(nil), c.WeaponDefs...)
	newCfg.RoomDefs = append([]RoomDef(nil), c.RoomDefs...)
	newCfg.Characters = append([]string(nil), c.Characters...)
	newCfg.Weapons = append([]string(nil), c.Weapons...)
	newCfg.Rooms = append([]string(nil), c.Rooms...)
	newCfg.AllCards = append([]string(nil), c.AllCards...)
	newCfg.CardToType = make(map[string]CardCategory, len(c.CardToType))
	for k, v := range c.CardToType {
		newCfg.CardToType[k] = v
	}
	return &newCfg
}

// CardListForCategory is a helper to get the correct card list from the config.
func (c *GameConfig) CardListForCategory(cat CardCategory) []string {
	switch cat {
	case CategoryCharacter:
		return c.Characters
	case CategoryWeapon:
		return c.Weapons
	case CategoryRoom:
		return c.Rooms
	default:
		return nil
	}
}

// LayoutCodes maps every board layout code (corridor included) to its room name.
func (c *GameConfig) LayoutCodes() map[string]string {
	codes := map[string]string{c.Corridor.Code: c.Corridor.Name}
	for _, r := range c.RoomDefs {
		codes[r.Code] = r.Name
	}
	return codes
}

// Character returns the definition of the named character.
func (c *GameConfig) Character(name string) (CharacterDef, bool) {
	for _, ch := range c.CharacterDefs {
		if ch.Name == name {
			return ch, true
		}
	}
	return CharacterDef{}, false
}
