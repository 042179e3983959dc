// Package cards models the Cluedo deck: cards, hands, the case file and the deal.
package cards

import (
	"errors"
	"example.com/cluedo-engine/internal/config"
	"fmt"
	"math/rand"
	"sort"
)

var (
	// ErrMissingCategory means the deck cannot supply one card of every category.
	ErrMissingCategory = errors.New("deck is missing a card category")
	ErrUnknownCard     = errors.New("unknown card")
	ErrWrongCategory   = errors.New("card is in the wrong category")
)

// Card is a named card of one category. Cards compare by value.
type Card struct {
	Name     string
	Category config.CardCategory
}

func (c Card) String() string { return c.Name }

// Deck returns every card the config defines, characters then weapons then rooms.
func Deck(cfg *config.GameConfig) []Card {
	deck := make([]Card, 0, len(cfg.AllCards))
	for _, name := range cfg.AllCards {
		deck = append(deck, Card{Name: name, Category: cfg.CardToType[name]})
	}
	return deck
}

// Lookup resolves a card name and checks its category.
func Lookup(cfg *config.GameConfig, name string, want config.CardCategory) (Card, error) {
	cat, ok := cfg.CardToType[name]
	if !ok {
		return Card{}, fmt.Errorf("%w: %q", ErrUnknownCard, name)
	}
	if cat != want {
		return Card{}, fmt.Errorf("%w: %q is one of the %s, not the %s", ErrWrongCategory, name, cat, want)
	}
	return Card{Name: name, Category: cat}, nil
}

// Triple names one character, one weapon and one room. It is the shape of the
// case file, of a suggestion and of an accusation.
type Triple struct {
	Character Card
	Weapon    Card
	Room      Card
}

// NewTriple validates three card names against the config.
func NewTriple(cfg *config.GameConfig, character, weapon, room string) (Triple, error) {
	var t Triple
	var err error
	if t.Character, err = Lookup(cfg, character, config.CategoryCharacter); err != nil {
		return Triple{}, err
	}
	if t.Weapon, err = Lookup(cfg, weapon, config.CategoryWeapon); err != nil {
		return Triple{}, err
	}
	if t.Room, err = Lookup(cfg, room, config.CategoryRoom); err != nil {
		return Triple{}, err
	}
	return t, nil
}

// Cards returns the three cards in category order.
func (t Triple) Cards() []Card {
	return []Card{t.Character, t.Weapon, t.Room}
}

// Matches compares two triples by card name in every slot.
func (t Triple) Matches(o Triple) bool {
	return t.Character.Name == o.Character.Name &&
		t.Weapon.Name == o.Weapon.Name &&
		t.Room.Name == o.Room.Name
}

func (t Triple) String() string {
	return fmt.Sprintf("%s with the %s in the %s", t.Character.Name, t.Weapon.Name, t.Room.Name)
}

// Hand is the set of cards a player holds, keyed by name.
type Hand struct {
	cards map[string]Card
}

func NewHand() *Hand {
	return &Hand{cards: make(map[string]Card)}
}

func (h *Hand) Add(c Card) { h.cards[c.Name] = c }

func (h *Hand) Has(name string) bool {
	_, ok := h.cards[name]
	return ok
}

func (h *Hand) Len() int { return len(h.cards) }

// Cards returns the hand sorted by name.
func (h *Hand) Cards() []Card {
	out := make([]Card, 0, len(h.cards))
	for _, c := range h.cards {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Matching returns the cards of the triple held in this hand, in category order.
func (h *Hand) Matching(t Triple) []Card {
	var out []Card
	for _, c := range t.Cards() {
		if h.Has(c.Name) {
			out = append(out, c)
		}
	}
	return out
}

// BuildSolution shuffles the deck and withholds the first card of each
// category as the case file. The rest of the deck is returned for dealing.
func BuildSolution(deck []Card, rnd *rand.Rand) (Triple, []Card, error) {
	shuffled := append([]Card(nil), deck...)
	rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	picked := make(map[config.CardCategory]Card, 3)
	rest := make([]Card, 0, len(shuffled))
	for _, c := range shuffled {
		if _, done := picked[c.Category]; !done {
			picked[c.Category] = c
			continue
		}
		rest = append(rest, c)
	}
	for _, cat := range config.Categories() {
		if _, ok := picked[cat]; !ok {
			return Triple{}, nil, fmt.Errorf("%w: no %s", ErrMissingCategory, cat)
		}
	}
	solution := Triple{
		Character: picked[config.CategoryCharacter],
		Weapon:    picked[config.CategoryWeapon],
		Room:      picked[config.CategoryRoom],
	}
	return solution, rest, nil
}

// Deal hands out the cards round-robin starting with the first hand.
func Deal(hands []*Hand, deck []Card) {
	if len(hands) == 0 {
		return
	}
	for i, c := range deck {
		hands[i%len(hands)].Add(c)
	}
}
