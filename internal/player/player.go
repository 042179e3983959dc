// Package player holds the seat a person occupies at the table: their
// character, their hand and whether they may still accuse.
package player

import (
	"example.com/cluedo-engine/internal/cards"
	"fmt"
)

// Player is one participant. Ordinal is the turn position, starting at zero.
type Player struct {
	ordinal   int
	name      string
	character string
	hand      *cards.Hand
	canAccuse bool
}

func New(ordinal int, name, character string) *Player {
	return &Player{
		ordinal:   ordinal,
		name:      name,
		character: character,
		hand:      cards.NewHand(),
		canAccuse: true,
	}
}

func (p *Player) Ordinal() int      { return p.ordinal }
func (p *Player) Name() string      { return p.name }
func (p *Player) Character() string { return p.character }
func (p *Player) Hand() *cards.Hand { return p.hand }
func (p *Player) CanAccuse() bool   { return p.canAccuse }
func (p *Player) RevokeAccusation() { p.canAccuse = false }
func (p *Player) String() string    { return fmt.Sprintf("%s (%s)", p.name, p.character) }

// CanRefute returns the cards of the suggestion this player could show.
func (p *Player) CanRefute(suggestion cards.Triple) []cards.Card {
	return p.hand.Matching(suggestion)
}

// ChooseCardToShow lets a chooser pick which matching card to reveal. It returns
// false when the player holds none of the suggested cards.
func (p *Player) ChooseCardToShow(suggestion cards.Triple, chooser Chooser) (cards.Card, bool) {
	options := p.CanRefute(suggestion)
	if len(options) == 0 {
		return cards.Card{}, false
	}
	return chooser.Choose(options), true
}
