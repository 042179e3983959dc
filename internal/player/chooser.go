package player

import (
	"example.com/cluedo-engine/internal/cards"
	"math/rand"
)

// Chooser selects one card from a non-empty list of options. Front-ends that
// delegate the refuting choice hand one of these to the game.
type Chooser interface {
	Choose(options []cards.Card) cards.Card
}

// RandomChooser picks uniformly at random.
type RandomChooser struct {
	rand *rand.Rand
}

func NewRandomChooser(rand *rand.Rand) *RandomChooser {
	return &RandomChooser{rand: rand}
}

func (r *RandomChooser) Choose(options []cards.Card) cards.Card {
	if len(options) == 0 {
		return cards.Card{}
	}
	return options[r.rand.Intn(len(options))]
}
