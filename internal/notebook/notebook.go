// Package notebook keeps a player's detective notes: for every card, who may or
// may not hold it. It only listens to game events and never affects play.
package notebook

import (
	"example.com/cluedo-engine/internal/cards"
	"example.com/cluedo-engine/internal/config"
	"example.com/cluedo-engine/internal/events"
	"sort"

	"github.com/sirupsen/logrus"
)

// CardStatus defines the knowledge state of a card.
type CardStatus int

const (
	StatusMaybe CardStatus = iota
	StatusYes
	StatusNo
)

func (s CardStatus) String() string {
	return []string{"?", "yes", "no"}[s]
}

// Solution is the column name for the case file.
const Solution = "solution"

// UnresolvedSuggestion tracks a disproval where the specific card shown is unknown.
type UnresolvedSuggestion struct {
	Disprover     string
	PossibleCards map[string]struct{}
}

// Cards returns the cards the disprover may have shown, sorted by name.
func (u UnresolvedSuggestion) Cards() []string {
	return mapKeys(u.PossibleCards)
}

// Notebook is the deduction grid of one player.
type Notebook struct {
	owner                 string
	config                *config.GameConfig
	players               []string
	hand                  map[string]struct{}
	knowledge             map[string]map[string]CardStatus
	unresolvedSuggestions []UnresolvedSuggestion
	log                   logrus.FieldLogger
}

// New creates an empty grid for owner, with a column per player and one for
// the case file.
func New(cfg *config.GameConfig, owner string, players []string, log logrus.FieldLogger) *Notebook {
	nb := &Notebook{
		owner:     owner,
		config:    cfg,
		players:   append([]string(nil), players...),
		hand:      make(map[string]struct{}),
		knowledge: make(map[string]map[string]CardStatus),
		log:       log.WithField("notebook", owner),
	}
	for _, card := range cfg.AllCards {
		nb.knowledge[card] = make(map[string]CardStatus)
		for _, p := range nb.players {
			nb.knowledge[card][p] = StatusMaybe
		}
		nb.knowledge[card][Solution] = StatusMaybe
	}
	return nb
}

func (nb *Notebook) Owner() string                           { return nb.owner }
func (nb *Notebook) Config() *config.GameConfig              { return nb.config }
func (nb *Notebook) Players() []string                       { return nb.players }
func (nb *Notebook) Status(card, location string) CardStatus { return nb.knowledge[card][location] }
func (nb *Notebook) Unresolved() []UnresolvedSuggestion      { return nb.unresolvedSuggestions }

func (nb *Notebook) HandleEvent(e events.Event) {
	switch event := e.(type) {
	case events.HandDealtEvent:
		if event.PlayerName == nb.owner {
			nb.receiveHand(event.Hand)
		}
	case events.TurnResolvedEvent:
		nb.processTurnEvent(event)
	}
}

// receiveHand marks the owner's cards, and every other card as not theirs.
func (nb *Notebook) receiveHand(hand []cards.Card) {
	for _, c := range hand {
		nb.hand[c.Name] = struct{}{}
		nb.markCardLocation(c.Name, nb.owner)
	}
	for _, card := range nb.config.AllCards {
		if _, mine := nb.hand[card]; !mine {
			nb.knowledge[card][nb.owner] = StatusNo
		}
	}
	nb.runDeductionLoop()
}

func (nb *Notebook) processTurnEvent(event events.TurnResolvedEvent) {
	// Players who were asked and passed hold none of the cards.
	for _, passed := range event.PassedPlayers {
		for _, c := range event.Suggestion.Cards() {
			nb.markLacks(c.Name, passed)
		}
	}

	// The shown card is only visible to the suggester.
	if nb.owner == event.SuggesterName {
		if event.DisproverName != "" && event.RevealedCard.Name != "" {
			nb.markCardLocation(event.RevealedCard.Name, event.DisproverName)
		} else if event.DisproverName == "" {
			nb.log.Debugf("Suggestion %s was not disproved", event.Suggestion)
			for _, c := range event.Suggestion.Cards() {
				if _, inHand := nb.hand[c.Name]; !inHand {
					nb.markCardLocation(c.Name, Solution)
				}
			}
		}
	} else if event.DisproverName != "" && event.DisproverName != nb.owner {
		mystery := UnresolvedSuggestion{Disprover: event.DisproverName, PossibleCards: make(map[string]struct{})}
		for _, c := range event.Suggestion.Cards() {
			mystery.PossibleCards[c.Name] = struct{}{}
		}
		nb.unresolvedSuggestions = append(nb.unresolvedSuggestions, mystery)
		nb.log.Debugf("Noted that %s holds one of %v", event.DisproverName, mapKeys(mystery.PossibleCards))
	}

	nb.runDeductionLoop()
}

// Accusation returns the case file once every category is known.
func (nb *Notebook) Accusation() (map[config.CardCategory]string, bool) {
	solution := make(map[config.CardCategory]string)
	for _, cat := range config.Categories() {
		for _, card := range nb.config.CardListForCategory(cat) {
			if nb.knowledge[card][Solution] == StatusYes {
				solution[cat] = card
				break
			}
		}
		if _, ok := solution[cat]; !ok {
			return nil, false
		}
	}
	return solution, true
}

// --- Internal Deduction Logic ---

func (nb *Notebook) runDeductionLoop() {
	for i := 0; i < 10; i++ {
		var changed bool
		changed = nb.pruneAndSolveMysteries() || changed
		changed = nb.deduceSolutionByElimination() || changed
		changed = nb.deduceCardLocationsByElimination() || changed
		if !changed {
			break
		}
	}
}

func (nb *Notebook) locations() []string {
	return append(append([]string(nil), nb.players...), Solution)
}

func (nb *Notebook) markCardLocation(card, location string) bool {
	if _, isValid := nb.config.CardToType[card]; !isValid {
		nb.log.Errorf("Unknown card %q", card)
		return false
	}
	if nb.knowledge[card][location] == StatusYes {
		return false
	}
	nb.log.Debugf("Learned that '%s' is with %s.", card, location)
	for _, loc := range nb.locations() {
		nb.knowledge[card][loc] = StatusNo
	}
	nb.knowledge[card][location] = StatusYes
	return true
}

func (nb *Notebook) markLacks(card, location string) bool {
	if nb.knowledge[card][location] != StatusMaybe {
		return false
	}
	nb.knowledge[card][location] = StatusNo
	return true
}

func (nb *Notebook) pruneAndSolveMysteries() bool {
	var changed bool
	var remaining []UnresolvedSuggestion
	for _, mystery := range nb.unresolvedSuggestions {
		pruned := make(map[string]struct{})
		for card := range mystery.PossibleCards {
			if nb.knowledge[card][mystery.Disprover] != StatusNo {
				pruned[card] = struct{}{}
			}
		}
		if len(pruned) < len(mystery.PossibleCards) {
			nb.log.Debugf("Pruning mystery: %s's options narrowed to %v", mystery.Disprover, mapKeys(pruned))
			mystery.PossibleCards = pruned
			changed = true
		}
		if len(pruned) == 1 {
			card := mapKeys(pruned)[0]
			nb.log.Debugf("%s must have shown '%s'", mystery.Disprover, card)
			if nb.markCardLocation(card, mystery.Disprover) {
				changed = true
			}
		} else if len(pruned) > 1 {
			remaining = append(remaining, mystery)
		}
	}
	if len(remaining) < len(nb.unresolvedSuggestions) {
		changed = true
	}
	nb.unresolvedSuggestions = remaining
	return changed
}

func (nb *Notebook) deduceCardLocationsByElimination() bool {
	var changed bool
	for _, card := range nb.config.AllCards {
		var maybes []string
		isKnown := false
		for _, loc := range nb.locations() {
			if nb.knowledge[card][loc] == StatusYes {
				isKnown = true
				break
			}
			if nb.knowledge[card][loc] == StatusMaybe {
				maybes = append(maybes, loc)
			}
		}
		if !isKnown && len(maybes) == 1 {
			if nb.markCardLocation(card, maybes[0]) {
				changed = true
			}
		}
	}
	return changed
}

func (nb *Notebook) deduceSolutionByElimination() bool {
	var changed bool
	for _, cat := range config.Categories() {
		isSolved := false
		for _, card := range nb.config.CardListForCategory(cat) {
			if nb.knowledge[card][Solution] == StatusYes {
				isSolved = true
				break
			}
		}
		if isSolved {
			continue
		}
		var maybes []string
		for _, card := range nb.config.CardListForCategory(cat) {
			if nb.knowledge[card][Solution] == StatusMaybe {
				maybes = append(maybes, card)
			}
		}
		if len(maybes) == 1 {
			if nb.markCardLocation(maybes[0], Solution) {
				changed = true
			}
		}
	}
	return changed
}

func mapKeys(m map[string]struct{}) []string {
	k := make([]string, 0, len(m))
	for key := range m {
		k = append(k, key)
	}
	sort.Strings(k)
	return k
}
