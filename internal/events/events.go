package events

import (
	"example.com/cluedo-engine/internal/cards"
)

// Event is a marker interface for all event types.
type Event interface{}

// Listener defines an interface for any component that wants to react to events.
// Listeners observe the game; they never change it.
type Listener interface {
	HandleEvent(e Event)
}

// Owned is implemented by listeners that act for one player, such as that
// player's notes. Only they receive the player's private information.
type Owned interface {
	Owner() string
}

// Manager (or Event Bus) manages listeners and dispatches events.
type Manager struct {
	listeners []Listener
}

func NewManager() *Manager {
	return &Manager{}
}

func (em *Manager) Subscribe(l Listener) {
	em.listeners = append(em.listeners, l)
}

func (em *Manager) Publish(e Event) {
	for _, l := range em.listeners {
		l.HandleEvent(e)
	}
}

// PublishPrivate gives every listener its own copy of an event built by
// build. Listeners acting for a player get build(owner); all others get
// build(""), which must leave out anything private.
func (em *Manager) PublishPrivate(build func(owner string) Event) {
	for _, l := range em.listeners {
		owner := ""
		if o, ok := l.(Owned); ok {
			owner = o.Owner()
		}
		l.HandleEvent(build(owner))
	}
}

// Seat describes a player at the table.
type Seat struct {
	Name      string
	Character string
}

// Square is a board coordinate.
type Square struct {
	Row int
	Col int
}

// --- Event Types for Rendering ---

// GameReadyEvent is published once the board is set and cards are dealt.
type GameReadyEvent struct {
	GameID  string
	Players []Seat
}

// HandDealtEvent announces one player's hand. Hand is only filled in for
// listeners owned by that player.
type HandDealtEvent struct {
	PlayerName string
	Hand       []cards.Card
}

type TurnStartEvent struct {
	TurnNumber int
	PlayerName string
	Character  string
	Room       string
}

// RollSkippedEvent means every exit of the player's room is blocked.
type RollSkippedEvent struct {
	PlayerName string
	Room       string
}

type DiceRolledEvent struct {
	PlayerName string
	Dice       [2]int
	Total      int
}

type PieceMovedEvent struct {
	Piece       string
	From        Square
	To          Square
	Remaining   int
	Refunded    bool
	EnteredRoom string
}

// PieceRelocatedEvent is a move caused by a suggestion rather than by dice.
type PieceRelocatedEvent struct {
	Piece string
	Room  string
	To    Square
}

type SuggestionMadeEvent struct {
	PlayerName string
	Suggestion cards.Triple
	Relocated  []string
}

// DisprovalRequestedEvent names the player who must now pick a card to show.
type DisprovalRequestedEvent struct {
	SuggesterName string
	DisproverName string
	Options       []cards.Card
}

type DisprovalEvent struct {
	SuggesterName string
	DisproverName string
	RevealedCard  cards.Card // Only filled in for the suggester's listeners
}

type NoDisprovalEvent struct {
	SuggesterName string
}

type AccusationEvent struct {
	PlayerName string
	Accusation cards.Triple
	IsCorrect  bool
}

type GameOverEvent struct {
	Winner   string // Empty on a draw
	Solution cards.Triple
	Draw     bool
}

// --- Event Type for Deduction ---

// TurnResolvedEvent is the complete outcome of a suggestion, for notebooks.
type TurnResolvedEvent struct {
	SuggesterName string
	Suggestion    cards.Triple
	DisproverName string     // Empty if no one disproved
	RevealedCard  cards.Card // Zero value unless shown to this listener
	PassedPlayers []string   // Polled players who held none of the cards
}
