// Package game runs a Cluedo game as a sequence of commands issued on behalf of
// the active player. Every command either applies fully or returns an error and
// leaves the game untouched.
package game

import (
	"errors"
	"example.com/cluedo-engine/internal/board"
	"example.com/cluedo-engine/internal/cards"
	"example.com/cluedo-engine/internal/config"
	"example.com/cluedo-engine/internal/events"
	"example.com/cluedo-engine/internal/player"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Phase is the step of the current turn the game is waiting on.
type Phase int

const (
	AwaitingRoll Phase = iota
	Moving
	AwaitingSuggestion
	AwaitingRefutation
	AwaitingAccusation
	Over
)

func (p Phase) String() string {
	return []string{
		"awaiting roll",
		"moving",
		"awaiting suggestion",
		"awaiting refutation",
		"awaiting accusation",
		"over",
	}[p]
}

var (
	ErrWrongPhase       = errors.New("not allowed at this point of the turn")
	ErrCannotRoll       = errors.New("every exit of the room is blocked")
	ErrGameOver         = errors.New("the game is over")
	ErrWrongRoom        = errors.New("suggestions must name the room you are in")
	ErrCardNotRefutable = errors.New("card cannot refute this suggestion")
	ErrAccusationSpent  = errors.New("accusation already used")
)

// pendingRefutation is a suggestion waiting for the refuter to pick a card.
type pendingRefutation struct {
	suggestion cards.Triple
	refuter    *player.Player
	options    []cards.Card
	passed     []string
}

// SuggestionResult reports what a suggestion did. Refuter is empty when
// nobody could disprove it.
type SuggestionResult struct {
	Suggestion cards.Triple
	Relocated  []string
	Passed     []string
	Refuter    string
	Options    []cards.Card
}

// Game represents the state and logic of a single Cluedo game.
type Game struct {
	ID           string
	Config       *config.GameConfig
	Board        *board.Board
	Players      []*player.Player
	EventManager *events.Manager

	solution    cards.Triple
	current     int
	turn        int
	phase       Phase
	rollSkipped bool
	dice        [2]int
	moves       *board.TurnMoves
	pending     *pendingRefutation
	winner      *player.Player

	log  logrus.FieldLogger
	rand *rand.Rand
}

// --- Queries ---

func (g *Game) Phase() Phase                   { return g.phase }
func (g *Game) TurnNumber() int                { return g.turn }
func (g *Game) CurrentPlayer() *player.Player  { return g.Players[g.current] }
func (g *Game) Solution() cards.Triple         { return g.solution }
func (g *Game) IsOver() bool                   { return g.phase == Over }
func (g *Game) Dice() [2]int                   { return g.dice }
func (g *Game) Moves() *board.TurnMoves        { return g.moves }
func (g *Game) RollSkipped() bool              { return g.rollSkipped }
func (g *Game) CurrentPiece() *board.Piece     { return g.PieceOf(g.CurrentPlayer()) }
func (g *Game) CurrentRoom() *board.Room       { return g.Board.PieceRoom(g.CurrentPiece()) }
func (g *Game) Winner() (*player.Player, bool) { return g.winner, g.winner != nil }

// PieceOf returns the board piece of a player's character.
func (g *Game) PieceOf(p *player.Player) *board.Piece {
	piece, _ := g.Board.Piece(p.Character())
	return piece
}

// PendingRefutation returns the player who must show a card and the cards they
// may choose from, while the game is awaiting a refutation.
func (g *Game) PendingRefutation() (*player.Player, []cards.Card, bool) {
	if g.pending == nil {
		return nil, nil, false
	}
	return g.pending.refuter, append([]cards.Card(nil), g.pending.options...), true
}

// RefutationOrder lists the players asked to disprove a suggestion made by the
// player at ordinal from: everyone after them in turn order, wrapping round.
func (g *Game) RefutationOrder(from int) []*player.Player {
	n := len(g.Players)
	order := make([]*player.Player, 0, n-1)
	for i := 1; i < n; i++ {
		order = append(order, g.Players[(from+i)%n])
	}
	return order
}

// AnyoneCanAccuse reports whether at least one player still holds their accusation.
func (g *Game) AnyoneCanAccuse() bool {
	for _, p := range g.Players {
		if p.CanAccuse() {
			return true
		}
	}
	return false
}

func (g *Game) expect(allowed ...Phase) error {
	if g.phase == Over {
		return ErrGameOver
	}
	for _, p := range allowed {
		if g.phase == p {
			return nil
		}
	}
	return fmt.Errorf("%w: the game is %s", ErrWrongPhase, g.phase)
}

// --- Turn flow ---

func (g *Game) startTurn() {
	g.turn++
	g.phase = AwaitingRoll
	g.rollSkipped = false
	g.dice = [2]int{}
	g.moves = nil
	g.pending = nil

	p := g.CurrentPlayer()
	room := g.CurrentRoom()
	g.EventManager.Publish(events.TurnStartEvent{
		TurnNumber: g.turn,
		PlayerName: p.Name(),
		Character:  p.Character(),
		Room:       room.Name,
	})
	g.log.Debugf("Turn %d: %s in the %s", g.turn, p, room.Name)

	if !g.Board.PlayerCanRoll(room) {
		g.rollSkipped = true
		g.log.Infof("%s is shut in the %s and cannot roll", p.Name(), room.Name)
		g.EventManager.Publish(events.RollSkippedEvent{PlayerName: p.Name(), Room: room.Name})
		g.finishMovement()
	}
}

// finishMovement ends the movement part of the turn. A player standing in a
// room with a card may then suggest.
func (g *Game) finishMovement() {
	if g.moves != nil {
		g.moves.Exhaust()
	}
	if room := g.CurrentRoom(); room != nil && !room.Corridor && !room.Reserved {
		g.phase = AwaitingSuggestion
		return
	}
	g.phase = AwaitingAccusation
}

// Roll throws two dice and starts the movement phase with their total as the
// step budget.
func (g *Game) Roll() (int, error) {
	if g.rollSkipped && g.phase != Over {
		return 0, ErrCannotRoll
	}
	if err := g.expect(AwaitingRoll); err != nil {
		return 0, err
	}
	g.dice = [2]int{g.rand.Intn(6) + 1, g.rand.Intn(6) + 1}
	total := g.dice[0] + g.dice[1]
	g.moves = board.NewTurnMoves(total)
	g.phase = Moving

	p := g.CurrentPlayer()
	g.log.Debugf("%s rolled %d and %d", p.Name(), g.dice[0], g.dice[1])
	g.EventManager.Publish(events.DiceRolledEvent{PlayerName: p.Name(), Dice: g.dice, Total: total})
	return total, nil
}

// DeclineRoll skips movement for this turn.
func (g *Game) DeclineRoll() error {
	if err := g.expect(AwaitingRoll); err != nil {
		return err
	}
	g.finishMovement()
	return nil
}

// Step moves the active player's piece one square.
func (g *Game) Step(dir board.Direction) (board.StepResult, error) {
	return g.move(func(piece *board.Piece) (board.StepResult, error) {
		return g.Board.Step(piece, dir, g.moves)
	})
}

// MoveTo moves the active player's piece onto a neighbouring square, or out
// through the given exit when the piece is in a room.
func (g *Game) MoveTo(dest board.Position) (board.StepResult, error) {
	return g.move(func(piece *board.Piece) (board.StepResult, error) {
		return g.Board.MoveTo(piece, dest, g.moves)
	})
}

// ExitRoom leaves the current room through one of its exits.
func (g *Game) ExitRoom(exit board.Position) (board.StepResult, error) {
	return g.move(func(piece *board.Piece) (board.StepResult, error) {
		return g.Board.ExitRoom(piece, exit, g.moves)
	})
}

func (g *Game) move(apply func(*board.Piece) (board.StepResult, error)) (board.StepResult, error) {
	if err := g.expect(Moving); err != nil {
		return board.StepResult{}, err
	}
	piece := g.CurrentPiece()
	res, err := apply(piece)
	if err != nil {
		return res, err
	}
	g.EventManager.Publish(events.PieceMovedEvent{
		Piece:       piece.Name,
		From:        square(res.From),
		To:          square(res.To),
		Remaining:   g.moves.Remaining(),
		Refunded:    res.Refunded,
		EnteredRoom: res.EnteredRoom,
	})
	if g.moves.Remaining() == 0 {
		g.finishMovement()
	}
	return res, nil
}

// FinishMoving ends movement before the budget is spent.
func (g *Game) FinishMoving() error {
	if err := g.expect(Moving); err != nil {
		return err
	}
	g.finishMovement()
	return nil
}

// Suggest names a character and weapon in the room the active player is in.
// Both pieces are brought into that room, then the other players are polled
// in turn order. If someone holds a named card the game waits for Refute.
func (g *Game) Suggest(character, weapon, room string) (SuggestionResult, error) {
	if err := g.expect(AwaitingSuggestion); err != nil {
		return SuggestionResult{}, err
	}
	suggestion, err := cards.NewTriple(g.Config, character, weapon, room)
	if err != nil {
		return SuggestionResult{}, err
	}
	here := g.CurrentRoom()
	if suggestion.Room.Name != here.Name {
		return SuggestionResult{}, fmt.Errorf("%w: you are in the %s", ErrWrongRoom, here.Name)
	}

	suggester := g.CurrentPlayer()
	result := SuggestionResult{Suggestion: suggestion}
	for _, name := range []string{character, weapon} {
		piece, ok := g.Board.Piece(name)
		if !ok {
			return SuggestionResult{}, fmt.Errorf("%w: %s", board.ErrUnknownPiece, name)
		}
		moved, err := g.Board.MoveIntoRoom(piece, here)
		if err != nil {
			return SuggestionResult{}, err
		}
		if moved {
			result.Relocated = append(result.Relocated, name)
			g.EventManager.Publish(events.PieceRelocatedEvent{Piece: name, Room: here.Name, To: square(g.Board.Location(piece))})
		}
	}

	g.log.Infof("%s suggests %s", suggester.Name(), suggestion)
	g.EventManager.Publish(events.SuggestionMadeEvent{
		PlayerName: suggester.Name(),
		Suggestion: suggestion,
		Relocated:  result.Relocated,
	})

	for _, p := range g.RefutationOrder(g.current) {
		options := p.CanRefute(suggestion)
		if len(options) == 0 {
			result.Passed = append(result.Passed, p.Name())
			continue
		}
		g.pending = &pendingRefutation{
			suggestion: suggestion,
			refuter:    p,
			options:    options,
			passed:     result.Passed,
		}
		g.phase = AwaitingRefutation
		result.Refuter = p.Name()
		result.Options = append([]cards.Card(nil), options...)
		g.EventManager.Publish(events.DisprovalRequestedEvent{
			SuggesterName: suggester.Name(),
			DisproverName: p.Name(),
			Options:       result.Options,
		})
		return result, nil
	}

	g.log.Infof("Nobody could disprove %s", suggestion)
	g.EventManager.Publish(events.NoDisprovalEvent{SuggesterName: suggester.Name()})
	g.EventManager.Publish(events.TurnResolvedEvent{
		SuggesterName: suggester.Name(),
		Suggestion:    suggestion,
		PassedPlayers: result.Passed,
	})
	g.phase = AwaitingAccusation
	return result, nil
}

// DeclineSuggestion passes on suggesting this turn.
func (g *Game) DeclineSuggestion() error {
	if err := g.expect(AwaitingSuggestion); err != nil {
		return err
	}
	g.phase = AwaitingAccusation
	return nil
}

// Refute shows one card to the suggester on behalf of the pending refuter.
func (g *Game) Refute(cardName string) (cards.Card, error) {
	if err := g.expect(AwaitingRefutation); err != nil {
		return cards.Card{}, err
	}
	var shown cards.Card
	found := false
	for _, c := range g.pending.options {
		if c.Name == cardName {
			shown, found = c, true
			break
		}
	}
	if !found {
		return cards.Card{}, fmt.Errorf("%w: %s cannot show %q", ErrCardNotRefutable, g.pending.refuter.Name(), cardName)
	}

	suggester := g.CurrentPlayer()
	pending := g.pending
	g.pending = nil
	g.phase = AwaitingAccusation

	g.log.Debugf("%s shows %s to %s", pending.refuter.Name(), shown.Name, suggester.Name())
	// Only the suggester's listeners learn which card it was.
	seen := func(owner string) cards.Card {
		if owner == suggester.Name() {
			return shown
		}
		return cards.Card{}
	}
	g.EventManager.PublishPrivate(func(owner string) events.Event {
		return events.DisprovalEvent{
			SuggesterName: suggester.Name(),
			DisproverName: pending.refuter.Name(),
			RevealedCard:  seen(owner),
		}
	})
	g.EventManager.PublishPrivate(func(owner string) events.Event {
		return events.TurnResolvedEvent{
			SuggesterName: suggester.Name(),
			Suggestion:    pending.suggestion,
			DisproverName: pending.refuter.Name(),
			RevealedCard:  seen(owner),
			PassedPlayers: pending.passed,
		}
	})
	return shown, nil
}

// RefuteWith lets a chooser pick the card for the pending refuter.
func (g *Game) RefuteWith(chooser player.Chooser) (cards.Card, error) {
	if err := g.expect(AwaitingRefutation); err != nil {
		return cards.Card{}, err
	}
	card, ok := g.pending.refuter.ChooseCardToShow(g.pending.suggestion, chooser)
	if !ok {
		return cards.Card{}, fmt.Errorf("%w: %s holds none of %s", ErrCardNotRefutable, g.pending.refuter.Name(), g.pending.suggestion)
	}
	return g.Refute(card.Name)
}

// Accuse names the solution. A correct accusation wins the game; a wrong one
// costs the player their accusation for the rest of the game and leaves only
// EndTurn open for this turn.
func (g *Game) Accuse(character, weapon, room string) (bool, error) {
	if err := g.expect(AwaitingRoll, AwaitingSuggestion, AwaitingAccusation); err != nil {
		return false, err
	}
	p := g.CurrentPlayer()
	if !p.CanAccuse() {
		return false, ErrAccusationSpent
	}
	accusation, err := cards.NewTriple(g.Config, character, weapon, room)
	if err != nil {
		return false, err
	}

	correct := accusation.Matches(g.solution)
	g.log.Infof("%s accuses %s: correct=%v", p.Name(), accusation, correct)
	g.EventManager.Publish(events.AccusationEvent{PlayerName: p.Name(), Accusation: accusation, IsCorrect: correct})

	if correct {
		g.winner = p
		g.phase = Over
		g.EventManager.Publish(events.GameOverEvent{Winner: p.Name(), Solution: g.solution})
		return true, nil
	}
	p.RevokeAccusation()
	if g.moves != nil {
		g.moves.Exhaust()
	}
	g.phase = AwaitingAccusation
	return false, nil
}

// EndTurn passes play to the next player. When nobody can accuse any more the
// game ends without a winner.
func (g *Game) EndTurn() error {
	if err := g.expect(AwaitingRoll, Moving, AwaitingSuggestion, AwaitingAccusation); err != nil {
		return err
	}
	if !g.AnyoneCanAccuse() {
		g.phase = Over
		g.pending = nil
		g.log.Infof("Nobody can accuse any more, the game is drawn")
		g.EventManager.Publish(events.GameOverEvent{Solution: g.solution, Draw: true})
		return nil
	}
	g.current = (g.current + 1) % len(g.Players)
	g.startTurn()
	return nil
}

func square(p board.Position) events.Square {
	return events.Square{Row: p.Row, Col: p.Col}
}
