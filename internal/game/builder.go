package game

import (
	"errors"
	"example.com/cluedo-engine/internal/board"
	"example.com/cluedo-engine/internal/cards"
	"example.com/cluedo-engine/internal/config"
	"example.com/cluedo-engine/internal/events"
	"example.com/cluedo-engine/internal/player"
	"fmt"
	"io"
	"math/rand"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	MinPlayers = 3
	MaxPlayers = 6
)

var (
	ErrPlayerCount      = errors.New("invalid number of players")
	ErrDuplicateName    = errors.New("player name already taken")
	ErrCharacterTaken   = errors.New("character already taken")
	ErrUnknownCharacter = errors.New("unknown character")
)

type seat struct {
	name      string
	character string
}

// GameBuilder provides a step-by-step API for constructing a Game object.
type GameBuilder struct {
	cfg          *config.GameConfig
	eventManager *events.Manager
	log          *logrus.Logger
	rand         *rand.Rand
	seats        []seat
	layout       io.Reader
}

// NewBuilder creates a new GameBuilder with its required dependencies.
func NewBuilder(cfg *config.GameConfig, logger *logrus.Logger, rand *rand.Rand) *GameBuilder {
	return &GameBuilder{
		cfg:          cfg,
		log:          logger,
		rand:         rand,
		eventManager: events.NewManager(),
	}
}

// EventManager is a public getter for the unexported field. Subscribe before
// Build to see the setup events.
func (b *GameBuilder) EventManager() *events.Manager {
	return b.eventManager
}

// WithPlayer registers the next player in turn order.
func (b *GameBuilder) WithPlayer(name, character string) *GameBuilder {
	b.seats = append(b.seats, seat{name: name, character: character})
	return b
}

// WithLayout reads the board from r instead of the file named in the config.
func (b *GameBuilder) WithLayout(r io.Reader) *GameBuilder {
	b.layout = r
	return b
}

// CheckPlayer reports whether a player could be added with this name and character.
func (b *GameBuilder) CheckPlayer(name, character string) error {
	return b.checkSeat(b.seats, name, character)
}

func (b *GameBuilder) checkSeat(taken []seat, name, character string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrDuplicateName)
	}
	if _, ok := b.cfg.Character(character); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCharacter, character)
	}
	for _, s := range taken {
		if s.name == name {
			return fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		if s.character == character {
			return fmt.Errorf("%w: %s is played by %s", ErrCharacterTaken, character, s.name)
		}
	}
	return nil
}

// Players returns how many players are registered so far.
func (b *GameBuilder) Players() int { return len(b.seats) }

func (b *GameBuilder) validateSeats() error {
	limit := MaxPlayers
	if len(b.cfg.CharacterDefs) < limit {
		limit = len(b.cfg.CharacterDefs)
	}
	if len(b.seats) < MinPlayers || len(b.seats) > limit {
		return fmt.Errorf("%w: %d, need %d to %d", ErrPlayerCount, len(b.seats), MinPlayers, limit)
	}
	for i, s := range b.seats {
		if err := b.checkSeat(b.seats[:i], s.name, s.character); err != nil {
			return err
		}
	}
	return nil
}

// Build sets up the board, withholds the case file, deals the rest of the deck
// and starts the first player's turn.
func (b *GameBuilder) Build() (*Game, error) {
	if err := b.validateSeats(); err != nil {
		return nil, err
	}

	id, err := uuid.NewRandomFromReader(b.rand)
	if err != nil {
		return nil, fmt.Errorf("generating game id: %w", err)
	}
	log := b.log.WithField("game", id.String())

	var brd *board.Board
	if b.layout != nil {
		brd, err = board.New(b.cfg, b.layout, b.rand, log)
	} else {
		brd, err = board.Load(b.cfg, b.rand, log)
	}
	if err != nil {
		return nil, err
	}

	game := &Game{
		ID:           id.String(),
		Config:       b.cfg,
		Board:        brd,
		EventManager: b.eventManager,
		log:          log,
		rand:         b.rand,
	}
	for i, s := range b.seats {
		game.Players = append(game.Players, player.New(i, s.name, s.character))
	}

	if err := game.deal(); err != nil {
		return nil, err
	}

	seats := make([]events.Seat, len(game.Players))
	for i, p := range game.Players {
		seats[i] = events.Seat{Name: p.Name(), Character: p.Character()}
	}
	b.eventManager.Publish(events.GameReadyEvent{GameID: game.ID, Players: seats})
	for _, p := range game.Players {
		b.eventManager.PublishPrivate(func(owner string) events.Event {
			e := events.HandDealtEvent{PlayerName: p.Name()}
			if owner == p.Name() {
				e.Hand = p.Hand().Cards()
			}
			return e
		})
	}

	game.startTurn()
	return game, nil
}

// deal withholds the case file and deals the remaining cards in turn order.
func (g *Game) deal() error {
	solution, rest, err := cards.BuildSolution(cards.Deck(g.Config), g.rand)
	if err != nil {
		return err
	}
	g.solution = solution

	hands := make([]*cards.Hand, len(g.Players))
	for i, p := range g.Players {
		hands[i] = p.Hand()
	}
	cards.Deal(hands, rest)

	for _, p := range g.Players {
		g.log.Debugf("%s Hand: %v", p.Name(), p.Hand().Cards())
	}
	g.log.Debugf("Ground Truth Initialized. Solution: %s", g.solution)
	return nil
}
