package cli

import (
	"errors"
	"example.com/cluedo-engine/internal/board"
	"example.com/cluedo-engine/internal/cards"
	"example.com/cluedo-engine/internal/config"
	"example.com/cluedo-engine/internal/events"
	"example.com/cluedo-engine/internal/game"
	"example.com/cluedo-engine/internal/notebook"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"
)

// CLI manages all command-line interactions.
type CLI struct {
	log  *logrus.Logger
	line *liner.State
	out  io.Writer
}

// NewCLI creates a new command-line interface manager.
func NewCLI(log *logrus.Logger) *CLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completeCommand)
	return &CLI{
		log:  log,
		line: line,
		out:  color.Output,
	}
}

// Close restores the terminal.
func (c *CLI) Close() error {
	return c.line.Close()
}

// ShowBoard prints the starting board for a config and its piece legend.
func (c *CLI) ShowBoard(cfg *config.GameConfig, rand *rand.Rand) error {
	b, err := board.Load(cfg, rand, c.log)
	if err != nil {
		return fmt.Errorf("failed to load board: %w", err)
	}
	fmt.Fprintln(c.out, DrawBoard(b, nil))
	RenderLegend(c.out, b)
	return nil
}

// Play runs hot-seat games at one keyboard until the players stop.
func (c *CLI) Play(cfg *config.GameConfig, rand *rand.Rand) error {
	C.Header.Fprintln(c.out, "--- Cluedo ---")
	for {
		g, notebooks, err := c.setupGame(cfg, rand)
		if err == nil {
			err = c.playGame(g, notebooks)
		}
		if errors.Is(err, errQuit) {
			C.Info.Fprintln(c.out, "\nGoodbye!")
			return nil
		}
		if err != nil {
			return err
		}
		again, err := c.confirm("\nPlay again?")
		if err != nil || !again {
			C.Info.Fprintln(c.out, "Goodbye!")
			return nil
		}
	}
}

func (c *CLI) setupGame(cfg *config.GameConfig, rand *rand.Rand) (*game.Game, map[string]*notebook.Notebook, error) {
	builder := game.NewBuilder(cfg, c.log, rand)
	maxPlayers := min(game.MaxPlayers, len(cfg.CharacterDefs))
	count, err := c.promptForInt(fmt.Sprintf("How many players? (%d-%d): ", game.MinPlayers, maxPlayers), game.MinPlayers, maxPlayers)
	if err != nil {
		return nil, nil, err
	}

	taken := make(map[string]bool)
	var names []string
	for len(names) < count {
		name, err := c.promptForString(fmt.Sprintf("Name for player %d: ", len(names)+1))
		if err != nil {
			return nil, nil, err
		}
		var free []string
		for _, ch := range cfg.CharacterDefs {
			if !taken[ch.Name] {
				free = append(free, ch.Name)
			}
		}
		character, err := c.promptForSelection(fmt.Sprintf("Which character will %s play?", name), free)
		if err != nil {
			return nil, nil, err
		}
		if err := builder.CheckPlayer(name, character); err != nil {
			C.Warn.Fprintln(c.out, err)
			continue
		}
		builder.WithPlayer(name, character)
		taken[character] = true
		names = append(names, name)
	}

	builder.EventManager().Subscribe(NewTableRenderer(c.out))
	notebooks := newNotebooks(builder.EventManager(), cfg, names, c.log)

	g, err := builder.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build game: %w", err)
	}
	c.printHelp()
	return g, notebooks, nil
}

// newNotebooks gives every player detective notes on their own copy of the
// config and subscribes them to the game's events.
func newNotebooks(em *events.Manager, cfg *config.GameConfig, names []string, log logrus.FieldLogger) map[string]*notebook.Notebook {
	notebooks := make(map[string]*notebook.Notebook, len(names))
	for _, name := range names {
		nb := notebook.New(cfg.DeepCopy(), name, names, log)
		em.Subscribe(nb)
		notebooks[name] = nb
	}
	return notebooks
}

func (c *CLI) playGame(g *game.Game, notebooks map[string]*notebook.Notebook) error {
	for !g.IsOver() {
		if g.Phase() == game.AwaitingRefutation {
			if err := c.resolveRefutation(g); err != nil {
				return err
			}
			continue
		}
		p := g.CurrentPlayer()
		input, err := c.promptForString(fmt.Sprintf("[%s | %s] > ", p.Name(), g.Phase()))
		if err != nil {
			return err
		}
		parts := strings.Fields(input)
		if err := c.dispatch(g, notebooks[p.Name()], strings.ToLower(parts[0]), parts[1:]); err != nil {
			if errors.Is(err, errQuit) {
				return err
			}
			c.log.Debugf("command %q rejected: %v", input, err)
			C.Warn.Fprintln(c.out, err)
		}
	}
	return nil
}

func (c *CLI) dispatch(g *game.Game, nb *notebook.Notebook, cmd string, args []string) error {
	switch cmd {
	case "roll", "r":
		if _, err := g.Roll(); err != nil {
			return err
		}
		c.showBoard(g)
	case "move", "m":
		return c.handleMoveCommand(g, args)
	case "exit", "x":
		room := g.CurrentRoom()
		if room.Corridor {
			return board.ErrNotInRoom
		}
		exit, err := parseExit(args, g.Board.UnoccupiedExits(room))
		if err != nil {
			return err
		}
		if _, err := g.ExitRoom(exit); err != nil {
			return err
		}
		c.showBoard(g)
	case "goto", "g":
		dest, err := parseSquare(args)
		if err != nil {
			return err
		}
		if _, err := g.MoveTo(dest); err != nil {
			return err
		}
		c.showBoard(g)
	case "stop", "f":
		return g.FinishMoving()
	case "suggest", "s":
		return c.handleSuggestCommand(g)
	case "pass", "p":
		switch g.Phase() {
		case game.AwaitingRoll:
			return g.DeclineRoll()
		case game.AwaitingSuggestion:
			return g.DeclineSuggestion()
		default:
			return fmt.Errorf("%w: nothing to pass while %s", game.ErrWrongPhase, g.Phase())
		}
	case "accuse", "a":
		return c.handleAccuseCommand(g)
	case "board", "b":
		c.showBoard(g)
		RenderLegend(c.out, g.Board)
	case "hand", "h":
		p := g.CurrentPlayer()
		RenderHand(c.out, p.Name(), p.Hand().Cards())
	case "notes", "n":
		c.handleNotesCommand(nb)
	case "end", "e":
		return g.EndTurn()
	case "help", "?":
		c.printHelp()
	case "quit", "q":
		if ok, err := c.confirm("Abandon this game?"); err != nil || ok {
			return errQuit
		}
	default:
		return fmt.Errorf("unknown command %q, type 'help' for the list", cmd)
	}
	return nil
}

func (c *CLI) showBoard(g *game.Game) {
	fmt.Fprintln(c.out, DrawBoard(g.Board, g.CurrentRoom()))
	if g.Phase() == game.Moving {
		C.Info.Fprintf(c.out, "%d steps left.\n", g.Moves().Remaining())
	}
}

func (c *CLI) handleMoveCommand(g *game.Game, args []string) error {
	dirs, err := parseMoves(args)
	if err != nil {
		return err
	}
	defer c.showBoard(g)
	for _, d := range dirs {
		if g.Phase() != game.Moving {
			break
		}
		res, err := g.Step(d)
		if err != nil {
			return err
		}
		if res.Outcome == board.Repeated {
			break
		}
	}
	return nil
}

func (c *CLI) handleSuggestCommand(g *game.Game) error {
	if g.Phase() != game.AwaitingSuggestion {
		return fmt.Errorf("%w: cannot suggest while %s", game.ErrWrongPhase, g.Phase())
	}
	room := g.CurrentRoom().Name
	character, err := c.promptForSelection(fmt.Sprintf("Who did it in the %s?", room), cardNames(g.Config, config.CategoryCharacter))
	if err != nil {
		return err
	}
	weapon, err := c.promptForSelection("With which weapon?", cardNames(g.Config, config.CategoryWeapon))
	if err != nil {
		return err
	}
	res, err := g.Suggest(character, weapon, room)
	if err != nil {
		return err
	}
	if res.Refuter == "" {
		return nil
	}
	return c.resolveRefutation(g)
}

func (c *CLI) resolveRefutation(g *game.Game) error {
	// Hand the keyboard around so only the refuter sees the choice, and only
	// the suggester sees the shown card.
	suggester := g.CurrentPlayer().Name()
	refuter, options, _ := g.PendingRefutation()
	C.Header.Fprintf(c.out, "\nPass the keyboard to %s.\n", refuter.Name())
	names := make([]string, len(options))
	for i, o := range options {
		names[i] = o.Name
	}
	choice, err := c.promptForSelection(fmt.Sprintf("%s, which card will you show %s?", refuter.Name(), suggester), names)
	if err != nil {
		return err
	}
	shown, err := g.Refute(choice)
	if err != nil {
		return err
	}
	C.Header.Fprintf(c.out, "\nPass the keyboard back to %s.\n", suggester)
	if _, err := c.promptForString("Type ok when ready: "); err != nil {
		return err
	}
	C.Yes.Fprintf(c.out, "%s showed you: %s\n", refuter.Name(), ColorizeCard(shown.Name))
	return nil
}

func (c *CLI) handleAccuseCommand(g *game.Game) error {
	p := g.CurrentPlayer()
	if !p.CanAccuse() {
		return game.ErrAccusationSpent
	}
	switch g.Phase() {
	case game.AwaitingRoll, game.AwaitingSuggestion, game.AwaitingAccusation:
	default:
		return fmt.Errorf("%w: cannot accuse while %s", game.ErrWrongPhase, g.Phase())
	}
	picks := make([]string, 0, 3)
	for _, cat := range config.Categories() {
		choice, err := c.promptForSelection(fmt.Sprintf("Accuse which of the %s?", cat), cardNames(g.Config, cat))
		if err != nil {
			return err
		}
		picks = append(picks, choice)
	}
	sure, err := c.confirm(fmt.Sprintf("You only get one accusation. Accuse %s with the %s in the %s?",
		ColorizeCard(picks[0]), picks[1], picks[2]))
	if err != nil || !sure {
		return err
	}
	_, err = g.Accuse(picks[0], picks[1], picks[2])
	return err
}

func (c *CLI) handleNotesCommand(nb *notebook.Notebook) {
	RenderNotes(c.out, nb)
	if unresolved := nb.Unresolved(); len(unresolved) > 0 {
		C.Header.Fprintln(c.out, "Open questions:")
		for _, u := range unresolved {
			var possible []cards.Card
			for _, name := range u.Cards() {
				possible = append(possible, cards.Card{Name: name})
			}
			C.Maybe.Fprintf(c.out, "  %s holds one of: %s\n", u.Disprover, joinCards(possible))
		}
	}
	if solution, ok := nb.Accusation(); ok {
		C.Yes.Fprintf(c.out, "Your notes point to %s with the %s in the %s.\n",
			ColorizeCard(solution[config.CategoryCharacter]), solution[config.CategoryWeapon], solution[config.CategoryRoom])
	}
}
