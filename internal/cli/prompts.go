package cli

import (
	"errors"
	"example.com/cluedo-engine/internal/cards"
	"example.com/cluedo-engine/internal/config"
	"example.com/cluedo-engine/internal/notebook"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/peterh/liner"
)

// errQuit is returned by prompts when the user aborts with Ctrl-C or EOF.
var errQuit = errors.New("quit")

// C holds pre-configured color objects for printing to the console.
var C = struct {
	Yes, No, Maybe, Info, Warn, Header, Prompt, Debug *color.Color
}{
	Yes:    color.New(color.FgGreen),
	No:     color.New(color.FgRed),
	Maybe:  color.New(color.FgYellow),
	Info:   color.New(color.FgCyan),
	Warn:   color.New(color.FgHiYellow),
	Header: color.New(color.FgWhite, color.Bold),
	Prompt: color.New(color.FgHiWhite),
	Debug:  color.New(color.FgMagenta),
}

// CharacterColors maps character names to specific colors for display.
var CharacterColors = map[string]*color.Color{
	"Miss Scarlet":    color.New(color.FgRed, color.Bold),
	"Colonel Mustard": color.New(color.FgYellow, color.Bold),
	"Mrs White":       color.New(color.FgHiWhite, color.Bold),
	"Mr Green":        color.New(color.FgGreen, color.Bold),
	"Mrs Peacock":     color.New(color.FgBlue, color.Bold),
	"Professor Plum":  color.New(color.FgMagenta, color.Bold),
}

// ColorizeCard returns a card name as a colored string if it's a character.
func ColorizeCard(name string) string {
	if c, ok := CharacterColors[name]; ok {
		return c.Sprint(name)
	}
	return name
}

func joinCards(cs []cards.Card) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = ColorizeCard(c.Name)
	}
	return strings.Join(parts, ", ")
}

func describe(t cards.Triple) string {
	return fmt.Sprintf("%s with the %s in the %s", ColorizeCard(t.Character.Name), t.Weapon.Name, t.Room.Name)
}

// RenderNotes writes a notebook's knowledge grid as a table.
func RenderNotes(w io.Writer, nb *notebook.Notebook) {
	cfg := nb.Config()
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("%s's Detective Notes", nb.Owner()))
	header := table.Row{"ID", "Card", "Type"}
	for _, pName := range nb.Players() {
		header = append(header, pName)
	}
	header = append(header, "Solution")
	t.AppendHeader(header)

	for cardID, card := range cfg.AllCards {
		if cardID > 0 && cfg.CardToType[card] != cfg.CardToType[cfg.AllCards[cardID-1]] {
			t.AppendSeparator()
		}
		row := table.Row{cardID + 1, ColorizeCard(card), cfg.CardToType[card].String()}
		for _, pName := range nb.Players() {
			row = append(row, statusToSymbol(nb.Status(card, pName)))
		}
		row = append(row, statusToSymbol(nb.Status(card, notebook.Solution)))
		t.AppendRow(row)
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Options.SeparateRows = false
	t.Style().Title.Align = text.AlignCenter
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignRight}})
	t.Render()
}

func statusToSymbol(status notebook.CardStatus) string {
	switch status {
	case notebook.StatusYes:
		return C.Yes.Sprint("✔")
	case notebook.StatusNo:
		return C.No.Sprint("✖")
	default:
		return C.Maybe.Sprint("?")
	}
}

// RenderHand writes a player's cards as a table.
func RenderHand(w io.Writer, owner string, hand []cards.Card) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("%s's Hand", owner))
	t.AppendHeader(table.Row{"Card", "Type"})
	for _, c := range hand {
		t.AppendRow(table.Row{ColorizeCard(c.Name), c.Category.String()})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

func (c *CLI) printHelp() {
	C.Header.Fprintln(c.out, "\n--- Commands ---")
	t := table.NewWriter()
	t.SetOutputMirror(c.out)
	t.AppendHeader(table.Row{"Command", "Alias", "Description"})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"roll", "r", "Roll the dice and start moving."},
		{"move <wasd...>", "m", "Step through the corridor, e.g. 'm wwd' or 'm north'."},
		{"exit <n>", "x", "Leave the room by the numbered exit on the board."},
		{"goto <row> <col>", "g", "Move to a neighbouring square or exit."},
		{"stop", "f", "Stop moving before the dice are used up."},
		{"suggest", "s", "Suggest a character and weapon in this room."},
		{"pass", "p", "Skip rolling or suggesting."},
		{"accuse", "a", "Make your one accusation."},
		{"board", "b", "Show the board."},
		{"hand", "h", "Show your cards."},
		{"notes", "n", "Show your detective notes."},
		{"end", "e", "End your turn."},
		{"help", "?", "Show this help message."},
		{"quit", "q", "Leave the game."},
	})
	t.SetStyle(table.StyleLight)
	t.Render()
}

// --- Prompting ---

func (c *CLI) promptForString(prompt string) (string, error) {
	for {
		C.Prompt.Fprint(c.out, prompt)
		input, err := c.line.Prompt("")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return "", errQuit
			}
			return "", fmt.Errorf("error reading line: %w", err)
		}
		trimmed := strings.TrimSpace(input)
		if trimmed != "" {
			c.line.AppendHistory(trimmed)
			return trimmed, nil
		}
	}
}

func (c *CLI) promptForInt(prompt string, min, max int) (int, error) {
	for {
		input, err := c.promptForString(prompt)
		if err != nil {
			return 0, err
		}
		num, err := strconv.Atoi(input)
		if err != nil || num < min || num > max {
			C.Warn.Fprintf(c.out, "Invalid input. Please enter a number between %d and %d.\n", min, max)
			continue
		}
		return num, nil
	}
}

func (c *CLI) promptForSelection(prompt string, options []string) (string, error) {
	for {
		C.Header.Fprintln(c.out, "\n"+prompt)
		for i, opt := range options {
			fmt.Fprintf(c.out, " %2d: %s\n", i+1, ColorizeCard(opt))
		}
		input, err := c.promptForString("Enter number or name: ")
		if err != nil {
			return "", err
		}
		if choice, ok := selectOption(options, input); ok {
			return choice, nil
		}
		C.Warn.Fprintln(c.out, "Invalid selection.")
	}
}

// selectOption matches input against a 1-based index or a case-insensitive name.
func selectOption(options []string, input string) (string, bool) {
	if num, err := strconv.Atoi(input); err == nil && num >= 1 && num <= len(options) {
		return options[num-1], true
	}
	for _, opt := range options {
		if strings.EqualFold(opt, input) {
			return opt, true
		}
	}
	return "", false
}

func (c *CLI) confirm(prompt string) (bool, error) {
	input, err := c.promptForString(prompt + " (y/n): ")
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(input), "y"), nil
}

func cardNames(cfg *config.GameConfig, cat config.CardCategory) []string {
	return append([]string(nil), cfg.CardListForCategory(cat)...)
}
