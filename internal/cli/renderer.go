package cli

import (
	"example.com/cluedo-engine/internal/events"
	"fmt"
	"io"
	"strings"
)

// TableRenderer implements the events.Listener interface to print what every
// player at the table may see. Private information, such as hands and shown
// cards, is left to the prompts of the player concerned.
type TableRenderer struct {
	out io.Writer
}

func NewTableRenderer(out io.Writer) *TableRenderer {
	return &TableRenderer{out: out}
}

// HandleEvent is the central dispatcher for rendering events.
func (r *TableRenderer) HandleEvent(e events.Event) {
	switch event := e.(type) {
	case events.GameReadyEvent:
		var seats []string
		for _, s := range event.Players {
			seats = append(seats, fmt.Sprintf("%s as %s", s.Name, ColorizeCard(s.Character)))
		}
		C.Header.Fprintf(r.out, "--- Game %s ---\n", event.GameID)
		C.Info.Fprintf(r.out, "Players: %s\n", strings.Join(seats, ", "))
	case events.TurnStartEvent:
		C.Header.Fprintf(r.out, "\n--- Turn %d: %s (%s) in the %s ---\n",
			event.TurnNumber, event.PlayerName, ColorizeCard(event.Character), event.Room)
	case events.RollSkippedEvent:
		C.Warn.Fprintf(r.out, "Every door of the %s is blocked, %s cannot roll.\n", event.Room, event.PlayerName)
	case events.DiceRolledEvent:
		C.Info.Fprintf(r.out, "%s rolls %d and %d: %d steps.\n", event.PlayerName, event.Dice[0], event.Dice[1], event.Total)
	case events.PieceMovedEvent:
		r.renderMove(event)
	case events.PieceRelocatedEvent:
		C.Info.Fprintf(r.out, "%s is moved to the %s.\n", ColorizeCard(event.Piece), event.Room)
	case events.SuggestionMadeEvent:
		C.Info.Fprintf(r.out, "%s suggests: %s\n", event.PlayerName, describe(event.Suggestion))
	case events.DisprovalRequestedEvent:
		C.Info.Fprintf(r.out, "-> %s can disprove and must choose a card.\n", event.DisproverName)
	case events.DisprovalEvent:
		C.Info.Fprintf(r.out, "-> %s shows a card to %s.\n", event.DisproverName, event.SuggesterName)
	case events.NoDisprovalEvent:
		C.Info.Fprintln(r.out, "-> No player could show a card.")
	case events.AccusationEvent:
		C.Info.Fprintf(r.out, "%s ACCUSES: %s\n", event.PlayerName, describe(event.Accusation))
		if event.IsCorrect {
			C.Yes.Fprintln(r.out, "The accusation is CORRECT!")
		} else {
			C.No.Fprintf(r.out, "The accusation is INCORRECT! %s can no longer win.\n", event.PlayerName)
		}
	case events.GameOverEvent:
		r.renderGameResult(event)
	}
}

func (r *TableRenderer) renderMove(event events.PieceMovedEvent) {
	switch {
	case event.EnteredRoom != "":
		C.Info.Fprintf(r.out, "%s enters the %s.\n", ColorizeCard(event.Piece), event.EnteredRoom)
	case event.Refunded:
		C.Info.Fprintf(r.out, "%s steps back to (%d,%d), %d left.\n", ColorizeCard(event.Piece), event.To.Row, event.To.Col, event.Remaining)
	default:
		C.Info.Fprintf(r.out, "%s moves to (%d,%d), %d left.\n", ColorizeCard(event.Piece), event.To.Row, event.To.Col, event.Remaining)
	}
}

func (r *TableRenderer) renderGameResult(event events.GameOverEvent) {
	C.Header.Fprintln(r.out, "\n--- GAME OVER ---")
	if event.Draw {
		C.Warn.Fprintln(r.out, "Every player has accused wrongly. Nobody wins.")
	} else {
		C.Yes.Fprintf(r.out, "%s wins!\n", event.Winner)
	}
	C.Info.Fprintf(r.out, "The correct solution was: %s\n", describe(event.Solution))
}
