package cli

import (
	"bytes"
	"example.com/cluedo-engine/internal/cards"
	"example.com/cluedo-engine/internal/config"
	"example.com/cluedo-engine/internal/events"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestTableRendererKeepsShownCardsPrivate(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	r := NewTableRenderer(&buf)

	r.HandleEvent(events.HandDealtEvent{PlayerName: "Ann", Hand: []cards.Card{{Name: "Rope", Category: config.CategoryWeapon}}})
	r.HandleEvent(events.DisprovalEvent{
		SuggesterName: "Ann",
		DisproverName: "Ben",
		RevealedCard:  cards.Card{Name: "Lead Pipe", Category: config.CategoryWeapon},
	})

	out := buf.String()
	if strings.Contains(out, "Rope") || strings.Contains(out, "Lead Pipe") {
		t.Errorf("Private cards leaked to the table: %q", out)
	}
	if !strings.Contains(out, "Ben shows a card to Ann") {
		t.Errorf("Expected the disproval to be announced, got %q", out)
	}
}

func TestTableRendererGameOver(t *testing.T) {
	color.NoColor = true
	solution := cards.Triple{
		Character: cards.Card{Name: "Mrs White", Category: config.CategoryCharacter},
		Weapon:    cards.Card{Name: "Spanner", Category: config.CategoryWeapon},
		Room:      cards.Card{Name: "Study", Category: config.CategoryRoom},
	}

	t.Run("a winner is named", func(t *testing.T) {
		var buf bytes.Buffer
		NewTableRenderer(&buf).HandleEvent(events.GameOverEvent{Winner: "Cat", Solution: solution})
		if !strings.Contains(buf.String(), "Cat wins!") {
			t.Errorf("Expected the winner, got %q", buf.String())
		}
		if !strings.Contains(buf.String(), "Mrs White with the Spanner in the Study") {
			t.Errorf("Expected the solution, got %q", buf.String())
		}
	})

	t.Run("a draw is announced", func(t *testing.T) {
		var buf bytes.Buffer
		NewTableRenderer(&buf).HandleEvent(events.GameOverEvent{Solution: solution, Draw: true})
		if !strings.Contains(buf.String(), "Nobody wins") {
			t.Errorf("Expected a draw, got %q", buf.String())
		}
	})
}
