package cli

import (
	"example.com/cluedo-engine/internal/cards"
	"example.com/cluedo-engine/internal/config"
	"example.com/cluedo-engine/internal/events"
	"example.com/cluedo-engine/internal/notebook"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewNotebooks(t *testing.T) {
	// GIVEN three players at the table
	cfg, err := config.Load("../../default_config.json")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	em := events.NewManager()

	// WHEN their notes are set up
	notebooks := newNotebooks(em, cfg, []string{"Ann", "Ben", "Cat"}, log)

	t.Run("each player keeps their own copy of the config", func(t *testing.T) {
		if len(notebooks) != 3 {
			t.Fatalf("Expected 3 notebooks, got %d", len(notebooks))
		}
		if notebooks["Ann"].Config() == cfg || notebooks["Ann"].Config() == notebooks["Ben"].Config() {
			t.Error("Expected every notebook to hold a separate config")
		}
		if len(notebooks["Cat"].Config().AllCards) != len(cfg.AllCards) {
			t.Error("Expected the copy to hold every card")
		}
	})

	t.Run("only the owner's notes see a private hand", func(t *testing.T) {
		rope := cards.Card{Name: "Rope", Category: config.CategoryWeapon}
		em.PublishPrivate(func(owner string) events.Event {
			e := events.HandDealtEvent{PlayerName: "Ann"}
			if owner == "Ann" {
				e.Hand = []cards.Card{rope}
			}
			return e
		})
		if notebooks["Ann"].Status("Rope", "Ann") != notebook.StatusYes {
			t.Error("Expected Ann to note her own Rope")
		}
		if notebooks["Ben"].Status("Rope", "Ann") == notebook.StatusYes {
			t.Error("Ben must not learn Ann's hand")
		}
	})
}
