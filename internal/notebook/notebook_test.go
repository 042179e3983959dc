package notebook

import (
	"example.com/cluedo-engine/internal/cards"
	"example.com/cluedo-engine/internal/config"
	"example.com/cluedo-engine/internal/events"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

// setupNotebook creates a clean notebook for Ann in a three-player game.
func setupNotebook(t *testing.T) (*Notebook, *config.GameConfig) {
	t.Helper()
	cfg, err := config.Load("../../default_config.json")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(cfg, "Ann", []string{"Ann", "Ben", "Cat"}, log), cfg
}

func triple(t *testing.T, cfg *config.GameConfig, character, weapon, room string) cards.Triple {
	t.Helper()
	tr, err := cards.NewTriple(cfg, character, weapon, room)
	if err != nil {
		t.Fatalf("Bad triple: %v", err)
	}
	return tr
}

func TestMarkCardLocation(t *testing.T) {
	// GIVEN a fresh notebook
	nb, _ := setupNotebook(t)

	// WHEN we learn a definitive fact (Ben has the Rope)
	nb.markCardLocation("Rope", "Ben")

	// THEN the Rope row is settled
	t.Run("it marks the owner as Yes", func(t *testing.T) {
		if nb.Status("Rope", "Ben") != StatusYes {
			t.Errorf("Expected Ben to have the Rope")
		}
	})

	t.Run("it marks everyone else and the solution as No", func(t *testing.T) {
		for _, loc := range []string{"Ann", "Cat", Solution} {
			if nb.Status("Rope", loc) != StatusNo {
				t.Errorf("Expected %s to NOT have the Rope, got %v", loc, nb.Status("Rope", loc))
			}
		}
	})
}

func TestHandDealt(t *testing.T) {
	nb, _ := setupNotebook(t)

	nb.HandleEvent(events.HandDealtEvent{PlayerName: "Ben", Hand: []cards.Card{{Name: "Dagger", Category: config.CategoryWeapon}}})
	if nb.Status("Dagger", "Ben") != StatusMaybe {
		t.Error("Another player's hand must not be visible")
	}

	nb.HandleEvent(events.HandDealtEvent{PlayerName: "Ann", Hand: []cards.Card{
		{Name: "Rope", Category: config.CategoryWeapon},
		{Name: "Hall", Category: config.CategoryRoom},
	}})
	if nb.Status("Rope", "Ann") != StatusYes || nb.Status("Hall", "Ann") != StatusYes {
		t.Error("Expected Ann's own cards to be marked")
	}
	if nb.Status("Dagger", "Ann") != StatusNo {
		t.Error("Expected cards outside Ann's hand to be marked No for Ann")
	}
}

func TestDeduceCardByElimination(t *testing.T) {
	// GIVEN a notebook that knows the Rope is nowhere but with Cat
	nb, _ := setupNotebook(t)
	nb.knowledge["Rope"]["Ann"] = StatusNo
	nb.knowledge["Rope"]["Ben"] = StatusNo
	nb.knowledge["Rope"][Solution] = StatusNo

	// WHEN the deduction runs
	changed := nb.deduceCardLocationsByElimination()

	// THEN Cat must have the Rope
	if !changed {
		t.Errorf("Expected the deduction to make a change")
	}
	if nb.Status("Rope", "Cat") != StatusYes {
		t.Errorf("Expected Cat to have the Rope, got %v", nb.Status("Rope", "Cat"))
	}
}

func TestDeduceSolutionByElimination(t *testing.T) {
	// GIVEN every character but Mrs Peacock ruled out of the case file
	nb, cfg := setupNotebook(t)
	for _, character := range cfg.Characters {
		if character != "Mrs Peacock" {
			nb.knowledge[character][Solution] = StatusNo
		}
	}

	// WHEN the deduction runs
	changed := nb.deduceSolutionByElimination()

	// THEN Mrs Peacock is the culprit
	if !changed || nb.Status("Mrs Peacock", Solution) != StatusYes {
		t.Errorf("Expected Mrs Peacock in the case file")
	}
}

func TestPruneAndSolveMystery(t *testing.T) {
	t.Run("it prunes a mystery when a card is eliminated", func(t *testing.T) {
		// GIVEN a notebook that thinks Ben has one of (Rope, Dagger, Lead Pipe)
		nb, _ := setupNotebook(t)
		nb.unresolvedSuggestions = []UnresolvedSuggestion{
			{Disprover: "Ben", PossibleCards: map[string]struct{}{"Rope": {}, "Dagger": {}, "Lead Pipe": {}}},
		}
		// AND we later learn Ben does NOT have the Dagger
		nb.knowledge["Dagger"]["Ben"] = StatusNo

		nb.pruneAndSolveMysteries()

		if len(nb.Unresolved()) != 1 {
			t.Fatalf("Expected 1 unresolved suggestion, got %d", len(nb.Unresolved()))
		}
		remaining := nb.Unresolved()[0].Cards()
		if len(remaining) != 2 || remaining[0] != "Lead Pipe" || remaining[1] != "Rope" {
			t.Errorf("Expected the Dagger pruned, left with %v", remaining)
		}
	})

	t.Run("it solves a mystery when only one card remains", func(t *testing.T) {
		nb, _ := setupNotebook(t)
		nb.unresolvedSuggestions = []UnresolvedSuggestion{
			{Disprover: "Cat", PossibleCards: map[string]struct{}{"Conservatory": {}}},
		}

		nb.pruneAndSolveMysteries()

		if len(nb.Unresolved()) != 0 {
			t.Errorf("Expected the mystery to be resolved, %d remain", len(nb.Unresolved()))
		}
		if nb.Status("Conservatory", "Cat") != StatusYes {
			t.Errorf("Expected to learn Cat has the Conservatory")
		}
	})
}

func TestLearnFromTurns(t *testing.T) {
	t.Run("a card shown to the owner is recorded", func(t *testing.T) {
		nb, cfg := setupNotebook(t)
		guess := triple(t, cfg, "Mr Green", "Rope", "Study")
		nb.HandleEvent(events.TurnResolvedEvent{
			SuggesterName: "Ann",
			Suggestion:    guess,
			DisproverName: "Ben",
			RevealedCard:  guess.Weapon,
		})
		if nb.Status("Rope", "Ben") != StatusYes {
			t.Error("Expected Ben to hold the Rope")
		}
	})

	t.Run("someone else's refutation becomes a mystery", func(t *testing.T) {
		nb, cfg := setupNotebook(t)
		guess := triple(t, cfg, "Mr Green", "Rope", "Study")
		nb.HandleEvent(events.TurnResolvedEvent{
			SuggesterName: "Cat",
			Suggestion:    guess,
			DisproverName: "Ben",
			RevealedCard:  guess.Room,
			PassedPlayers: []string{"Ann"},
		})
		if nb.Status("Study", "Ben") != StatusMaybe {
			t.Error("The shown card must stay hidden from bystanders")
		}
		if len(nb.Unresolved()) != 1 || nb.Unresolved()[0].Disprover != "Ben" {
			t.Errorf("Expected one mystery about Ben, got %+v", nb.Unresolved())
		}
		if nb.Status("Mr Green", "Ann") != StatusNo {
			t.Error("A player who passed holds none of the cards")
		}
	})

	t.Run("an unrefuted suggestion reveals the case file", func(t *testing.T) {
		nb, cfg := setupNotebook(t)
		guess := triple(t, cfg, "Mr Green", "Rope", "Study")
		nb.HandleEvent(events.TurnResolvedEvent{
			SuggesterName: "Ann",
			Suggestion:    guess,
			PassedPlayers: []string{"Ben", "Cat"},
		})
		accusation, ok := nb.Accusation()
		if !ok {
			t.Fatal("Expected a complete accusation")
		}
		if accusation[config.CategoryCharacter] != "Mr Green" ||
			accusation[config.CategoryWeapon] != "Rope" ||
			accusation[config.CategoryRoom] != "Study" {
			t.Errorf("Unexpected accusation %v", accusation)
		}
	})
}
