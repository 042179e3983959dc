package game

import (
	"example.com/cluedo-engine/internal/board"
	"example.com/cluedo-engine/internal/events"
	"example.com/cluedo-engine/internal/player"
	"math/rand"
	"testing"
)

// walk spends a turn's movement on random steps, then stops.
func walk(t *testing.T, g *Game, rnd *rand.Rand) {
	t.Helper()
	for attempt := 0; attempt < 30 && g.Phase() == Moving; attempt++ {
		if room := g.CurrentRoom(); !room.Corridor {
			exits := g.Board.UnoccupiedExits(room)
			if len(exits) == 0 {
				break
			}
			_, _ = g.ExitRoom(exits[rnd.Intn(len(exits))])
			continue
		}
		_, _ = g.Step(board.AllDirections()[rnd.Intn(4)])
	}
	if g.Phase() == Moving {
		if err := g.FinishMoving(); err != nil {
			t.Fatalf("FinishMoving failed: %v", err)
		}
	}
}

func TestFullGame_SecondPlayerWins(t *testing.T) {
	// GIVEN a seeded four-player game
	g, rec := newGame(t, 4, 1)
	rnd := rand.New(rand.NewSource(1))

	// WHEN the first player rolls, wanders and ends their turn
	if _, err := g.Roll(); err != nil {
		t.Fatalf("Roll failed: %v", err)
	}
	walk(t, g, rnd)
	if g.Phase() == AwaitingSuggestion {
		if err := g.DeclineSuggestion(); err != nil {
			t.Fatalf("DeclineSuggestion failed: %v", err)
		}
	}
	if err := g.EndTurn(); err != nil {
		t.Fatalf("EndTurn failed: %v", err)
	}

	// AND the second player names the solution
	sol := g.Solution()
	correct, err := g.Accuse(sol.Character.Name, sol.Weapon.Name, sol.Room.Name)
	if err != nil {
		t.Fatalf("Accuse failed: %v", err)
	}

	// THEN the second player has won
	t.Run("it produces the correct winner", func(t *testing.T) {
		winner, ok := g.Winner()
		if !correct || !ok || winner.Name() != g.Players[1].Name() {
			t.Errorf("Expected %s to win", g.Players[1].Name())
		}
	})

	t.Run("the game ended on the second turn", func(t *testing.T) {
		if !g.IsOver() || g.TurnNumber() != 2 {
			t.Errorf("Expected the game to end on turn 2, it is turn %d (%s)", g.TurnNumber(), g.Phase())
		}
	})

	t.Run("the presentation saw both turns", func(t *testing.T) {
		starts := rec.count(func(e events.Event) bool { _, ok := e.(events.TurnStartEvent); return ok })
		if starts != 2 {
			t.Errorf("Expected 2 turn starts, got %d", starts)
		}
	})
}

func TestRandomGamesTerminate(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		players := MinPlayers + int(seed)%(MaxPlayers-MinPlayers+1)
		g, _ := newGame(t, players, seed)
		rnd := rand.New(rand.NewSource(seed * 31))
		chooser := player.NewRandomChooser(rnd)
		cfg := g.Config

		for turn := 0; turn < 200 && !g.IsOver(); turn++ {
			if g.Phase() == AwaitingRoll {
				if _, err := g.Roll(); err != nil {
					t.Fatalf("seed %d: Roll failed: %v", seed, err)
				}
				walk(t, g, rnd)
			}
			if g.Phase() == AwaitingSuggestion {
				character := cfg.Characters[rnd.Intn(len(cfg.Characters))]
				weapon := cfg.Weapons[rnd.Intn(len(cfg.Weapons))]
				if _, err := g.Suggest(character, weapon, g.CurrentRoom().Name); err != nil {
					t.Fatalf("seed %d: Suggest failed: %v", seed, err)
				}
				if g.Phase() == AwaitingRefutation {
					if _, err := g.RefuteWith(chooser); err != nil {
						t.Fatalf("seed %d: RefuteWith failed: %v", seed, err)
					}
				}
			}
			// Everyone gambles on their third turn.
			if g.TurnNumber() > 2*players && g.CurrentPlayer().CanAccuse() {
				character := cfg.Characters[rnd.Intn(len(cfg.Characters))]
				weapon := cfg.Weapons[rnd.Intn(len(cfg.Weapons))]
				room := cfg.Rooms[rnd.Intn(len(cfg.Rooms))]
				if _, err := g.Accuse(character, weapon, room); err != nil {
					t.Fatalf("seed %d: Accuse failed: %v", seed, err)
				}
			}
			if !g.IsOver() {
				if err := g.EndTurn(); err != nil {
					t.Fatalf("seed %d: EndTurn failed: %v", seed, err)
				}
			}
		}

		if !g.IsOver() {
			t.Errorf("seed %d: game did not finish", seed)
		}
		if winner, ok := g.Winner(); ok && !winner.CanAccuse() {
			t.Errorf("seed %d: winner %s had spent their accusation", seed, winner.Name())
		}
	}
}
