package main

import (
	"context"
	"example.com/cluedo-engine/internal/cli"
	"example.com/cluedo-engine/internal/config"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	ucli "github.com/urfave/cli/v3"
)

func main() {
	// 1. Pick up CLUEDO_* settings from a local .env, if there is one
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, ForceColors: true})

	// 2. Set up shared dependencies before any subcommand runs
	var (
		gameConfig *config.GameConfig
		randSource *rand.Rand
	)
	setup := func(ctx context.Context, cmd *ucli.Command) (context.Context, error) {
		level, err := logrus.ParseLevel(cmd.String("loglevel"))
		if err != nil {
			level = logrus.InfoLevel
		}
		log.SetLevel(level)

		gameConfig, err = config.Load(cmd.String("config"))
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		seed := cmd.Int("seed")
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		log.Debugf("Using seed %d", seed)
		randSource = rand.New(rand.NewSource(seed))
		return ctx, nil
	}

	app := &ucli.Command{
		Name:  "cluedo",
		Usage: "play Cluedo at one keyboard",
		Flags: []ucli.Flag{
			&ucli.StringFlag{
				Name:    "config",
				Value:   "default_config.json",
				Usage:   "game definition file",
				Sources: ucli.EnvVars("CLUEDO_CONFIG"),
			},
			&ucli.StringFlag{
				Name:    "loglevel",
				Value:   "info",
				Usage:   "logging level (debug, info, warn, error)",
				Sources: ucli.EnvVars("CLUEDO_LOGLEVEL"),
			},
			&ucli.IntFlag{
				Name:    "seed",
				Usage:   "random seed for shuffling and placement, 0 picks one from the clock",
				Sources: ucli.EnvVars("CLUEDO_SEED"),
			},
		},
		Before: setup,
		Commands: []*ucli.Command{
			{
				Name:  "play",
				Usage: "start a hot-seat game for 3 to 6 players",
				Action: func(ctx context.Context, cmd *ucli.Command) error {
					ui := cli.NewCLI(log)
					defer ui.Close()
					return ui.Play(gameConfig, randSource)
				},
			},
			{
				Name:  "board",
				Usage: "print the starting board and where every piece stands",
				Action: func(ctx context.Context, cmd *ucli.Command) error {
					ui := cli.NewCLI(log)
					defer ui.Close()
					return ui.ShowBoard(gameConfig, randSource)
				},
			},
		},
	}

	// 3. Run the application
	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}
}
