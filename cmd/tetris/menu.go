package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode and difficulty interactively",
	Long: `Open the mode picker. Up/Down chooses a mode, Left/Right the
difficulty, Tab opens the score table. Leaving a finished or paused game
with B returns here.`,
	Annotations: map[string]string{"interactive": "true"},
	Run:         runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	preset := difficulty
	for {
		res, err := tui.RunMenu(cfg, preset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg, preset = res.Config, res.Difficulty

		switch {
		case res.Quit:
			return
		case res.WantsScoreboard:
			back, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil || !back {
				return
			}
		default:
			game, err := tui.NewGame(res.GameID, baseConfig, preset)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
				return
			}
			p := player()
			p.Difficulty = string(preset)
			logger.Info("starting game", "game", res.GameID, "difficulty", preset)
			back, err := tui.Run(game, store, logger, cfg, p)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
				return
			}
			if !back {
				return
			}
		}
	}
}
