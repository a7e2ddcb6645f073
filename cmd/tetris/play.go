package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/core"
	gametetris "github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var flagPlayer string

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode, marathon by default.

Controls:
  Left/Right   - Move
  Down         - Soft drop
  Space        - Hard drop
  Up/X         - Rotate clockwise
  Z            - Rotate counter-clockwise
  C            - Hold
  P/Esc        - Pause
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Longer lock delay, slower gravity
  normal - Values from the config file
  hard   - Short lock delay, fast gravity, 3-piece preview, no ghost
  fixed  - Gravity never speeds up

Examples:
  tetris play
  tetris play sprint
  tetris play --difficulty hard --seed 42
  tetris play --config ./my-tetris.yaml`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{"interactive": "true"},
	Run:         runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name recorded with scores (default: OS user)")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := string(gametetris.ModeMarathon)
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available modes.")
		os.Exit(1)
	}

	game, err := tui.NewGame(gameID, baseConfig, difficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	_, runErr := tui.Run(game, store, logger, runtimeConfig(), player())
	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig sizes the game for the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func player() tui.Player {
	name := flagPlayer
	if name == "" {
		if u, err := user.Current(); err == nil {
			name = u.Username
		}
	}
	return tui.Player{Name: name, Difficulty: string(difficulty)}
}

// openStore opens the score database. Games still run without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "db", flagDBPath, "error", err)
		return nil
	}
	return store
}
