// tetris plays Tetris in the terminal, locally or over SSH.
//
// Usage:
//
//	tetris list              - List game modes
//	tetris play [mode]       - Play a mode (default marathon)
//	tetris menu              - Pick modes and difficulty interactively
//	tetris serve             - Start SSH server for remote play
//	tetris scores [mode]     - Show high scores
//	tetris config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible games
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--config <path>       - Load a custom tetris.yaml
//	--difficulty <name>   - easy, normal, hard or fixed
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	gametetris "github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

// Resolved in PersistentPreRunE.
var (
	baseConfig config.TetrisConfig // as loaded, before the preset
	settings   config.TetrisConfig
	difficulty config.DifficultyPreset
	logger     *log.Logger
	logCloser  io.Closer
)

func main() {
	err := rootCmd.Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris in your terminal",
	Long: `A terminal Tetris with a 7-bag randomizer, hold, ghost piece,
wall kicks, T-spins, combos and back-to-back bonuses.

Available commands:
  list     - Show game modes
  play     - Play a mode directly
  menu     - Interactive mode and difficulty picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  config   - Print the effective configuration

Examples:
  tetris play
  tetris play sprint --difficulty hard
  tetris menu
  tetris serve --ssh :2222
  tetris scores marathon --recent`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom tetris.yaml")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file (interactive commands log nowhere by default)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads the configuration, applies the difficulty preset and
// creates the logger shared by every subcommand.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	if difficulty, err = config.ParseDifficulty(flagDifficulty); err != nil {
		return err
	}
	if baseConfig, err = config.LoadTetris(flagConfig); err != nil {
		return err
	}
	settings = baseConfig
	config.ApplyTetrisPreset(&settings, difficulty)
	gametetris.Configure(settings)

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	// the terminal belongs to Bubble Tea while a game runs
	var w io.Writer = os.Stderr
	if cmd.Annotations["interactive"] == "true" {
		w = io.Discard
	}
	if flagLogFile != "" {
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if openErr != nil {
			return fmt.Errorf("cannot open log file: %w", openErr)
		}
		w, logCloser = f, f
	}
	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris",
		Level:           level,
	})
	logger.Debug("configuration loaded", "difficulty", difficulty, "rows", settings.Board.Rows,
		"adaptive", settings.Board.Adaptive, "lock_delay_ms", settings.Timing.LockDelayMs)
	return nil
}
