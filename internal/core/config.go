package core

// RuntimeConfig is handed to a game on Reset. It describes the space the
// game may draw into and the clock and randomness it runs on.
type RuntimeConfig struct {
	ScreenW  int   // screen width in characters
	ScreenH  int   // screen height in characters, help line excluded
	TickRate int   // simulation ticks per second (default 60)
	Seed     int64 // RNG seed; 0 lets the platform pick one from the clock
}

// DefaultConfig returns an 80x24 screen at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the summary the platform reads after every step. It drives
// restart and back-to-menu handling and becomes the saved run.
type GameState struct {
	Score    int  // points so far
	Lines    int  // rows cleared so far
	Level    int  // current level, starting at 1
	GameOver bool // topped out, or the mode's goal was reached
	Paused   bool // paused by the player or because the screen is too small
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
}
