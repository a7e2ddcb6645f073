package tetris

import "time"

// Snapshot is a point-in-time copy of the engine state used by determinism
// tests and by hosts that persist a summary of a finished run.
type Snapshot struct {
	Rows       int
	Grid       [][Columns]Cell
	Active     Piece
	HasActive  bool
	Queue      []Kind
	Held       Kind
	HasHeld    bool
	HoldUsed   bool
	Score      int
	Lines      int
	Level      int
	Combo      int
	BackToBack bool
	Paused     bool
	GameOver   bool
	GravityAcc time.Duration
	LockAcc    time.Duration
}

// Snapshot captures the current engine state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Rows:       e.board.Rows(),
		Grid:       e.board.Grid(),
		Active:     e.active,
		HasActive:  e.hasActive,
		Queue:      e.queue.peek(),
		Held:       e.held,
		HasHeld:    e.hasHeld,
		HoldUsed:   e.holdUsed,
		Score:      e.score,
		Lines:      e.lines,
		Level:      e.level,
		Combo:      e.Combo(),
		BackToBack: e.backToBack,
		Paused:     e.paused,
		GameOver:   e.gameOver,
		GravityAcc: e.gravityAcc,
		LockAcc:    e.lockAcc,
	}
}
