package tetris

import (
	"time"

	engine "github.com/vovakirdan/tui-tetris/internal/tetris"
)

// Snapshot captures the session for determinism tests.
type Snapshot struct {
	Tick     uint64
	Mode     Mode
	Elapsed  time.Duration
	Finished bool
	Engine   engine.Snapshot
}

// Snapshot returns the current session snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:     g.tick,
		Mode:     g.mode,
		Elapsed:  g.elapsed,
		Finished: g.finished,
	}
	if g.eng != nil {
		s.Engine = g.eng.Snapshot()
	}
	return s
}
