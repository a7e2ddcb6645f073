package tetris

import "time"

// DropInterval returns the gravity interval at the current level.
func (e *Engine) DropInterval() time.Duration {
	return dropInterval(e.opts, e.level)
}

func dropInterval(o Options, level int) time.Duration {
	if o.FixedGravity {
		return o.BaseDrop
	}
	d := o.BaseDrop - time.Duration(max(level-1, 0))*o.DropStep
	return max(d, o.MinDrop)
}

// LockDelay returns the grace period a grounded piece gets before locking.
func (e *Engine) LockDelay() time.Duration {
	return e.lockDelay
}

// SetLockDelay changes the lock delay, clamped to [MinLockDelay, MaxLockDelay].
func (e *Engine) SetLockDelay(d time.Duration) {
	e.lockDelay = clampLockDelay(d)
}

// Advance moves the game clock forward by dt. Gravity performs as many
// one-row descents as the accumulated time allows, up to MaxCatchUp per
// call. A grounded piece accumulates the time it spends on the ground and
// locks once that reaches the lock delay. Advance does nothing while paused
// or after game over.
func (e *Engine) Advance(dt time.Duration) {
	if !e.playable() || dt <= 0 {
		return
	}

	interval := e.DropInterval()
	e.gravityAcc += dt
	descents := 0
	for e.gravityAcc >= interval && descents < e.opts.MaxCatchUp {
		if !e.descend() {
			break
		}
		e.gravityAcc -= interval
		descents++
	}
	if descents == e.opts.MaxCatchUp && e.gravityAcc >= interval {
		// drop the backlog instead of replaying it on the next call
		e.gravityAcc = 0
	}

	if !e.grounded() {
		return
	}
	// only the time since the last descent was spent on the ground
	onGround := dt
	if descents > 0 {
		onGround = e.gravityAcc
	}
	e.gravityAcc = min(e.gravityAcc, interval)
	e.lockAcc += onGround
	if e.lockAcc >= e.lockDelay {
		e.lockActive()
	}
}
