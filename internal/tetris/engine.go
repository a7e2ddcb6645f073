package tetris

import (
	"math/rand"
	"time"
)

// Timing and sizing limits.
const (
	DefaultRows       = 20
	DefaultLookAhead  = 5
	DefaultLockDelay  = 500 * time.Millisecond
	MinLockDelay      = 80 * time.Millisecond
	MaxLockDelay      = 1200 * time.Millisecond
	DefaultBaseDrop   = 800 * time.Millisecond
	DefaultDropStep   = 60 * time.Millisecond
	DefaultMinDrop    = 80 * time.Millisecond
	MinGravity        = 80 * time.Millisecond // no interval is ever shorter
	DefaultMaxCatchUp = 20
)

// Options configures a new Engine. Zero fields take their defaults and
// out-of-range values are clamped.
type Options struct {
	Rows       int
	Seed       int64
	LookAhead  int
	LockDelay  time.Duration
	BaseDrop   time.Duration // gravity interval at level 1
	DropStep   time.Duration // interval reduction per level
	MinDrop    time.Duration // fastest gravity interval
	MaxCatchUp int           // forced descents per Advance call

	// FixedGravity keeps the level 1 interval for the whole game.
	FixedGravity bool
}

// DefaultOptions returns the standard rule set on a 10x20 board.
func DefaultOptions() Options {
	return Options{
		Rows:       DefaultRows,
		LookAhead:  DefaultLookAhead,
		LockDelay:  DefaultLockDelay,
		BaseDrop:   DefaultBaseDrop,
		DropStep:   DefaultDropStep,
		MinDrop:    DefaultMinDrop,
		MaxCatchUp: DefaultMaxCatchUp,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.Rows <= 0 {
		o.Rows = d.Rows
	}
	if o.LookAhead <= 0 {
		o.LookAhead = d.LookAhead
	}
	if o.LockDelay == 0 {
		o.LockDelay = d.LockDelay
	}
	o.LockDelay = clampLockDelay(o.LockDelay)
	if o.BaseDrop <= 0 {
		o.BaseDrop = d.BaseDrop
	}
	o.BaseDrop = max(o.BaseDrop, MinGravity)
	if o.DropStep < 0 {
		o.DropStep = 0
	} else if o.DropStep == 0 {
		o.DropStep = d.DropStep
	}
	if o.MinDrop <= 0 {
		o.MinDrop = d.MinDrop
	}
	o.MinDrop = min(max(o.MinDrop, MinGravity), o.BaseDrop)
	if o.MaxCatchUp <= 0 {
		o.MaxCatchUp = d.MaxCatchUp
	}
	return o
}

func clampLockDelay(d time.Duration) time.Duration {
	return max(MinLockDelay, min(d, MaxLockDelay))
}

// Engine owns one game of Tetris. All methods must be called from a single
// goroutine or otherwise serialized by the caller.
type Engine struct {
	opts  Options
	rng   *rand.Rand
	board *Board
	queue *queue

	active    Piece
	hasActive bool

	held     Kind
	hasHeld  bool
	holdUsed bool

	score      int
	lines      int
	level      int
	streak     int
	backToBack bool

	paused   bool
	gameOver bool

	lastRotation bool
	gravityAcc   time.Duration
	lockAcc      time.Duration
	lockDelay    time.Duration

	feedback *Feedback
	listener Listener
}

// New creates an engine and starts the first game.
func New(opts Options) *Engine {
	opts = opts.normalized()
	e := &Engine{
		opts:      opts,
		rng:       rand.New(rand.NewSource(opts.Seed)),
		board:     NewBoard(opts.Rows),
		lockDelay: opts.LockDelay,
	}
	e.StartNewGame()
	return e
}

// SetListener installs fn as the event callback. nil disables events.
func (e *Engine) SetListener(fn Listener) {
	e.listener = fn
}

func (e *Engine) emit(ev Event) {
	if e.listener != nil {
		e.listener(ev)
	}
}

// StartNewGame clears the board and all score state, keeping the current
// board height, and spawns the first piece.
func (e *Engine) StartNewGame() {
	e.board.Clear()
	e.queue = newQueue(NewBag(e.rng), e.opts.LookAhead)
	e.hasActive = false
	e.hasHeld = false
	e.holdUsed = false
	e.score = 0
	e.lines = 0
	e.level = 1
	e.streak = -1
	e.backToBack = false
	e.paused = false
	e.gameOver = false
	e.feedback = nil
	e.resetTimers()

	e.emit(Event{Type: EventNewGame})
	e.spawnNext()
}

func (e *Engine) resetTimers() {
	e.lastRotation = false
	e.gravityAcc = 0
	e.lockAcc = 0
}

// playable reports whether gameplay commands are accepted.
func (e *Engine) playable() bool {
	return e.hasActive && !e.paused && !e.gameOver
}

// spawnNext takes the next kind from the queue. The hold lock is released.
func (e *Engine) spawnNext() bool {
	e.holdUsed = false
	return e.spawn(e.queue.pop())
}

// spawn places kind k at the spawn origin or ends the game if it is blocked.
func (e *Engine) spawn(k Kind) bool {
	p := NewPiece(k, e.spawnOrigin())
	e.resetTimers()
	if e.board.Collides(p.Cells()) {
		e.hasActive = false
		e.gameOver = true
		e.emit(Event{Type: EventGameOver, Kind: k})
		return false
	}
	e.active = p
	e.hasActive = true
	e.emit(Event{Type: EventSpawn, Kind: k})
	return true
}

func (e *Engine) spawnOrigin() Point {
	return Point{X: Columns/2 - 2, Y: 0}
}

// Pause freezes gravity and rejects gameplay commands.
func (e *Engine) Pause() bool {
	if e.paused || e.gameOver {
		return false
	}
	e.paused = true
	e.emit(Event{Type: EventPause})
	return true
}

// Resume lifts a pause.
func (e *Engine) Resume() bool {
	if !e.paused {
		return false
	}
	e.paused = false
	e.emit(Event{Type: EventResume})
	return true
}

// TogglePause pauses a running game or resumes a paused one.
func (e *Engine) TogglePause() {
	if e.paused {
		e.Resume()
		return
	}
	e.Pause()
}

// MoveLeft shifts the active piece one column left.
func (e *Engine) MoveLeft() bool {
	return e.shift(-1)
}

// MoveRight shifts the active piece one column right.
func (e *Engine) MoveRight() bool {
	return e.shift(1)
}

func (e *Engine) shift(dx int) bool {
	if !e.playable() {
		return false
	}
	next := e.active.Translated(dx, 0)
	if e.board.Collides(next.Cells()) {
		return false
	}
	e.active = next
	e.lastRotation = false
	e.lockAcc = 0
	e.emit(Event{Type: EventMove, Kind: next.Kind})
	return true
}

// SoftDrop moves the active piece down one row for one point.
func (e *Engine) SoftDrop() bool {
	if !e.playable() || !e.descend() {
		return false
	}
	e.score += SoftDropPoints
	e.emit(Event{Type: EventSoftDrop, Rows: 1, Kind: e.active.Kind})
	return true
}

// descend moves the active piece down one row if possible.
func (e *Engine) descend() bool {
	next := e.active.Translated(0, 1)
	if e.board.Collides(next.Cells()) {
		return false
	}
	e.active = next
	e.lastRotation = false
	e.lockAcc = 0
	return true
}

func (e *Engine) grounded() bool {
	return e.board.Collides(e.active.Translated(0, 1).Cells())
}

// HardDrop drops the active piece to its landing row and locks it at once.
// It returns the number of rows descended; each row is worth two points.
func (e *Engine) HardDrop() int {
	if !e.playable() {
		return 0
	}
	rows := 0
	for {
		next := e.active.Translated(0, 1)
		if e.board.Collides(next.Cells()) {
			break
		}
		e.active = next
		rows++
	}
	if rows > 0 {
		e.lastRotation = false
	}
	e.score += rows * HardDropPointsRow
	e.emit(Event{Type: EventHardDrop, Rows: rows, Kind: e.active.Kind})
	e.lockActive()
	return rows
}

// RotateClockwise turns the active piece a quarter turn clockwise.
func (e *Engine) RotateClockwise() bool {
	return e.rotate(1)
}

// RotateCounterClockwise turns the active piece a quarter turn counter-clockwise.
func (e *Engine) RotateCounterClockwise() bool {
	return e.rotate(-1)
}

func (e *Engine) rotate(dir int) bool {
	if !e.playable() {
		return false
	}
	turned := e.active.Rotated(dir)
	for _, kick := range kickTable {
		candidate := turned.Translated(kick.X, kick.Y)
		if e.board.Collides(candidate.Cells()) {
			continue
		}
		e.active = candidate
		e.lastRotation = true
		e.lockAcc = 0
		e.emit(Event{Type: EventRotate, Kind: candidate.Kind})
		return true
	}
	return false
}

// Hold stashes the active kind. With an empty slot the next queued piece
// spawns; otherwise the held kind is swapped in at the spawn origin.
// Only one hold is allowed per drop.
func (e *Engine) Hold() bool {
	if !e.playable() || e.holdUsed {
		return false
	}
	current := e.active.Kind
	prev, hadHeld := e.held, e.hasHeld
	e.held, e.hasHeld = current, true
	e.hasActive = false
	e.emit(Event{Type: EventHold, Kind: current})

	if hadHeld {
		e.spawn(prev)
	} else {
		e.spawnNext()
	}
	e.holdUsed = true
	return true
}

// lockActive writes the active piece to the board, scores any clear and
// spawns the next piece.
func (e *Engine) lockActive() {
	p := e.active
	e.hasActive = false
	e.board.Lock(p)
	tSpin := isTSpin(e.board, p, e.lastRotation)
	cleared := e.board.ClearFullRows()
	e.emit(Event{Type: EventLock, Kind: p.Kind})

	if cleared > 0 {
		fb := e.scoreClear(cleared, tSpin)
		e.emit(Event{Type: EventClear, Rows: cleared, Kind: p.Kind, Feedback: &fb})
	} else {
		// back-to-back is left for the next clearing lock to decide
		e.streak = -1
		e.feedback = nil
	}

	e.spawnNext()
}

func (e *Engine) scoreClear(cleared int, tSpin bool) Feedback {
	kind := classifyClear(cleared, tSpin)
	b2b := kind.Difficult() && e.backToBack
	e.streak++
	allClear := e.board.IsEmpty()

	points := clearScore(kind, b2b, e.streak, allClear, e.level)
	e.score += points
	e.backToBack = kind.Difficult()
	e.lines += cleared
	e.level = levelFor(e.lines)

	fb := Feedback{
		Kind:       kind,
		Lines:      cleared,
		Combo:      e.streak,
		BackToBack: b2b,
		AllClear:   allClear,
		Points:     points,
	}
	e.feedback = &fb
	return fb
}

// Board returns a copy of the playfield.
func (e *Engine) Board() *Board {
	return e.board.Clone()
}

// Rows returns the current board height.
func (e *Engine) Rows() int {
	return e.board.Rows()
}

// Active returns the active piece, if any.
func (e *Engine) Active() (Piece, bool) {
	return e.active, e.hasActive
}

// Ghost returns the cells the active piece would occupy after a hard drop.
func (e *Engine) Ghost() []Point {
	if !e.hasActive {
		return nil
	}
	p := e.active
	for {
		next := p.Translated(0, 1)
		if e.board.Collides(next.Cells()) {
			return p.Cells()
		}
		p = next
	}
}

// Queue returns the upcoming kinds, head first.
func (e *Engine) Queue() []Kind {
	return e.queue.peek()
}

// Held returns the kind in the hold slot, if any.
func (e *Engine) Held() (Kind, bool) {
	return e.held, e.hasHeld
}

// CanHold reports whether Hold would currently be accepted.
func (e *Engine) CanHold() bool {
	return e.playable() && !e.holdUsed
}

func (e *Engine) Score() int       { return e.score }
func (e *Engine) Lines() int       { return e.lines }
func (e *Engine) Level() int       { return e.level }
func (e *Engine) BackToBack() bool { return e.backToBack }
func (e *Engine) Paused() bool     { return e.paused }
func (e *Engine) GameOver() bool   { return e.gameOver }

// StackHeight returns the number of rows from the topmost filled row to the
// bottom of the board.
func (e *Engine) StackHeight() int {
	return e.board.StackHeight()
}

// Combo returns the current combo streak, 0 when no combo is running.
func (e *Engine) Combo() int {
	return max(e.streak, 0)
}

// Feedback returns the most recent clear feedback without consuming it.
func (e *Engine) Feedback() (Feedback, bool) {
	if e.feedback == nil {
		return Feedback{}, false
	}
	return *e.feedback, true
}

// TakeFeedback returns the most recent clear feedback and forgets it.
func (e *Engine) TakeFeedback() (Feedback, bool) {
	fb, ok := e.Feedback()
	e.feedback = nil
	return fb, ok
}
