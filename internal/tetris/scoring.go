package tetris

// ClearKind classifies a line-clearing lock.
type ClearKind int

// Clear kinds, ordered by base score.
const (
	ClearNone ClearKind = iota
	ClearSingle
	ClearDouble
	ClearTriple
	ClearTetris
	ClearTSpinSingle
	ClearTSpinDouble
	ClearTSpinTriple
)

// Points awarded outside the clear table.
const (
	AllClearBonus     = 1800
	ComboBonus        = 50
	SoftDropPoints    = 1
	HardDropPointsRow = 2
	LinesPerLevel     = 10
)

var clearBase = [...]int{
	ClearNone:        0,
	ClearSingle:      100,
	ClearDouble:      300,
	ClearTriple:      500,
	ClearTetris:      800,
	ClearTSpinSingle: 800,
	ClearTSpinDouble: 1200,
	ClearTSpinTriple: 1600,
}

// String returns the banner label of the clear kind.
func (c ClearKind) String() string {
	switch c {
	case ClearSingle:
		return "Single"
	case ClearDouble:
		return "Double"
	case ClearTriple:
		return "Triple"
	case ClearTetris:
		return "Tetris"
	case ClearTSpinSingle:
		return "T-Spin Single"
	case ClearTSpinDouble:
		return "T-Spin Double"
	case ClearTSpinTriple:
		return "T-Spin Triple"
	default:
		return ""
	}
}

// BaseScore returns the table score before back-to-back, combo and level.
func (c ClearKind) BaseScore() int {
	if c < 0 || int(c) >= len(clearBase) {
		return 0
	}
	return clearBase[c]
}

// Difficult reports whether the clear continues a back-to-back chain.
func (c ClearKind) Difficult() bool {
	return c == ClearTetris || c.TSpin()
}

// TSpin reports whether the clear was a T-spin.
func (c ClearKind) TSpin() bool {
	return c >= ClearTSpinSingle && c <= ClearTSpinTriple
}

// classifyClear maps a cleared-row count to a clear kind.
// A T-spin clearing three or more rows is reported as a T-spin triple.
func classifyClear(lines int, tSpin bool) ClearKind {
	switch {
	case lines <= 0:
		return ClearNone
	case tSpin && lines == 1:
		return ClearTSpinSingle
	case tSpin && lines == 2:
		return ClearTSpinDouble
	case tSpin:
		return ClearTSpinTriple
	case lines == 1:
		return ClearSingle
	case lines == 2:
		return ClearDouble
	case lines == 3:
		return ClearTriple
	default:
		return ClearTetris
	}
}

// Feedback describes the outcome of one line-clearing lock.
type Feedback struct {
	Kind       ClearKind
	Lines      int
	Combo      int // streak after this clear, 0 for the first clear of a run
	BackToBack bool
	AllClear   bool
	Points     int
}

// Label returns the banner text for the clear. All-clear overrides the kind.
func (f Feedback) Label() string {
	if f.AllClear {
		return "All Clear"
	}
	return f.Kind.String()
}

// clearScore computes the points for a clear at the given level.
// The back-to-back multiplier applies to the base only.
func clearScore(kind ClearKind, backToBack bool, streak int, allClear bool, level int) int {
	base := kind.BaseScore()
	if backToBack {
		base = base * 3 / 2
	}
	total := base + max(streak, 0)*ComboBonus
	if allClear {
		total += AllClearBonus
	}
	return total * max(level, 1)
}

// isTSpin reports whether a locked piece qualifies as a T-spin: a T piece
// whose last successful action was a rotation, with at least three of the
// four diagonal corners around its centre blocked.
func isTSpin(b *Board, p Piece, lastRotation bool) bool {
	if p.Kind != KindT || !lastRotation {
		return false
	}
	center := p.Origin.Add(tCenter)
	blocked := 0
	for _, d := range [4]Point{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
		if b.Occupied(center.Add(d)) {
			blocked++
		}
	}
	return blocked >= 3
}

// levelFor returns the level reached after clearing lines in total.
func levelFor(lines int) int {
	return lines/LinesPerLevel + 1
}
