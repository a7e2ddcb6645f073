package tetris

// ResizeRows changes the board height to rows (at least 1). Rows are added
// or removed at the top. The active piece follows the shift, is clamped onto
// the board and, if it still collides, moved to the nearest free row. When no
// row fits, a fresh piece is spawned from the queue instead.
func (e *Engine) ResizeRows(rows int) {
	rows = max(rows, 1)
	delta := e.board.Resize(rows)
	if delta == 0 {
		return
	}
	if e.hasActive && !e.gameOver {
		e.relocateActive(delta)
	}
	e.emit(Event{Type: EventResize, Rows: rows})
}

func (e *Engine) relocateActive(delta int) {
	p := e.active.Translated(0, delta)
	minY, maxY := p.rowSpan()
	top, bottom := -minY, e.board.Rows()-1-maxY
	if top <= bottom {
		p.Origin.Y = max(top, min(p.Origin.Y, bottom))
	}

	if placed, ok := e.nearestFreeRow(p); ok {
		e.active = placed
		return
	}
	e.hasActive = false
	e.spawnNext()
}

// nearestFreeRow searches outward from p, trying one row up then one row
// down at each distance, bounded by the board height.
func (e *Engine) nearestFreeRow(p Piece) (Piece, bool) {
	if !e.board.Collides(p.Cells()) {
		return p, true
	}
	for dist := 1; dist <= e.board.Rows(); dist++ {
		for _, dy := range [2]int{-dist, dist} {
			candidate := p.Translated(0, dy)
			if !e.board.Collides(candidate.Cells()) {
				return candidate, true
			}
		}
	}
	return Piece{}, false
}
