package tetris

// Columns is the fixed board width.
const Columns = 10

// Cell is a board cell: Empty or the kind of the piece that was locked there.
type Cell int8

// Empty marks an unoccupied cell.
const Empty Cell = -1

// CellOf returns the cell tag for a locked piece of kind k.
func CellOf(k Kind) Cell {
	return Cell(k)
}

// Filled reports whether the cell is occupied.
func (c Cell) Filled() bool {
	return c != Empty
}

// Kind returns the kind that filled the cell. ok is false for empty cells.
func (c Cell) Kind() (k Kind, ok bool) {
	if c == Empty {
		return 0, false
	}
	return Kind(c), true
}

// Board is the playfield: Columns wide and Rows() tall, row 0 at the top.
type Board struct {
	rows [][Columns]Cell
}

// NewBoard creates an empty board with the given number of rows (at least 1).
func NewBoard(rows int) *Board {
	rows = max(rows, 1)
	b := &Board{rows: make([][Columns]Cell, rows)}
	for y := range b.rows {
		b.rows[y] = emptyRow()
	}
	return b
}

func emptyRow() [Columns]Cell {
	var r [Columns]Cell
	for x := range r {
		r[x] = Empty
	}
	return r
}

// Rows returns the board height.
func (b *Board) Rows() int {
	return len(b.rows)
}

// InBounds reports whether p lies on the board.
func (b *Board) InBounds(p Point) bool {
	return p.X >= 0 && p.X < Columns && p.Y >= 0 && p.Y < len(b.rows)
}

// At returns the cell at (x, y). Out-of-bounds positions read as Empty.
func (b *Board) At(x, y int) Cell {
	if !b.InBounds(Point{X: x, Y: y}) {
		return Empty
	}
	return b.rows[y][x]
}

// Set writes c at (x, y). Out-of-bounds writes are ignored.
func (b *Board) Set(x, y int, c Cell) {
	if !b.InBounds(Point{X: x, Y: y}) {
		return
	}
	b.rows[y][x] = c
}

// Occupied reports whether p is outside the board or filled.
// Corner probes for T-spin detection rely on out-of-bounds counting as occupied.
func (b *Board) Occupied(p Point) bool {
	if !b.InBounds(p) {
		return true
	}
	return b.rows[p.Y][p.X].Filled()
}

// Collides reports whether any cell is off the board or overlaps a filled cell.
// Every move, rotation and spawn is validated here.
func (b *Board) Collides(cells []Point) bool {
	for _, c := range cells {
		if b.Occupied(c) {
			return true
		}
	}
	return false
}

// Lock writes every cell of p into the board. Cells outside the board are
// skipped. It returns whether any row became full.
func (b *Board) Lock(p Piece) bool {
	tag := CellOf(p.Kind)
	full := false
	for _, c := range p.Cells() {
		if !b.InBounds(c) {
			continue
		}
		b.rows[c.Y][c.X] = tag
		if b.rowFull(c.Y) {
			full = true
		}
	}
	return full
}

func (b *Board) rowFull(y int) bool {
	for _, c := range b.rows[y] {
		if !c.Filled() {
			return false
		}
	}
	return true
}

// ClearFullRows removes every full row, shifts the remaining rows down and
// refills the top with empty rows. It returns the number of rows removed.
func (b *Board) ClearFullRows() int {
	kept := make([][Columns]Cell, 0, len(b.rows))
	for y := range b.rows {
		if !b.rowFull(y) {
			kept = append(kept, b.rows[y])
		}
	}
	cleared := len(b.rows) - len(kept)
	if cleared == 0 {
		return 0
	}

	rows := make([][Columns]Cell, 0, len(b.rows))
	for range cleared {
		rows = append(rows, emptyRow())
	}
	b.rows = append(rows, kept...)
	return cleared
}

// IsEmpty reports whether no cell is filled.
func (b *Board) IsEmpty() bool {
	return b.topFilledRow() == len(b.rows)
}

// StackHeight returns the distance from the topmost filled row to the bottom,
// or 0 for an empty board.
func (b *Board) StackHeight() int {
	return len(b.rows) - b.topFilledRow()
}

// topFilledRow returns the index of the first row with a filled cell,
// or Rows() if there is none.
func (b *Board) topFilledRow() int {
	for y, row := range b.rows {
		for _, c := range row {
			if c.Filled() {
				return y
			}
		}
	}
	return len(b.rows)
}

// Resize changes the height to rows (at least 1). Growing prepends empty rows
// at the top; shrinking drops rows from the top. It returns the applied delta.
func (b *Board) Resize(rows int) int {
	rows = max(rows, 1)
	delta := rows - len(b.rows)
	switch {
	case delta > 0:
		grown := make([][Columns]Cell, 0, rows)
		for range delta {
			grown = append(grown, emptyRow())
		}
		b.rows = append(grown, b.rows...)
	case delta < 0:
		b.rows = append([][Columns]Cell(nil), b.rows[-delta:]...)
	}
	return delta
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	return &Board{rows: append([][Columns]Cell(nil), b.rows...)}
}

// Grid returns a copy of the cells, indexed [row][column].
func (b *Board) Grid() [][Columns]Cell {
	return append([][Columns]Cell(nil), b.rows...)
}

// Clear empties every cell without changing the height.
func (b *Board) Clear() {
	for y := range b.rows {
		b.rows[y] = emptyRow()
	}
}
