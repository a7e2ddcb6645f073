package tetris

// Piece is the tetromino under player control.
// It is a value: moving or rotating yields a new Piece.
type Piece struct {
	Kind     Kind
	Rotation int   // 0-3
	Origin   Point // top-left of the rotation box
}

// NewPiece returns a piece of kind k in rotation 0 at origin.
func NewPiece(k Kind, origin Point) Piece {
	return Piece{Kind: k, Origin: origin}
}

// Cells returns the absolute board cells occupied by the piece.
func (p Piece) Cells() []Point {
	offsets := Offsets(p.Kind, p.Rotation)
	cells := make([]Point, len(offsets))
	for i, o := range offsets {
		cells[i] = p.Origin.Add(o)
	}
	return cells
}

// Translated returns a copy of the piece moved by (dx, dy).
func (p Piece) Translated(dx, dy int) Piece {
	p.Origin = p.Origin.Add(Point{X: dx, Y: dy})
	return p
}

// Rotated returns a copy of the piece turned by dir quarter turns
// (+1 clockwise, -1 counter-clockwise) around the same origin.
func (p Piece) Rotated(dir int) Piece {
	p.Rotation = (p.Rotation + dir + 4) % 4
	return p
}

// rowSpan returns the smallest and largest row offset of the piece shape.
func (p Piece) rowSpan() (minY, maxY int) {
	offsets := Offsets(p.Kind, p.Rotation)
	minY, maxY = offsets[0].Y, offsets[0].Y
	for _, o := range offsets[1:] {
		minY = min(minY, o.Y)
		maxY = max(maxY, o.Y)
	}
	return minY, maxY
}

// kickTable lists the origin offsets tried, in order, after a rotation.
// The same list is used for every kind and every transition.
var kickTable = [...]Point{
	{0, 0},
	{-1, 0},
	{1, 0},
	{-2, 0},
	{2, 0},
	{0, -1},
	{0, 1},
}
