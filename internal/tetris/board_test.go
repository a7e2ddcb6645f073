package tetris

import (
	"reflect"
	"testing"
)

func TestClearFullRowsNoop(t *testing.T) {
	b := NewBoard(20)
	fillRow(b, 19, 3)
	fillRow(b, 18, 7)
	before := b.Grid()

	if n := b.ClearFullRows(); n != 0 {
		t.Fatalf("expected 0 rows cleared, got %d", n)
	}
	if !reflect.DeepEqual(before, b.Grid()) {
		t.Error("board changed although no row was full")
	}
}

func TestClearFullRowsKeepsOrder(t *testing.T) {
	b := NewBoard(6)
	b.Set(0, 1, CellOf(KindI))
	fillRow(b, 2)
	b.Set(1, 3, CellOf(KindO))
	fillRow(b, 4)
	fillRow(b, 5)

	if n := b.ClearFullRows(); n != 3 {
		t.Fatalf("expected 3 rows cleared, got %d", n)
	}
	if b.Rows() != 6 {
		t.Fatalf("height changed to %d", b.Rows())
	}
	if k, ok := b.At(0, 4).Kind(); !ok || k != KindI {
		t.Errorf("row 1 should have moved to row 4, got %v", b.At(0, 4))
	}
	if k, ok := b.At(1, 5).Kind(); !ok || k != KindO {
		t.Errorf("row 3 should have moved to row 5, got %v", b.At(1, 5))
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < Columns; x++ {
			if b.At(x, y).Filled() {
				t.Errorf("unexpected cell at (%d,%d)", x, y)
			}
		}
	}
}

func TestClearFullRowsNotCapped(t *testing.T) {
	b := NewBoard(8)
	for y := 2; y < 8; y++ {
		fillRow(b, y)
	}
	if n := b.ClearFullRows(); n != 6 {
		t.Errorf("expected 6 rows cleared, got %d", n)
	}
	if !b.IsEmpty() {
		t.Error("board should be empty")
	}
}

func TestLockSkipsCellsOffBoard(t *testing.T) {
	b := NewBoard(4)
	// Vertical I poking one row above the top.
	p := Piece{Kind: KindI, Rotation: 1, Origin: Point{X: 0, Y: -1}}

	full := b.Lock(p)
	if full {
		t.Error("no row should be full")
	}
	for y := 0; y < 3; y++ {
		if !b.At(2, y).Filled() {
			t.Errorf("cell (2,%d) should be filled", y)
		}
	}
	if b.StackHeight() != 4 {
		t.Errorf("stack height = %d, want 4", b.StackHeight())
	}
}

func TestLockReportsFullRow(t *testing.T) {
	b := NewBoard(4)
	fillRow(b, 3, 4, 5)
	fillRow(b, 2, 4, 5)
	if !b.Lock(NewPiece(KindO, Point{X: 3, Y: 2})) {
		t.Error("lock should report a full row")
	}
}

func TestCollides(t *testing.T) {
	b := NewBoard(20)
	b.Set(5, 10, CellOf(KindT))

	tests := []struct {
		name  string
		cells []Point
		want  bool
	}{
		{"free", []Point{{0, 0}, {9, 19}}, false},
		{"left wall", []Point{{-1, 5}}, true},
		{"right wall", []Point{{10, 5}}, true},
		{"above top", []Point{{3, -1}}, true},
		{"floor", []Point{{3, 20}}, true},
		{"overlap", []Point{{4, 10}, {5, 10}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Collides(tt.cells); got != tt.want {
				t.Errorf("Collides(%v) = %v, want %v", tt.cells, got, tt.want)
			}
		})
	}
}

func TestBoardResize(t *testing.T) {
	b := NewBoard(20)
	b.Set(0, 19, CellOf(KindL))

	if d := b.Resize(24); d != 4 {
		t.Fatalf("grow delta = %d, want 4", d)
	}
	if !b.At(0, 23).Filled() {
		t.Error("bottom row should stay at the bottom after growing")
	}
	if d := b.Resize(10); d != -14 {
		t.Fatalf("shrink delta = %d, want -14", d)
	}
	if !b.At(0, 9).Filled() {
		t.Error("bottom row should survive shrinking")
	}
	b.Resize(-3)
	if b.Rows() != 1 {
		t.Errorf("rows = %d, want 1", b.Rows())
	}
}

func TestRotationTableShapes(t *testing.T) {
	for _, k := range AllKinds {
		for r := 0; r < 4; r++ {
			seen := make(map[Point]bool)
			for _, o := range Offsets(k, r) {
				if o.X < 0 || o.X > 3 || o.Y < 0 || o.Y > 3 {
					t.Errorf("%v rotation %d: offset %v outside the 4x4 box", k, r, o)
				}
				if seen[o] {
					t.Errorf("%v rotation %d: duplicate offset %v", k, r, o)
				}
				seen[o] = true
			}
		}
	}
	for r := 0; r < 4; r++ {
		found := false
		for _, o := range Offsets(KindT, r) {
			if o == tCenter {
				found = true
			}
		}
		if !found {
			t.Errorf("T rotation %d does not contain its centre", r)
		}
	}
}
