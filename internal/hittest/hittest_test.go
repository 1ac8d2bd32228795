package hittest

import "testing"

// gridGeometry lays out fixed-width lines for tests: every glyph is 8
// pixels wide.
type gridGeometry struct {
	lines []string
}

func (g *gridGeometry) LineCount() int { return len(g.lines) }

func (g *gridGeometry) LineAdvances(line int) []float64 {
	runes := []rune(g.lines[line])
	out := make([]float64, len(runes)+1)
	for i := range out {
		out[i] = float64(i) * 8
	}
	return out
}

func newGrid(lines ...string) *Tester {
	return New(&gridGeometry{lines: lines}, 16)
}

func TestColumnForXNearestBoundary(t *testing.T) {
	advances := []float64{0, 8, 16, 24}

	tests := []struct {
		x    float64
		want int
	}{
		{0, 0},
		{3, 0},   // left of first glyph's midpoint
		{5, 1},   // right of it
		{8, 1},   // exactly on a boundary
		{10, 1},  // inside second glyph, left of midpoint
		{15, 2},  // right of midpoint
		{24, 3},  // line end
		{999, 3}, // clamp right
		{-5, 0},  // clamp left
	}

	for _, tt := range tests {
		if got := ColumnForX(advances, tt.x); got != tt.want {
			t.Errorf("ColumnForX(%v): expected %d, got %d", tt.x, tt.want, got)
		}
	}
}

func TestColumnForXEmptyLine(t *testing.T) {
	if got := ColumnForX([]float64{0}, 50); got != 0 {
		t.Errorf("empty line always resolves to column 0, got %d", got)
	}
}

func TestLocateBasic(t *testing.T) {
	tr := newGrid("abc", "defgh", "ij")

	line, col := tr.Locate(9, 20)
	if line != 1 || col != 1 {
		t.Errorf("expected (1,1), got (%d,%d)", line, col)
	}

	// Top-left corner.
	line, col = tr.Locate(0, 0)
	if line != 0 || col != 0 {
		t.Errorf("expected (0,0), got (%d,%d)", line, col)
	}
}

func TestLocateClampsAboveDocument(t *testing.T) {
	tr := newGrid("abc", "def")

	line, col := tr.Locate(100, -10)
	if line != 0 || col != 0 {
		t.Errorf("click above document: expected (0,0), got (%d,%d)", line, col)
	}
}

func TestLocateClampsBelowDocument(t *testing.T) {
	tr := newGrid("abc", "defgh")

	line, col := tr.Locate(2, 500)
	if line != 1 || col != 5 {
		t.Errorf("click below document: expected (1,5), got (%d,%d)", line, col)
	}
}

func TestLocateClampsPastLineEnd(t *testing.T) {
	tr := newGrid("abc", "defgh")

	line, col := tr.Locate(400, 4)
	if line != 0 || col != 3 {
		t.Errorf("click past line end: expected (0,3), got (%d,%d)", line, col)
	}
}

func TestLocateEmptyDocument(t *testing.T) {
	tr := New(&gridGeometry{}, 16)

	line, col := tr.Locate(50, 50)
	if line != 0 || col != 0 {
		t.Errorf("empty document: expected (0,0), got (%d,%d)", line, col)
	}
}

func TestLineAtBands(t *testing.T) {
	tr := newGrid("a", "b", "c")

	tests := []struct {
		y    float64
		want int
	}{
		{0, 0},
		{15.9, 0},
		{16, 1},
		{31, 1},
		{32, 2},
	}
	for _, tt := range tests {
		if got := tr.LineAt(tt.y); got != tt.want {
			t.Errorf("LineAt(%v): expected %d, got %d", tt.y, tt.want, got)
		}
	}
}

func TestSetLineHeight(t *testing.T) {
	tr := newGrid("a", "b")
	tr.SetLineHeight(32)

	if got := tr.LineAt(40); got != 1 {
		t.Errorf("after height change, LineAt(40) should be 1, got %d", got)
	}
}
