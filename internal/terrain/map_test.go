package terrain

import "testing"

func mustParse(t *testing.T, rows []string) *Map {
	t.Helper()
	m, err := ParseASCII(rows)
	if err != nil {
		t.Fatalf("ParseASCII: %v", err)
	}
	return m
}

func TestRefCellRoundTrip(t *testing.T) {
	m := mustParse(t, []string{
		"....",
		"....",
		"....",
	})
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			ref := m.Ref(x, y)
			if !m.Valid(ref) {
				t.Fatalf("ref (%d,%d) invalid", x, y)
			}
			if c := m.CellOf(ref); c.X != x || c.Y != y {
				t.Fatalf("round trip (%d,%d) -> %v", x, y, c)
			}
		}
	}
}

func TestNeighborsWrapXNotY(t *testing.T) {
	m := mustParse(t, []string{
		"....",
		"....",
		"....",
	})
	got := m.Neighbors(m.Ref(0, 1), nil)
	want := []TileRef{m.Ref(0, 0), m.Ref(0, 2), m.Ref(3, 1), m.Ref(1, 1)}
	if len(got) != len(want) {
		t.Fatalf("neighbor count: got %d want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("neighbor %d: got %d want %d", i, got[i], want[i])
		}
	}

	// Top row has no up neighbor.
	top := m.Neighbors(m.Ref(1, 0), nil)
	if len(top) != 3 {
		t.Fatalf("top row neighbor count: got %d want 3", len(top))
	}
}

func TestManhattanDistWraps(t *testing.T) {
	m := mustParse(t, []string{
		"..........",
		"..........",
	})
	a := m.Ref(0, 0)
	b := m.Ref(9, 1)
	// Direct dx is 9; wrapped dx is 1.
	if got := m.ManhattanDist(a, b); got != 2 {
		t.Fatalf("wrapped distance: got %d want 2", got)
	}
	if got := m.EuclideanDistSquared(a, b); got != 2 {
		t.Fatalf("wrapped squared distance: got %d want 2", got)
	}
}

func TestShoreFlags(t *testing.T) {
	// A lake (single tile) and the surrounding ocean. Land bordering the
	// lake is shore but not ocean shore.
	m := mustParse(t, []string{
		".......",
		".#####.",
		".##.##.",
		".#####.",
		".......",
	})
	lakeShore := m.Ref(2, 2)
	if !m.IsShore(lakeShore) {
		t.Fatal("tile next to lake should be shore")
	}
	if m.IsOceanShore(lakeShore) {
		t.Fatal("lake-only shore must not be ocean shore")
	}
	edge := m.Ref(1, 1)
	if !m.IsOceanShore(edge) {
		t.Fatal("continent edge should be ocean shore")
	}
	inner := m.Ref(2, 1)
	if !m.IsShore(inner) {
		t.Fatal("top edge tile borders ocean")
	}
	if !m.IsShore(m.Ref(3, 3)) {
		t.Fatal("tile south of lake should be shore")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(64, 48, 1234)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := Generate(64, 48, 1234)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	land := 0
	for i := 0; i < a.NumTiles(); i++ {
		tr := TileRef(i)
		if a.IsLand(tr) != b.IsLand(tr) || a.Elevation(tr) != b.Elevation(tr) {
			t.Fatalf("maps diverge at tile %d", i)
		}
		if a.IsLand(tr) {
			land++
		}
	}
	if land == 0 || land == a.NumTiles() {
		t.Fatalf("degenerate map: %d/%d land", land, a.NumTiles())
	}
}
