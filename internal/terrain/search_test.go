package terrain

import "testing"

func TestBFSOrderIsPinned(t *testing.T) {
	m := mustParse(t, []string{
		"###",
		"###",
		"###",
	})
	got := m.BFS(m.Ref(1, 1), func(_ TileRef, dist int) bool { return dist <= 1 })
	// Discovery order: start, then neighbors in up/down/left/right order.
	want := []TileRef{m.Ref(1, 1), m.Ref(1, 0), m.Ref(1, 2), m.Ref(0, 1), m.Ref(2, 1)}
	if len(got) != len(want) {
		t.Fatalf("visited %d tiles, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order[%d]: got %d want %d", i, got[i], want[i])
		}
	}
}

func TestClosestTileTieBreak(t *testing.T) {
	m := mustParse(t, []string{
		"#####",
		"#####",
	})
	from := m.Ref(2, 0)
	// Both candidates at distance 2; first in slice order wins.
	cands := []TileRef{m.Ref(4, 0), m.Ref(0, 0)}
	got, ok := m.ClosestTile(from, cands)
	if !ok || got != m.Ref(4, 0) {
		t.Fatalf("tie must resolve to first candidate, got %d ok=%v", got, ok)
	}
}

func TestClosestShoreTowardTargetNotFound(t *testing.T) {
	// All-water map: no shore exists anywhere.
	m := mustParse(t, []string{
		".....",
		".....",
		".....",
	})
	_, ok := m.ClosestShoreTowardTarget(m.Ref(2, 1), 10, ShoreSearch{
		AttackerOwns:   func(TileRef) bool { return false },
		AttackerBorder: []TileRef{m.Ref(0, 0)},
	})
	if ok {
		t.Fatal("expected not-found on shoreless map")
	}
}

func TestClosestShoreTowardTargetBound(t *testing.T) {
	// Shore exists but outside the search bound. The target sits mid-row so
	// the x wrap cannot pull the lone land column back within reach: both
	// ways around, the shore at (0,0) is 6 steps away.
	m := mustParse(t, []string{
		"#...........",
	})
	_, ok := m.ClosestShoreTowardTarget(m.Ref(6, 0), 3, ShoreSearch{
		AttackerOwns:   func(TileRef) bool { return false },
		AttackerBorder: []TileRef{m.Ref(0, 0)},
	})
	if ok {
		t.Fatal("shore beyond searchDist must report not-found")
	}
}

func TestClosestShoreTowardTargetNormalizesWaterTarget(t *testing.T) {
	m := mustParse(t, []string{
		"##...##",
		"##...##",
	})
	attacker := map[TileRef]struct{}{
		m.Ref(0, 0): {}, m.Ref(1, 0): {}, m.Ref(0, 1): {}, m.Ref(1, 1): {},
	}
	owns := func(t TileRef) bool { _, ok := attacker[t]; return ok }
	pair, ok := m.ClosestShoreTowardTarget(m.Ref(3, 0), 10, ShoreSearch{
		AttackerOwns:   owns,
		AttackerBorder: []TileRef{m.Ref(1, 0), m.Ref(1, 1)},
	})
	if !ok {
		t.Fatal("expected a landing shore across the strait")
	}
	if owns(pair.Shore) {
		t.Fatalf("landing shore %d is attacker-owned", pair.Shore)
	}
	// Column 6 borders column 0 through the x wrap, so only column 5 tiles
	// are shore on the far side. (5,0)/(1,0) and (5,1)/(1,1) tie at wrapped
	// distance 3; the first-discovered pair wins.
	if pair.Shore != m.Ref(5, 0) {
		t.Fatalf("landing shore: got %d want %d", pair.Shore, m.Ref(5, 0))
	}
	if pair.Border != m.Ref(1, 0) {
		t.Fatalf("border pairing: got %d want %d", pair.Border, m.Ref(1, 0))
	}
}

func TestClosestShoreDefenderConstraint(t *testing.T) {
	m := mustParse(t, []string{
		"##...##",
		"##...##",
	})
	attacker := map[TileRef]struct{}{m.Ref(0, 0): {}, m.Ref(1, 0): {}}
	defender := map[TileRef]struct{}{m.Ref(5, 1): {}, m.Ref(6, 1): {}}
	pair, ok := m.ClosestShoreTowardTarget(m.Ref(5, 0), 10, ShoreSearch{
		AttackerOwns:   func(t TileRef) bool { _, ok := attacker[t]; return ok },
		DefenderOwns:   func(t TileRef) bool { _, ok := defender[t]; return ok },
		AttackerBorder: []TileRef{m.Ref(1, 0)},
	})
	if !ok {
		t.Fatal("expected defender-owned landing shore")
	}
	// Of the defender's tiles only (5,1) is shore: (6,1) touches land on
	// every side once the x wrap joins columns 6 and 0.
	if pair.Shore != m.Ref(5, 1) {
		t.Fatalf("landing must be defender-owned shore: got %d want %d", pair.Shore, m.Ref(5, 1))
	}
}
