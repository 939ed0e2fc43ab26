package ai

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/openfrontio/OpenFrontIO-sub010/internal/engine"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/terrain"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/tuning"
)

func fixtureMap(t *testing.T, rows []string) *terrain.Map {
	t.Helper()
	m, err := terrain.ParseASCII(rows)
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	return m
}

func openLand(t *testing.T, width, height int) *terrain.Map {
	t.Helper()
	rows := make([]string, height)
	for i := range rows {
		rows[i] = strings.Repeat("#", width)
	}
	return fixtureMap(t, rows)
}

func newAIGame(t *testing.T, m *terrain.Map) *engine.Game {
	t.Helper()
	return engine.NewGame(engine.Config{SessionID: "ai-test", Tuning: tuning.Default()}, m, zerolog.Nop())
}

// Pinned against the default inflation of 75% per owned structure.
func TestPerceivedCostInflation(t *testing.T) {
	tun := tuning.Default()
	cases := []struct {
		owned int
		want  int64
	}{
		{0, 5000},
		{1, 8750},
		{2, 15312},
		{3, 26796},
	}
	for _, tc := range cases {
		got := PerceivedCost(tun, engine.UnitCity, tc.owned)
		if got != tc.want {
			t.Fatalf("PerceivedCost(city, %d) = %d, want %d", tc.owned, got, tc.want)
		}
	}
}

func TestPlanStructureFirstCity(t *testing.T) {
	g := newAIGame(t, openLand(t, 12, 12))
	p := g.AddPlayer("n1", "N", "N", engine.PlayerTypeNation, 0)
	for x := 2; x < 8; x++ {
		for y := 2; y < 8; y++ {
			g.Conquer(p, g.Map().Ref(x, y))
		}
	}
	p.AddGold(5000)

	plan, ok := PlanStructure(g, p)
	if !ok {
		t.Fatal("expected a build plan")
	}
	require.Nil(t, plan.Upgrade)
	require.Equal(t, engine.UnitCity, plan.Kind)
	require.True(t, p.Owns(plan.Tile), "structures go on owned territory")
}

// With one city already owned, the perceived price of the second is 8750
// even though the base cost stays 5000. Gold in between must skip the city
// and fall through to the next affordable kind in priority order.
func TestPlanStructureSkipsInflatedKind(t *testing.T) {
	g := newAIGame(t, openLand(t, 16, 16))
	p := g.AddPlayer("n1", "N", "N", engine.PlayerTypeNation, 0)
	for x := 0; x < 16; x++ {
		for y := 0; y < 8; y++ {
			g.Conquer(p, g.Map().Ref(x, y))
		}
	}
	g.AddUnit(p, engine.UnitCity, g.Map().Ref(4, 4))
	p.AddGold(6000)

	plan, ok := PlanStructure(g, p)
	if !ok {
		t.Fatal("expected a build plan")
	}
	// City blocked at 8750 perceived; ports need ocean shore this map lacks;
	// silo costs 10000; defense post (2500) is the first affordable kind.
	require.Equal(t, engine.UnitDefensePost, plan.Kind)
}

func TestPlanStructureUpgradesWhenDense(t *testing.T) {
	g := newAIGame(t, openLand(t, 12, 12))
	p := g.AddPlayer("n1", "N", "N", engine.PlayerTypeNation, 0)
	for x := 0; x < 5; x++ {
		g.Conquer(p, g.Map().Ref(x, 0))
	}
	first := g.AddUnit(p, engine.UnitCity, g.Map().Ref(0, 0))
	second := g.AddUnit(p, engine.UnitCity, g.Map().Ref(2, 0))
	second.Upgrade()
	p.AddGold(100000)

	// 2 structures on 5 tiles is 400 permille, far past the threshold.
	plan, ok := PlanStructure(g, p)
	if !ok {
		t.Fatal("expected a plan")
	}
	require.Same(t, first, plan.Upgrade, "lowest level structure upgrades first")
}

func TestPlacementPrefersHighGround(t *testing.T) {
	g := newAIGame(t, fixtureMap(t, []string{
		"########",
		"###^####",
		"########",
	}))
	p := g.AddPlayer("n1", "N", "N", engine.PlayerTypeNation, 0)
	for x := 2; x < 6; x++ {
		for y := 0; y < 3; y++ {
			g.Conquer(p, g.Map().Ref(x, y))
		}
	}
	p.AddGold(5000)

	plan, ok := PlanStructure(g, p)
	if !ok {
		t.Fatal("expected a plan")
	}
	require.Equal(t, g.Map().Ref(3, 1), plan.Tile, "elevated tile should win placement")
}

func TestPortNeedsOceanShore(t *testing.T) {
	// Row 0 is the ocean; the single tile at (3,2) is a lake. The player
	// owns only the lake-side rows, so its shore tiles face the lake and no
	// port placement exists.
	g := newAIGame(t, fixtureMap(t, []string{
		"........",
		"########",
		"###.####",
		"########",
	}))
	p := g.AddPlayer("n1", "N", "N", engine.PlayerTypeNation, 0)
	for y := 2; y < 4; y++ {
		for x := 0; x < 8; x++ {
			tile := g.Map().Ref(x, y)
			if g.Map().IsLand(tile) {
				g.Conquer(p, tile)
			}
		}
	}
	_, ok := bestPlacement(g, p, engine.UnitPort)
	require.False(t, ok, "lake shore must not host a port")

	// Owning the ocean-facing row makes placement possible.
	for x := 0; x < 8; x++ {
		g.Conquer(p, g.Map().Ref(x, 1))
	}
	tile, ok := bestPlacement(g, p, engine.UnitPort)
	if !ok {
		t.Fatal("expected a port placement on the ocean shore")
	}
	require.True(t, g.Map().IsOceanShore(tile))
}
