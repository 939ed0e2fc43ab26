package engine

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/openfrontio/OpenFrontIO-sub010/internal/terrain"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/tuning"
)

func testMap(t *testing.T) *terrain.Map {
	t.Helper()
	m, err := terrain.ParseASCII([]string{
		"########",
		"########",
		"##....##",
		"##....##",
		"########",
		"########",
	})
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	return m
}

func testGame(t *testing.T, session string) *Game {
	t.Helper()
	tun := tuning.Default()
	tun.SpawnPhaseTicks = 0
	return NewGame(Config{SessionID: session, Tuning: tun}, testMap(t), zerolog.Nop())
}

// recorderExec logs every lifecycle call so tests can assert ordering.
type recorderExec struct {
	calls    []string
	initTick uint64
	lifetime int
	spawnOK  bool
	active   bool
}

func (r *recorderExec) ActiveDuringSpawnPhase() bool { return r.spawnOK }

func (r *recorderExec) Init(g *Game, tick uint64) {
	r.calls = append(r.calls, "init")
	r.initTick = tick
	r.active = true
}

func (r *recorderExec) Step(tick uint64) {
	r.calls = append(r.calls, "step")
	r.lifetime--
	if r.lifetime <= 0 {
		r.active = false
	}
}

func (r *recorderExec) IsActive() bool { return r.active }

func TestExecutionLifecycle(t *testing.T) {
	g := testGame(t, "lifecycle")
	e := &recorderExec{lifetime: 3}
	g.AddExecution(e)

	if len(e.calls) != 0 {
		t.Fatalf("execution touched before tick: %v", e.calls)
	}
	for i := 0; i < 10; i++ {
		g.ExecuteNextTick()
	}
	require.Equal(t, []string{"init", "step", "step", "step"}, e.calls,
		"init exactly once, no steps after going inactive")
	require.Empty(t, g.ActiveExecutions(), "inactive executions must be swept")
}

func TestExecutionStepsInCreationOrder(t *testing.T) {
	g := testGame(t, "order")
	var order []int
	for i := 0; i < 5; i++ {
		i := i // capture for the closure
		g.AddExecution(&funcExec{fn: func() { order = append(order, i) }})
	}
	g.ExecuteNextTick()
	require.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

type funcExec struct {
	fn   func()
	done bool
}

func (f *funcExec) ActiveDuringSpawnPhase() bool { return true }
func (f *funcExec) Init(g *Game, tick uint64)    {}
func (f *funcExec) Step(tick uint64) {
	f.fn()
	f.done = true
}
func (f *funcExec) IsActive() bool { return !f.done }

func TestSpawnPhaseGatesNonSpawnExecutions(t *testing.T) {
	tun := tuning.Default()
	tun.SpawnPhaseTicks = 5
	g := NewGame(Config{SessionID: "gate", Tuning: tun}, testMap(t), zerolog.Nop())

	gated := &recorderExec{lifetime: 100, spawnOK: false}
	open := &recorderExec{lifetime: 100, spawnOK: true}
	g.AddExecution(gated)
	g.AddExecution(open)

	for i := 0; i < 5; i++ {
		g.ExecuteNextTick()
	}
	require.Equal(t, []string{"init"}, gated.calls, "gated execution must not step during spawn phase")
	require.Len(t, open.calls, 6) // init + 5 steps

	g.ExecuteNextTick()
	require.Equal(t, []string{"init", "step"}, gated.calls)
}

func TestConquerAndElimination(t *testing.T) {
	g := testGame(t, "conquer")
	a := g.AddPlayer("a", "Alice", "Alice", PlayerTypeHuman, 0)
	b := g.AddPlayer("b", "Bob", "Bob", PlayerTypeHuman, 0)

	m := g.Map()
	t0 := m.Ref(0, 0)
	t1 := m.Ref(1, 0)
	g.Conquer(a, t0)
	g.Conquer(a, t1)
	g.Conquer(b, m.Ref(5, 5))

	require.Equal(t, a.ID(), g.OwnerOf(t0))
	require.Equal(t, 2, a.NumTiles())

	// Taking an owned tile transfers it.
	g.Conquer(b, t0)
	require.Equal(t, b.ID(), g.OwnerOf(t0))
	require.Equal(t, 1, a.NumTiles())

	// Water cannot be conquered.
	water := m.Ref(3, 3)
	g.Conquer(b, water)
	require.Equal(t, TerraNullius, g.OwnerOf(water))

	// Losing the last tile eliminates the player and kills structures.
	u := g.AddUnit(a, UnitCity, t1)
	g.Conquer(b, t1)
	require.False(t, a.Alive())
	require.False(t, u.Active())
	require.Equal(t, 0, a.BuildCount(UnitCity))
}

func TestAllianceFlow(t *testing.T) {
	g := testGame(t, "alliance")
	a := g.AddPlayer("a", "A", "A", PlayerTypeHuman, 0)
	b := g.AddPlayer("b", "B", "B", PlayerTypeHuman, 0)

	g.RequestAlliance(a.ID(), b.ID())
	if _, ok := g.PendingRequest(a.ID(), b.ID()); !ok {
		t.Fatal("request not recorded")
	}
	// Duplicate offers collapse.
	g.RequestAlliance(a.ID(), b.ID())
	require.Len(t, g.RequestsTo(b.ID()), 1)

	g.ResolveAlliance(a.ID(), b.ID(), true)
	require.True(t, g.AlliedWith(a.ID(), b.ID()))
	require.True(t, g.AlliedWith(b.ID(), a.ID()))
	require.Equal(t, 40, a.Relation(b.ID()))

	g.BreakAlliance(a.ID(), b.ID())
	require.False(t, g.AlliedWith(a.ID(), b.ID()))
	require.True(t, a.Traitor())
}

func TestAllianceLapsesAfterDuration(t *testing.T) {
	tun := tuning.Default()
	tun.SpawnPhaseTicks = 0
	tun.AllianceDuration = 10
	g := NewGame(Config{SessionID: "lapse", Tuning: tun}, testMap(t), zerolog.Nop())
	a := g.AddPlayer("a", "A", "A", PlayerTypeHuman, 0)
	b := g.AddPlayer("b", "B", "B", PlayerTypeHuman, 0)

	g.RequestAlliance(a.ID(), b.ID())
	g.ResolveAlliance(a.ID(), b.ID(), true)

	// A pact formed at tick 0 holds for its full duration.
	for i := 0; i < 10; i++ {
		g.ExecuteNextTick()
	}
	require.True(t, g.AlliedWith(a.ID(), b.ID()))

	g.ExecuteNextTick()
	require.False(t, g.AlliedWith(a.ID(), b.ID()))

	// A lapse is not a betrayal.
	require.False(t, a.Traitor())
	require.False(t, b.Traitor())
	require.Equal(t, 40, a.Relation(b.ID()))
}

func TestRegenGrowsTowardCap(t *testing.T) {
	g := testGame(t, "regen")
	a := g.AddPlayer("a", "A", "A", PlayerTypeHuman, 0)
	g.Conquer(a, g.Map().Ref(0, 0))

	prev := int64(0)
	for i := 0; i < 2000; i++ {
		g.ExecuteNextTick()
		if a.Troops() < prev {
			t.Fatalf("troops shrank at tick %d: %d -> %d", i, prev, a.Troops())
		}
		prev = a.Troops()
	}
	want := g.Tuning().TroopBaseCap + g.Tuning().TroopsPerTileCap
	require.Equal(t, want, a.Troops(), "regen should saturate at the tile-scaled cap")
	require.Positive(t, a.Gold())
}

func TestHashDetectsStateDivergence(t *testing.T) {
	build := func() *Game {
		g := testGame(t, "hash")
		a := g.AddPlayer("a", "A", "A", PlayerTypeHuman, 0)
		g.Conquer(a, g.Map().Ref(0, 0))
		g.ExecuteNextTick()
		return g
	}
	g1 := build()
	g2 := build()
	require.Equal(t, g1.Hash(), g2.Hash(), "identical histories must hash identically")

	g2.Conquer(g2.Player(1), g2.Map().Ref(1, 0))
	require.NotEqual(t, g1.Hash(), g2.Hash())
}

func TestHashIgnoresDisplayName(t *testing.T) {
	g1 := testGame(t, "names")
	g2 := testGame(t, "names")
	g1.AddPlayer("a", "d*mn", "d**n", PlayerTypeHuman, 0)
	g2.AddPlayer("a", "d*mn", "dn", PlayerTypeHuman, 0)
	require.Equal(t, g1.Hash(), g2.Hash(),
		"display filtering differences must not desync replicas")
}

func TestPerPlayerRandStreamsAreIndependent(t *testing.T) {
	g := testGame(t, "streams")
	a := g.AddPlayer("a", "A", "A", PlayerTypeBot, 0)
	b := g.AddPlayer("b", "B", "B", PlayerTypeBot, 0)

	// Draining one stream must not perturb the other.
	g2 := testGame(t, "streams")
	a2 := g2.AddPlayer("a", "A", "A", PlayerTypeBot, 0)
	b2 := g2.AddPlayer("b", "B", "B", PlayerTypeBot, 0)
	for i := 0; i < 100; i++ {
		a2.Rand().NextFloat()
	}
	_ = a
	for i := 0; i < 10; i++ {
		if b.Rand().NextFloat() != b2.Rand().NextFloat() {
			t.Fatal("sibling stream perturbed by unrelated draws")
		}
	}
}
