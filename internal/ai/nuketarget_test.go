package ai

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/openfrontio/OpenFrontIO-sub010/internal/engine"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/tuning"
)

// victimGame sets up an attacker plus three opponents with distinct troop
// counts and territories, the raw material for every cascade rung.
func victimGame(t *testing.T) (*engine.Game, *engine.Player, []*engine.Player) {
	t.Helper()
	g := newAIGame(t, openLand(t, 32, 32))
	p := g.AddPlayer("me", "Me", "Me", engine.PlayerTypeNation, 0)
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			g.Conquer(p, g.Map().Ref(x, y))
		}
	}
	p.AddTroops(10000)

	var others []*engine.Player
	for i, base := range []int{8, 16, 24} {
		o := g.AddPlayer([]string{"o1", "o2", "o3"}[i], "O", "O", engine.PlayerTypeNation, 0)
		for x := base; x < base+4; x++ {
			g.Conquer(o, g.Map().Ref(x, 20))
		}
		o.AddTroops(int64(3000 + i*1000))
		others = append(others, o)
	}
	return g, p, others
}

func TestNukeVictimRetaliation(t *testing.T) {
	g, p, others := victimGame(t)
	others[2].SetTarget(p.ID())

	v, ok := PickNukeVictim(g, p)
	if !ok {
		t.Fatal("expected a victim")
	}
	require.Same(t, others[2], v, "a player targeting us outranks every other rung")
}

func TestNukeVictimAllyAssist(t *testing.T) {
	g, p, others := victimGame(t)
	// Ally o1 and make it hate o3.
	g.RequestAlliance(p.ID(), others[0].ID())
	g.ResolveAlliance(p.ID(), others[0].ID(), true)
	others[0].SetTarget(others[2].ID())

	v, ok := PickNukeVictim(g, p)
	if !ok {
		t.Fatal("expected a victim")
	}
	require.Same(t, others[2], v, "we hit what our ally is fighting")
}

func TestNukeVictimMostHatedWeaker(t *testing.T) {
	g, p, others := victimGame(t)
	p.AdjustRelation(others[0].ID(), -30)
	p.AdjustRelation(others[1].ID(), -60)

	// Both hated players are weaker than half our strength (10000/2), so the
	// worse relation wins.
	v, ok := PickNukeVictim(g, p)
	if !ok {
		t.Fatal("expected a victim")
	}
	require.Same(t, others[1], v)
}

func TestNukeVictimHatedMustBeWeak(t *testing.T) {
	g, p, others := victimGame(t)
	p.AdjustRelation(others[1].ID(), -60)
	others[1].AddTroops(20000) // stronger than our threshold now

	v, ok := PickNukeVictim(g, p)
	if !ok {
		t.Fatal("expected a victim")
	}
	// Falls past the hated rung to the strongest hostile, which is now the
	// reinforced o2 itself.
	require.Same(t, others[1], v)
}

func TestNukeVictimRunawayLeader(t *testing.T) {
	g, p, others := victimGame(t)
	// o2 owns far more tiles than anyone else.
	for x := 0; x < 32; x++ {
		for y := 24; y < 30; y++ {
			g.Conquer(others[1], g.Map().Ref(x, y))
		}
	}

	v, ok := PickNukeVictim(g, p)
	if !ok {
		t.Fatal("expected a victim")
	}
	require.Same(t, others[1], v, "a runaway leader in free-for-all draws fire")
}

func TestNukeVictimAlliesExcluded(t *testing.T) {
	g, p, others := victimGame(t)
	for _, o := range others {
		g.RequestAlliance(p.ID(), o.ID())
		g.ResolveAlliance(p.ID(), o.ID(), true)
	}
	_, ok := PickNukeVictim(g, p)
	require.False(t, ok, "no hostile players means no victim")
}

func TestNukeTilePrefersStructureClusters(t *testing.T) {
	g, p, others := victimGame(t)
	victim := others[0]
	// A lone defense post at one end, a city+silo cluster at the other.
	g.AddUnit(victim, engine.UnitDefensePost, g.Map().Ref(8, 20))
	g.AddUnit(victim, engine.UnitCity, g.Map().Ref(11, 20))
	g.AddUnit(victim, engine.UnitMissileSilo, g.Map().Ref(11, 20))

	// (9,20) and (10,20) both catch the post and the city cluster inside the
	// radius; the tie resolves to the earlier owned tile.
	tile, ok := PickNukeTile(g, p, victim, 2)
	if !ok {
		t.Fatal("expected a target tile")
	}
	require.Equal(t, g.Map().Ref(9, 20), tile)
}

func TestNukeTileAvoidsRecentTargets(t *testing.T) {
	g, p, others := victimGame(t)
	victim := others[0]
	g.AddUnit(victim, engine.UnitCity, g.Map().Ref(8, 20))
	g.AddUnit(victim, engine.UnitCity, g.Map().Ref(11, 20))

	// Without history the heavier-scoring earliest tile would win; aiming
	// near (8,20) recently pushes the pick to the other city.
	p.RecordNukeTarget(g.Map().Ref(8, 20), 0)
	tile, ok := PickNukeTile(g, p, victim, 1)
	if !ok {
		t.Fatal("expected a target tile")
	}
	require.Equal(t, g.Map().Ref(11, 20), tile)
}

func TestNukeTileRespectsSAMCoverage(t *testing.T) {
	build := func(respect bool) (*engine.Game, *engine.Player, *engine.Player) {
		tun := tuning.Default()
		tun.AI.RespectSAMCoverage = respect
		g := engine.NewGame(engine.Config{SessionID: "sam", Tuning: tun}, openLand(t, 40, 10), zerolog.Nop())
		p := g.AddPlayer("me", "Me", "Me", engine.PlayerTypeNation, 0)
		for x := 0; x < 4; x++ {
			g.Conquer(p, g.Map().Ref(x, 5))
		}
		g.AddUnit(p, engine.UnitMissileSilo, g.Map().Ref(0, 5))

		victim := g.AddPlayer("v", "V", "V", engine.PlayerTypeNation, 0)
		for x := 20; x < 24; x++ {
			g.Conquer(victim, g.Map().Ref(x, 5))
		}
		g.AddUnit(victim, engine.UnitCity, g.Map().Ref(22, 5))
		// A SAM squarely on the flight path.
		g.AddUnit(victim, engine.UnitSAMLauncher, g.Map().Ref(10, 5))
		return g, p, victim
	}

	g, p, victim := build(true)
	_, ok := PickNukeTile(g, p, victim, 2)
	require.False(t, ok, "covered flight path must disqualify the target")

	g, p, victim = build(false)
	_, ok = PickNukeTile(g, p, victim, 2)
	require.True(t, ok, "easier difficulties ignore SAM coverage")
}

func TestStepTowardWalksTheWrap(t *testing.T) {
	m := openLand(t, 10, 5)
	// From x=9 to x=1 the short way is across the seam.
	cur := m.Ref(9, 2)
	next := StepToward(m, cur, m.Ref(1, 2))
	require.Equal(t, m.Ref(0, 2), next)

	// Larger axis moves first.
	next = StepToward(m, m.Ref(2, 0), m.Ref(3, 4))
	require.Equal(t, m.Ref(2, 1), next)

	// Arrived: no movement.
	require.Equal(t, cur, StepToward(m, cur, cur))
}
