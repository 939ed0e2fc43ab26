package executions

import (
	"github.com/openfrontio/OpenFrontIO-sub010/internal/ai"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/engine"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/terrain"
)

// NukeExecution flies a missile from the launcher's nearest silo to the
// target tile. Hostile SAM launchers roll to intercept while the missile is
// inside their coverage; on arrival the blast relinquishes territory,
// destroys units, and bleeds the victim's troops.
type NukeExecution struct {
	attacker   *engine.Player
	kind       engine.UnitKind // UnitAtomBomb or UnitHydrogenBomb
	targetTile terrain.TileRef

	g      *engine.Game
	unit   *engine.Unit
	active bool
}

func NewNukeExecution(attacker *engine.Player, kind engine.UnitKind, targetTile terrain.TileRef) *NukeExecution {
	return &NukeExecution{attacker: attacker, kind: kind, targetTile: targetTile}
}

func (e *NukeExecution) ActiveDuringSpawnPhase() bool { return false }

func (e *NukeExecution) Init(g *engine.Game, tick uint64) {
	e.g = g
	e.active = true

	if e.kind != engine.UnitAtomBomb && e.kind != engine.UnitHydrogenBomb {
		g.Log().Warn().Str("client", e.attacker.ClientID()).Str("kind", e.kind.String()).
			Msg("launch of non-missile kind dropped")
		e.active = false
		return
	}
	if !g.Map().Valid(e.targetTile) || !e.attacker.Alive() {
		e.active = false
		return
	}

	var silos []terrain.TileRef
	for _, u := range g.Units() {
		if u.Active() && u.Owner() == e.attacker.ID() && u.Kind() == engine.UnitMissileSilo {
			silos = append(silos, u.Tile())
		}
	}
	if len(silos) == 0 {
		g.Log().Warn().Str("client", e.attacker.ClientID()).
			Msg("launch without a missile silo dropped")
		e.active = false
		return
	}
	cost := g.UnitCost(e.kind)
	if e.attacker.Gold() < cost {
		e.active = false
		return
	}
	launch, _ := g.Map().ClosestTile(e.targetTile, silos)

	e.attacker.AddGold(-cost)
	e.attacker.RecordLaunch(e.kind)
	e.attacker.RecordNukeTarget(e.targetTile, tick)
	e.unit = g.AddUnit(e.attacker, e.kind, launch)
}

func (e *NukeExecution) Step(tick uint64) {
	m := e.g.Map()
	tun := e.g.Tuning()

	for i := 0; i < tun.NukeSpeed; i++ {
		if e.unit.Tile() == e.targetTile {
			break
		}
		e.unit.SetTile(ai.StepToward(m, e.unit.Tile(), e.targetTile))
		if e.intercepted() {
			e.g.RemoveUnit(e.unit)
			e.active = false
			return
		}
	}

	if e.unit.Tile() != e.targetTile {
		return
	}
	e.detonate()
}

// intercepted rolls the engine-neutral stream once per covering hostile SAM.
func (e *NukeExecution) intercepted() bool {
	m := e.g.Map()
	tun := e.g.Tuning()
	for _, u := range e.g.Units() {
		if !u.Active() || u.Kind() != engine.UnitSAMLauncher {
			continue
		}
		if u.Owner() == e.attacker.ID() || e.g.AlliedWith(e.attacker.ID(), u.Owner()) {
			continue
		}
		if m.ManhattanDist(u.Tile(), e.unit.Tile()) > tun.SAMCoverageRadius {
			continue
		}
		if !e.g.Rand().Chance(tun.SAMInterceptChance) {
			return true
		}
	}
	return false
}

func (e *NukeExecution) detonate() {
	m := e.g.Map()
	tun := e.g.Tuning()
	radius := tun.AtomBombRadius
	if e.kind == engine.UnitHydrogenBomb {
		radius = tun.HydrogenBombRadius
	}

	victim := e.g.Player(e.g.OwnerOf(e.targetTile))

	// Scan the bounding box row-major so the destruction order is fixed.
	center := m.CellOf(e.targetTile)
	for dy := -radius; dy <= radius; dy++ {
		y := center.Y + dy
		if y < 0 || y >= m.Height {
			continue
		}
		for dx := -radius; dx <= radius; dx++ {
			x := center.X + dx
			if x < 0 {
				x += m.Width
			} else if x >= m.Width {
				x -= m.Width
			}
			t := m.Ref(x, y)
			if m.ManhattanDist(t, e.targetTile) > radius {
				continue
			}
			if o := e.g.OwnerOf(t); o != engine.TerraNullius && o != e.attacker.ID() {
				e.g.Relinquish(t)
			}
		}
	}

	for _, u := range e.g.Units() {
		if !u.Active() || u == e.unit || u.Owner() == e.attacker.ID() {
			continue
		}
		if m.ManhattanDist(u.Tile(), e.targetTile) <= radius {
			e.g.RemoveUnit(u)
		}
	}

	if victim != nil {
		victim.AddTroops(-tun.NukeTroopDamage)
		victim.AdjustRelation(e.attacker.ID(), -50)
	}

	e.g.RemoveUnit(e.unit)
	e.active = false
}

func (e *NukeExecution) IsActive() bool { return e.active }
