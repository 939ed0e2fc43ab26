package executions

import (
	"github.com/openfrontio/OpenFrontIO-sub010/internal/engine"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/terrain"
)

// TransportExecution carries troops across water to a landing shore near the
// requested target tile, then hands off to a regular AttackExecution. A
// failed shore search or an unroutable crossing drops the move silently;
// an unreachable boat request is not an error.
type TransportExecution struct {
	attacker   *engine.Player
	target     engine.SmallID
	targetTile terrain.TileRef
	troops     int64

	g         *engine.Game
	unit      *engine.Unit
	landing   terrain.TileRef
	path      []terrain.TileRef
	pathIdx   int
	active    bool
	cancelled bool
}

func NewTransportExecution(attacker *engine.Player, target engine.SmallID, targetTile terrain.TileRef, troops int64) *TransportExecution {
	return &TransportExecution{attacker: attacker, target: target, targetTile: targetTile, troops: troops}
}

func (e *TransportExecution) Attacker() *engine.Player { return e.attacker }

func (e *TransportExecution) Cancel() { e.cancelled = true }

func (e *TransportExecution) ActiveDuringSpawnPhase() bool { return false }

func (e *TransportExecution) Init(g *engine.Game, tick uint64) {
	e.g = g
	e.active = true

	m := g.Map()
	if !e.attacker.Alive() || !m.Valid(e.targetTile) {
		e.active = false
		return
	}

	var defenderOwns func(terrain.TileRef) bool
	if defender := g.Player(e.target); defender != nil {
		defenderOwns = func(t terrain.TileRef) bool { return defender.Owns(t) }
	}
	pair, ok := m.ClosestShoreTowardTarget(e.targetTile, g.Tuning().BoatSearchDist, terrain.ShoreSearch{
		AttackerOwns:   func(t terrain.TileRef) bool { return e.attacker.Owns(t) },
		DefenderOwns:   defenderOwns,
		AttackerBorder: g.BorderTiles(e.attacker),
	})
	if !ok {
		g.Log().Debug().Str("client", e.attacker.ClientID()).
			Msg("no reachable landing shore; boat move dropped")
		e.active = false
		return
	}
	e.landing = pair.Shore

	launch, ok := firstWaterNeighbor(m, pair.Border)
	if !ok {
		e.active = false
		return
	}
	dst, ok := firstWaterNeighbor(m, pair.Shore)
	if !ok {
		e.active = false
		return
	}
	path, ok := m.Path(launch, dst, m.IsWater)
	if !ok {
		g.Log().Debug().Str("client", e.attacker.ClientID()).
			Msg("no water route to landing shore; boat move dropped")
		e.active = false
		return
	}
	e.path = path

	if e.troops > e.attacker.Troops() {
		e.troops = e.attacker.Troops()
	}
	if e.troops <= 0 {
		e.active = false
		return
	}
	e.attacker.AddTroops(-e.troops)
	e.unit = g.AddUnit(e.attacker, engine.UnitTransportShip, launch)
}

func (e *TransportExecution) Step(tick uint64) {
	if e.cancelled {
		e.attacker.AddTroops(e.troops)
		e.g.RemoveUnit(e.unit)
		e.active = false
		return
	}

	speed := e.g.Tuning().TransportSpeed
	for i := 0; i < speed && e.pathIdx < len(e.path)-1; i++ {
		e.pathIdx++
	}
	e.unit.SetTile(e.path[e.pathIdx])

	if e.pathIdx < len(e.path)-1 {
		return
	}

	// Landed: take the beachhead and continue as a land attack. The carried
	// troops go back to the pool so the follow-up attack can commit them on
	// its own init.
	e.g.Conquer(e.attacker, e.landing)
	e.g.RemoveUnit(e.unit)
	e.attacker.AddTroops(e.troops)
	e.g.AddExecution(NewAttackExecution(e.attacker, e.target, e.troops))
	e.troops = 0
	e.active = false
}

func (e *TransportExecution) IsActive() bool { return e.active }

// firstWaterNeighbor returns the first water tile adjacent to t in the fixed
// neighbor order.
func firstWaterNeighbor(m *terrain.Map, t terrain.TileRef) (terrain.TileRef, bool) {
	for _, nb := range m.Neighbors(t, nil) {
		if m.IsWater(nb) {
			return nb, true
		}
	}
	return 0, false
}
