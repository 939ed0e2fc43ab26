package executions

import (
	"github.com/openfrontio/OpenFrontIO-sub010/internal/engine"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/terrain"
)

// PortExecution is the long-running behavior of a built port: every tick it
// rolls the owner's stream for a trade-ship departure toward the nearest
// non-embargoed foreign port within range.
type PortExecution struct {
	port *engine.Unit

	g      *engine.Game
	active bool
}

func (e *PortExecution) ActiveDuringSpawnPhase() bool { return false }

func (e *PortExecution) Init(g *engine.Game, tick uint64) {
	e.g = g
	e.active = true
}

func (e *PortExecution) Step(tick uint64) {
	if !e.port.Active() {
		e.active = false
		return
	}
	owner := e.g.Player(e.port.Owner())
	if owner == nil || !owner.Alive() {
		e.active = false
		return
	}
	if !owner.Rand().Chance(e.g.Tuning().TradeSpawnChance) {
		return
	}
	dst, ok := e.tradePartner(owner)
	if !ok {
		return
	}
	e.g.AddExecution(&TradeShipExecution{src: e.port, dst: dst})
}

// tradePartner picks the nearest active foreign port with no embargo in
// either direction, within the tuned route range. Units scan in creation
// order; distance ties keep the earlier port.
func (e *PortExecution) tradePartner(owner *engine.Player) (*engine.Unit, bool) {
	m := e.g.Map()
	maxDist := e.g.Tuning().MaxTradeRouteDist
	var best *engine.Unit
	bestD := 0
	for _, u := range e.g.Units() {
		if !u.Active() || u.Kind() != engine.UnitPort || u.Owner() == owner.ID() {
			continue
		}
		other := e.g.Player(u.Owner())
		if other == nil || !other.Alive() {
			continue
		}
		if owner.Embargoed(other.ID()) || other.Embargoed(owner.ID()) {
			continue
		}
		d := m.ManhattanDist(e.port.Tile(), u.Tile())
		if d > maxDist {
			continue
		}
		if best == nil || d < bestD {
			best, bestD = u, d
		}
	}
	return best, best != nil
}

func (e *PortExecution) IsActive() bool { return e.active }

// TradeShipExecution sails a ship between two ports; on arrival both owners
// collect the trade payout.
type TradeShipExecution struct {
	src, dst *engine.Unit

	g       *engine.Game
	ship    *engine.Unit
	path    []terrain.TileRef
	pathIdx int
	active  bool
}

func (e *TradeShipExecution) ActiveDuringSpawnPhase() bool { return false }

func (e *TradeShipExecution) Init(g *engine.Game, tick uint64) {
	e.g = g
	e.active = true

	m := g.Map()
	launch, ok := firstWaterNeighbor(m, e.src.Tile())
	if !ok {
		e.active = false
		return
	}
	arrive, ok := firstWaterNeighbor(m, e.dst.Tile())
	if !ok {
		e.active = false
		return
	}
	path, ok := m.Path(launch, arrive, m.IsWater)
	if !ok {
		e.active = false
		return
	}
	e.path = path
	e.ship = g.AddUnit(g.Player(e.src.Owner()), engine.UnitTradeShip, launch)
}

func (e *TradeShipExecution) Step(tick uint64) {
	// A route dies with either endpoint.
	if !e.src.Active() || !e.dst.Active() {
		e.g.RemoveUnit(e.ship)
		e.active = false
		return
	}

	speed := e.g.Tuning().TradeShipSpeed
	for i := 0; i < speed && e.pathIdx < len(e.path)-1; i++ {
		e.pathIdx++
	}
	e.ship.SetTile(e.path[e.pathIdx])

	if e.pathIdx < len(e.path)-1 {
		return
	}

	gold := e.g.Tuning().TradeShipGold
	if p := e.g.Player(e.src.Owner()); p != nil {
		p.AddGold(gold)
	}
	if p := e.g.Player(e.dst.Owner()); p != nil {
		p.AddGold(gold)
	}
	e.g.RemoveUnit(e.ship)
	e.active = false
}

func (e *TradeShipExecution) IsActive() bool { return e.active }
