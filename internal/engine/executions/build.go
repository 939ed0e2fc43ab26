package executions

import (
	"github.com/openfrontio/OpenFrontIO-sub010/internal/engine"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/terrain"
)

// ConstructionExecution places one structure. Building is instant (a single
// step); ports additionally start a long-running PortExecution that spawns
// trade ships.
type ConstructionExecution struct {
	player *engine.Player
	kind   engine.UnitKind
	tile   terrain.TileRef

	g      *engine.Game
	active bool
	valid  bool
}

func (e *ConstructionExecution) ActiveDuringSpawnPhase() bool { return false }

func (e *ConstructionExecution) Init(g *engine.Game, tick uint64) {
	e.g = g
	e.active = true

	m := g.Map()
	switch {
	case !e.kind.IsStructure():
		g.Log().Warn().Str("client", e.player.ClientID()).Str("kind", e.kind.String()).
			Msg("construction of non-structure dropped")
	case !m.Valid(e.tile) || !e.player.Owns(e.tile):
		g.Log().Warn().Str("client", e.player.ClientID()).Int("tile", int(e.tile)).
			Msg("construction on unowned tile dropped")
	case e.kind == engine.UnitPort && !m.IsOceanShore(e.tile):
		g.Log().Warn().Str("client", e.player.ClientID()).
			Msg("port requires an ocean shore tile")
	case e.player.Gold() < g.UnitCost(e.kind):
		// Insufficient funds is routine (AI probes affordability); drop quietly.
	case occupied(g, e.tile):
		// Lost a same-tick race for the tile; earlier intent wins.
	default:
		e.valid = true
	}
}

func (e *ConstructionExecution) Step(tick uint64) {
	defer func() { e.active = false }()
	if !e.valid {
		return
	}
	// Re-check the races that another execution may have won since init.
	if !e.player.Owns(e.tile) || occupied(e.g, e.tile) || e.player.Gold() < e.g.UnitCost(e.kind) {
		return
	}
	e.player.AddGold(-e.g.UnitCost(e.kind))
	u := e.g.AddUnit(e.player, e.kind, e.tile)
	if e.kind == engine.UnitPort {
		e.g.AddExecution(&PortExecution{port: u})
	}
}

func (e *ConstructionExecution) IsActive() bool { return e.active }

// UpgradeExecution raises an existing structure's level at half its base
// cost.
type UpgradeExecution struct {
	player *engine.Player
	unit   *engine.Unit

	g      *engine.Game
	active bool
}

func (e *UpgradeExecution) ActiveDuringSpawnPhase() bool { return false }

func (e *UpgradeExecution) Init(g *engine.Game, tick uint64) {
	e.g = g
	e.active = true
}

func (e *UpgradeExecution) Step(tick uint64) {
	defer func() { e.active = false }()
	if e.unit == nil || !e.unit.Active() || e.unit.Owner() != e.player.ID() {
		return
	}
	cost := e.g.UnitCost(e.unit.Kind()) / 2
	if e.player.Gold() < cost {
		return
	}
	e.player.AddGold(-cost)
	e.unit.Upgrade()
}

func (e *UpgradeExecution) IsActive() bool { return e.active }

// occupied reports whether a structure already stands on t.
func occupied(g *engine.Game, t terrain.TileRef) bool {
	for _, u := range g.Units() {
		if u.Active() && u.Kind().IsStructure() && u.Tile() == t {
			return true
		}
	}
	return false
}
