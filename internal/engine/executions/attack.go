package executions

import (
	"github.com/openfrontio/OpenFrontIO-sub010/internal/engine"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/terrain"
)

// AttackExecution advances a land attack tick by tick, conquering frontier
// tiles out of the committed troop pool until the pool runs dry, the
// frontier closes, or the attacker cancels. target == TerraNullius attacks
// unclaimed land.
type AttackExecution struct {
	attacker *engine.Player
	target   engine.SmallID
	troops   int64

	g         *engine.Game
	active    bool
	cancelled bool
}

func NewAttackExecution(attacker *engine.Player, target engine.SmallID, troops int64) *AttackExecution {
	return &AttackExecution{attacker: attacker, target: target, troops: troops}
}

func (e *AttackExecution) Attacker() *engine.Player { return e.attacker }
func (e *AttackExecution) Target() engine.SmallID   { return e.target }

// Cancel requests cooperative cancellation; the execution notices on its own
// next Step and returns the committed troops.
func (e *AttackExecution) Cancel() { e.cancelled = true }

func (e *AttackExecution) ActiveDuringSpawnPhase() bool { return false }

func (e *AttackExecution) Init(g *engine.Game, tick uint64) {
	e.g = g
	e.active = true

	if !e.attacker.Alive() {
		e.active = false
		return
	}
	if e.target == e.attacker.ID() || g.AlliedWith(e.attacker.ID(), e.target) {
		g.Log().Warn().Str("client", e.attacker.ClientID()).
			Msg("attack against self or ally dropped")
		e.active = false
		return
	}
	if e.troops > e.attacker.Troops() {
		e.troops = e.attacker.Troops()
	}
	if e.troops <= 0 {
		e.active = false
		return
	}
	e.attacker.AddTroops(-e.troops)
}

func (e *AttackExecution) Step(tick uint64) {
	if e.cancelled {
		e.refund()
		return
	}

	defender := e.g.Player(e.target)
	if e.target != engine.TerraNullius && (defender == nil || !defender.Alive()) {
		e.refund()
		return
	}

	frontier := e.frontier()
	if len(frontier) == 0 {
		e.refund()
		return
	}

	tun := e.g.Tuning()
	perTick := tun.AttackTilesPerTickBase + int(e.troops/tun.AttackTroopsPerTile)
	conquered := 0
	for _, t := range frontier {
		if conquered >= perTick {
			break
		}
		cost := tun.AttackCostPerTile
		if defender != nil && e.defended(defender, t) {
			cost *= tun.DefensePostCostFactor
		}
		if e.troops < cost {
			break
		}
		e.troops -= cost
		e.g.Conquer(e.attacker, t)
		if defender != nil {
			defender.AddTroops(-tun.AttackDefenderLoss)
		}
		conquered++
	}
	if defender != nil && conquered > 0 {
		defender.AdjustRelation(e.attacker.ID(), -2)
	}

	if e.troops < tun.AttackCostPerTile {
		e.attacker.AddTroops(e.troops)
		e.troops = 0
		e.active = false
	}
}

func (e *AttackExecution) refund() {
	e.attacker.AddTroops(e.troops)
	e.troops = 0
	e.active = false
}

// frontier lists the tiles this attack can take this tick: neighbors of the
// attacker's border owned by the target (or unclaimed land when attacking
// terra nullius), deduplicated in discovery order.
func (e *AttackExecution) frontier() []terrain.TileRef {
	m := e.g.Map()
	seen := map[terrain.TileRef]struct{}{}
	var out []terrain.TileRef
	var nb []terrain.TileRef
	for _, t := range e.attacker.Tiles() {
		nb = m.Neighbors(t, nb[:0])
		for _, n := range nb {
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			if !m.IsLand(n) {
				continue
			}
			if e.g.OwnerOf(n) != e.target {
				continue
			}
			if e.target == engine.TerraNullius && e.g.OwnerOf(n) != engine.TerraNullius {
				continue
			}
			out = append(out, n)
		}
	}
	return out
}

// defended reports whether t is inside any of the defender's defense post
// radii.
func (e *AttackExecution) defended(defender *engine.Player, t terrain.TileRef) bool {
	m := e.g.Map()
	radius := e.g.Tuning().DefensePostRadius
	for _, u := range e.g.Units() {
		if u.Active() && u.Owner() == defender.ID() && u.Kind() == engine.UnitDefensePost {
			if m.ManhattanDist(t, u.Tile()) <= radius {
				return true
			}
		}
	}
	return false
}

func (e *AttackExecution) IsActive() bool { return e.active }
