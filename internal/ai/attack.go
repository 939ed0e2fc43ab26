package ai

import (
	"github.com/openfrontio/OpenFrontIO-sub010/internal/engine"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/terrain"
)

// PickAttackTarget chooses who a bot expands against this tick. Unclaimed
// bordering land always wins (cheap expansion); otherwise the weakest
// non-allied neighbor. Neighbors are discovered by walking owned tiles in
// insertion order, so the pick is replica-identical.
func PickAttackTarget(g *engine.Game, p *engine.Player) (engine.SmallID, bool) {
	m := g.Map()

	seen := map[engine.SmallID]struct{}{}
	var order []engine.SmallID
	hasFree := false
	var nb []terrain.TileRef
	for _, t := range p.Tiles() {
		nb = m.Neighbors(t, nb[:0])
		for _, n := range nb {
			owner := g.OwnerOf(n)
			if owner == p.ID() {
				continue
			}
			if owner == engine.TerraNullius {
				if m.IsLand(n) {
					hasFree = true
				}
				continue
			}
			if _, dup := seen[owner]; !dup {
				seen[owner] = struct{}{}
				order = append(order, owner)
			}
		}
	}
	if hasFree {
		return engine.TerraNullius, true
	}

	var weakest *engine.Player
	for _, id := range order {
		o := g.Player(id)
		if o == nil || !o.Alive() || g.AlliedWith(p.ID(), id) {
			continue
		}
		if p.Team() != 0 && o.Team() == p.Team() {
			continue
		}
		if weakest == nil || o.Troops() < weakest.Troops() {
			weakest = o
		}
	}
	if weakest == nil {
		return 0, false
	}
	return weakest.ID(), true
}
