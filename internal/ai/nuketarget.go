package ai

import (
	"github.com/openfrontio/OpenFrontIO-sub010/internal/engine"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/terrain"
)

// PickNukeVictim selects who to nuke through a fixed priority cascade:
//
//  1. retaliate against a player currently targeting us;
//  2. assist an ally by hitting the ally's current target;
//  3. the most-hated hostile relation weaker than roughly half our strength;
//  4. the map leader, when sufficiently ahead in a free-for-all;
//  5. the strongest opposing team.
//
// Each rung scans players in dense-id order, so ties resolve identically on
// every replica.
func PickNukeVictim(g *engine.Game, p *engine.Player) (*engine.Player, bool) {
	tun := g.Tuning()

	hostile := func(o *engine.Player) bool {
		return o.Alive() && o.ID() != p.ID() && !g.AlliedWith(p.ID(), o.ID()) &&
			(p.Team() == 0 || o.Team() != p.Team())
	}

	// 1. Retaliation.
	for _, o := range g.Players() {
		if hostile(o) && o.Target() == p.ID() {
			return o, true
		}
	}

	// 2. Ally assistance.
	for _, o := range g.Players() {
		if !o.Alive() || !g.AlliedWith(p.ID(), o.ID()) {
			continue
		}
		if tgt := g.Player(o.Target()); tgt != nil && hostile(tgt) {
			return tgt, true
		}
	}

	// 3. Most hated, if clearly weaker.
	var hated *engine.Player
	for _, o := range g.Players() {
		if !hostile(o) || p.Relation(o.ID()) >= 0 {
			continue
		}
		if o.Troops() >= p.Troops()/int64(tun.AI.HatedStrengthDivisor) {
			continue
		}
		if hated == nil || p.Relation(o.ID()) < p.Relation(hated.ID()) {
			hated = o
		}
	}
	if hated != nil {
		return hated, true
	}

	// 4. Runaway leader in free-for-all.
	if p.Team() == 0 {
		var leader, second *engine.Player
		for _, o := range g.Players() {
			if !o.Alive() || o.ID() == p.ID() {
				continue
			}
			switch {
			case leader == nil || o.NumTiles() > leader.NumTiles():
				second = leader
				leader = o
			case second == nil || o.NumTiles() > second.NumTiles():
				second = o
			}
		}
		if leader != nil && hostile(leader) {
			benchmark := p.NumTiles()
			if second != nil && second.NumTiles() > benchmark {
				benchmark = second.NumTiles()
			}
			if benchmark > 0 && leader.NumTiles()*100 >= benchmark*tun.AI.LeaderAheadPercent {
				return leader, true
			}
		}
	}

	// 5. Strongest member of the strongest opposing team.
	var strongest *engine.Player
	for _, o := range g.Players() {
		if !hostile(o) {
			continue
		}
		if strongest == nil || o.Troops() > strongest.Troops() {
			strongest = o
		}
	}
	if strongest != nil {
		return strongest, true
	}
	return nil, false
}

// PickNukeTile scores the victim's tiles by weighted structure damage within
// the blast radius, penalized for proximity to the attacker's recent aim
// points (within the cooldown window). When the difficulty respects SAM
// coverage, a tile is disqualified outright if the straight flight path
// crosses hostile anti-missile coverage. Ties resolve to the victim's earliest owned
// tile. (zero, false) means no worthwhile tile this tick.
func PickNukeTile(g *engine.Game, p *engine.Player, victim *engine.Player, radius int) (terrain.TileRef, bool) {
	m := g.Map()
	tun := g.Tuning()

	var sams []terrain.TileRef
	if tun.AI.RespectSAMCoverage {
		for _, u := range g.Units() {
			if u.Active() && u.Kind() == engine.UnitSAMLauncher &&
				u.Owner() != p.ID() && !g.AlliedWith(p.ID(), u.Owner()) {
				sams = append(sams, u.Tile())
			}
		}
	}

	launch, hasLaunch := launchTile(g, p)

	var bestTile terrain.TileRef
	bestScore := 0
	found := false
	for _, t := range victim.Tiles() {
		score := 0
		for _, u := range g.Units() {
			if !u.Active() || u.Owner() != victim.ID() {
				continue
			}
			if m.ManhattanDist(t, u.Tile()) > radius {
				continue
			}
			score += structureWeight(g, u.Kind())
		}
		if score == 0 {
			continue
		}
		for _, rt := range p.RecentTargets() {
			if m.ManhattanDist(t, rt.Tile) <= radius*2 {
				score -= tun.RecentTargetPenalty
			}
		}
		if score <= 0 {
			continue
		}
		if tun.AI.RespectSAMCoverage && hasLaunch && pathCovered(m, launch, t, sams, tun.SAMCoverageRadius) {
			continue
		}
		if score > bestScore {
			bestScore, bestTile, found = score, t, true
		}
	}
	return bestTile, found
}

func structureWeight(g *engine.Game, k engine.UnitKind) int {
	ai := g.Tuning().AI
	switch k {
	case engine.UnitCity:
		return ai.WeightTargetCity
	case engine.UnitPort:
		return ai.WeightTargetPort
	case engine.UnitMissileSilo:
		return ai.WeightTargetSilo
	case engine.UnitSAMLauncher:
		return ai.WeightTargetSAM
	case engine.UnitDefensePost:
		return ai.WeightTargetDefense
	}
	return 0
}

// launchTile is the silo nearest the player's territory centroid-ish anchor:
// the first owned tile. Good enough for coverage checks; the execution layer
// re-resolves the real launch silo.
func launchTile(g *engine.Game, p *engine.Player) (terrain.TileRef, bool) {
	var silos []terrain.TileRef
	for _, u := range g.Units() {
		if u.Active() && u.Owner() == p.ID() && u.Kind() == engine.UnitMissileSilo {
			silos = append(silos, u.Tile())
		}
	}
	if len(silos) == 0 || p.NumTiles() == 0 {
		return 0, false
	}
	t, _ := g.Map().ClosestTile(p.Tiles()[0], silos)
	return t, true
}

// pathCovered walks the straight integer path from src to dst and reports
// whether any step comes within coverage of a hostile SAM.
func pathCovered(m *terrain.Map, src, dst terrain.TileRef, sams []terrain.TileRef, coverage int) bool {
	cur := src
	for i := 0; i < m.NumTiles(); i++ { // bound: a straight path never revisits
		for _, s := range sams {
			if m.ManhattanDist(cur, s) <= coverage {
				return true
			}
		}
		if cur == dst {
			return false
		}
		cur = StepToward(m, cur, dst)
	}
	return false
}

// StepToward moves one tile from cur toward dst, preferring the axis with
// the larger remaining distance and respecting the x wrap. Used by missile
// flight and by coverage checks so both walk the same path.
func StepToward(m *terrain.Map, cur, dst terrain.TileRef) terrain.TileRef {
	cc, dc := m.CellOf(cur), m.CellOf(dst)
	dx := dc.X - cc.X
	// Take the shorter direction around the wrap.
	if dx > m.Width/2 {
		dx -= m.Width
	} else if dx < -m.Width/2 {
		dx += m.Width
	}
	dy := dc.Y - cc.Y

	absX, absY := dx, dy
	if absX < 0 {
		absX = -absX
	}
	if absY < 0 {
		absY = -absY
	}
	if absX >= absY && dx != 0 {
		x := cc.X
		if dx > 0 {
			x++
		} else {
			x--
		}
		if x < 0 {
			x += m.Width
		} else if x >= m.Width {
			x -= m.Width
		}
		return m.Ref(x, cc.Y)
	}
	if dy > 0 {
		return m.Ref(cc.X, cc.Y+1)
	}
	if dy < 0 {
		return m.Ref(cc.X, cc.Y-1)
	}
	return cur
}
