package ai

import (
	"github.com/openfrontio/OpenFrontIO-sub010/internal/engine"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/terrain"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/tuning"
)

// BuildPlan is one structure-economy decision: either place Kind at Tile, or
// upgrade an existing unit.
type BuildPlan struct {
	Kind    engine.UnitKind
	Tile    terrain.TileRef
	Upgrade *engine.Unit
}

// structurePriority is the fixed order the economy considers structure
// kinds in each tick. Order matters: it decides which deficit is addressed
// first when gold only covers one build.
var structurePriority = []engine.UnitKind{
	engine.UnitCity,
	engine.UnitPort,
	engine.UnitMissileSilo,
	engine.UnitSAMLauncher,
	engine.UnitDefensePost,
}

// PerceivedCost inflates the base cost multiplicatively with how many of the
// kind the player already owns. This throttles build pacing; it is a tuned
// heuristic, not a correctness invariant; the actual gold deducted on build
// is always the base cost.
func PerceivedCost(tun tuning.Tuning, kind engine.UnitKind, owned int) int64 {
	cost := baseCost(tun, kind)
	for i := 0; i < owned; i++ {
		cost = cost * int64(100+tun.AI.CostInflationPercent) / 100
	}
	return cost
}

func baseCost(tun tuning.Tuning, kind engine.UnitKind) int64 {
	switch kind {
	case engine.UnitCity:
		return tun.CostCity
	case engine.UnitPort:
		return tun.CostPort
	case engine.UnitDefensePost:
		return tun.CostDefensePost
	case engine.UnitSAMLauncher:
		return tun.CostSAMLauncher
	case engine.UnitMissileSilo:
		return tun.CostMissileSilo
	}
	return 0
}

// targetCount is the desired number of a structure kind given the player's
// city count. Ratios are expressed in tenths per city; every player wants at
// least one city regardless.
func targetCount(tun tuning.Tuning, kind engine.UnitKind, cities int) int {
	switch kind {
	case engine.UnitCity:
		return cities + 1
	case engine.UnitPort:
		return cities * tun.AI.PortsPerCity / 10
	case engine.UnitMissileSilo:
		return cities * tun.AI.SilosPerCity / 10
	case engine.UnitSAMLauncher:
		return cities * tun.AI.SAMsPerCity / 10
	case engine.UnitDefensePost:
		return cities * tun.AI.DefensePostsPerCity / 10
	}
	return 0
}

// PlanStructure runs one structure-economy tick for p. When structure
// density per owned tile exceeds the upgrade threshold it proposes upgrading
// the oldest lowest-level structure; otherwise it walks the fixed kind
// priority, proposes the first kind below its target ratio that the player's
// gold can cover at perceived cost, and places it at the tile maximizing the
// placement score. A kind with no valid tile this tick is skipped and the
// next kind is tried; (zero, false) means no action this tick.
func PlanStructure(g *engine.Game, p *engine.Player) (BuildPlan, bool) {
	tun := g.Tuning()
	if p.NumTiles() == 0 {
		return BuildPlan{}, false
	}
	cities := p.BuildCount(engine.UnitCity)

	structures := 0
	for _, k := range structurePriority {
		structures += p.BuildCount(k)
	}
	density := structures * 1000 / p.NumTiles()
	if density > tun.AI.UpgradeDensityPermille {
		if u, ok := upgradeCandidate(g, p); ok {
			return BuildPlan{Kind: u.Kind(), Upgrade: u}, true
		}
		return BuildPlan{}, false
	}

	for _, kind := range structurePriority {
		owned := p.BuildCount(kind)
		if owned >= targetCount(tun, kind, cities) {
			continue
		}
		if p.Gold() < PerceivedCost(tun, kind, owned) {
			continue
		}
		tile, ok := bestPlacement(g, p, kind)
		if !ok {
			continue
		}
		return BuildPlan{Kind: kind, Tile: tile}, true
	}
	return BuildPlan{}, false
}

// upgradeCandidate picks the lowest-level structure, breaking level ties by
// creation order.
func upgradeCandidate(g *engine.Game, p *engine.Player) (*engine.Unit, bool) {
	var best *engine.Unit
	for _, u := range g.Units() {
		if !u.Active() || u.Owner() != p.ID() || !u.Kind().IsStructure() {
			continue
		}
		if best == nil || u.Level() < best.Level() {
			best = u
		}
	}
	return best, best != nil
}

// bestPlacement scores every owned candidate tile and returns the argmax.
// Ties resolve to the earliest tile in the player's owned-tile order.
func bestPlacement(g *engine.Game, p *engine.Player, kind engine.UnitKind) (terrain.TileRef, bool) {
	m := g.Map()
	tun := g.Tuning()
	border := g.BorderTiles(p)

	var sameKind []terrain.TileRef
	var assets []terrain.TileRef
	for _, u := range g.Units() {
		if !u.Active() || u.Owner() != p.ID() {
			continue
		}
		if u.Kind() == kind {
			sameKind = append(sameKind, u.Tile())
		}
		if u.Kind() == engine.UnitCity || u.Kind() == engine.UnitMissileSilo {
			assets = append(assets, u.Tile())
		}
	}

	var bestTile terrain.TileRef
	bestScore := int(-1 << 62)
	found := false
	for _, t := range p.Tiles() {
		if !placeable(g, p, kind, t) {
			continue
		}
		score := placementScore(m, tun, t, kind, border, sameKind, assets)
		if score > bestScore {
			bestScore, bestTile, found = score, t, true
		}
	}
	return bestTile, found
}

func placeable(g *engine.Game, p *engine.Player, kind engine.UnitKind, t terrain.TileRef) bool {
	if kind == engine.UnitPort && !g.Map().IsOceanShore(t) {
		return false
	}
	for _, u := range g.Units() {
		if u.Active() && u.Kind().IsStructure() && u.Tile() == t {
			return false
		}
	}
	return true
}

// placementScore is the weighted sum the economy maximizes: higher ground,
// distance from the border, spacing from same-kind structures, and
// proximity to protectable assets (for SAM launchers and defense posts).
func placementScore(m *terrain.Map, tun tuning.Tuning, t terrain.TileRef, kind engine.UnitKind, border, sameKind, assets []terrain.TileRef) int {
	ai := tun.AI
	score := int(m.Elevation(t)) * ai.WeightElevation

	if b, ok := m.ClosestTile(t, border); ok {
		score += m.ManhattanDist(t, b) * ai.WeightBorderDist
	}

	if s, ok := m.ClosestTile(t, sameKind); ok {
		d := m.ManhattanDist(t, s)
		if d < ai.MinKindSpacing {
			score -= (ai.MinKindSpacing - d) * ai.WeightKindSpacing * 10
		} else {
			score += d * ai.WeightKindSpacing
		}
	}

	defensive := kind == engine.UnitSAMLauncher || kind == engine.UnitDefensePost
	if defensive {
		if a, ok := m.ClosestTile(t, assets); ok {
			score -= m.ManhattanDist(t, a) * ai.WeightAssetProximity
		}
	}
	return score
}
