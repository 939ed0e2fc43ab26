package engine

import (
	"github.com/openfrontio/OpenFrontIO-sub010/internal/prng"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/terrain"
)

// SmallID is a player's compact per-game index into the engine's dense
// arrays. 0 is reserved for terra nullius. It is distinct from the stable
// external client identifier carried on the wire.
type SmallID uint16

const TerraNullius SmallID = 0

type PlayerType uint8

const (
	PlayerTypeHuman PlayerType = iota
	PlayerTypeBot
	PlayerTypeNation
)

func (t PlayerType) String() string {
	switch t {
	case PlayerTypeHuman:
		return "human"
	case PlayerTypeBot:
		return "bot"
	case PlayerTypeNation:
		return "nation"
	}
	return "unknown"
}

// RecentTarget records a nuke aim point so AI targeting can avoid hammering
// the same spot inside the cooldown window.
type RecentTarget struct {
	Tile terrain.TileRef
	Tick uint64
}

type Player struct {
	id       SmallID
	clientID string
	typ      PlayerType
	team     int // 0 in free-for-all

	// Display-only. rawName is the name as the acting client submitted it;
	// displayName is the deterministically filtered form every other replica
	// renders. Neither participates in the state digest, so the asymmetry
	// cannot desynchronize replicas.
	rawName     string
	displayName string

	alive   bool
	traitor bool

	troops             int64
	gold               int64
	troopRatioPermille int

	// tiles is insertion-ordered; tileIdx is membership/lookup only and is
	// never iterated.
	tiles   []terrain.TileRef
	tileIdx map[terrain.TileRef]int

	relations map[SmallID]int // lookup only; iterate via Game.Players order
	target    SmallID
	embargoes map[SmallID]struct{} // lookup only

	// Per-player AI state. Kept on the player, not in globals, so world
	// state stays fully serializable and replay-safe.
	rand          *prng.Rand
	launchCounts  [unitKindCount]int
	buildCounts   [unitKindCount]int
	recentTargets []RecentTarget
}

func (p *Player) ID() SmallID         { return p.id }
func (p *Player) ClientID() string    { return p.clientID }
func (p *Player) Type() PlayerType    { return p.typ }
func (p *Player) Team() int           { return p.team }
func (p *Player) Alive() bool         { return p.alive }
func (p *Player) Traitor() bool       { return p.traitor }
func (p *Player) Troops() int64       { return p.troops }
func (p *Player) Gold() int64         { return p.gold }
func (p *Player) RawName() string     { return p.rawName }
func (p *Player) DisplayName() string { return p.displayName }
func (p *Player) Rand() *prng.Rand    { return p.rand }
func (p *Player) Target() SmallID     { return p.target }
func (p *Player) NumTiles() int       { return len(p.tiles) }
func (p *Player) IsAI() bool          { return p.typ != PlayerTypeHuman }

func (p *Player) TroopRatioPermille() int { return p.troopRatioPermille }
func (p *Player) SetTroopRatioPermille(r int) {
	if r < 0 {
		r = 0
	}
	if r > 1000 {
		r = 1000
	}
	p.troopRatioPermille = r
}

func (p *Player) SetTarget(id SmallID) { p.target = id }

func (p *Player) AddTroops(n int64) {
	p.troops += n
	if p.troops < 0 {
		p.troops = 0
	}
}

func (p *Player) AddGold(n int64) {
	p.gold += n
	if p.gold < 0 {
		p.gold = 0
	}
}

// Tiles returns the owned tiles in insertion order. Callers must not mutate.
func (p *Player) Tiles() []terrain.TileRef { return p.tiles }

func (p *Player) Owns(t terrain.TileRef) bool {
	_, ok := p.tileIdx[t]
	return ok
}

func (p *Player) addTile(t terrain.TileRef) {
	if _, ok := p.tileIdx[t]; ok {
		return
	}
	p.tileIdx[t] = len(p.tiles)
	p.tiles = append(p.tiles, t)
}

// removeTile swap-removes; the reordering is the same on every replica
// because removals happen in identical sequence.
func (p *Player) removeTile(t terrain.TileRef) {
	i, ok := p.tileIdx[t]
	if !ok {
		return
	}
	last := len(p.tiles) - 1
	p.tiles[i] = p.tiles[last]
	p.tileIdx[p.tiles[i]] = i
	p.tiles = p.tiles[:last]
	delete(p.tileIdx, t)
}

// Relation returns the accumulated relation score toward other. Zero is
// neutral; negative is hostile.
func (p *Player) Relation(other SmallID) int { return p.relations[other] }

func (p *Player) AdjustRelation(other SmallID, delta int) {
	p.relations[other] += delta
}

func (p *Player) Embargoed(other SmallID) bool {
	_, ok := p.embargoes[other]
	return ok
}

func (p *Player) SetEmbargo(other SmallID, on bool) {
	if on {
		p.embargoes[other] = struct{}{}
	} else {
		delete(p.embargoes, other)
	}
}

func (p *Player) LaunchCount(k UnitKind) int { return p.launchCounts[k] }
func (p *Player) RecordLaunch(k UnitKind)    { p.launchCounts[k]++ }

func (p *Player) BuildCount(k UnitKind) int { return p.buildCounts[k] }

func (p *Player) RecentTargets() []RecentTarget { return p.recentTargets }

func (p *Player) RecordNukeTarget(t terrain.TileRef, tick uint64) {
	p.recentTargets = append(p.recentTargets, RecentTarget{Tile: t, Tick: tick})
}

// expireRecentTargets drops entries older than window ticks.
func (p *Player) expireRecentTargets(tick uint64, window int) {
	keep := p.recentTargets[:0]
	for _, rt := range p.recentTargets {
		if tick-rt.Tick <= uint64(window) {
			keep = append(keep, rt)
		}
	}
	p.recentTargets = keep
}
