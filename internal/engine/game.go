// Package engine owns the canonical world state of one game and the tick
// loop that advances it. The engine is single-threaded and run-to-completion
// per tick: exactly one goroutine ever touches a Game, and every active
// execution is stepped once before the next tick begins. Race-freedom is
// structural, not lock-based.
package engine

import (
	"github.com/rs/zerolog"

	"github.com/openfrontio/OpenFrontIO-sub010/internal/prng"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/terrain"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/tuning"
)

// playerSeedStride decorrelates per-player prng streams derived from the
// session hash.
const playerSeedStride = 0x9e3779b97f4a7c15

type Config struct {
	SessionID string // stable game identifier; hashed into the base seed
	Tuning    tuning.Tuning
}

// Alliance is a mutual non-aggression pact between two players.
type Alliance struct {
	A, B        SmallID
	CreatedTick uint64
}

// AllianceRequest is a pending offer from one player to another; it expires
// after the tuned TTL if unanswered.
type AllianceRequest struct {
	From, To SmallID
	Tick     uint64
}

type Game struct {
	cfg Config
	tun tuning.Tuning
	log zerolog.Logger

	m     *terrain.Map
	owner []SmallID // per-tile owner, TerraNullius when unowned

	seed uint64

	players  []*Player // dense; index 0 is nil (terra nullius)
	byClient map[string]SmallID

	units      []*Unit
	nextUnitID uint32

	alliances []*Alliance
	requests  []*AllianceRequest

	execs   []Execution
	pending []Execution

	rand *prng.Rand

	tick uint64
}

func NewGame(cfg Config, m *terrain.Map, log zerolog.Logger) *Game {
	g := &Game{
		cfg:      cfg,
		tun:      cfg.Tuning,
		log:      log.With().Str("game", cfg.SessionID).Logger(),
		m:        m,
		owner:    make([]SmallID, m.NumTiles()),
		seed:     prng.SimHash(cfg.SessionID),
		players:  []*Player{nil},
		byClient: map[string]SmallID{},
	}
	g.rand = prng.New(g.seed)
	return g
}

func (g *Game) Map() *terrain.Map     { return g.m }
func (g *Game) Tuning() tuning.Tuning { return g.tun }
func (g *Game) Log() *zerolog.Logger  { return &g.log }
func (g *Game) Ticks() uint64         { return g.tick }
func (g *Game) Seed() uint64          { return g.seed }
func (g *Game) SessionID() string     { return g.cfg.SessionID }

// Rand is the engine-neutral stream for events not attributable to a single
// player, such as SAM interception rolls.
func (g *Game) Rand() *prng.Rand { return g.rand }

// UnitCost is the gold price of building kind at level 1.
func (g *Game) UnitCost(k UnitKind) int64 {
	switch k {
	case UnitCity:
		return g.tun.CostCity
	case UnitPort:
		return g.tun.CostPort
	case UnitDefensePost:
		return g.tun.CostDefensePost
	case UnitSAMLauncher:
		return g.tun.CostSAMLauncher
	case UnitMissileSilo:
		return g.tun.CostMissileSilo
	case UnitAtomBomb:
		return g.tun.CostAtomBomb
	case UnitHydrogenBomb:
		return g.tun.CostHydrogenBomb
	}
	return 0
}

// InSpawnPhase reports whether the initial setup window is still open.
func (g *Game) InSpawnPhase() bool {
	return g.tick < uint64(g.tun.SpawnPhaseTicks)
}

// --- players ---

// AddPlayer registers a player and assigns the next dense SmallID. The
// per-player prng stream derives from the session hash and the id, so every
// replica seeds it identically.
func (g *Game) AddPlayer(clientID, rawName, displayName string, typ PlayerType, team int) *Player {
	id := SmallID(len(g.players))
	p := &Player{
		id:                 id,
		clientID:           clientID,
		typ:                typ,
		team:               team,
		rawName:            rawName,
		displayName:        displayName,
		alive:              true,
		troopRatioPermille: 500,
		tileIdx:            map[terrain.TileRef]int{},
		relations:          map[SmallID]int{},
		embargoes:          map[SmallID]struct{}{},
		rand:               prng.New(g.seed + uint64(id)*playerSeedStride),
	}
	g.players = append(g.players, p)
	g.byClient[clientID] = id
	return p
}

// Players returns all players in dense-id order. Index order is the only
// sanctioned iteration order over players.
func (g *Game) Players() []*Player { return g.players[1:] }

func (g *Game) Player(id SmallID) *Player {
	if int(id) <= 0 || int(id) >= len(g.players) {
		return nil
	}
	return g.players[id]
}

func (g *Game) PlayerByClient(clientID string) (*Player, bool) {
	id, ok := g.byClient[clientID]
	if !ok {
		return nil, false
	}
	return g.players[id], true
}

// --- territory ---

func (g *Game) OwnerOf(t terrain.TileRef) SmallID { return g.owner[t] }

func (g *Game) OwnedBy(p *Player, t terrain.TileRef) bool {
	return g.owner[t] == p.id
}

// Conquer transfers a land tile to p, updating both players' tile lists.
func (g *Game) Conquer(p *Player, t terrain.TileRef) {
	if g.m.IsWater(t) {
		return
	}
	prev := g.owner[t]
	if prev == p.id {
		return
	}
	if prev != TerraNullius {
		loser := g.players[prev]
		loser.removeTile(t)
		if len(loser.tiles) == 0 {
			g.eliminate(loser)
		}
	}
	g.owner[t] = p.id
	p.addTile(t)
}

// Relinquish returns a tile to terra nullius.
func (g *Game) Relinquish(t terrain.TileRef) {
	prev := g.owner[t]
	if prev == TerraNullius {
		return
	}
	loser := g.players[prev]
	loser.removeTile(t)
	g.owner[t] = TerraNullius
	if len(loser.tiles) == 0 {
		g.eliminate(loser)
	}
}

func (g *Game) eliminate(p *Player) {
	if !p.alive {
		return
	}
	p.alive = false
	for _, u := range g.units {
		if u.owner == p.id && u.active && u.kind.IsStructure() {
			g.RemoveUnit(u)
		}
	}
	g.log.Info().Str("player", p.clientID).Msg("player eliminated")
}

// BorderTiles returns p's owned tiles that touch at least one tile p does
// not own, in owned-tile order.
func (g *Game) BorderTiles(p *Player) []terrain.TileRef {
	var border []terrain.TileRef
	var scratch []terrain.TileRef
	for _, t := range p.tiles {
		scratch = g.m.Neighbors(t, scratch[:0])
		for _, nb := range scratch {
			if g.owner[nb] != p.id {
				border = append(border, t)
				break
			}
		}
	}
	return border
}

// --- units ---

func (g *Game) AddUnit(p *Player, kind UnitKind, t terrain.TileRef) *Unit {
	g.nextUnitID++
	u := &Unit{
		id:     g.nextUnitID,
		kind:   kind,
		level:  1,
		owner:  p.id,
		tile:   t,
		active: true,
	}
	g.units = append(g.units, u)
	if kind.IsStructure() {
		p.buildCounts[kind]++
	}
	return u
}

func (g *Game) RemoveUnit(u *Unit) {
	if !u.active {
		return
	}
	u.active = false
	if u.kind.IsStructure() {
		if p := g.Player(u.owner); p != nil && p.buildCounts[u.kind] > 0 {
			p.buildCounts[u.kind]--
		}
	}
}

// Units returns all units (including inactive) in creation order.
func (g *Game) Units() []*Unit { return g.units }

// UnitsOwnedBy appends p's active units of kind to dst, in creation order.
func (g *Game) UnitsOwnedBy(p *Player, kind UnitKind, dst []*Unit) []*Unit {
	for _, u := range g.units {
		if u.active && u.owner == p.id && u.kind == kind {
			dst = append(dst, u)
		}
	}
	return dst
}

// --- alliances ---

func (g *Game) AlliedWith(a, b SmallID) bool {
	for _, al := range g.alliances {
		if (al.A == a && al.B == b) || (al.A == b && al.B == a) {
			return true
		}
	}
	return false
}

func (g *Game) RequestAlliance(from, to SmallID) {
	for _, r := range g.requests {
		if r.From == from && r.To == to {
			return
		}
	}
	g.requests = append(g.requests, &AllianceRequest{From: from, To: to, Tick: g.tick})
}

// RequestsTo lists pending alliance offers addressed to id, oldest first.
func (g *Game) RequestsTo(id SmallID) []*AllianceRequest {
	var out []*AllianceRequest
	for _, r := range g.requests {
		if r.To == id {
			out = append(out, r)
		}
	}
	return out
}

func (g *Game) PendingRequest(from, to SmallID) (*AllianceRequest, bool) {
	for _, r := range g.requests {
		if r.From == from && r.To == to {
			return r, true
		}
	}
	return nil, false
}

// ResolveAlliance answers a pending request. Accepting forms the alliance
// and lifts both relations; declining sours them slightly.
func (g *Game) ResolveAlliance(from, to SmallID, accept bool) {
	var kept []*AllianceRequest
	var found bool
	for _, r := range g.requests {
		if r.From == from && r.To == to {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	g.requests = kept
	if !found {
		return
	}
	a, b := g.Player(from), g.Player(to)
	if a == nil || b == nil {
		return
	}
	if accept {
		g.alliances = append(g.alliances, &Alliance{A: from, B: to, CreatedTick: g.tick})
		a.AdjustRelation(to, 40)
		b.AdjustRelation(from, 40)
	} else {
		a.AdjustRelation(to, -10)
	}
}

// BreakAlliance dissolves an existing pact; the breaker is branded a traitor
// and relations collapse.
func (g *Game) BreakAlliance(breaker, other SmallID) {
	var kept []*Alliance
	var found bool
	for _, al := range g.alliances {
		if (al.A == breaker && al.B == other) || (al.A == other && al.B == breaker) {
			found = true
			continue
		}
		kept = append(kept, al)
	}
	g.alliances = kept
	if !found {
		return
	}
	if p := g.Player(breaker); p != nil {
		p.traitor = true
	}
	if o := g.Player(other); o != nil {
		o.AdjustRelation(breaker, -80)
	}
}

// --- tick loop ---

// AddExecution queues an execution for admission at the next tick boundary.
// Work spawned mid-tick never runs in the tick that created it.
func (g *Game) AddExecution(e Execution) {
	g.pending = append(g.pending, e)
}

// ActiveExecutions exposes the live execution list so cancel intents can
// locate their target. Callers must not reorder it.
func (g *Game) ActiveExecutions() []Execution { return g.execs }

// ExecuteNextTick admits pending executions, steps every active execution
// once in creation order, sweeps the inactive, then applies per-tick economy
// regen. This is the only mutation entry point for canonical state.
func (g *Game) ExecuteNextTick() {
	admitted := g.pending
	g.pending = nil
	for _, e := range admitted {
		e.Init(g, g.tick)
	}
	g.execs = append(g.execs, admitted...)

	spawnPhase := g.InSpawnPhase()
	for _, e := range g.execs {
		if spawnPhase && !e.ActiveDuringSpawnPhase() {
			continue
		}
		if !e.IsActive() {
			continue
		}
		e.Step(g.tick)
	}

	kept := g.execs[:0]
	for _, e := range g.execs {
		if e.IsActive() {
			kept = append(kept, e)
		}
	}
	g.execs = kept

	g.regen()
	g.expireRequests()
	g.expireAlliances()
	g.tick++
}

// regen applies deterministic integer troop and gold growth.
func (g *Game) regen() {
	if g.InSpawnPhase() {
		return
	}
	for _, p := range g.Players() {
		if !p.alive {
			continue
		}
		maxTroops := g.tun.TroopBaseCap + g.tun.TroopsPerTileCap*int64(len(p.tiles))
		for _, u := range g.units {
			if u.active && u.owner == p.id && u.kind == UnitCity {
				maxTroops += g.tun.TroopBaseCap * int64(u.level) / 2
			}
		}
		if p.troops < maxTroops {
			growth := (maxTroops-p.troops)/g.tun.TroopGrowthDivisor + 1
			p.troops += growth
			if p.troops > maxTroops {
				p.troops = maxTroops
			}
		}
		gold := g.tun.GoldPerTick
		for _, u := range g.units {
			if u.active && u.owner == p.id && u.kind == UnitPort {
				gold += g.tun.GoldPerPortTick
			}
		}
		p.gold += gold
		p.expireRecentTargets(g.tick, g.tun.NukeRetargetCooldown)
	}
}

func (g *Game) expireRequests() {
	ttl := uint64(g.tun.AllianceRequestTTL)
	kept := g.requests[:0]
	for _, r := range g.requests {
		if g.tick-r.Tick <= ttl {
			kept = append(kept, r)
		}
	}
	g.requests = kept
}

// expireAlliances lapses pacts that have run their tuned duration. A lapse
// is not a betrayal: no traitor mark, relations stand. Zero disables expiry.
func (g *Game) expireAlliances() {
	dur := uint64(g.tun.AllianceDuration)
	if dur == 0 {
		return
	}
	kept := g.alliances[:0]
	for _, al := range g.alliances {
		if g.tick-al.CreatedTick < dur {
			kept = append(kept, al)
		}
	}
	g.alliances = kept
}
