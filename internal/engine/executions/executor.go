// Package executions translates validated intents and AI decisions into the
// engine's units of work. The Executor is the only path from untrusted input
// to canonical state: it resolves players, checks claimed identities, and
// degrades anything invalid to a no-op so one bad client can never abort the
// shared simulation.
package executions

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/openfrontio/OpenFrontIO-sub010/internal/ai"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/engine"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/prng"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/protocol"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/sanitize"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/terrain"
)

// botSpawnMinDist is the minimum pairwise Manhattan distance between bot
// spawn points.
const botSpawnMinDist = 30

// spawnAttempts bounds the rejection sampling per bot spawn.
const spawnAttempts = 500

var botNames = []string{
	"Barbarossa", "Ironside", "Vandal", "Corsair", "Mameluke",
	"Hussar", "Janissary", "Cossack", "Legionary", "Hoplite",
	"Berserker", "Templar", "Saracen", "Condottiere", "Landsknecht",
}

var nationNames = []string{
	"Arcadia", "Borduria", "Carpathia", "Drakonia", "Elbonia",
	"Florin", "Grand Fenwick", "Illyria", "Krakozhia", "Latveria",
	"Molvania", "Novistrana", "Ruritania", "Syldavia", "Zubrowka",
}

type Executor struct {
	g   *engine.Game
	log zerolog.Logger

	// Dedicated streams derived from the session hash with fixed offsets,
	// so bot rosters and names agree across replicas without consuming the
	// game's neutral stream.
	botRand    *prng.Rand
	nationRand *prng.Rand
	nameRand   *prng.Rand
}

func NewExecutor(g *engine.Game) *Executor {
	base := prng.SimHash(g.SessionID())
	return &Executor{
		g:          g,
		log:        g.Log().With().Str("component", "executor").Logger(),
		botRand:    prng.New(base + prng.OffsetBots),
		nationRand: prng.New(base + prng.OffsetNations),
		nameRand:   prng.New(base + prng.OffsetNames),
	}
}

// CreateExecutions maps a turn's intents to executions preserving intent
// order exactly. Combat and construction outcomes can depend on which of two
// conflicting same-tick intents applies first, so the order is part of the
// engine's contract.
func (x *Executor) CreateExecutions(turn protocol.Turn) []engine.Execution {
	out := make([]engine.Execution, 0, len(turn.Intents))
	for _, in := range turn.Intents {
		out = append(out, x.CreateExecution(in))
	}
	return out
}

// CreateExecution validates one intent and constructs the matching
// execution. A reference to a nonexistent player (for any kind other than
// spawn) degrades to a no-op with a logged warning. Identity spoofing is
// not checked here: the transport stamps the socket's client id onto every
// intent before it reaches the engine. An unrecognized intent type panics:
// it signals a protocol version mismatch, which is a deployment bug, not
// player input.
func (x *Executor) CreateExecution(in protocol.Intent) engine.Execution {
	if in.Type == protocol.IntentSpawn {
		return x.createSpawn(in)
	}

	p, ok := x.g.PlayerByClient(in.ClientID)
	if !ok {
		x.log.Warn().Str("client", in.ClientID).Str("intent", in.Type).
			Msg("intent references unknown player; degrading to no-op")
		return &NoOpExecution{}
	}

	switch in.Type {
	case protocol.IntentAttack:
		return NewAttackExecution(p, x.resolveTarget(in.TargetID), in.Troops)
	case protocol.IntentBoatAttack:
		return NewTransportExecution(p, x.resolveTarget(in.TargetID), terrain.TileRef(in.Tile), in.Troops)
	case protocol.IntentAllianceRequest:
		return &AllianceRequestExecution{requester: p, target: x.resolveTarget(in.TargetID)}
	case protocol.IntentAllianceReply:
		return &AllianceReplyExecution{responder: p, requester: x.resolveTarget(in.TargetID), accept: in.Accept}
	case protocol.IntentBreakAlliance:
		return &BreakAllianceExecution{breaker: p, other: x.resolveTarget(in.TargetID)}
	case protocol.IntentBuild:
		kind, ok := parseUnitKind(in.Unit)
		if !ok {
			x.log.Warn().Str("client", in.ClientID).Str("unit", in.Unit).
				Msg("build intent names unknown unit; degrading to no-op")
			return &NoOpExecution{}
		}
		return &ConstructionExecution{player: p, kind: kind, tile: terrain.TileRef(in.Tile)}
	case protocol.IntentLaunchNuke:
		kind := engine.UnitAtomBomb
		if in.Unit == engine.UnitHydrogenBomb.String() {
			kind = engine.UnitHydrogenBomb
		}
		return NewNukeExecution(p, kind, terrain.TileRef(in.Tile))
	case protocol.IntentEmbargo:
		return &EmbargoExecution{player: p, target: x.resolveTarget(in.TargetID), on: in.Embargo}
	case protocol.IntentSetTarget:
		return &SetTargetExecution{player: p, target: x.resolveTarget(in.TargetID)}
	case protocol.IntentTroopRatio:
		return &TroopRatioExecution{player: p, ratioPermille: in.RatioPermille}
	case protocol.IntentCancelAttack:
		return &CancelAttackExecution{player: p}
	case protocol.IntentCancelBoat:
		return &CancelBoatExecution{player: p}
	}
	panic(fmt.Sprintf("executions: unrecognized intent type %q (protocol version mismatch)", in.Type))
}

func (x *Executor) createSpawn(in protocol.Intent) engine.Execution {
	if _, exists := x.g.PlayerByClient(in.ClientID); exists {
		x.log.Warn().Str("client", in.ClientID).Msg("duplicate spawn; degrading to no-op")
		return &NoOpExecution{}
	}
	// Asymmetric name handling: the acting client keeps the raw name it
	// chose; every other replica derives the filtered form from the same
	// deterministic rule. Both values ride on the player as display-only
	// data and never reach the state digest.
	return &SpawnExecution{
		clientID:    in.ClientID,
		rawName:     in.Name,
		displayName: sanitize.DisplayName(in.Name),
		typ:         engine.PlayerTypeHuman,
		tile:        terrain.TileRef(in.Tile),
	}
}

// resolveTarget maps an external client id to a dense player id, or
// TerraNullius when absent. Executions treat an unresolvable target as "no
// specific opponent", which each kind handles as its own degenerate case.
func (x *Executor) resolveTarget(clientID string) engine.SmallID {
	if clientID == "" {
		return engine.TerraNullius
	}
	p, ok := x.g.PlayerByClient(clientID)
	if !ok {
		return engine.TerraNullius
	}
	return p.ID()
}

// SpawnBots synthesizes count bot players with deterministic spawn tiles
// (pairwise at least botSpawnMinDist apart) and names, all drawn from the
// bot stream so every replica produces the identical roster. Returns the
// executions to admit; fewer than count when the map runs out of room.
func (x *Executor) SpawnBots(count int) []engine.Execution {
	land := landTiles(x.g.Map())
	var out []engine.Execution
	var taken []terrain.TileRef
	for i := 0; i < count; i++ {
		tile, ok := ai.PickSpawnTile(x.g.Map(), x.botRand, land, taken, botSpawnMinDist, spawnAttempts)
		if !ok {
			x.log.Warn().Int("placed", i).Int("requested", count).
				Msg("no room for more bot spawns")
			break
		}
		taken = append(taken, tile)
		name := fmt.Sprintf("%s %d", prng.RandElement(x.nameRand, botNames), i+1)
		clientID := fmt.Sprintf("bot-%d", i+1)
		out = append(out,
			&SpawnExecution{
				clientID:    clientID,
				rawName:     name,
				displayName: name,
				typ:         engine.PlayerTypeBot,
				tile:        tile,
			},
			&BotExecution{clientID: clientID},
		)
	}
	return out
}

// SynthesizeNations creates AI-nation players, the stronger scripted
// opponents. Same determinism contract as SpawnBots, on the nation stream.
func (x *Executor) SynthesizeNations(count int) []engine.Execution {
	land := landTiles(x.g.Map())
	var out []engine.Execution
	var taken []terrain.TileRef
	for i := 0; i < count; i++ {
		tile, ok := ai.PickSpawnTile(x.g.Map(), x.nationRand, land, taken, botSpawnMinDist, spawnAttempts)
		if !ok {
			x.log.Warn().Int("placed", i).Int("requested", count).
				Msg("no room for more nation spawns")
			break
		}
		taken = append(taken, tile)
		name := nationNames[(i+x.nameRand.NextInt(0, len(nationNames)))%len(nationNames)]
		clientID := fmt.Sprintf("nation-%d", i+1)
		out = append(out,
			&SpawnExecution{
				clientID:    clientID,
				rawName:     name,
				displayName: name,
				typ:         engine.PlayerTypeNation,
				tile:        tile,
			},
			&NationExecution{clientID: clientID},
		)
	}
	return out
}

// landTiles lists land tiles in ascending TileRef order.
func landTiles(m *terrain.Map) []terrain.TileRef {
	var out []terrain.TileRef
	for i := 0; i < m.NumTiles(); i++ {
		if m.IsLand(terrain.TileRef(i)) {
			out = append(out, terrain.TileRef(i))
		}
	}
	return out
}

func parseUnitKind(s string) (engine.UnitKind, bool) {
	for _, k := range []engine.UnitKind{
		engine.UnitCity, engine.UnitPort, engine.UnitDefensePost,
		engine.UnitSAMLauncher, engine.UnitMissileSilo,
	} {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}
