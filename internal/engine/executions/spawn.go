package executions

import (
	"github.com/openfrontio/OpenFrontIO-sub010/internal/engine"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/terrain"
)

// SpawnExecution claims a starting blob of territory for a new player. It is
// the only execution kind allowed to run during the spawn phase.
type SpawnExecution struct {
	clientID    string
	rawName     string
	displayName string
	typ         engine.PlayerType
	team        int
	tile        terrain.TileRef

	g      *engine.Game
	player *engine.Player
	active bool
}

func (e *SpawnExecution) ActiveDuringSpawnPhase() bool { return true }

func (e *SpawnExecution) Init(g *engine.Game, tick uint64) {
	e.g = g
	e.active = true
	if p, ok := g.PlayerByClient(e.clientID); ok {
		e.player = p
		return
	}
	e.player = g.AddPlayer(e.clientID, e.rawName, e.displayName, e.typ, e.team)
}

func (e *SpawnExecution) Step(tick uint64) {
	defer func() { e.active = false }()

	m := e.g.Map()
	if !m.Valid(e.tile) || m.IsWater(e.tile) || e.g.OwnerOf(e.tile) != engine.TerraNullius {
		e.g.Log().Warn().Str("client", e.clientID).Int("tile", int(e.tile)).
			Msg("spawn tile unusable; player enters with no territory")
		return
	}

	radius := e.g.Tuning().SpawnBlobRadius
	blob := m.BFS(e.tile, func(t terrain.TileRef, dist int) bool {
		return dist <= radius && m.IsLand(t) && e.g.OwnerOf(t) == engine.TerraNullius
	})
	for _, t := range blob {
		e.g.Conquer(e.player, t)
	}
	e.player.AddTroops(e.g.Tuning().StartTroops - e.player.Troops())
}

func (e *SpawnExecution) IsActive() bool { return e.active }
