// Package ai holds the decision procedures behind bot and nation players.
// Every function here is a pure function of (current world state, the acting
// player's own prng stream); nothing reads the clock or iterates an
// unordered container, which keeps AI decisions bit-identical on every
// replica.
package ai

import (
	"github.com/openfrontio/OpenFrontIO-sub010/internal/prng"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/terrain"
)

// PickSpawnTile samples candidate land tiles and returns the first one at
// least minDist Manhattan away from every tile in taken. Shore tiles are
// preferred: a shore candidate is accepted immediately, an inland candidate
// only once the attempt budget is half spent. Returns false when the budget
// runs out, which callers treat as "map too crowded".
func PickSpawnTile(m *terrain.Map, rand *prng.Rand, landTiles []terrain.TileRef, taken []terrain.TileRef, minDist, attempts int) (terrain.TileRef, bool) {
	if len(landTiles) == 0 {
		return 0, false
	}
	for i := 0; i < attempts; i++ {
		t := prng.RandElement(rand, landTiles)
		if !m.IsShore(t) && i < attempts/2 {
			continue
		}
		ok := true
		for _, other := range taken {
			if m.ManhattanDist(t, other) < minDist {
				ok = false
				break
			}
		}
		if ok {
			return t, true
		}
	}
	return 0, false
}
