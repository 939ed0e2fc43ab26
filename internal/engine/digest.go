package engine

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
)

// Hash serializes the canonical state (tick, tile ownership, players,
// units, alliances) into a sha256 digest. Replay and multiplayer tooling
// compare digests per tick to detect desynchronization; two replicas fed the
// same seed and turn stream must agree on every digest forever.
//
// Display-bound fields (raw and filtered names) are deliberately excluded:
// name filtering is asymmetric across replicas and must never influence
// gameplay state.
func (g *Game) Hash() string {
	h := sha256.New()
	writeU64(h, g.tick)
	writeU64(h, g.seed)

	buf := make([]byte, 2*len(g.owner))
	for i, o := range g.owner {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(o))
	}
	h.Write(buf)

	writeU64(h, uint64(len(g.players)-1))
	for _, p := range g.Players() {
		writeU64(h, uint64(p.id))
		writeBool(h, p.alive)
		writeBool(h, p.traitor)
		writeU64(h, uint64(p.troops))
		writeU64(h, uint64(p.gold))
		writeU64(h, uint64(p.troopRatioPermille))
		writeU64(h, uint64(p.target))
		writeU64(h, uint64(len(p.tiles)))
		for _, t := range p.tiles {
			writeU64(h, uint64(t))
		}
		// Relations and embargoes live in maps; index them through the
		// dense player order so traversal never depends on map iteration.
		for _, other := range g.Players() {
			writeU64(h, uint64(int64(p.relations[other.id])))
			writeBool(h, p.Embargoed(other.id))
		}
		for _, c := range p.launchCounts {
			writeU64(h, uint64(c))
		}
		for _, c := range p.buildCounts {
			writeU64(h, uint64(c))
		}
		writeU64(h, uint64(len(p.recentTargets)))
		for _, rt := range p.recentTargets {
			writeU64(h, uint64(rt.Tile))
			writeU64(h, rt.Tick)
		}
	}

	writeU64(h, uint64(len(g.units)))
	for _, u := range g.units {
		writeU64(h, uint64(u.id))
		writeU64(h, uint64(u.kind))
		writeU64(h, uint64(u.level))
		writeU64(h, uint64(u.owner))
		writeU64(h, uint64(u.tile))
		writeBool(h, u.active)
	}

	writeU64(h, uint64(len(g.alliances)))
	for _, al := range g.alliances {
		writeU64(h, uint64(al.A))
		writeU64(h, uint64(al.B))
		writeU64(h, al.CreatedTick)
	}
	writeU64(h, uint64(len(g.requests)))
	for _, r := range g.requests {
		writeU64(h, uint64(r.From))
		writeU64(h, uint64(r.To))
		writeU64(h, r.Tick)
	}

	return hex.EncodeToString(h.Sum(nil))
}

func writeU64(h hash.Hash, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	h.Write(b[:])
}

func writeBool(h hash.Hash, v bool) {
	if v {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
}
