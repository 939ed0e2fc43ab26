package terrain

// Search helpers. All of them traverse with an explicit FIFO queue and an
// insertion-ordered visited mask: several callers depend on which of two
// equidistant qualifying tiles is discovered first, so the traversal order is
// part of the contract. Ties always resolve to the tile encountered first.

// BFS expands outward from start, visiting every tile for which pred returns
// true. pred receives the tile and its BFS distance from start; returning
// false stops expansion through (and collection of) that tile. The returned
// slice lists visited tiles in discovery order, starting with start itself
// (if accepted at distance 0).
func (m *Map) BFS(start TileRef, pred func(t TileRef, dist int) bool) []TileRef {
	visited := make([]bool, m.NumTiles())
	var order []TileRef
	type entry struct {
		t    TileRef
		dist int
	}
	queue := []entry{{start, 0}}
	visited[start] = true
	var scratch []TileRef
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if !pred(cur.t, cur.dist) {
			continue
		}
		order = append(order, cur.t)
		scratch = m.Neighbors(cur.t, scratch[:0])
		for _, nb := range scratch {
			if !visited[nb] {
				visited[nb] = true
				queue = append(queue, entry{nb, cur.dist + 1})
			}
		}
	}
	return order
}

// ClosestTile returns the candidate nearest to from by Manhattan distance.
// Ties resolve to the earliest candidate in slice order.
func (m *Map) ClosestTile(from TileRef, candidates []TileRef) (TileRef, bool) {
	if len(candidates) == 0 {
		return 0, false
	}
	best := candidates[0]
	bestD := m.ManhattanDist(from, best)
	for _, c := range candidates[1:] {
		if d := m.ManhattanDist(from, c); d < bestD {
			best, bestD = c, d
		}
	}
	return best, true
}

// ClosestPairAcrossSets returns the (a, b) pair with minimal Manhattan
// distance, scanning a in the outer loop and b in the inner loop. Ties
// resolve to the first-encountered pair under that scan order.
func (m *Map) ClosestPairAcrossSets(as, bs []TileRef) (TileRef, TileRef, bool) {
	if len(as) == 0 || len(bs) == 0 {
		return 0, 0, false
	}
	bestA, bestB := as[0], bs[0]
	bestD := m.ManhattanDist(bestA, bestB)
	for _, a := range as {
		for _, b := range bs {
			if d := m.ManhattanDist(a, b); d < bestD {
				bestA, bestB, bestD = a, b, d
			}
		}
	}
	return bestA, bestB, true
}

// Path returns the shortest route from src to dst moving only through tiles
// accepted by passable (dst itself must be passable; src is always allowed).
// The route includes both endpoints. Equal-length routes resolve the same way
// on every replica because expansion follows the fixed neighbor order.
func (m *Map) Path(src, dst TileRef, passable func(TileRef) bool) ([]TileRef, bool) {
	if src == dst {
		return []TileRef{src}, true
	}
	parent := make([]TileRef, m.NumTiles())
	visited := make([]bool, m.NumTiles())
	visited[src] = true
	queue := []TileRef{src}
	var scratch []TileRef
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		scratch = m.Neighbors(cur, scratch[:0])
		for _, nb := range scratch {
			if visited[nb] || !passable(nb) {
				continue
			}
			visited[nb] = true
			parent[nb] = cur
			if nb == dst {
				var rev []TileRef
				for t := dst; ; t = parent[t] {
					rev = append(rev, t)
					if t == src {
						break
					}
				}
				route := make([]TileRef, len(rev))
				for i, t := range rev {
					route[len(rev)-1-i] = t
				}
				return route, true
			}
			queue = append(queue, nb)
		}
	}
	return nil, false
}

// ShoreSearch parameterizes ClosestShoreTowardTarget with the ownership
// state the terrain layer does not itself hold.
type ShoreSearch struct {
	AttackerOwns   func(TileRef) bool
	DefenderOwns   func(TileRef) bool // nil when no defender constraint
	AttackerBorder []TileRef          // insertion-ordered border tiles
}

// ShorePair is a boat route endpoint pair: the landing shore and the
// attacker border tile it was matched against.
type ShorePair struct {
	Shore  TileRef
	Border TileRef
}

// ClosestShoreTowardTarget finds a landing shore near target for a boat
// launched by the attacker. Phase 1 normalizes a water target to the nearest
// shore tile not owned by the attacker. Phase 2 collects qualifying shore
// tiles within searchDist of the normalized target and pairs the set against
// the attacker's border tiles, minimizing Manhattan distance. A false return
// is a normal outcome (no reachable shore), not an error; callers drop the
// requested move.
func (m *Map) ClosestShoreTowardTarget(target TileRef, searchDist int, s ShoreSearch) (ShorePair, bool) {
	normalized := target
	if m.IsWater(target) {
		found := false
		m.BFS(target, func(t TileRef, dist int) bool {
			if found || dist > searchDist {
				return false
			}
			if m.IsShore(t) && !s.AttackerOwns(t) {
				normalized = t
				found = true
				return false
			}
			return true
		})
		if !found {
			return ShorePair{}, false
		}
	}

	var candidates []TileRef
	m.BFS(normalized, func(t TileRef, dist int) bool {
		if dist > searchDist {
			return false
		}
		if m.IsShore(t) && !s.AttackerOwns(t) {
			if s.DefenderOwns == nil || s.DefenderOwns(t) {
				candidates = append(candidates, t)
			}
		}
		return true
	})
	if len(candidates) == 0 {
		return ShorePair{}, false
	}

	shore, border, ok := m.ClosestPairAcrossSets(candidates, s.AttackerBorder)
	if !ok {
		return ShorePair{}, false
	}
	return ShorePair{Shore: shore, Border: border}, true
}
