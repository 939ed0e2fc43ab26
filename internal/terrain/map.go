// Package terrain holds the static tile model: a dense width x height grid
// addressed by TileRef handles, with neighbor/distance primitives and the
// land/water/shore predicates the execution and AI layers query every tick.
// The grid is toroidal in x only: columns wrap, rows do not.
package terrain

// TileRef is a compact handle into the flattened grid. It is always within
// [0, Width*Height) and stable for the lifetime of the map.
type TileRef int

// Cell is the (x, y) form of a TileRef.
type Cell struct {
	X, Y int
}

type Map struct {
	Width  int
	Height int

	land       []bool
	shore      []bool
	oceanShore []bool
	elevation  []uint8
}

func (m *Map) NumTiles() int { return m.Width * m.Height }

func (m *Map) Ref(x, y int) TileRef { return TileRef(y*m.Width + x) }

func (m *Map) CellOf(t TileRef) Cell {
	return Cell{X: int(t) % m.Width, Y: int(t) / m.Width}
}

func (m *Map) RefOf(c Cell) TileRef { return m.Ref(c.X, c.Y) }

func (m *Map) Valid(t TileRef) bool { return t >= 0 && int(t) < m.NumTiles() }

func (m *Map) IsLand(t TileRef) bool       { return m.land[t] }
func (m *Map) IsWater(t TileRef) bool      { return !m.land[t] }
func (m *Map) IsShore(t TileRef) bool      { return m.shore[t] }
func (m *Map) IsOceanShore(t TileRef) bool { return m.oceanShore[t] }
func (m *Map) Elevation(t TileRef) uint8   { return m.elevation[t] }

// Neighbors appends the adjacent tiles of t to dst and returns it. The
// enumeration order is fixed (up, down, left, right, with x wrapping) because
// search tie-breaks downstream depend on it.
func (m *Map) Neighbors(t TileRef, dst []TileRef) []TileRef {
	c := m.CellOf(t)
	if c.Y > 0 {
		dst = append(dst, t-TileRef(m.Width))
	}
	if c.Y < m.Height-1 {
		dst = append(dst, t+TileRef(m.Width))
	}
	if c.X > 0 {
		dst = append(dst, t-1)
	} else {
		dst = append(dst, t+TileRef(m.Width-1))
	}
	if c.X < m.Width-1 {
		dst = append(dst, t+1)
	} else {
		dst = append(dst, t-TileRef(m.Width-1))
	}
	return dst
}

// wrapDX is the x distance accounting for the toroidal wrap.
func (m *Map) wrapDX(x1, x2 int) int {
	dx := x1 - x2
	if dx < 0 {
		dx = -dx
	}
	if wrapped := m.Width - dx; wrapped < dx {
		dx = wrapped
	}
	return dx
}

func (m *Map) ManhattanDist(a, b TileRef) int {
	ca, cb := m.CellOf(a), m.CellOf(b)
	dy := ca.Y - cb.Y
	if dy < 0 {
		dy = -dy
	}
	return m.wrapDX(ca.X, cb.X) + dy
}

func (m *Map) EuclideanDistSquared(a, b TileRef) int {
	ca, cb := m.CellOf(a), m.CellOf(b)
	dx := m.wrapDX(ca.X, cb.X)
	dy := ca.Y - cb.Y
	return dx*dx + dy*dy
}

// finalize derives shore flags from the land mask. A shore tile is land
// adjacent to any water; an ocean shore tile is land adjacent to the largest
// connected water body. Water bodies are labeled by flood fill in ascending
// tile order, so the labeling is reproducible.
func (m *Map) finalize() {
	n := m.NumTiles()
	m.shore = make([]bool, n)
	m.oceanShore = make([]bool, n)

	body := make([]int32, n)
	for i := range body {
		body[i] = -1
	}
	var sizes []int
	var queue []TileRef
	var scratch []TileRef
	for i := 0; i < n; i++ {
		t := TileRef(i)
		if m.land[t] || body[t] >= 0 {
			continue
		}
		label := int32(len(sizes))
		size := 0
		body[t] = label
		queue = append(queue[:0], t)
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			size++
			scratch = m.Neighbors(cur, scratch[:0])
			for _, nb := range scratch {
				if !m.land[nb] && body[nb] < 0 {
					body[nb] = label
					queue = append(queue, nb)
				}
			}
		}
		sizes = append(sizes, size)
	}

	// Largest body is the ocean; ties resolve to the first-labeled body.
	ocean := int32(-1)
	best := 0
	for label, size := range sizes {
		if size > best {
			best = size
			ocean = int32(label)
		}
	}

	for i := 0; i < n; i++ {
		t := TileRef(i)
		if !m.land[t] {
			continue
		}
		scratch = m.Neighbors(t, scratch[:0])
		for _, nb := range scratch {
			if m.land[nb] {
				continue
			}
			m.shore[t] = true
			if body[nb] == ocean {
				m.oceanShore[t] = true
			}
		}
	}
}
