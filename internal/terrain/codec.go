package terrain

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// Tile ids for the wire form: 0 is water, 1+e is land at elevation e. The
// ids run-length encode well because maps are large contiguous regions.

// Encode serializes the tile grid as base64(varint pairs), each pair an
// (id, run length). Replay logs embed this so a recording is self-contained.
func (m *Map) Encode() string {
	var buf bytes.Buffer
	var tmp [binary.MaxVarintLen64]byte

	id := func(t TileRef) uint64 {
		if !m.land[t] {
			return 0
		}
		return 1 + uint64(m.elevation[t])
	}

	n := m.NumTiles()
	for i := 0; i < n; {
		v := id(TileRef(i))
		run := 1
		for j := i + 1; j < n && id(TileRef(j)) == v; j++ {
			run++
		}
		k := binary.PutUvarint(tmp[:], v)
		buf.Write(tmp[:k])
		k = binary.PutUvarint(tmp[:], uint64(run))
		buf.Write(tmp[:k])
		i += run
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

// Decode rebuilds a map from its Encode form. Shore derivation runs again,
// so a decoded map is indistinguishable from the original.
func Decode(width, height int, b64 string) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("terrain: invalid dimensions %dx%d", width, height)
	}
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("terrain: %w", err)
	}

	n := width * height
	m := &Map{
		Width:     width,
		Height:    height,
		land:      make([]bool, n),
		elevation: make([]uint8, n),
	}
	at := 0
	for i := 0; i < len(raw); {
		v, k := binary.Uvarint(raw[i:])
		if k <= 0 {
			return nil, fmt.Errorf("terrain: bad varint at byte %d", i)
		}
		i += k
		run, k := binary.Uvarint(raw[i:])
		if k <= 0 {
			return nil, fmt.Errorf("terrain: bad varint at byte %d", i)
		}
		i += k
		if v > 256 {
			return nil, fmt.Errorf("terrain: tile id out of range: %d", v)
		}
		if at+int(run) > n {
			return nil, fmt.Errorf("terrain: runs exceed %d tiles", n)
		}
		for j := 0; j < int(run); j++ {
			if v > 0 {
				m.land[at] = true
				m.elevation[at] = uint8(v - 1)
			}
			at++
		}
	}
	if at != n {
		return nil, fmt.Errorf("terrain: runs cover %d of %d tiles", at, n)
	}
	m.finalize()
	return m, nil
}
