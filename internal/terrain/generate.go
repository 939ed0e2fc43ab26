package terrain

import (
	"fmt"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Generation tuning. The noise thresholds were picked so roughly 40% of a
// generated map is land in connected continents rather than speckle.
const (
	genContinentScale = 48.0
	genDetailScale    = 12.0
	genLandThreshold  = 0.08
	genDetailWeight   = 0.35
)

// Generate builds a map from an opensimplex elevation field. The result is a
// pure function of (width, height, seed): replicas generating from the same
// parameters hold identical grids.
func Generate(width, height int, seed int64) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("terrain: invalid dimensions %dx%d", width, height)
	}
	m := &Map{
		Width:     width,
		Height:    height,
		land:      make([]bool, width*height),
		elevation: make([]uint8, width*height),
	}

	continents := opensimplex.NewNormalized(seed)
	detail := opensimplex.NewNormalized(seed + 1)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			t := m.Ref(x, y)
			base := continents.Eval2(float64(x)/genContinentScale, float64(y)/genContinentScale)
			fine := detail.Eval2(float64(x)/genDetailScale, float64(y)/genDetailScale)
			h := base + genDetailWeight*(fine-0.5)
			if h > 0.5+genLandThreshold {
				m.land[t] = true
				e := (h - (0.5 + genLandThreshold)) * 2
				if e > 1 {
					e = 1
				}
				m.elevation[t] = uint8(e * 255)
			}
		}
	}
	m.finalize()
	return m, nil
}

// ParseASCII builds a map from a text fixture. '#' is land, '^' is elevated
// land, '.' is water. Used by tests and small scenario setups.
func ParseASCII(rows []string) (*Map, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("terrain: empty fixture")
	}
	width := len(rows[0])
	m := &Map{
		Width:     width,
		Height:    len(rows),
		land:      make([]bool, width*len(rows)),
		elevation: make([]uint8, width*len(rows)),
	}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("terrain: ragged fixture at row %d", y)
		}
		for x, ch := range row {
			t := m.Ref(x, y)
			switch ch {
			case '#':
				m.land[t] = true
				m.elevation[t] = 64
			case '^':
				m.land[t] = true
				m.elevation[t] = 200
			case '.':
			default:
				return nil, fmt.Errorf("terrain: unknown fixture rune %q at (%d,%d)", ch, x, y)
			}
		}
	}
	m.finalize()
	return m, nil
}
