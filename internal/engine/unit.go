package engine

import "github.com/openfrontio/OpenFrontIO-sub010/internal/terrain"

type UnitKind uint8

const (
	UnitCity UnitKind = iota
	UnitPort
	UnitDefensePost
	UnitSAMLauncher
	UnitMissileSilo
	UnitAtomBomb
	UnitHydrogenBomb
	UnitTradeShip
	UnitTransportShip

	unitKindCount = int(UnitTransportShip) + 1
)

var unitKindNames = [unitKindCount]string{
	"city", "port", "defense_post", "sam_launcher", "missile_silo",
	"atom_bomb", "hydrogen_bomb", "trade_ship", "transport_ship",
}

func (k UnitKind) String() string {
	if int(k) < len(unitKindNames) {
		return unitKindNames[k]
	}
	return "unknown"
}

// IsStructure reports whether the kind is a fixed building rather than a
// mobile unit.
func (k UnitKind) IsStructure() bool {
	switch k {
	case UnitCity, UnitPort, UnitDefensePost, UnitSAMLauncher, UnitMissileSilo:
		return true
	}
	return false
}

// Unit is a built or mobile object: cities, ports, ships, missiles.
type Unit struct {
	id     uint32
	kind   UnitKind
	level  int
	owner  SmallID
	tile   terrain.TileRef
	active bool
}

func (u *Unit) ID() uint32            { return u.id }
func (u *Unit) Kind() UnitKind        { return u.kind }
func (u *Unit) Level() int            { return u.level }
func (u *Unit) Owner() SmallID        { return u.owner }
func (u *Unit) Tile() terrain.TileRef { return u.tile }
func (u *Unit) Active() bool          { return u.active }

func (u *Unit) SetTile(t terrain.TileRef) { u.tile = t }
func (u *Unit) Upgrade()                  { u.level++ }
func (u *Unit) Deactivate()               { u.active = false }
