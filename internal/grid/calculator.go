// Package grid owns the calculation model of a ship grid: the editable
// state (scalar parameters and block counts), the derived-output
// calculation, and the document serialization format.
package grid

import (
	"github.com/google/uuid"

	"github.com/piwi3910/GridCalc/internal/data"
)

// Calculator is the full editable state of one grid document.
//
// Counts holds one id → count map per undirected functional group;
// Thrusters holds one id → count map per direction. A missing id is
// equivalent to a count of zero. All maps, and all six direction keys,
// are present from construction onwards.
type Calculator struct {
	ID string `json:"id"`

	GravityMultiplier      float64 `json:"gravity_multiplier"`
	ContainerMultiplier    float64 `json:"container_multiplier"`
	PlanetaryInfluence     float64 `json:"planetary_influence"`
	AdditionalMass         float64 `json:"additional_mass"`
	IceOnlyFill            float64 `json:"ice_only_fill"`
	OreOnlyFill            float64 `json:"ore_only_fill"`
	AnyFillWithIce         float64 `json:"any_fill_with_ice"`
	AnyFillWithOre         float64 `json:"any_fill_with_ore"`
	AnyFillWithSteelPlates float64 `json:"any_fill_with_steel_plates"`

	Counts    map[data.Group]map[data.BlockID]uint64     `json:"counts"`
	Thrusters map[data.Direction]map[data.BlockID]uint64 `json:"thrusters"`
}

// NewCalculator returns a calculator with default parameters and empty,
// fully initialized count maps.
func NewCalculator() *Calculator {
	c := &Calculator{ID: uuid.New().String()[:8]}
	for _, s := range Scalars {
		*s.Ptr(c) = s.Default
	}
	c.Normalize()
	return c
}

// Normalize establishes the map invariants: every undirected group and
// every direction has a non-nil count map. Called from the constructor and
// after every deserialization, never assumed ad hoc at access sites.
func (c *Calculator) Normalize() {
	if c.Counts == nil {
		c.Counts = map[data.Group]map[data.BlockID]uint64{}
	}
	for _, g := range data.UndirectedGroups {
		if c.Counts[g] == nil {
			c.Counts[g] = map[data.BlockID]uint64{}
		}
	}
	if c.Thrusters == nil {
		c.Thrusters = map[data.Direction]map[data.BlockID]uint64{}
	}
	for _, dir := range data.Directions {
		if c.Thrusters[dir] == nil {
			c.Thrusters[dir] = map[data.BlockID]uint64{}
		}
	}
}

// Count returns the count for a block in an undirected group.
func (c *Calculator) Count(g data.Group, id data.BlockID) uint64 {
	return c.Counts[g][id]
}

// SetCount stores a count for a block in an undirected group. A zero count
// is stored as a present key; the maps only grow.
func (c *Calculator) SetCount(g data.Group, id data.BlockID, n uint64) {
	c.Counts[g][id] = n
}

// ThrusterCount returns the count for a thruster in one direction.
func (c *Calculator) ThrusterCount(dir data.Direction, id data.BlockID) uint64 {
	return c.Thrusters[dir][id]
}

// SetThrusterCount stores a thruster count for one direction.
func (c *Calculator) SetThrusterCount(dir data.Direction, id data.BlockID, n uint64) {
	c.Thrusters[dir][id] = n
}
