// Package data holds the block catalog: every placeable component the
// calculator knows about, with its physical properties. The catalog is
// loaded once at startup from an embedded YAML file and is read-only
// afterwards.
package data

import (
	"fmt"
	"sort"
)

// BlockID identifies one kind of block. IDs are stable across releases so
// that saved documents keep referring to the same blocks.
type BlockID string

// Size is the grid size class a block belongs to.
type Size string

const (
	SizeSmall Size = "small"
	SizeLarge Size = "large"
)

// Direction is one of the six thrust directions of a grid.
type Direction int

const (
	Up Direction = iota
	Down
	Front
	Back
	Left
	Right
)

// Directions lists all six directions in fixed order. Iteration over this
// slice is the only sanctioned way to enumerate directions.
var Directions = []Direction{Up, Down, Front, Back, Left, Right}

var directionNames = map[Direction]string{
	Up:    "up",
	Down:  "down",
	Front: "front",
	Back:  "back",
	Left:  "left",
	Right: "right",
}

func (d Direction) String() string {
	return directionNames[d]
}

// MarshalText implements encoding.TextMarshaler so directions can key JSON maps.
func (d Direction) MarshalText() ([]byte, error) {
	name, ok := directionNames[d]
	if !ok {
		return nil, fmt.Errorf("unknown direction %d", int(d))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	for dir, name := range directionNames {
		if name == string(text) {
			*d = dir
			return nil
		}
	}
	return fmt.Errorf("unknown direction %q", string(text))
}

// Group is a functional group of blocks. Each group feeds one derived
// output area (volume/mass, thrust, power, hydrogen).
type Group string

const (
	GroupContainers      Group = "containers"
	GroupCockpits        Group = "cockpits"
	GroupThrusters       Group = "thrusters"
	GroupHydrogenEngines Group = "hydrogen_engines"
	GroupReactors        Group = "reactors"
	GroupBatteries       Group = "batteries"
	GroupGenerators      Group = "generators"
	GroupHydrogenTanks   Group = "hydrogen_tanks"
	GroupJumpDrives      Group = "jump_drives"
)

// Groups lists every functional group in display order.
var Groups = []Group{
	GroupContainers,
	GroupCockpits,
	GroupThrusters,
	GroupHydrogenEngines,
	GroupReactors,
	GroupBatteries,
	GroupGenerators,
	GroupHydrogenTanks,
	GroupJumpDrives,
}

// UndirectedGroups lists the groups whose counts are a flat id → count map.
// Thrusters are the only direction-keyed group.
var UndirectedGroups = []Group{
	GroupContainers,
	GroupCockpits,
	GroupHydrogenEngines,
	GroupReactors,
	GroupBatteries,
	GroupGenerators,
	GroupHydrogenTanks,
	GroupJumpDrives,
}

// Block is one catalog entry. Only the fields relevant to a block's group
// carry non-zero values; the calculator reads them unconditionally and
// zeroes contribute nothing.
type Block struct {
	ID   BlockID `yaml:"id"`
	Name string  `yaml:"name"`
	Size Size    `yaml:"size"`
	Mass float64 `yaml:"mass"` // kg

	// Group is derived from the catalog section the block appears in.
	Group Group `yaml:"-"`

	Capacity float64 `yaml:"capacity,omitempty"` // inventory volume, L

	Force               float64 `yaml:"force,omitempty"`                // thrust, N
	PowerGeneration     float64 `yaml:"power_generation,omitempty"`     // MW
	PowerConsumption    float64 `yaml:"power_consumption,omitempty"`    // MW while operating
	IdlePower           float64 `yaml:"idle_power,omitempty"`           // MW standby draw
	BatteryCapacity     float64 `yaml:"battery_capacity,omitempty"`     // MWh
	InputPower          float64 `yaml:"input_power,omitempty"`          // MW charge draw
	HydrogenGeneration  float64 `yaml:"hydrogen_generation,omitempty"`  // L/s
	HydrogenConsumption float64 `yaml:"hydrogen_consumption,omitempty"` // L/s at full burn
	IdleHydrogen        float64 `yaml:"idle_hydrogen,omitempty"`        // L/s standby
	FuelCapacity        float64 `yaml:"fuel_capacity,omitempty"`        // L internal fuel store
}

// Data is the loaded catalog.
type Data struct {
	groups map[Group][]Block
	byID   map[BlockID]Block
}

// Blocks returns the blocks of a group in catalog order.
func (d *Data) Blocks(g Group) []Block {
	return d.groups[g]
}

// Block looks up a single block by id.
func (d *Data) Block(id BlockID) (Block, bool) {
	b, ok := d.byID[id]
	return b, ok
}

// Knows reports whether id is a known catalog id.
func (d *Data) Knows(id BlockID) bool {
	_, ok := d.byID[id]
	return ok
}

// SmallAndLarge partitions a group into its size classes. Within each class
// blocks are sorted by name then id, so repeated runs produce an identical
// field layout.
func (d *Data) SmallAndLarge(g Group) (small, large []Block) {
	for _, b := range d.groups[g] {
		if b.Size == SizeSmall {
			small = append(small, b)
		} else {
			large = append(large, b)
		}
	}
	sortBlocks(small)
	sortBlocks(large)
	return small, large
}

func sortBlocks(blocks []Block) {
	sort.Slice(blocks, func(i, j int) bool {
		if blocks[i].Name != blocks[j].Name {
			return blocks[i].Name < blocks[j].Name
		}
		return blocks[i].ID < blocks[j].ID
	})
}
