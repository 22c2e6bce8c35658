package data

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed blocks.yaml
var blocksYAML []byte

// catalogFile mirrors the structure of blocks.yaml.
type catalogFile struct {
	Containers      []Block `yaml:"containers"`
	Cockpits        []Block `yaml:"cockpits"`
	Thrusters       []Block `yaml:"thrusters"`
	HydrogenEngines []Block `yaml:"hydrogen_engines"`
	Reactors        []Block `yaml:"reactors"`
	Batteries       []Block `yaml:"batteries"`
	Generators      []Block `yaml:"generators"`
	HydrogenTanks   []Block `yaml:"hydrogen_tanks"`
	JumpDrives      []Block `yaml:"jump_drives"`
}

// Load parses the embedded block catalog. It is called once at startup;
// the returned Data is never mutated afterwards.
func Load() (*Data, error) {
	return parse(blocksYAML)
}

func parse(raw []byte) (*Data, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse block catalog: %w", err)
	}

	d := &Data{
		groups: map[Group][]Block{
			GroupContainers:      file.Containers,
			GroupCockpits:        file.Cockpits,
			GroupThrusters:       file.Thrusters,
			GroupHydrogenEngines: file.HydrogenEngines,
			GroupReactors:        file.Reactors,
			GroupBatteries:       file.Batteries,
			GroupGenerators:      file.Generators,
			GroupHydrogenTanks:   file.HydrogenTanks,
			GroupJumpDrives:      file.JumpDrives,
		},
		byID: map[BlockID]Block{},
	}

	for _, g := range Groups {
		blocks := d.groups[g]
		for i := range blocks {
			blocks[i].Group = g
			b := blocks[i]
			if b.ID == "" {
				return nil, fmt.Errorf("block %q in group %s has no id", b.Name, g)
			}
			if b.Size != SizeSmall && b.Size != SizeLarge {
				return nil, fmt.Errorf("block %s has invalid size %q", b.ID, b.Size)
			}
			if _, dup := d.byID[b.ID]; dup {
				return nil, fmt.Errorf("duplicate block id %s", b.ID)
			}
			d.byID[b.ID] = b
		}
	}
	return d, nil
}
