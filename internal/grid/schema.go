package grid

import (
	"fmt"

	"github.com/piwi3910/GridCalc/internal/data"
)

// ScalarSpec describes one bindable scalar parameter: its stable key, the
// label and unit shown by presentation layers, the default used when a
// field fails to parse, and an accessor into the calculator.
type ScalarSpec struct {
	Key     string
	Label   string
	Unit    string
	Default float64
	Ptr     func(*Calculator) *float64
}

// Scalars is the complete table of scalar parameters. Presentation layers
// iterate this table to build their option forms; the binding engine
// iterates it for refresh. Adding a parameter means adding a row here and
// a field on Calculator, nothing else.
var Scalars = []ScalarSpec{
	{"gravity_multiplier", "Gravity Multiplier", "*", 1.0, func(c *Calculator) *float64 { return &c.GravityMultiplier }},
	{"container_multiplier", "Container Multiplier", "*", 1.0, func(c *Calculator) *float64 { return &c.ContainerMultiplier }},
	{"planetary_influence", "Planetary Influence", "*", 1.0, func(c *Calculator) *float64 { return &c.PlanetaryInfluence }},
	{"additional_mass", "Additional Mass", "kg", 0.0, func(c *Calculator) *float64 { return &c.AdditionalMass }},
	{"ice_only_fill", "Ice-only-fill", "%", 100.0, func(c *Calculator) *float64 { return &c.IceOnlyFill }},
	{"ore_only_fill", "Ore-only-fill", "%", 100.0, func(c *Calculator) *float64 { return &c.OreOnlyFill }},
	{"any_fill_with_ice", "Any-fill with Ice", "%", 0.0, func(c *Calculator) *float64 { return &c.AnyFillWithIce }},
	{"any_fill_with_ore", "Any-fill with Ore", "%", 0.0, func(c *Calculator) *float64 { return &c.AnyFillWithOre }},
	{"any_fill_with_steel_plates", "Any-fill with Steel Plates", "%", 0.0, func(c *Calculator) *float64 { return &c.AnyFillWithSteelPlates }},
}

// ScalarByKey looks up a scalar spec by key.
func ScalarByKey(key string) (ScalarSpec, bool) {
	for _, s := range Scalars {
		if s.Key == key {
			return s, true
		}
	}
	return ScalarSpec{}, false
}

// OutputSpec describes one derived output value: its stable key, label,
// unit, and an extractor from the calculated snapshot.
type OutputSpec struct {
	Key   string
	Label string
	Unit  string
	Get   func(*Calculated) float64
}

// Outputs is the complete table of derived outputs, one row per display
// sink. Built once at init; iteration order is stable.
var Outputs = buildOutputs()

// OutputByKey looks up an output spec by key.
func OutputByKey(key string) (OutputSpec, bool) {
	for _, o := range Outputs {
		if o.Key == key {
			return o, true
		}
	}
	return OutputSpec{}, false
}

func buildOutputs() []OutputSpec {
	specs := []OutputSpec{
		{Key: "volume.any", Label: "Volume (Any)", Unit: "L", Get: func(c *Calculated) float64 { return c.TotalVolumeAny }},
		{Key: "volume.ore", Label: "Volume (Ore)", Unit: "L", Get: func(c *Calculated) float64 { return c.TotalVolumeOre }},
		{Key: "volume.ice", Label: "Volume (Ice)", Unit: "L", Get: func(c *Calculated) float64 { return c.TotalVolumeIce }},
		{Key: "volume.ore_only", Label: "Volume (Ore-only)", Unit: "L", Get: func(c *Calculated) float64 { return c.TotalVolumeOreOnly }},
		{Key: "volume.ice_only", Label: "Volume (Ice-only)", Unit: "L", Get: func(c *Calculated) float64 { return c.TotalVolumeIceOnly }},
		{Key: "mass.empty", Label: "Mass (Empty)", Unit: "kg", Get: func(c *Calculated) float64 { return c.TotalMassEmpty }},
		{Key: "mass.filled", Label: "Mass (Filled)", Unit: "kg", Get: func(c *Calculated) float64 { return c.TotalMassFilled }},
		{Key: "items.ice", Label: "Items (Ice)", Unit: "#", Get: func(c *Calculated) float64 { return c.TotalItemsIce }},
		{Key: "items.ore", Label: "Items (Ore)", Unit: "#", Get: func(c *Calculated) float64 { return c.TotalItemsOre }},
		{Key: "items.steel_plates", Label: "Items (Steel Plates)", Unit: "#", Get: func(c *Calculated) float64 { return c.TotalItemsSteelPlates }},
	}

	for _, dir := range data.Directions {
		dir := dir
		name := dir.String()
		specs = append(specs,
			OutputSpec{Key: "force." + name, Label: fmt.Sprintf("Force (%s)", name), Unit: "kN", Get: func(c *Calculated) float64 { return c.Acceleration[dir].Force / 1000.0 }},
			OutputSpec{Key: "accel." + name + ".empty_no_gravity", Label: fmt.Sprintf("Accel %s (empty, no gravity)", name), Unit: "m/s²", Get: func(c *Calculated) float64 { return c.Acceleration[dir].AccelEmptyNoGravity }},
			OutputSpec{Key: "accel." + name + ".filled_no_gravity", Label: fmt.Sprintf("Accel %s (filled, no gravity)", name), Unit: "m/s²", Get: func(c *Calculated) float64 { return c.Acceleration[dir].AccelFilledNoGravity }},
			OutputSpec{Key: "accel." + name + ".empty_gravity", Label: fmt.Sprintf("Accel %s (empty, gravity)", name), Unit: "m/s²", Get: func(c *Calculated) float64 { return c.Acceleration[dir].AccelEmptyGravity }},
			OutputSpec{Key: "accel." + name + ".filled_gravity", Label: fmt.Sprintf("Accel %s (filled, gravity)", name), Unit: "m/s²", Get: func(c *Calculated) float64 { return c.Acceleration[dir].AccelFilledGravity }},
		)
	}

	specs = append(specs,
		OutputSpec{Key: "power.generation", Label: "Power Generation", Unit: "MW", Get: func(c *Calculated) float64 { return c.PowerGeneration }},
		OutputSpec{Key: "power.capacity_battery", Label: "Battery Capacity", Unit: "MWh", Get: func(c *Calculated) float64 { return c.PowerCapacityBattery }},
	)
	powerTiers := []struct {
		key   string
		label string
		get   func(*Calculated) Tier
	}{
		{"power.idle", "Power Idle", func(c *Calculated) Tier { return c.PowerIdle }},
		{"power.misc", "Power Misc", func(c *Calculated) Tier { return c.PowerMisc }},
		{"power.upto_jump_drive", "Power +Jump Drive", func(c *Calculated) Tier { return c.PowerUptoJumpDrive }},
		{"power.upto_generator", "Power +Generator", func(c *Calculated) Tier { return c.PowerUptoGenerator }},
		{"power.upto_up_down", "Power +Up/Down Thruster", func(c *Calculated) Tier { return c.PowerUptoUpDownThruster }},
		{"power.upto_front_back", "Power +Front/Back Thruster", func(c *Calculated) Tier { return c.PowerUptoFrontBackThruster }},
		{"power.upto_left_right", "Power +Left/Right Thruster", func(c *Calculated) Tier { return c.PowerUptoLeftRightThruster }},
		{"power.upto_battery", "Power +Battery Charge", func(c *Calculated) Tier { return c.PowerUptoBattery }},
	}
	for _, t := range powerTiers {
		t := t
		specs = append(specs,
			OutputSpec{Key: t.key + ".consumption", Label: t.label + " Consumption", Unit: "MW", Get: func(c *Calculated) float64 { return t.get(c).Consumption }},
			OutputSpec{Key: t.key + ".balance", Label: t.label + " Balance", Unit: "MW", Get: func(c *Calculated) float64 { return t.get(c).Balance }},
			OutputSpec{Key: t.key + ".duration", Label: t.label + " Duration", Unit: "h", Get: func(c *Calculated) float64 { return t.get(c).Duration }},
		)
	}

	specs = append(specs,
		OutputSpec{Key: "hydrogen.generation", Label: "Hydrogen Generation", Unit: "L/s", Get: func(c *Calculated) float64 { return c.HydrogenGeneration }},
		OutputSpec{Key: "hydrogen.capacity_engine", Label: "Hydrogen Capacity (Engines)", Unit: "L", Get: func(c *Calculated) float64 { return c.HydrogenCapacityEngine }},
		OutputSpec{Key: "hydrogen.capacity_tank", Label: "Hydrogen Capacity (Tanks)", Unit: "L", Get: func(c *Calculated) float64 { return c.HydrogenCapacityTank }},
	)
	hydrogenTiers := []struct {
		key   string
		label string
		get   func(*Calculated) Tier
	}{
		{"hydrogen.idle", "Hydrogen Idle", func(c *Calculated) Tier { return c.HydrogenIdle }},
		{"hydrogen.engine", "Hydrogen +Engine", func(c *Calculated) Tier { return c.HydrogenEngine }},
		{"hydrogen.upto_up_down", "Hydrogen +Up/Down Thruster", func(c *Calculated) Tier { return c.HydrogenUptoUpDownThruster }},
		{"hydrogen.upto_front_back", "Hydrogen +Front/Back Thruster", func(c *Calculated) Tier { return c.HydrogenUptoFrontBackThruster }},
		{"hydrogen.upto_left_right", "Hydrogen +Left/Right Thruster", func(c *Calculated) Tier { return c.HydrogenUptoLeftRightThruster }},
	}
	for _, t := range hydrogenTiers {
		t := t
		specs = append(specs,
			OutputSpec{Key: t.key + ".consumption", Label: t.label + " Consumption", Unit: "L/s", Get: func(c *Calculated) float64 { return t.get(c).Consumption }},
			OutputSpec{Key: t.key + ".balance", Label: t.label + " Balance", Unit: "L/s", Get: func(c *Calculated) float64 { return t.get(c).Balance }},
			OutputSpec{Key: t.key + ".duration", Label: t.label + " Duration", Unit: "s", Get: func(c *Calculated) float64 { return t.get(c).Duration }},
		)
	}

	return specs
}
