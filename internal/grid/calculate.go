package grid

import (
	"math"

	"github.com/piwi3910/GridCalc/internal/data"
)

// Cargo item properties and fixed draws used by the calculation.
const (
	iceVolume  = 0.37 // L per unit
	iceMass    = 1.0  // kg per unit
	oreVolume  = 0.37
	oreMass    = 1.0
	steelPlateVolume = 3.0
	steelPlateMass   = 20.0

	standardGravity = 9.81 // m/s²
	miscPowerDraw   = 0.1  // MW overhead for lights, refineries idling, etc.
)

// Tier is one cumulative budget tier: total consumption at that tier, the
// balance against generation, and how long stored capacity lasts. Duration
// is +Inf when the balance is non-negative.
type Tier struct {
	Consumption float64 `json:"consumption"`
	Balance     float64 `json:"balance"`
	Duration    float64 `json:"duration"`
}

// DirectionForce holds the thrust figures for one direction under the four
// load/gravity combinations.
type DirectionForce struct {
	Force                float64 `json:"force"` // N
	AccelEmptyNoGravity  float64 `json:"accel_empty_no_gravity"`
	AccelFilledNoGravity float64 `json:"accel_filled_no_gravity"`
	AccelEmptyGravity    float64 `json:"accel_empty_gravity"`
	AccelFilledGravity   float64 `json:"accel_filled_gravity"`
}

// Calculated is the derived output snapshot: a pure function of a
// Calculator and the block catalog.
type Calculated struct {
	TotalVolumeAny     float64
	TotalVolumeOre     float64
	TotalVolumeIce     float64
	TotalVolumeOreOnly float64
	TotalVolumeIceOnly float64

	TotalMassEmpty  float64
	TotalMassFilled float64

	TotalItemsIce         float64
	TotalItemsOre         float64
	TotalItemsSteelPlates float64

	Acceleration map[data.Direction]DirectionForce

	PowerGeneration      float64
	PowerCapacityBattery float64

	PowerIdle                  Tier
	PowerMisc                  Tier
	PowerUptoJumpDrive         Tier
	PowerUptoGenerator         Tier
	PowerUptoUpDownThruster    Tier
	PowerUptoFrontBackThruster Tier
	PowerUptoLeftRightThruster Tier
	PowerUptoBattery           Tier

	HydrogenGeneration     float64
	HydrogenCapacityEngine float64
	HydrogenCapacityTank   float64

	HydrogenIdle                  Tier
	HydrogenEngine                Tier
	HydrogenUptoUpDownThruster    Tier
	HydrogenUptoFrontBackThruster Tier
	HydrogenUptoLeftRightThruster Tier
}

// Calculate derives the full output snapshot. It never mutates the
// calculator and is safe to call repeatedly.
func (c *Calculator) Calculate(d *data.Data) Calculated {
	var out Calculated

	// Volume.
	var containerVolume, cockpitVolume float64
	for id, n := range c.Counts[data.GroupContainers] {
		if b, ok := d.Block(id); ok {
			containerVolume += b.Capacity * float64(n)
		}
	}
	for id, n := range c.Counts[data.GroupCockpits] {
		if b, ok := d.Block(id); ok {
			cockpitVolume += b.Capacity * float64(n)
		}
	}
	out.TotalVolumeAny = containerVolume*c.ContainerMultiplier + cockpitVolume
	out.TotalVolumeIce = out.TotalVolumeAny * c.AnyFillWithIce / 100.0
	out.TotalVolumeOre = out.TotalVolumeAny * c.AnyFillWithOre / 100.0
	out.TotalVolumeIceOnly = out.TotalVolumeAny * c.IceOnlyFill / 100.0
	out.TotalVolumeOreOnly = out.TotalVolumeAny * c.OreOnlyFill / 100.0

	// Items.
	out.TotalItemsIce = out.TotalVolumeIceOnly / iceVolume
	out.TotalItemsOre = out.TotalVolumeOreOnly / oreVolume
	steelVolume := out.TotalVolumeAny * c.AnyFillWithSteelPlates / 100.0
	out.TotalItemsSteelPlates = steelVolume / steelPlateVolume

	// Mass.
	blockMass := 0.0
	for _, g := range data.UndirectedGroups {
		for id, n := range c.Counts[g] {
			if b, ok := d.Block(id); ok {
				blockMass += b.Mass * float64(n)
			}
		}
	}
	for _, dir := range data.Directions {
		for id, n := range c.Thrusters[dir] {
			if b, ok := d.Block(id); ok {
				blockMass += b.Mass * float64(n)
			}
		}
	}
	out.TotalMassEmpty = blockMass + c.AdditionalMass

	cargoMass := (out.TotalVolumeIce/iceVolume)*iceMass +
		(out.TotalVolumeOre/oreVolume)*oreMass +
		out.TotalItemsSteelPlates*steelPlateMass
	out.TotalMassFilled = out.TotalMassEmpty + cargoMass

	// Force and acceleration.
	gravity := standardGravity * c.GravityMultiplier * c.PlanetaryInfluence
	out.Acceleration = make(map[data.Direction]DirectionForce, len(data.Directions))
	for _, dir := range data.Directions {
		var force float64
		for id, n := range c.Thrusters[dir] {
			if b, ok := d.Block(id); ok {
				force += b.Force * float64(n)
			}
		}
		df := DirectionForce{Force: force}
		if out.TotalMassEmpty > 0 {
			df.AccelEmptyNoGravity = force / out.TotalMassEmpty
			df.AccelEmptyGravity = force/out.TotalMassEmpty - gravity
		}
		if out.TotalMassFilled > 0 {
			df.AccelFilledNoGravity = force / out.TotalMassFilled
			df.AccelFilledGravity = force/out.TotalMassFilled - gravity
		}
		out.Acceleration[dir] = df
	}

	// Power.
	for _, g := range []data.Group{data.GroupReactors, data.GroupHydrogenEngines} {
		for id, n := range c.Counts[g] {
			if b, ok := d.Block(id); ok {
				out.PowerGeneration += b.PowerGeneration * float64(n)
			}
		}
	}
	for id, n := range c.Counts[data.GroupBatteries] {
		if b, ok := d.Block(id); ok {
			out.PowerCapacityBattery += b.BatteryCapacity * float64(n)
		}
	}

	idlePower := 0.0
	for _, g := range data.UndirectedGroups {
		for id, n := range c.Counts[g] {
			if b, ok := d.Block(id); ok {
				idlePower += b.IdlePower * float64(n)
			}
		}
	}

	jumpDrivePower := c.groupPowerConsumption(d, data.GroupJumpDrives)
	generatorPower := c.groupPowerConsumption(d, data.GroupGenerators)
	upDownPower := c.thrusterPower(d, data.Up) + c.thrusterPower(d, data.Down)
	frontBackPower := c.thrusterPower(d, data.Front) + c.thrusterPower(d, data.Back)
	leftRightPower := c.thrusterPower(d, data.Left) + c.thrusterPower(d, data.Right)
	batteryChargePower := 0.0
	for id, n := range c.Counts[data.GroupBatteries] {
		if b, ok := d.Block(id); ok {
			batteryChargePower += b.InputPower * float64(n)
		}
	}

	cum := idlePower
	out.PowerIdle = powerTier(cum, out.PowerGeneration, out.PowerCapacityBattery)
	cum += miscPowerDraw
	out.PowerMisc = powerTier(cum, out.PowerGeneration, out.PowerCapacityBattery)
	cum += jumpDrivePower
	out.PowerUptoJumpDrive = powerTier(cum, out.PowerGeneration, out.PowerCapacityBattery)
	cum += generatorPower
	out.PowerUptoGenerator = powerTier(cum, out.PowerGeneration, out.PowerCapacityBattery)
	cum += upDownPower
	out.PowerUptoUpDownThruster = powerTier(cum, out.PowerGeneration, out.PowerCapacityBattery)
	cum += frontBackPower
	out.PowerUptoFrontBackThruster = powerTier(cum, out.PowerGeneration, out.PowerCapacityBattery)
	cum += leftRightPower
	out.PowerUptoLeftRightThruster = powerTier(cum, out.PowerGeneration, out.PowerCapacityBattery)
	cum += batteryChargePower
	out.PowerUptoBattery = powerTier(cum, out.PowerGeneration, out.PowerCapacityBattery)

	// Hydrogen.
	for id, n := range c.Counts[data.GroupGenerators] {
		if b, ok := d.Block(id); ok {
			out.HydrogenGeneration += b.HydrogenGeneration * float64(n)
		}
	}
	idleHydrogen := 0.0
	engineBurn := 0.0
	for id, n := range c.Counts[data.GroupHydrogenEngines] {
		if b, ok := d.Block(id); ok {
			out.HydrogenCapacityEngine += b.FuelCapacity * float64(n)
			idleHydrogen += b.IdleHydrogen * float64(n)
			engineBurn += b.HydrogenConsumption * float64(n)
		}
	}
	for id, n := range c.Counts[data.GroupHydrogenTanks] {
		if b, ok := d.Block(id); ok {
			out.HydrogenCapacityTank += b.FuelCapacity * float64(n)
		}
	}
	hydrogenStore := out.HydrogenCapacityEngine + out.HydrogenCapacityTank

	upDownH := c.thrusterHydrogen(d, data.Up) + c.thrusterHydrogen(d, data.Down)
	frontBackH := c.thrusterHydrogen(d, data.Front) + c.thrusterHydrogen(d, data.Back)
	leftRightH := c.thrusterHydrogen(d, data.Left) + c.thrusterHydrogen(d, data.Right)

	cum = idleHydrogen
	out.HydrogenIdle = hydrogenTier(cum, out.HydrogenGeneration, hydrogenStore)
	cum += engineBurn
	out.HydrogenEngine = hydrogenTier(cum, out.HydrogenGeneration, hydrogenStore)
	cum += upDownH
	out.HydrogenUptoUpDownThruster = hydrogenTier(cum, out.HydrogenGeneration, hydrogenStore)
	cum += frontBackH
	out.HydrogenUptoFrontBackThruster = hydrogenTier(cum, out.HydrogenGeneration, hydrogenStore)
	cum += leftRightH
	out.HydrogenUptoLeftRightThruster = hydrogenTier(cum, out.HydrogenGeneration, hydrogenStore)

	return out
}

func (c *Calculator) groupPowerConsumption(d *data.Data, g data.Group) float64 {
	total := 0.0
	for id, n := range c.Counts[g] {
		if b, ok := d.Block(id); ok {
			total += b.PowerConsumption * float64(n)
		}
	}
	return total
}

func (c *Calculator) thrusterPower(d *data.Data, dir data.Direction) float64 {
	total := 0.0
	for id, n := range c.Thrusters[dir] {
		if b, ok := d.Block(id); ok {
			total += b.PowerConsumption * float64(n)
		}
	}
	return total
}

func (c *Calculator) thrusterHydrogen(d *data.Data, dir data.Direction) float64 {
	total := 0.0
	for id, n := range c.Thrusters[dir] {
		if b, ok := d.Block(id); ok {
			total += b.HydrogenConsumption * float64(n)
		}
	}
	return total
}

// powerTier builds a tier from cumulative consumption in MW against
// generation in MW; duration is hours of battery capacity.
func powerTier(consumption, generation, capacity float64) Tier {
	return makeTier(consumption, generation, capacity)
}

// hydrogenTier builds a tier from cumulative consumption in L/s against
// generation in L/s; duration is seconds of stored hydrogen.
func hydrogenTier(consumption, generation, capacity float64) Tier {
	return makeTier(consumption, generation, capacity)
}

func makeTier(consumption, generation, capacity float64) Tier {
	t := Tier{
		Consumption: consumption,
		Balance:     generation - consumption,
	}
	if t.Balance >= 0 {
		t.Duration = math.Inf(1)
	} else {
		t.Duration = capacity / -t.Balance
	}
	return t
}
