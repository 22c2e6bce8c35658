package grid

import (
	"math"
	"testing"

	"github.com/piwi3910/GridCalc/internal/data"
)

func testData(t *testing.T) *data.Data {
	t.Helper()
	d, err := data.Load()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	return d
}

func TestCalculateEmptyGrid(t *testing.T) {
	d := testData(t)
	c := NewCalculator()
	out := c.Calculate(d)

	if out.TotalVolumeAny != 0 {
		t.Errorf("expected zero volume, got %f", out.TotalVolumeAny)
	}
	if out.TotalMassEmpty != 0 {
		t.Errorf("expected zero mass, got %f", out.TotalMassEmpty)
	}
	if !math.IsInf(out.PowerIdle.Duration, 1) {
		t.Error("idle power duration should be infinite with zero consumption")
	}
	for _, dir := range data.Directions {
		if out.Acceleration[dir].Force != 0 {
			t.Errorf("direction %s should have zero force", dir)
		}
	}
}

func TestCalculateVolumeAndItems(t *testing.T) {
	d := testData(t)
	c := NewCalculator()
	c.SetCount(data.GroupContainers, "container-large-lg", 2)

	block, _ := d.Block("container-large-lg")
	out := c.Calculate(d)

	want := block.Capacity * 2
	if math.Abs(out.TotalVolumeAny-want) > 1e-9 {
		t.Fatalf("expected volume %f, got %f", want, out.TotalVolumeAny)
	}
	// Defaults: ice/ore-only fill at 100%.
	if math.Abs(out.TotalVolumeIceOnly-want) > 1e-9 {
		t.Errorf("expected ice-only volume %f, got %f", want, out.TotalVolumeIceOnly)
	}
	if math.Abs(out.TotalItemsIce-want/0.37) > 1e-6 {
		t.Errorf("expected %f ice items, got %f", want/0.37, out.TotalItemsIce)
	}

	c.ContainerMultiplier = 2.0
	out = c.Calculate(d)
	if math.Abs(out.TotalVolumeAny-want*2) > 1e-9 {
		t.Errorf("container multiplier not applied: got %f", out.TotalVolumeAny)
	}
}

func TestCalculateMassAndAcceleration(t *testing.T) {
	d := testData(t)
	c := NewCalculator()
	c.SetThrusterCount(data.Up, "thruster-ion-large-lg", 2)
	c.AdditionalMass = 10000

	block, _ := d.Block("thruster-ion-large-lg")
	out := c.Calculate(d)

	wantMass := block.Mass*2 + 10000
	if math.Abs(out.TotalMassEmpty-wantMass) > 1e-9 {
		t.Fatalf("expected mass %f, got %f", wantMass, out.TotalMassEmpty)
	}

	wantForce := block.Force * 2
	up := out.Acceleration[data.Up]
	if math.Abs(up.Force-wantForce) > 1e-9 {
		t.Fatalf("expected force %f, got %f", wantForce, up.Force)
	}
	if math.Abs(up.AccelEmptyNoGravity-wantForce/wantMass) > 1e-9 {
		t.Errorf("bad acceleration: got %f", up.AccelEmptyNoGravity)
	}
	// Default multipliers: gravity 1.0, planetary influence 1.0.
	wantGravityAccel := wantForce/wantMass - 9.81
	if math.Abs(up.AccelEmptyGravity-wantGravityAccel) > 1e-9 {
		t.Errorf("expected gravity accel %f, got %f", wantGravityAccel, up.AccelEmptyGravity)
	}

	// The other five directions carry no thrusters.
	for _, dir := range data.Directions {
		if dir == data.Up {
			continue
		}
		if out.Acceleration[dir].Force != 0 {
			t.Errorf("direction %s should have zero force", dir)
		}
	}
}

func TestCalculatePowerTiersAreCumulative(t *testing.T) {
	d := testData(t)
	c := NewCalculator()
	c.SetCount(data.GroupReactors, "reactor-large-lg", 1)
	c.SetCount(data.GroupBatteries, "battery-lg", 2)
	c.SetCount(data.GroupJumpDrives, "jump-drive-lg", 1)
	c.SetCount(data.GroupGenerators, "o2h2-generator-lg", 3)
	c.SetThrusterCount(data.Up, "thruster-ion-large-lg", 1)
	c.SetThrusterCount(data.Front, "thruster-ion-small-lg", 2)

	out := c.Calculate(d)

	reactor, _ := d.Block("reactor-large-lg")
	if math.Abs(out.PowerGeneration-reactor.PowerGeneration) > 1e-9 {
		t.Fatalf("expected generation %f, got %f", reactor.PowerGeneration, out.PowerGeneration)
	}

	tiers := []Tier{
		out.PowerIdle,
		out.PowerMisc,
		out.PowerUptoJumpDrive,
		out.PowerUptoGenerator,
		out.PowerUptoUpDownThruster,
		out.PowerUptoFrontBackThruster,
		out.PowerUptoLeftRightThruster,
		out.PowerUptoBattery,
	}
	for i := 1; i < len(tiers); i++ {
		if tiers[i].Consumption < tiers[i-1].Consumption {
			t.Errorf("tier %d consumption %f below tier %d consumption %f",
				i, tiers[i].Consumption, i-1, tiers[i-1].Consumption)
		}
	}
	for _, tier := range tiers {
		if math.Abs(tier.Balance-(out.PowerGeneration-tier.Consumption)) > 1e-9 {
			t.Errorf("balance %f inconsistent with consumption %f", tier.Balance, tier.Consumption)
		}
	}

	jump, _ := d.Block("jump-drive-lg")
	gotJump := out.PowerUptoJumpDrive.Consumption - out.PowerMisc.Consumption
	if math.Abs(gotJump-jump.PowerConsumption) > 1e-9 {
		t.Errorf("jump drive tier added %f, want %f", gotJump, jump.PowerConsumption)
	}
}

func TestCalculatePowerDuration(t *testing.T) {
	d := testData(t)
	c := NewCalculator()
	c.SetCount(data.GroupBatteries, "battery-lg", 1)
	c.SetCount(data.GroupJumpDrives, "jump-drive-lg", 1)

	out := c.Calculate(d)
	tier := out.PowerUptoJumpDrive
	if tier.Balance >= 0 {
		t.Fatalf("expected negative balance, got %f", tier.Balance)
	}
	battery, _ := d.Block("battery-lg")
	want := battery.BatteryCapacity / -tier.Balance
	if math.Abs(tier.Duration-want) > 1e-9 {
		t.Errorf("expected duration %f h, got %f", want, tier.Duration)
	}
}

func TestCalculateHydrogen(t *testing.T) {
	d := testData(t)
	c := NewCalculator()
	c.SetCount(data.GroupGenerators, "o2h2-generator-lg", 2)
	c.SetCount(data.GroupHydrogenTanks, "hydrogen-tank-lg", 1)
	c.SetThrusterCount(data.Back, "thruster-hydrogen-large-lg", 2)

	out := c.Calculate(d)

	gen, _ := d.Block("o2h2-generator-lg")
	if math.Abs(out.HydrogenGeneration-gen.HydrogenGeneration*2) > 1e-9 {
		t.Fatalf("expected generation %f, got %f", gen.HydrogenGeneration*2, out.HydrogenGeneration)
	}
	tank, _ := d.Block("hydrogen-tank-lg")
	if math.Abs(out.HydrogenCapacityTank-tank.FuelCapacity) > 1e-9 {
		t.Errorf("expected tank capacity %f, got %f", tank.FuelCapacity, out.HydrogenCapacityTank)
	}

	thruster, _ := d.Block("thruster-hydrogen-large-lg")
	gotBurn := out.HydrogenUptoFrontBackThruster.Consumption - out.HydrogenUptoUpDownThruster.Consumption
	if math.Abs(gotBurn-thruster.HydrogenConsumption*2) > 1e-9 {
		t.Errorf("front/back tier added %f, want %f", gotBurn, thruster.HydrogenConsumption*2)
	}

	if !math.IsInf(out.HydrogenIdle.Duration, 1) {
		t.Error("idle hydrogen duration should be infinite with no engines")
	}
	if out.HydrogenUptoFrontBackThruster.Balance >= 0 {
		t.Fatal("expected negative hydrogen balance at front/back tier")
	}
	store := out.HydrogenCapacityTank + out.HydrogenCapacityEngine
	want := store / -out.HydrogenUptoFrontBackThruster.Balance
	if math.Abs(out.HydrogenUptoFrontBackThruster.Duration-want) > 1e-9 {
		t.Errorf("expected duration %f s, got %f", want, out.HydrogenUptoFrontBackThruster.Duration)
	}
}

func TestCalculateIsPure(t *testing.T) {
	d := testData(t)
	c := NewCalculator()
	c.SetCount(data.GroupContainers, "container-small-sg", 3)
	c.SetThrusterCount(data.Left, "thruster-ion-small-sg", 4)

	first := c.Calculate(d)
	second := c.Calculate(d)
	if first.TotalMassEmpty != second.TotalMassEmpty ||
		first.Acceleration[data.Left] != second.Acceleration[data.Left] {
		t.Error("repeated calculation of unchanged state differs")
	}
}
