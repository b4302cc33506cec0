package propellant

import (
	"errors"
	"fmt"

	"Thruster/internal/units"
)

var ErrInvalidInput = errors.New("invalid propellant input")

// StandardGravity is g0 used to turn specific impulse in seconds into
// effective exhaust velocity.
var StandardGravity = units.Must(9.80665, "m/s^2")

type Input struct {
	Thrust          units.Quantity `json:"thrust"`
	Isp             units.Quantity `json:"isp"`
	G0              units.Quantity `json:"g0"`
	MixtureRatio    float64        `json:"mixture_ratio"` // oxidizer/fuel by mass
	BurnTime        units.Quantity `json:"burn_time"`
	OxidizerDensity units.Quantity `json:"oxidizer_density"`
	FuelDensity     units.Quantity `json:"fuel_density"`
	Ullage          float64        `json:"ullage"` // fraction of liquid volume
}

type Result struct {
	MassFlow           units.Quantity `json:"mass_flow"`
	OxidizerFlow       units.Quantity `json:"oxidizer_flow"`
	FuelFlow           units.Quantity `json:"fuel_flow"`
	ExhaustVelocity    units.Quantity `json:"exhaust_velocity"`
	TotalImpulse       units.Quantity `json:"total_impulse"`
	PropellantMass     units.Quantity `json:"propellant_mass"`
	OxidizerMass       units.Quantity `json:"oxidizer_mass"`
	FuelMass           units.Quantity `json:"fuel_mass"`
	OxidizerVolume     units.Quantity `json:"oxidizer_volume"`
	FuelVolume         units.Quantity `json:"fuel_volume"`
	OxidizerTankVolume units.Quantity `json:"oxidizer_tank_volume"`
	FuelTankVolume     units.Quantity `json:"fuel_tank_volume"`
	Notes              string         `json:"notes"`
}

// Calculate sizes the propellant load: mdot = F/(Isp*g0), split by the
// mixture ratio and multiplied by the burn time.
func Calculate(in Input) (Result, error) {
	if err := positive("thrust", in.Thrust, units.Force); err != nil {
		return Result{}, err
	}
	if err := positive("isp", in.Isp, units.Time); err != nil {
		return Result{}, err
	}
	if err := positive("burn time", in.BurnTime, units.Time); err != nil {
		return Result{}, err
	}
	if err := positive("oxidizer density", in.OxidizerDensity, units.Density); err != nil {
		return Result{}, err
	}
	if err := positive("fuel density", in.FuelDensity, units.Density); err != nil {
		return Result{}, err
	}
	if in.MixtureRatio <= 0 {
		return Result{}, fmt.Errorf("%w: mixture ratio must be positive", ErrInvalidInput)
	}
	if in.Ullage < 0 {
		return Result{}, fmt.Errorf("%w: ullage cannot be negative", ErrInvalidInput)
	}
	if !in.G0.IsSet() {
		in.G0 = StandardGravity
	}
	if err := positive("g0", in.G0, units.Acceleration); err != nil {
		return Result{}, err
	}

	ve := in.Isp.Mul(in.G0)
	mdot, err := in.Thrust.Div(ve)
	if err != nil {
		return Result{}, err
	}
	oxFraction := in.MixtureRatio / (1 + in.MixtureRatio)
	oxFlow := mdot.Scale(oxFraction)
	fuelFlow := mdot.Scale(1 - oxFraction)

	mass := mdot.Mul(in.BurnTime)
	oxMass := oxFlow.Mul(in.BurnTime)
	fuelMass := fuelFlow.Mul(in.BurnTime)
	oxVol, err := oxMass.Div(in.OxidizerDensity)
	if err != nil {
		return Result{}, err
	}
	fuelVol, err := fuelMass.Div(in.FuelDensity)
	if err != nil {
		return Result{}, err
	}

	return Result{
		MassFlow:           mdot.MustTo("kg/s"),
		OxidizerFlow:       oxFlow.MustTo("kg/s"),
		FuelFlow:           fuelFlow.MustTo("kg/s"),
		ExhaustVelocity:    ve.MustTo("m/s"),
		TotalImpulse:       in.Thrust.Mul(in.BurnTime).MustTo("N*s"),
		PropellantMass:     mass.MustTo("kg"),
		OxidizerMass:       oxMass.MustTo("kg"),
		FuelMass:           fuelMass.MustTo("kg"),
		OxidizerVolume:     oxVol.MustTo("L"),
		FuelVolume:         fuelVol.MustTo("L"),
		OxidizerTankVolume: oxVol.Scale(1 + in.Ullage).MustTo("L"),
		FuelTankVolume:     fuelVol.Scale(1 + in.Ullage).MustTo("L"),
		Notes:              "Constant thrust and mixture ratio over the burn.",
	}, nil
}

func positive(name string, q units.Quantity, dim units.Dimension) error {
	if !q.IsSet() {
		return fmt.Errorf("%w: %s required", ErrInvalidInput, name)
	}
	if err := q.Check(dim); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if q.SI() <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidInput, name)
	}
	return nil
}
