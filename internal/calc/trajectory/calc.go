package trajectory

import (
	"errors"
	"fmt"
	"math"

	"Thruster/internal/units"
)

var (
	ErrInvalidInput       = errors.New("invalid trajectory input")
	ErrInsufficientThrust = errors.New("thrust does not exceed weight")
)

type Input struct {
	Thrust          units.Quantity `json:"thrust"`
	BurnTime        units.Quantity `json:"burn_time"`
	DryMass         units.Quantity `json:"dry_mass"`
	PropellantMass  units.Quantity `json:"propellant_mass"`
	DragCoefficient float64        `json:"drag_coefficient"`
	Diameter        units.Quantity `json:"diameter"`
	AirDensity      units.Quantity `json:"air_density"`
	Gravity         units.Quantity `json:"gravity"`
}

type Result struct {
	LiftoffMass     units.Quantity `json:"liftoff_mass"`
	ThrustToWeight  float64        `json:"thrust_to_weight"`
	BurnoutVelocity units.Quantity `json:"burnout_velocity"`
	BurnoutAltitude units.Quantity `json:"burnout_altitude"`
	CoastAltitude   units.Quantity `json:"coast_altitude"`
	CoastTime       units.Quantity `json:"coast_time"`
	Apogee          units.Quantity `json:"apogee"`
	ApogeeNoDrag    units.Quantity `json:"apogee_no_drag"`
	Notes           string         `json:"notes"`
}

// Calculate estimates a vertical flight with constant thrust and quadratic
// drag in closed form. The boost phase uses the mean of liftoff and
// burnout mass; the coast phase uses burnout mass.
func Calculate(in Input) (Result, error) {
	if err := setDefaults(&in); err != nil {
		return Result{}, err
	}
	F := in.Thrust.SI()
	tb := in.BurnTime.SI()
	dry := in.DryMass.SI()
	liftoff := dry + in.PropellantMass.SI()
	m := dry + in.PropellantMass.SI()/2
	g := in.Gravity.SI()
	area := math.Pi * math.Pow(in.Diameter.SI(), 2) / 4
	k := 0.5 * in.AirDensity.SI() * in.DragCoefficient * area

	twr := F / (liftoff * g)
	net := F - m*g
	if twr <= 1 || net <= 0 {
		return Result{}, fmt.Errorf("%w: T/W = %.2f", ErrInsufficientThrust, twr)
	}

	accel := net / m
	vFree := accel * tb
	apogeeFree := 0.5*accel*tb*tb + vFree*vFree/(2*g)

	var v, hBoost, hCoast, tCoast float64
	if k == 0 {
		v, hBoost = vFree, 0.5*accel*tb*tb
		hCoast, tCoast = v*v/(2*g), v/g
	} else {
		q := math.Sqrt(net / k)
		x := 2 * k * q / m
		e := math.Exp(-x * tb)
		v = q * (1 - e) / (1 + e)
		hBoost = m / (2 * k) * math.Log(net/(net-k*v*v))
		hCoast = dry / (2 * k) * math.Log((dry*g+k*v*v)/(dry*g))
		tCoast = dry / math.Sqrt(dry*g*k) * math.Atan(v*math.Sqrt(k/(dry*g)))
	}

	return Result{
		LiftoffMass:     units.Must(liftoff, "kg"),
		ThrustToWeight:  twr,
		BurnoutVelocity: units.Must(v, "m/s"),
		BurnoutAltitude: units.Must(hBoost, "m"),
		CoastAltitude:   units.Must(hCoast, "m"),
		CoastTime:       units.Must(tCoast, "s"),
		Apogee:          units.Must(hBoost+hCoast, "m"),
		ApogeeNoDrag:    units.Must(apogeeFree, "m"),
		Notes:           "Vertical flight, constant thrust, sea-level air density.",
	}, nil
}

func setDefaults(in *Input) error {
	if !in.AirDensity.IsSet() {
		in.AirDensity = units.Must(1.225, "kg/m^3")
	}
	if !in.Gravity.IsSet() {
		in.Gravity = units.Must(9.80665, "m/s^2")
	}
	if !in.Diameter.IsSet() {
		in.Diameter = units.Must(0, "m")
	}
	if !in.PropellantMass.IsSet() {
		in.PropellantMass = units.Must(0, "kg")
	}
	checks := []struct {
		name     string
		q        units.Quantity
		dim      units.Dimension
		positive bool
	}{
		{"thrust", in.Thrust, units.Force, true},
		{"burn time", in.BurnTime, units.Time, true},
		{"dry mass", in.DryMass, units.Mass, true},
		{"propellant mass", in.PropellantMass, units.Mass, false},
		{"diameter", in.Diameter, units.Length, false},
		{"air density", in.AirDensity, units.Density, false},
		{"gravity", in.Gravity, units.Acceleration, true},
	}
	for _, c := range checks {
		if !c.q.IsSet() {
			return fmt.Errorf("%w: %s required", ErrInvalidInput, c.name)
		}
		if err := c.q.Check(c.dim); err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}
		if c.q.SI() < 0 || (c.positive && c.q.SI() == 0) {
			return fmt.Errorf("%w: %s out of range", ErrInvalidInput, c.name)
		}
	}
	if in.DragCoefficient < 0 {
		return fmt.Errorf("%w: negative drag coefficient", ErrInvalidInput)
	}
	return nil
}
