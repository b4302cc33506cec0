package nozzle

import (
	"errors"
	"fmt"
	"math"

	"Thruster/internal/units"
)

var ErrInvalidInput = errors.New("invalid nozzle input")

type Input struct {
	MassFlow         units.Quantity `json:"mass_flow"`
	CStar            units.Quantity `json:"cstar"`
	ChamberPressure  units.Quantity `json:"chamber_pressure"`
	ExitPressure     units.Quantity `json:"exit_pressure"`
	AmbientPressure  units.Quantity `json:"ambient_pressure"`
	Gamma            float64        `json:"gamma"`
	AreaRatio        float64        `json:"area_ratio"` // overrides the ratio derived from exit pressure
	ContractionRatio float64        `json:"contraction_ratio"`
	LStar            units.Quantity `json:"lstar"`
	DivergentAngle   units.Quantity `json:"divergent_angle"`
	ConvergentAngle  units.Quantity `json:"convergent_angle"`
}

type Result struct {
	ThroatArea       units.Quantity `json:"throat_area"`
	ThroatDiameter   units.Quantity `json:"throat_diameter"`
	AreaRatio        float64        `json:"area_ratio"`
	ExitArea         units.Quantity `json:"exit_area"`
	ExitDiameter     units.Quantity `json:"exit_diameter"`
	ChamberArea      units.Quantity `json:"chamber_area"`
	ChamberDiameter  units.Quantity `json:"chamber_diameter"`
	ChamberVolume    units.Quantity `json:"chamber_volume"`
	ChamberLength    units.Quantity `json:"chamber_length"`
	ConvergentLength units.Quantity `json:"convergent_length"`
	DivergentLength  units.Quantity `json:"divergent_length"`
	ThrustCoeff      float64        `json:"thrust_coefficient"`
	Thrust           units.Quantity `json:"thrust"`
	Isp              units.Quantity `json:"isp"`
	Notes            string         `json:"notes"`
}

// Calculate sizes throat, exit and chamber from At = mdot*c*/Pc and the
// isentropic expansion relations. Nozzle contours are conical.
func Calculate(in Input) (Result, error) {
	if err := setDefaults(&in); err != nil {
		return Result{}, err
	}
	pr, err := in.ExitPressure.Div(in.ChamberPressure)
	if err != nil {
		return Result{}, err
	}
	pressureRatio, err := pr.Float()
	if err != nil {
		return Result{}, err
	}
	if pressureRatio >= 1 {
		return Result{}, fmt.Errorf("%w: exit pressure must be below chamber pressure", ErrInvalidInput)
	}

	eps := in.AreaRatio
	if eps == 0 {
		eps = AreaRatio(pressureRatio, in.Gamma)
	}
	if eps < 1 {
		return Result{}, fmt.Errorf("%w: area ratio %.3f below 1", ErrInvalidInput, eps)
	}

	at, err := in.MassFlow.Mul(in.CStar).Div(in.ChamberPressure)
	if err != nil {
		return Result{}, err
	}
	at = at.MustTo("mm^2")
	ae := at.Scale(eps)
	ac := at.Scale(in.ContractionRatio)

	dt, err := diameter(at)
	if err != nil {
		return Result{}, err
	}
	de, err := diameter(ae)
	if err != nil {
		return Result{}, err
	}
	dc, err := diameter(ac)
	if err != nil {
		return Result{}, err
	}

	vc := in.LStar.Mul(at).MustTo("cm^3")
	lc, err := vc.Div(ac)
	if err != nil {
		return Result{}, err
	}
	ldiv, err := coneLength(de, dt, in.DivergentAngle)
	if err != nil {
		return Result{}, err
	}
	lconv, err := coneLength(dc, dt, in.ConvergentAngle)
	if err != nil {
		return Result{}, err
	}

	pa, err := in.ExitPressure.Sub(in.AmbientPressure)
	if err != nil {
		return Result{}, err
	}
	pt, err := pa.Div(in.ChamberPressure)
	if err != nil {
		return Result{}, err
	}
	pressureTerm, err := pt.Float()
	if err != nil {
		return Result{}, err
	}
	cf := momentumCoeff(pressureRatio, in.Gamma) + pressureTerm*eps
	thrust := in.ChamberPressure.Mul(at).Scale(cf)
	isp, err := thrust.Div(in.MassFlow.Mul(units.Must(9.80665, "m/s^2")))
	if err != nil {
		return Result{}, err
	}

	return Result{
		ThroatArea:       at,
		ThroatDiameter:   dt,
		AreaRatio:        eps,
		ExitArea:         ae,
		ExitDiameter:     de,
		ChamberArea:      ac,
		ChamberDiameter:  dc,
		ChamberVolume:    vc,
		ChamberLength:    lc.MustTo("mm"),
		ConvergentLength: lconv,
		DivergentLength:  ldiv,
		ThrustCoeff:      cf,
		Thrust:           thrust.MustTo("N"),
		Isp:              isp.MustTo("s"),
		Notes:            "Ideal isentropic nozzle, conical contours, cylindrical chamber.",
	}, nil
}

// AreaRatio is the isentropic exit-to-throat area ratio for an exit to
// chamber pressure ratio pr.
func AreaRatio(pr, gamma float64) float64 {
	g := gamma
	inv := math.Pow((g+1)/2, 1/(g-1)) * math.Pow(pr, 1/g) *
		math.Sqrt((g+1)/(g-1)*(1-math.Pow(pr, (g-1)/g)))
	return 1 / inv
}

// momentumCoeff is the thrust coefficient without the pressure term.
func momentumCoeff(pr, gamma float64) float64 {
	g := gamma
	return math.Sqrt(2 * g * g / (g - 1) * math.Pow(2/(g+1), (g+1)/(g-1)) * (1 - math.Pow(pr, (g-1)/g)))
}

func diameter(area units.Quantity) (units.Quantity, error) {
	d, err := area.Scale(4 / math.Pi).Sqrt()
	if err != nil {
		return units.Quantity{}, err
	}
	return d.To("mm")
}

func coneLength(d1, d2, halfAngle units.Quantity) (units.Quantity, error) {
	theta, err := halfAngle.Float()
	if err != nil {
		return units.Quantity{}, fmt.Errorf("half angle: %w", err)
	}
	if theta <= 0 || theta >= math.Pi/2 {
		return units.Quantity{}, fmt.Errorf("%w: half angle must be between 0 and 90 deg", ErrInvalidInput)
	}
	rise, err := d1.Sub(d2)
	if err != nil {
		return units.Quantity{}, err
	}
	return rise.Scale(0.5 / math.Tan(theta)), nil
}

func setDefaults(in *Input) error {
	checks := []struct {
		name string
		q    units.Quantity
		dim  units.Dimension
	}{
		{"mass flow", in.MassFlow, units.MassFlow},
		{"c*", in.CStar, units.Velocity},
		{"chamber pressure", in.ChamberPressure, units.Pressure},
	}
	for _, c := range checks {
		if !c.q.IsSet() {
			return fmt.Errorf("%w: %s required", ErrInvalidInput, c.name)
		}
		if err := c.q.Check(c.dim); err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}
		if c.q.SI() <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidInput, c.name)
		}
	}
	if !in.AmbientPressure.IsSet() {
		in.AmbientPressure = units.Must(1, "atm")
	}
	if !in.ExitPressure.IsSet() {
		in.ExitPressure = in.AmbientPressure
	}
	if in.Gamma == 0 {
		in.Gamma = 1.2
	}
	if in.Gamma <= 1 {
		return fmt.Errorf("%w: gamma must exceed 1", ErrInvalidInput)
	}
	if in.ContractionRatio == 0 {
		in.ContractionRatio = 4
	}
	if in.ContractionRatio < 1 {
		return fmt.Errorf("%w: contraction ratio below 1", ErrInvalidInput)
	}
	if !in.LStar.IsSet() {
		in.LStar = units.Must(1.1, "m")
	}
	if err := in.LStar.Check(units.Length); err != nil {
		return fmt.Errorf("L*: %w", err)
	}
	if !in.DivergentAngle.IsSet() {
		in.DivergentAngle = units.Must(15, "deg")
	}
	if !in.ConvergentAngle.IsSet() {
		in.ConvergentAngle = units.Must(30, "deg")
	}
	if err := in.ExitPressure.Check(units.Pressure); err != nil {
		return fmt.Errorf("exit pressure: %w", err)
	}
	if in.ExitPressure.SI() <= 0 {
		return fmt.Errorf("%w: exit pressure must be positive", ErrInvalidInput)
	}
	return in.AmbientPressure.Check(units.Pressure)
}
