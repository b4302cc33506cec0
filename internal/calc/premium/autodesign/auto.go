package autodesign

import (
	"errors"
	"fmt"
	"math"

	"Thruster/internal/calc/materials"
	"Thruster/internal/calc/tank"
	"Thruster/internal/units"
)

var ErrUnreachable = errors.New("required factor of safety unreachable")

type ThicknessInput struct {
	Pressure    units.Quantity `json:"pressure"`
	InnerRadius units.Quantity `json:"inner_radius"`
	Material    string         `json:"material"`
	Strength    units.Quantity `json:"strength"`
	RequiredFOS float64        `json:"required_fos"`
	Gauge       units.Quantity `json:"gauge"` // round up to a multiple of this stock step
}

type ThicknessResult struct {
	Exact     units.Quantity `json:"exact"`
	Thickness units.Quantity `json:"thickness"`
	Check     tank.Result    `json:"check"`
	Notes     string         `json:"notes"`
}

// Thickness returns the thinnest wall meeting RequiredFOS against the
// longitudinal stress at the mean radius:
//
//	S/FOS = P*(ri + t/2)/t  =>  t = P*ri / (S/FOS - P/2)
func Thickness(in ThicknessInput) (ThicknessResult, error) {
	if !in.Pressure.IsSet() || !in.InnerRadius.IsSet() {
		return ThicknessResult{}, fmt.Errorf("%w: pressure and inner radius required", tank.ErrInvalidInput)
	}
	if in.RequiredFOS <= 0 {
		in.RequiredFOS = 1.5
	}
	strength := in.Strength
	if !strength.IsSet() {
		m, err := materials.Lookup(in.Material)
		if err != nil {
			return ThicknessResult{}, err
		}
		strength = m.Yield
	}
	if err := in.Pressure.Check(units.Pressure); err != nil {
		return ThicknessResult{}, fmt.Errorf("pressure: %w", err)
	}
	if err := in.InnerRadius.Check(units.Length); err != nil {
		return ThicknessResult{}, fmt.Errorf("inner radius: %w", err)
	}

	allow, err := strength.DivScalar(in.RequiredFOS)
	if err != nil {
		return ThicknessResult{}, err
	}
	denom, err := allow.Sub(in.Pressure.Scale(0.5))
	if err != nil {
		return ThicknessResult{}, fmt.Errorf("strength: %w", err)
	}
	if denom.SI() <= 0 {
		return ThicknessResult{}, fmt.Errorf("%w: allowable %s is at most half the pressure", ErrUnreachable, allow.Format(0))
	}
	exact, err := in.Pressure.Mul(in.InnerRadius).Div(denom)
	if err != nil {
		return ThicknessResult{}, err
	}
	exact = exact.MustTo(in.InnerRadius.Units())

	t := exact
	if in.Gauge.IsSet() {
		if err := in.Gauge.Check(units.Length); err != nil {
			return ThicknessResult{}, fmt.Errorf("gauge: %w", err)
		}
		steps, err := exact.Div(in.Gauge)
		if err != nil {
			return ThicknessResult{}, err
		}
		n, err := steps.Float()
		if err != nil {
			return ThicknessResult{}, fmt.Errorf("gauge: %w", err)
		}
		t = in.Gauge.Scale(math.Ceil(n - 1e-9))
	}

	check, err := tank.Calculate(tank.Input{
		Pressure:    in.Pressure,
		InnerRadius: in.InnerRadius,
		Thickness:   t,
		Material:    in.Material,
		Strength:    in.Strength,
		RequiredFOS: in.RequiredFOS,
	})
	if err != nil {
		return ThicknessResult{}, err
	}
	return ThicknessResult{
		Exact:     exact,
		Thickness: t,
		Check:     check,
		Notes:     "Minimum wall for the longitudinal stress at the mean radius.",
	}, nil
}
