// Package stress holds thin-walled cylinder formulas for a vessel under
// internal pressure. Both stress formulas assume t << r and do not check
// it; use ThinWall to decide whether a geometry is inside the model.
package stress

import (
	"fmt"

	"Thruster/internal/units"
)

// ThinWallLimit is the largest t/r ratio treated as thin-walled.
const ThinWallLimit = 0.1

// Hoop returns the circumferential stress P*r/(2t).
func Hoop(P, r, t units.Quantity) (units.Quantity, error) {
	if err := checkVessel(P, r, t); err != nil {
		return units.Quantity{}, err
	}
	return P.Mul(r).Div(t.Scale(2))
}

// Longitudinal returns the axial stress P*r/t.
func Longitudinal(P, r, t units.Quantity) (units.Quantity, error) {
	if err := checkVessel(P, r, t); err != nil {
		return units.Quantity{}, err
	}
	return P.Mul(r).Div(t)
}

// FOS returns strength/stress as a pure number.
func FOS(strength, stress units.Quantity) (float64, error) {
	if err := strength.Check(units.Pressure); err != nil {
		return 0, fmt.Errorf("strength: %w", err)
	}
	if err := stress.Check(units.Pressure); err != nil {
		return 0, fmt.Errorf("stress: %w", err)
	}
	ratio, err := strength.Div(stress)
	if err != nil {
		return 0, err
	}
	return ratio.Float()
}

// MeanRadius is the average of the inner and outer radius.
func MeanRadius(inner, t units.Quantity) (units.Quantity, error) {
	if err := inner.Check(units.Length); err != nil {
		return units.Quantity{}, fmt.Errorf("radius: %w", err)
	}
	if err := t.Check(units.Length); err != nil {
		return units.Quantity{}, fmt.Errorf("thickness: %w", err)
	}
	return inner.Add(t.Scale(0.5))
}

// ThinWall reports whether t/r is within ThinWallLimit, along with the ratio.
func ThinWall(r, t units.Quantity) (bool, float64, error) {
	q, err := t.Div(r)
	if err != nil {
		return false, 0, err
	}
	ratio, err := q.Float()
	if err != nil {
		return false, 0, err
	}
	return ratio <= ThinWallLimit, ratio, nil
}

func checkVessel(P, r, t units.Quantity) error {
	if err := P.Check(units.Pressure); err != nil {
		return fmt.Errorf("pressure: %w", err)
	}
	if err := r.Check(units.Length); err != nil {
		return fmt.Errorf("radius: %w", err)
	}
	if err := t.Check(units.Length); err != nil {
		return fmt.Errorf("thickness: %w", err)
	}
	return nil
}
