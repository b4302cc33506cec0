package stress

import (
	"Thruster/internal/units"
)

type Input struct {
	Pressure  units.Quantity `json:"pressure"`
	Radius    units.Quantity `json:"radius"`
	Thickness units.Quantity `json:"thickness"`
	Strength  units.Quantity `json:"strength"`
	// Unit for reported stresses; defaults to psi.
	Unit string `json:"unit"`
}

type Result struct {
	Hoop            units.Quantity `json:"hoop"`
	Longitudinal    units.Quantity `json:"longitudinal"`
	FOSHoop         float64        `json:"fos_hoop"`
	FOSLongitudinal float64        `json:"fos_longitudinal"`
	WallRatio       float64        `json:"wall_ratio"`
	ThinWall        bool           `json:"thin_wall"`
}

// Calculate runs both stress formulas and their factors of safety for one
// vessel. Radius is used as given.
func Calculate(in Input) (Result, error) {
	unit := in.Unit
	if unit == "" {
		unit = "psi"
	}
	hoop, err := Hoop(in.Pressure, in.Radius, in.Thickness)
	if err != nil {
		return Result{}, err
	}
	long, err := Longitudinal(in.Pressure, in.Radius, in.Thickness)
	if err != nil {
		return Result{}, err
	}
	if hoop, err = hoop.To(unit); err != nil {
		return Result{}, err
	}
	if long, err = long.To(unit); err != nil {
		return Result{}, err
	}
	res := Result{Hoop: hoop, Longitudinal: long}
	if res.FOSHoop, err = FOS(in.Strength, hoop); err != nil {
		return Result{}, err
	}
	if res.FOSLongitudinal, err = FOS(in.Strength, long); err != nil {
		return Result{}, err
	}
	res.ThinWall, res.WallRatio, err = ThinWall(in.Radius, in.Thickness)
	if err != nil {
		return Result{}, err
	}
	return res, nil
}
