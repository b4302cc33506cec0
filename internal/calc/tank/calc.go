package tank

import (
	"errors"
	"fmt"
	"math"

	"Thruster/internal/calc/materials"
	"Thruster/internal/calc/stress"
	"Thruster/internal/units"
)

var ErrInvalidInput = errors.New("invalid tank input")

type Heads string

const (
	HeadsFlat          Heads = "flat"
	HeadsHemispherical Heads = "hemispherical"
)

type Input struct {
	Name        string         `json:"name"`
	Pressure    units.Quantity `json:"pressure"`
	InnerRadius units.Quantity `json:"inner_radius"`
	Thickness   units.Quantity `json:"thickness"`
	Material    string         `json:"material"`
	Strength    units.Quantity `json:"strength"` // overrides the material yield
	RequiredFOS float64        `json:"required_fos"`
	Volume      units.Quantity `json:"volume"`
	Heads       Heads          `json:"heads"`
	StressUnit  string         `json:"stress_unit"`
}

type Result struct {
	Name               string         `json:"name,omitempty"`
	MeanRadius         units.Quantity `json:"mean_radius"`
	HoopStress         units.Quantity `json:"hoop_stress"`
	LongitudinalStress units.Quantity `json:"longitudinal_stress"`
	Strength           units.Quantity `json:"strength"`
	FOSHoop            float64        `json:"fos_hoop"`
	FOSLongitudinal    float64        `json:"fos_longitudinal"`
	FOS                float64        `json:"fos"`
	RequiredFOS        float64        `json:"required_fos"`
	OK                 bool           `json:"ok"`
	WallRatio          float64        `json:"wall_ratio"`
	ThinWall           bool           `json:"thin_wall"`
	CylinderLength     units.Quantity `json:"cylinder_length"`
	ShellMass          units.Quantity `json:"shell_mass"`
	Warnings           []string       `json:"warnings,omitempty"`
	Notes              string         `json:"notes"`
}

// Calculate checks a cylindrical tank wall against its allowable stress.
// Stresses use the mean radius; geometries with t/r above
// stress.ThinWallLimit are still evaluated but carry a warning.
func Calculate(in Input) (Result, error) {
	if !in.Pressure.IsSet() || in.Pressure.SI() <= 0 {
		return Result{}, fmt.Errorf("%w: pressure must be positive", ErrInvalidInput)
	}
	if !in.InnerRadius.IsSet() || in.InnerRadius.SI() <= 0 {
		return Result{}, fmt.Errorf("%w: inner radius must be positive", ErrInvalidInput)
	}
	if !in.Thickness.IsSet() || in.Thickness.SI() <= 0 {
		return Result{}, fmt.Errorf("%w: thickness must be positive", ErrInvalidInput)
	}
	if in.RequiredFOS <= 0 {
		in.RequiredFOS = 1.5
	}
	if in.Heads == "" {
		in.Heads = HeadsHemispherical
	}
	if in.StressUnit == "" {
		in.StressUnit = "psi"
	}

	var mat materials.Material
	strength := in.Strength
	if !strength.IsSet() || in.Material != "" {
		if in.Material == "" {
			return Result{}, fmt.Errorf("%w: material or strength required", ErrInvalidInput)
		}
		var err error
		if mat, err = materials.Lookup(in.Material); err != nil {
			return Result{}, err
		}
		if !strength.IsSet() {
			strength = mat.Yield
		}
	}

	r, err := stress.MeanRadius(in.InnerRadius, in.Thickness)
	if err != nil {
		return Result{}, err
	}
	hoop, err := stress.Hoop(in.Pressure, r, in.Thickness)
	if err != nil {
		return Result{}, err
	}
	long, err := stress.Longitudinal(in.Pressure, r, in.Thickness)
	if err != nil {
		return Result{}, err
	}
	fosHoop, err := stress.FOS(strength, hoop)
	if err != nil {
		return Result{}, err
	}
	fosLong, err := stress.FOS(strength, long)
	if err != nil {
		return Result{}, err
	}
	thin, ratio, err := stress.ThinWall(r, in.Thickness)
	if err != nil {
		return Result{}, err
	}

	hoopOut, err := hoop.To(in.StressUnit)
	if err != nil {
		return Result{}, fmt.Errorf("stress unit: %w", err)
	}
	longOut, err := long.To(in.StressUnit)
	if err != nil {
		return Result{}, fmt.Errorf("stress unit: %w", err)
	}

	res := Result{
		Name:               in.Name,
		MeanRadius:         r,
		HoopStress:         hoopOut,
		LongitudinalStress: longOut,
		Strength:           strength,
		FOSHoop:            fosHoop,
		FOSLongitudinal:    fosLong,
		FOS:                math.Min(fosHoop, fosLong),
		RequiredFOS:        in.RequiredFOS,
		WallRatio:          ratio,
		ThinWall:           thin,
		Notes:              "Thin-walled cylinder, stresses at mean radius.",
	}
	res.OK = res.FOS >= in.RequiredFOS
	if !thin {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"t/r = %.3f exceeds %.2f; thin-wall stresses underestimate the wall load", ratio, stress.ThinWallLimit))
	}
	if !res.OK {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"factor of safety %.2f below required %.2f", res.FOS, in.RequiredFOS))
	}

	if in.Volume.IsSet() {
		if err := sizeShell(in, mat, &res); err != nil {
			return Result{}, err
		}
	}
	return res, nil
}

// sizeShell finds the cylinder length holding in.Volume and, when the
// material density is known, the mass of the shell.
func sizeShell(in Input, mat materials.Material, res *Result) error {
	if err := in.Volume.Check(units.Volume); err != nil {
		return fmt.Errorf("volume: %w", err)
	}
	ri := in.InnerRadius.ToBase()
	ro, err := ri.Add(in.Thickness)
	if err != nil {
		return err
	}
	ri2, ro2 := ri.Mul(ri), ro.Mul(ro)
	ri3, ro3 := ri2.Mul(ri), ro2.Mul(ro)
	section := ri2.Scale(math.Pi)
	var headVolume units.Quantity
	if in.Heads == HeadsHemispherical {
		headVolume = ri3.Scale(4 * math.Pi / 3)
	} else {
		headVolume = units.Must(0, "m^3")
	}
	barrel, err := in.Volume.Sub(headVolume)
	if err != nil {
		return err
	}
	if barrel.SI() < 0 {
		res.Warnings = append(res.Warnings, "heads alone hold the volume; radius is oversized")
		barrel = units.Must(0, "m^3")
	}
	length, err := barrel.Div(section)
	if err != nil {
		return err
	}
	res.CylinderLength = length.MustTo("m")

	if !mat.Density.IsSet() {
		return nil
	}
	shellArea, err := ro2.Sub(ri2)
	if err != nil {
		return err
	}
	metal := shellArea.Scale(math.Pi).Mul(length)
	if in.Heads == HeadsHemispherical {
		shell, err := ro3.Sub(ri3)
		if err != nil {
			return err
		}
		if metal, err = metal.Add(shell.Scale(4 * math.Pi / 3)); err != nil {
			return err
		}
	}
	mass, err := metal.Mul(mat.Density).To("kg")
	if err != nil {
		return err
	}
	res.ShellMass = mass
	return nil
}
