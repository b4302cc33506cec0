// Package worksheet evaluates the full thruster sizing sheet. Each stage is
// a pure calculation; named intermediates flow from one stage to the next.
package worksheet

import (
	"fmt"
	"math"

	"Thruster/internal/calc/nozzle"
	"Thruster/internal/calc/propellant"
	"Thruster/internal/calc/tank"
	"Thruster/internal/calc/trajectory"
	"Thruster/internal/units"
)

// Inputs is the explicit configuration of a sheet. Fields filled by earlier
// stages (nozzle mass flow, tank volumes, flight propellant mass) are
// overwritten during evaluation.
type Inputs struct {
	Title      string           `json:"title"`
	Propellant propellant.Input `json:"propellant"`
	Nozzle     nozzle.Input     `json:"nozzle"`
	Tank       tank.Input       `json:"tank"`
	Flight     trajectory.Input `json:"flight"`
}

type Row struct {
	Name  string         `json:"name"`
	Value units.Quantity `json:"value"`
	Prec  int            `json:"-"`
}

type Section struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
}

type Results struct {
	Propellant   propellant.Result `json:"propellant"`
	Nozzle       nozzle.Result     `json:"nozzle"`
	OxidizerTank tank.Result       `json:"oxidizer_tank"`
	FuelTank     tank.Result       `json:"fuel_tank"`
	Flight       trajectory.Result `json:"flight"`
}

type Sheet struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
	Warnings []string  `json:"warnings,omitempty"`
	Results  Results   `json:"results"`
}

// Defaults returns the 350 lbf thruster sheet.
func Defaults() Inputs {
	return Inputs{
		Title: "350 lbf Thruster Sizing",
		Propellant: propellant.Input{
			Thrust:          units.Must(350, "lbf"),
			Isp:             units.Must(260, "s"),
			G0:              units.Must(32.2, "ft/s^2"),
			MixtureRatio:    1.3,
			BurnTime:        units.Must(10, "s"),
			OxidizerDensity: units.Must(1141, "kg/m^3"),
			FuelDensity:     units.Must(789, "kg/m^3"),
			Ullage:          0.1,
		},
		Nozzle: nozzle.Input{
			CStar:            units.Must(1640, "m/s"),
			ChamberPressure:  units.Must(650, "psi"),
			ExitPressure:     units.Must(14.7, "psi"),
			AmbientPressure:  units.Must(14.7, "psi"),
			Gamma:            1.2,
			ContractionRatio: 4,
			LStar:            units.Must(1.1, "m"),
			DivergentAngle:   units.Must(15, "deg"),
			ConvergentAngle:  units.Must(30, "deg"),
		},
		Tank: tank.Input{
			Pressure:    units.Must(900, "psi"),
			InnerRadius: units.Must(2.125, "in"),
			Thickness:   units.Must(0.25, "in"),
			Material:    "Al6061-T6",
			RequiredFOS: 1.5,
			Heads:       tank.HeadsHemispherical,
		},
		Flight: trajectory.Input{
			DryMass:         units.Must(25, "kg"),
			DragCoefficient: 0.45,
			Diameter:        units.Must(6, "in"),
		},
	}
}

// ThrustTolerance is the relative gap between requested and nozzle thrust
// above which Evaluate warns.
const ThrustTolerance = 0.05

// Evaluate runs propellant, nozzle, both tanks and the flight estimate in
// order. Tank shell masses are added to the flight dry mass.
func Evaluate(in Inputs) (Sheet, error) {
	var (
		res  Results
		err  error
		warn []string
	)
	if res.Propellant, err = propellant.Calculate(in.Propellant); err != nil {
		return Sheet{}, fmt.Errorf("propellant: %w", err)
	}
	p := res.Propellant

	nz := in.Nozzle
	nz.MassFlow = p.MassFlow
	if res.Nozzle, err = nozzle.Calculate(nz); err != nil {
		return Sheet{}, fmt.Errorf("nozzle: %w", err)
	}
	if gap, err := relativeGap(res.Nozzle.Thrust, in.Propellant.Thrust); err == nil && gap > ThrustTolerance {
		warn = append(warn, fmt.Sprintf(
			"nozzle thrust %s differs from requested %s by %.1f%%; check c* against Isp",
			res.Nozzle.Thrust.Format(1), in.Propellant.Thrust.Format(1), gap*100))
	}

	ox := in.Tank
	ox.Name = "oxidizer"
	ox.Volume = p.OxidizerTankVolume
	if res.OxidizerTank, err = tank.Calculate(ox); err != nil {
		return Sheet{}, fmt.Errorf("oxidizer tank: %w", err)
	}
	fuel := in.Tank
	fuel.Name = "fuel"
	fuel.Volume = p.FuelTankVolume
	if res.FuelTank, err = tank.Calculate(fuel); err != nil {
		return Sheet{}, fmt.Errorf("fuel tank: %w", err)
	}
	for _, w := range res.OxidizerTank.Warnings {
		warn = append(warn, "oxidizer tank: "+w)
	}
	for _, w := range res.FuelTank.Warnings {
		warn = append(warn, "fuel tank: "+w)
	}

	fl := in.Flight
	if !fl.Thrust.IsSet() {
		fl.Thrust = in.Propellant.Thrust
	}
	if !fl.BurnTime.IsSet() {
		fl.BurnTime = in.Propellant.BurnTime
	}
	fl.PropellantMass = p.PropellantMass
	if fl.DryMass, err = addShells(fl.DryMass, res.OxidizerTank, res.FuelTank); err != nil {
		return Sheet{}, fmt.Errorf("flight: %w", err)
	}
	if res.Flight, err = trajectory.Calculate(fl); err != nil {
		return Sheet{}, fmt.Errorf("flight: %w", err)
	}

	title := in.Title
	if title == "" {
		title = "Thruster Sizing"
	}
	return Sheet{
		Title:    title,
		Sections: sections(res),
		Warnings: warn,
		Results:  res,
	}, nil
}

func addShells(dry units.Quantity, tanks ...tank.Result) (units.Quantity, error) {
	if !dry.IsSet() {
		dry = units.Must(0, "kg")
	}
	for _, t := range tanks {
		if !t.ShellMass.IsSet() {
			continue
		}
		var err error
		if dry, err = dry.Add(t.ShellMass); err != nil {
			return units.Quantity{}, err
		}
	}
	return dry, nil
}

func relativeGap(got, want units.Quantity) (float64, error) {
	d, err := got.Sub(want)
	if err != nil {
		return 0, err
	}
	r, err := d.Div(want)
	if err != nil {
		return 0, err
	}
	f, err := r.Float()
	return math.Abs(f), err
}

func sections(r Results) []Section {
	p, n, ox, fu, f := r.Propellant, r.Nozzle, r.OxidizerTank, r.FuelTank, r.Flight
	return []Section{
		{Title: "Propellant", Rows: []Row{
			{"Mass flow", p.MassFlow, 4},
			{"Mass flow", p.MassFlow.MustTo("lb/s"), 4},
			{"Oxidizer flow", p.OxidizerFlow, 4},
			{"Fuel flow", p.FuelFlow, 4},
			{"Exhaust velocity", p.ExhaustVelocity, 1},
			{"Total impulse", p.TotalImpulse, 0},
			{"Oxidizer mass", p.OxidizerMass, 3},
			{"Fuel mass", p.FuelMass, 3},
			{"Oxidizer tank volume", p.OxidizerTankVolume, 3},
			{"Fuel tank volume", p.FuelTankVolume, 3},
		}},
		{Title: "Nozzle and chamber", Rows: []Row{
			{"Throat area", n.ThroatArea, 2},
			{"Throat diameter", n.ThroatDiameter, 2},
			{"Area ratio", units.Number(n.AreaRatio), 3},
			{"Exit diameter", n.ExitDiameter, 2},
			{"Chamber diameter", n.ChamberDiameter, 2},
			{"Chamber volume", n.ChamberVolume, 1},
			{"Chamber length", n.ChamberLength, 1},
			{"Convergent length", n.ConvergentLength, 1},
			{"Divergent length", n.DivergentLength, 1},
			{"Thrust coefficient", units.Number(n.ThrustCoeff), 4},
			{"Thrust", n.Thrust.MustTo("lbf"), 1},
			{"Isp", n.Isp, 1},
		}},
		tankSection("Oxidizer tank", ox),
		tankSection("Fuel tank", fu),
		{Title: "Flight", Rows: []Row{
			{"Liftoff mass", f.LiftoffMass, 2},
			{"Thrust to weight", units.Number(f.ThrustToWeight), 2},
			{"Burnout velocity", f.BurnoutVelocity, 1},
			{"Burnout altitude", f.BurnoutAltitude, 0},
			{"Coast time", f.CoastTime, 1},
			{"Apogee", f.Apogee, 0},
			{"Apogee", f.Apogee.MustTo("ft"), 0},
			{"Apogee without drag", f.ApogeeNoDrag, 0},
		}},
	}
}

func tankSection(title string, t tank.Result) Section {
	rows := []Row{
		{"Mean radius", t.MeanRadius, 3},
		{"Hoop stress", t.HoopStress, 0},
		{"Longitudinal stress", t.LongitudinalStress, 0},
		{"FOS hoop", units.Number(t.FOSHoop), 2},
		{"FOS longitudinal", units.Number(t.FOSLongitudinal), 2},
		{"Wall ratio t/r", units.Number(t.WallRatio), 3},
	}
	if t.CylinderLength.IsSet() {
		rows = append(rows, Row{"Cylinder length", t.CylinderLength.MustTo("mm"), 1})
	}
	if t.ShellMass.IsSet() {
		rows = append(rows, Row{"Shell mass", t.ShellMass, 3})
	}
	return Section{Title: title, Rows: rows}
}

// Display renders the row value with its precision.
func (r Row) Display() string {
	return r.Value.Format(r.Prec)
}
