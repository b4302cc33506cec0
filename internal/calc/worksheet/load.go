package worksheet

import (
	"fmt"

	"Thruster/internal/calc/materials"
	"Thruster/internal/calc/tank"
	"Thruster/internal/units"

	"gopkg.in/ini.v1"
)

// LoadFile reads a worksheet ini file. Keys missing from the file keep the
// values of Defaults; a [materials] section extends the material catalog.
func LoadFile(path string) (Inputs, error) {
	file, err := ini.Load(path)
	if err != nil {
		return Inputs{}, fmt.Errorf("load worksheet %s: %w", path, err)
	}
	return Load(file)
}

func Load(file *ini.File) (Inputs, error) {
	if file.HasSection("materials") {
		if err := materials.LoadSection(file.Section("materials")); err != nil {
			return Inputs{}, err
		}
	}

	in := Defaults()
	in.Title = file.Section("worksheet").Key("title").MustString(in.Title)

	d := decoder{file: file}

	d.section("thruster")
	d.quantity("thrust", &in.Propellant.Thrust)
	d.quantity("isp", &in.Propellant.Isp)
	d.quantity("g0", &in.Propellant.G0)
	d.quantity("cstar", &in.Nozzle.CStar)
	d.quantity("chamber_pressure", &in.Nozzle.ChamberPressure)
	d.quantity("exit_pressure", &in.Nozzle.ExitPressure)
	d.quantity("ambient_pressure", &in.Nozzle.AmbientPressure)
	d.float("gamma", &in.Nozzle.Gamma)
	d.float("area_ratio", &in.Nozzle.AreaRatio)
	d.float("contraction_ratio", &in.Nozzle.ContractionRatio)
	d.quantity("lstar", &in.Nozzle.LStar)
	d.quantity("divergent_angle", &in.Nozzle.DivergentAngle)
	d.quantity("convergent_angle", &in.Nozzle.ConvergentAngle)

	d.section("propellant")
	d.float("mixture_ratio", &in.Propellant.MixtureRatio)
	d.quantity("burn_time", &in.Propellant.BurnTime)
	d.quantity("oxidizer_density", &in.Propellant.OxidizerDensity)
	d.quantity("fuel_density", &in.Propellant.FuelDensity)
	d.float("ullage", &in.Propellant.Ullage)

	d.section("tank")
	d.quantity("pressure", &in.Tank.Pressure)
	d.quantity("inner_radius", &in.Tank.InnerRadius)
	d.quantity("thickness", &in.Tank.Thickness)
	d.quantity("strength", &in.Tank.Strength)
	in.Tank.Material = d.sec.Key("material").MustString(in.Tank.Material)
	in.Tank.Heads = tank.Heads(d.sec.Key("heads").MustString(string(in.Tank.Heads)))
	in.Tank.StressUnit = d.sec.Key("stress_unit").MustString(in.Tank.StressUnit)
	d.float("required_fos", &in.Tank.RequiredFOS)

	d.section("flight")
	d.quantity("dry_mass", &in.Flight.DryMass)
	d.float("drag_coefficient", &in.Flight.DragCoefficient)
	d.quantity("diameter", &in.Flight.Diameter)
	d.quantity("air_density", &in.Flight.AirDensity)

	if d.err != nil {
		return Inputs{}, d.err
	}
	return in, nil
}

// decoder keeps the first error so the field list above reads straight.
type decoder struct {
	file *ini.File
	sec  *ini.Section
	err  error
}

func (d *decoder) section(name string) {
	d.sec = d.file.Section(name)
}

func (d *decoder) quantity(key string, dst *units.Quantity) {
	if d.err != nil || !d.sec.HasKey(key) {
		return
	}
	q, err := units.Parse(d.sec.Key(key).String())
	if err != nil {
		d.err = fmt.Errorf("[%s] %s: %w", d.sec.Name(), key, err)
		return
	}
	*dst = q
}

func (d *decoder) float(key string, dst *float64) {
	if d.err != nil || !d.sec.HasKey(key) {
		return
	}
	v, err := d.sec.Key(key).Float64()
	if err != nil {
		d.err = fmt.Errorf("[%s] %s: %w", d.sec.Name(), key, err)
		return
	}
	*dst = v
}
