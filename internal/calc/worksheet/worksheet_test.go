package worksheet

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Thruster/internal/units"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"
)

func TestEvaluateDefaults(t *testing.T) {
	sheet, err := Evaluate(Defaults())
	require.NoError(t, err)
	assert.Equal(t, "350 lbf Thruster Sizing", sheet.Title)
	require.Len(t, sheet.Sections, 5)

	r := sheet.Results
	assert.InDelta(t, 350*9.80665/(260*32.2*0.3048), r.Propellant.MassFlow.MustTo("lb/s").Magnitude(), 1e-9)

	assert.InDelta(t, 4050, r.OxidizerTank.HoopStress.MustTo("psi").Magnitude(), 1e-9)
	assert.InDelta(t, 8100, r.FuelTank.LongitudinalStress.MustTo("psi").Magnitude(), 1e-9)
	assert.True(t, r.OxidizerTank.OK)
	// ethanol is less dense than LOX, so the fuel tank runs longer
	assert.Greater(t, r.FuelTank.CylinderLength.SI(), r.OxidizerTank.CylinderLength.SI())

	dry := 25 + r.OxidizerTank.ShellMass.SI() + r.FuelTank.ShellMass.SI()
	assert.InDelta(t, dry+r.Propellant.PropellantMass.SI(), r.Flight.LiftoffMass.SI(), 1e-9)
	assert.Greater(t, r.Flight.Apogee.SI(), 0.0)

	// 0.25 in wall on a 2.25 in mean radius is outside the thin-wall range
	var thin int
	for _, w := range sheet.Warnings {
		if assert.NotEmpty(t, w) && bytes.Contains([]byte(w), []byte("t/r")) {
			thin++
		}
	}
	assert.Equal(t, 2, thin)
}

func TestEvaluateWrapsStageErrors(t *testing.T) {
	in := Defaults()
	in.Tank.Material = "unobtainium"
	_, err := Evaluate(in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oxidizer tank")

	in = Defaults()
	in.Nozzle.ChamberPressure = units.Must(650, "in")
	_, err = Evaluate(in)
	assert.ErrorIs(t, err, units.ErrDimensionMismatch)
}

func TestEvaluateWarnsOnThrustMismatch(t *testing.T) {
	in := Defaults()
	in.Nozzle.CStar = units.Must(1200, "m/s")
	sheet, err := Evaluate(in)
	require.NoError(t, err)
	assert.Contains(t, sheet.Warnings[0], "nozzle thrust")
}

func TestLoad(t *testing.T) {
	file, err := ini.Load([]byte(`
[worksheet]
title = Bench thruster

[thruster]
thrust = 500 lbf
chamber_pressure = 300 psi
gamma = 1.22

[propellant]
burn_time = 5 s

[tank]
material = SS316
thickness = 0.1 in

[materials]
SS316 = 30 ksi, 8000 kg/m^3
`))
	require.NoError(t, err)
	in, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "Bench thruster", in.Title)
	assert.Equal(t, "500 lbf", in.Propellant.Thrust.String())
	assert.Equal(t, 1.22, in.Nozzle.Gamma)
	assert.Equal(t, "SS316", in.Tank.Material)
	assert.Equal(t, 1.3, in.Propellant.MixtureRatio)

	sheet, err := Evaluate(in)
	require.NoError(t, err)
	assert.InDelta(t, 30000, sheet.Results.FuelTank.Strength.MustTo("psi").Magnitude(), 1e-9)
}

func TestLoadRejectsBadValues(t *testing.T) {
	file, err := ini.Load([]byte("[thruster]\nthrust = 350 furlongs\n"))
	require.NoError(t, err)
	_, err = Load(file)
	assert.ErrorIs(t, err, units.ErrUnknownUnit)

	file, err = ini.Load([]byte("[propellant]\nmixture_ratio = lots\n"))
	require.NoError(t, err)
	_, err = Load(file)
	assert.Error(t, err)
}

func TestHandlerMergesOverDefaults(t *testing.T) {
	body := `{"title":"Hot fire","propellant":{"burn_time":"4 s"}}`
	rec := httptest.NewRecorder()
	(&Handler{}).Evaluate(rec, httptest.NewRequest(http.MethodPost, "/api/user/worksheet", bytes.NewBufferString(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var sheet Sheet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sheet))
	assert.Equal(t, "Hot fire", sheet.Title)
	assert.InDelta(t, 4*sheet.Results.Propellant.MassFlow.SI(), sheet.Results.Propellant.PropellantMass.SI(), 1e-9)
}
