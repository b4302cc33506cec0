package stress

import (
	"testing"

	"Thruster/internal/units"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenario900psi(t *testing.T) {
	P := units.Must(900, "psi")
	r := units.Must(2.25, "in")
	th := units.Must(0.25, "in")

	hoop, err := Hoop(P, r, th)
	require.NoError(t, err)
	assert.InDelta(t, 4050, hoop.MustTo("psi").Magnitude(), 1e-9)

	long, err := Longitudinal(P, r, th)
	require.NoError(t, err)
	assert.InDelta(t, 8100, long.MustTo("psi").Magnitude(), 1e-9)

	strength := units.Must(35000, "psi")
	fh, err := FOS(strength, hoop)
	require.NoError(t, err)
	assert.InDelta(t, 8.64, fh, 0.005)
	fl, err := FOS(strength, long)
	require.NoError(t, err)
	assert.InDelta(t, 4.32, fl, 0.005)
}

func TestLongitudinalIsTwiceHoop(t *testing.T) {
	cases := []struct{ p, r, t units.Quantity }{
		{units.Must(900, "psi"), units.Must(2.25, "in"), units.Must(0.25, "in")},
		{units.Must(3, "MPa"), units.Must(150, "mm"), units.Must(2, "mm")},
		{units.Must(40, "bar"), units.Must(0.3, "m"), units.Must(0.1, "in")},
		{units.Must(1e-3, "psi"), units.Must(1e3, "ft"), units.Must(1e-2, "mm")},
	}
	for _, c := range cases {
		hoop, err := Hoop(c.p, c.r, c.t)
		require.NoError(t, err)
		long, err := Longitudinal(c.p, c.r, c.t)
		require.NoError(t, err)
		assert.InEpsilon(t, hoop.Scale(2).SI(), long.SI(), 1e-12)
	}
}

func TestFOSTimesStressIsStrength(t *testing.T) {
	strength := units.Must(35, "ksi")
	for _, s := range []units.Quantity{
		units.Must(4050, "psi"),
		units.Must(120, "MPa"),
		units.Must(0.5, "GPa"),
	} {
		f, err := FOS(strength, s)
		require.NoError(t, err)
		assert.InEpsilon(t, strength.SI(), s.Scale(f).SI(), 1e-12)
	}
}

func TestUnitInvariance(t *testing.T) {
	imperial, err := Hoop(units.Must(900, "psi"), units.Must(2.25, "in"), units.Must(0.25, "in"))
	require.NoError(t, err)

	P := units.Must(900, "psi").MustTo("Pa")
	r := units.Must(2.25, "in").MustTo("m")
	th := units.Must(0.25, "in").MustTo("m")
	metric, err := Hoop(P, r, th)
	require.NoError(t, err)

	assert.InEpsilon(t, imperial.MustTo("Pa").Magnitude(), metric.MustTo("Pa").Magnitude(), 1e-12)
}

func TestDimensionMismatch(t *testing.T) {
	P := units.Must(900, "psi")
	_, err := Hoop(P, units.Must(900, "psi"), units.Must(0.25, "in"))
	assert.ErrorIs(t, err, units.ErrDimensionMismatch)
	_, err = Hoop(units.Must(10, "kg"), units.Must(2, "in"), units.Must(0.25, "in"))
	assert.ErrorIs(t, err, units.ErrDimensionMismatch)
	_, err = Longitudinal(P, units.Must(2, "in"), units.Must(1, "lb"))
	assert.ErrorIs(t, err, units.ErrDimensionMismatch)

	_, err = FOS(units.Must(35000, "psi"), units.Must(2, "in"))
	assert.ErrorIs(t, err, units.ErrDimensionMismatch)
	_, err = FOS(units.Must(2, "lbf"), units.Must(4050, "psi"))
	assert.ErrorIs(t, err, units.ErrDimensionMismatch)
}

func TestZeroThicknessFails(t *testing.T) {
	P := units.Must(900, "psi")
	r := units.Must(2.25, "in")
	_, err := Hoop(P, r, units.Must(0, "in"))
	assert.ErrorIs(t, err, units.ErrDivisionByZero)
	_, err = Longitudinal(P, r, units.Must(0, "mm"))
	assert.ErrorIs(t, err, units.ErrDivisionByZero)
	_, err = FOS(units.Must(35000, "psi"), units.Must(0, "psi"))
	assert.ErrorIs(t, err, units.ErrDivisionByZero)
}

func TestMeanRadius(t *testing.T) {
	r, err := MeanRadius(units.Must(2.0, "in"), units.Must(0.5, "in"))
	require.NoError(t, err)
	assert.InDelta(t, 2.25, r.MustTo("in").Magnitude(), 1e-12)

	r, err = MeanRadius(units.Must(50, "mm"), units.Must(0.1, "in"))
	require.NoError(t, err)
	assert.Equal(t, "mm", r.Units())
	assert.InDelta(t, 51.27, r.Magnitude(), 1e-9)

	_, err = MeanRadius(units.Must(50, "mm"), units.Must(1, "psi"))
	assert.ErrorIs(t, err, units.ErrDimensionMismatch)
}

func TestThinWall(t *testing.T) {
	ok, ratio, err := ThinWall(units.Must(2.25, "in"), units.Must(0.25, "in"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.InDelta(t, 0.111, ratio, 0.001)

	ok, _, err = ThinWall(units.Must(150, "mm"), units.Must(0.1, "in"))
	require.NoError(t, err)
	assert.True(t, ok)
}
