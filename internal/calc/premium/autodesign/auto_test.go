package autodesign

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"Thruster/internal/units"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThicknessMeetsRequiredFOS(t *testing.T) {
	res, err := Thickness(ThicknessInput{
		Pressure:    units.Must(900, "psi"),
		InnerRadius: units.Must(2.125, "in"),
		Material:    "Al6061-T6",
		RequiredFOS: 2,
	})
	require.NoError(t, err)
	want := 900 * 2.125 / (35000.0/2 - 450)
	assert.Equal(t, "in", res.Exact.Units())
	assert.InDelta(t, want, res.Exact.Magnitude(), 1e-9)
	assert.InDelta(t, 2, res.Check.FOSLongitudinal, 1e-9)
}

func TestThicknessRoundsToGauge(t *testing.T) {
	res, err := Thickness(ThicknessInput{
		Pressure:    units.Must(6, "MPa"),
		InnerRadius: units.Must(80, "mm"),
		Strength:    units.Must(215, "MPa"),
		RequiredFOS: 2,
		Gauge:       units.Must(0.5, "mm"),
	})
	require.NoError(t, err)
	assert.InDelta(t, 6*80/(107.5-3), res.Exact.Magnitude(), 1e-9)
	assert.InDelta(t, 5.0, res.Thickness.Magnitude(), 1e-12)
	assert.True(t, res.Check.OK)
	assert.Greater(t, res.Check.FOS, 2.0)
}

func TestThicknessUnreachable(t *testing.T) {
	// S/FOS equals P/2: no wall is thick enough.
	_, err := Thickness(ThicknessInput{
		Pressure:    units.Must(50, "MPa"),
		InnerRadius: units.Must(80, "mm"),
		Strength:    units.Must(200, "MPa"),
		RequiredFOS: 8,
	})
	assert.ErrorIs(t, err, ErrUnreachable)

	_, err = Thickness(ThicknessInput{
		Pressure:    units.Must(50, "MPa"),
		InnerRadius: units.Must(80, "mm"),
		Strength:    units.Must(200, "MPa"),
		RequiredFOS: 10,
	})
	assert.ErrorIs(t, err, ErrUnreachable)

	_, err = Thickness(ThicknessInput{
		Pressure:    units.Must(5, "MPa"),
		InnerRadius: units.Must(80, "mm"),
		Strength:    units.Must(200, "kg"),
	})
	assert.ErrorIs(t, err, units.ErrDimensionMismatch)
}

func TestThicknessOutsideThinWallWarns(t *testing.T) {
	res, err := Thickness(ThicknessInput{
		Pressure:    units.Must(50, "MPa"),
		InnerRadius: units.Must(80, "mm"),
		Strength:    units.Must(200, "MPa"),
		RequiredFOS: 4,
	})
	require.NoError(t, err)
	assert.InDelta(t, 160, res.Exact.Magnitude(), 1e-9)
	assert.False(t, res.Check.ThinWall)
	require.NotEmpty(t, res.Check.Warnings)
	assert.Contains(t, res.Check.Warnings[0], "thin-wall")
}

func TestThicknessGaugeMustBeLength(t *testing.T) {
	_, err := Thickness(ThicknessInput{
		Pressure:    units.Must(6, "MPa"),
		InnerRadius: units.Must(80, "mm"),
		Strength:    units.Must(215, "MPa"),
		Gauge:       units.Must(0.5, "s"),
	})
	assert.ErrorIs(t, err, units.ErrDimensionMismatch)
}

func TestHandler(t *testing.T) {
	body := `{"pressure":"900 psi","inner_radius":"2.125 in","material":"Al6061-T6","required_fos":2}`
	rec := httptest.NewRecorder()
	(&Handler{}).Thickness(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"thickness"`)
}
