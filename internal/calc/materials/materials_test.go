package materials

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Thruster/internal/units"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"
)

func TestLookup(t *testing.T) {
	m, err := Lookup("al6061-t6")
	require.NoError(t, err)
	assert.InDelta(t, 35000, m.Yield.MustTo("psi").Magnitude(), 1e-9)

	_, err = Lookup("unobtainium")
	assert.ErrorIs(t, err, ErrUnknownMaterial)
}

func TestLoadSection(t *testing.T) {
	f, err := ini.Load([]byte(`
[materials]
Al2219-T87 = 51 ksi, 2840 kg/m^3, 63 ksi
Copper = 70 MPa
`))
	require.NoError(t, err)
	require.NoError(t, LoadSection(f.Section("materials")))

	m, err := Lookup("AL2219-T87")
	require.NoError(t, err)
	assert.Equal(t, units.Density, m.Density.Dim())
	assert.InDelta(t, 63, m.Ultimate.MustTo("ksi").Magnitude(), 1e-12)

	m, err = Lookup("copper")
	require.NoError(t, err)
	assert.False(t, m.Density.IsSet())
}

func TestRegisterRejectsNonPressureYield(t *testing.T) {
	err := Register(Material{Name: "Bad", Yield: units.Must(3, "in")})
	assert.ErrorIs(t, err, units.ErrDimensionMismatch)

	f, err := ini.Load([]byte("[materials]\nBad = 3 kg, 1 kg/m^3\n"))
	require.NoError(t, err)
	assert.ErrorIs(t, LoadSection(f.Section("materials")), units.ErrDimensionMismatch)
}

func TestHandler(t *testing.T) {
	h := &Handler{}
	r := mux.NewRouter()
	r.HandleFunc("/materials", h.List)
	r.HandleFunc("/materials/{name}", h.Get)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/materials", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var all []Material
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.NotEmpty(t, all)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/materials/al6061-t6", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var m Material
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.InDelta(t, 35000, m.Yield.MustTo("psi").Magnitude(), 1e-6)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/materials/unobtainium", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
