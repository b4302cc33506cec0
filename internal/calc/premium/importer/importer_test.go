package importer

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var sheetRows = [][]string{
	{"name", "pressure", "inner_radius", "thickness", "material", "fos"},
	{"lox", "900 psi", "2.125 in", "0.25 in", "Al6061-T6", "1.5"},
	{"fuel", "6 MPa", "80 mm", "3 mm", "215 MPa"},
	{"broken", "lots", "2 in", "0.1 in", "SS304"},
	{"short", "900 psi"},
	{"zero", "900 psi", "2 in", "0 in", "SS304"},
}

func TestParseTankRows(t *testing.T) {
	items, skipped := ParseTankRows(sheetRows)
	require.Len(t, items, 3)
	assert.Equal(t, 2, skipped)
	assert.Equal(t, "Al6061-T6", items[0].Material)
	assert.Equal(t, 1.5, items[0].RequiredFOS)
	assert.Equal(t, "", items[1].Material)
	assert.InDelta(t, 215, items[1].Strength.MustTo("MPa").Magnitude(), 1e-12)
}

func TestHandlerTanks(t *testing.T) {
	f := excelize.NewFile()
	for i, row := range sheetRows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}
	var xlsx bytes.Buffer
	require.NoError(t, f.Write(&xlsx))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "tanks.xlsx")
	require.NoError(t, err)
	_, err = part.Write(xlsx.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	(&Handler{}).Tanks(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var out TankImportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, 3, out.Skipped)
	assert.Equal(t, "lox", out.Results[0].Name)
}
