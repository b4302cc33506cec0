package importer

import (
	"encoding/json"
	"net/http"

	"Thruster/internal/calc/tank"
	"Thruster/internal/metrics"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Handler struct{}

type TankImportResult struct {
	Count   int           `json:"count"`
	Skipped int           `json:"skipped"`
	Results []tank.Result `json:"results"`
}

func (h *Handler) Tanks(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	}

	items, skipped := ParseTankRows(rows)
	out := TankImportResult{Skipped: skipped}
	for _, in := range items {
		res, err := tank.Calculate(in)
		metrics.Observe("import", err)
		if err != nil {
			logrus.WithError(err).WithField("tank", in.Name).Debug("import row rejected")
			out.Skipped++
			continue
		}
		out.Results = append(out.Results, res)
	}
	out.Count = len(out.Results)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}
