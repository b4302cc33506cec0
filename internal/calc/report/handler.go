package report

import (
	"bytes"
	"encoding/json"
	"net/http"

	"Thruster/internal/calc/worksheet"
	"Thruster/internal/metrics"

	"github.com/sirupsen/logrus"
)

type Input struct {
	Meta
	Worksheet worksheet.Inputs `json:"worksheet"`
}

type Handler struct{}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	input, sheet, ok := evaluate(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := PDF(&buf, input.Meta, sheet); err != nil {
		logrus.WithError(err).Error("pdf report")
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	buf.WriteTo(w)
}

func (h *Handler) Workbook(w http.ResponseWriter, r *http.Request) {
	_, sheet, ok := evaluate(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := XLSX(&buf, sheet); err != nil {
		logrus.WithError(err).Error("xlsx report")
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"worksheet.xlsx\"")
	buf.WriteTo(w)
}

func evaluate(w http.ResponseWriter, r *http.Request) (Input, worksheet.Sheet, bool) {
	input := Input{Worksheet: worksheet.Defaults()}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return Input{}, worksheet.Sheet{}, false
	}
	sheet, err := worksheet.Evaluate(input.Worksheet)
	metrics.Observe("report", err)
	if err != nil {
		logrus.WithError(err).WithField("tool", "report").Warn("evaluation failed")
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return Input{}, worksheet.Sheet{}, false
	}
	return input, sheet, true
}
