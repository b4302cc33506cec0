package batch

import (
	"encoding/json"
	"net/http"

	"Thruster/internal/metrics"

	"github.com/sirupsen/logrus"
)

type Handler struct{}

func (h *Handler) Tanks(w http.ResponseWriter, r *http.Request) {
	var input TankBatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := CalculateTanks(input)
	metrics.Observe("batch", err)
	if err != nil {
		logrus.WithError(err).WithField("items", len(input.Items)).Warn("batch failed")
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
