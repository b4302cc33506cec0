package propellant

import (
	"encoding/json"
	"net/http"

	"Thruster/internal/metrics"

	"github.com/sirupsen/logrus"
)

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	metrics.Observe("propellant", err)
	if err != nil {
		logrus.WithError(err).WithField("tool", "propellant").Warn("calculation failed")
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
