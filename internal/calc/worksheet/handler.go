package worksheet

import (
	"encoding/json"
	"net/http"

	"Thruster/internal/metrics"

	"github.com/sirupsen/logrus"
)

type Handler struct{}

// Evaluate decodes Inputs over Defaults, so a request only carries the
// values it changes.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	input := Defaults()
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	sheet, err := Evaluate(input)
	metrics.Observe("worksheet", err)
	if err != nil {
		logrus.WithError(err).WithField("tool", "worksheet").Warn("evaluation failed")
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sheet)
}
