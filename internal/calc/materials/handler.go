package materials

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
)

type Handler struct{}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(List())
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := Lookup(mux.Vars(r)["name"])
	if errors.Is(err, ErrUnknownMaterial) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m)
}
