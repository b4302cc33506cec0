package history

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"Thruster/internal/auth"
	"Thruster/internal/calc/worksheet"
	"Thruster/internal/repo"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	Repo repo.Repository
}

type SaveRequest struct {
	Title     string           `json:"title"`
	Worksheet worksheet.Inputs `json:"worksheet"`
}

type RunResponse struct {
	Run   repo.Run        `json:"run"`
	Sheet worksheet.Sheet `json:"sheet"`
}

// Save evaluates the posted worksheet and stores its inputs only when the
// evaluation succeeds.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	req := SaveRequest{Worksheet: worksheet.Defaults()}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	sheet, err := worksheet.Evaluate(req.Worksheet)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		req.Title = sheet.Title
	}
	inputs, err := json.Marshal(req.Worksheet)
	if err != nil {
		http.Error(w, "Encoding error", http.StatusInternalServerError)
		return
	}
	id, err := h.Repo.SaveRun(r.Context(), userID, req.Title, inputs)
	if err != nil {
		logrus.WithError(err).WithField("user", userID).Error("save run")
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(RunResponse{
		Run:   repo.Run{ID: id, UserID: userID, Title: req.Title, Inputs: inputs},
		Sheet: sheet,
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	runs, err := h.Repo.ListRuns(r.Context(), userID)
	if err != nil {
		logrus.WithError(err).WithField("user", userID).Error("list runs")
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []repo.Run{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}

// Get re-evaluates a stored run so results follow the current formulas.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	run, err := h.Repo.GetRun(r.Context(), userID, id)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logrus.WithError(err).WithField("run", id).Error("get run")
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	inputs := worksheet.Defaults()
	if err := json.Unmarshal(run.Inputs, &inputs); err != nil {
		logrus.WithError(err).WithField("run", id).Error("decode stored inputs")
		http.Error(w, "Stored run unreadable", http.StatusInternalServerError)
		return
	}
	sheet, err := worksheet.Evaluate(inputs)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RunResponse{Run: run, Sheet: sheet})
}
