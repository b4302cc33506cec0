package history

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Thruster/internal/auth"
	"Thruster/internal/repo"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func router(h *Handler, userID int) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/runs", h.Save).Methods("POST")
	r.HandleFunc("/runs", h.List).Methods("GET")
	r.HandleFunc("/runs/{id:[0-9]+}", h.Get).Methods("GET")
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if userID != 0 {
			req = req.WithContext(auth.WithUserID(req.Context(), userID))
		}
		r.ServeHTTP(w, req)
	})
}

func TestSaveListGet(t *testing.T) {
	h := &Handler{Repo: repo.NewMemory()}
	srv := router(h, 7)

	rec := httptest.NewRecorder()
	body := `{"title":"short burn","worksheet":{"propellant":{"burn_time":"3 s"}}}`
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/runs", bytes.NewBufferString(body)))
	require.Equal(t, http.StatusCreated, rec.Code)
	var saved RunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.Equal(t, "short burn", saved.Run.Title)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var runs []repo.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	require.Len(t, runs, 1)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got RunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	p := got.Sheet.Results.Propellant
	assert.InDelta(t, 3*p.MassFlow.SI(), p.PropellantMass.SI(), 1e-9)
}

func TestRunsAreScopedToUser(t *testing.T) {
	mem := repo.NewMemory()
	_, err := mem.SaveRun(context.Background(), 1, "mine", []byte(`{}`))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router(&Handler{Repo: mem}, 2).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router(&Handler{Repo: mem}, 0).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSaveRejectsFailingWorksheet(t *testing.T) {
	mem := repo.NewMemory()
	rec := httptest.NewRecorder()
	body := `{"worksheet":{"tank":{"thickness":"0 in"}}}`
	router(&Handler{Repo: mem}, 1).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/runs", bytes.NewBufferString(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	runs, err := mem.ListRuns(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
