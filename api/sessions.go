package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"sampleset/sample"
	"sampleset/session"
)

func (h *handler) listSelections(w http.ResponseWriter, r *http.Request) {
	sessions := h.manager.List()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sessions)
}

func (h *handler) createSelection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s, err := h.manager.Create(req.Name, sample.Discover(h.samplesDir))
	if err != nil {
		if errors.Is(err, session.ErrNameTaken) {
			http.Error(w, "selection name already in use", http.StatusConflict)
			return
		}
		http.Error(w, "failed to create selection", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(s)
}

func (h *handler) killSelection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.manager.Kill(id); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			http.Error(w, "selection not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to kill selection", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
