package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"sampleset/preset"
	"sampleset/sample"
	"sampleset/selection"
)

func (h *handler) getSamples(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sample.Discover(h.samplesDir))
}

func (h *handler) getPresets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.presetManager.List())
}

func (h *handler) getPreset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	s, err := h.presetManager.Info(name)
	if err != nil {
		if errors.Is(err, preset.ErrNotFound) {
			http.Error(w, "preset not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to read preset", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s)
}

// createPreset resolves one index string per slot against a fresh discovery,
// the same way the interactive prompt does.
func (h *handler) createPreset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string   `json:"name"`
		Indices []string `json:"indices"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ids := sample.Discover(h.samplesDir)
	s := preset.SampleSet{Name: req.Name, Samples: selection.Resolve(ids, req.Indices)}
	if err := h.presetManager.Add(s); err != nil {
		h.log.Error("save preset", zap.String("name", s.Name), zap.Error(err))
		http.Error(w, "failed to save preset", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(s)
}

// deletePreset removes every preset with the name. Unknown names succeed.
func (h *handler) deletePreset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.presetManager.Remove(name); err != nil {
		h.log.Error("remove preset", zap.String("name", name), zap.Error(err))
		http.Error(w, "failed to delete preset", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
