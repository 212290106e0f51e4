package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"sampleset/preset"
	"sampleset/session"
)

func RegisterRoutes(manager *session.Manager, pm *preset.Manager, samplesDir string, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	h := &handler{manager: manager, presetManager: pm, samplesDir: samplesDir, log: log}

	r.Get("/api/samples", h.getSamples)

	// Presets API
	r.Get("/api/presets", h.getPresets)
	r.Post("/api/presets", h.createPreset)
	r.Get("/api/presets/{name}", h.getPreset)
	r.Delete("/api/presets/{name}", h.deletePreset)

	// Interactive selections
	r.Get("/api/selections", h.listSelections)
	r.Post("/api/selections", h.createSelection)
	r.Delete("/api/selections/{id}", h.killSelection)

	// WebSocket
	r.Get("/api/selections/{id}/ws", h.handleWS)

	return r
}

// requestLogger logs one line per request once the handler returns.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Info("request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

type handler struct {
	manager       *session.Manager
	presetManager *preset.Manager
	samplesDir    string
	log           *zap.Logger
}
