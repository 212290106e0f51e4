package api

import (
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"sampleset/preset"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsMessage is the selection protocol. Server → client: "samples", "prompt"
// (Slot is 1-based), "created", "error", "closed". Client → server: "input"
// with one index line in Data, or "finish" to stop early.
type wsMessage struct {
	Type    string            `json:"type"`
	Data    string            `json:"data,omitempty"`
	Slot    int               `json:"slot,omitempty"`
	Samples []string          `json:"samples,omitempty"`
	Set     *preset.SampleSet `json:"set,omitempty"`
}

func (h *handler) handleWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s, ok := h.manager.Get(id)
	if !ok {
		http.Error(w, "selection not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	log := h.log.With(zap.String("selection", id), zap.String("preset", s.Name))

	// gorilla/websocket forbids concurrent writes.
	var writeMu sync.Mutex
	writeMsg := func(msg wsMessage) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(msg)
	}

	kick := s.SetClient(conn) // kicks any prior client
	defer s.ClearClient(conn)

	var finishing atomic.Bool
	finish := func() {
		finishing.Store(true)
		set, err := h.manager.Finish(id)
		if err != nil {
			// Killed, or finished by another connection.
			return
		}
		if err := h.presetManager.Add(set); err != nil {
			log.Error("save preset", zap.Error(err))
			writeMsg(wsMessage{Type: "error", Data: "failed to save preset"}) //nolint:errcheck
			return
		}
		log.Info("preset created", zap.Strings("samples", set.Samples[:]))
		writeMsg(wsMessage{Type: "created", Set: &set}) //nolint:errcheck
	}

	// A client that goes away mid-selection still gets its preset, with the
	// remaining slots empty. A displaced client does not.
	abandon := func() {
		if s.ClearClient(conn) {
			finish()
		}
	}

	if err := writeMsg(wsMessage{Type: "samples", Samples: s.Samples()}); err != nil {
		abandon()
		return
	}
	if next := s.NextSlot(); next < preset.SlotCount {
		if err := writeMsg(wsMessage{Type: "prompt", Slot: next + 1}); err != nil {
			abandon()
			return
		}
	}

	// Close the connection when the selection is killed or another client
	// takes over, so ReadJSON below unblocks.
	connDone := make(chan struct{})
	go func() {
		select {
		case <-s.Done():
			if !finishing.Load() {
				writeMsg(wsMessage{Type: "closed"}) //nolint:errcheck
				conn.Close()
			}
		case <-kick:
			// Displaced by a newer connection, which continues the selection.
			conn.Close()
		case <-connDone:
		}
	}()
	defer close(connDone)

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			abandon()
			return
		}

		switch msg.Type {
		case "input":
			slot, complete := s.AddInput(msg.Data)
			if slot < 0 {
				continue
			}
			if complete {
				finish()
				return
			}
			if err := writeMsg(wsMessage{Type: "prompt", Slot: slot + 2}); err != nil {
				abandon()
				return
			}
		case "finish":
			finish()
			return
		}
	}
}
