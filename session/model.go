package session

import (
	"encoding/json"
	"sync"
	"time"

	"sampleset/preset"
	"sampleset/selection"
)

// Session is one interactive selection in progress: a preset name, the
// sample list it was started with, and the index lines entered so far.
type Session struct {
	ID        string
	Name      string
	CreatedAt time.Time

	samples []string
	done    chan struct{}
	once    sync.Once

	mu         sync.Mutex
	lastActive time.Time
	connected  bool
	inputs     []string
	kickChan   chan struct{}
	owner      any
}

type sessionView struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
	Connected  bool      `json:"connected"`
	Slot       int       `json:"slot"` // next slot to fill, 0-based
	Samples    int       `json:"samples"`
}

func (s *Session) MarshalJSON() ([]byte, error) {
	s.mu.Lock()
	v := sessionView{
		ID:         s.ID,
		Name:       s.Name,
		CreatedAt:  s.CreatedAt,
		LastActive: s.lastActive,
		Connected:  s.connected,
		Slot:       len(s.inputs),
		Samples:    len(s.samples),
	}
	s.mu.Unlock()
	return json.Marshal(v)
}

// Connected reports whether a client currently drives the session.
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Samples returns a copy of the discovery list this session indexes into.
func (s *Session) Samples() []string {
	out := make([]string, len(s.samples))
	copy(out, s.samples)
	return out
}

// AddInput records the line for the next slot and reports which slot it
// filled and whether every slot is now filled. Input after completion is
// ignored and reported as slot -1.
func (s *Session) AddInput(line string) (slot int, complete bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.inputs) >= preset.SlotCount {
		return -1, true
	}
	s.inputs = append(s.inputs, line)
	s.lastActive = time.Now()
	return len(s.inputs) - 1, len(s.inputs) == preset.SlotCount
}

// NextSlot is the 0-based slot the next input fills.
func (s *Session) NextSlot() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inputs)
}

// Inputs returns a copy of the lines entered so far.
func (s *Session) Inputs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.inputs) == 0 {
		return nil
	}
	cp := make([]string, len(s.inputs))
	copy(cp, s.inputs)
	return cp
}

// Result resolves the inputs so far into a SampleSet. Unfilled slots are empty.
func (s *Session) Result() preset.SampleSet {
	return preset.SampleSet{Name: s.Name, Samples: selection.Resolve(s.samples, s.Inputs())}
}

// SetClient registers owner as the connected client. A previously connected
// client is kicked: its kick channel is closed so the handler can close that
// connection. Returns a kick channel that is closed if this client is itself
// later displaced.
func (s *Session) SetClient(owner any) <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kickChan != nil {
		close(s.kickChan)
	}
	kick := make(chan struct{})
	s.kickChan = kick
	s.owner = owner
	s.connected = true
	return kick
}

// ClearClient is called when a connection ends. It reports whether owner was
// still the current client; a displaced client gets false and changes nothing.
func (s *Session) ClearClient(owner any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.owner != owner {
		return false
	}
	s.owner = nil
	s.connected = false
	s.kickChan = nil
	return true
}

// Done returns a channel that is closed when the session is finished or killed.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) finish() {
	s.once.Do(func() { close(s.done) })
}
