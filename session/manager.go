package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"sampleset/preset"
)

var ErrNameTaken = errors.New("selection name already in use")
var ErrNotFound = errors.New("selection not found")

// Manager tracks selections in progress. Finished selections are removed.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session), now: time.Now}
}

// Create starts a selection for preset name over the given sample list.
// Only one live selection may use a given name.
func (m *Manager) Create(name string, samples []string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.sessions {
		if s.Name == name {
			return nil, ErrNameTaken
		}
	}

	snapshot := make([]string, len(samples))
	copy(snapshot, samples)

	now := m.now()
	s := &Session{
		ID:         uuid.New().String(),
		Name:       name,
		CreatedAt:  now,
		lastActive: now,
		samples:    snapshot,
		done:       make(chan struct{}),
	}
	m.sessions[s.ID] = s
	return s, nil
}

func (m *Manager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		list = append(list, s)
	}
	return list
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Finish removes the session and returns its resolved set. Slots without
// input are left empty.
func (m *Manager) Finish(id string) (preset.SampleSet, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return preset.SampleSet{}, ErrNotFound
	}
	s.finish()
	return s.Result(), nil
}

// Kill discards the session without producing a set.
func (m *Manager) Kill(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	s.finish()
	delete(m.sessions, id)
	return nil
}
