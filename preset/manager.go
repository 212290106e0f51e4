package preset

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager reads and rewrites the whole preset collection stored in a single
// file. Every operation reloads from disk; nothing is cached between calls.
type Manager struct {
	mu       sync.Mutex
	filePath string
	codec    Codec
	log      *zap.Logger
}

// NewManager returns a Manager for filePath. The file does not need to exist.
// The codec is chosen from the file extension. A nil logger disables logging.
func NewManager(filePath string, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		filePath: filePath,
		codec:    CodecFor(filePath),
		log:      log.With(zap.String("preset_file", filePath)),
	}
}

// Path returns the backing file path.
func (m *Manager) Path() string {
	return m.filePath
}

// Load returns the stored collection. A missing, unreadable or malformed
// file yields an empty collection and no error.
func (m *Manager) Load() Collection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load()
}

// Save replaces the stored collection with c.
func (m *Manager) Save(c Collection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writeAtomic(c)
}

// Add appends r to the stored collection.
func (m *Manager) Add(r SampleSet) error {
	return m.update(func(c Collection) Collection { return Append(c, r) })
}

// Remove deletes every record named name. Removing an unknown name
// rewrites the collection unchanged.
func (m *Manager) Remove(name string) error {
	return m.update(func(c Collection) Collection { return RemoveByName(c, name) })
}

// List is Load under the name the CLI uses.
func (m *Manager) List() Collection {
	return m.Load()
}

// Info returns the first record named name, or ErrNotFound.
func (m *Manager) Info(name string) (SampleSet, error) {
	s, ok := FindByName(m.Load(), name)
	if !ok {
		return SampleSet{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return s, nil
}

func (m *Manager) update(fn func(Collection) Collection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writeAtomic(fn(m.load()))
}

func (m *Manager) load() Collection {
	data, err := os.ReadFile(m.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			m.log.Debug("preset file unreadable, using empty collection", zap.Error(err))
		}
		return Collection{}
	}
	c, err := m.codec.Unmarshal(data)
	if err != nil {
		m.log.Debug("preset file malformed, using empty collection", zap.Error(err))
		return Collection{}
	}
	if c == nil {
		c = Collection{}
	}
	return c
}

// writeAtomic writes to a temp file then renames it over filePath.
// Caller must hold m.mu.
func (m *Manager) writeAtomic(c Collection) error {
	dir := filepath.Dir(m.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create preset dir: %w", err)
	}

	data, err := m.codec.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode presets: %w", err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(m.filePath)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write presets: %w", err)
	}
	if err := os.Rename(tmp, m.filePath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace presets: %w", err)
	}
	m.log.Debug("presets saved", zap.Int("count", len(c)))
	return nil
}
