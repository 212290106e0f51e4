package preset_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sampleset/preset"
)

func set(name string, samples ...string) preset.SampleSet {
	s := preset.SampleSet{Name: name}
	copy(s.Samples[:], samples)
	return s
}

func TestLoadMissingFile(t *testing.T) {
	pm := preset.NewManager(filepath.Join(t.TempDir(), "nonexistent.json"), nil)
	c := pm.Load()
	require.NotNil(t, c)
	assert.Empty(t, c)
}

func TestLoadCorruptFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	pm := preset.NewManager(path, nil)
	assert.Empty(t, pm.Load())

	// A save after a masked corruption replaces the file with a valid one.
	r := set("fresh", "a.wav", "b.wav")
	require.NoError(t, pm.Add(r))
	assert.Equal(t, preset.Collection{r}, preset.NewManager(path, nil).Load())
}

func TestLoadUnreadablePathIsEmpty(t *testing.T) {
	// A directory where the file should be cannot be read as a file.
	dir := t.TempDir()
	pm := preset.NewManager(dir, nil)
	assert.Empty(t, pm.Load())
}

func TestLoadYAMLWrongSlotCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yml")
	doc := "- name: short\n  samples: [kick.wav]\n- name: ok\n  samples: [a, b, c, d, e, f, g, h]\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	c := preset.NewManager(path, nil).Load()
	assert.Equal(t, preset.Collection{
		set("short", "kick.wav"),
		set("ok", "a", "b", "c", "d", "e", "f", "g", "h"),
	}, c)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "res", "presets.json")
	pm := preset.NewManager(path, nil)

	c := preset.Collection{
		set("drums", "kick.wav", "snare.wav", "", "hat.wav"),
		set("empty"),
	}
	require.NoError(t, pm.Save(c))

	got := preset.NewManager(path, nil).Load()
	assert.Equal(t, c, got)
}

func TestSaveAndReloadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	pm := preset.NewManager(path, nil)

	c := preset.Collection{set("pads", "", "warm pad.wav", "", "", "", "", "", "x:y.wav")}
	require.NoError(t, pm.Save(c))
	assert.Equal(t, c, pm.Load())
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	pm := preset.NewManager(filepath.Join(dir, "presets.json"), nil)
	require.NoError(t, pm.Add(set("a")))
	require.NoError(t, pm.Add(set("b")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "presets.json", entries[0].Name())
}

func TestSaveFailsWhenDirCannotBeCreated(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	pm := preset.NewManager(filepath.Join(blocker, "presets.json"), nil)
	assert.Error(t, pm.Save(preset.Collection{set("x")}))
}

func TestLoadIsIdempotent(t *testing.T) {
	pm := preset.NewManager(filepath.Join(t.TempDir(), "presets.json"), nil)
	require.NoError(t, pm.Add(set("a", "1.wav")))
	assert.Equal(t, pm.Load(), pm.Load())
}

func TestAddAppendsInOrder(t *testing.T) {
	pm := preset.NewManager(filepath.Join(t.TempDir(), "presets.json"), nil)
	require.NoError(t, pm.Add(set("a")))
	require.NoError(t, pm.Add(set("b")))

	before := pm.Load()
	r := set("a", "dup.wav")
	require.NoError(t, pm.Add(r))

	assert.Equal(t, append(before, r), pm.Load())
}

func TestRemoveAllMatches(t *testing.T) {
	pm := preset.NewManager(filepath.Join(t.TempDir(), "presets.json"), nil)
	a, b, c := set("x", "a.wav"), set("y", "b.wav"), set("x", "c.wav")
	require.NoError(t, pm.Save(preset.Collection{a, b, c}))

	require.NoError(t, pm.Remove("x"))
	assert.Equal(t, preset.Collection{b}, pm.Load())
}

func TestRemoveAbsentNameIsNoop(t *testing.T) {
	pm := preset.NewManager(filepath.Join(t.TempDir(), "presets.json"), nil)
	c := preset.Collection{set("x"), set("y")}
	require.NoError(t, pm.Save(c))

	require.NoError(t, pm.Remove("ghost"))
	assert.Equal(t, c, pm.Load())
}

func TestInfo(t *testing.T) {
	pm := preset.NewManager(filepath.Join(t.TempDir(), "presets.json"), nil)

	_, err := pm.Info("missing")
	assert.ErrorIs(t, err, preset.ErrNotFound)

	first, second := set("x", "1.wav"), set("x", "2.wav")
	require.NoError(t, pm.Save(preset.Collection{first, second}))

	got, err := pm.Info("x")
	require.NoError(t, err)
	assert.Equal(t, first, got)
}

func TestConcurrentAdd(t *testing.T) {
	pm := preset.NewManager(filepath.Join(t.TempDir(), "presets.json"), nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = pm.Add(set("p"))
		}()
	}
	wg.Wait()

	assert.Len(t, pm.List(), 10)
}
