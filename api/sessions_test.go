package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sampleset/api"
	"sampleset/preset"
	"sampleset/session"
)

type testEnv struct {
	srv     *httptest.Server
	manager *session.Manager
	presets *preset.Manager
	samples string
}

// newTestEnv serves the API over a temp resource dir holding the given
// sample files (paths relative to the samples root).
func newTestEnv(t *testing.T, files ...string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	samples := filepath.Join(dir, "samples")
	for _, f := range files {
		p := filepath.Join(samples, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("RIFF"), 0644))
	}

	env := &testEnv{
		manager: session.NewManager(),
		presets: preset.NewManager(filepath.Join(dir, "presets.json"), nil),
		samples: samples,
	}
	env.srv = httptest.NewServer(api.RegisterRoutes(env.manager, env.presets, samples, nil))
	t.Cleanup(env.srv.Close)
	return env
}

func (e *testEnv) post(t *testing.T, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(e.srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (e *testEnv) delete(t *testing.T, path string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodDelete, e.srv.URL+path, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func TestListSelectionsEmpty(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.srv.URL + "/api/selections")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
	var sessions []any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sessions))
	assert.Empty(t, sessions)
}

func TestCreateSelection201(t *testing.T) {
	env := newTestEnv(t, "a.wav", "sub/b.wav")

	resp := env.post(t, "/api/selections", `{"name":"drums"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var s map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&s))
	assert.Equal(t, "drums", s["name"])
	assert.NotEmpty(t, s["id"])
	assert.Equal(t, float64(2), s["samples"])
	assert.Equal(t, float64(0), s["slot"])
}

func TestCreateSelectionBadJSON(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, http.StatusBadRequest, env.post(t, "/api/selections", "not-json").StatusCode)
	assert.Equal(t, http.StatusBadRequest, env.post(t, "/api/selections", `{"name":" "}`).StatusCode)
}

func TestCreateSelectionConflict(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.post(t, "/api/selections", `{"name":"dupe"}`).StatusCode)
	assert.Equal(t, http.StatusConflict, env.post(t, "/api/selections", `{"name":"dupe"}`).StatusCode)
}

func TestKillSelection(t *testing.T) {
	env := newTestEnv(t)
	s, err := env.manager.Create("to-kill", nil)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, env.delete(t, "/api/selections/"+s.ID).StatusCode)
	assert.Equal(t, http.StatusNotFound, env.delete(t, "/api/selections/"+s.ID).StatusCode)
	assert.Empty(t, env.presets.Load(), "killed selection must not create a preset")
}

func TestListSelectionsAfterCreate(t *testing.T) {
	env := newTestEnv(t)
	env.post(t, "/api/selections", `{"name":"s1"}`)
	env.post(t, "/api/selections", `{"name":"s2"}`)

	resp, err := http.Get(env.srv.URL + "/api/selections")
	require.NoError(t, err)
	defer resp.Body.Close()
	var sessions []any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sessions))
	assert.Len(t, sessions, 2)
}
