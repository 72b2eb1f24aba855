package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/GriffinCanCode/EditorShell/backend/internal/command"
	"github.com/GriffinCanCode/EditorShell/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/EditorShell/backend/internal/infrastructure/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Logging.Development = true
	cfg.RateLimit.Enabled = false
	if mutate != nil {
		mutate(cfg)
	}

	srv, err := NewServer(cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })
	return srv
}

func TestNewRegistryCommands(t *testing.T) {
	registry, err := NewRegistry(config.Default(), command.Options{})
	require.NoError(t, err)
	assert.Len(t, registry.List(), 8)
}

func TestNewRegistryRejectsBadAllowPattern(t *testing.T) {
	cfg := config.Default()
	cfg.Exec.Allow = []string{"[broken"}

	_, err := NewRegistry(cfg, command.Options{})
	assert.ErrorContains(t, err, "invalid exec policy")
}

func TestExecDisabledByDefault(t *testing.T) {
	srv := newTestServer(t, nil)

	result, err := srv.Registry().Execute(context.Background(), command.ExecuteCommand, map[string]any{"command": "echo hi"})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "command execution is disabled", result.Error)
}

func TestWorkspaceExcludeFromConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "node_modules", "pkg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.js"), []byte("1"), 0o644))

	srv := newTestServer(t, func(cfg *config.Config) {
		cfg.Workspace.Exclude = []string{"node_modules"}
	})

	result, err := srv.Registry().Execute(context.Background(), command.ListTree, map[string]any{"path": dir})
	require.NoError(t, err)
	require.True(t, result.Success)

	raw, err := json.Marshal(result.Data)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"index.js","path":"index.js","entry_type":"file"}]`, string(raw))
}

func TestRouterEndToEnd(t *testing.T) {
	srv := newTestServer(t, nil)
	router := srv.Router()
	path := filepath.Join(t.TempDir(), "big.json")
	content := strings.Repeat(`{"k": "v"}`+"\n", 500)

	body, err := json.Marshal(map[string]any{"path": path, "content": content})
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/invoke/write_content", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))

	req = httptest.NewRequest("GET", "/fs/content?path="+path, nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "editorshell_command_calls_total")
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestRouterGlobalRateLimit(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.Config) {
		cfg.RateLimit.Enabled = true
		cfg.RateLimit.GlobalRPS = 1
		cfg.RateLimit.GlobalBurst = 1
	})
	router := srv.Router()

	codes := make([]int, 0, 2)
	for _, addr := range []string{"10.0.0.1:1000", "10.0.0.2:1000"} {
		req := httptest.NewRequest("GET", "/health", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRouterCORS(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.Config) {
		cfg.CORS.Origins = []string{"tauri://localhost"}
	})

	req := httptest.NewRequest("OPTIONS", "/invoke/list_tree", nil)
	req.Header.Set("Origin", "tauri://localhost")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "tauri://localhost", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRunStopsOnCancel(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.Config) {
		cfg.Server.Port = "0"
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestExecuteAfterClose(t *testing.T) {
	srv := newTestServer(t, nil)
	require.NoError(t, srv.Close())

	dir := t.TempDir()
	assert.NotPanics(t, func() {
		result, err := srv.Registry().Execute(context.Background(), command.ListTree, map[string]any{"path": dir})
		require.NoError(t, err)
		assert.True(t, result.Success)
	})
}
