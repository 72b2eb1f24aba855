package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GriffinCanCode/EditorShell/backend/internal/command"
	"github.com/GriffinCanCode/EditorShell/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/EditorShell/backend/internal/workspace"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubRunner struct{}

func (stubRunner) Run(_ context.Context, line string) (string, error) {
	return "ran: " + line, nil
}

type fixture struct {
	router *gin.Engine
	dir    string
	logs   *observer.ObservedLogs
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)
	registry := command.NewRegistry(command.Options{Metrics: metrics})
	require.NoError(t, command.RegisterWorkspace(registry, workspace.New(workspace.Options{})))
	require.NoError(t, command.RegisterExecutor(registry, stubRunner{}))

	router := gin.New()
	NewHandlers(registry, metrics, logger).Register(router)
	router.GET("/metrics", PrometheusHandler(reg))

	return &fixture{router: router, dir: t.TempDir(), logs: logs}
}

func (f *fixture) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var decoded map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func jsonBody(t *testing.T, v any) string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return string(raw)
}

func TestRoot(t *testing.T) {
	f := setup(t)

	w, body := f.do(t, "GET", "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "online", body["status"])

	w, body = f.do(t, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", body["status"])
}

func TestListCommands(t *testing.T) {
	f := setup(t)

	w, body := f.do(t, "GET", "/commands", "")
	require.Equal(t, http.StatusOK, w.Code)

	defs := body["commands"].([]any)
	names := make([]string, 0, len(defs))
	for _, d := range defs {
		names = append(names, d.(map[string]any)["name"].(string))
	}
	assert.Equal(t, []string{
		"create_directory", "create_file", "delete_path", "execute_command",
		"inspect_path", "list_tree", "read_content", "write_content",
	}, names)

	classification := body["classification"].(map[string]any)
	assert.Contains(t, classification["binary"], "png")
	assert.Equal(t, "rust", classification["languages"].(map[string]any)["rs"])
}

func TestInvokeWriteThenRead(t *testing.T) {
	f := setup(t)
	path := filepath.Join(f.dir, "main.ts")

	w, body := f.do(t, "POST", "/invoke/write_content", jsonBody(t, map[string]any{"path": path, "content": "let x = 1;"}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, body["success"])

	w, body = f.do(t, "POST", "/invoke/read_content", jsonBody(t, map[string]any{"path": path}))
	require.Equal(t, http.StatusOK, w.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "let x = 1;", data["content"])
	assert.Equal(t, "typescript", data["language"])
}

func TestInvokeUnknownCommand(t *testing.T) {
	f := setup(t)

	w, body := f.do(t, "POST", "/invoke/format_disk", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "unknown command: format_disk", body["error"])
}

func TestInvokeBadJSON(t *testing.T) {
	f := setup(t)

	w, body := f.do(t, "POST", "/invoke/read_content", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])

	w, _ = f.do(t, "POST", "/invoke/read_content", "[1,2]")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvokeFailureShapes(t *testing.T) {
	f := setup(t)
	missingDir := filepath.Join(f.dir, "missing")

	// listing fails with a bare message
	w, body := f.do(t, "POST", "/invoke/list_tree", jsonBody(t, map[string]any{"path": missingDir}))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "path does not exist: "+missingDir, body["error"])

	// mutations fail with {message, code}
	w, body = f.do(t, "POST", "/invoke/create_file", jsonBody(t, map[string]any{"path": filepath.Join(missingDir, "a.txt")}))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "CREATE_ERROR", errObj["code"])
	assert.NotEmpty(t, errObj["message"])
}

func TestInvokeMissingParams(t *testing.T) {
	f := setup(t)

	w, body := f.do(t, "POST", "/invoke/read_content", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "missing required parameter: path", body["error"])
}

func TestRESTAliases(t *testing.T) {
	f := setup(t)
	sub := filepath.Join(f.dir, "src")
	file := filepath.Join(sub, "lib.rs")
	q := func(p string) string { return url.QueryEscape(p) }

	w, _ := f.do(t, "POST", "/fs/directory", jsonBody(t, map[string]any{"path": sub}))
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = f.do(t, "POST", "/fs/file", jsonBody(t, map[string]any{"path": file}))
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = f.do(t, "PUT", "/fs/content", jsonBody(t, map[string]any{"path": file, "content": "pub fn f() {}"}))
	require.Equal(t, http.StatusOK, w.Code)

	w, body := f.do(t, "GET", "/fs/content?path="+q(file), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rust", body["data"].(map[string]any)["language"])

	w, body = f.do(t, "GET", "/fs/tree?path="+q(f.dir), "")
	require.Equal(t, http.StatusOK, w.Code)
	entries := body["data"].([]any)
	require.Len(t, entries, 2)
	first := entries[0].(map[string]any)
	assert.Equal(t, "src", first["name"])
	assert.Equal(t, "directory", first["entry_type"])

	w, body = f.do(t, "GET", "/fs/inspect?path="+q(file), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(13), body["data"].(map[string]any)["size"])

	w, _ = f.do(t, "DELETE", "/fs/path?path="+q(sub), "")
	require.Equal(t, http.StatusOK, w.Code)
	_, err := os.Stat(sub)
	assert.True(t, os.IsNotExist(err))

	w, body = f.do(t, "GET", "/fs/tree", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "missing required parameter: path", body["error"])
}

func TestExecAlias(t *testing.T) {
	f := setup(t)

	w, body := f.do(t, "POST", "/exec", jsonBody(t, map[string]any{"command": "ls"}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ran: ls", body["data"])
}

func TestStreamLogs(t *testing.T) {
	f := setup(t)

	payload := jsonBody(t, map[string]any{
		"source": "ui",
		"entries": []map[string]any{
			{"id": "1", "level": "error", "message": "editor crashed", "context": map[string]any{"tab": "main.rs"}},
			{"id": "2", "level": "info", "message": "opened"},
		},
	})
	w, body := f.do(t, "POST", "/logs", payload)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), body["entries_received"])

	crashed := f.logs.FilterMessage("editor crashed").All()
	require.Len(t, crashed, 1)
	assert.Equal(t, zap.ErrorLevel, crashed[0].Level)
	assert.Equal(t, "main.rs", crashed[0].ContextMap()["tab"])

	w, _ = f.do(t, "POST", "/logs", `{"entries": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsEndpoints(t *testing.T) {
	f := setup(t)
	f.do(t, "POST", "/invoke/list_tree", jsonBody(t, map[string]any{"path": f.dir}))

	w, body := f.do(t, "GET", "/metrics/json", "")
	require.Equal(t, http.StatusOK, w.Code)
	backend := body["backend"].(map[string]any)
	assert.Equal(t, float64(1), backend["command_calls"])

	w, _ = f.do(t, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `editorshell_command_calls_total{command="list_tree",status="success"} 1`)
}
