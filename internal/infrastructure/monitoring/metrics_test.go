package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCommand(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordCommand("read_content", "", 10*time.Millisecond)
	m.RecordCommand("delete_path", "DELETE_ERROR", time.Millisecond)
	m.RecordCommand("delete_path", "DELETE_ERROR", time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CommandCalls.WithLabelValues("read_content", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CommandCalls.WithLabelValues("delete_path", "failure")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CommandErrors.WithLabelValues("delete_path", "DELETE_ERROR")))

	snap := m.Snapshot()
	assert.Equal(t, int64(3), snap.CommandCalls)
	assert.Equal(t, int64(2), snap.CommandErrors)
}

func TestIndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics(prometheus.NewRegistry())
		NewMetrics(prometheus.NewRegistry())
	})
}

func TestTimer(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	timer := NewTimer(m, "list_tree")
	d := timer.Stop("")
	assert.GreaterOrEqual(t, d, time.Duration(0))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CommandCalls.WithLabelValues("list_tree", "success")))

	// nil metrics is tolerated
	assert.NotPanics(t, func() { NewTimer(nil, "x").Stop("E") })
}

func TestWorkspaceCounters(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.AddBytesRead(100)
	m.AddBytesRead(28)
	m.AddBytesWritten(7)
	m.ObserveTreeSize(12)

	assert.Equal(t, 128.0, testutil.ToFloat64(m.BytesRead))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.BytesWritten))
}

func TestWSConnections(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.IncWSConnections()
	m.IncWSConnections()
	m.DecWSConnections()
	m.RecordWSMessage("in", "invoke")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.WSConnections))
	assert.Equal(t, int64(1), m.Snapshot().ActiveSockets)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WSMessages.WithLabelValues("in", "invoke")))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics(prometheus.NewRegistry())

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/fs/tree", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for _, path := range []string{"/fs/tree", "/fs/tree", "/nope"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/fs/tree", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))

	snap := m.Snapshot()
	assert.Equal(t, int64(3), snap.TotalRequests)
	assert.Equal(t, int64(1), snap.TotalErrors)
	assert.GreaterOrEqual(t, snap.AverageLatency, 0.0)
}
