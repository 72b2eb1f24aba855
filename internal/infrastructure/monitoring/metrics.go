package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Command metrics
	CommandCalls    *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec
	CommandErrors   *prometheus.CounterVec

	// Workspace I/O
	BytesRead    prometheus.Counter
	BytesWritten prometheus.Counter
	TreeEntries  prometheus.Histogram

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.GaugeFunc
	startTime time.Time

	// Snapshot for the health endpoint
	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds running totals for the health endpoint
type Snapshot struct {
	TotalRequests  int64   `json:"total_requests"`
	TotalErrors    int64   `json:"total_errors"`
	CommandCalls   int64   `json:"command_calls"`
	CommandErrors  int64   `json:"command_errors"`
	ActiveSockets  int64   `json:"active_sockets"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
	AverageLatency float64 `json:"average_latency_seconds"`
	totalDuration  float64
}

// NewMetrics creates a metrics collector registered on reg. A nil reg
// registers on the Prometheus default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "editorshell_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "editorshell_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "editorshell_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		CommandCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "editorshell_command_calls_total",
				Help: "Total number of command invocations",
			},
			[]string{"command", "status"},
		),
		CommandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "editorshell_command_duration_seconds",
				Help:    "Command duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 30},
			},
			[]string{"command"},
		),
		CommandErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "editorshell_command_errors_total",
				Help: "Total number of failed commands by error code",
			},
			[]string{"command", "code"},
		),

		BytesRead: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "editorshell_workspace_bytes_read_total",
				Help: "Payload bytes returned by read_content",
			},
		),
		BytesWritten: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "editorshell_workspace_bytes_written_total",
				Help: "Bytes written by write_content",
			},
		),
		TreeEntries: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "editorshell_workspace_tree_entries",
				Help:    "Entries returned per list_tree call",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "editorshell_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "editorshell_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}

	m.Uptime = factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "editorshell_uptime_seconds",
			Help: "Backend uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.totalDuration += duration.Seconds()
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordCommand records one command execution. An empty code means success.
func (m *Metrics) RecordCommand(command, code string, duration time.Duration) {
	status := "success"
	if code != "" {
		status = "failure"
		m.CommandErrors.WithLabelValues(command, code).Inc()
	}
	m.CommandCalls.WithLabelValues(command, status).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.CommandCalls++
	if code != "" {
		m.snapshot.CommandErrors++
	}
	m.mu.Unlock()
}

// AddBytesRead adds to the read payload counter
func (m *Metrics) AddBytesRead(n int) {
	m.BytesRead.Add(float64(n))
}

// AddBytesWritten adds to the written bytes counter
func (m *Metrics) AddBytesWritten(n int) {
	m.BytesWritten.Add(float64(n))
}

// ObserveTreeSize records the entry count of a listing
func (m *Metrics) ObserveTreeSize(n int) {
	m.TreeEntries.Observe(float64(n))
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveSockets++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveSockets--
	m.mu.Unlock()
}

// Snapshot returns a copy of the running totals
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := m.snapshot
	snap.UptimeSeconds = time.Since(m.startTime).Seconds()
	if snap.TotalRequests > 0 {
		snap.AverageLatency = snap.totalDuration / float64(snap.TotalRequests)
	}
	return snap
}
