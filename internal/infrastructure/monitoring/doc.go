/*
Package monitoring provides Prometheus metrics for the editor shell backend.

# Overview

Collectors are registered on an injected prometheus.Registerer so that tests
and embedded callers can build independent instances.

# Features

- HTTP request metrics (latency, throughput, response size)
- Command metrics (calls, duration, errors by code)
- Workspace I/O counters (bytes read and written, listing sizes)
- WebSocket connection and message metrics
- Uptime

# Usage

	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)
	router.Use(monitoring.Middleware(metrics))

	timer := monitoring.NewTimer(metrics, "read_content")
	// ... perform operation ...
	timer.Stop("")

# Metrics Endpoint

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
*/
package monitoring
