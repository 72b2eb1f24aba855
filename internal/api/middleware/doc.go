// Package middleware provides the HTTP middleware stack of the editor shell
// backend.
//
// Middleware stack includes:
//   - CORS: cross-origin access for the desktop webview
//   - RateLimit: per-IP token buckets with idle client eviction
//   - Compress: gzip for large JSON payloads such as file contents
//   - RequestID: X-Request-ID assignment and propagation
//   - Logger: one zap line per request
//
// Example Usage:
//
//	router.Use(middleware.RequestID())
//	router.Use(middleware.Logger(logger))
//	router.Use(middleware.CORS(middleware.CORSConfigFor(cfg.CORS.Origins)))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
//	router.Use(middleware.Compress(middleware.DefaultCompressConfig()))
package middleware
