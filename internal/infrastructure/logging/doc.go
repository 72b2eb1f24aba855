// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Output goes to stderr by default so that the invoke CLI can print command
// results on stdout without interleaving log lines.
//
// Example Usage:
//
//	logger := logging.NewFromLevel(cfg.Logging.Level, cfg.Logging.Development)
//	defer logger.Close()
//	logger.Info("Server starting", zap.String("port", "8417"))
package logging
