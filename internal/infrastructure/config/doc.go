// Package config provides 12-factor configuration management for the editor
// shell backend.
//
// Configuration is loaded from environment variables with defaults, an
// optional YAML file may overlay them, and CLI flags override both.
//
// Configuration Sections:
//   - Server: HTTP listen address (port, host)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting
//   - CORS: Allowed GUI origins
//   - Workspace: Tree enumeration exclude globs
//   - Exec: Shell executor gate (enabled, allow-list, timeout, shell)
//   - Compression: gzip response encoding
//
// Environment Variables:
//   - PORT, HOST, LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED, CORS_ORIGINS
//   - WORKSPACE_EXCLUDE
//   - EXEC_ENABLED, EXEC_ALLOW, EXEC_TIMEOUT, EXEC_SHELL
//   - COMPRESSION_ENABLED, COMPRESSION_MIN_BYTES
package config
