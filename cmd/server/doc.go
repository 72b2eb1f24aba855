// Package main is the entry point for the editor shell workspace backend.
//
// The binary exposes the workspace file commands to the desktop shell:
//
//	Editor frontend → HTTP / WebSocket invoke → command registry → workspace
//	                                                              → executor (sh -c)
//
// Subcommands:
//   - serve: HTTP API, WebSocket invoke channel and /metrics
//   - invoke: run a single command in-process and print the result
//   - commands: list the registered commands
//
// Configuration:
//   - Environment variables (12-factor)
//   - Optional YAML file (--config) overlaying the environment
//   - CLI flags (override both)
//
// Usage:
//
//	# Serve on a custom port
//	editorshell serve --port 9000
//
//	# Development mode (colored logs, debug level)
//	editorshell serve --dev
//
//	# One-shot command
//	editorshell invoke read_content --param path=README.md
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
