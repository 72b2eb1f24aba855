// Package command exposes the workspace and executor operations as a
// registry of named commands, the same surface the desktop frontend invokes.
//
// Components:
//   - Registry: thread-safe catalog and dispatcher
//   - Command: a named operation with a self-describing Definition
//   - Params: decoded invocation arguments with validation
//
// Every execution produces a types.Result. Failures keep the error shape of
// the underlying operation: listing, reading, inspecting and executing fail
// with a bare message, mutations fail with {message, code}.
//
// Example Usage:
//
//	registry := command.NewRegistry(command.Options{Metrics: metrics, Logger: logger})
//	command.RegisterWorkspace(registry, ws)
//	result, err := registry.Execute(ctx, "read_content", map[string]any{"path": "/tmp/a.rs"})
package command
