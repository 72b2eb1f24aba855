// Package types provides the wire types shared by the HTTP, WebSocket and CLI
// transports of the editor shell backend.
//
// Core Types:
//   - Result: outcome of one command invocation
//   - CommandDefinition, Parameter: self-description of the command surface
//
// Transport Types:
//   - InvokeRequest, InvokeResponse: WebSocket invoke frames
package types
