// Package http exposes the command registry over HTTP with gin.
//
// Routes:
//   - GET  /, /health: liveness and registry stats
//   - GET  /commands: command definitions
//   - POST /invoke/:command: generic invocation, body is the params object
//   - /fs/* and /exec: REST aliases for the individual commands
//   - POST /logs: frontend log forwarding
//   - GET  /metrics, /metrics/json: Prometheus exposition and a JSON snapshot
//
// Every command route answers with a types.Result. The status code is 200 on
// success, 422 when the command failed, 404 for an unknown command and 400
// for a body that is not a JSON object.
package http
