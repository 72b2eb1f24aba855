// Package ws provides the WebSocket invoke channel of the editor shell
// backend.
//
// A connection carries invoke frames from the frontend and result frames
// back. Frames on one connection are processed one at a time in arrival
// order, so a write followed by a read on the same socket observes the write.
//
// Message Types (Client → Server):
//   - invoke (or no type): {"id", "command", "params"}
//   - ping: keep-alive
//
// Message Types (Server → Client):
//   - system: sent once on connect with the connection ID
//   - result: {"id", "result"} for the invoke with the same ID
//   - pong: reply to ping
//   - error: malformed frame or unknown message type
//
// Frames are JSON encoded with bytedance/sonic.
//
// Example Usage:
//
//	handler := ws.NewHandler(registry, metrics, logger, ws.Options{})
//	router.GET("/ws", handler.HandleConnection)
package ws
