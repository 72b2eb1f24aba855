package types

// InvokeRequest is a WebSocket frame asking for a command
type InvokeRequest struct {
	ID      string         `json:"id"`
	Type    string         `json:"type,omitempty"`
	Command string         `json:"command"`
	Params  map[string]any `json:"params"`
}

// InvokeResponse answers an InvokeRequest with the same ID. System, pong
// and error frames reuse it without a result.
type InvokeResponse struct {
	ID           string  `json:"id,omitempty"`
	Type         string  `json:"type"`
	Result       *Result `json:"result,omitempty"`
	Message      string  `json:"message,omitempty"`
	ConnectionID string  `json:"connection_id,omitempty"`
	Timestamp    int64   `json:"timestamp"`
}

// WSMessage types
const (
	MessageInvoke = "invoke"
	MessageResult = "result"
	MessagePing   = "ping"
	MessagePong   = "pong"
	MessageError  = "error"
	MessageSystem = "system"
)
