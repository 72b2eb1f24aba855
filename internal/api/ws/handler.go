package ws

import (
	"net/http"
	"time"

	"github.com/GriffinCanCode/EditorShell/backend/internal/command"
	"github.com/GriffinCanCode/EditorShell/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/EditorShell/backend/internal/shared/id"
	"github.com/GriffinCanCode/EditorShell/backend/internal/shared/types"
	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// DefaultMaxMessageBytes bounds one inbound frame. Writes carry whole
	// files, so it is generous.
	DefaultMaxMessageBytes = 64 << 20
	writeWait              = 10 * time.Second
)

// Options configures a Handler
type Options struct {
	// AllowedOrigins restricts browser origins. Empty or "*" allows any.
	AllowedOrigins  []string
	MaxMessageBytes int64
}

// Handler manages WebSocket connections
type Handler struct {
	registry *command.Registry
	metrics  *monitoring.Metrics
	logger   *zap.Logger
	upgrader websocket.Upgrader
	maxBytes int64
}

// NewHandler creates a new WebSocket handler. metrics may be nil.
func NewHandler(registry *command.Registry, metrics *monitoring.Metrics, logger *zap.Logger, opts Options) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxBytes := opts.MaxMessageBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxMessageBytes
	}

	return &Handler{
		registry: registry,
		metrics:  metrics,
		logger:   logger.Named("ws"),
		upgrader: websocket.Upgrader{CheckOrigin: originChecker(opts.AllowedOrigins)},
		maxBytes: maxBytes,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	if len(set) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// HandleConnection upgrades the request and serves invoke frames until the
// client goes away.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(h.maxBytes)

	connID := id.NewConnectionID()
	logger := h.logger.With(zap.String("connection_id", connID.String()))
	logger.Debug("WebSocket connected")

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	ctx := c.Request.Context()

	if err := h.send(conn, types.InvokeResponse{
		Type:         types.MessageSystem,
		Message:      "connected",
		ConnectionID: connID.String(),
	}); err != nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket read error", zap.Error(err))
			} else {
				logger.Debug("WebSocket closed")
			}
			return
		}

		var msg types.InvokeRequest
		if err := sonic.Unmarshal(data, &msg); err != nil {
			h.record("in", "malformed")
			if h.sendError(conn, "", "malformed message: "+err.Error()) != nil {
				return
			}
			continue
		}

		var reply types.InvokeResponse
		switch msg.Type {
		case "", types.MessageInvoke:
			h.record("in", types.MessageInvoke)
			result, _ := h.registry.Execute(ctx, msg.Command, msg.Params)
			reply = types.InvokeResponse{ID: msg.ID, Type: types.MessageResult, Result: result}
		case types.MessagePing:
			h.record("in", types.MessagePing)
			reply = types.InvokeResponse{ID: msg.ID, Type: types.MessagePong}
		default:
			h.record("in", "unknown")
			reply = types.InvokeResponse{ID: msg.ID, Type: types.MessageError, Message: "unknown message type: " + msg.Type}
		}

		if err := h.send(conn, reply); err != nil {
			logger.Warn("WebSocket write error", zap.Error(err))
			return
		}
	}
}

func (h *Handler) record(direction, msgType string) {
	if h.metrics != nil {
		h.metrics.RecordWSMessage(direction, msgType)
	}
}

func (h *Handler) send(conn *websocket.Conn, msg types.InvokeResponse) error {
	msg.Timestamp = time.Now().Unix()
	data, err := sonic.Marshal(msg)
	if err != nil {
		return err
	}
	h.record("out", msg.Type)
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}

func (h *Handler) sendError(conn *websocket.Conn, requestID, message string) error {
	return h.send(conn, types.InvokeResponse{
		ID:      requestID,
		Type:    types.MessageError,
		Message: message,
	})
}
