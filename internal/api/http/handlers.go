package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/GriffinCanCode/EditorShell/backend/internal/command"
	"github.com/GriffinCanCode/EditorShell/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/EditorShell/backend/internal/shared/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Version is reported by the root endpoint
const Version = "0.1.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *command.Registry
	metrics  *monitoring.Metrics
	logger   *zap.Logger
}

// NewHandlers creates a new handler set. metrics may be nil.
func NewHandlers(registry *command.Registry, metrics *monitoring.Metrics, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		registry: registry,
		metrics:  metrics,
		logger:   logger,
	}
}

// Register mounts every route on router
func (h *Handlers) Register(router gin.IRouter) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)

	router.GET("/commands", h.ListCommands)
	router.POST("/invoke/:command", h.Invoke)

	fs := router.Group("/fs")
	fs.GET("/tree", h.queryAlias(command.ListTree))
	fs.GET("/content", h.queryAlias(command.ReadContent))
	fs.PUT("/content", h.bodyAlias(command.WriteContent))
	fs.POST("/file", h.bodyAlias(command.CreateFile))
	fs.POST("/directory", h.bodyAlias(command.CreateDirectory))
	fs.DELETE("/path", h.queryAlias(command.DeletePath))
	fs.GET("/inspect", h.queryAlias(command.InspectPath))

	router.POST("/exec", h.bodyAlias(command.ExecuteCommand))

	router.POST("/logs", h.StreamLogs)
	router.GET("/metrics/json", h.MetricsSnapshot)
}

// Root handles the liveness probe
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Editor Shell Backend (Go)",
		"version": Version,
	})
}

// Health reports registry statistics
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status":   "healthy",
		"commands": h.registry.Stats(),
	}
	if h.metrics != nil {
		body["metrics"] = h.metrics.Snapshot()
	}
	c.JSON(http.StatusOK, body)
}

// ListCommands returns every command definition with the extension tables
func (h *Handlers) ListCommands(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"commands":       h.registry.List(),
		"classification": command.Classification(),
	})
}

// Invoke runs the command named in the path with the JSON body as params
func (h *Handlers) Invoke(c *gin.Context) {
	params, ok := bindParams(c)
	if !ok {
		return
	}
	h.execute(c, c.Param("command"), params)
}

// queryAlias runs name with the path query parameter
func (h *Handlers) queryAlias(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := map[string]any{}
		if path, ok := c.GetQuery("path"); ok {
			params["path"] = path
		}
		h.execute(c, name, params)
	}
}

// bodyAlias runs name with the JSON body as params
func (h *Handlers) bodyAlias(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		params, ok := bindParams(c)
		if !ok {
			return
		}
		h.execute(c, name, params)
	}
}

func (h *Handlers) execute(c *gin.Context, name string, params map[string]any) {
	result, err := h.registry.Execute(c.Request.Context(), name, params)
	c.JSON(statusFor(result, err), result)
}

// bindParams decodes the body as a JSON object. An empty body means no
// params. On failure it writes a 400 and returns false.
func bindParams(c *gin.Context) (map[string]any, bool) {
	params := map[string]any{}
	if c.Request.Body == nil {
		return params, true
	}
	if err := c.ShouldBindJSON(&params); err != nil && !errors.Is(err, io.EOF) {
		c.AbortWithStatusJSON(http.StatusBadRequest, types.Failure("invalid request body: "+err.Error()))
		return nil, false
	}
	if params == nil {
		params = map[string]any{}
	}
	return params, true
}

func statusFor(result *types.Result, err error) int {
	switch {
	case errors.Is(err, command.ErrUnknownCommand):
		return http.StatusNotFound
	case result.Success:
		return http.StatusOK
	default:
		return http.StatusUnprocessableEntity
	}
}
