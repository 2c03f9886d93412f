package endpoints

import (
	"booking"
	"booking/internal/api/handler/response"
	"booking/internal/realtime"
	"booking/pkg"
	"net/http"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, you should validate the origin
		return true
	},
}

type websocketHandler struct {
	registry *realtime.Registry
	logger   zerolog.Logger
	config   booking.AppConfig
}

func newWebSocketHandler(registry *realtime.Registry) *websocketHandler {
	return &websocketHandler{
		registry: registry,
		logger:   booking.Logger,
		config:   booking.GetConfig(),
	}
}

// WebSocketHandler sets up the persistent connection endpoint.
func WebSocketHandler(router *graceful.Graceful, registry *realtime.Registry) {
	h := newWebSocketHandler(registry)

	ws := router.Group("/api/v1/ws")
	{
		ws.GET("/init", h.handleWebSocket)
		ws.GET("/stats", h.getStats)
	}
}

// handleWebSocket upgrades the connection. The browser websocket API
// cannot set headers, so authentication uses a token query parameter;
// identity binding for pushes happens with the INIT announce message.
func (slf *websocketHandler) handleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, response.APIError{Message: "missing token"})
		return
	}

	if _, err := pkg.ValidateToken(token, slf.config.JWTConfig.Secret); err != nil {
		c.JSON(http.StatusUnauthorized, response.APIError{Message: "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to upgrade to WebSocket")
		return
	}

	clientID := uuid.New().String()
	client := realtime.NewClient(clientID, slf.registry, conn, slf.logger)

	slf.logger.Info().Str("clientId", clientID).Msg("WebSocket connection established")

	go client.WritePump()
	go client.ReadPump()
}

func (slf *websocketHandler) getStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"connections": slf.registry.Count(),
	})
}
