package realtime

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gorillawebsocket "github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/careconnect/clinic-scheduler/internal/auth"
)

var upgrader = gorillawebsocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades authenticated HTTP requests to websocket
// connections and binds them into the hub.
type Handler struct {
	hub        *Hub
	tokens     *auth.TokenManager
	revocation *auth.RevocationStore
	log        *zap.Logger
}

func NewHandler(
	hub *Hub,
	tokens *auth.TokenManager,
	revocation *auth.RevocationStore,
	log *zap.Logger,
) *Handler {
	return &Handler{
		hub:        hub,
		tokens:     tokens,
		revocation: revocation,
		log:        log,
	}
}

// bearerToken accepts the credential either as an Authorization header
// or a ?token= query parameter (browser websocket clients cannot set
// headers).
func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}
	return c.Query("token")
}

// HandleConnect authenticates the connection with the same token
// contract as the REST API, then starts the read/write pumps. Missing,
// malformed, expired or revoked credentials close the connection; no
// anonymous mode exists.
func (h *Handler) HandleConnect(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
		return
	}

	claims, err := h.tokens.Verify(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
		return
	}

	if h.revocation.IsRevoked(c.Request.Context(), claims.JTI) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token_revoked"})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("realtime: upgrade failed", zap.Error(err))
		return
	}

	channels := []string{UserChannel(claims.UserID)}
	if claims.Role != "" {
		channels = append(channels, RoleChannel(claims.Role))
	}

	client := &Client{
		ID:       uuid.NewString(),
		UserID:   claims.UserID,
		Channels: channels,
		Send:     make(chan []byte, 256),
		conn:     &gorillaConnAdapter{ws},
	}

	h.hub.Register(client)

	go h.writePump(client, ws)
	go h.readPump(client, ws)
}

func (h *Handler) readPump(client *Client, ws *gorillawebsocket.Conn) {
	defer func() {
		h.hub.Unregister(client)
		ws.Close()
	}()

	for {
		// Inbound frames are drained only to detect disconnects; the
		// channel bindings are fixed at auth time.
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Handler) writePump(client *Client, ws *gorillawebsocket.Conn) {
	defer ws.Close()

	for message := range client.Send {
		if err := ws.WriteMessage(gorillawebsocket.TextMessage, message); err != nil {
			break
		}
	}
}

// gorillaConnAdapter wraps a gorilla/websocket.Conn to satisfy Conn.
type gorillaConnAdapter struct {
	conn *gorillawebsocket.Conn
}

func (a *gorillaConnAdapter) ReadMessage() (int, []byte, error) {
	return a.conn.ReadMessage()
}

func (a *gorillaConnAdapter) WriteMessage(messageType int, data []byte) error {
	return a.conn.WriteMessage(messageType, data)
}

func (a *gorillaConnAdapter) Close() error {
	return a.conn.Close()
}
