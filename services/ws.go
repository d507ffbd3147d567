package services

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/dlikecoding/Bingo-Game/store"
	"github.com/dlikecoding/Bingo-Game/utils/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades connections and registers them with the hub. The
// caller identifies itself by username; authentication proper lives in
// front of this service.
type WSHandler struct {
	hub   *Hub
	coord *Coordinator
	store store.Store
}

func NewWSHandler(hub *Hub, coord *Coordinator, st store.Store) *WSHandler {
	return &WSHandler{hub: hub, coord: coord, store: st}
}

func (h *WSHandler) Handle(c *gin.Context) {
	username := c.Query("user")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user query param"})
		return
	}

	userID, err := h.store.UserIDByUsername(username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("[WS] upgrade error: %v", err)
		return
	}

	client := &Client{
		id:       uuid.NewString(),
		userID:   userID,
		username: username,
		conn:     conn,
		hub:      h.hub,
		coord:    h.coord,
		send:     make(chan []byte, 32),
		done:     make(chan struct{}),
		groups:   make(map[string]bool),
	}
	logger.Infof("[WS] new client: conn=%s user=%s", client.id, username)

	h.hub.Subscribe(client, LobbyGroup)
	go client.writePump()
	go client.readPump()
}
