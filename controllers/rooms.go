package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dlikecoding/Bingo-Game/game"
	"github.com/dlikecoding/Bingo-Game/services"
	"github.com/dlikecoding/Bingo-Game/store"
	"github.com/dlikecoding/Bingo-Game/utils/logger"
)

// Rooms serves the HTTP read side of the lobby and the few room
// mutations that arrive over REST instead of the websocket.
type Rooms struct {
	store store.Store
	coord *services.Coordinator
}

func NewRooms(st store.Store, coord *services.Coordinator) *Rooms {
	return &Rooms{store: st, coord: coord}
}

func roomIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("roomId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return 0, false
	}
	return uint(id), true
}

func (r *Rooms) userIDFromQuery(c *gin.Context) (uint, bool) {
	username := c.Query("user")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user query param"})
		return 0, false
	}
	userID, err := r.store.UserIDByUsername(username)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		}
		return 0, false
	}
	return userID, true
}

// AvailableRooms lists every room for the lobby screen.
func (r *Rooms) AvailableRooms(c *gin.Context) {
	rooms, err := r.store.Rooms()
	if err != nil {
		logger.Errorf("[Rooms] list rooms: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// Waiting returns the waiting-room view: the room plus each member's
// username, readiness and host flag.
func (r *Rooms) Waiting(c *gin.Context) {
	roomID, ok := roomIDParam(c)
	if !ok {
		return
	}

	room, err := r.store.RoomByID(roomID)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	members, err := r.store.Members(roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	statuses, err := r.store.ReadyStatuses(roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	ready := make(map[uint]bool, len(statuses))
	for _, s := range statuses {
		ready[s.PlayerID] = s.Status
	}

	players := make([]gin.H, 0, len(members))
	for _, m := range members {
		username, err := r.store.UsernameByID(m.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		players = append(players, gin.H{
			"userId":   m.UserID,
			"username": username,
			"isReady":  ready[m.UserID],
			"isHost":   username == room.Host,
		})
	}

	c.JSON(http.StatusOK, gin.H{"room": room, "players": players})
}

// Game returns the in-round view for one player. Other players' grids
// are zeroed server-side so a client can never render an opponent's
// numbers, and the 0 seed is stripped from the drawn history.
func (r *Rooms) Game(c *gin.Context) {
	roomID, ok := roomIDParam(c)
	if !ok {
		return
	}
	callerID, ok := r.userIDFromQuery(c)
	if !ok {
		return
	}

	member, err := r.store.IsMember(callerID, roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": services.ErrNotAMember.Error()})
		return
	}

	members, err := r.store.Members(roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	cards := make([]gin.H, 0, len(members))
	for _, m := range members {
		grid, err := r.store.CardByPlayer(m.UserID, roomID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		if m.UserID != callerID {
			grid = game.Card{}
		}
		username, err := r.store.UsernameByID(m.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		cards = append(cards, gin.H{
			"userId":   m.UserID,
			"username": username,
			"card":     grid,
		})
	}

	drawn, err := r.store.DrawnNumbers(roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	numbers := make([]int, 0, len(drawn))
	for _, n := range drawn {
		if n != game.FreeCell {
			numbers = append(numbers, n)
		}
	}

	marks, err := r.store.MarkedCells(roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	start, err := r.store.StartTime(roomID)
	if err != nil && err != store.ErrNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cards":        cards,
		"drawnNumbers": numbers,
		"markedCells":  marks,
		"startTime":    start,
	})
}

// JoinRoom adds the caller to a waiting room, subject to the capacity
// and status checks.
func (r *Rooms) JoinRoom(c *gin.Context) {
	roomID, ok := roomIDParam(c)
	if !ok {
		return
	}
	userID, ok := r.userIDFromQuery(c)
	if !ok {
		return
	}

	switch err := r.coord.JoinRoom(userID, roomID); err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"roomId": roomID})
	case services.ErrRoomNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case services.ErrRoomFull, services.ErrGameInProgress:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Errorf("[Rooms] join room %d: %v", roomID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
	}
}

// AddUserStatus inserts a readiness row for a player when none exists
// yet. Called by the client right after a REST join.
func (r *Rooms) AddUserStatus(c *gin.Context) {
	var req struct {
		UserID uint `json:"userId" binding:"required"`
		RoomID uint `json:"roomId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	has, err := r.store.HasReadyStatus(req.UserID, req.RoomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if !has {
		if err := r.store.InsertReadyStatus(req.UserID, req.RoomID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"userId": req.UserID, "roomId": req.RoomID})
}

// StartingGame is the REST entry into the round-start transition.
func (r *Rooms) StartingGame(c *gin.Context) {
	roomID, ok := roomIDParam(c)
	if !ok {
		return
	}

	switch err := r.coord.StartGame(roomID); err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"roomId": roomID})
	case services.ErrRoomNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case services.ErrBadPlayerCount:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start game"})
	}
}

// HostExit dissolves the room when its host leaves.
func (r *Rooms) HostExit(c *gin.Context) {
	roomID, ok := roomIDParam(c)
	if !ok {
		return
	}
	username := c.Query("user")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user query param"})
		return
	}

	room, err := r.store.RoomByID(roomID)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if room.Host != username {
		c.JSON(http.StatusForbidden, gin.H{"error": services.ErrNotHost.Error()})
		return
	}

	userID, err := r.store.UserIDByUsername(username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if err := r.coord.HostExit(userID, roomID); err != nil {
		logger.Errorf("[Rooms] host exit room %d: %v", roomID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"roomId": roomID})
}

// DrawNumber reports whether the first real draw is still pending.
// Clients use it to decide which connection kicks off the draw loop;
// once a non-sentinel number exists the answer is 400.
func (r *Rooms) DrawNumber(c *gin.Context) {
	roomID, ok := roomIDParam(c)
	if !ok {
		return
	}

	drawn, err := r.store.DrawnNumbers(roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	for _, n := range drawn {
		if n != game.FreeCell {
			c.JSON(http.StatusBadRequest, gin.H{"error": "numbers already drawn"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"roomId": roomID})
}

// CheckUserAndGame tells a reconnecting client whether it belongs to
// the room and whether a round is running there.
func (r *Rooms) CheckUserAndGame(c *gin.Context) {
	roomID, ok := roomIDParam(c)
	if !ok {
		return
	}
	userID, ok := r.userIDFromQuery(c)
	if !ok {
		return
	}

	room, err := r.store.RoomByID(roomID)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	member, err := r.store.IsMember(userID, roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"isMember": member, "inProgress": room.Status})
}
