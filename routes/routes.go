package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dlikecoding/Bingo-Game/controllers"
	"github.com/dlikecoding/Bingo-Game/services"
)

// SetupRoutes wires the REST surface and the websocket endpoint onto
// the engine. Handlers arrive pre-built so the route table stays free
// of construction logic.
func SetupRoutes(r *gin.Engine, rooms *controllers.Rooms, ws *services.WSHandler) {
	api := r.Group("/api")

	// ----------------------
	// Lobby routes
	// ----------------------
	api.GET("/available_rooms", rooms.AvailableRooms) // List all rooms
	api.POST("/join_room/:roomId", rooms.JoinRoom)    // Join a waiting room
	api.POST("/add_user_status", rooms.AddUserStatus) // Seed readiness row
	api.GET("/check_user_and_game/:roomId", rooms.CheckUserAndGame)

	// ----------------------
	// Room routes
	// ----------------------
	api.GET("/waiting/:roomId", rooms.Waiting) // Waiting-room view
	api.POST("/starting_game/:roomId", rooms.StartingGame)
	api.POST("/host_exit/:roomId", rooms.HostExit)

	// ----------------------
	// Game routes
	// ----------------------
	api.GET("/game/:roomId", rooms.Game)               // In-round view
	api.POST("/draw_number/:roomId", rooms.DrawNumber) // First-draw precondition

	// ----------------------
	// WebSocket
	// ----------------------
	r.GET("/ws", ws.Handle)
}
