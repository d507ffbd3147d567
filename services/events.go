package services

import "encoding/json"

// Inbound event names. The coordinator is the sole handler registry
// for this set; "join room" is consumed by the client pump itself
// since it only changes the connection's group subscription.
const (
	EventJoinRoom       = "join room"
	EventChatMessage    = "chat message"
	EventCreateRoom     = "create room"
	EventPlayerReady    = "player ready"
	EventExitRoom       = "exit room"
	EventKickingPlayer  = "kicking player"
	EventDeleteRoom     = "delete room"
	EventNewPlayer      = "new player joined"
	EventStartingGame   = "starting game"
	EventGenerateNumber = "generate random number"
	EventMarkedNumber   = "user marked number"
	EventCheckWon       = "check won"
	EventGameEnded      = "game ended"
)

// Outbound event names.
const (
	EventUpdateRoom       = "update room"
	EventFailedCreateRoom = "failed create room"
	EventPlayerExited     = "player exited"
	EventPlayerKicked     = "player kicked"
	EventRoomDeleted      = "room deleted"
	EventUpdateStatusGame = "update status game"
	EventGameStarted      = "game started"
	EventNumberGenerated  = "number generated"
	EventUpdateCardMarked = "update card marked"
	EventPlayerWon        = "player won"
	EventPlayerNotWon     = "player not won"
	EventFinishedCleanup  = "finished cleanup"
	EventError            = "error"
)

// Envelope frames every websocket message in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Inbound payloads. Each is decoded and validated at the boundary
// before any handler runs.

type SubscribePayload struct {
	Room string `json:"room"`
}

type ChatPayload struct {
	User    string `json:"user"`
	Message string `json:"message"`
	Room    string `json:"room"`
}

type CreateRoomPayload struct {
	RoomName string `json:"roomName"`
	User     string `json:"user"`
}

type RoomUserPayload struct {
	RoomID uint `json:"roomId"`
	UserID uint `json:"userId"`
}

type RoomPayload struct {
	RoomID uint `json:"roomId"`
}

type NewPlayerPayload struct {
	User   string `json:"user"`
	RoomID uint   `json:"roomId"`
}

type MarkPayload struct {
	RoomID   uint   `json:"roomId"`
	PlayerID uint   `json:"playerId"`
	CellID   string `json:"cell_id"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	IsMarked bool   `json:"isMarked"`
}

type CheckWonPayload struct {
	RoomID   uint   `json:"room_id"`
	UserID   uint   `json:"user_id"`
	UserName string `json:"user_name"`
}

// Outbound payloads.

type UpdateRoomPayload struct {
	RoomName string `json:"roomName"`
	User     string `json:"user"`
	RoomID   uint   `json:"roomId"`
	Status   bool   `json:"status"`
}

type FailedCreateRoomPayload struct {
	Error string `json:"error"`
	User  string `json:"user"`
}

type ReadyBroadcast struct {
	UserID uint `json:"userId"`
	Status bool `json:"status"`
}

type PlayerBroadcast struct {
	UserID uint `json:"userId"`
}

type NewPlayerBroadcast struct {
	Username string `json:"username"`
	RoomID   uint   `json:"roomId"`
	UserID   uint   `json:"userId"`
}

type StatusGameBroadcast struct {
	RoomID uint `json:"roomId"`
	Status bool `json:"status"`
}

type NumberBroadcast struct {
	Number int `json:"number"`
}

type WonBroadcast struct {
	RoomID         uint   `json:"roomId"`
	PlayerID       uint   `json:"playerId"`
	PlayerUsername string `json:"playerUsername,omitempty"`
}

type ErrorBroadcast struct {
	Error string `json:"error"`
}
