package services

import "errors"

// Validation failures: user-visible rejections that leave room state
// untouched. Everything else escalates to room teardown.
var (
	ErrRoomNameExists = errors.New("room name already exists")
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomFull       = errors.New("room is full")
	ErrGameInProgress = errors.New("game already in progress")
	ErrNotHost        = errors.New("caller is not the room host")
	ErrBadPlayerCount = errors.New("game needs 2 to 4 ready players")
	ErrNotAMember     = errors.New("user is not a member of this room")
)

// teardownMessage is the only error text clients ever see for
// non-validation failures; diagnostics stay in the server log.
const teardownMessage = "an error occurred, removing room and redirecting to lobby"
