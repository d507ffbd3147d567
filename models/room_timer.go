package models

import "time"

// RoomTimer records when the active round started. Its absence means
// no game is in progress for that room.
type RoomTimer struct {
	RoomID    uint      `gorm:"primaryKey" json:"room_id"`
	Timestamp time.Time `gorm:"autoCreateTime" json:"timestamp"`
}
