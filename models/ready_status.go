package models

import "time"

// ReadyStatus is the per (player, room) ready flag. Created alongside
// membership, reset in bulk when a round ends.
type ReadyStatus struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PlayerID  uint      `gorm:"not null;uniqueIndex:idx_ready_player_room" json:"player_id"`
	RoomID    uint      `gorm:"not null;uniqueIndex:idx_ready_player_room;index" json:"room_id"`
	Status    bool      `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}
