package models

import "time"

// Membership links a user to the room they currently sit in. The
// unique index makes a repeated join a constraint violation rather
// than a silent duplicate; the coordinator checks first and treats a
// re-join as success.
type Membership struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_member_user_room" json:"user_id"`
	RoomID    uint      `gorm:"not null;uniqueIndex:idx_member_user_room;index" json:"room_id"`
	CreatedAt time.Time `json:"created_at"`
}
