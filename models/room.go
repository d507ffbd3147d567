package models

import "time"

// Room is a named play session. Status false means waiting, true means
// a round is in progress, mirroring the rooms.status boolean column.
type Room struct {
	ID        uint      `gorm:"primaryKey" json:"room_id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"room_name"`
	Host      string    `gorm:"not null" json:"host"`
	Status    bool      `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
