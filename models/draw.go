package models

import "time"

// DrawnNumber is one entry of a room's append-only draw history. Each
// round is seeded with a single 0 row meaning "no real number yet".
type DrawnNumber struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoomID    uint      `gorm:"not null;index" json:"room_id"`
	Number    int       `gorm:"not null" json:"drawn_number"`
	CreatedAt time.Time `json:"created_at"`
}
