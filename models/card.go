package models

import (
	"time"

	"gorm.io/datatypes"
)

// Card stores one generated 5x5 grid as a JSON column.
type Card struct {
	ID        uint           `gorm:"primaryKey" json:"card_id"`
	Grid      datatypes.JSON `gorm:"not null" json:"card_data"`
	CreatedAt time.Time      `json:"created_at"`
}

// PlayerCard assigns a card to a player for one room's round.
type PlayerCard struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	PlayerID uint `gorm:"not null;index" json:"player_id"`
	CardID   uint `gorm:"not null" json:"card_id"`
	RoomID   uint `gorm:"not null;index" json:"room_id"`
}
