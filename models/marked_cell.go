package models

// MarkedCell is a player's self-reported mark on one cell of their own
// card. CellID is the client-side cell identifier, e.g. "cell-2-3".
type MarkedCell struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	RoomID uint   `gorm:"not null;index" json:"room_id"`
	UserID uint   `gorm:"not null" json:"user_id"`
	CellID string `gorm:"not null" json:"div_cell_id"`
}
