package models

import "time"

// User holds the identity rows the coordinator resolves usernames
// against. Registration and credentials live outside this service.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"user_id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
