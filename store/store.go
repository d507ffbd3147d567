// Package store is the persistence gateway: one narrow operation per
// query over the relational system of record. The coordinator owns no
// durable state of its own; every write here surfaces its error so the
// fail-fast room teardown can trigger.
package store

import (
	"errors"
	"time"

	"github.com/dlikecoding/Bingo-Game/game"
	"github.com/dlikecoding/Bingo-Game/models"
)

// ErrNotFound is returned when a row the caller expected is missing.
var ErrNotFound = errors.New("store: record not found")

type Store interface {
	// Rooms
	CreateRoom(name, host string) (*models.Room, error)
	RoomByID(roomID uint) (*models.Room, error)
	RoomNameExists(name string) (bool, error)
	Rooms() ([]models.Room, error)
	UpdateRoomStatus(roomID uint, inProgress bool) error
	// DeleteRoom removes the room and cascades over every dependent
	// row: memberships, ready statuses, cards, draw history, marked
	// cells and the start timer.
	DeleteRoom(roomID uint) error

	// Users
	UserIDByUsername(username string) (uint, error)
	UsernameByID(userID uint) (string, error)

	// Membership
	AddMember(userID, roomID uint) error
	RemoveMember(userID, roomID uint) error
	Members(roomID uint) ([]models.Membership, error)
	IsMember(userID, roomID uint) (bool, error)
	MembershipsForUser(userID uint) ([]models.Membership, error)

	// Readiness
	InsertReadyStatus(playerID, roomID uint) error
	HasReadyStatus(playerID, roomID uint) (bool, error)
	ReadyStatus(playerID, roomID uint) (bool, error)
	SetReadyStatus(playerID, roomID uint, ready bool) error
	ResetReadyStatuses(roomID uint) error
	DeleteReadyStatus(playerID, roomID uint) error
	ReadyStatuses(roomID uint) ([]models.ReadyStatus, error)

	// Cards
	InsertCards(grids []game.Card) ([]models.Card, error)
	AssignCard(playerID, cardID, roomID uint) error
	CardByPlayer(playerID, roomID uint) (game.Card, error)
	DeleteCards(roomID uint) error

	// Draw history
	AppendDrawnNumber(roomID uint, number int) error
	DrawnNumbers(roomID uint) ([]int, error)
	DeleteDrawnNumbers(roomID uint) error

	// Marked cells
	InsertMarkedCell(userID, roomID uint, cellID string) error
	DeleteMarkedCell(userID, roomID uint, cellID string) error
	DeleteAllMarkedCells(roomID uint) error
	MarkedCells(roomID uint) ([]models.MarkedCell, error)

	// Round start timestamp
	InsertStartTime(roomID uint) error
	DeleteStartTime(roomID uint) error
	StartTime(roomID uint) (time.Time, error)
}
