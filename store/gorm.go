package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/dlikecoding/Bingo-Game/game"
	"github.com/dlikecoding/Bingo-Game/models"
)

// GormStore implements Store over gorm/Postgres.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func mapErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// -------------------- Rooms --------------------

func (s *GormStore) CreateRoom(name, host string) (*models.Room, error) {
	room := models.Room{Name: name, Host: host, Status: false}
	if err := s.db.Create(&room).Error; err != nil {
		return nil, fmt.Errorf("create room %q: %w", name, err)
	}
	return &room, nil
}

func (s *GormStore) RoomByID(roomID uint) (*models.Room, error) {
	var room models.Room
	if err := s.db.First(&room, roomID).Error; err != nil {
		return nil, mapErr(err)
	}
	return &room, nil
}

func (s *GormStore) RoomNameExists(name string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Room{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) Rooms() ([]models.Room, error) {
	var rooms []models.Room
	if err := s.db.Order("id").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *GormStore) UpdateRoomStatus(roomID uint, inProgress bool) error {
	return s.db.Model(&models.Room{}).Where("id = ?", roomID).Update("status", inProgress).Error
}

func (s *GormStore) DeleteRoom(roomID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, del := range []error{
			tx.Where("room_id = ?", roomID).Delete(&models.Membership{}).Error,
			tx.Where("room_id = ?", roomID).Delete(&models.ReadyStatus{}).Error,
			s.deleteCardsTx(tx, roomID),
			tx.Where("room_id = ?", roomID).Delete(&models.DrawnNumber{}).Error,
			tx.Where("room_id = ?", roomID).Delete(&models.MarkedCell{}).Error,
			tx.Where("room_id = ?", roomID).Delete(&models.RoomTimer{}).Error,
			tx.Delete(&models.Room{}, roomID).Error,
		} {
			if del != nil {
				return del
			}
		}
		return nil
	})
}

// -------------------- Users --------------------

func (s *GormStore) UserIDByUsername(username string) (uint, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return 0, mapErr(err)
	}
	return user.ID, nil
}

func (s *GormStore) UsernameByID(userID uint) (string, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return "", mapErr(err)
	}
	return user.Username, nil
}

// -------------------- Membership --------------------

func (s *GormStore) AddMember(userID, roomID uint) error {
	m := models.Membership{UserID: userID, RoomID: roomID}
	return s.db.Create(&m).Error
}

func (s *GormStore) RemoveMember(userID, roomID uint) error {
	return s.db.Where("user_id = ? AND room_id = ?", userID, roomID).Delete(&models.Membership{}).Error
}

func (s *GormStore) Members(roomID uint) ([]models.Membership, error) {
	var members []models.Membership
	if err := s.db.Where("room_id = ?", roomID).Order("id").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (s *GormStore) IsMember(userID, roomID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Membership{}).
		Where("user_id = ? AND room_id = ?", userID, roomID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) MembershipsForUser(userID uint) ([]models.Membership, error) {
	var members []models.Membership
	if err := s.db.Where("user_id = ?", userID).Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// -------------------- Readiness --------------------

func (s *GormStore) InsertReadyStatus(playerID, roomID uint) error {
	rs := models.ReadyStatus{PlayerID: playerID, RoomID: roomID, Status: false}
	return s.db.Create(&rs).Error
}

func (s *GormStore) HasReadyStatus(playerID, roomID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.ReadyStatus{}).
		Where("player_id = ? AND room_id = ?", playerID, roomID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) ReadyStatus(playerID, roomID uint) (bool, error) {
	var rs models.ReadyStatus
	err := s.db.Where("player_id = ? AND room_id = ?", playerID, roomID).First(&rs).Error
	if err != nil {
		return false, mapErr(err)
	}
	return rs.Status, nil
}

func (s *GormStore) SetReadyStatus(playerID, roomID uint, ready bool) error {
	return s.db.Model(&models.ReadyStatus{}).
		Where("player_id = ? AND room_id = ?", playerID, roomID).
		Update("status", ready).Error
}

func (s *GormStore) ResetReadyStatuses(roomID uint) error {
	return s.db.Model(&models.ReadyStatus{}).
		Where("room_id = ?", roomID).
		Update("status", false).Error
}

func (s *GormStore) DeleteReadyStatus(playerID, roomID uint) error {
	return s.db.Where("player_id = ? AND room_id = ?", playerID, roomID).Delete(&models.ReadyStatus{}).Error
}

func (s *GormStore) ReadyStatuses(roomID uint) ([]models.ReadyStatus, error) {
	var statuses []models.ReadyStatus
	if err := s.db.Where("room_id = ?", roomID).Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

// -------------------- Cards --------------------

func (s *GormStore) InsertCards(grids []game.Card) ([]models.Card, error) {
	cards := make([]models.Card, 0, len(grids))
	for _, grid := range grids {
		raw, err := json.Marshal(grid)
		if err != nil {
			return nil, fmt.Errorf("marshal card grid: %w", err)
		}
		cards = append(cards, models.Card{Grid: datatypes.JSON(raw)})
	}
	if err := s.db.Create(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func (s *GormStore) AssignCard(playerID, cardID, roomID uint) error {
	pc := models.PlayerCard{PlayerID: playerID, CardID: cardID, RoomID: roomID}
	return s.db.Create(&pc).Error
}

func (s *GormStore) CardByPlayer(playerID, roomID uint) (game.Card, error) {
	var pc models.PlayerCard
	err := s.db.Where("player_id = ? AND room_id = ?", playerID, roomID).First(&pc).Error
	if err != nil {
		return game.Card{}, mapErr(err)
	}
	var card models.Card
	if err := s.db.First(&card, pc.CardID).Error; err != nil {
		return game.Card{}, mapErr(err)
	}
	var grid game.Card
	if err := json.Unmarshal(card.Grid, &grid); err != nil {
		return game.Card{}, fmt.Errorf("unmarshal card %d: %w", card.ID, err)
	}
	return grid, nil
}

func (s *GormStore) DeleteCards(roomID uint) error {
	return s.deleteCardsTx(s.db, roomID)
}

// deleteCardsTx removes the room's assignments first, then the card
// rows they referenced.
func (s *GormStore) deleteCardsTx(tx *gorm.DB, roomID uint) error {
	var assignments []models.PlayerCard
	if err := tx.Where("room_id = ?", roomID).Find(&assignments).Error; err != nil {
		return err
	}
	if err := tx.Where("room_id = ?", roomID).Delete(&models.PlayerCard{}).Error; err != nil {
		return err
	}
	for _, pc := range assignments {
		if err := tx.Delete(&models.Card{}, pc.CardID).Error; err != nil {
			return err
		}
	}
	return nil
}

// -------------------- Draw history --------------------

func (s *GormStore) AppendDrawnNumber(roomID uint, number int) error {
	dn := models.DrawnNumber{RoomID: roomID, Number: number}
	return s.db.Create(&dn).Error
}

func (s *GormStore) DrawnNumbers(roomID uint) ([]int, error) {
	var rows []models.DrawnNumber
	if err := s.db.Where("room_id = ?", roomID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	numbers := make([]int, 0, len(rows))
	for _, row := range rows {
		numbers = append(numbers, row.Number)
	}
	return numbers, nil
}

func (s *GormStore) DeleteDrawnNumbers(roomID uint) error {
	return s.db.Where("room_id = ?", roomID).Delete(&models.DrawnNumber{}).Error
}

// -------------------- Marked cells --------------------

func (s *GormStore) InsertMarkedCell(userID, roomID uint, cellID string) error {
	mc := models.MarkedCell{RoomID: roomID, UserID: userID, CellID: cellID}
	return s.db.Create(&mc).Error
}

func (s *GormStore) DeleteMarkedCell(userID, roomID uint, cellID string) error {
	return s.db.Where("user_id = ? AND room_id = ? AND cell_id = ?", userID, roomID, cellID).
		Delete(&models.MarkedCell{}).Error
}

func (s *GormStore) DeleteAllMarkedCells(roomID uint) error {
	return s.db.Where("room_id = ?", roomID).Delete(&models.MarkedCell{}).Error
}

func (s *GormStore) MarkedCells(roomID uint) ([]models.MarkedCell, error) {
	var cells []models.MarkedCell
	if err := s.db.Where("room_id = ?", roomID).Find(&cells).Error; err != nil {
		return nil, err
	}
	return cells, nil
}

// -------------------- Round start timestamp --------------------

func (s *GormStore) InsertStartTime(roomID uint) error {
	rt := models.RoomTimer{RoomID: roomID, Timestamp: time.Now()}
	return s.db.Create(&rt).Error
}

func (s *GormStore) DeleteStartTime(roomID uint) error {
	return s.db.Where("room_id = ?", roomID).Delete(&models.RoomTimer{}).Error
}

func (s *GormStore) StartTime(roomID uint) (time.Time, error) {
	var rt models.RoomTimer
	if err := s.db.First(&rt, "room_id = ?", roomID).Error; err != nil {
		return time.Time{}, mapErr(err)
	}
	return rt.Timestamp, nil
}
