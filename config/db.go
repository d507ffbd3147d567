package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/dlikecoding/Bingo-Game/models"
	"github.com/dlikecoding/Bingo-Game/utils/logger"
)

// SetupDatabase connects to Postgres and runs migrations. The handle
// is returned to the caller for injection rather than stored in a
// package global.
func SetupDatabase(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logger.Infof("[Config] database connected and migrated")
	return db, nil
}

// Migrate runs AutoMigrate for every persisted model.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Membership{},
		&models.ReadyStatus{},
		&models.Card{},
		&models.PlayerCard{},
		&models.DrawnNumber{},
		&models.MarkedCell{},
		&models.RoomTimer{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
