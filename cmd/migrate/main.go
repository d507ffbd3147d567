package main

import (
	"os"

	"github.com/dlikecoding/Bingo-Game/config"
	"github.com/dlikecoding/Bingo-Game/utils/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Errorf("[Migrate] config: %v", err)
		os.Exit(1)
	}

	if _, err := config.SetupDatabase(cfg); err != nil {
		logger.Errorf("[Migrate] %v", err)
		os.Exit(1)
	}

	logger.Infof("[Migrate] database migration completed")
}
