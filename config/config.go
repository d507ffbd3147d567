package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/dlikecoding/Bingo-Game/utils/logger"
)

// Config holds every runtime setting. Values come from the process
// environment, with a .env file layered in for local development.
type Config struct {
	Port         string        `env:"PORT" env-default:"8080"`
	DatabaseURL  string        `env:"DATABASE_URL" env-required:"true"`
	AllowOrigins []string      `env:"ALLOW_ORIGINS" env-default:"*" env-separator:","`
	DrawInterval time.Duration `env:"DRAW_INTERVAL" env-default:"1s"`
	LogLevel     string        `env:"LOG_LEVEL" env-default:"debug"`
}

// Load reads the .env file when present and fills Config from the
// environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Infof("[Config] no .env file found, reading environment variables")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
