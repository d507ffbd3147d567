package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dlikecoding/Bingo-Game/config"
	"github.com/dlikecoding/Bingo-Game/controllers"
	"github.com/dlikecoding/Bingo-Game/game"
	"github.com/dlikecoding/Bingo-Game/routes"
	"github.com/dlikecoding/Bingo-Game/services"
	"github.com/dlikecoding/Bingo-Game/store"
	"github.com/dlikecoding/Bingo-Game/utils/logger"
)

// setupRouter initializes Gin routes and middleware
func setupRouter(cfg *config.Config, rooms *controllers.Rooms, ws *services.WSHandler) *gin.Engine {
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	routes.SetupRoutes(r, rooms, ws)

	return r
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Errorf("[Main] config: %v", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.LogLevel)

	db, err := config.SetupDatabase(cfg)
	if err != nil {
		logger.Errorf("[Main] database: %v", err)
		os.Exit(1)
	}

	st := store.NewGormStore(db)
	registry := game.NewRegistry()
	hub := services.NewHub()
	coord := services.NewCoordinator(st, registry, hub, cfg.DrawInterval)
	rooms := controllers.NewRooms(st, coord)
	ws := services.NewWSHandler(hub, coord, st)

	router := setupRouter(cfg, rooms, ws)

	// Stop every live draw loop before the process exits.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Infof("[Main] shutting down, stopping draw loops")
		registry.Shutdown()
		os.Exit(0)
	}()

	logger.Infof("[Main] server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Errorf("[Main] server: %v", err)
		registry.Shutdown()
		os.Exit(1)
	}
}
