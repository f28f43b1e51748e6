package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ecosept/booking-api/internal/config"
	dbpkg "github.com/ecosept/booking-api/internal/db"
	"github.com/ecosept/booking-api/internal/middleware"
	"github.com/ecosept/booking-api/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, int(cfg.RateLimitRPS)*2))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg)

	logger.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
