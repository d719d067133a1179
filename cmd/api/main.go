package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"pv-feasibility/internal/api/handlers"
	"pv-feasibility/internal/api/middleware"
)

const scenarioCacheSize = 16

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.Recovery())

	scenarioHandler := handlers.NewScenarioHandler(scenarioCacheSize)
	sweepHandler := handlers.NewSweepHandler()
	objectiveHandler := handlers.NewObjectiveHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/scenario", scenarioHandler.Run)
		v1.POST("/sweep", sweepHandler.RunCapacity)
		v1.POST("/sensitivity", sweepHandler.RunSensitivity)
		v1.POST("/objective", objectiveHandler.Evaluate)
	}

	handler := cors.Default().Handler(router)

	log.Info().Str("port", port).Msg("starting API server")
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
