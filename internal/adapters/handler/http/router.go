package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/snixlabs/lifeops/internal/adapters/handler/http/middleware"
)

// Pinger is the liveness surface of the store.
type Pinger interface {
	Ping() error
}

// HealthInfo is the static configuration summary exposed on /health.
type HealthInfo struct {
	DBFile      string
	SnixEnabled bool
	GeminiModel string
	GeminiBase  string
	CacheTTLSec int
	Retries     int
}

type RouterDependencies struct {
	LogHandler      *LogHandler
	SettingsHandler *SettingsHandler
	CoachHandler    *CoachHandler
	Store           Pinger
	Redis           *redis.Client
	Health          HealthInfo
	StartTime       time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.RequestID())

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	if deps.Redis != nil {
		router.Use(middleware.RateLimiterMiddleware(deps.Redis, 100, 1*time.Minute))
	}

	router.GET("/health", func(c *gin.Context) {
		dbStatus := "connected"
		statusCode := 200
		if err := deps.Store.Ping(); err != nil {
			dbStatus = "unreachable"
			statusCode = 503
		}

		c.JSON(statusCode, gin.H{
			"ok":                 statusCode == 200,
			"database":           dbStatus,
			"db_file":            deps.Health.DBFile,
			"snix_enabled":       deps.Health.SnixEnabled,
			"snix_provider":      "gemini",
			"gemini_model":       deps.Health.GeminiModel,
			"gemini_base":        deps.Health.GeminiBase,
			"snix_cache_ttl_sec": deps.Health.CacheTTLSec,
			"snix_retries":       deps.Health.Retries,
			"uptime":             time.Since(deps.StartTime).String(),
		})
	})

	deps.LogHandler.RegisterRoutes(router)
	deps.SettingsHandler.RegisterRoutes(router)
	deps.CoachHandler.RegisterRoutes(router)

	return router
}
