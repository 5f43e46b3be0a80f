package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/snixlabs/lifeops/internal/adapters/cache"
	adapterHTTP "github.com/snixlabs/lifeops/internal/adapters/handler/http"
	"github.com/snixlabs/lifeops/internal/adapters/llm"
	"github.com/snixlabs/lifeops/internal/adapters/repository"
	"github.com/snixlabs/lifeops/internal/config"
	"github.com/snixlabs/lifeops/internal/core/services"
)

func main() {
	startTime := time.Now()
	cfg := config.Load()

	log.Printf("Opening sqlite database at %s...", cfg.DBFile)

	store, err := repository.NewSQLiteStore(cfg.DBFile)
	if err != nil {
		log.Fatalf("Critical: failed to open database: %v", err)
	}
	defer store.Close()

	if err := store.InitSchema(context.Background()); err != nil {
		log.Fatalf("Critical: failed to initialize schema: %v", err)
	}

	log.Println("Database ready.")

	gateway := llm.NewClient(llm.Config{
		APIKey:      cfg.GeminiAPIKey,
		Model:       cfg.GeminiModel,
		BaseURL:     cfg.GeminiBaseURL,
		Retries:     cfg.Retries,
		BackoffBase: cfg.BackoffBase,
		BackoffCap:  cfg.BackoffCap,
	})
	coachCache := cache.NewCoachCache(cfg.CacheTTL)

	logService := services.NewLogService(store)
	settingsService := services.NewSettingsService(store, store)
	coachService := services.NewCoachService(store, store, gateway, coachCache, cfg.MaxOutputTokens)

	deps := adapterHTTP.RouterDependencies{
		LogHandler:      adapterHTTP.NewLogHandler(logService),
		SettingsHandler: adapterHTTP.NewSettingsHandler(settingsService),
		CoachHandler:    adapterHTTP.NewCoachHandler(coachService, gateway),
		Store:           store,
		StartTime:       startTime,
		Health: adapterHTTP.HealthInfo{
			DBFile:      cfg.DBFile,
			SnixEnabled: cfg.GeminiAPIKey != "",
			GeminiModel: cfg.GeminiModel,
			GeminiBase:  cfg.GeminiBaseURL,
			CacheTTLSec: int(cfg.CacheTTL.Seconds()),
			Retries:     cfg.Retries,
		},
	}

	// Rate limiting only when a redis endpoint is configured; the limiter
	// fails open anyway.
	if cfg.RedisHost != "" {
		rdb, err := cache.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, 0)
		if err != nil {
			log.Printf("Redis unavailable, rate limiter disabled: %v", err)
		} else {
			defer rdb.Close()
			deps.Redis = rdb
		}
	}

	router := adapterHTTP.NewRouter(deps)

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		// The coach endpoint may sit through the full retry budget of
		// 40s upstream calls before answering.
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("LifeOps API running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
