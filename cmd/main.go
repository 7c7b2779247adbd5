package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/NishantRana07/Krishi-Mitra/internal/ai/gemini"
	"github.com/NishantRana07/Krishi-Mitra/internal/config"
	"github.com/NishantRana07/Krishi-Mitra/internal/event"
	"github.com/NishantRana07/Krishi-Mitra/internal/handlers"
	"github.com/NishantRana07/Krishi-Mitra/internal/notify"
	"github.com/NishantRana07/Krishi-Mitra/internal/services"
	"github.com/NishantRana07/Krishi-Mitra/internal/storage"
)

func setupLogging() (*os.File, error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic: %v\n", r)
		}
	}()

	logDir := filepath.Join("/agrisense", "log", "agrisense_service")
	fmt.Println("Log directory:", logDir)
	err := os.MkdirAll(logDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

// newBackend selects the collection store from configuration. Redis and
// Postgres failures degrade to the in-memory backend so the service still
// boots without infrastructure.
func newBackend(cfg *config.AgriSenseConfig) storage.Backend {
	switch cfg.StorageCfg.Backend {
	case "redis":
		backend, err := storage.NewRedisBackend(cfg.RedisCfg.Host, cfg.RedisCfg.Port, cfg.RedisCfg.Password, cfg.RedisCfg.DB)
		if err != nil {
			log.Printf("Redis backend unavailable, falling back to memory: %v", err)
			return storage.NewMemoryBackend()
		}
		log.Println("Using Redis storage backend")
		return backend
	case "postgres":
		backend, err := storage.NewPostgresBackend(cfg.PostgresCfg)
		if err != nil {
			log.Printf("Postgres backend unavailable, falling back to memory: %v", err)
			return storage.NewMemoryBackend()
		}
		log.Println("Using Postgres storage backend")
		return backend
	default:
		log.Println("Using in-memory storage backend")
		return storage.NewMemoryBackend()
	}
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		log.Fatalf("Error setting up logging: %v", err)
	}
	defer logFile.Close()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.New()
	log.Printf("AgriSense configuration loaded: port=%s storage=%s gemini_keys=%d",
		cfg.Port, cfg.StorageCfg.Backend, len(cfg.GeminiAPICfg.APIKeys))

	store := storage.NewStore(newBackend(cfg))

	clients := gemini.NewClientsFromKeys(cfg.GeminiAPICfg.APIKeys, cfg.GeminiAPICfg.ModelName)
	if len(clients) == 0 {
		log.Println("Warning: no Gemini clients configured, advisory routes will serve fallback data")
	}
	selector := gemini.NewGeminiClientSelector(clients)

	var publisher *event.AlertPublisher
	if cfg.RabbitMQCfg.Username != "" {
		conn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
		if err != nil {
			log.Printf("RabbitMQ unavailable, alert events disabled: %v", err)
		} else {
			defer conn.Close()
			publisher = event.NewAlertPublisher(conn)
		}
	}

	emailService := notify.NewEmailService(cfg.SMTPCfg)
	if emailService == nil {
		log.Println("SMTP not configured, alert emails disabled")
	}

	weatherService := services.NewWeatherService(cfg.WeatherCfg)
	satelliteService := services.NewSatelliteService(cfg.SentinelHubCfg, weatherService)
	mandiService := services.NewMandiService(cfg.MandiCfg)
	advisoryService := services.NewAdvisoryService(selector)

	r := gin.Default()

	handlers.NewFarmHandler(store).RegisterRoutes(r)
	handlers.NewAdvisoryHandler(advisoryService).RegisterRoutes(r)
	handlers.NewSatelliteHandler(satelliteService).RegisterRoutes(r)
	handlers.NewMarketHandler(advisoryService, mandiService, store).RegisterRoutes(r)
	handlers.NewMonitorHandler(advisoryService, store, publisher, emailService).RegisterRoutes(r)

	log.Printf("Starting agrisense service on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
