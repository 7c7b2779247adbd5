package config

import (
	"os"
	"strings"
)

type AgriSenseConfig struct {
	Port           string
	WeatherCfg     WeatherAPIConfig
	SentinelHubCfg SentinelHubConfig
	MandiCfg       MandiAPIConfig
	GeminiAPICfg   GeminiAPIConfig
	StorageCfg     StorageConfig
	RedisCfg       RedisConfig
	PostgresCfg    PostgresConfig
	RabbitMQCfg    RabbitMQConfig
	SMTPCfg        SMTPConfig
}

type WeatherAPIConfig struct {
	APIKey  string
	BaseURL string
}

type SentinelHubConfig struct {
	ClientID     string
	ClientSecret string
	InstanceID   string
}

type MandiAPIConfig struct {
	APIKey  string
	BaseURL string
}

type GeminiAPIConfig struct {
	// APIKeys is an ordered failover list; the first key is always tried first.
	APIKeys   []string
	ModelName string
}

type StorageConfig struct {
	// Backend selects the collection store: "memory", "redis" or "postgres".
	Backend string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type PostgresConfig struct {
	DBname   string
	Username string
	Password string
	Host     string
	Port     string
}

type RabbitMQConfig struct {
	Username string
	Password string
	Host     string
	Port     string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func New() *AgriSenseConfig {
	return &AgriSenseConfig{
		Port: getEnvOrDefault("SERVER_PORT", "8090"),
		WeatherCfg: WeatherAPIConfig{
			APIKey:  getEnvOrDefault("OPENWEATHER_API_KEY", ""),
			BaseURL: getEnvOrDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"),
		},
		SentinelHubCfg: SentinelHubConfig{
			ClientID:     getEnvOrDefault("SENTINEL_HUB_CLIENT_ID", ""),
			ClientSecret: getEnvOrDefault("SENTINEL_HUB_CLIENT_SECRET", ""),
			InstanceID:   getEnvOrDefault("SENTINEL_HUB_INSTANCE_ID", ""),
		},
		MandiCfg: MandiAPIConfig{
			APIKey:  getEnvOrDefault("MANDI_API_KEY", ""),
			BaseURL: getEnvOrDefault("MANDI_API_BASE_URL", "https://api.data.gov.in/resource/9ef84268-d588-465a-a308-a864a43d0070"),
		},
		GeminiAPICfg: GeminiAPIConfig{
			APIKeys:   splitKeys(getEnvOrDefault("GEMINI_API_KEYS", "")),
			ModelName: getEnvOrDefault("GEMINI_FLASH_MODEL", "gemini-2.0-flash-exp"),
		},
		StorageCfg: StorageConfig{
			Backend: getEnvOrDefault("STORAGE_BACKEND", "memory"),
		},
		RedisCfg: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       0,
		},
		PostgresCfg: PostgresConfig{
			DBname:   getEnvOrDefault("POSTGRES_DB", "agrisense"),
			Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
		},
		RabbitMQCfg: RabbitMQConfig{
			Username: getEnvOrDefault("RABBITMQ_USER", ""),
			Password: getEnvOrDefault("RABBITMQ_PWD", ""),
			Host:     getEnvOrDefault("RABBITMQ_HOST", "localhost"),
			Port:     getEnvOrDefault("RABBITMQ_PORT", "5672"),
		},
		SMTPCfg: SMTPConfig{
			Host:     getEnvOrDefault("SMTP_HOST", ""),
			Port:     getEnvIntOrDefault("SMTP_PORT", 587),
			Username: getEnvOrDefault("SMTP_USER", ""),
			Password: getEnvOrDefault("SMTP_PASSWORD", ""),
			From:     getEnvOrDefault("SMTP_FROM", "alerts@agrisense.app"),
		},
	}
}

func splitKeys(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			keys = append(keys, trimmed)
		}
	}
	return keys
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed := 0
	for _, ch := range value {
		if ch < '0' || ch > '9' {
			return defaultValue
		}
		parsed = parsed*10 + int(ch-'0')
	}
	return parsed
}
