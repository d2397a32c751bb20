package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Inventory modes.
const (
	ModeRemote = "remote"
	ModeLocal  = "local"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Inventory InventoryConfig
	Retry     RetryConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
}

type ServerConfig struct {
	AppEnv      string
	HTTPPort    string
	GRPCPort    string
	CORSOrigins []string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
	// Filename enables rotated file output when set.
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type InventoryConfig struct {
	// Mode is "remote" (HTTP inventory service) or "local" (in-process sample data).
	Mode      string
	BaseURL   string
	Timeout   time.Duration
	PageSize  int
	FetchSize int
}

type RetryConfig struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsed      time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
	GroupID string
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:      getEnv("APP_ENV", "dev"),
			HTTPPort:    getEnv("HTTP_PORT", ":8080"),
			GRPCPort:    getEnv("GRPC_PORT", ":8082"),
			CORSOrigins: getEnvSlice("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000"}),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
			Filename:          getEnv("LOGGER_FILE", ""),
			MaxSizeMB:         getEnvInt("LOGGER_FILE_MAX_SIZE_MB", 100),
			MaxBackups:        getEnvInt("LOGGER_FILE_MAX_BACKUPS", 5),
			MaxAgeDays:        getEnvInt("LOGGER_FILE_MAX_AGE_DAYS", 30),
		},
		Inventory: InventoryConfig{
			Mode:      getEnv("INVENTORY_MODE", ModeRemote),
			BaseURL:   getEnv("INVENTORY_BASE_URL", "http://localhost:8081"),
			Timeout:   getEnvDuration("INVENTORY_TIMEOUT", 5*time.Second),
			PageSize:  getEnvInt("INVENTORY_PAGE_SIZE", 10),
			FetchSize: getEnvInt("INVENTORY_FETCH_SIZE", 1000),
		},
		Retry: RetryConfig{
			MaxAttempts:     getEnvInt("RETRY_MAX_ATTEMPTS", 3),
			InitialInterval: getEnvDuration("RETRY_INITIAL_INTERVAL", 100*time.Millisecond),
			MaxInterval:     getEnvDuration("RETRY_MAX_INTERVAL", 2*time.Second),
			MaxElapsed:      getEnvDuration("RETRY_MAX_ELAPSED", 10*time.Second),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      getEnvDuration("REDIS_TTL", 30*time.Second),
		},
		Kafka: KafkaConfig{
			Enabled: getEnvBool("KAFKA_ENABLED", false),
			Brokers: getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   getEnv("KAFKA_TOPIC_INVENTORY", "inventory.events"),
			GroupID: getEnv("KAFKA_GROUP_DASHBOARD", "inventory-dashboard"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return fallback
}
