package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Snapshot formats understood by the store.
const (
	SnapshotFormatJSON   = "json"
	SnapshotFormatSQLite = "sqlite"
)

type AppConfig struct {
	Host           string
	Port           string
	StoragePath    string
	SnapshotFormat string
	LogLevel       string

	ShutdownTimeout time.Duration

	RateLimitInterval time.Duration
	RateLimitBurst    int
	MaxConnections    int

	SummaryCacheTTL time.Duration

	AllowedOrigins []string

	// AdminKeyHash is a bcrypt hash. Admin endpoints stay disabled while it is empty.
	AdminKeyHash string

	SeedDefaultUser bool
}

var Cfg *AppConfig

// Addr returns the host:port the HTTP server binds to.
func (c *AppConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// SnapshotFile returns the fixed snapshot location inside StoragePath.
func (c *AppConfig) SnapshotFile() string {
	if c.SnapshotFormat == SnapshotFormatSQLite {
		return filepath.Join(c.StoragePath, "users.db")
	}
	return filepath.Join(c.StoragePath, "users.json")
}

func LoadConfig() *AppConfig {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	rawFormat := getEnv("SNAPSHOT_FORMAT", SnapshotFormatJSON)
	snapshotFormat, ok := parseSnapshotFormat(rawFormat)
	if !ok {
		log.Printf("WARNING: Invalid SNAPSHOT_FORMAT '%s'. Using default %s.", rawFormat, SnapshotFormatJSON)
	}

	adminKeyHash := strings.TrimSpace(getEnv("ADMIN_KEY_HASH", ""))
	if adminKeyHash == "" {
		log.Println("ADMIN_KEY_HASH not set, admin endpoints are disabled.")
	} else if _, err := bcrypt.Cost([]byte(adminKeyHash)); err != nil {
		// An unquoted hash in .env loses its "$2a$12" prefix to variable expansion.
		log.Printf("WARNING: ADMIN_KEY_HASH is not a valid bcrypt hash (%v). Every admin key will be rejected. Quote the value in single quotes inside .env.", err)
	}

	Cfg = &AppConfig{
		Host:           getEnv("HOST", "localhost"),
		Port:           getEnv("PORT", "5000"),
		StoragePath:    getEnv("STORAGE_PATH", "./storage"),
		SnapshotFormat: snapshotFormat,
		LogLevel:       getEnv("LOG_LEVEL", "info"),

		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 2*time.Second),

		RateLimitInterval: getEnvAsDuration("RATE_LIMIT_INTERVAL", 100*time.Millisecond),
		RateLimitBurst:    getEnvAsInt("RATE_LIMIT_BURST", 30),
		MaxConnections:    getEnvAsInt("MAX_CONNECTIONS", 256),

		SummaryCacheTTL: getEnvAsDuration("SUMMARY_CACHE_TTL", 5*time.Minute),

		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:8080")),

		AdminKeyHash: adminKeyHash,

		SeedDefaultUser: getEnvAsBool("SEED_DEFAULT_USER", false),
	}

	log.Printf("Configuration loaded: Addr=%s, LogLevel=%s, StoragePath=%s, SnapshotFormat=%s",
		Cfg.Addr(), Cfg.LogLevel, Cfg.StoragePath, Cfg.SnapshotFormat)
	return Cfg
}

// StorageFromEnv reads only the snapshot location settings, without logging.
// Offline tools use it to find the file the server writes.
func StorageFromEnv() *AppConfig {
	_ = godotenv.Load()

	c := &AppConfig{StoragePath: "./storage", SnapshotFormat: SnapshotFormatJSON}
	if v := strings.TrimSpace(os.Getenv("STORAGE_PATH")); v != "" {
		c.StoragePath = v
	}
	if v := os.Getenv("SNAPSHOT_FORMAT"); v != "" {
		c.SnapshotFormat, _ = parseSnapshotFormat(v)
	}
	return c
}

// parseSnapshotFormat normalises a SNAPSHOT_FORMAT value, falling back to JSON.
func parseSnapshotFormat(raw string) (string, bool) {
	switch f := strings.ToLower(strings.TrimSpace(raw)); f {
	case SnapshotFormatJSON, SnapshotFormatSQLite:
		return f, true
	}
	return SnapshotFormatJSON, false
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil && value > 0 {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil && value > 0 {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid boolean value for %s ('%s'), using default: %t", key, valueStr, fallback)
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
