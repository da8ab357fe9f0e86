package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewDigestPolicyHolder),
)

// Config holds process configuration.
type Config struct {
	AppName     string
	Environment string

	// Operators granted agent rights at startup, from ADMIN_IDS.
	AdminIDs []int64

	// Local hour at which the daily digest fires.
	DigestHour int

	DBType     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
	DBPath     string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "relance"),
		Environment: getenv("ENVIRONMENT", "development"),
		AdminIDs:    parseAdminIDs(os.Getenv("ADMIN_IDS")),
		DigestHour:  getenvInt("DIGEST_HOUR", 9),
		DBType:      getenv("DATABASE_TYPE", "sqlite"),
		DBHost:      getenv("DATABASE_HOST", "localhost"),
		DBPort:      getenv("DATABASE_PORT", "5432"),
		DBName:      getenv("DATABASE_NAME", "relance"),
		DBUser:      getenv("DATABASE_USER", "relance"),
		DBPassword:  getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:   getenv("DATABASE_SSLMODE", "disable"),
		DBPath:      getenv("DATABASE_PATH", "relance.db"),
	}
}

func parseAdminIDs(raw string) []int64 {
	parts := strings.Split(raw, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}
