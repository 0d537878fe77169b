package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env             string
	Port            string
	DBPath          string
	UploadDir       string
	TemplateDir     string
	AdminPassword   string
	SessionTTLHours int
}

// Load builds Config from environment with sensible defaults.
// ADMIN_PASSWORD defaults to a known value and must be rotated for any
// real deployment.
func Load() Config {
	return Config{
		Env:             getEnv("APP_ENV", "dev"),
		Port:            getEnv("PORT", "8080"),
		DBPath:          getEnv("DB_PATH", "forum.db"),
		UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
		TemplateDir:     getEnv("TEMPLATE_DIR", "web/templates"),
		AdminPassword:   getEnv("ADMIN_PASSWORD", "admin123"),
		SessionTTLHours: getEnvInt("SESSION_TTL_HOURS", 24),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
