package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	JWTSecret   string
	PageSize    int
	UploadDir   string
	TemplateDir string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", "supersecretjwtkey"),
		PageSize:    getEnvInt("PAGE_SIZE", 10),
		UploadDir:   getEnv("UPLOAD_DIR", "./uploads"),
		TemplateDir: getEnv("TEMPLATE_DIR", "./templates"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
