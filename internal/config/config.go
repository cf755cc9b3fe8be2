package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Port          string
	DBHost        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPort        string
	SessionSecret string
	Production    bool
	S3Region      string
	S3Bucket      string
	UploadDir     string
}

// Load builds Config from environment with sensible defaults for local dev.
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "5050"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        getEnv("DB_NAME", "hobbyshelf"),
		DBPort:        getEnv("DB_PORT", "5432"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		Production:    getEnvBool("PRODUCTION", false),
		S3Region:      getEnv("S3_REGION", "us-east-2"),
		S3Bucket:      os.Getenv("S3_BUCKET"),
		UploadDir:     getEnv("UPLOAD_DIR", "public/images/uploads"),
	}
}

// DSN assembles the postgres connection string from the individual DB_* vars.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
