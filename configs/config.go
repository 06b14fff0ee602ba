package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	StorageMode  string // "file" or "postgres"
	DataDir      string
	JWTSecret    string
	TokenTTL     time.Duration
	DBHost       string
	DBPort       int
	DBUser       string
	DBPassword   string
	DBName       string
	DBNameTest   string
	RedisHost    string
	RedisPort    int
	GeminiAPIKey string
	GeminiModel  string
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		// Only log outside test mode
		if os.Getenv("GO_ENV") != "test" {
			log.Println("No .env file found, using default values")
		}
	}

	return Config{
		Port:         envIntOr("PORT", 5000),
		StorageMode:  envOr("STORAGE_MODE", "file"),
		DataDir:      envOr("DATA_DIR", "data"),
		JWTSecret:    envOr("JWT_SECRET", "secret_key"),
		TokenTTL:     time.Duration(envIntOr("TOKEN_TTL_MINUTES", 60)) * time.Minute,
		DBHost:       envOr("DB_HOST", "localhost"),
		DBPort:       envIntOr("DB_PORT", 5432),
		DBUser:       os.Getenv("DB_USER"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBName:       envOr("DB_NAME", "taskflow"),
		DBNameTest:   envOr("DB_NAME_TEST", "taskflow_test"),
		RedisHost:    envOr("REDIS_HOST", "localhost"),
		RedisPort:    envIntOr("REDIS_PORT", 6379),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  envOr("GEMINI_MODEL", "gemini-2.5-flash"),
	}
}
