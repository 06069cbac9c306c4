package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultPort           = "8080"
	DefaultTokenExpiryMin = 10080 // one week
	DefaultRateLimitMax   = 120
)

type Config struct {
	Env            string
	Port           string
	DBURL          string
	JWTSecret      string
	TokenExpiryMin int
	RateLimitMax   int
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
}

// Load reads configuration from config/.env.<env> (if present) and the
// process environment. Environment variables take precedence over file values.
func Load() *Config {
	env := getEnv("ENV", "development")

	envFile := ".env.dev"
	if env == "production" {
		envFile = ".env.prod"
	}
	_ = godotenv.Load(filepath.Join("config", envFile))

	return &Config{
		Env:            env,
		Port:           getEnv("PORT", DefaultPort),
		DBURL:          mustGetEnv("DB_URL"),
		JWTSecret:      mustGetEnv("JWT_SECRET"),
		TokenExpiryMin: getEnvAsInt("TOKEN_EXPIRY", DefaultTokenExpiryMin),
		RateLimitMax:   getEnvAsInt("RATE_LIMIT_MAX", DefaultRateLimitMax),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvAsInt("REDIS_DB", 0),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required config: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
