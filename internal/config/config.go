// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	APIBaseURL     string
	RequestTimeout time.Duration
	MaxRetries     int
	MaxConcurrent  int
	OutboundRPS    float64
	InboundRPS     float64

	CacheEnabled bool
	RedisHost    string
	RedisPort    string
	RedisTTL     time.Duration

	LogLevel string
}

// Load reads the configuration. A missing .env file is not an error; real
// environment variables always win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port: getEnv("PORT", "8080"),

		APIBaseURL:     getEnv("SETTOUR_API_URL", "https://travel.settour.com.tw/graphql"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		MaxConcurrent:  getEnvInt("MAX_CONCURRENT_INBOUND", 4),
		OutboundRPS:    getEnvFloat("OUTBOUND_RPS", 2),
		InboundRPS:     getEnvFloat("INBOUND_RPS", 5),

		CacheEnabled: getEnvBool("CACHE_ENABLED", true),
		RedisHost:    getEnv("REDIS_HOST", "localhost"),
		RedisPort:    getEnv("REDIS_PORT", "6379"),
		RedisTTL:     getEnvDuration("REDIS_TTL", 10*time.Minute),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
