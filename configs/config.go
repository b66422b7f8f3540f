package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

type Config struct {
	Port               string
	PostgresURI        string
	RedisURI           string
	FrontendURL        string
	SecretKey          string
	APIToken           string
	RemoteTimeout      time.Duration
	PublishTimeout     time.Duration
	PublishConcurrency int
	SweepInterval      time.Duration
	OpenAIBaseURL      string
	GeminiBaseURL      string
	R2                 R2
}

func LoadConfig() *Config {
	return &Config{
		Port:               getEnv("PORT", "8000"),
		PostgresURI:        getEnv("POSTGRES_URI", ""),
		RedisURI:           getEnv("REDIS_URI", "localhost:6379"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),
		SecretKey:          getEnv("SECRET_KEY", ""),
		APIToken:           getEnv("API_TOKEN", ""),
		RemoteTimeout:      getDuration("REMOTE_TIMEOUT", 10*time.Second),
		PublishTimeout:     getDuration("PUBLISH_TIMEOUT", 30*time.Second),
		PublishConcurrency: getInt("PUBLISH_CONCURRENCY", 10),
		SweepInterval:      getDuration("SWEEP_INTERVAL", time.Minute),
		OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		GeminiBaseURL:      getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration, using default", "key", key, "value", value)
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		slog.Warn("invalid integer, using default", "key", key, "value", value)
		return defaultValue
	}
	return n
}
