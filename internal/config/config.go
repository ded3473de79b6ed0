package config

import (
    "os"
    "strconv"
    "time"

    "github.com/joho/godotenv"
    "github.com/sirupsen/logrus"
)

type Config struct {
    ProviderAPIURL   string
    BackendAPIURL    string
    BackendSecret    string
    Port             string
    LogLevel         string
    HTTPTimeout      time.Duration
    RetryAttempts    int
    ProviderRPS      float64
    RedisAddr        string
    RedisPassword    string
    RedisDB          int
    SnapshotTTL      time.Duration
}

func Load() *Config {
    // Load .env file if it exists
    if err := godotenv.Load(); err != nil {
        logrus.Warn("No .env file found, using environment variables")
    }

    timeout, _ := time.ParseDuration(getEnv("HTTP_TIMEOUT", "30s"))
    retryAttempts, _ := strconv.Atoi(getEnv("RETRY_ATTEMPTS", "3"))
    providerRPS, _ := strconv.ParseFloat(getEnv("PROVIDER_RPS", "5"), 64)
    redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
    snapshotTTL, _ := time.ParseDuration(getEnv("SNAPSHOT_TTL", "60s"))

    return &Config{
        ProviderAPIURL: getEnv("PROVIDER_API_URL", "https://offers.example.com/v1"),
        BackendAPIURL:  getEnv("BACKEND_API_URL", "https://backend.example.com/v1"),
        BackendSecret:  getEnv("BACKEND_SECRET", "offerconsole_secret_example"),
        Port:           getEnv("PORT", "8080"),
        LogLevel:       getEnv("LOG_LEVEL", "info"),
        HTTPTimeout:    timeout,
        RetryAttempts:  retryAttempts,
        ProviderRPS:    providerRPS,
        RedisAddr:      getEnv("REDIS_ADDR", ""),
        RedisPassword:  getEnv("REDIS_PASSWORD", ""),
        RedisDB:        redisDB,
        SnapshotTTL:    snapshotTTL,
    }
}

func getEnv(key, defaultValue string) string {
    if value := os.Getenv(key); value != "" {
        return value
    }
    return defaultValue
}
