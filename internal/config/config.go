package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBDatabase string

	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StorageUseSSL    bool
	StorageRegion    string

	DefaultImagePrefix string
	DefaultImageTTL    time.Duration
	PresignTTL         time.Duration

	AMQPURL      string
	AMQPExchange string

	RequestTimeout time.Duration
}

func Load() *Config {
	return &Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "mysql"),
		DBPort:     getEnvInt("DB_PORT", 3306),
		DBUser:     getEnv("DB_USER", "goormthon_user"),
		DBPassword: getEnv("DB_PASSWORD", "goormthon_password"),
		DBDatabase: getEnv("DB_DATABASE", "goormthon_db"),

		StorageEndpoint:  getEnv("STORAGE_ENDPOINT", "minio:9000"),
		StorageAccessKey: getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
		StorageSecretKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
		StorageBucket:    getEnv("STORAGE_BUCKET", "quest-media"),
		StorageUseSSL:    getEnvBool("STORAGE_USE_SSL", false),
		StorageRegion:    getEnv("STORAGE_REGION", "ap-northeast-2"),

		DefaultImagePrefix: getEnv("DEFAULT_IMAGE_PREFIX", "defaults/"),
		DefaultImageTTL:    getEnvDuration("DEFAULT_IMAGE_TTL", 10*time.Minute),
		PresignTTL:         getEnvDuration("PRESIGN_TTL", 5*time.Minute),

		AMQPURL:      getEnv("RABBITMQ_URI", ""),
		AMQPExchange: getEnv("RABBITMQ_EXCHANGE", ""),

		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 5*time.Second),
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
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
