package config

import (
	"os"
	"strconv"
	"time"
)

type QuoteServiceConfig struct {
	Port         string
	PostgresCfg  PostgresConfig
	RabbitMQCfg  RabbitMQConfig
	RedisCfg     RedisConfig
	MinioCfg     MinioConfig
	GeminiAPICfg GeminiAPIConfig
	AuthCfg      AuthConfig
	MailCfg      MailConfig
	WorkerCfg    WorkerConfig
	LogCfg       LogConfig
}

type MinioConfig struct {
	MinioURL         string
	MinioAccessKey   string
	MinioSecretKey   string
	MinioLocation    string
	MinioSecure      string
	MinioResourceURL string
}

type PostgresConfig struct {
	DBname   string
	Username string
	Password string
	Host     string
	Port     string
}

type RabbitMQConfig struct {
	Username string
	Password string
	Host     string
	Port     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	// ProductCacheTTL bounds how long a company's products stay cached.
	ProductCacheTTL time.Duration
}

type GeminiAPIConfig struct {
	// APIKeys is a comma separated list, one client per key.
	APIKeys   string
	FlashName string
	ChatTTL   time.Duration
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// Enabled is false when no SMTP user is configured; quote emails are skipped.
	Enabled bool
}

type WorkerConfig struct {
	NumWorkers int
	QueueSize  int
}

type LogConfig struct {
	Dir   string
	Level string
}

func New() *QuoteServiceConfig {
	mailUser := getEnvOrDefault("MAIL_USERNAME", "")
	return &QuoteServiceConfig{
		Port: getEnvOrDefault("PORT", "8080"),
		PostgresCfg: PostgresConfig{
			DBname:   getEnvOrDefault("POSTGRES_DB", "quote_service"),
			Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
		},
		RabbitMQCfg: RabbitMQConfig{
			Username: getEnvOrDefault("RABBITMQ_USER", "admin"),
			Password: getEnvOrDefault("RABBITMQ_PWD", "admin"),
			Host:     getEnvOrDefault("RABBITMQ_HOST", "localhost"),
			Port:     getEnvOrDefault("RABBITMQ_PORT", "5672"),
		},
		RedisCfg: RedisConfig{
			Host:            getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:            getEnvOrDefault("REDIS_PORT", "6379"),
			Password:        getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:              getIntEnvOrDefault("REDIS_DB", 0),
			ProductCacheTTL: getDurationEnvOrDefault("PRODUCT_CACHE_TTL", 10*time.Minute),
		},
		MinioCfg: MinioConfig{
			MinioURL:         getEnvOrDefault("MINIO_ENDPOINT", "http://localhost:9407"),
			MinioAccessKey:   getEnvOrDefault("MINIO_ACCESS_KEY", "minio"),
			MinioSecretKey:   getEnvOrDefault("MINIO_SECRET_KEY", "minio123"),
			MinioLocation:    getEnvOrDefault("MINIO_LOCATION", "us-east-1"),
			MinioSecure:      getEnvOrDefault("MINIO_SECURE", "false"),
			MinioResourceURL: getEnvOrDefault("MINIO_RESOURCE_URL", "http://localhost:9407/"),
		},
		GeminiAPICfg: GeminiAPIConfig{
			APIKeys:   getEnvOrDefault("GEMINI_KEYS", ""),
			FlashName: getEnvOrDefault("GEMINI_FLASH_MODEL", "gemini-2.5-flash"),
			ChatTTL:   getDurationEnvOrDefault("CHAT_SESSION_TTL", 2*time.Hour),
		},
		AuthCfg: AuthConfig{
			JWTSecret: getEnvOrDefault("JWT_SECRET", "quote-service-dev-secret"),
			TokenTTL:  getDurationEnvOrDefault("JWT_TTL", 7*24*time.Hour),
		},
		MailCfg: MailConfig{
			Host:     getEnvOrDefault("MAIL_HOST", "smtp.gmail.com"),
			Port:     getIntEnvOrDefault("MAIL_PORT", 587),
			Username: mailUser,
			Password: getEnvOrDefault("MAIL_PASSWORD", ""),
			Enabled:  mailUser != "",
		},
		WorkerCfg: WorkerConfig{
			NumWorkers: getIntEnvOrDefault("WORKER_COUNT", 4),
			QueueSize:  getIntEnvOrDefault("WORKER_QUEUE_SIZE", 100),
		},
		LogCfg: LogConfig{
			Dir:   getEnvOrDefault("LOG_DIR", "/var/log/quote_service"),
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
