package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"store-service/pkg/database"

	"go.uber.org/zap"
)

type Config struct {
	Port string
	DB   DB

	SMTP SMTP
	JWT  JWT

	// Сидирование администратора при миграции
	AdminEmail    string
	AdminPassword string

	// Пустой список брокеров отключает публикацию событий
	KafkaBrokers []string
	KafkaTopic   string

	CaptureTimeout time.Duration
}

type DB struct {
	database.Config
}

type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type JWT struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

func Load(log *zap.Logger) *Config {
	return &Config{
		Port: getEnv("APP_PORT", log),
		DB: DB{
			Config: database.Config{
				Host:     getEnv("DB_HOST", log),
				Port:     getEnv("DB_PORT", log),
				User:     getEnv("DB_USER", log),
				Password: getEnv("DB_PASSWORD", log),
				Name:     getEnv("DB_NAME", log),
				SSLMode:  getEnv("DB_SSLMODE", log),
			},
		},
		SMTP: SMTP{
			Host:     getEnv("SMTP_HOST", log),
			Port:     getEnvInt("SMTP_PORT", log),
			User:     getEnv("SMTP_USER", log),
			Password: getEnv("SMTP_PASSWORD", log),
			From:     getEnv("SMTP_FROM", log),
		},
		JWT: JWT{
			Secret:   getEnv("JWT_SECRET", log),
			Issuer:   getEnvDefault("JWT_ISSUER", "store-service"),
			Audience: getEnvDefault("JWT_AUDIENCE", "store-admin"),
			TTL:      time.Duration(atoiDefault(os.Getenv("JWT_TTL_MINUTES"), 60)) * time.Minute,
		},
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		KafkaBrokers:   splitAndTrim(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:     getEnvDefault("KAFKA_TOPIC_ORDERS", "store.orders"),
		CaptureTimeout: time.Duration(atoiDefault(os.Getenv("CAPTURE_TIMEOUT_SECONDS"), 30)) * time.Second,
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("Обязательная переменная окружения не установлена", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvInt(key string, log *zap.Logger) int {
	valStr := getEnv(key, log)
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Error("Ошибка преобразования переменной окружения в int", zap.String("key", key), zap.Error(err))
		panic("invalid int value for environment variable: " + key)
	}
	return val
}

func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		return val
	}
	return def
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}
