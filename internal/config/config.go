package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// DefaultUnlockWebAppURL — адрес мини-приложения с жестом разблокировки.
const DefaultUnlockWebAppURL = "https://abenih.github.io/my-bot-webapp/webapp/pattern_lock.html"

// Config хранит настройки приложения из переменных окружения.
type Config struct {
	BotToken        string
	DBUsername      string
	DBPassword      string
	DBHost          string
	DBPort          string
	DBDatabase      string
	UnlockWebAppURL string
}

// Load загружает .env и собирает конфигурацию.
func Load() Config {
	// Попробуем несколько возможных путей
	possiblePaths := []string{
		".env",
		"./.env",
		"../.env",
		"../../.env",
	}

	var loaded bool
	for _, path := range possiblePaths {
		if err := godotenv.Load(path); err == nil {
			log.Printf("Loaded .env from: %s", path)
			loaded = true
			break
		}
	}
	if !loaded {
		log.Println("No .env file found, continuing with system environment variables...")
	}

	return Config{
		BotToken:        os.Getenv("BOT_TOKEN"),
		DBUsername:      os.Getenv("DB_USERNAME"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBHost:          envOrDefault("DB_HOST", "localhost"),
		DBPort:          envOrDefault("DB_PORT", "3306"),
		DBDatabase:      os.Getenv("DB_DATABASE"),
		UnlockWebAppURL: envOrDefault("UNLOCK_WEBAPP_URL", DefaultUnlockWebAppURL),
	}
}

// DSN возвращает строку подключения к MySQL.
func (c Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUsername, c.DBPassword, c.DBHost, c.DBPort, c.DBDatabase)
}

// envOrDefault возвращает значение переменной окружения или значение по умолчанию.
func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
