package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	cfg := Config{
		DBUsername: "notepad",
		DBPassword: "secret",
		DBHost:     "db",
		DBPort:     "3306",
		DBDatabase: "notepad",
	}

	assert.Equal(t,
		"notepad:secret@tcp(db:3306)/notepad?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DSN())
}

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("NOTEPAD_TEST_KEY", "")
	assert.Equal(t, "fallback", envOrDefault("NOTEPAD_TEST_KEY", "fallback"))

	t.Setenv("NOTEPAD_TEST_KEY", "value")
	assert.Equal(t, "value", envOrDefault("NOTEPAD_TEST_KEY", "fallback"))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("UNLOCK_WEBAPP_URL", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_PORT", "")

	cfg := Load()
	assert.Equal(t, DefaultUnlockWebAppURL, cfg.UnlockWebAppURL)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "3306", cfg.DBPort)
}
