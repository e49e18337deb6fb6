package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all environment-derived settings.
type Config struct {
	DatabaseURL string
	SecretKey   string
	Port        string
	LogFile     string

	// SessionName is the cookie name of the session store.
	SessionName string
	// CurrUserKey is the session key under which the authenticated
	// user's identifier is stored. It is configuration, not a package
	// constant, so deployments and tests can swap it.
	CurrUserKey string
}

// Load reads the environment (and a .env file, when present) into a Config.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	cfg := &Config{
		DatabaseURL: getenv("DATABASE_URL", "./warbler.db"),
		SecretKey:   getenv("SECRET_KEY", "development-key"),
		Port:        getenv("PORT", "5000"),
		LogFile:     os.Getenv("LOG_FILE"),
		SessionName: getenv("SESSION_NAME", "warbler_session"),
		CurrUserKey: getenv("CURR_USER_KEY", "curr_user"),
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
