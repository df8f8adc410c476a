package config

import (
	"os"
	"strconv"
)

// Config holds the runtime settings read from the environment.
type Config struct {
	Port       string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// StatusAutoDerive makes reservation mutations rewrite the room statut
	// from the active reservations. Off by default: statut stays a staff-set
	// field and the derivation is only exposed as a read-only query.
	StatusAutoDerive bool

	// StatusHorizonDays is the look-ahead window for the "reservee" statut.
	// 0 means today only.
	StatusHorizonDays int
}

func Load() *Config {
	return &Config{
		Port:              getenv("PORT", "8080"),
		DBHost:            getenv("DB_HOST", "localhost"),
		DBPort:            getenv("DB_PORT", "5432"),
		DBUser:            getenv("DB_USER", "postgres"),
		DBPassword:        getenv("DB_PASSWORD", "postgres"),
		DBName:            getenv("DB_NAME", "hotel_gestion"),
		DBSSLMode:         getenv("DB_SSLMODE", "disable"),
		StatusAutoDerive:  getenvBool("STATUS_AUTO_DERIVE", false),
		StatusHorizonDays: getenvInt("STATUS_HORIZON_DAYS", 0),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
