package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port                string
	AllowedOrigin       string
	DefaultBuyer        string
	RejectNegativeTotal bool
	SeedDemoCatalog     bool
	MaxSessions         int
}

func Load() Config {
	maxSessions, err := strconv.Atoi(getEnv("MAX_SESSIONS", "256"))
	if err != nil || maxSessions < 1 {
		maxSessions = 256
	}

	cfg := Config{
		Port:                getEnv("PORT", "8080"),
		AllowedOrigin:       getEnv("ALLOWED_ORIGIN", "http://127.0.0.1:3000"),
		DefaultBuyer:        getEnv("DEFAULT_BUYER", "Pelanggan"),
		RejectNegativeTotal: getBoolEnv("REJECT_NEGATIVE_TOTAL", false),
		SeedDemoCatalog:     getBoolEnv("SEED_DEMO_CATALOG", true),
		MaxSessions:         maxSessions,
	}

	return cfg
}

func (c Config) Address() string {
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

func getBoolEnv(key string, fallback bool) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
