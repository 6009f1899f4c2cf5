package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	AdminPassword  string
	AdminJWTSecret string
	AdminTokenTTL  time.Duration

	VotingWindow         time.Duration
	PollEliminationCount int
	SweepInterval        time.Duration

	EnableVotingSweep bool
	EnablePollSweep   bool
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "tiebreak"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		AdminJWTSecret: os.Getenv("ADMIN_JWT_SECRET"),
		AdminTokenTTL:  24 * time.Hour,

		VotingWindow:         time.Duration(envInt("VOTING_WINDOW_SECONDS", 60)) * time.Second,
		PollEliminationCount: envInt("POLL_ELIMINATION_COUNT", 3),
		SweepInterval:        time.Duration(envInt("SWEEP_INTERVAL_SECONDS", 2)) * time.Second,

		EnableVotingSweep: envBool("ENABLE_VOTING_SWEEP", true),
		EnablePollSweep:   envBool("ENABLE_POLL_SWEEP", true),
	}, nil
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
