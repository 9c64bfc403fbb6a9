package config

import (
	"time"

	"placedin/utils"
)

type SessionConfig struct {
	Duration         time.Duration
	InactivityCutoff time.Duration
	MaxActivePerUser int
	CleanupInterval  time.Duration
	RedisURL         string
}

func LoadSessionConfig() SessionConfig {
	return SessionConfig{
		Duration:         utils.GetEnvAsDuration("SESSION_DURATION", 24*time.Hour),
		InactivityCutoff: utils.GetEnvAsDuration("SESSION_INACTIVITY_CUTOFF", 48*time.Hour),
		MaxActivePerUser: utils.GetEnvAsInt("SESSION_MAX_ACTIVE", 5),
		CleanupInterval:  utils.GetEnvAsDuration("SESSION_CLEANUP_INTERVAL", 15*time.Minute),
		RedisURL:         utils.GetEnvAsString("REDIS_URL", "redis://localhost:6379/0"),
	}
}
