package cmd

import "time"

// Config carries the process configuration read from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	RedisURL   string

	// LocationStalenessWindow overrides how long a reported driver position
	// counts as fresh. Zero keeps the default of 5 minutes.
	LocationStalenessWindow time.Duration
}
