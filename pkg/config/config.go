package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the process needs at startup. It is built once in
// main and handed to the router by injection; nothing reads the environment
// after Load returns.
type Config struct {
	Port string
	Env  string

	DatabaseHostname string
	DatabasePort     string
	DatabaseUsername string
	DatabasePassword string
	DatabaseName     string

	SecretKey                string
	Algorithm                string
	AccessTokenExpireMinutes int
}

// Load reads configuration from the environment, after loading a .env file if
// one is present. Any missing required variable is returned as an error so the
// process fails at startup rather than at the first request.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),
	}

	var err error
	if cfg.DatabaseHostname, err = requireEnv("DATABASE_HOSTNAME"); err != nil {
		return nil, err
	}
	if cfg.DatabasePort, err = requireEnv("DATABASE_PORT"); err != nil {
		return nil, err
	}
	if cfg.DatabaseUsername, err = requireEnv("DATABASE_USERNAME"); err != nil {
		return nil, err
	}
	if cfg.DatabasePassword, err = requireEnv("DATABASE_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.DatabaseName, err = requireEnv("DATABASE_NAME"); err != nil {
		return nil, err
	}
	if cfg.SecretKey, err = requireEnv("SECRET_KEY"); err != nil {
		return nil, err
	}
	if cfg.Algorithm, err = requireEnv("ALGORITHM"); err != nil {
		return nil, err
	}

	minutes, err := requireEnv("ACCESS_TOKEN_EXPIRE_MINUTES")
	if err != nil {
		return nil, err
	}
	cfg.AccessTokenExpireMinutes, err = strconv.Atoi(minutes)
	if err != nil {
		return nil, fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be an integer: %w", err)
	}

	return cfg, nil
}

// DSN builds the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s",
		c.DatabaseHostname, c.DatabasePort, c.DatabaseUsername, c.DatabasePassword, c.DatabaseName)
}

// AccessTokenTTL returns the configured token lifetime as a duration.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func requireEnv(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("%s environment variable not set", key)
}
