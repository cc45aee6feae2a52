// internal/config/config.go
//
// Environment configuration for the server and CLI.
// `.env` files are loaded by the binaries (godotenv) before Load runs.
//
// Environment variables:
//   PORT=5175                 listen port
//   LOG_LEVEL=info            zerolog level
//   DB_PATH=./data/app.db     SQLite file, or ":memory:"
//   JWT_SECRET=...            HS256 signing secret (required in production)
//   JWT_EXPIRES_DAYS=14       session lifetime
//   COOKIE_NAME=wordle_token  auth cookie name
//   CLIENT_ORIGIN=http://localhost:5173
//   NODE_ENV=production       enables Secure/SameSite=None cookies
//   TILE_ALIASES=a-tile,b-tile extra tile element names backed by wordle-tile

package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const devSecret = "dev_secret_change_me"

// ErrMissingSecret is returned when production runs without JWT_SECRET.
var ErrMissingSecret = errors.New("JWT_SECRET must be set in production")

// Config holds the resolved settings.
type Config struct {
	Port         string
	LogLevel     zerolog.Level
	DBPath       string
	JWTSecret    string
	JWTExpiry    time.Duration
	CookieName   string
	ClientOrigin string
	Production   bool
	TileAliases  []string
}

// LoadDotenv loads files (default ".env") if present. Missing files are not an error.
func LoadDotenv(files ...string) {
	_ = godotenv.Load(files...)
}

// Load reads the environment.
func Load() (Config, error) {
	c := Config{
		Port:         getEnv("PORT", "5175"),
		LogLevel:     zerolog.InfoLevel,
		DBPath:       getEnv("DB_PATH", "./data/app.db"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTExpiry:    time.Duration(envInt("JWT_EXPIRES_DAYS", 14)) * 24 * time.Hour,
		CookieName:   getEnv("COOKIE_NAME", "wordle_token"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:   os.Getenv("NODE_ENV") == "production",
		TileAliases:  envList("TILE_ALIASES"),
	}
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		c.LogLevel = lvl
	}
	if c.JWTSecret == "" {
		if c.Production {
			return c, ErrMissingSecret
		}
		c.JWTSecret = devSecret
	}
	return c, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// envList splits a comma-separated variable into lowercase, non-empty names.
func envList(k string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(k), ",") {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
