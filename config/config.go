package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenPort string // ex: ":3000"

	DBPath        string // path to the SQLite file
	AdminPassword string // empty = admin API disabled

	FetchTimeout time.Duration // outbound metadata fetch timeout

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)
}

func Load() *Config {
	return &Config{
		ListenPort:    getenv("WISHLIST_LISTEN_PORT", ":3000"),
		DBPath:        getenv("WISHLIST_DB_PATH", "wishlist.db"),
		AdminPassword: getenv("ADMIN_PASSWORD", ""),
		FetchTimeout:  mustDuration("WISHLIST_FETCH_TIMEOUT", 10*time.Second),
		LogLevel:      getenv("WISHLIST_LOG_LEVEL", "info"),
		PrettyLog:     mustBool("WISHLIST_PRETTY_LOG", true),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mustBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Fatalf("config: %s must be a boolean, got %q", key, v)
	}
	return b
}

func mustDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s must be a duration, got %q", key, v)
	}
	return d
}
