package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultListenAddr    = ":8080"
	defaultJWTAccessTTL  = "24h"
	defaultUploadsDir    = "./uploads/studio-images"
	defaultStaticURLBase = "/static/studio-images"
	defaultPublicBaseURL = "http://localhost:8080"
)

// Config is the full runtime configuration, read from the environment
// once at startup. DATABASE_URL and JWT_SECRET have no defaults: the
// process must not come up without them.
type Config struct {
	ListenAddr    string
	DatabaseURL   string
	JWTSecret     string
	JWTAccessTTL  time.Duration
	UploadsDir    string
	StaticURLBase string
	PublicBaseURL string
}

// Load reads .env if present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:    getEnv("LISTEN_ADDR", defaultListenAddr),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:     strings.TrimSpace(os.Getenv("JWT_SECRET")),
		UploadsDir:    getEnv("UPLOADS_DIR", defaultUploadsDir),
		StaticURLBase: getEnv("STATIC_URL_BASE", defaultStaticURLBase),
		PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", defaultPublicBaseURL), "/"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}
	if cfg.JWTAccessTTL <= 0 {
		return nil, fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}

	return cfg, nil
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
