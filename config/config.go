package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port string

	MongoURI      string
	MongoDatabase string

	JWTSecret string
	JWTTTL    time.Duration

	LogLevel string

	// Optional: when empty, rate limiting falls back to the in-memory store.
	RedisAddr     string
	RedisPassword string
	RateLimit     int
	RateWindow    time.Duration

	UploadDir     string
	CloudinaryURL string

	CORSOrigins []string
}

// Load reads configuration from the environment, picking up a local
// .env file when one exists.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:           getenv("APP_ENV", "debug"),
		Port:          getenv("PORT", "8080"),
		MongoURI:      os.Getenv("MONGODB_URI"),
		MongoDatabase: getenv("MONGODB_DATABASE", "sparked"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTTTL:        getenvDuration("JWT_TTL", 24*time.Hour),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RateLimit:     getenvInt("RATE_LIMIT", 60),
		RateWindow:    getenvDuration("RATE_WINDOW", time.Minute),
		UploadDir:     getenv("UPLOAD_DIR", "./uploads"),
		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
		CORSOrigins:   splitList(getenv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
	}

	if cfg.MongoURI == "" {
		return Config{}, errors.New("MONGODB_URI must be set")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET must be set")
	}

	return cfg, nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
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

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
