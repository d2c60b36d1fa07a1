package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the services need at construction time.
// It is built once in main and never mutated afterwards.
type Config struct {
	Port          string
	MongoURI      string
	MongoDB       string
	RedisURL      string
	RedisPassword string

	JWTSecret         []byte
	AdminUsername     string
	AdminPasswordHash string

	// Bucket that hosts recipe step images. Only images from this bucket
	// are allowed inside the steps HTML.
	S3Bucket string

	// Public base URL used for links on printed recipe cards.
	PublicBaseURL string

	// Canonical-form corrections applied after singularization,
	// e.g. words ending in -ss that a naive singularizer truncates.
	SingularOverrides map[string]string
}

// Words the singularizer gets wrong out of the box. Keys are the wrong
// singular the library emits, values the canonical spelling. Extendable via
// the SINGULAR_OVERRIDES env var without touching code.
var defaultSingularOverrides = map[string]string{
	"molass": "molasses",
}

func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := Config{
		Port:              getEnv("PORT", "10000"),
		MongoURI:          os.Getenv("MONGODB_URI"),
		MongoDB:           getEnv("MONGODB_DB", "safeplate"),
		RedisURL:          os.Getenv("REDIS_URL"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		JWTSecret:         []byte(os.Getenv("JWT_SECRET")),
		AdminUsername:     os.Getenv("ADMIN_USERNAME"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		S3Bucket:          os.Getenv("S3_BUCKET"),
		PublicBaseURL:     getEnv("PUBLIC_BASE_URL", "https://safeplate.app"),
		SingularOverrides: parseOverrides(os.Getenv("SINGULAR_OVERRIDES")),
	}

	if cfg.MongoURI == "" {
		return Config{}, fmt.Errorf("MONGODB_URI environment variable is not set")
	}
	if len(cfg.JWTSecret) == 0 {
		return Config{}, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseOverrides reads "wrong=right,wrong=right" pairs and merges them over
// the built-in table.
func parseOverrides(raw string) map[string]string {
	out := make(map[string]string, len(defaultSingularOverrides))
	for k, v := range defaultSingularOverrides {
		out[k] = v
	}
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		k := strings.TrimSpace(parts[0])
		v := strings.TrimSpace(parts[1])
		if k != "" && v != "" {
			out[k] = v
		}
	}
	return out
}
