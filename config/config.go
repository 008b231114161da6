// --- config/config.go ---
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is a development-only signing key. Deployments must
// override it through AGENDA_JWT_SECRET; main logs a warning otherwise.
const DefaultJWTSecret = "tu_clave_secreta_super_segura"

const (
	DefaultAddr      = ":3000"
	DefaultDataDir   = "data"
	DefaultStaticDir = "web"
	DefaultTokenTTL  = time.Hour
	DefaultLogLevel  = "info"
)

// Config holds everything the server needs at startup.
type Config struct {
	Addr      string
	DataDir   string
	StaticDir string
	JWTSecret string
	TokenTTL  time.Duration
	LogLevel  string
}

// Load reads an optional .env file and then the AGENDA_* environment
// variables, falling back to the defaults above for anything unset.
func Load() Config {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	return Config{
		Addr:      getenv("AGENDA_ADDR", DefaultAddr),
		DataDir:   getenv("AGENDA_DATA_DIR", DefaultDataDir),
		StaticDir: getenv("AGENDA_STATIC_DIR", DefaultStaticDir),
		JWTSecret: getenv("AGENDA_JWT_SECRET", DefaultJWTSecret),
		TokenTTL:  getduration("AGENDA_TOKEN_TTL", DefaultTokenTTL),
		LogLevel:  getenv("AGENDA_LOG_LEVEL", DefaultLogLevel),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
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
