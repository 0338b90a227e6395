package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	HTTP       HTTPConfig
	Auth       AuthConfig
	Mongo      MongoConfig
	Redis      RedisConfig
	Upload     UploadConfig
	Reconciler ReconcilerConfig
}

// Development reports whether the process runs with developer defaults
// (console logging).
func (c *Config) Development() bool {
	return c.Env == "development"
}

type HTTPConfig struct {
	Port            string        `env:"PORT,             default=8080"`
	CORSOrigins     []string      `env:"CORS_ORIGINS,     default=*"`
	BodyLimit       string        `env:"HTTP_BODY_LIMIT,  default=6M"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=art_gallery"`
}

type RedisConfig struct {
	// Enabled switches order idempotency keys on. Without Redis the
	// Idempotency-Key header is ignored.
	Enabled        bool          `env:"REDIS_ENABLED,         default=true"`
	Addr           string        `env:"REDIS_ADDR,            default=localhost:6379"`
	Password       string        `env:"REDIS_PASSWORD"`
	DB             int           `env:"REDIS_DB,              default=0"`
	IdempotencyTTL time.Duration `env:"REDIS_IDEMPOTENCY_TTL, default=24h"`
}

type UploadConfig struct {
	Backend       string `env:"UPLOAD_BACKEND,         default=local"`
	Dir           string `env:"UPLOAD_DIR,             default=uploads"`
	MaxBytes      int64  `env:"UPLOAD_MAX_BYTES,       default=5242880"`
	GCSBucket     string `env:"UPLOAD_GCS_BUCKET"`
	PublicBaseURL string `env:"UPLOAD_PUBLIC_BASE_URL"`
}

type ReconcilerConfig struct {
	Workers     int           `env:"RECONCILER_WORKERS,      default=4"`
	MaxAttempts int           `env:"RECONCILER_MAX_ATTEMPTS, default=5"`
	Backoff     time.Duration `env:"RECONCILER_BACKOFF,      default=500ms"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}
