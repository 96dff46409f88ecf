package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=168h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo      MongoConfig
	Redis      RedisConfig
	HTTP       HTTPConfig
	RateLimit  RateLimitConfig
	Cloudinary CloudinaryConfig
	SMTP       SMTPConfig
	Mail       MailConfig
	Upload     UploadConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=placement_portal"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	DB       int    `env:"REDIS_DB,       default=0"`
	Password string `env:"REDIS_PASSWORD"`
}

// HTTPConfig lists the proxies whose X-Forwarded-For entries are believed.
// Entries are CIDRs or single addresses; empty means the API faces clients
// directly.
type HTTPConfig struct {
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

// RateLimitConfig bounds requests per client IP on the open auth routes.
type RateLimitConfig struct {
	Requests int           `env:"RATE_LIMIT_REQUESTS, default=20"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW,   default=1m"`
}

// CloudinaryConfig accepts either a full CLOUDINARY_URL or the three
// separate credentials.
type CloudinaryConfig struct {
	URL       string `env:"CLOUDINARY_URL"`
	CloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	APIKey    string `env:"CLOUDINARY_API_KEY"`
	APISecret string `env:"CLOUDINARY_API_SECRET"`
	Folder    string `env:"CLOUDINARY_FOLDER, default=placement-resumes"`
}

// SMTPConfig is optional; with no host, outbound mail is only logged.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`
	From     string `env:"SMTP_FROM, default=no-reply@placementpathway.local"`
}

type MailConfig struct {
	Workers int `env:"MAIL_WORKERS, default=4"`
}

type UploadConfig struct {
	MaxBytes int64 `env:"UPLOAD_MAX_BYTES, default=10485760"`
}

// Enabled reports whether SMTP delivery is configured.
func (c SMTPConfig) Enabled() bool { return c.Host != "" }

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l. Tests pass an envconfig.MapLookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("config: TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	return &cfg, nil
}

// IsProduction reports whether ENV selects production behaviour (JSON logs).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
