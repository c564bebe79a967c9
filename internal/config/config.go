package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server   ServerConfig
	App      AppConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Admin    AdminConfig
	Upload   UploadConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8000"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"stockline-api"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Debug       bool   `envconfig:"APP_DEBUG" default:"false"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`
}

// DatabaseConfig holds the item store connection settings.
// URL has no default: a missing DATABASE_URL is a startup failure.
type DatabaseConfig struct {
	URL string `envconfig:"DATABASE_URL" required:"true"`
}

// CacheConfig holds read-cache settings.
type CacheConfig struct {
	Type string        `envconfig:"CACHE_TYPE" default:"memory"` // memory, redis, or none
	TTL  time.Duration `envconfig:"CACHE_TTL" default:"1m"`

	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// AdminConfig holds the shared secret for the gated delete endpoint.
type AdminConfig struct {
	Password string `envconfig:"ADMIN_PASSWORD" default:"password"`
}

// UploadConfig holds file upload settings.
type UploadConfig struct {
	Backend string `envconfig:"UPLOAD_BACKEND" default:"local"` // local or s3
	Dir     string `envconfig:"UPLOAD_DIR" default:"uploads"`

	S3Endpoint  string `envconfig:"UPLOAD_S3_ENDPOINT" default:""`
	S3AccessKey string `envconfig:"UPLOAD_S3_ACCESS_KEY" default:""`
	S3SecretKey string `envconfig:"UPLOAD_S3_SECRET_KEY" default:""`
	S3Bucket    string `envconfig:"UPLOAD_S3_BUCKET" default:""`
	S3UseSSL    bool   `envconfig:"UPLOAD_S3_USE_SSL" default:"false"`
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RedisAddress returns the Redis address in host:port format.
func (c *CacheConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode.
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// Driver resolves the DATABASE_URL scheme to a database/sql driver name
// and the DSN that driver expects. Anything without a recognised scheme
// is treated as a SQLite file path.
func (d *DatabaseConfig) Driver() (driver, dsn string, err error) {
	switch {
	case strings.HasPrefix(d.URL, "postgres://"), strings.HasPrefix(d.URL, "postgresql://"):
		return "postgres", d.URL, nil
	case strings.HasPrefix(d.URL, "mysql://"):
		dsn, err := mysqlDSN(d.URL)
		if err != nil {
			return "", "", err
		}
		return "mysql", dsn, nil
	case strings.HasPrefix(d.URL, "sqlite://"):
		return "sqlite", strings.TrimPrefix(d.URL, "sqlite://"), nil
	default:
		return "sqlite", d.URL, nil
	}
}

// mysqlDSN converts a mysql:// URL into the user:pass@tcp(host:port)/db
// form that go-sql-driver expects.
func mysqlDSN(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid mysql url: %w", err)
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Host
	if u.Port() == "" {
		host = host + ":3306"
	}
	name := strings.TrimPrefix(u.Path, "/")

	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", user, pass, host, name), nil
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}
