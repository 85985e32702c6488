package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Storage backends selectable with STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendDatabase = "database"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`
	AppEnv     string `envconfig:"APP_ENV" default:"production"`

	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"memory"`
	DBDriver       string `envconfig:"DB_DRIVER" default:"mysql"`
	DBDSN          string `envconfig:"DB_DSN" default:"user:password@tcp(localhost:3306)/govsite?charset=utf8mb4&parseTime=True&loc=Local"`
	ResetDB        bool   `envconfig:"RESET_DB" default:"false"`

	// Empty RedisAddr disables the read-through cache.
	RedisAddr string        `envconfig:"REDIS_ADDR"`
	RedisDB   int           `envconfig:"REDIS_DB" default:"0"`
	RedisPass string        `envconfig:"REDIS_PASSWORD"`
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"30s"`

	JWTSecret     string `envconfig:"JWT_SECRET" default:"change-me"`
	AdminAuth     bool   `envconfig:"ADMIN_AUTH" default:"false"`
	AdminUsername string `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"admin123"`
	AdminEmail    string `envconfig:"ADMIN_EMAIL" default:"admin@govagency.gov"`

	// Empty S3Bucket disables document uploads.
	S3Endpoint     string `envconfig:"S3_ENDPOINT"`
	S3Region       string `envconfig:"S3_REGION" default:"us-east-1"`
	S3Bucket       string `envconfig:"S3_BUCKET"`
	S3AccessKey    string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey    string `envconfig:"S3_SECRET_KEY"`
	S3PublicURL    string `envconfig:"S3_PUBLIC_URL"`
	MaxUploadBytes int64  `envconfig:"MAX_UPLOAD_BYTES" default:"20971520"`

	CronSchedule string `envconfig:"CRON_SCHEDULE" default:"@every 5m"`
	SwaggerHost  string `envconfig:"SWAGGER_HOST"`
}

// Load builds Config from an optional .env file and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	c.fillEmpty()
	if c.StorageBackend != BackendMemory && c.StorageBackend != BackendDatabase {
		return nil, fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", BackendMemory, BackendDatabase, c.StorageBackend)
	}
	return &c, nil
}

// fillEmpty restores defaults for variables that are set but empty;
// envconfig only applies `default` to unset ones.
func (c *Config) fillEmpty() {
	orDefault(&c.ServerPort, "8080")
	orDefault(&c.AppEnv, "production")
	orDefault(&c.StorageBackend, BackendMemory)
	orDefault(&c.DBDriver, "mysql")
	orDefault(&c.JWTSecret, "change-me")
	orDefault(&c.AdminUsername, "admin")
	orDefault(&c.AdminPassword, "admin123")
	orDefault(&c.AdminEmail, "admin@govagency.gov")
	orDefault(&c.S3Region, "us-east-1")
	orDefault(&c.CronSchedule, "@every 5m")
}

func orDefault(v *string, def string) {
	if strings.TrimSpace(*v) == "" {
		*v = def
	}
}

// UploadsEnabled reports whether S3 document uploads are configured.
func (c *Config) UploadsEnabled() bool {
	return c.S3Bucket != ""
}

// Development reports whether the process runs in development mode.
func (c *Config) Development() bool {
	return c.AppEnv == "development"
}
