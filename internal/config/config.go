package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Drivers = []string{"file", "sqlite", "postgres", "redis", "mongo"}

type App struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	// Storage
	StoreDriver   string `envconfig:"STORE_DRIVER" default:"file"`
	DataDir       string `envconfig:"DATA_DIR" default:"data"`
	SQLDSN        string `envconfig:"SQL_DSN" default:"atmosphere.db"`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisPrefix   string `envconfig:"REDIS_PREFIX" default:"atmosphere:"`
	MongoURI      string `envconfig:"MONGODB_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string `envconfig:"MONGODB_DATABASE" default:"atmosphere"`

	// Sessions
	SessionSecret string        `envconfig:"SESSION_SECRET" default:"atmosphere-dev-secret"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"24h"`

	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`

	// Notifications
	RabbitURL      string `envconfig:"RABBIT_URL"`
	NotifyExchange string `envconfig:"NOTIFY_EXCHANGE" default:"atmosphere.notifications"`

	// Mail
	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     string `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	SMTPFrom     string `envconfig:"SMTP_FROM" default:"hello@atmosphere.local"`
}

// Load reads .env when present, then the environment.
func Load() (App, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return App{}, fmt.Errorf("load .env: %w", err)
	}
	var c App
	if err := envconfig.Process("", &c); err != nil {
		return App{}, err
	}
	if !slices.Contains(Drivers, c.StoreDriver) {
		return App{}, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.SessionTTL <= 0 {
		return App{}, fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	return c, nil
}
