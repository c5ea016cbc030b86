package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

const (
	SessionStorePostgres = "postgres"
	SessionStoreRedis    = "redis"
	SessionStoreMemory   = "memory"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort            string        `env:"HTTP_PORT" envDefault:"3000"`
	AppEnv              string        `env:"APP_ENV" envDefault:"production"`
	DatabaseURL         string        `env:"DATABASE_URL,required,notEmpty"`
	SessionStore        string        `env:"SESSION_STORE" envDefault:"postgres"`
	SessionCookieName   string        `env:"SESSION_COOKIE_NAME" envDefault:"sessionid"`
	SessionCookieSecure bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	RedisAddr           string        `env:"REDIS_ADDR"`
	RedisPassword       string        `env:"REDIS_PASSWORD"`
	RedisDB             int           `env:"REDIS_DB" envDefault:"0"`
	ChatServiceURL      string        `env:"CHAT_SERVICE_URL" envDefault:"http://localhost:8000"`
	ChatServiceSecret   string        `env:"CHAT_SERVICE_SECRET"`
	ChatServiceTimeout  time.Duration `env:"CHAT_SERVICE_TIMEOUT" envDefault:"30s"`
	CORSAllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	LoginMaxAttempts    int           `env:"LOGIN_MAX_ATTEMPTS" envDefault:"10"`
	LoginWindow         time.Duration `env:"LOGIN_WINDOW" envDefault:"15m"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate revisa combinaciones que env no puede expresar con tags.
func (c *Config) Validate() error {
	switch c.SessionStore {
	case SessionStorePostgres, SessionStoreMemory:
	case SessionStoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("SESSION_STORE=redis requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", c.SessionStore)
	}
	if c.SessionCookieName == "" {
		return fmt.Errorf("SESSION_COOKIE_NAME must not be empty")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
