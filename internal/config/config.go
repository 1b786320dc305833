package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/atomic"
)

// DefaultOTPValidity is used when OTP_VALIDITY is missing or not positive.
const DefaultOTPValidity = 300

type Config struct {
	Addr            string        `envconfig:"ADDR" default:":9000"`
	Version         string        `envconfig:"VERSION" default:"dev"`
	OTPValidity     int           `envconfig:"OTP_VALIDITY" default:"300"`
	CacheDriver     string        `envconfig:"CACHE_DRIVER" default:"redis"`
	RedisAddr       string        `envconfig:"REDIS_ADDR" default:"redis:6379"`
	RedisPassword   string        `envconfig:"REDIS_PASSWORD"`
	RedisDB         int           `envconfig:"REDIS_DB" default:"0"`
	StoreDriver     string        `envconfig:"STORE_DRIVER" default:"mongo"`
	MongoURI        string        `envconfig:"MONGO_URI" default:"mongodb://db:27017/"`
	MongoDatabase   string        `envconfig:"MONGO_DATABASE" default:"otp"`
	MongoUsername   string        `envconfig:"MONGO_USERNAME"`
	MongoPassword   string        `envconfig:"MONGO_PASSWORD"`
	MongoTimeout    time.Duration `envconfig:"MONGO_TIMEOUT" default:"10s"`
	JWTSecret       string        `envconfig:"JWT_SECRET"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("err when loading config: %w", err)
	}
	switch c.CacheDriver {
	case "redis", "memory":
	default:
		return nil, fmt.Errorf("unknown cache driver %q", c.CacheDriver)
	}
	switch c.StoreDriver {
	case "mongo", "memory":
	default:
		return nil, fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	return &c, nil
}

// Validity returns the OTP validity window.
func (c *Config) Validity() time.Duration {
	if c.OTPValidity <= 0 {
		return DefaultOTPValidity * time.Second
	}
	return time.Duration(c.OTPValidity) * time.Second
}

// Settings holds the values that may change while the process runs.
// It is safe for concurrent use.
type Settings struct {
	validity *atomic.Duration
}

func NewSettings(c *Config) *Settings {
	return &Settings{validity: atomic.NewDuration(c.Validity())}
}

// OTPValidity returns the current validity window.
func (s *Settings) OTPValidity() time.Duration {
	return s.validity.Load()
}

// SetOTPValidity replaces the validity window. Non-positive values
// reset it to the default.
func (s *Settings) SetOTPValidity(d time.Duration) {
	if d <= 0 {
		d = DefaultOTPValidity * time.Second
	}
	s.validity.Store(d)
}

// Reload reads the environment again and applies the reloadable values.
func (s *Settings) Reload() error {
	c, err := Load()
	if err != nil {
		return err
	}
	s.SetOTPValidity(c.Validity())
	return nil
}
