// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/cbsinteractive/footage-timecode/db/redis/storage"
	"github.com/cbsinteractive/footage-timecode/footage"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Report stores
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config is the configuration of the service
type Config struct {
	Server Server
	Log    Log
	Redis  *storage.Config

	Env       string `envconfig:"ENV" default:"dev"`
	SentryDSN string `envconfig:"SENTRY_DSN"`

	ReportStore string        `envconfig:"REPORT_STORE" default:"memory"`
	ReportTTL   time.Duration `envconfig:"REPORT_TTL" default:"1h"`

	// DefaultFPS applies to requests that do not name a frame rate
	DefaultFPS string `envconfig:"DEFAULT_FPS" default:"24"`

	EnableGops bool `envconfig:"GOPS_ENABLED"`
}

// Server configures the HTTP listener
type Server struct {
	HTTPPort        int           `envconfig:"HTTP_PORT" default:"8080"`
	MaxBodyBytes    int64         `envconfig:"MAX_BODY_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Addr is the listen address
func (s Server) Addr() string {
	return fmt.Sprintf(":%d", s.HTTPPort)
}

// Log configures logging
type Log struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// Logger builds a logger writing to stderr.
func (l Log) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		return nil, errors.Wrap(err, "parsing log level")
	}
	logger := logrus.New()
	logger.Out = os.Stderr
	logger.SetLevel(level)
	switch l.Format {
	case "", "json":
		logger.Formatter = &logrus.JSONFormatter{}
	case "text":
		logger.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	default:
		return nil, fmt.Errorf("unknown log format %q", l.Format)
	}
	return logger, nil
}

// LoadConfig reads and validates the environment.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "loading config from environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	switch c.ReportStore {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("unknown report store %q", c.ReportStore)
	}
	if c.ReportTTL < 0 {
		return fmt.Errorf("negative report ttl %s", c.ReportTTL)
	}
	if _, err := c.FrameRate(); err != nil {
		return errors.Wrap(err, "DEFAULT_FPS")
	}
	return nil
}

// FrameRate parses DefaultFPS.
func (c *Config) FrameRate() (footage.FrameRate, error) {
	return footage.ParseFrameRate(c.DefaultFPS)
}
