package storage

import (
	"encoding/json"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/go-redis/redis"
)

// ErrNotFound is the error returned when the given key is not found.
var ErrNotFound = errors.New("not found")

// Storage saves, loads and deletes JSON values on Redis.
type Storage struct {
	config *Config
	client redis.UniversalClient
}

// Config contains configuration for the Redis connection.
type Config struct {
	// Comma-separated list of sentinel servers.
	//
	// Example: 10.10.10.10:6379,10.10.10.1:6379,10.10.10.2:6379.
	SentinelAddrs      string `envconfig:"SENTINEL_ADDRS"`
	SentinelMasterName string `envconfig:"SENTINEL_MASTER_NAME"`

	RedisAddr          string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	Password           string `envconfig:"REDIS_PASSWORD"`
	DB                 int    `envconfig:"REDIS_DB"`
	PoolSize           int    `envconfig:"REDIS_POOL_SIZE"`
	PoolTimeout        int    `envconfig:"REDIS_POOL_TIMEOUT_SECONDS"`
	IdleTimeout        int    `envconfig:"REDIS_IDLE_TIMEOUT_SECONDS"`
	IdleCheckFrequency int    `envconfig:"REDIS_IDLE_CHECK_FREQUENCY_SECONDS"`
}

// Addr returns RedisAddr with the default port added when it has none.
func (c *Config) Addr() string {
	if c.RedisAddr == "" {
		return "127.0.0.1:6379"
	}
	if _, _, err := net.SplitHostPort(c.RedisAddr); err != nil {
		return net.JoinHostPort(c.RedisAddr, "6379")
	}
	return c.RedisAddr
}

// Sentinels splits SentinelAddrs.
func (c *Config) Sentinels() []string {
	var addrs []string
	for _, a := range strings.Split(c.SentinelAddrs, ",") {
		if a = strings.TrimSpace(a); a != "" {
			addrs = append(addrs, a)
		}
	}
	return addrs
}

// NewStorage connects lazily: no command is sent until first use.
func NewStorage(cfg *Config) (*Storage, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	var client redis.UniversalClient
	if sentinels := cfg.Sentinels(); len(sentinels) > 0 {
		if cfg.SentinelMasterName == "" {
			return nil, errors.New("sentinel master name missing")
		}
		client = redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:         cfg.SentinelMasterName,
			SentinelAddrs:      sentinels,
			Password:           cfg.Password,
			DB:                 cfg.DB,
			PoolSize:           cfg.PoolSize,
			PoolTimeout:        seconds(cfg.PoolTimeout),
			IdleTimeout:        seconds(cfg.IdleTimeout),
			IdleCheckFrequency: seconds(cfg.IdleCheckFrequency),
		})
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:               cfg.Addr(),
			Password:           cfg.Password,
			DB:                 cfg.DB,
			PoolSize:           cfg.PoolSize,
			PoolTimeout:        seconds(cfg.PoolTimeout),
			IdleTimeout:        seconds(cfg.IdleTimeout),
			IdleCheckFrequency: seconds(cfg.IdleCheckFrequency),
		})
	}
	return &Storage{config: cfg, client: client}, nil
}

// Save stores val as JSON under key for ttl. A zero ttl never expires.
func (s *Storage) Save(key string, val interface{}, ttl time.Duration) error {
	data, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return s.client.Set(key, data, ttl).Err()
}

// Load decodes the JSON stored under key into out.
func (s *Storage) Load(key string, out interface{}) error {
	val, err := s.client.Get(key).Bytes()
	if err == redis.Nil {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	return json.Unmarshal(val, out)
}

// Delete removes key.
func (s *Storage) Delete(key string) error {
	n, err := s.client.Del(key).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping checks the connection.
func (s *Storage) Ping() error {
	return s.client.Ping().Err()
}

// Close releases the connection pool.
func (s *Storage) Close() error {
	return s.client.Close()
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
