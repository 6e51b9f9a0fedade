// Package config loads bookworm settings from defaults, an optional
// bookworm.yaml file and BOOKWORM_* environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"bookworm-search/internal/ol"
)

// DefaultCacheCapacity is the number of distinct queries the memo retains.
const DefaultCacheCapacity = 100

// Config holds all runtime settings.
type Config struct {
	OpenLibrary OpenLibraryConfig
	Cache       CacheConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	API         APIConfig
	LogLevel    string
}

type OpenLibraryConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

type CacheConfig struct {
	Capacity int
}

// RedisConfig enables the shared result tier when Addr is set.
type RedisConfig struct {
	Addr   string
	Prefix string
	TTL    time.Duration
}

// KafkaConfig enables the search event feed when Broker is set.
type KafkaConfig struct {
	Broker string
	Topic  string
}

type APIConfig struct {
	Addr string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("openlibrary.base_url", ol.DefaultBaseURL)
	v.SetDefault("openlibrary.user_agent", ol.DefaultUserAgent)
	v.SetDefault("openlibrary.timeout", ol.DefaultTimeout)
	v.SetDefault("cache.capacity", DefaultCacheCapacity)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.prefix", "bookworm:search:")
	v.SetDefault("redis.ttl", time.Hour)
	v.SetDefault("kafka.broker", "")
	v.SetDefault("kafka.topic", "bookworm.search.events")
	v.SetDefault("api.addr", ":8080")
	v.SetDefault("log.level", "info")
}

// Load reads configuration. An explicit file path must exist; without one,
// bookworm.yaml is looked up in the working directory and may be absent.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("BOOKWORM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("bookworm")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		OpenLibrary: OpenLibraryConfig{
			BaseURL:   v.GetString("openlibrary.base_url"),
			UserAgent: v.GetString("openlibrary.user_agent"),
			Timeout:   v.GetDuration("openlibrary.timeout"),
		},
		Cache: CacheConfig{
			Capacity: v.GetInt("cache.capacity"),
		},
		Redis: RedisConfig{
			Addr:   v.GetString("redis.addr"),
			Prefix: v.GetString("redis.prefix"),
			TTL:    v.GetDuration("redis.ttl"),
		},
		Kafka: KafkaConfig{
			Broker: v.GetString("kafka.broker"),
			Topic:  v.GetString("kafka.topic"),
		},
		API: APIConfig{
			Addr: v.GetString("api.addr"),
		},
		LogLevel: v.GetString("log.level"),
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the client cannot run with.
func (c Config) Validate() error {
	if c.Cache.Capacity < 1 {
		return fmt.Errorf("cache.capacity must be at least 1, got %d", c.Cache.Capacity)
	}
	if c.OpenLibrary.Timeout < 0 {
		return fmt.Errorf("openlibrary.timeout must not be negative, got %s", c.OpenLibrary.Timeout)
	}
	if c.Kafka.Broker != "" && c.Kafka.Topic == "" {
		return errors.New("kafka.topic is required when kafka.broker is set")
	}
	return nil
}
