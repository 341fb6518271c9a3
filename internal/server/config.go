package server

import (
	"time"

	"github.com/amclaughlin2005/ai-text-analysis-platform-sub000/internal/database"
	"github.com/amclaughlin2005/ai-text-analysis-platform-sub000/pkg/wordcloud"
)

// Result cache backends
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config represents the server configuration
type Config struct {
	Host string `yaml:"host" env:"SERVER_HOST"`
	Port int    `yaml:"port" env:"SERVER_PORT"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`

	APIPrefix       string `yaml:"api_prefix"`
	HealthCheckPath string `yaml:"health_check_path"`
	RequestIDHeader string `yaml:"request_id_header"`

	// CacheSweepSchedule is a cron expression driving the periodic
	// expired-entry sweep of the result cache
	CacheSweepSchedule string `yaml:"cache_sweep_schedule"`

	// CacheBackend selects the result cache implementation. The in-process
	// memory cache is the default; redis is for deployments running more
	// than one replica, so invalidation reaches all of them.
	CacheBackend string                      `yaml:"cache_backend" env:"CACHE_BACKEND"`
	Redis        *wordcloud.RedisCacheConfig `yaml:"redis"`

	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT"`

	Database *database.Config        `yaml:"database"`
	Engine   *wordcloud.EngineConfig `yaml:"engine"`
}

// DefaultConfig returns the default server configuration
func DefaultConfig() *Config {
	return &Config{
		Host:               "0.0.0.0",
		Port:               8080,
		ReadTimeout:        30 * time.Second,
		WriteTimeout:       60 * time.Second,
		ShutdownTimeout:    15 * time.Second,
		APIPrefix:          "/api/v1",
		HealthCheckPath:    "/health",
		RequestIDHeader:    "X-Request-ID",
		CacheSweepSchedule: "*/5 * * * *",
		CacheBackend:       CacheBackendMemory,
		Redis:              wordcloud.DefaultRedisCacheConfig(),
		LogLevel:           "info",
		LogFormat:          "json",
		Database:           database.DefaultConfig(),
		Engine:             wordcloud.DefaultEngineConfig(),
	}
}
