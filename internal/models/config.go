package models

import "time"

const (
	DefaultBaseURL        = "https://pokeapi.co/api/v2"
	DefaultMaxConcurrency = 20
	DefaultChunkSize      = 50
	DefaultPageSize       = 2000
	DefaultRequestTimeout = 60
	DefaultCacheTTL       = 24 * 60
)

type Config struct {
	Database DatabaseConfig `json:"database" envPrefix:"DATABASE_"`
	HTTP     HTTPConfig     `json:"http" envPrefix:"HTTP_"`
	Ingest   IngestConfig   `json:"ingest" envPrefix:"INGEST_"`
	Cache    CacheConfig    `json:"cache" envPrefix:"CACHE_"`
	Misc     MiscConfig     `json:"misc" envPrefix:"MISC_"`
}

type DatabaseConfig struct {
	DBType           string `json:"db_type" env:"TYPE" validate:"required,oneof=sqlite postgres mysql"`
	ConnectionString string `json:"connection_string" env:"CONNECTION_STRING" validate:"required"`
}

type HTTPConfig struct {
	Port          int    `json:"port" env:"PORT" validate:"required,min=1,max=65535"`
	ListeningAddr string `json:"listening_addr" env:"LISTENING_ADDR" validate:"required"`
}

// IngestConfig controls how the dataset pipeline talks to the remote source.
type IngestConfig struct {
	BaseURL        string `json:"base_url" env:"BASE_URL" validate:"required,url"`
	UserAgent      string `json:"user_agent" env:"USER_AGENT"`
	MaxConcurrency int    `json:"max_concurrency" env:"MAX_CONCURRENCY" validate:"min=1,max=500"`
	ChunkSize      int    `json:"chunk_size" env:"CHUNK_SIZE" validate:"min=1,max=1000"`
	PageSize       int    `json:"page_size" env:"PAGE_SIZE" validate:"min=1"`
	// RequestTimeout is in seconds.
	RequestTimeout int `json:"request_timeout" env:"REQUEST_TIMEOUT" validate:"min=1"`
}

func (c IngestConfig) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// CacheConfig enables the redis payload cache when RedisAddr is set.
type CacheConfig struct {
	RedisAddr     string `json:"redis_addr" env:"REDIS_ADDR" validate:"omitempty,hostname_port"`
	RedisPassword string `json:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `json:"redis_db" env:"REDIS_DB" validate:"min=0"`
	// TTL is in minutes.
	TTL int `json:"ttl" env:"TTL" validate:"min=0"`
}

func (c CacheConfig) Enabled() bool {
	return c.RedisAddr != ""
}

func (c CacheConfig) Expiration() time.Duration {
	return time.Duration(c.TTL) * time.Minute
}

type MiscConfig struct {
	SeedOnStartup bool `json:"seed_on_startup" env:"SEED_ON_STARTUP"`
}

// ApplyDefaults fills in zero valued settings that have a sane default.
func (c *Config) ApplyDefaults() {
	if c.Ingest.BaseURL == "" {
		c.Ingest.BaseURL = DefaultBaseURL
	}
	if c.Ingest.UserAgent == "" {
		c.Ingest.UserAgent = "local-dex"
	}
	if c.Ingest.MaxConcurrency <= 0 {
		c.Ingest.MaxConcurrency = DefaultMaxConcurrency
	}
	if c.Ingest.ChunkSize <= 0 {
		c.Ingest.ChunkSize = DefaultChunkSize
	}
	if c.Ingest.PageSize <= 0 {
		c.Ingest.PageSize = DefaultPageSize
	}
	if c.Ingest.RequestTimeout <= 0 {
		c.Ingest.RequestTimeout = DefaultRequestTimeout
	}
	if c.Cache.Enabled() && c.Cache.TTL == 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.HTTP.ListeningAddr == "" {
		c.HTTP.ListeningAddr = "0.0.0.0"
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
}
