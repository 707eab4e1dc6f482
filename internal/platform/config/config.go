package config

import (
	"os"
	"strconv"
	"time"
)

// Default upstream endpoints of the Junta de Castilla y León open-data portals.
const (
	DefaultSearchURL  = "https://analisis.datosabiertos.jcyl.es/api/records/1.0/search"
	DefaultCatalogURL = "https://jcyl.opendatasoft.com/api/explore/v2.1/catalog/datasets"
)

// Config is the full process configuration.
type Config struct {
	Server   Server
	DataDir  string
	OpenData OpenData
	Cache    Cache
	Redis    RedisConfig
	Log      Log
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// OpenData configures the remote gateway.
type OpenData struct {
	SearchURL  string
	CatalogURL string
	Timeout    time.Duration
	Retries    int
}

// Cache configures response caching.
type Cache struct {
	TTL time.Duration
}

// RedisConfig enables the shared cache backend when URL is set.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Log selects level and encoding for the process logger.
type Log struct {
	Level  string
	Format string
	Output string
}

// ProfileCacheTTL is how long aggregated answers stay fresh.
var ProfileCacheTTL = 30 * time.Minute

// FromEnv builds the configuration from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:            getString("RETRATO_ADDR", ":8080"),
			ShutdownTimeout: getDuration("RETRATO_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		DataDir: getString("RETRATO_DATA_DIR", "./data"),
		OpenData: OpenData{
			SearchURL:  getString("OPENDATA_SEARCH_URL", DefaultSearchURL),
			CatalogURL: getString("OPENDATA_CATALOG_URL", DefaultCatalogURL),
			Timeout:    getDuration("OPENDATA_TIMEOUT", 10*time.Second),
			Retries:    getInt("OPENDATA_RETRIES", 1),
		},
		Cache: Cache{
			TTL: getDuration("CACHE_TTL", ProfileCacheTTL),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Log: Log{
			Level:  getString("LOG_LEVEL", "info"),
			Format: getString("LOG_FORMAT", "json"),
			Output: getString("LOG_OUTPUT", "stdout"),
		},
	}
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// getDuration accepts Go durations ("90s") or plain seconds ("90").
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}
