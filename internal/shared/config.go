package shared

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	SourceFile  = "file"
	SourceHTTP  = "http"
	SourceMySQL = "mysql"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string

	// IPs and CIDRs whose X-Forwarded-For is believed; empty trusts none.
	TrustedProxies string

	SourceKind  string
	SourcePath  string
	SourceURL   string
	SourceToken string
	SourceWatch bool
	FetchRPS    int

	MySQLDSN  string
	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	Workers   int
	BatchSize int
	ExportRPS float64
}

// LoadEnvFile loads .env from the working directory when present.
// Variables already set in the environment win.
func LoadEnvFile() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("failed to load .env")
	}
}

func Load() Config {
	LoadEnvFile()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer; using default")
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not a number; using default")
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogLevel:    env("LOG_LEVEL", "info"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		SourceKind:  strings.ToLower(env("SOURCE_KIND", SourceFile)),
		SourcePath:  env("SOURCE_PATH", "review_restoran_scraped_2025.csv"),
		SourceURL:   env("SOURCE_URL", ""),
		SourceToken: env("SOURCE_TOKEN", ""),
		FetchRPS:    atoi("FETCH_RPS", 5),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/resto?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", ""),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		Workers:     atoi("INGEST_WORKERS", 4),
		BatchSize:   atoi("INGEST_BATCH_SIZE", 500),
		ExportRPS:   atof("EXPORT_RPS", 2),
	}
	c.TrustedProxies = env("TRUSTED_PROXIES", "")
	c.SourceWatch = envBool("SOURCE_WATCH", c.SourceKind == SourceFile)
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.SourceKind == SourceHTTP && c.SourceURL == "" {
		log.Warn().Msg("SOURCE_KIND=http but SOURCE_URL is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Msg("not a boolean; using default")
		return def
	}
	return b
}
