package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string
	LogLevel       string
	HTTPAddr       string
	MetricsAddr    string
	BackendBase    string
	BackendToken   string
	BackendRPS     int
	RequestTimeout time.Duration
	ChainTimeout   time.Duration // 0 derives the deadline from RequestTimeout
	BreakerEnabled bool
	RedisAddr      string // empty disables the redis token store
	RedisPass      string
	RedisDB        int
	TokenKey       string
	ProbeWorkers   int
}

// Load reads the environment, after an optional .env in the working
// directory. Variables already set win over the file.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env")
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		LogLevel:       env("LOG_LEVEL", "info"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ":9100"),
		BackendBase:    strings.TrimRight(env("BACKEND_BASE_URL", "http://localhost:5000/api"), "/"),
		BackendToken:   env("BACKEND_TOKEN", ""),
		BackendRPS:     atoi("BACKEND_RPS", 20),
		RequestTimeout: time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 10)) * time.Second,
		ChainTimeout:   time.Duration(atoi("CHAIN_TIMEOUT_SECONDS", 8)) * time.Second,
		BreakerEnabled: boolEnv("BREAKER_ENABLED", false),
		RedisAddr:      env("REDIS_ADDR", ""),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		TokenKey:       env("TOKEN_KEY", "campus:auth:token"),
		ProbeWorkers:   atoi("PROBE_WORKERS", 4),
	}
	if c.BackendToken == "" && c.RedisAddr == "" {
		log.Warn().Msg("no BACKEND_TOKEN or REDIS_ADDR; backend calls go out unauthenticated")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func boolEnv(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
