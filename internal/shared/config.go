package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string
	Store       string // memory|mysql
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration
	SessionTTL  time.Duration
	LoginRPS    float64
	LoginBurst  int
	TrustProxy  bool // take client IPs from X-Forwarded-For / X-Real-IP
	PageSize    int
	Seed        uint64
	SeedSizes   SeedSizes
	SeedWorkers int
}

type SeedSizes struct {
	Residents         int
	Rooms             int
	Polls             int
	MovementResidents int
}

const (
	StoreMemory = "memory"
	StoreMySQL  = "mysql"
)

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogLevel:    env("LOG_LEVEL", "info"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		Store:       strings.ToLower(env("STORE", StoreMemory)),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/hostel?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		RedisDB:     atoi("REDIS_DB", 0),
		RedisPass:   env("REDIS_PASSWORD", ""),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 60)) * time.Second,
		SessionTTL:  time.Duration(atoi("SESSION_TTL_MINUTES", 480)) * time.Minute,
		LoginRPS:    atof("LOGIN_RPS", 1),
		LoginBurst:  atoi("LOGIN_BURST", 5),
		TrustProxy:  strings.EqualFold(env("TRUST_PROXY", "false"), "true"),
		PageSize:    atoi("PAGE_SIZE", 20),
		Seed:        uint64(atoi("SEED", 1)),
		SeedSizes: SeedSizes{
			Residents:         atoi("SEED_RESIDENTS", 750),
			Rooms:             atoi("SEED_ROOMS", 250),
			Polls:             atoi("SEED_POLLS", 10),
			MovementResidents: atoi("SEED_MOVEMENT_RESIDENTS", 50),
		},
		SeedWorkers: atoi("SEED_WORKERS", 4),
	}
	if c.Store != StoreMemory && c.Store != StoreMySQL {
		log.Warn().Str("store", c.Store).Msg("unknown STORE, falling back to memory")
		c.Store = StoreMemory
	}
	if c.RedisAddr == "" {
		log.Warn().Msg("REDIS_ADDR is empty; stats are computed on every request")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
