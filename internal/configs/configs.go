package config

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

type Config struct {
	AppURL                 string
	DatabaseDriver         string
	DatabaseDSN            string
	RedisAddr              string
	RedisKeyPrefix         string
	FilterCacheTTLSeconds  int
	PageSize               int
	RateLimit              int
	ShutdownTimeoutSeconds int
	LogJSON                bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_host", "127.0.0.1")
	v.SetDefault("app_port", "8080")
	v.SetDefault("database_driver", "sqlite")
	v.SetDefault("database_dsn", "shifts.db")
	v.SetDefault("redis_host", "")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_key_prefix", "shiftboard")
	v.SetDefault("filter_cache_ttl_seconds", 30)
	v.SetDefault("page_size", 10)
	v.SetDefault("rate_limit_per_minute", 120)
	v.SetDefault("shutdown_timeout_seconds", 20)
	v.SetDefault("log_json", false)
}

// Load reads configuration from the environment. Call godotenv.Load first
// to pick up a local .env file.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)
	return FromViper(v)
}

func FromViper(v *viper.Viper) (Config, error) {
	redisAddr := ""
	if host := v.GetString("redis_host"); host != "" {
		redisAddr = fmt.Sprintf("%s:%s", host, v.GetString("redis_port"))
	}

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", v.GetString("app_host"), v.GetString("app_port")),
		DatabaseDriver:         strings.ToLower(v.GetString("database_driver")),
		DatabaseDSN:            v.GetString("database_dsn"),
		RedisAddr:              redisAddr,
		RedisKeyPrefix:         v.GetString("redis_key_prefix"),
		FilterCacheTTLSeconds:  v.GetInt("filter_cache_ttl_seconds"),
		PageSize:               v.GetInt("page_size"),
		RateLimit:              v.GetInt("rate_limit_per_minute"),
		ShutdownTimeoutSeconds: v.GetInt("shutdown_timeout_seconds"),
		LogJSON:                v.GetBool("log_json"),
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.AppURL == ":" {
		return errors.New("APP_HOST and APP_PORT must not both be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDriver != DriverSQLite && cfg.DatabaseDriver != DriverPostgres {
		return errors.Newf("DATABASE_DRIVER must be %q or %q", DriverSQLite, DriverPostgres)
	}
	if cfg.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN must not be empty")
	}
	if cfg.PageSize <= 0 {
		return errors.New("PAGE_SIZE must be greater than 0")
	}
	if cfg.RateLimit <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.FilterCacheTTLSeconds < 0 {
		return errors.New("FILTER_CACHE_TTL_SECONDS must not be negative")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	return nil
}
