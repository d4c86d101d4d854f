package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type (
	// Config is the full service configuration. Values come from an
	// optional config file and are overridden by environment variables.
	Config struct {
		App      App      `json:"app"`
		HTTP     HTTP     `json:"http"`
		Log      Log      `json:"logger"`
		DB       DB       `json:"db"`
		Redis    Redis    `json:"redis"`
		Kafka    Kafka    `json:"kafka"`
		Pipeline Pipeline `json:"pipeline"`
	}

	App struct {
		Name          string `json:"name" env:"APP_NAME" env-default:"treasury-gateway"`
		Environment   string `json:"environment" env:"ENV_NAME" env-default:"dev"`
		JWTSigningKey string `json:"jwt_signing_key" env:"JWT_SIGNING_KEY" env-default:"dev-secret-key-change-in-production"`
	}

	HTTP struct {
		Addr            string        `json:"addr" env:"TREASURY_ADDR" env-default:":8080"`
		ShutdownTimeout time.Duration `json:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	}

	Log struct {
		Level string `json:"level" env:"LOG_LEVEL" env-default:"info"`
	}

	// DB configures the Postgres audit store. Empty URL keeps the
	// in-memory store, which is the default for local runs and tests.
	DB struct {
		URL string `json:"url" env:"DATABASE_URL"`
	}

	// Redis configures the ledger snapshot store. Empty URL keeps the
	// seeded in-memory ledger.
	Redis struct {
		URL          string        `json:"url" env:"REDIS_URL"`
		PoolSize     int           `json:"pool_size" env:"REDIS_POOL_SIZE" env-default:"10"`
		MinIdleConns int           `json:"min_idle_conns" env:"REDIS_MIN_IDLE" env-default:"2"`
		DialTimeout  time.Duration `json:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
		ReadTimeout  time.Duration `json:"read_timeout" env:"REDIS_READ_TIMEOUT" env-default:"3s"`
		WriteTimeout time.Duration `json:"write_timeout" env:"REDIS_WRITE_TIMEOUT" env-default:"3s"`
	}

	// Kafka configures the compliance audit publisher. No brokers means
	// audit records are persisted to the store only.
	Kafka struct {
		Brokers []string `json:"brokers" env:"KAFKA_BROKERS" env-separator:","`
		Topic   string   `json:"topic" env:"KAFKA_AUDIT_TOPIC" env-default:"treasury.audit.records"`
	}

	Pipeline struct {
		// BatchConcurrency bounds parallel pipeline runs in batch mode.
		BatchConcurrency int `json:"batch_concurrency" env:"BATCH_CONCURRENCY" env-default:"8"`
	}
)

// Load reads configuration from CONFIG_PATH (if set) and the environment.
func Load() (*Config, error) {
	cfg := &Config{}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("config env: %w", err)
	}
	return cfg, nil
}
