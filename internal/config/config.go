package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"

	insecureJWTSecret = "supersecretkey"
)

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	TokenDuration time.Duration `yaml:"token_duration"`
	BcryptCost    int           `yaml:"bcrypt_cost"`
	Storage       StorageConfig `yaml:"storage"`
}

type StorageConfig struct {
	Driver         string `yaml:"driver"`
	DatabasePath   string `yaml:"database_path"`
	RedisURL       string `yaml:"redis_url"`
	KeyPrefix      string `yaml:"key_prefix"`
	MigrateOnStart bool   `yaml:"migrate_on_start"`
}

// LoadEnvFile loads variables from a dotenv file without overriding the ones
// already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// LoadConfig builds the configuration from environment defaults and, when
// path is set, overlays the YAML file at path.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("PORTAL_ADDR", ":8080"),
		JWTSecret:     getEnv("PORTAL_JWT_SECRET", insecureJWTSecret),
		APITimeout:    15 * time.Second,
		TokenDuration: 12 * time.Hour,
		BcryptCost:    bcrypt.DefaultCost,
		Storage: StorageConfig{
			Driver:         getEnv("PORTAL_STORAGE_DRIVER", DriverSQLite),
			DatabasePath:   getEnv("PORTAL_DATABASE_PATH", "portal.db"),
			RedisURL:       getEnv("PORTAL_REDIS_URL", ""),
			KeyPrefix:      getEnv("PORTAL_KEY_PREFIX", ""),
			MigrateOnStart: true,
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	return cfg, nil
}

// Validate reports the first setting the server cannot start with.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	if c.JWTSecret == "" {
		return errors.New("jwt_secret is required")
	}
	if c.JWTSecret == insecureJWTSecret && Env() != "development" {
		return errors.New("jwt_secret uses the insecure default; set PORTAL_JWT_SECRET")
	}
	if c.APITimeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.TokenDuration <= 0 {
		return errors.New("token_duration must be positive")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.DatabasePath == "" {
			return errors.New("storage.database_path is required for the sqlite driver")
		}
	case DriverRedis:
		if c.Storage.RedisURL == "" {
			return errors.New("storage.redis_url is required for the redis driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	return nil
}

// Env returns PORTAL_ENV, defaulting to development.
func Env() string {
	return getEnv("PORTAL_ENV", "development")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
