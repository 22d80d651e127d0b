package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/garnizeh/talentdesk/internal/config"
)

func validConfig() *config.Config {
	return &config.Config{
		Addr:          ":8080",
		JWTSecret:     "strongsecret",
		APITimeout:    5 * time.Second,
		TokenDuration: time.Hour,
		BcryptCost:    10,
		Storage:       config.StorageConfig{Driver: config.DriverSQLite, DatabasePath: "portal.db"},
	}
}

func TestValidate_InsecureJWT_FailsWhenNotDevelopment(t *testing.T) {
	t.Setenv("PORTAL_ENV", "production")

	cfg := validConfig()
	cfg.JWTSecret = "supersecretkey"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to fail for insecure JWT in non-development env")
	}
}

func TestValidate_InsecureJWT_AllowsDevelopment(t *testing.T) {
	t.Setenv("PORTAL_ENV", "development")

	cfg := validConfig()
	cfg.JWTSecret = "supersecretkey"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected Validate to succeed in development env, got: %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("PORTAL_ENV", "development")

	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr bool
	}{
		{name: "Valid", mutate: func(c *config.Config) {}},
		{name: "MissingAddr", mutate: func(c *config.Config) { c.Addr = "" }, wantErr: true},
		{name: "ZeroTimeout", mutate: func(c *config.Config) { c.APITimeout = 0 }, wantErr: true},
		{name: "ZeroTokenDuration", mutate: func(c *config.Config) { c.TokenDuration = 0 }, wantErr: true},
		{name: "BcryptCostTooLow", mutate: func(c *config.Config) { c.BcryptCost = 1 }, wantErr: true},
		{name: "BcryptCostTooHigh", mutate: func(c *config.Config) { c.BcryptCost = 40 }, wantErr: true},
		{name: "UnknownDriver", mutate: func(c *config.Config) { c.Storage.Driver = "etcd" }, wantErr: true},
		{name: "SQLiteWithoutPath", mutate: func(c *config.Config) { c.Storage.DatabasePath = "" }, wantErr: true},
		{name: "RedisWithoutURL", mutate: func(c *config.Config) { c.Storage.Driver = config.DriverRedis }, wantErr: true},
		{name: "Redis", mutate: func(c *config.Config) {
			c.Storage.Driver = config.DriverRedis
			c.Storage.RedisURL = "redis://localhost:6379/0"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadConfig_EnvDefaults(t *testing.T) {
	t.Setenv("PORTAL_ADDR", ":9090")
	t.Setenv("PORTAL_STORAGE_DRIVER", "redis")
	t.Setenv("PORTAL_REDIS_URL", "redis://cache:6379/1")
	t.Setenv("PORTAL_KEY_PREFIX", "tenant-a")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.Storage.Driver != "redis" || cfg.Storage.RedisURL != "redis://cache:6379/1" || cfg.Storage.KeyPrefix != "tenant-a" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if !cfg.Storage.MigrateOnStart {
		t.Fatalf("migrate_on_start should default to true")
	}
}

func TestLoadConfig_YAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := "addr: \":7070\"\ntimeout: 3s\nbcrypt_cost: 4\nstorage:\n  driver: sqlite\n  database_path: /tmp/portal-test.db\n  migrate_on_start: false\n"
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.APITimeout != 3*time.Second || cfg.BcryptCost != 4 {
		t.Fatalf("yaml not applied: %+v", cfg)
	}
	if cfg.Storage.DatabasePath != "/tmp/portal-test.db" || cfg.Storage.MigrateOnStart {
		t.Fatalf("storage overlay not applied: %+v", cfg.Storage)
	}
	if cfg.TokenDuration != 12*time.Hour {
		t.Fatalf("unset field lost its default: %v", cfg.TokenDuration)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()

	if err := config.LoadEnvFile(filepath.Join(dir, "absent.env")); err != nil {
		t.Fatalf("missing env file should be ignored: %v", err)
	}

	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("PORTAL_TEST_ONLY_VALUE=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("PORTAL_TEST_ONLY_VALUE", "")
	os.Unsetenv("PORTAL_TEST_ONLY_VALUE")

	if err := config.LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile: %v", err)
	}
	if got := os.Getenv("PORTAL_TEST_ONLY_VALUE"); got != "from-file" {
		t.Fatalf("env value: got %q", got)
	}
}
