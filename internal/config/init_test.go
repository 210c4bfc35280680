package config

import (
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"APP_ENV", "APP_PORT", "GIN_MODE", "DB_DRIVER", "SESSION_BACKEND", "SESSION_COOKIE", "SESSION_MAX_AGE", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB"} {
		t.Setenv(k, "")
	}
	t.Setenv("DB_DSN", "file::memory:")
	t.Setenv("SESSION_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AppPort != "8000" || cfg.DBDriver != DriverMySQL || cfg.SessionBackend != SessionBackendCookie {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.SessionCookie != "sessionid" || cfg.SessionMaxAge != 14*24*time.Hour {
		t.Fatalf("unexpected session defaults %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing dsn", map[string]string{"DB_DSN": ""}},
		{"unknown driver", map[string]string{"DB_DRIVER": "oracle"}},
		{"missing secret", map[string]string{"SESSION_SECRET": ""}},
		{"unknown backend", map[string]string{"SESSION_BACKEND": "memcached"}},
		{"redis without addr", map[string]string{"SESSION_BACKEND": "redis"}},
		{"bad max age", map[string]string{"SESSION_MAX_AGE": "-5"}},
		{"bad redis db", map[string]string{"REDIS_DB": "zero"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestLoadRedisBackend(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RedisDB != 2 || cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("unexpected redis config %+v", cfg)
	}
}
