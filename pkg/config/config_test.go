package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

const baseConfig = `
server:
  port: 9000
identity_server:
  port: 9001
database:
  host: db.local
  port: 5433
  user: casa
  password: secret
  name: casavista
internal:
  secret: top-secret
  client_timeout_seconds: 3
`

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, baseConfig)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("server port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Environment != "development" {
		t.Errorf("environment = %q, want development", cfg.Environment)
	}
	if cfg.Redis.Host != "localhost" || cfg.Redis.Port != 6379 {
		t.Errorf("redis defaults = %s:%d, want localhost:6379", cfg.Redis.Host, cfg.Redis.Port)
	}
	if cfg.Auth.TokenTTLHours != 24 {
		t.Errorf("token ttl = %d, want 24", cfg.Auth.TokenTTLHours)
	}
	if got := cfg.Internal.IdentityServiceURL; got != "http://localhost:9001" {
		t.Errorf("identity service url = %q, want derived from identity port", got)
	}
	if cfg.ClientTimeout().Seconds() != 3 {
		t.Errorf("client timeout = %v, want 3s", cfg.ClientTimeout())
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, baseConfig)

	t.Setenv("SERVER_PORT", "7777")
	t.Setenv("INTERNAL_API_SECRET", "env-secret")
	t.Setenv("IDENTITY_SERVICE_URL", "http://identity.internal:8081")
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != 7777 {
		t.Errorf("server port = %d, want 7777", cfg.Server.Port)
	}
	if cfg.Internal.Secret != "env-secret" {
		t.Errorf("internal secret = %q, want env-secret", cfg.Internal.Secret)
	}
	if cfg.Internal.IdentityServiceURL != "http://identity.internal:8081" {
		t.Errorf("identity url = %q", cfg.Internal.IdentityServiceURL)
	}
	if cfg.Redis.Host != "redis.internal" || cfg.Redis.Port != 6380 {
		t.Errorf("redis addr = %s:%d, want redis.internal:6380", cfg.Redis.Host, cfg.Redis.Port)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Errorf("allowed origins = %v, want 2 entries", cfg.CORS.AllowedOrigins)
	}
	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("log level = %q, want DEBUG", cfg.Logging.Level)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "missing internal secret",
			yaml: `
server:
  port: 9000
database:
  name: casavista
`,
			wantErr: "INTERNAL_API_SECRET",
		},
		{
			name: "missing database",
			yaml: `
server:
  port: 9000
internal:
  secret: s
`,
			wantErr: "DB_NAME",
		},
		{
			name: "bad identity url",
			yaml: `
database:
  name: casavista
internal:
  secret: s
  identity_service_url: identity.internal
`,
			wantErr: "IDENTITY_SERVICE_URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("INTERNAL_API_SECRET", "")
			t.Setenv("DATABASE_URL", "")
			t.Setenv("DB_NAME", "")
			path := writeConfigFile(t, tt.yaml)
			_, err := LoadConfig(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestDatabaseDSN(t *testing.T) {
	path := writeConfigFile(t, baseConfig)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	dsn := cfg.DatabaseDSN()
	for _, part := range []string{"host=db.local", "port=5433", "dbname=casavista", "sslmode=disable"} {
		if !strings.Contains(dsn, part) {
			t.Errorf("dsn %q missing %q", dsn, part)
		}
	}

	cfg.Database.URL = "postgres://u:p@h:5432/d"
	if cfg.DatabaseDSN() != "postgres://u:p@h:5432/d" {
		t.Errorf("DATABASE_URL should win over discrete parts")
	}
}
