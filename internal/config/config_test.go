package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Client.StoreName != "default" {
		t.Errorf("store_name = %q, want default", cfg.Client.StoreName)
	}
	if cfg.DevServer.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.DevServer.Port)
	}
	if cfg.DevServer.DefaultK != 10 {
		t.Errorf("default_k = %d, want 10", cfg.DevServer.DefaultK)
	}
	if cfg.DevServer.WriteTimeoutSec != 60 {
		t.Errorf("write_timeout_sec = %d, want 60", cfg.DevServer.WriteTimeoutSec)
	}
}

func TestParse_ExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_COLBERTDB_URL", "http://store.internal:9000")
	t.Setenv("TEST_COLBERTDB_KEY", "")

	cfg, err := Parse([]byte(`
client:
  url: ${TEST_COLBERTDB_URL}
  api_key: ${TEST_COLBERTDB_KEY:-fallback}
  store_name: ${TEST_COLBERTDB_UNSET:-team}
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Client.URL != "http://store.internal:9000" {
		t.Errorf("url = %q", cfg.Client.URL)
	}
	if cfg.Client.APIKey != "fallback" {
		t.Errorf("api_key = %q, want fallback", cfg.Client.APIKey)
	}
	if cfg.Client.StoreName != "team" {
		t.Errorf("store_name = %q, want team", cfg.Client.StoreName)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("client: [")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "empty is valid", cfg: Config{}},
		{name: "https url", cfg: Config{Client: ClientConfig{URL: "https://colbert.example.com"}}},
		{name: "bad scheme", cfg: Config{Client: ClientConfig{URL: "ftp://x"}}, wantErr: true},
		{name: "no host", cfg: Config{Client: ClientConfig{URL: "http://"}}, wantErr: true},
		{name: "slash in store", cfg: Config{Client: ClientConfig{StoreName: "a/b"}}, wantErr: true},
		{name: "port too large", cfg: Config{DevServer: DevServerConfig{Port: 70000}}, wantErr: true},
		{name: "bad level", cfg: Config{Logging: LoggingConfig{Level: "trace"}}, wantErr: true},
		{name: "warn level", cfg: Config{Logging: LoggingConfig{Level: "warn"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_FromPathEnvVar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("dev_server:\n  port: 9999\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(PathEnvVar, path)

	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DevServer.Port != 9999 {
		t.Errorf("port = %d, want 9999", cfg.DevServer.Port)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(PathEnvVar, filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Client.StoreName != "default" {
		t.Errorf("store_name = %q, want default", cfg.Client.StoreName)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv() = %q, want local", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv() = %q, want prod", got)
	}
}
