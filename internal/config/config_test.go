package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/didpress/didpress/internal/batching"
	"github.com/didpress/didpress/internal/git"
)

var configEnvKeys = []string{
	"SERVER_URL", "BIND_ADDR", "PORT", "REPO_DIR", "GIT_REMOTE_URL",
	"DRY_RUN", "LOG_LEVEL", "FETCH_TIMEOUT",
	"GIT_REMOTE", "BRANCH", "COMMIT_MSG", "GIT_AUTHOR_NAME", "GIT_AUTHOR_EMAIL",
	"BATCH_SIZE", "BATCH_TIMEOUT", "BATCH_QUEUE_SIZE",
}

// unsetEnv removes key for the duration of the test, restoring the previous
// value afterwards via t.Setenv's cleanup.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		unsetEnv(t, key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ServerURL != "http://localhost:3332" {
		t.Errorf("ServerURL = %q, want %q", cfg.ServerURL, "http://localhost:3332")
	}
	if cfg.BindAddr != "0.0.0.0" {
		t.Errorf("BindAddr = %q, want %q", cfg.BindAddr, "0.0.0.0")
	}
	if cfg.BindPort != 8080 {
		t.Errorf("BindPort = %d, want 8080", cfg.BindPort)
	}
	if cfg.RepoDir != "." {
		t.Errorf("RepoDir = %q, want %q", cfg.RepoDir, ".")
	}
	if cfg.DryRun {
		t.Error("DryRun = true, want false")
	}
	if cfg.LogLevel != "INFO" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "INFO")
	}
	if cfg.FetchTimeout != 15*time.Second {
		t.Errorf("FetchTimeout = %v, want 15s", cfg.FetchTimeout)
	}
	if cfg.Git.Remote != "origin" || cfg.Git.Branch != "gh-pages" {
		t.Errorf("Git target = %s/%s, want origin/gh-pages", cfg.Git.Remote, cfg.Git.Branch)
	}
	if cfg.Batching.MaxBatchSize != 10 {
		t.Errorf("Batching.MaxBatchSize = %d, want 10", cfg.Batching.MaxBatchSize)
	}
	if cfg.Batching.MaxBatchDelay != 5*time.Second {
		t.Errorf("Batching.MaxBatchDelay = %v, want 5s", cfg.Batching.MaxBatchDelay)
	}
	if cfg.Batching.QueueSize != 100 {
		t.Errorf("Batching.QueueSize = %d, want 100", cfg.Batching.QueueSize)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default configuration failed validation: %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("SERVER_URL", "http://127.0.0.1:9000")
	t.Setenv("PORT", "9999")
	t.Setenv("DRY_RUN", "yes")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("BRANCH", "pages")
	t.Setenv("GIT_AUTHOR_NAME", "Pages Bot")
	t.Setenv("GIT_AUTHOR_EMAIL", "bot@example.com")
	t.Setenv("BATCH_SIZE", "25")
	t.Setenv("BATCH_TIMEOUT", "2s")
	t.Setenv("BATCH_QUEUE_SIZE", "500")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ServerURL != "http://127.0.0.1:9000" {
		t.Errorf("ServerURL = %q, want override", cfg.ServerURL)
	}
	if cfg.BindPort != 9999 {
		t.Errorf("BindPort = %d, want 9999", cfg.BindPort)
	}
	if !cfg.DryRun {
		t.Error("DryRun = false, want true from DRY_RUN=yes")
	}
	if cfg.LogLevel != "DEBUG" {
		t.Errorf("LogLevel = %q, want DEBUG (normalized)", cfg.LogLevel)
	}
	if cfg.Git.Branch != "pages" {
		t.Errorf("Git.Branch = %q, want %q", cfg.Git.Branch, "pages")
	}
	if cfg.Git.AuthorName != "Pages Bot" || cfg.Git.AuthorEmail != "bot@example.com" {
		t.Errorf("author = %q <%q>, want override", cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	}
	if cfg.Batching.MaxBatchSize != 25 {
		t.Errorf("Batching.MaxBatchSize = %d, want 25", cfg.Batching.MaxBatchSize)
	}
	if cfg.Batching.MaxBatchDelay != 2*time.Second {
		t.Errorf("Batching.MaxBatchDelay = %v, want 2s", cfg.Batching.MaxBatchDelay)
	}
	if cfg.Batching.QueueSize != 500 {
		t.Errorf("Batching.QueueSize = %d, want 500", cfg.Batching.QueueSize)
	}
}

func TestLoad_BareSecondsDuration(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("BATCH_TIMEOUT", "2")
	t.Setenv("FETCH_TIMEOUT", "30")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Batching.MaxBatchDelay != 2*time.Second {
		t.Errorf("MaxBatchDelay = %v, want 2s from bare BATCH_TIMEOUT=2", cfg.Batching.MaxBatchDelay)
	}
	if cfg.FetchTimeout != 30*time.Second {
		t.Errorf("FetchTimeout = %v, want 30s from bare FETCH_TIMEOUT=30", cfg.FetchTimeout)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "not-a-port")
	t.Setenv("BATCH_SIZE", "-5")
	t.Setenv("BATCH_TIMEOUT", "soon")
	t.Setenv("DRY_RUN", "maybe")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.BindPort != 8080 {
		t.Errorf("BindPort = %d, want default 8080 for unparseable PORT", cfg.BindPort)
	}
	if cfg.Batching.MaxBatchSize != 10 {
		t.Errorf("MaxBatchSize = %d, want default 10 for negative BATCH_SIZE", cfg.Batching.MaxBatchSize)
	}
	if cfg.Batching.MaxBatchDelay != 5*time.Second {
		t.Errorf("MaxBatchDelay = %v, want default 5s for unparseable BATCH_TIMEOUT", cfg.Batching.MaxBatchDelay)
	}
	if cfg.DryRun {
		t.Error("DryRun = true, want default false for unrecognized DRY_RUN")
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearConfigEnv(t)

	envFile := filepath.Join(t.TempDir(), "publish.env")
	content := "SERVER_URL=http://agent.internal:3332\nBRANCH=release/gh-pages\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatalf("writing env file: %v", err)
	}

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ServerURL != "http://agent.internal:3332" {
		t.Errorf("ServerURL = %q, want value from env file", cfg.ServerURL)
	}
	if cfg.Git.Branch != "release/gh-pages" {
		t.Errorf("Git.Branch = %q, want value from env file", cfg.Git.Branch)
	}
}

func TestLoad_EnvFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	if err == nil {
		t.Error("Load() with missing explicit env file succeeded, want error")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			ServerURL:    "http://localhost:3332",
			BindAddr:     "0.0.0.0",
			BindPort:     8080,
			RepoDir:      ".",
			LogLevel:     "INFO",
			FetchTimeout: 15 * time.Second,
			Git:          git.DefaultConfig(),
			Batching:     batching.DefaultConfig(),
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		description string
	}{
		{
			name:        "valid",
			mutate:      func(c *Config) {},
			wantErr:     false,
			description: "baseline configuration should validate",
		},
		{
			name:        "empty server URL",
			mutate:      func(c *Config) { c.ServerURL = "" },
			wantErr:     true,
			description: "the upstream agent URL is required",
		},
		{
			name:        "malformed server URL",
			mutate:      func(c *Config) { c.ServerURL = "not a url" },
			wantErr:     true,
			description: "the upstream agent URL must parse",
		},
		{
			name:        "invalid bind address",
			mutate:      func(c *Config) { c.BindAddr = "999.0.0.1" },
			wantErr:     true,
			description: "bind address must be a real IP",
		},
		{
			name:        "port zero",
			mutate:      func(c *Config) { c.BindPort = 0 },
			wantErr:     true,
			description: "API port must be explicit",
		},
		{
			name:        "unknown log level",
			mutate:      func(c *Config) { c.LogLevel = "TRACE" },
			wantErr:     true,
			description: "log level must be one of the supported levels",
		},
		{
			name:        "zero fetch timeout",
			mutate:      func(c *Config) { c.FetchTimeout = 0 },
			wantErr:     true,
			description: "fetches must be bounded",
		},
		{
			name:        "non-github remote URL",
			mutate:      func(c *Config) { c.RemoteURL = "/srv/git/ssi-dids.git" },
			wantErr:     true,
			description: "an explicit remote URL must be ownership-checkable",
		},
		{
			name:        "github remote URL",
			mutate:      func(c *Config) { c.RemoteURL = "git@github.com:acme/ssi-dids.git" },
			wantErr:     false,
			description: "a GitHub remote URL should validate",
		},
		{
			name:        "invalid branch",
			mutate:      func(c *Config) { c.Git.Branch = "gh pages" },
			wantErr:     true,
			description: "git section validation should propagate",
		},
		{
			name:        "invalid batch size",
			mutate:      func(c *Config) { c.Batching.MaxBatchSize = 0 },
			wantErr:     true,
			description: "batching section validation should propagate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v: %s", err, tt.wantErr, tt.description)
			}
		})
	}
}
