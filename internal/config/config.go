package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/didpress/didpress/internal/batching"
	"github.com/didpress/didpress/internal/git"
	"github.com/didpress/didpress/internal/logging"
	"github.com/didpress/didpress/internal/validate"
	"github.com/joho/godotenv"
)

// Config is the complete daemon configuration assembled from the environment.
// The git and batching sections live in their owning packages; this struct
// composes them with the daemon-level settings.
type Config struct {
	ServerURL    string        // Upstream agent base URL documents are fetched from
	BindAddr     string        // IP address to bind the HTTP API to
	BindPort     int           // Port for the HTTP API
	RepoDir      string        // Working copy of the hosting repository
	RemoteURL    string        // Optional remote URL to create when the remote is missing
	DryRun       bool          // Fetch and save but never publish
	LogLevel     string        // Log level: DEBUG, INFO, WARN, ERROR
	FetchTimeout time.Duration // Timeout for one upstream document fetch

	Git      *git.Config      // Publication target settings
	Batching *batching.Config // Flush cadence and admission capacity
}

// Load assembles the configuration from the environment. When envFile is
// non-empty it must exist and load; otherwise a .env in the working directory
// is picked up when present and silently skipped when not.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load() // ok if missing
	}

	batchDefaults := batching.DefaultConfig()

	cfg := &Config{
		ServerURL:    getEnvDefault("SERVER_URL", DefaultServerURL),
		BindAddr:     getEnvDefault("BIND_ADDR", DefaultBindAddr),
		BindPort:     parseIntDefault("PORT", DefaultAPIPort),
		RepoDir:      getEnvDefault("REPO_DIR", DefaultRepoDir),
		RemoteURL:    getEnvDefault("GIT_REMOTE_URL", ""),
		DryRun:       parseBoolDefault("DRY_RUN", false),
		LogLevel:     strings.ToUpper(getEnvDefault("LOG_LEVEL", DefaultLogLevel)),
		FetchTimeout: parseDurationDefault("FETCH_TIMEOUT", DefaultFetchTimeout),

		Git: &git.Config{
			Remote:       getEnvDefault("GIT_REMOTE", git.DefaultRemote),
			Branch:       getEnvDefault("BRANCH", git.DefaultBranch),
			CommitPrefix: getEnvDefault("COMMIT_MSG", git.DefaultCommitPrefix),
			AuthorName:   getEnvDefault("GIT_AUTHOR_NAME", ""),
			AuthorEmail:  getEnvDefault("GIT_AUTHOR_EMAIL", ""),
		},

		Batching: &batching.Config{
			MaxBatchSize:  parseIntDefault("BATCH_SIZE", batchDefaults.MaxBatchSize),
			MaxBatchDelay: parseDurationDefault("BATCH_TIMEOUT", batchDefaults.MaxBatchDelay),
			QueueSize:     parseIntDefault("BATCH_QUEUE_SIZE", batchDefaults.QueueSize),
		},
	}

	return cfg, nil
}

// Validate checks the assembled configuration before any component starts,
// so misconfiguration fails the daemon at boot instead of the first request.
func (c *Config) Validate() error {
	if err := validate.ValidateRequiredString(c.ServerURL, "server URL"); err != nil {
		return err
	}
	if err := validate.ValidateField(c.ServerURL, "url"); err != nil {
		return fmt.Errorf("server URL validation failed: %w", err)
	}
	if err := validate.ValidateField(c.BindAddr, "ip"); err != nil {
		return fmt.Errorf("bind address validation failed: %w", err)
	}
	if err := validate.ValidatePortRange(c.BindPort); err != nil {
		return fmt.Errorf("API port validation failed: %w", err)
	}
	if err := validate.ValidateRequiredString(c.RepoDir, "repository directory"); err != nil {
		return err
	}
	if err := logging.ValidateLogLevel(c.LogLevel); err != nil {
		return err
	}
	if err := validate.ValidatePositiveTimeout(c.FetchTimeout, "fetch timeout"); err != nil {
		return err
	}

	// An explicit remote URL must be ownership-checkable later.
	if c.RemoteURL != "" {
		if _, _, err := git.ParseGitHubRemote(c.RemoteURL); err != nil {
			return fmt.Errorf("git remote URL validation failed: %w", err)
		}
	}

	if err := c.Git.Validate(); err != nil {
		return fmt.Errorf("git configuration invalid: %w", err)
	}
	if err := c.Batching.Validate(); err != nil {
		return fmt.Errorf("batching configuration invalid: %w", err)
	}

	return nil
}

// --- helpers ---

func lookupEnvTrim(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	return strings.TrimSpace(v), ok
}

func getEnvDefault(key, def string) string {
	if v, ok := lookupEnvTrim(key); ok && v != "" {
		return v
	}
	return def
}

func parseIntDefault(key string, def int) int {
	v, ok := lookupEnvTrim(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		logging.Warn("Invalid %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}

func parseBoolDefault(key string, def bool) bool {
	v, ok := lookupEnvTrim(key)
	if !ok || v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "t", "true", "yes", "y":
		return true
	case "0", "f", "false", "no", "n":
		return false
	default:
		logging.Warn("Invalid %s=%q, using default %t", key, v, def)
		return def
	}
}

func parseDurationDefault(key string, def time.Duration) time.Duration {
	v, ok := lookupEnvTrim(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		// Bare numbers mean seconds
		n, convErr := strconv.Atoi(v)
		if convErr != nil {
			logging.Warn("Invalid %s=%q, using default %v", key, v, def)
			return def
		}
		d = time.Duration(n) * time.Second
	}
	if d <= 0 {
		logging.Warn("Invalid %s=%q, using default %v", key, v, def)
		return def
	}
	return d
}
