package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	API         APIConfig     `toml:"api"`
	Storage     StorageConfig `toml:"storage"`
	Upload      UploadConfig  `toml:"upload"`
	MCP         MCPConfig     `toml:"mcp"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
// AllowedOrigins lists the browser origins that may call the API and /mcp.
// Empty refuses every cross-origin request.
type ServerConfig struct {
	Port           int      `toml:"port"`
	Host           string   `toml:"host"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// APIConfig describes the blog backend the client talks to.
type APIConfig struct {
	URL             string `toml:"url"`
	Timeout         string `toml:"timeout"`
	CacheTTL        string `toml:"cache_ttl"`
	CacheMaxEntries int    `toml:"cache_max_entries"`
}

// GetTimeout parses the request timeout. Zero disables the client-side deadline.
func (c *APIConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d < 0 {
		return 30 * time.Second
	}
	return d
}

// GetCacheTTL parses the GET response cache TTL. Zero (the default) disables caching.
func (c *APIConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return 0
	}
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// StorageConfig contains storage layer settings.
// Backend is one of "badger" (default), "sqlite" or "memory".
type StorageConfig struct {
	Backend string       `toml:"backend"`
	Badger  BadgerConfig `toml:"badger"`
	SQLite  SQLiteConfig `toml:"sqlite"`
}

// BadgerConfig contains BadgerDB-specific settings.
type BadgerConfig struct {
	Path string `toml:"path"`
}

// SQLiteConfig contains SQLite-specific settings.
type SQLiteConfig struct {
	Path string `toml:"path"`
}

// UploadConfig controls image preparation before multipart uploads.
type UploadConfig struct {
	MaxWidth     int    `toml:"max_width"` // 0 sends images unchanged
	Interpolator string `toml:"interpolator"`
}

// MCPConfig contains MCP server settings.
type MCPConfig struct {
	Name string `toml:"name"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// IsDevMode reports whether the environment is "dev".
func (c *Config) IsDevMode() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "dev")
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies BLOG_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("BLOG_ENV"); env != "" {
		config.Environment = env
	}
	if port := os.Getenv("BLOG_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("BLOG_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if origins := os.Getenv("BLOG_ALLOWED_ORIGINS"); origins != "" {
		config.Server.AllowedOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				config.Server.AllowedOrigins = append(config.Server.AllowedOrigins, o)
			}
		}
	}
	if apiURL := os.Getenv("BLOG_API_URL"); apiURL != "" {
		config.API.URL = apiURL
	}
	if timeout := os.Getenv("BLOG_API_TIMEOUT"); timeout != "" {
		config.API.Timeout = timeout
	}
	if ttl := os.Getenv("BLOG_API_CACHE_TTL"); ttl != "" {
		config.API.CacheTTL = ttl
	}
	if backend := os.Getenv("BLOG_STORAGE_BACKEND"); backend != "" {
		config.Storage.Backend = backend
	}
	if badgerPath := os.Getenv("BLOG_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}
	if sqlitePath := os.Getenv("BLOG_SQLITE_PATH"); sqlitePath != "" {
		config.Storage.SQLite.Path = sqlitePath
	}
	if maxWidth := os.Getenv("BLOG_UPLOAD_MAX_WIDTH"); maxWidth != "" {
		if w, err := strconv.Atoi(maxWidth); err == nil {
			config.Upload.MaxWidth = w
		}
	}
	if level := os.Getenv("BLOG_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host, apiURL string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
	if apiURL != "" {
		config.API.URL = apiURL
	}
}

// Validate returns a list of human-readable problems with mandatory settings.
// An empty result means the configuration is usable.
func (c *Config) Validate() []string {
	var issues []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port must be between 1 and 65535 (got %d)", c.Server.Port))
	}

	if strings.TrimSpace(c.API.URL) == "" {
		issues = append(issues, "api.url is required (BLOG_API_URL)")
	} else if u, err := url.Parse(c.API.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		issues = append(issues, fmt.Sprintf("api.url must be an absolute http(s) URL (got %q)", c.API.URL))
	}

	switch strings.ToLower(c.Storage.Backend) {
	case "badger":
		if c.Storage.Badger.Path == "" {
			issues = append(issues, "storage.badger.path is required when storage.backend = \"badger\"")
		}
	case "sqlite":
		if c.Storage.SQLite.Path == "" {
			issues = append(issues, "storage.sqlite.path is required when storage.backend = \"sqlite\"")
		}
	case "memory":
	default:
		issues = append(issues, fmt.Sprintf("storage.backend must be badger, sqlite or memory (got %q)", c.Storage.Backend))
	}

	for _, o := range c.Server.AllowedOrigins {
		if o == "*" {
			issues = append(issues, "server.allowed_origins must list explicit origins, not \"*\"")
			continue
		}
		if u, err := url.Parse(o); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" || u.Path != "" {
			issues = append(issues, fmt.Sprintf("server.allowed_origins entry %q must be scheme://host[:port]", o))
		}
	}

	if c.Upload.MaxWidth < 0 {
		issues = append(issues, "upload.max_width must not be negative")
	}

	return issues
}
