package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "prod",
		Server: ServerConfig{
			Port: 4341,
			Host: "localhost",
		},
		API: APIConfig{
			URL:             "http://localhost:5000",
			Timeout:         "30s",
			CacheMaxEntries: 256,
		},
		Storage: StorageConfig{
			Backend: "badger",
			Badger: BadgerConfig{
				Path: "./data/blog",
			},
			SQLite: SQLiteConfig{
				Path: "./data/blog.db",
			},
		},
		Upload: UploadConfig{
			Interpolator: "catmullrom",
		},
		MCP: MCPConfig{
			Name: "blog-portal",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console"},
			FilePath:   "logs/blog-portal.log",
			MaxSizeMB:  10,
			MaxBackups: 5,
		},
	}
}
