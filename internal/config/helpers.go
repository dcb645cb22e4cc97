package config

import (
	"os"
)

// Permissions returns the configured file mode for files the toolkit creates
func (c *IOConfig) Permissions() os.FileMode {
	return os.FileMode(c.FileMode).Perm()
}

// CompressionEnabled returns true if a compression algorithm is selected
func (c *CompressionConfig) CompressionEnabled() bool {
	return c.Algorithm != "" && c.Algorithm != "none"
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Logging.Level == "debug" && c.Logging.Format == "console"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Logging.Level == "info" && c.Logging.Format == "json"
}
