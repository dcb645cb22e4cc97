package config

import (
	"fmt"
)

// Config represents the complete toolkit configuration
type Config struct {
	IO          IOConfig          `mapstructure:"io"`
	Formatter   FormatterConfig   `mapstructure:"formatter"`
	Parser      ParserConfig      `mapstructure:"parser"`
	Compression CompressionConfig `mapstructure:"compression"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// IOConfig represents buffered stream and file configuration
type IOConfig struct {
	BufferSize     int    `mapstructure:"buffer_size"`      // Buffer size for streams and files (default: 32768)
	FileMode       uint32 `mapstructure:"file_mode"`        // Permission bits for created files (default: 0644)
	RowChunkBudget int    `mapstructure:"row_chunk_budget"` // Bytes of table rows moved per chunk (default: 65536)
}

// FormatterConfig represents text formatter settings
type FormatterConfig struct {
	TruncateOnOverflow bool    `mapstructure:"truncate_on_overflow"` // Cut values to the field width
	TruncationFill     string  `mapstructure:"truncation_fill"`      // First byte fills a truncated field
	TruncationThrow    bool    `mapstructure:"truncation_throw"`     // Report truncation as an error
	Align              bool    `mapstructure:"align"`                // Right-align within the field
	SimpleMin          float64 `mapstructure:"simple_min"`           // Smallest magnitude written without exponent
	SimpleMax          float64 `mapstructure:"simple_max"`           // Largest magnitude written without exponent
}

// ParserConfig represents text parser settings
type ParserConfig struct {
	FillFields bool `mapstructure:"fill_fields"` // Require blank remainder in fixed-width fields
}

// CompressionConfig represents optional stream compression
type CompressionConfig struct {
	Algorithm string `mapstructure:"algorithm"` // none, snappy, lz4, zstd
	Level     int    `mapstructure:"level"`     // 0 selects the library default
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, UnixMs, etc
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.IO.Validate(); err != nil {
		return fmt.Errorf("io config: %w", err)
	}

	if err := c.Formatter.Validate(); err != nil {
		return fmt.Errorf("formatter config: %w", err)
	}

	if err := c.Compression.Validate(); err != nil {
		return fmt.Errorf("compression config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates io configuration
func (c *IOConfig) Validate() error {
	if c.BufferSize < 1 {
		return fmt.Errorf("io.buffer_size must be positive")
	}

	if c.FileMode > 0o777 {
		return fmt.Errorf("invalid io.file_mode: %o", c.FileMode)
	}

	if c.RowChunkBudget < 1 {
		return fmt.Errorf("io.row_chunk_budget must be positive")
	}

	return nil
}

// Validate validates formatter configuration
func (c *FormatterConfig) Validate() error {
	if len(c.TruncationFill) > 1 {
		return fmt.Errorf("formatter.truncation_fill must be a single byte")
	}

	if c.SimpleMin < 0 || c.SimpleMax < c.SimpleMin {
		return fmt.Errorf("formatter.simple_min/simple_max must satisfy 0 <= min <= max")
	}

	return nil
}

// Validate validates compression configuration
func (c *CompressionConfig) Validate() error {
	validAlgorithms := map[string]bool{
		"":       true,
		"none":   true,
		"snappy": true,
		"lz4":    true,
		"zstd":   true,
	}

	if !validAlgorithms[c.Algorithm] {
		return fmt.Errorf("compression.algorithm must be one of: none, snappy, lz4, zstd")
	}

	if c.Level < 0 {
		return fmt.Errorf("compression.level cannot be negative")
	}

	return nil
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}
