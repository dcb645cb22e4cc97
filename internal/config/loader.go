package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/soltixdb/fitscore/internal/utils"
)

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("fitscore")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")             // Current directory
		v.AddConfigPath("./configs")     // Project configs directory
		v.AddConfigPath("/etc/fitscore") // System-wide config
	}

	// Set defaults
	setDefaults(v)

	// Enable environment variable overrides, e.g. FITSCORE_IO_BUFFER_SIZE
	v.SetEnvPrefix("FITSCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; use defaults
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	// IO defaults
	v.SetDefault("io.buffer_size", d.IO.BufferSize)
	v.SetDefault("io.file_mode", d.IO.FileMode)
	v.SetDefault("io.row_chunk_budget", d.IO.RowChunkBudget)

	// Formatter defaults
	v.SetDefault("formatter.truncate_on_overflow", d.Formatter.TruncateOnOverflow)
	v.SetDefault("formatter.truncation_fill", d.Formatter.TruncationFill)
	v.SetDefault("formatter.truncation_throw", d.Formatter.TruncationThrow)
	v.SetDefault("formatter.align", d.Formatter.Align)
	v.SetDefault("formatter.simple_min", d.Formatter.SimpleMin)
	v.SetDefault("formatter.simple_max", d.Formatter.SimpleMax)

	// Parser defaults
	v.SetDefault("parser.fill_fields", d.Parser.FillFields)

	// Compression defaults
	v.SetDefault("compression.algorithm", d.Compression.Algorithm)
	v.SetDefault("compression.level", d.Compression.Level)

	// Logging defaults
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output_path", d.Logging.OutputPath)
	v.SetDefault("logging.time_format", d.Logging.TimeFormat)
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault loads configuration from file or returns default config
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		// Return default configuration
		return DefaultConfig()
	}
	return cfg
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		IO: IOConfig{
			BufferSize:     utils.DefaultBufferSize,
			FileMode:       uint32(utils.DefaultFileMode),
			RowChunkBudget: utils.RowChunkBudget,
		},
		Formatter: FormatterConfig{
			TruncateOnOverflow: true,
			TruncationFill:     string(rune(utils.DefaultTruncationFill)),
			TruncationThrow:    true,
			Align:              false,
			SimpleMin:          utils.SimpleMin,
			SimpleMax:          utils.SimpleMax,
		},
		Parser: ParserConfig{
			FillFields: false,
		},
		Compression: CompressionConfig{
			Algorithm: utils.CompressionNone,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stderr",
			TimeFormat: "RFC3339",
		},
	}
}
