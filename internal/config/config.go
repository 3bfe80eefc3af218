// Package config provides configuration loading from environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"
)

// ErrInvalidConfig is returned when a configuration value is out of range.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds all configuration for the application. Command-line flags
// take these values as their defaults.
type Config struct {
	// Splitting settings
	OutputDir     string  `env:"SPLIT_OUTPUT_DIR, default=splits" json:"output_dir" validate:"required"`
	ThresholdDB   float64 `env:"SPLIT_THRESHOLD_DB, default=-48" json:"threshold_db" validate:"lte=0"`
	MinSilenceSec float64 `env:"SPLIT_MIN_SILENCE_SEC, default=1.5" json:"min_silence_sec" validate:"gt=0"`
	VerifyTracks  bool    `env:"SPLIT_VERIFY_TRACKS, default=true" json:"verify_tracks"`

	// Media engine
	FFmpegPath  string `env:"FFMPEG_PATH, default=ffmpeg" json:"ffmpeg_path" validate:"required"`
	FFprobePath string `env:"FFPROBE_PATH, default=ffprobe" json:"ffprobe_path" validate:"required"`

	// Optional publishing targets
	PublishDir         string `env:"SPLIT_PUBLISH_DIR" json:"publish_dir,omitempty"`
	S3Bucket           string `env:"S3_BUCKET" json:"s3_bucket,omitempty"`
	S3Region           string `env:"S3_REGION" json:"s3_region,omitempty"`
	S3Endpoint         string `env:"S3_ENDPOINT" json:"s3_endpoint,omitempty" validate:"omitempty,url"`
	S3Prefix           string `env:"S3_PREFIX" json:"s3_prefix,omitempty"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID" json:"-"`     // Masked in JSON
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" json:"-"` // Masked in JSON

	// Logging settings
	LogFormat string `env:"LOG_FORMAT, default=text" json:"log_format" validate:"oneof=text json"` // "json" or "text"
	LogLevel  string `env:"LOG_LEVEL, default=info" json:"log_level"`                              // "debug", "info", "warn", "error"
}

// S3Enabled returns true if S3 configuration is provided.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != "" && c.S3Region != ""
}

// PublishEnabled returns true if tracks should be copied to a local directory.
func (c *Config) PublishEnabled() bool {
	return c.PublishDir != ""
}

// Load reads configuration from environment variables using go-envconfig
// and validates the result.
func Load() (*Config, error) {
	return load(context.Background(), envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	cfg := &Config{}

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges: the silence threshold must not be positive,
// the minimum silence duration must be positive and the log format must be
// "text" or "json".
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// NewLogger creates a structured logger based on the configuration.
// When LogFormat is "json", it outputs JSON logs suitable for log shippers.
// Otherwise, it outputs human-readable text logs. Logs go to stderr so the
// run summary on stdout stays clean.
func (c *Config) NewLogger() *slog.Logger {
	return c.newLogger(os.Stderr)
}

func (c *Config) newLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(c.LogLevel)}

	var handler slog.Handler
	if strings.ToLower(c.LogFormat) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// String returns a string representation of the config with sensitive values masked.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{OutputDir: %s, ThresholdDB: %g, MinSilenceSec: %g, VerifyTracks: %t, FFmpegPath: %s, FFprobePath: %s, PublishDir: %s, S3Bucket: %s, S3Region: %s, S3Prefix: %s, LogFormat: %s, LogLevel: %s}",
		c.OutputDir,
		c.ThresholdDB,
		c.MinSilenceSec,
		c.VerifyTracks,
		c.FFmpegPath,
		c.FFprobePath,
		c.PublishDir,
		c.S3Bucket,
		c.S3Region,
		c.S3Prefix,
		c.LogFormat,
		c.LogLevel,
	)
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
