package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/paulschiretz/pgl-bincut/pkg/buildinfo"
	"github.com/paulschiretz/pgl-bincut/pkg/compression"
	"github.com/paulschiretz/pgl-bincut/pkg/failure"
	"github.com/paulschiretz/pgl-bincut/pkg/plog"
)

// maxBufferSizeKB caps the copy buffer at 1 GiB.
const maxBufferSizeKB = 1 << 20

type PerformanceConfig struct {
	BufferSizeKB int `json:"bufferSizeKB" comment:"Size of the copy buffer in kilobytes. Default is 256 (256KB)."`
}

type CompressionConfig struct {
	// Format applies to files written by chunks and extract. Join always
	// detects the format of each chunk from its extension.
	Format compression.Format `json:"format"`
	Level  compression.Level  `json:"level"`
}

type PreflightConfig struct {
	CheckFreeSpace bool `json:"checkFreeSpace"`
}

type RuntimeConfig struct {
	DryRun bool
	Quiet  bool
}

type Config struct {
	Version     string            `json:"version"`
	LogLevel    string            `json:"logLevel"`
	Metrics     bool              `json:"metrics"`
	Performance PerformanceConfig `json:"performance"`
	Compression CompressionConfig `json:"compression"`
	Preflight   PreflightConfig   `json:"preflight"`
	Runtime     RuntimeConfig     `json:"-"` // Never read from a config file
}

// NewDefault returns the configuration used when no config file is given.
func NewDefault() Config {
	return Config{
		Version:  buildinfo.Version,
		LogLevel: "notice", // Successful runs print nothing unless asked to.
		Metrics:  false,
		Performance: PerformanceConfig{
			BufferSizeKB: 256,
		},
		Compression: CompressionConfig{
			Format: compression.None,
			Level:  compression.Default,
		},
		Preflight: PreflightConfig{
			CheckFreeSpace: true,
		},
	}
}

// Load reads the JSON config file at path over the defaults. An empty path
// returns the defaults. A path that was given but cannot be read is an error.
func Load(path string) (Config, error) {
	if path == "" {
		return NewDefault(), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return Config{}, failure.Wrap(failure.IoError, err, "error opening config file", path)
	}
	defer file.Close()

	plog.Debug("Loading configuration", "path", path)
	// Fields missing from the file keep their default values.
	config := NewDefault()
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, &failure.Error{Kind: failure.InvalidArgument, Msg: "error parsing config file", Path: path, Err: err}
	}
	config.Version = buildinfo.Version
	return config, nil
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "notice", "info", "warn", "warning", "error":
	default:
		return failure.New(failure.InvalidArgument, "invalid log level: %q. Must be 'debug', 'notice', 'info', 'warn', or 'error'", c.LogLevel)
	}

	if c.Performance.BufferSizeKB <= 0 || c.Performance.BufferSizeKB > maxBufferSizeKB {
		return failure.New(failure.InvalidArgument, "bufferSizeKB must be between 1 and %d, got %d", maxBufferSizeKB, c.Performance.BufferSizeKB)
	}

	format, err := compression.ParseFormat(string(c.Compression.Format))
	if err != nil {
		return &failure.Error{Kind: failure.InvalidArgument, Msg: "invalid compression settings", Err: err}
	}
	c.Compression.Format = format

	level, err := compression.ParseLevel(string(c.Compression.Level))
	if err != nil {
		return &failure.Error{Kind: failure.InvalidArgument, Msg: "invalid compression settings", Err: err}
	}
	c.Compression.Level = level

	return nil
}

// BufferSize returns the copy buffer size in bytes.
func (c *Config) BufferSize() int {
	return c.Performance.BufferSizeKB * 1024
}

// LogSummary logs the effective configuration at info level.
func (c *Config) LogSummary() {
	plog.Info("Configuration",
		"version", c.Version,
		"logLevel", c.LogLevel,
		"dryRun", c.Runtime.DryRun,
		"metrics", c.Metrics,
		"bufferSizeKB", c.Performance.BufferSizeKB,
		"compressionFormat", c.Compression.Format,
		"compressionLevel", c.Compression.Level,
		"checkFreeSpace", c.Preflight.CheckFreeSpace,
	)
}

// MergeConfigWithFlags overlays explicitly set flags on base. Keys that are
// not configuration (positional arguments, overwrite) are ignored here.
func MergeConfigWithFlags(base Config, setFlags map[string]any) Config {
	merged := base

	for name, value := range setFlags {
		switch name {
		case "log-level":
			merged.LogLevel = value.(string)
		case "quiet":
			merged.Runtime.Quiet = value.(bool)
		case "dry-run":
			merged.Runtime.DryRun = value.(bool)
		case "metrics":
			merged.Metrics = value.(bool)
		case "buffer-size-kb":
			merged.Performance.BufferSizeKB = value.(int)
		case "compression-format":
			merged.Compression.Format = compression.Format(value.(string))
		case "compression-level":
			merged.Compression.Level = compression.Level(value.(string))
		case "config", "overwrite", "path", "output-path", "chunk-size", "start", "end-or-len":
		default:
			plog.Debug("unhandled flag in MergeConfigWithFlags", "flag", name)
		}
	}
	return merged
}

// FromFlags loads the config file named by the "config" flag, if any, merges
// the remaining flags over it and validates the result.
func FromFlags(flagMap map[string]any) (Config, error) {
	path, _ := flagMap["config"].(string)
	loaded, err := Load(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	merged := MergeConfigWithFlags(loaded, flagMap)
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}
