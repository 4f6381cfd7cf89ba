package deparse

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/deparse/arena"
	"github.com/wippyai/deparse/codec"
	"github.com/wippyai/deparse/errors"
)

// Environment variables that override file configuration.
const (
	EnvArenaChunkSize     = "DEPARSE_ARENA_CHUNK_SIZE"
	EnvArenaMaxBytes      = "DEPARSE_ARENA_MAX_BYTES"
	EnvArenaMaxIdleChunks = "DEPARSE_ARENA_MAX_IDLE_CHUNKS"
	EnvArenaPoison        = "DEPARSE_ARENA_POISON"
	EnvCodecMaxDepth      = "DEPARSE_CODEC_MAX_DEPTH"
	EnvLogLevel           = "DEPARSE_LOG_LEVEL"
)

// Config configures a Deparser.
type Config struct {
	Arena arena.Config `yaml:"arena"`
	Codec codec.Config `yaml:"codec"`
	// LogLevel is used by the CLI to build its logger; a Deparser logs
	// through Logger.
	LogLevel string `yaml:"log_level"`

	// Logger receives per-call debug logs. Nil uses the package logger.
	Logger *zap.Logger `yaml:"-"`
	// Registerer receives the call metrics. Nil leaves them unregistered.
	Registerer prometheus.Registerer `yaml:"-"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Arena:    arena.DefaultConfig(),
		Codec:    codec.DefaultConfig(),
		LogLevel: "info",
	}
}

// LoadConfig reads a YAML configuration file over the defaults and applies
// environment overrides. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse "+path)
		}
	case !os.IsNotExist(err):
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "read "+path)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnvOverrides() error {
	ints := []struct {
		env string
		dst *int
	}{
		{EnvArenaChunkSize, &c.Arena.ChunkSize},
		{EnvArenaMaxBytes, &c.Arena.MaxBytes},
		{EnvArenaMaxIdleChunks, &c.Arena.MaxIdleChunks},
		{EnvCodecMaxDepth, &c.Codec.MaxDepth},
	}
	for _, o := range ints {
		raw := strings.TrimSpace(os.Getenv(o.env))
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return envError(o.env, err)
		}
		*o.dst = v
	}
	if raw := strings.TrimSpace(os.Getenv(EnvArenaPoison)); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return envError(EnvArenaPoison, err)
		}
		c.Arena.Poison = v
	}
	if raw := strings.TrimSpace(os.Getenv(EnvLogLevel)); raw != "" {
		c.LogLevel = strings.ToLower(raw)
	}
	return nil
}

func envError(name string, err error) error {
	return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
		Path(name).
		Detail("invalid value").
		Cause(err).
		Build()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf(format, args...))
	}
	switch {
	case c.Arena.ChunkSize < 0:
		return invalid("arena.chunk_size must not be negative, got %d", c.Arena.ChunkSize)
	case c.Arena.MaxBytes < 0:
		return invalid("arena.max_bytes must not be negative, got %d", c.Arena.MaxBytes)
	case c.Arena.MaxIdleChunks < 0:
		return invalid("arena.max_idle_chunks must not be negative, got %d", c.Arena.MaxIdleChunks)
	case c.Arena.MaxBytes > 0 && c.Arena.ChunkSize > c.Arena.MaxBytes:
		return invalid("arena.chunk_size %d exceeds arena.max_bytes %d", c.Arena.ChunkSize, c.Arena.MaxBytes)
	case c.Codec.MaxDepth < 0:
		return invalid("codec.max_depth must not be negative, got %d", c.Codec.MaxDepth)
	}
	if _, err := c.Level(); err != nil {
		return invalid("log_level: %v", err)
	}
	return nil
}

// Level parses LogLevel. The empty string means info.
func (c Config) Level() (zapcore.Level, error) {
	if c.LogLevel == "" {
		return zapcore.InfoLevel, nil
	}
	return zapcore.ParseLevel(c.LogLevel)
}
