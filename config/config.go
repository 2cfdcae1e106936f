// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/attrimpute/runner"
	"github.com/katalvlaran/attrimpute/strategy"
)

// ErrInvalidConfig wraps every rejected configuration source.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Environment variable names.
const (
	EnvInput   = "ATTRIMPUTE_INPUT"
	EnvOutput  = "ATTRIMPUTE_OUTPUT"
	EnvWorkers = "ATTRIMPUTE_WORKERS"
	EnvZip     = "ATTRIMPUTE_ZIP"
)

// Config is the run configuration.
type Config struct {
	Input      string                      `yaml:"input" validate:"required"`
	Output     string                      `yaml:"output" validate:"required"`
	Zip        bool                        `yaml:"zip"`
	Workers    int                         `yaml:"workers" validate:"gte=0"`
	Parallel   int                         `yaml:"parallel" validate:"gte=0"`
	TempDir    string                      `yaml:"tempDir"`
	Strategies map[string]strategy.Options `yaml:"strategies"`
}

var validate = validator.New()

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{Input: "input", Output: "output"}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := Decode(bytes.NewReader(raw), &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Decode reads YAML from r into cfg, keeping fields the document omits.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// LoadEnv loads the first ".env" found in start or one of its parents into the
// process environment, without overriding variables already set. It returns
// the file used, or "" when there is none.
func LoadEnv(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("config: %w", err)
	}
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", fmt.Errorf("config: %s: %w", envPath, err)
			}

			return envPath, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// ApplyEnv overrides cfg from the ATTRIMPUTE_* variables visible to lookup
// (os.LookupEnv when nil).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvInput); ok && v != "" {
		c.Input = v
	}
	if v, ok := lookup(EnvOutput); ok && v != "" {
		c.Output = v
	}
	if v, ok := lookup(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, EnvWorkers, v, err)
		}
		c.Workers = n
	}
	if v, ok := lookup(EnvZip); ok && v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, EnvZip, v, err)
		}
		c.Zip = b
	}

	return nil
}

// Validate checks field ranges and strategy names.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			e := validationErrors[0]

			return fmt.Errorf("%w: %s fails %q", ErrInvalidConfig, strings.ToLower(e.Field()), e.Tag())
		}

		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	seen := make(map[string]string, len(c.Strategies))
	for _, name := range slices.Sorted(maps.Keys(c.Strategies)) {
		key, err := runner.Canonical(name)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		if prev, dup := seen[key]; dup {
			return fmt.Errorf("%w: strategies %q and %q both name %s", ErrInvalidConfig, prev, name, key)
		}
		seen[key] = name
	}

	return nil
}

// RunnerOptions translates cfg into runner options. cfg must be valid.
func (c Config) RunnerOptions(logger *zap.Logger) []runner.Option {
	opts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithWorkers(c.Workers),
		runner.WithParallelStrategies(c.Parallel),
		runner.WithZip(c.Zip),
		runner.WithTempDir(c.TempDir),
	}
	for _, name := range slices.Sorted(maps.Keys(c.Strategies)) {
		opts = append(opts, runner.WithStrategyOptions(name, c.Strategies[name]))
	}

	return opts
}
