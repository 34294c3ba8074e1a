package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/collatzlab/internal/collatz"
)

const (
	DefaultCeiling       = collatz.DefaultCeiling
	DefaultWarnThreshold = "1000000000"
	DefaultHead          = collatz.DefaultHead
	DefaultTail          = collatz.DefaultTail
	DefaultDataDir       = ".collatz"
	DefaultTheme         = "cyberpunk"
	DefaultFrameDelayMs  = 200
	MinFrameDelayMs      = 10
	MaxFrameDelayMs      = 500
)

// ErrInvalidConfig indicates a configuration that fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

var validate = validator.New(validator.WithRequiredStructEnabled())

type Config struct {
	Ceiling       string `yaml:"ceiling" toml:"ceiling" validate:"required,numeric"`
	WarnThreshold string `yaml:"warn_threshold" toml:"warn_threshold" validate:"required,numeric"`
	MaxSteps      int    `yaml:"max_steps" toml:"max_steps" validate:"gte=0"`
	Head          int    `yaml:"head" toml:"head" validate:"gte=0"`
	Tail          int    `yaml:"tail" toml:"tail" validate:"gte=0"`
	DataDir       string `yaml:"data_dir" toml:"data_dir" validate:"required"`
	Theme         string `yaml:"theme" toml:"theme" validate:"omitempty,oneof=cyberpunk retro minimal ocean sunset"`
	FrameDelayMs  int    `yaml:"frame_delay_ms" toml:"frame_delay_ms" validate:"gte=10,lte=500"`
	Seed          int64  `yaml:"seed" toml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Ceiling:       DefaultCeiling,
		WarnThreshold: DefaultWarnThreshold,
		Head:          DefaultHead,
		Tail:          DefaultTail,
		DataDir:       DefaultDataDir,
		Theme:         DefaultTheme,
		FrameDelayMs:  DefaultFrameDelayMs,
	}
}

// Load reads a config file over the defaults. Files ending in .toml are
// parsed as TOML, everything else as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if isTOML(path) {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Validate checks field ranges and that the numeric strings are integers.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	ceiling, err := c.CeilingInt()
	if err != nil {
		return err
	}
	if ceiling.Cmp(big.NewInt(2)) < 0 {
		return fmt.Errorf("%w: ceiling must be at least 2, got %s", ErrInvalidConfig, c.Ceiling)
	}
	threshold, err := c.WarnThresholdInt()
	if err != nil {
		return err
	}
	if threshold.Sign() < 0 {
		return fmt.Errorf("%w: warn_threshold must not be negative, got %s", ErrInvalidConfig, c.WarnThreshold)
	}
	return nil
}

// CeilingInt parses the advisory ceiling.
func (c *Config) CeilingInt() (*big.Int, error) {
	n, err := collatz.ParseStart(c.Ceiling)
	if err != nil {
		return nil, fmt.Errorf("%w: ceiling: %w", ErrInvalidConfig, err)
	}
	return n, nil
}

// WarnThresholdInt parses the large-input notice threshold.
func (c *Config) WarnThresholdInt() (*big.Int, error) {
	n, err := collatz.ParseStart(c.WarnThreshold)
	if err != nil {
		return nil, fmt.Errorf("%w: warn_threshold: %w", ErrInvalidConfig, err)
	}
	return n, nil
}

// GeneratorOptions translates the config into generator options.
func (c *Config) GeneratorOptions() ([]collatz.Option, error) {
	ceiling, err := c.CeilingInt()
	if err != nil {
		return nil, err
	}
	return []collatz.Option{
		collatz.WithCeiling(ceiling),
		collatz.WithMaxSteps(c.MaxSteps),
	}, nil
}

// Merge copies fields from src into c, skipping those whose command-line
// flag was set explicitly.
func (c *Config) Merge(src *Config, changed map[string]bool) {
	if !changed["ceiling"] {
		c.Ceiling = src.Ceiling
	}
	if !changed["warn-threshold"] {
		c.WarnThreshold = src.WarnThreshold
	}
	if !changed["max-steps"] {
		c.MaxSteps = src.MaxSteps
	}
	if !changed["head"] {
		c.Head = src.Head
	}
	if !changed["tail"] {
		c.Tail = src.Tail
	}
	if !changed["data"] {
		c.DataDir = src.DataDir
	}
	if !changed["theme"] {
		c.Theme = src.Theme
	}
	if !changed["frame-delay"] {
		c.FrameDelayMs = src.FrameDelayMs
	}
	if !changed["seed"] {
		c.Seed = src.Seed
	}
}
