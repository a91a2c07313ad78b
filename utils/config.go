package utils

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

const (
	// MinMaxGenerations is the smallest generation cap accepted on the command line
	MinMaxGenerations = 10
	// DefaultMaxGenerations applies when no cap is given
	DefaultMaxGenerations = 65535
)

// Usage is printed on stderr for help and for malformed arguments
const Usage = `Usage: gol <alive_cells> <delay_ms> [max_generations]
  alive_cells      cells to seed (800-2200 recommended)
  delay_ms         pause between generations (80-750 recommended)
  max_generations  stop after this many generations (at least 10)
Keys: space pauses and resumes, q quits.
config.json in the working directory may set max_generations, use_parallel,
workers, seed and show_stats; alive_cells and delay_ms always come from the
command line.
`

var (
	// ErrHelp is returned when help was asked for explicitly
	ErrHelp = errors.New("help requested")
	// ErrUsage is returned when the arguments do not match the usage
	ErrUsage = errors.New("invalid arguments")
)

// Config holds the configuration for the game. AliveCells and DelayMs are
// required positional arguments, so the config file cannot set them.
type Config struct {
	AliveCells     int    `json:"-"`
	DelayMs        int    `json:"-"`
	MaxGenerations int    `json:"max_generations"`
	UseParallel    bool   `json:"use_parallel"`
	Workers        int    `json:"workers"`
	Seed           uint64 `json:"seed"`
	ShowStats      bool   `json:"show_stats"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		AliveCells:     1500,
		DelayMs:        150,
		MaxGenerations: DefaultMaxGenerations,
		UseParallel:    true,
		Workers:        0, // one per CPU
		Seed:           0, // seeded from the clock
		ShowStats:      true,
	}
}

// Delay returns the pause between generations
func (c Config) Delay() time.Duration {
	return time.Duration(c.DelayMs) * time.Millisecond
}

// EngineWorkers returns the worker count to hand to the engine
func (c Config) EngineWorkers() int {
	if !c.UseParallel {
		return 1
	}
	return c.Workers
}

// Validate checks the values a run depends on
func (c Config) Validate() error {
	if c.AliveCells < 0 {
		return errors.Wrapf(ErrUsage, "[Validate] alive_cells must not be negative: %d", c.AliveCells)
	}
	if c.DelayMs < 0 {
		return errors.Wrapf(ErrUsage, "[Validate] delay_ms must not be negative: %d", c.DelayMs)
	}
	if c.MaxGenerations < MinMaxGenerations {
		return errors.Wrapf(ErrUsage, "[Validate] max_generations must be at least %d: %d",
			MinMaxGenerations, c.MaxGenerations)
	}
	if c.Workers < 0 {
		return errors.Wrapf(ErrUsage, "[Validate] workers must not be negative: %d", c.Workers)
	}
	return nil
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// ParseArgs applies the positional arguments <alive_cells> <delay_ms>
// [max_generations] on top of base.
func ParseArgs(args []string, base Config) (Config, error) {
	config := base
	if len(args) > 0 && args[0] == "help" {
		return config, ErrHelp
	}
	if len(args) != 2 && len(args) != 3 {
		return config, errors.Wrapf(ErrUsage, "[ParseArgs] expected 2 or 3 arguments, got %d", len(args))
	}

	var err error
	if config.AliveCells, err = parseInt("alive_cells", args[0]); err != nil {
		return base, err
	}
	if config.DelayMs, err = parseInt("delay_ms", args[1]); err != nil {
		return base, err
	}
	if len(args) == 3 {
		if config.MaxGenerations, err = parseInt("max_generations", args[2]); err != nil {
			return base, err
		}
	}

	if err = config.Validate(); err != nil {
		return base, err
	}
	return config, nil
}

func parseInt(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Wrapf(ErrUsage, "[ParseArgs] %s is not an integer: %q", name, value)
	}
	return n, nil
}
