// Package config parses the CLI surface of spec.md §6 into a plain
// struct, grounded on the teacher's flag.Int/flag.Bool/flag.String usage
// across its cmd/*/main.go entrypoints.
package config

import (
	"flag"
	"fmt"
)

// Config is the parsed CLI surface the driver is constructed from.
type Config struct {
	Level            int
	Seed             int64
	PlannerDepthCap  int
	PlannerTimeoutMS int
	TwoPlayer        bool
	Observer         string
	Verbosity        int
}

// Default mirrors the teacher's DefaultParams()-style constructor: sane
// values a caller can selectively override.
func Default() Config {
	return Config{
		Level:            1,
		Seed:             0,
		PlannerDepthCap:  6,
		PlannerTimeoutMS: 500,
		TwoPlayer:        false,
		Observer:         "default",
		Verbosity:        0,
	}
}

// Parse registers and parses the standard CLI flags against fs (pass
// flag.CommandLine in production, a fresh *flag.FlagSet in tests), and
// validates the result.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Default()

	fs.IntVar(&cfg.Level, "level", cfg.Level, "starting level override")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "dungeon seed override (0 = random)")
	fs.IntVar(&cfg.PlannerDepthCap, "planner-depth", cfg.PlannerDepthCap, "max actions per planning search")
	fs.IntVar(&cfg.PlannerTimeoutMS, "planner-timeout-ms", cfg.PlannerTimeoutMS, "wall-clock budget per planning search, in milliseconds")
	fs.BoolVar(&cfg.TwoPlayer, "two-player", cfg.TwoPlayer, "enable cooperative two-player mode")
	fs.StringVar(&cfg.Observer, "observer", cfg.Observer, `observer choice: "default", "log", or "none"`)
	fs.IntVar(&cfg.Verbosity, "v", cfg.Verbosity, "log verbosity (0-2)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the rest of the module can't act on.
func (c Config) Validate() error {
	if c.Level < 1 {
		return fmt.Errorf("config: level must be >= 1, got %d", c.Level)
	}
	if c.PlannerDepthCap < 1 {
		return fmt.Errorf("config: planner-depth must be >= 1, got %d", c.PlannerDepthCap)
	}
	if c.PlannerTimeoutMS < 1 {
		return fmt.Errorf("config: planner-timeout-ms must be >= 1, got %d", c.PlannerTimeoutMS)
	}
	switch c.Observer {
	case "default", "log", "none":
	default:
		return fmt.Errorf("config: observer must be default/log/none, got %q", c.Observer)
	}
	return nil
}
