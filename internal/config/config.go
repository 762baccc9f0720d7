// Package config loads and saves simulation run configuration.
package config

import (
	"fmt"
	"os"

	"golang.org/x/exp/rand"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/randify/internal/dist"
	"github.com/san-kum/randify/internal/randvar"
)

const (
	DefaultScenario = "affine"
	DefaultTrials   = 10000
	DefaultSeed     = 1
)

type Config struct {
	Scenario string               `yaml:"scenario"`
	Trials   int                  `yaml:"trials"`
	Seed     uint64               `yaml:"seed"`
	Inputs   map[string]InputSpec `yaml:"inputs"`
}

// InputSpec describes the distribution of one named scenario input.
type InputSpec struct {
	Dist   string  `yaml:"dist"`
	Mean   float64 `yaml:"mean"`
	Stddev float64 `yaml:"stddev"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
	Rate   float64 `yaml:"rate"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario: DefaultScenario,
		Trials:   DefaultTrials,
		Seed:     DefaultSeed,
		Inputs:   make(map[string]InputSpec),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Sampler builds the sampler this spec describes over src.
func (s InputSpec) Sampler(src rand.Source) (randvar.Sampler, error) {
	switch s.Dist {
	case "normal":
		if s.Stddev <= 0 {
			return nil, fmt.Errorf("config: normal input needs stddev > 0, got %g", s.Stddev)
		}
		return dist.Normal(src, s.Mean, s.Stddev), nil
	case "uniform":
		if s.Max <= s.Min {
			return nil, fmt.Errorf("config: uniform input needs max > min, got [%g, %g]", s.Min, s.Max)
		}
		return dist.Uniform(src, s.Min, s.Max), nil
	case "exponential":
		if s.Rate <= 0 {
			return nil, fmt.Errorf("config: exponential input needs rate > 0, got %g", s.Rate)
		}
		return dist.Exponential(src, s.Rate), nil
	case "lognormal":
		if s.Stddev <= 0 {
			return nil, fmt.Errorf("config: lognormal input needs stddev > 0, got %g", s.Stddev)
		}
		return dist.LogNormal(src, s.Mean, s.Stddev), nil
	default:
		return nil, fmt.Errorf("config: unknown distribution %q", s.Dist)
	}
}
