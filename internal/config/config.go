package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/davfen/pendsim/internal/pendulum"
)

const (
	DefaultAddr         = ":8417"
	DefaultTickInterval = 16 * time.Millisecond
	DefaultDt           = 0.016
	DefaultSubsteps     = 1
	DefaultGravity      = 9.81
	DefaultBobCount     = 2
	DefaultRodLength    = 120.0
	DefaultMass         = 10.0
)

type Config struct {
	Addr         string        `yaml:"addr"`
	TickInterval time.Duration `yaml:"tick_interval"`
	Dt           float64       `yaml:"dt"`
	Substeps     int           `yaml:"substeps"`
	Gravity      float64       `yaml:"gravity"`
	Bobs         []BobConfig   `yaml:"bobs"`
}

type BobConfig struct {
	RodLength float64 `yaml:"rod_length"`
	Mass      float64 `yaml:"mass"`
	Theta     float64 `yaml:"theta"`
	Omega     float64 `yaml:"omega"`
}

func DefaultConfig() *Config {
	bobs := make([]BobConfig, DefaultBobCount)
	for i := range bobs {
		bobs[i] = BobConfig{
			RodLength: DefaultRodLength,
			Mass:      DefaultMass,
			Theta:     pendulum.DefaultTheta,
		}
	}
	return &Config{
		Addr:         DefaultAddr,
		TickInterval: DefaultTickInterval,
		Dt:           DefaultDt,
		Substeps:     DefaultSubsteps,
		Gravity:      DefaultGravity,
		Bobs:         bobs,
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
	if err := cfg.Validate(); err != nil {
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

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval)
	}
	if c.Substeps < 1 {
		return fmt.Errorf("substeps must be at least 1, got %d", c.Substeps)
	}
	return nil
}

// BuildPendulum constructs the initial chain described by the config.
func (c *Config) BuildPendulum() *pendulum.Pendulum {
	bobs := make([]pendulum.Bob, len(c.Bobs))
	for i, b := range c.Bobs {
		bobs[i] = pendulum.NewBob(b.RodLength, b.Mass, b.Theta, b.Omega)
	}
	p := pendulum.New(bobs...)
	if c.Gravity > 0 {
		p.G = c.Gravity
	}
	return p
}
