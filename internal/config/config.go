package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSampleTime = 0.01
	DefaultDuration   = 10.0
	DefaultSetpoint   = 1.0
	DefaultKp         = 2.0
	DefaultKi         = 1.0
	DefaultKd         = 0.1
	DefaultTf         = 0.05
)

type Config struct {
	Plant      string      `yaml:"plant"`
	Integrator string      `yaml:"integrator"`
	SampleTime float64     `yaml:"sample_time"`
	Duration   float64     `yaml:"duration"`
	Setpoint   float64     `yaml:"setpoint"`
	Gains      GainsConfig `yaml:"gains"`
	Limits     LimitConfig `yaml:"limits"`
	InitState  []float64   `yaml:"init_state"`
}

type GainsConfig struct {
	Kp float64 `yaml:"kp"`
	Ki float64 `yaml:"ki"`
	Kd float64 `yaml:"kd"`
	Tf float64 `yaml:"tf"`
}

type LimitConfig struct {
	OutMin      float64 `yaml:"out_min"`
	OutMax      float64 `yaml:"out_max"`
	IntegralMin float64 `yaml:"integral_min"`
	IntegralMax float64 `yaml:"integral_max"`
}

func DefaultConfig() *Config {
	return &Config{
		Plant:      "first_order",
		Integrator: "rk4",
		SampleTime: DefaultSampleTime,
		Duration:   DefaultDuration,
		Setpoint:   DefaultSetpoint,
		Gains: GainsConfig{
			Kp: DefaultKp,
			Ki: DefaultKi,
			Kd: DefaultKd,
			Tf: DefaultTf,
		},
		Limits: LimitConfig{
			OutMin:      -20,
			OutMax:      20,
			IntegralMin: -10,
			IntegralMax: 10,
		},
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

// SamplePeriod returns the sample time as a duration for controller
// construction.
func (c *Config) SamplePeriod() time.Duration {
	return time.Duration(c.SampleTime * float64(time.Second))
}

// GetInitState returns the configured initial plant state, falling back to
// a zero vector of the right dimension for the chosen plant.
func (c *Config) GetInitState() []float64 {
	if len(c.InitState) > 0 {
		return c.InitState
	}
	switch c.Plant {
	case "spring_mass":
		return []float64{0, 0}
	default:
		return []float64{0}
	}
}
