// Package config holds the experiment settings: which kernels to
// compare, their hyperparameters, the observation noise and the
// size of the held-out tail.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"bitbucket.org/dtolpin/gpcmp/kernel"
)

type Config struct {
	Noise        float64        `yaml:"noise"`
	TestFraction float64        `yaml:"test_fraction"`
	Kernels      []KernelConfig `yaml:"kernels"`
}

// KernelConfig describes one kernel. Alpha is read by the
// rational quadratic kernel, Period by the periodic one.
type KernelConfig struct {
	Type        string  `yaml:"type"`
	LengthScale float64 `yaml:"length_scale"`
	Variance    float64 `yaml:"variance"`
	Alpha       float64 `yaml:"alpha,omitempty"`
	Period      float64 `yaml:"period,omitempty"`
}

const (
	Gaussian          = "gaussian"
	RBF               = "rbf"
	RationalQuadratic = "rational_quadratic"
	ExpSineSquared    = "exp_sine_squared"
)

// DefaultConfig compares the four kernels on features scaled to
// [0, 1]. Gaussian and RBF share a formula and differ only in
// length scale.
func DefaultConfig() *Config {
	return &Config{
		Noise:        1e-2,
		TestFraction: 0.2,
		Kernels: []KernelConfig{
			{Type: Gaussian, LengthScale: 0.1, Variance: 1},
			{Type: RBF, LengthScale: 1, Variance: 1},
			{Type: RationalQuadratic, LengthScale: 0.1, Variance: 1, Alpha: 1},
			{Type: ExpSineSquared, LengthScale: 1, Variance: 1, Period: 0.2},
		},
	}
}

// Load reads a YAML file over the defaults. Fields absent from
// the file keep their default values; a kernels list in the file
// replaces the default list.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte, cfg *Config) error {
	var file struct {
		Noise        *float64       `yaml:"noise"`
		TestFraction *float64       `yaml:"test_fraction"`
		Kernels      []KernelConfig `yaml:"kernels"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return err
	}
	if file.Noise != nil {
		cfg.Noise = *file.Noise
	}
	if file.TestFraction != nil {
		cfg.TestFraction = *file.TestFraction
	}
	if file.Kernels != nil {
		cfg.Kernels = file.Kernels
	}
	return nil
}

// Build constructs the kernel.
func (c KernelConfig) Build() (kernel.Kernel, error) {
	switch c.Type {
	case Gaussian:
		return kernel.NewGaussian(c.LengthScale, c.Variance)
	case RBF:
		return kernel.NewRBF(c.LengthScale, c.Variance)
	case RationalQuadratic:
		return kernel.NewRationalQuadratic(c.LengthScale, c.Variance, c.Alpha)
	case ExpSineSquared:
		return kernel.NewExpSineSquared(c.LengthScale, c.Variance, c.Period)
	default:
		return nil, fmt.Errorf("unknown kernel type %q", c.Type)
	}
}

// Build constructs all configured kernels, in order.
func (c *Config) Build() ([]kernel.Kernel, error) {
	if len(c.Kernels) == 0 {
		return nil, fmt.Errorf("no kernels configured")
	}
	ks := make([]kernel.Kernel, len(c.Kernels))
	for i, kc := range c.Kernels {
		k, err := kc.Build()
		if err != nil {
			return nil, fmt.Errorf("kernel %d: %w", i, err)
		}
		ks[i] = k
	}
	return ks, nil
}
