package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"grasplab/internal/control"
	"grasplab/internal/physics"
	"grasplab/internal/scene"
)

const (
	DefaultDt       = 0.002
	DefaultSteps    = 2000
	DefaultPeriod   = control.DefaultPeriod
	DefaultInterval = 100
)

type Config struct {
	Sim   SimConfig   `yaml:"sim"`
	Scene SceneConfig `yaml:"scene"`
	Cycle CycleConfig `yaml:"cycle"`
	Diag  DiagConfig  `yaml:"diag"`
}

type SimConfig struct {
	Dt         float64 `yaml:"dt"`
	Steps      int     `yaml:"steps"`
	Integrator string  `yaml:"integrator"`
	Seed       int64   `yaml:"seed"`
}

type SceneConfig struct {
	TableSize   [3]float64 `yaml:"table_size"`
	TableOffset [3]float64 `yaml:"table_offset"`
	TableLegs   bool       `yaml:"table_legs"`
	BoxHalfSize [3]float64 `yaml:"box_half_size"`
	BoxFriction [3]float64 `yaml:"box_friction"`
	BoxStartZ   float64    `yaml:"box_start_z"`
	Markers     bool       `yaml:"markers"`

	ContactStiffness float64 `yaml:"contact_stiffness"`
	ContactDamping   float64 `yaml:"contact_damping"`
}

type CycleConfig struct {
	Period int       `yaml:"period"`
	ZLow   float64   `yaml:"z_low"`
	ZHigh  float64   `yaml:"z_high"`
	Open   []float64 `yaml:"open"`
	Closed []float64 `yaml:"closed"`
}

type DiagConfig struct {
	Interval int  `yaml:"interval"`
	Debug    bool `yaml:"debug"`
}

func Default() *Config {
	demo := scene.DefaultDemoParams()
	return &Config{
		Sim: SimConfig{
			Dt:         DefaultDt,
			Steps:      DefaultSteps,
			Integrator: "semi_implicit",
		},
		Scene: SceneConfig{
			TableSize:        demo.TableSize,
			TableOffset:      demo.TableOffset,
			TableLegs:        demo.TableLegs,
			BoxHalfSize:      demo.BoxHalfSize,
			BoxFriction:      demo.BoxFriction,
			BoxStartZ:        demo.BoxStartZ,
			Markers:          demo.Markers,
			ContactStiffness: physics.DefaultParams().ContactStiffness,
			ContactDamping:   physics.DefaultParams().ContactDamping,
		},
		Cycle: CycleConfig{
			Period: DefaultPeriod,
			ZLow:   control.DefaultZLow,
			ZHigh:  control.DefaultZHigh,
			Open:   scene.FingersOpen,
			Closed: scene.FingersClosed,
		},
		Diag: DiagConfig{
			Interval: DefaultInterval,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
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

// DemoParams maps the scene section onto scene assembly parameters.
func (c *Config) DemoParams() scene.DemoParams {
	return scene.DemoParams{
		TableSize:   c.Scene.TableSize,
		TableOffset: c.Scene.TableOffset,
		TableLegs:   c.Scene.TableLegs,
		BoxHalfSize: c.Scene.BoxHalfSize,
		BoxRGBA:     [4]float64{1, 0, 0, 1},
		BoxFriction: c.Scene.BoxFriction,
		BoxStartZ:   c.Scene.BoxStartZ,
		Markers:     c.Scene.Markers,
	}
}

// PhysicsParams maps the scene section onto contact parameters.
func (c *Config) PhysicsParams() physics.Params {
	p := physics.DefaultParams()
	if c.Scene.ContactStiffness > 0 {
		p.ContactStiffness = c.Scene.ContactStiffness
	}
	if c.Scene.ContactDamping > 0 {
		p.ContactDamping = c.Scene.ContactDamping
	}
	return p
}
