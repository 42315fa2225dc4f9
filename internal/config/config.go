// Package config provides configuration loading for the game.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"smokerocket/internal/fluid"
	"smokerocket/internal/sprite"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every startup parameter. It is read once and never reloaded.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Simulation SimulationConfig `yaml:"simulation"`
	GPU        GPUConfig        `yaml:"gpu"`
	Splat      SplatConfig      `yaml:"splat"`
	Rocket     RocketConfig     `yaml:"rocket"`
	Bullet     BulletConfig     `yaml:"bullet"`
	Bounds     BoundsConfig     `yaml:"bounds"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

// SimulationConfig holds the solver constants.
type SimulationConfig struct {
	TextureDownsample   int     `yaml:"texture_downsample"`  // grid = viewport >> this
	DensityDissipation  float32 `yaml:"density_dissipation"` // per frame
	VelocityDissipation float32 `yaml:"velocity_dissipation"`
	PressureDissipation float32 `yaml:"pressure_dissipation"`
	PressureIterations  int     `yaml:"pressure_iterations"`
	MaxTimeStep         float32 `yaml:"max_time_step"` // seconds
}

type GPUConfig struct {
	ForceManualFiltering bool `yaml:"force_manual_filtering"`
}

type SplatConfig struct {
	BurstCount           int     `yaml:"burst_count"`
	StartupBurst         bool    `yaml:"startup_burst"`
	ColorCycleFrames     int     `yaml:"color_cycle_frames"`
	PointerVelocityScale float32 `yaml:"pointer_velocity_scale"`
	Seed                 uint64  `yaml:"seed"`
}

type SmokeConfig struct {
	ThrustCurl     float32 `yaml:"thrust_curl"`
	ThrustRadius   float32 `yaml:"thrust_radius"`
	ThrustDistance float64 `yaml:"thrust_distance"`
	BrakeCurl      float32 `yaml:"brake_curl"`
	BrakeRadius    float32 `yaml:"brake_radius"`
	BrakeDistance  float64 `yaml:"brake_distance"`
}

type RocketConfig struct {
	Width            float64     `yaml:"width"`
	Height           float64     `yaml:"height"`
	Friction         float64     `yaml:"friction"`
	RotationFriction float64     `yaml:"rotation_friction"`
	MinVelocity      float64     `yaml:"min_velocity"`
	MaxVelocity      float64     `yaml:"max_velocity"`
	Thrust           float64     `yaml:"thrust"`
	RotationThrust   float64     `yaml:"rotation_thrust"`
	ReverseThrust    float64     `yaml:"reverse_thrust"`
	BrakeForce       float64     `yaml:"brake_force"`
	RotationBrake    float64     `yaml:"rotation_brake"`
	MuzzleBoost      float64     `yaml:"muzzle_boost"` // added to max_velocity for bullets
	ReloadMs         int         `yaml:"reload_ms"`
	Smoke            SmokeConfig `yaml:"smoke"`
}

type BulletConfig struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	Friction         float64 `yaml:"friction"`
	RotationFriction float64 `yaml:"rotation_friction"`
	MinVelocity      float64 `yaml:"min_velocity"`
	LifetimeMs       int     `yaml:"lifetime_ms"`
}

// BoundsConfig picks reflect (true) or wrap (false) for each pair of edges.
type BoundsConfig struct {
	BounceFloorCeiling bool `yaml:"bounce_floor_ceiling"`
	BounceWalls        bool `yaml:"bounce_walls"`
}

type TelemetryConfig struct {
	LogIntervalFrames int    `yaml:"log_interval_frames"` // 0 disables periodic logs
	CSVPath           string `yaml:"csv_path"`            // empty disables CSV output
}

// Load reads the embedded defaults, overlays the file at path when path is
// not empty, and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only keys present in the file overwrite the defaults.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate rejects values the game cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if err := c.FluidParams().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Splat.BurstCount < 0 {
		errs = append(errs, fmt.Errorf("splat.burst_count %d is negative", c.Splat.BurstCount))
	}
	if c.Splat.ColorCycleFrames < 1 {
		errs = append(errs, fmt.Errorf("splat.color_cycle_frames %d must be at least 1", c.Splat.ColorCycleFrames))
	}
	if c.Rocket.Smoke.ThrustRadius <= 0 || c.Rocket.Smoke.BrakeRadius <= 0 {
		errs = append(errs, errors.New("rocket.smoke radii must be positive"))
	}
	if c.Rocket.ReloadMs < 0 || c.Bullet.LifetimeMs < 0 {
		errs = append(errs, errors.New("rocket.reload_ms and bullet.lifetime_ms must not be negative"))
	}
	if c.Telemetry.LogIntervalFrames < 0 {
		errs = append(errs, fmt.Errorf("telemetry.log_interval_frames %d is negative", c.Telemetry.LogIntervalFrames))
	}
	return errors.Join(errs...)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func (c *Config) FluidParams() fluid.Params {
	s := c.Simulation
	return fluid.Params{
		TextureDownsample:    s.TextureDownsample,
		DensityDissipation:   s.DensityDissipation,
		VelocityDissipation:  s.VelocityDissipation,
		PressureDissipation:  s.PressureDissipation,
		PressureIterations:   s.PressureIterations,
		MaxTimeStep:          s.MaxTimeStep,
		ForceManualFiltering: c.GPU.ForceManualFiltering,
	}
}

func (c *Config) InjectorConfig() fluid.InjectorConfig {
	return fluid.InjectorConfig{
		BurstCount:       c.Splat.BurstCount,
		ColorCycleFrames: c.Splat.ColorCycleFrames,
		VelocityScale:    c.Splat.PointerVelocityScale,
		Radius:           c.Rocket.Smoke.ThrustRadius,
	}
}

func (c *Config) RocketConfig() sprite.RocketConfig {
	r := c.Rocket
	return sprite.RocketConfig{
		Width:            r.Width,
		Height:           r.Height,
		Friction:         r.Friction,
		RotationFriction: r.RotationFriction,
		MinVelocity:      r.MinVelocity,
		MaxVelocity:      r.MaxVelocity,
		Thrust:           r.Thrust,
		RotationThrust:   r.RotationThrust,
		ReverseThrust:    r.ReverseThrust,
		BrakeForce:       r.BrakeForce,
		RotationBrake:    r.RotationBrake,
		MuzzleBoost:      r.MuzzleBoost,
		Reload:           time.Duration(r.ReloadMs) * time.Millisecond,
		Smoke: sprite.SmokeConfig{
			ThrustCurl:     r.Smoke.ThrustCurl,
			ThrustRadius:   r.Smoke.ThrustRadius,
			ThrustDistance: r.Smoke.ThrustDistance,
			BrakeCurl:      r.Smoke.BrakeCurl,
			BrakeRadius:    r.Smoke.BrakeRadius,
			BrakeDistance:  r.Smoke.BrakeDistance,
		},
	}
}

func (c *Config) BulletConfig() sprite.BulletConfig {
	b := c.Bullet
	return sprite.BulletConfig{
		Width:            b.Width,
		Height:           b.Height,
		Friction:         b.Friction,
		RotationFriction: b.RotationFriction,
		MinVelocity:      b.MinVelocity,
		Lifetime:         time.Duration(b.LifetimeMs) * time.Millisecond,
	}
}

func (c *Config) Policy() sprite.Policy {
	return sprite.Policy{
		BounceFloorCeiling: c.Bounds.BounceFloorCeiling,
		BounceWalls:        c.Bounds.BounceWalls,
	}
}
