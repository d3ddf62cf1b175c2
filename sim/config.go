package sim

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// PackConfig groups CirclePacker parameters.
type PackConfig struct {
	InitialRadius         float64 `yaml:"initial_radius"`           // radius of a new circle and the coarse growth step (must be > 0)
	BatchSize             int     `yaml:"batch_size"`               // accepted circles per batch before a coarse growth pass (must be > 0)
	AttemptsPerBatchLimit int     `yaml:"attempts_per_batch_limit"` // placement attempts per batch before the cloud counts as saturated (must be > 0)
	FineGrowthStep        float64 `yaml:"fine_growth_step"`         // growth step of the relaxation phase (must be > 0)
	DepthJitter           float64 `yaml:"depth_jitter"`             // width of the uniform z jitter, centered on 0 (must be >= 0)
	MaxRadius             float64 `yaml:"max_radius"`               // growth cap; 0 = largest possible center distance
	RequireCircles        bool    `yaml:"require_circles"`          // empty point sets fail instead of yielding no circles
}

// DefaultPackConfig returns the reference packing parameters.
func DefaultPackConfig() PackConfig {
	return PackConfig{
		InitialRadius:         0.18,
		BatchSize:             100,
		AttemptsPerBatchLimit: 500,
		FineGrowthStep:        0.001,
		DepthJitter:           4.0,
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidArgument.
func (c PackConfig) Validate() error {
	switch {
	case c.InitialRadius <= 0:
		return fmt.Errorf("initial radius %v must be > 0: %w", c.InitialRadius, ErrInvalidArgument)
	case c.BatchSize <= 0:
		return fmt.Errorf("batch size %d must be > 0: %w", c.BatchSize, ErrInvalidArgument)
	case c.AttemptsPerBatchLimit <= 0:
		return fmt.Errorf("attempts per batch limit %d must be > 0: %w", c.AttemptsPerBatchLimit, ErrInvalidArgument)
	case c.FineGrowthStep <= 0:
		return fmt.Errorf("fine growth step %v must be > 0: %w", c.FineGrowthStep, ErrInvalidArgument)
	case c.DepthJitter < 0:
		return fmt.Errorf("depth jitter %v must be >= 0: %w", c.DepthJitter, ErrInvalidArgument)
	case c.MaxRadius < 0:
		return fmt.Errorf("max radius %v must be >= 0: %w", c.MaxRadius, ErrInvalidArgument)
	}
	return nil
}

// SteerConfig groups SteeringSimulator parameters.
type SteerConfig struct {
	MaxSpeed            float64 `yaml:"max_speed"`             // desired speed far from the goal (must be > 0)
	MaxForce            float64 `yaml:"max_force"`             // per-tick clamp of each steering force (must be > 0)
	ArriveRadius        float64 `yaml:"arrive_radius"`         // distance below which arrive speed eases to 0 (must be > 0)
	FleeRadius          float64 `yaml:"flee_radius"`           // distance below which the repulsor acts (must be >= 0)
	FleeForceMultiplier float64 `yaml:"flee_force_multiplier"` // amplification of the flee force (must be >= 0)

	SpawnExtent        r3.Vec  `yaml:"spawn_extent"`         // full width of the uniform spawn box per axis, centered on 0
	InitialSpeedSpread float64 `yaml:"initial_speed_spread"` // full width of the uniform initial velocity per axis

	ExpectedAgents int `yaml:"expected_agents"` // 0 = no check; otherwise must equal the circle count
	Workers        int `yaml:"workers"`         // <= 1 runs the per-agent loop inline
}

// DefaultSteerConfig returns the reference steering parameters.
func DefaultSteerConfig() SteerConfig {
	return SteerConfig{
		MaxSpeed:            0.5,
		MaxForce:            0.05,
		ArriveRadius:        10,
		FleeRadius:          5,
		FleeForceMultiplier: 2.5,
		SpawnExtent:         r3.Vec{X: 120, Y: 70, Z: 70},
		InitialSpeedSpread:  1,
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidArgument.
func (c SteerConfig) Validate() error {
	switch {
	case c.MaxSpeed <= 0:
		return fmt.Errorf("max speed %v must be > 0: %w", c.MaxSpeed, ErrInvalidArgument)
	case c.MaxForce <= 0:
		return fmt.Errorf("max force %v must be > 0: %w", c.MaxForce, ErrInvalidArgument)
	case c.ArriveRadius <= 0:
		return fmt.Errorf("arrive radius %v must be > 0: %w", c.ArriveRadius, ErrInvalidArgument)
	case c.FleeRadius < 0:
		return fmt.Errorf("flee radius %v must be >= 0: %w", c.FleeRadius, ErrInvalidArgument)
	case c.FleeForceMultiplier < 0:
		return fmt.Errorf("flee force multiplier %v must be >= 0: %w", c.FleeForceMultiplier, ErrInvalidArgument)
	case c.SpawnExtent.X < 0 || c.SpawnExtent.Y < 0 || c.SpawnExtent.Z < 0:
		return fmt.Errorf("spawn extent %v must be non-negative: %w", c.SpawnExtent, ErrInvalidArgument)
	case c.InitialSpeedSpread < 0:
		return fmt.Errorf("initial speed spread %v must be >= 0: %w", c.InitialSpeedSpread, ErrInvalidArgument)
	case c.ExpectedAgents < 0:
		return fmt.Errorf("expected agents %d must be >= 0: %w", c.ExpectedAgents, ErrInvalidArgument)
	}
	return nil
}
