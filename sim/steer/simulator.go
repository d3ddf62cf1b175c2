// Package steer drives one autonomous agent per packed circle.
//
// Each tick every agent feels two clamped steering forces: arrive, toward
// its circle center with speed eased inside ArriveRadius, and flee, active
// only inside FleeRadius of the repulsor. The flee force is computed toward
// the repulsor, clamped, amplified and then subtracted, so it pushes away.
// Integration is explicit with a unit step; velocity itself is never clamped.
package steer

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/inference-sim/swarmpack/sim"
	"github.com/inference-sim/swarmpack/sim/trace"
)

// minChunk is the smallest per-worker slice of agents worth a goroutine.
const minChunk = 256

// RepulsorSource supplies the repulsor position. Simulator.TickFrom reads
// it exactly once per tick.
type RepulsorSource interface {
	Repulsor() r3.Vec
}

// Steering is the force breakdown of one agent for one tick.
type Steering struct {
	Arrive       r3.Vec // clamped to MaxForce
	Flee         r3.Vec // clamped to MaxForce, before FleeForceMultiplier; points toward the repulsor
	Acceleration r3.Vec // Arrive - Flee*FleeForceMultiplier
	Fleeing      bool   // repulsor inside FleeRadius
}

// Simulator owns the agent state. Agent i is bound to circles[i] for its
// whole lifetime. Not safe for concurrent use; Tick may fan out internally.
type Simulator struct {
	cfg     sim.SteerConfig
	circles []sim.Circle
	pos     []r3.Vec
	vel     []r3.Vec
	fleeing []bool
	ticks   int64
	trace   *trace.SimulationTrace
}

// NewSimulator spawns one agent per circle at a random position inside
// SpawnExtent with a random velocity inside InitialSpeedSpread.
func NewSimulator(circles []sim.Circle, cfg sim.SteerConfig, rng *rand.Rand) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("steer config: %w", err)
	}
	if rng == nil {
		return nil, fmt.Errorf("steer: nil random source: %w", sim.ErrInvalidArgument)
	}
	if cfg.ExpectedAgents != 0 && cfg.ExpectedAgents != len(circles) {
		return nil, fmt.Errorf("steer: %d circles for %d expected agents: %w",
			len(circles), cfg.ExpectedAgents, sim.ErrInvalidArgument)
	}

	n := len(circles)
	s := &Simulator{
		cfg:     cfg,
		circles: make([]sim.Circle, n),
		pos:     make([]r3.Vec, n),
		vel:     make([]r3.Vec, n),
		fleeing: make([]bool, n),
	}
	copy(s.circles, circles)
	for i := range s.pos {
		s.pos[i] = r3.Vec{
			X: sim.Spread(rng, cfg.SpawnExtent.X),
			Y: sim.Spread(rng, cfg.SpawnExtent.Y),
			Z: sim.Spread(rng, cfg.SpawnExtent.Z),
		}
		s.vel[i] = r3.Vec{
			X: sim.Spread(rng, cfg.InitialSpeedSpread),
			Y: sim.Spread(rng, cfg.InitialSpeedSpread),
			Z: sim.Spread(rng, cfg.InitialSpeedSpread),
		}
	}
	logrus.Infof("steer: spawned %d agents", n)
	return s, nil
}

// WithTrace attaches a trace that receives TickRecords.
func (s *Simulator) WithTrace(st *trace.SimulationTrace) *Simulator {
	s.trace = st
	return s
}

// Count returns the number of agents, equal to the number of circles.
func (s *Simulator) Count() int { return len(s.pos) }

// Ticks returns the number of completed ticks.
func (s *Simulator) Ticks() int64 { return s.ticks }

// Position returns the position of agent i.
func (s *Simulator) Position(i int) r3.Vec { return s.pos[i] }

// Velocity returns the velocity of agent i.
func (s *Simulator) Velocity(i int) r3.Vec { return s.vel[i] }

// Target returns the circle agent i is bound to.
func (s *Simulator) Target(i int) sim.Circle { return s.circles[i] }

// TickFrom reads src once and advances one tick with that position.
func (s *Simulator) TickFrom(src RepulsorSource) {
	s.Tick(src.Repulsor())
}

// Tick advances every agent by one step against the same repulsor position.
// The inline path does not allocate.
func (s *Simulator) Tick(repulsor r3.Vec) {
	n := len(s.pos)
	workers := s.cfg.Workers
	if workers > 1 && n >= 2*minChunk {
		chunk := max((n+workers-1)/workers, minChunk)
		var g errgroup.Group
		g.SetLimit(workers)
		for lo := 0; lo < n; lo += chunk {
			hi := min(lo+chunk, n)
			g.Go(func() error {
				s.update(lo, hi, repulsor)
				return nil
			})
		}
		_ = g.Wait() // workers never fail
	} else {
		s.update(0, n, repulsor)
	}

	if s.trace.WantsTick(s.ticks) {
		s.trace.RecordTick(s.record())
	}
	s.ticks++
}

// update integrates agents [lo, hi). Ranges handed to concurrent calls never overlap.
func (s *Simulator) update(lo, hi int, repulsor r3.Vec) {
	for i := lo; i < hi; i++ {
		st := s.Steering(i, repulsor)
		s.pos[i] = r3.Add(s.pos[i], s.vel[i])
		s.vel[i] = r3.Add(s.vel[i], st.Acceleration)
		s.fleeing[i] = st.Fleeing
	}
}

// Steering computes the forces agent i would feel against repulsor, without
// mutating state. A zero-length direction yields a zero force.
func (s *Simulator) Steering(i int, repulsor r3.Vec) Steering {
	var st Steering
	pos, vel := s.pos[i], s.vel[i]

	desired := r3.Sub(s.circles[i].Center(), pos)
	if d := r3.Norm(desired); d > 0 {
		speed := s.cfg.MaxSpeed
		if d < s.cfg.ArriveRadius {
			speed = d / s.cfg.ArriveRadius * s.cfg.MaxSpeed
		}
		desired = r3.Scale(speed/d, desired)
		st.Arrive = clampLength(r3.Sub(desired, vel), s.cfg.MaxForce)
	}

	toward := r3.Sub(repulsor, pos)
	if d := r3.Norm(toward); d < s.cfg.FleeRadius {
		st.Fleeing = true
		if d > 0 {
			toward = r3.Scale(s.cfg.MaxSpeed/d, toward)
			st.Flee = clampLength(r3.Sub(toward, vel), s.cfg.MaxForce)
		}
	}

	st.Acceleration = r3.Sub(st.Arrive, r3.Scale(s.cfg.FleeForceMultiplier, st.Flee))
	return st
}

// Transform returns the display transform of agent i, which must be in [0, Count()).
func (s *Simulator) Transform(i int) sim.Transform {
	p := s.pos[i]
	return sim.Transform{X: p.X, Y: p.Y, Z: p.Z, Scale: s.circles[i].R}
}

// TransformAt is Transform with a bounds check.
func (s *Simulator) TransformAt(i int) (sim.Transform, error) {
	if i < 0 || i >= len(s.pos) {
		return sim.Transform{}, fmt.Errorf("steer: agent %d out of range [0, %d): %w", i, len(s.pos), sim.ErrInvalidArgument)
	}
	return s.Transform(i), nil
}

// Transforms writes every agent transform into dst, reusing its capacity,
// and returns it. Slot i always holds agent i.
func (s *Simulator) Transforms(dst []sim.Transform) []sim.Transform {
	dst = dst[:0]
	for i := range s.pos {
		dst = append(dst, s.Transform(i))
	}
	return dst
}

func (s *Simulator) record() trace.TickRecord {
	rec := trace.TickRecord{Tick: s.ticks}
	if len(s.pos) == 0 {
		return rec
	}
	var sum float64
	for i := range s.pos {
		d := r3.Norm(r3.Sub(s.circles[i].Center(), s.pos[i]))
		sum += d
		rec.MaxGoalDistance = math.Max(rec.MaxGoalDistance, d)
		rec.MaxSpeed = math.Max(rec.MaxSpeed, r3.Norm(s.vel[i]))
		if s.fleeing[i] {
			rec.Fleeing++
		}
	}
	rec.MeanGoalDistance = sum / float64(len(s.pos))
	return rec
}

// clampLength scales v down to length limit when longer.
func clampLength(v r3.Vec, limit float64) r3.Vec {
	if n := r3.Norm(v); n > limit {
		return r3.Scale(limit/n, v)
	}
	return v
}
