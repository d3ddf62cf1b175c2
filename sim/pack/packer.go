// Package pack fills a 2D point cloud with non-overlapping circles.
//
// Packing runs in two phases. Scatter places InitialRadius circles at random
// samples in batches, closing each batch with a coarse growth pass, until a
// batch exhausts its attempts budget. Relax then re-arms every circle and
// grows all of them in FineGrowthStep increments until none can grow.
//
// Every overlap check is a brute-force scan over the accepted circles, so a
// placement attempt and a growth pass cost O(n) and O(n^2). That is fine for
// a few thousand circles and is the known scaling ceiling.
package pack

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/swarmpack/sim"
	"github.com/inference-sim/swarmpack/sim/trace"
)

// Stats counts the work done by a Packer.
type Stats struct {
	Batches      int
	Attempts     int
	Accepted     int
	Rejected     int
	CoarsePasses int
	FinePasses   int
	MaxRadius    float64 // growth cap in effect
}

// Packer holds the mutable circle set of one packing run.
// Not safe for concurrent use.
type Packer struct {
	cfg       sim.PackConfig
	rng       *rand.Rand
	trace     *trace.SimulationTrace
	circles   []sim.Circle
	maxRadius float64
	stats     Stats
}

// NewPacker validates cfg and returns a Packer drawing from rng.
// rng must be owned by the caller and not shared with other goroutines.
func NewPacker(cfg sim.PackConfig, rng *rand.Rand) (*Packer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pack config: %w", err)
	}
	if rng == nil {
		return nil, fmt.Errorf("pack: nil random source: %w", sim.ErrInvalidArgument)
	}
	return &Packer{cfg: cfg, rng: rng}, nil
}

// WithTrace attaches a trace that receives one BatchRecord per phase-1 batch.
func (p *Packer) WithTrace(st *trace.SimulationTrace) *Packer {
	p.trace = st
	return p
}

// Pack runs both phases over points and returns the circles in acceptance order.
// An empty point set yields no circles unless RequireCircles is set.
func Pack(points []sim.Point2D, cfg sim.PackConfig, rng *rand.Rand) ([]sim.Circle, error) {
	p, err := NewPacker(cfg, rng)
	if err != nil {
		return nil, err
	}
	return p.Pack(points)
}

// Pack runs Scatter then Relax and returns the resulting circles.
func (p *Packer) Pack(points []sim.Point2D) ([]sim.Circle, error) {
	if err := p.Scatter(points); err != nil {
		return nil, err
	}
	p.Relax()
	return p.Circles(), nil
}

// Scatter runs phase 1: randomized placement interleaved with coarse growth.
// It returns only once a batch exceeds AttemptsPerBatchLimit.
func (p *Packer) Scatter(points []sim.Point2D) error {
	if len(points) == 0 {
		if p.cfg.RequireCircles {
			return fmt.Errorf("pack: empty point set: %w", sim.ErrInvalidArgument)
		}
		logrus.Debug("pack: empty point set, no circles")
		return nil
	}
	for i, pt := range points {
		if !sim.IsFinite(pt) {
			return fmt.Errorf("pack: point %d is not finite (%v, %v): %w", i, pt.X, pt.Y, sim.ErrInvalidArgument)
		}
	}
	p.maxRadius = growthCap(points, p.cfg)
	p.stats.MaxRadius = p.maxRadius

	for batch := 0; ; batch++ {
		accepted, attempts := 0, 0
		saturated := false
		for accepted < p.cfg.BatchSize {
			attempts++
			if p.place(points) {
				accepted++
			}
			if attempts > p.cfg.AttemptsPerBatchLimit {
				saturated = true
				break
			}
		}
		growing := p.grow(p.cfg.InitialRadius)

		p.stats.Batches++
		p.stats.Attempts += attempts
		p.stats.Accepted += accepted
		p.stats.Rejected += attempts - accepted
		p.stats.CoarsePasses++
		logrus.Debugf("pack: batch %d accepted=%d attempts=%d circles=%d growing=%d",
			batch, accepted, attempts, len(p.circles), growing)
		if p.trace.WantsBatches() {
			p.trace.RecordBatch(trace.BatchRecord{
				Batch:     batch,
				Accepted:  accepted,
				Attempts:  attempts,
				Circles:   len(p.circles),
				Growing:   growing,
				Saturated: saturated,
			})
		}

		if saturated {
			break
		}
	}
	logrus.Infof("pack: scatter finished with %d circles after %d batches", len(p.circles), p.stats.Batches)
	return nil
}

// Relax runs phase 2: every circle is re-armed and grown by FineGrowthStep
// until no circle is growing.
func (p *Packer) Relax() {
	for i := range p.circles {
		p.circles[i].Growing = true
	}
	for growing := len(p.circles); growing > 0; {
		growing = p.grow(p.cfg.FineGrowthStep)
		p.stats.FinePasses++
	}
	logrus.Infof("pack: relax finished after %d passes", p.stats.FinePasses)
}

// Circles returns a copy of the current circle set in acceptance order.
func (p *Packer) Circles() []sim.Circle {
	out := make([]sim.Circle, len(p.circles))
	copy(out, p.circles)
	return out
}

// Stats returns the counters accumulated so far.
func (p *Packer) Stats() Stats {
	return p.stats
}

// place draws one candidate and accepts it if it clears every existing circle
// at InitialRadius. The scan stops at the first conflict.
func (p *Packer) place(points []sim.Point2D) bool {
	pt := points[p.rng.Intn(len(points))]
	candidate := sim.Circle{
		X:       pt.X,
		Y:       pt.Y,
		Z:       sim.Spread(p.rng, p.cfg.DepthJitter),
		R:       p.cfg.InitialRadius,
		Growing: true,
	}
	for _, other := range p.circles {
		if candidate.DistanceTo(other) < p.cfg.InitialRadius+other.R {
			return false
		}
	}
	p.circles = append(p.circles, candidate)
	return true
}

// grow runs one growth pass with the given step and returns how many circles
// are still growing. Radii update in place, so later circles in the pass see
// the already-grown earlier ones.
func (p *Packer) grow(step float64) int {
	growing := 0
	for i := range p.circles {
		self := &p.circles[i]
		if !self.Growing {
			continue
		}
		if self.R+step > p.maxRadius {
			self.Growing = false
			continue
		}
		for j := range p.circles {
			if i == j {
				continue
			}
			other := p.circles[j]
			if self.DistanceTo(other) < self.R+other.R+step {
				self.Growing = false
				break
			}
		}
		if self.Growing {
			self.R += step
			growing++
		}
	}
	return growing
}

// growthCap returns the configured MaxRadius, or the largest possible distance
// between two centers when unset: the bounding diagonal of the cloud extended
// by the depth jitter. Any circle with a neighbour is blocked before reaching
// that cap, so it only stops a circle that is alone. Never below InitialRadius.
func growthCap(points []sim.Point2D, cfg sim.PackConfig) float64 {
	if cfg.MaxRadius > 0 {
		return math.Max(cfg.MaxRadius, cfg.InitialRadius)
	}
	lo, hi, _ := sim.Bounds(points)
	diag := math.Hypot(hi.X-lo.X, hi.Y-lo.Y)
	return math.Max(math.Hypot(diag, cfg.DepthJitter), cfg.InitialRadius)
}
