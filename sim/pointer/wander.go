package pointer

import (
	"github.com/aquilax/go-perlin"
	"gonum.org/v1/gonum/spatial/r3"
)

// WanderConfig shapes the perlin drift of a Wander source.
type WanderConfig struct {
	AmplitudeX float64 `yaml:"amplitude_x"` // noise-to-world scale on x
	AmplitudeY float64 `yaml:"amplitude_y"` // noise-to-world scale on y
	Frequency  float64 `yaml:"frequency"`   // noise distance travelled per read
	Alpha      float64 `yaml:"alpha"`       // perlin weight falloff per octave
	Beta       float64 `yaml:"beta"`        // perlin frequency growth per octave
	Octaves    int32   `yaml:"octaves"`
}

// DefaultWanderConfig sweeps roughly the width of a five-letter word.
func DefaultWanderConfig() WanderConfig {
	return WanderConfig{
		AmplitudeX: 60,
		AmplitudeY: 25,
		Frequency:  0.01,
		Alpha:      2,
		Beta:       2,
		Octaves:    3,
	}
}

// Wander stands in for a human pointer: every read advances along smooth
// perlin noise on the plane z=0. Not safe for concurrent use.
type Wander struct {
	cfg    WanderConfig
	noiseX *perlin.Perlin
	noiseY *perlin.Perlin
	t      float64
}

// NewWander seeds independent noise for each axis from seed.
func NewWander(cfg WanderConfig, seed int64) *Wander {
	return &Wander{
		cfg:    cfg,
		noiseX: perlin.NewPerlin(cfg.Alpha, cfg.Beta, cfg.Octaves, seed),
		noiseY: perlin.NewPerlin(cfg.Alpha, cfg.Beta, cfg.Octaves, seed+1), // offset seed for y noise
	}
}

// Repulsor implements steer.RepulsorSource.
func (w *Wander) Repulsor() r3.Vec {
	x := w.t * w.cfg.Frequency
	w.t++
	return r3.Vec{
		X: w.noiseX.Noise1D(x) * w.cfg.AmplitudeX,
		Y: w.noiseY.Noise1D(x) * w.cfg.AmplitudeY,
	}
}
