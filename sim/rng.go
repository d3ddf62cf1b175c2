package sim

import (
	"hash/fnv"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible run.
// Two runs with the same SimulationKey, the same input points and identical
// configuration MUST produce identical circles and trajectories.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemPacking is the RNG subsystem for sample selection and depth jitter.
	// Uses the master seed directly so a packing seed maps 1:1 to its output.
	SubsystemPacking = "packing"

	// SubsystemAgents is the RNG subsystem for agent spawn positions and velocities.
	SubsystemAgents = "agents"

	// SubsystemPointer is the RNG subsystem for synthetic repulsor sources.
	SubsystemPointer = "pointer"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem,
// so drawing more agents never shifts the packing sequence and vice versa.
//
// Derivation formula:
//   - For SubsystemPacking: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	rng := rand.New(rand.NewSource(p.SeedFor(name)))
	p.subsystems[name] = rng
	return rng
}

// SeedFor returns the derived seed of a subsystem without creating its RNG.
// Used by collaborators that own their own generator (e.g. perlin noise).
func (p *PartitionedRNG) SeedFor(name string) int64 {
	if name == SubsystemPacking {
		return int64(p.key)
	}
	return int64(p.key) ^ fnv1a64(name)
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// Spread returns a uniform value in [-width/2, width/2).
func Spread(rng *rand.Rand, width float64) float64 {
	return width * (rng.Float64() - 0.5)
}
