// Package sim provides the shared data model and configuration for swarmpack.
//
// # Reading Guide
//
// Start with these files to understand the data flow:
//   - geom.go: Point2D samples, packed Circles and per-agent Transforms
//   - config.go: PackConfig and SteerConfig records with their reference defaults
//   - rng.go: SimulationKey and PartitionedRNG, the only random sources in the module
//
// # Architecture
//
// The sim package holds plain types; behavior lives in sub-packages:
//   - sim/pack/: CirclePacker (randomized placement, coarse growth, fine relaxation)
//   - sim/steer/: SteeringSimulator (arrive + flee forces, explicit integration)
//   - sim/sample/: point-cloud producers (text rasterizer, point files)
//   - sim/pointer/: repulsor sources (fixed, shared, perlin wander, ray projection)
//   - sim/trace/: packing and per-tick records with summaries
//
// Packing runs once, to completion, before the simulator is constructed. The
// simulator then advances one step per external tick.
package sim
