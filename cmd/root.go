package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/swarmpack/sim"
	"github.com/inference-sim/swarmpack/sim/pack"
	"github.com/inference-sim/swarmpack/sim/pointer"
	"github.com/inference-sim/swarmpack/sim/sample"
	"github.com/inference-sim/swarmpack/sim/steer"
	"github.com/inference-sim/swarmpack/sim/trace"
)

var (
	// Shared input flags
	configPath string // YAML run configuration
	seed       int64  // Master seed for packing, spawn and pointer RNGs
	logLevel   string // Log verbosity level
	text       string // Text to rasterize into the point cloud
	pointsPath string // CSV point file, overrides text
	outPath    string // Output file for sample/pack

	// Packing flags
	initialRadius float64 // Radius of new circles and coarse growth step
	batchSize     int     // Accepted circles per batch
	attemptsLimit int     // Placement attempts per batch before saturation
	fineStep      float64 // Growth step of the relaxation phase

	// Steering flags
	maxSpeed       float64 // Desired agent speed far from the goal
	maxForce       float64 // Per-tick steering force clamp
	arriveRadius   float64 // Ease-in distance to the goal
	fleeRadius     float64 // Repulsor activation distance
	fleeMultiplier float64 // Flee force amplification
	workers        int     // Goroutines per tick

	// Run flags
	ticks      int64  // Number of ticks to simulate
	framesPath string // CSV frame output
	frameEvery int64  // Write a frame every N ticks
	traceLevel string // Trace verbosity
	traceEvery int64  // Record every Nth tick
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "swarmpack",
	Short: "Circle packing of point clouds and steering of one agent per circle",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// sampleCmd writes the point cloud without packing it
var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Rasterize text into a CSV point cloud",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := resolveConfig(cmd)
		points, err := buildPoints(cfg)
		if err != nil {
			logrus.Fatalf("unable to build points; %v", err)
		}
		if err := withOutput(outPath, func(w io.Writer) error { return sample.Write(w, points) }); err != nil {
			logrus.Fatalf("unable to write points; %v", err)
		}
		logrus.Infof("Wrote %d points", len(points))
	},
}

// packCmd packs the point cloud and reports the circles
var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Pack the point cloud into non-overlapping circles",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := resolveConfig(cmd)
		rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed))
		points, circles, stats, err := packFromConfig(cfg, rng, nil)
		if err != nil {
			logrus.Fatalf("packing failed; %v", err)
		}
		printPackSummary(os.Stdout, len(points), circles, stats)
		if outPath == "" {
			return
		}
		if err := withOutput(outPath, func(w io.Writer) error { return writeCircles(w, circles) }); err != nil {
			logrus.Fatalf("unable to write circles; %v", err)
		}
	},
}

// runCmd packs, then simulates the agents against a wandering repulsor
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Pack the point cloud and run the steering simulation",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := resolveConfig(cmd)
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}
		opts := runOptions{
			ticks:      ticks,
			framesPath: framesPath,
			frameEvery: frameEvery,
			trace:      trace.TraceConfig{Level: trace.TraceLevel(traceLevel), TickEvery: traceEvery},
		}
		if err := runSimulation(cfg, opts, os.Stdout); err != nil {
			logrus.Fatalf("simulation failed; %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// resolveConfig loads --config (or defaults) and applies explicitly set flags on top.
func resolveConfig(cmd *cobra.Command) Config {
	cfg := DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = LoadConfig(configPath); err != nil {
			logrus.Fatalf("unable to read config; %v", err)
		}
	}
	applyFlags(cmd, &cfg)
	return cfg
}

// applyFlags overrides cfg only with flags the user set, so file values survive flag defaults.
func applyFlags(cmd *cobra.Command, cfg *Config) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("text") {
		cfg.Text = text
	}
	if flags.Changed("points") {
		cfg.Points = pointsPath
	}
	if flags.Changed("initial-radius") {
		cfg.Pack.InitialRadius = initialRadius
	}
	if flags.Changed("batch-size") {
		cfg.Pack.BatchSize = batchSize
	}
	if flags.Changed("attempts-limit") {
		cfg.Pack.AttemptsPerBatchLimit = attemptsLimit
	}
	if flags.Changed("fine-step") {
		cfg.Pack.FineGrowthStep = fineStep
	}
	if flags.Changed("max-speed") {
		cfg.Steer.MaxSpeed = maxSpeed
	}
	if flags.Changed("max-force") {
		cfg.Steer.MaxForce = maxForce
	}
	if flags.Changed("arrive-radius") {
		cfg.Steer.ArriveRadius = arriveRadius
	}
	if flags.Changed("flee-radius") {
		cfg.Steer.FleeRadius = fleeRadius
	}
	if flags.Changed("flee-multiplier") {
		cfg.Steer.FleeForceMultiplier = fleeMultiplier
	}
	if flags.Changed("workers") {
		cfg.Steer.Workers = workers
	}
}

// packFromConfig builds the point cloud and packs it with the packing RNG subsystem.
func packFromConfig(cfg Config, rng *sim.PartitionedRNG, st *trace.SimulationTrace) ([]sim.Point2D, []sim.Circle, pack.Stats, error) {
	points, err := buildPoints(cfg)
	if err != nil {
		return nil, nil, pack.Stats{}, err
	}
	logrus.Infof("Packing %d points with initial radius %v, batch %d, attempts %d",
		len(points), cfg.Pack.InitialRadius, cfg.Pack.BatchSize, cfg.Pack.AttemptsPerBatchLimit)

	p, err := pack.NewPacker(cfg.Pack, rng.ForSubsystem(sim.SubsystemPacking))
	if err != nil {
		return nil, nil, pack.Stats{}, err
	}
	circles, err := p.WithTrace(st).Pack(points)
	if err != nil {
		return nil, nil, pack.Stats{}, err
	}
	return points, circles, p.Stats(), nil
}

type runOptions struct {
	ticks      int64
	framesPath string
	frameEvery int64
	trace      trace.TraceConfig
}

// runSimulation packs, spawns the agents and ticks them against a wander repulsor.
func runSimulation(cfg Config, opts runOptions, stdout io.Writer) error {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed))
	st := trace.NewSimulationTrace(opts.trace)

	points, circles, stats, err := packFromConfig(cfg, rng, st)
	if err != nil {
		return err
	}
	printPackSummary(stdout, len(points), circles, stats)

	s, err := steer.NewSimulator(circles, cfg.Steer, rng.ForSubsystem(sim.SubsystemAgents))
	if err != nil {
		return err
	}
	s.WithTrace(st)
	src := pointer.NewWander(cfg.Pointer, rng.SeedFor(sim.SubsystemPointer))

	var frames *frameWriter
	if opts.framesPath != "" {
		file, err := os.Create(opts.framesPath)
		if err != nil {
			return fmt.Errorf("create frames file: %w", err)
		}
		defer func() {
			if closeErr := file.Close(); closeErr != nil {
				logrus.Errorf("Error closing file %s: %v", opts.framesPath, closeErr)
			}
		}()
		if frames, err = newFrameWriter(file); err != nil {
			return err
		}
	}

	transforms := make([]sim.Transform, 0, s.Count())
	for tick := int64(0); tick < opts.ticks; tick++ {
		s.TickFrom(src)
		if frames != nil && opts.frameEvery > 0 && tick%opts.frameEvery == 0 {
			transforms = s.Transforms(transforms)
			if err := frames.WriteFrame(tick, transforms); err != nil {
				return fmt.Errorf("write frame %d: %w", tick, err)
			}
		}
	}
	if frames != nil {
		if err := frames.Flush(); err != nil {
			return fmt.Errorf("flush frames: %w", err)
		}
	}

	printRunMetrics(stdout, s.Ticks(), trace.Summarize(st))
	return nil
}

// withOutput runs write against path, or stdout when path is empty.
func withOutput(path string, write func(io.Writer) error) error {
	if path == "" {
		return write(os.Stdout)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML run configuration")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "Seed for packing, spawn and pointer RNGs")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&text, "text", "CANDY", "Text to rasterize into the point cloud")
	rootCmd.PersistentFlags().StringVar(&pointsPath, "points", "", "CSV point file (x,y); overrides --text")

	sampleCmd.Flags().StringVar(&outPath, "out", "", "Output CSV file (default stdout)")
	packCmd.Flags().StringVar(&outPath, "out", "", "Output JSON file for circles")

	for _, c := range []*cobra.Command{packCmd, runCmd} {
		c.Flags().Float64Var(&initialRadius, "initial-radius", 0.18, "Radius of new circles and coarse growth step")
		c.Flags().IntVar(&batchSize, "batch-size", 100, "Accepted circles per batch before coarse growth")
		c.Flags().IntVar(&attemptsLimit, "attempts-limit", 500, "Placement attempts per batch before saturation")
		c.Flags().Float64Var(&fineStep, "fine-step", 0.001, "Growth step of the relaxation phase")
	}

	// Steering
	runCmd.Flags().Float64Var(&maxSpeed, "max-speed", 0.5, "Desired agent speed far from the goal")
	runCmd.Flags().Float64Var(&maxForce, "max-force", 0.05, "Per-tick steering force clamp")
	runCmd.Flags().Float64Var(&arriveRadius, "arrive-radius", 10, "Ease-in distance to the goal")
	runCmd.Flags().Float64Var(&fleeRadius, "flee-radius", 5, "Repulsor activation distance")
	runCmd.Flags().Float64Var(&fleeMultiplier, "flee-multiplier", 2.5, "Flee force amplification")
	runCmd.Flags().IntVar(&workers, "workers", 1, "Goroutines per tick")

	// Run
	runCmd.Flags().Int64Var(&ticks, "ticks", 600, "Number of ticks to simulate")
	runCmd.Flags().StringVar(&framesPath, "frames", "", "CSV file receiving agent transforms")
	runCmd.Flags().Int64Var(&frameEvery, "frame-every", 10, "Write a frame every N ticks")
	runCmd.Flags().StringVar(&traceLevel, "trace", "ticks", "Trace level (none, batches, ticks)")
	runCmd.Flags().Int64Var(&traceEvery, "trace-every", 1, "Record every Nth tick")

	rootCmd.AddCommand(sampleCmd, packCmd, runCmd)
}
