package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rodrigo1808/process-scheduling-simulator/sim"
	"github.com/rodrigo1808/process-scheduling-simulator/sim/trace"
	"github.com/rodrigo1808/process-scheduling-simulator/sim/workload"
)

var (
	// Simulation config flags; each overrides the config file only when set
	configPath         string  // YAML config file
	seed               int64   // Seed for random workload generation
	logLevel           string  // Log verbosity level
	queueCapacity      int     // Capacity of HIGH, LOW and every device waiting queue
	quantum            int64   // CPU ticks before preemption
	diskDuration       int64   // Disk IO service time
	tapeDuration       int64   // Tape IO service time
	printerDuration    int64   // Printer IO service time
	arrivalProbability float64 // Per-tick chance of a new process
	serviceTimeMin     int64   // Min generated service time
	serviceTimeMax     int64   // Max generated service time
	maxIORequests      int     // Max IO requests per generated process
	registryCapacity   int     // Max live processes

	// Workload selection
	scenarioPath string // YAML scenario replacing the random generator
	presetName   string // Built-in scenario replacing the random generator

	// Run output
	simulationHorizon int64  // Total simulation time (in ticks)
	snapshotsPath     string // JSON-lines file receiving one snapshot per tick
	traceLevel        string // Transition trace verbosity
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "procsim",
	Short: "Tick-driven simulator for a two-level feedback CPU scheduler with IO devices",
}

// runCmd executes the simulation using parameters from the config file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the scheduling simulation to a fixed horizon and print a report",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		s, err := buildSimulator(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		s.Horizon = simulationHorizon
		s.Trace, err = newTrace(traceLevel)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		var snapshots *snapshotWriter
		if snapshotsPath != "" {
			snapshots, err = newSnapshotWriter(snapshotsPath)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			s.Observer = snapshots.Observe
		}

		logrus.Infof("Starting simulation: horizon=%d ticks, quantum=%d, queue capacity=%d",
			s.Horizon, s.Config.Scheduler.Quantum, s.Config.Queue.Capacity)
		startTime := time.Now()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := s.RunContext(ctx); err != nil {
			logrus.Warnf("Simulation stopped early: %v", err)
		}

		if snapshots != nil {
			if err := snapshots.Close(); err != nil {
				logrus.Errorf("Writing snapshots: %v", err)
			}
		}
		printReport(os.Stdout, s)
		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// newTrace returns the transition trace for level, or nil when tracing is off.
func newTrace(level string) (*trace.SimulationTrace, error) {
	if !trace.IsValidTraceLevel(level) {
		return nil, fmt.Errorf("invalid trace level %q; valid: none, transitions", level)
	}
	if level == "" || trace.TraceLevel(level) == trace.TraceLevelNone {
		return nil, nil
	}
	return trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevel(level)}), nil
}

// buildSimulator assembles a simulator from the config file, flag overrides and
// the selected workload source.
func buildSimulator(cmd *cobra.Command) (*sim.Simulator, error) {
	cfg, err := loadSimConfig(configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return nil, err
	}
	applyFlagOverrides(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	registry := sim.NewRegistry(cfg.Registry.Capacity)
	source, err := newArrivalSource(cfg, registry)
	if err != nil {
		return nil, err
	}
	return sim.NewSimulator(cfg, registry, source)
}

// applyFlagOverrides copies explicitly set flags into cfg. Flags left at their
// defaults never overwrite values from the config file.
func applyFlagOverrides(cmd *cobra.Command, cfg *sim.Config) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Workload.Seed = seed
	}
	if flags.Changed("queue-capacity") {
		cfg.Queue.Capacity = queueCapacity
	}
	if flags.Changed("quantum") {
		cfg.Scheduler.Quantum = quantum
	}
	if flags.Changed("disk-duration") {
		cfg.Devices.DiskDuration = diskDuration
	}
	if flags.Changed("tape-duration") {
		cfg.Devices.TapeDuration = tapeDuration
	}
	if flags.Changed("printer-duration") {
		cfg.Devices.PrinterDuration = printerDuration
	}
	if flags.Changed("arrival-probability") {
		cfg.Workload.ArrivalProbability = arrivalProbability
	}
	if flags.Changed("service-time-min") {
		cfg.Workload.ServiceTimeMin = serviceTimeMin
	}
	if flags.Changed("service-time-max") {
		cfg.Workload.ServiceTimeMax = serviceTimeMax
	}
	if flags.Changed("max-io-requests") {
		cfg.Workload.MaxIORequests = maxIORequests
	}
	if flags.Changed("registry-capacity") {
		cfg.Registry.Capacity = registryCapacity
	}
}

// newArrivalSource picks the workload: a scenario file, a built-in preset, or
// the random generator drawing pids from registry.
func newArrivalSource(cfg sim.Config, registry *sim.Registry) (sim.ArrivalSource, error) {
	if scenarioPath != "" && presetName != "" {
		return nil, fmt.Errorf("--scenario and --preset are mutually exclusive")
	}
	var spec *workload.ScenarioSpec
	var err error
	switch {
	case scenarioPath != "":
		spec, err = workload.LoadScenario(scenarioPath)
	case presetName != "":
		spec, err = workload.Preset(presetName)
	default:
		gen, err := workload.NewGenerator(cfg, registry)
		if err != nil {
			return nil, err
		}
		return gen, nil
	}
	if err != nil {
		return nil, err
	}
	src, err := spec.Source(cfg.Devices)
	if err != nil {
		return nil, err
	}
	logrus.Infof("Replaying scenario %q (%d processes)", spec.Name, len(spec.Processes))
	return src, nil
}

// addSimFlags registers the flags shared by run and serve.
func addSimFlags(cmd *cobra.Command) {
	defaults := sim.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&configPath, "config", defaultsFilePath, "Path to YAML simulation config")
	f.StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	f.Int64Var(&seed, "seed", defaults.Workload.Seed, "Seed for random workload generation")

	f.IntVar(&queueCapacity, "queue-capacity", defaults.Queue.Capacity, "Capacity of HIGH, LOW and every device waiting queue")
	f.Int64Var(&quantum, "quantum", defaults.Scheduler.Quantum, "CPU ticks a process may run before preemption")
	f.Int64Var(&diskDuration, "disk-duration", defaults.Devices.DiskDuration, "Disk IO service time (ticks)")
	f.Int64Var(&tapeDuration, "tape-duration", defaults.Devices.TapeDuration, "Tape IO service time (ticks)")
	f.Int64Var(&printerDuration, "printer-duration", defaults.Devices.PrinterDuration, "Printer IO service time (ticks)")
	f.Float64Var(&arrivalProbability, "arrival-probability", defaults.Workload.ArrivalProbability, "Per-tick probability of a new process")
	f.Int64Var(&serviceTimeMin, "service-time-min", defaults.Workload.ServiceTimeMin, "Min generated service time (ticks)")
	f.Int64Var(&serviceTimeMax, "service-time-max", defaults.Workload.ServiceTimeMax, "Max generated service time (ticks)")
	f.IntVar(&maxIORequests, "max-io-requests", defaults.Workload.MaxIORequests, "Max IO requests per generated process (0-3)")
	f.IntVar(&registryCapacity, "registry-capacity", defaults.Registry.Capacity, "Max live processes")

	f.StringVar(&scenarioPath, "scenario", "", "YAML scenario file replacing the random generator")
	f.StringVar(&presetName, "preset", "", "Built-in scenario replacing the random generator (cpu-bound, disk-round-trip, burst, mixed-io)")
}

// init sets up CLI flags and subcommands
func init() {
	addSimFlags(runCmd)
	runCmd.Flags().Int64Var(&simulationHorizon, "horizon", 1000, "Total simulation horizon (in ticks)")
	runCmd.Flags().StringVar(&snapshotsPath, "snapshots", "", "Write one JSON snapshot per tick to this file")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", string(trace.TraceLevelNone), "Transition tracing: none, or transitions to record and summarize every process transition")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
