package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigo1808/process-scheduling-simulator/sim"
	"github.com/rodrigo1808/process-scheduling-simulator/sim/trace"
	"github.com/rodrigo1808/process-scheduling-simulator/sim/workload"
)

// newGeneratedSimulator wires a random Generator to a simulator sharing its registry.
func newGeneratedSimulator(t *testing.T, cfg sim.Config, horizon int64) *sim.Simulator {
	t.Helper()
	registry := sim.NewRegistry(cfg.Registry.Capacity)
	gen, err := workload.NewGenerator(cfg, registry)
	require.NoError(t, err)
	s, err := sim.NewSimulator(cfg, registry, gen)
	require.NoError(t, err)
	s.Horizon = horizon
	s.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelTransitions})
	return s
}

func stressConfig(seed int64) sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Workload.Seed = seed
	cfg.Workload.ArrivalProbability = 0.6
	cfg.Queue.Capacity = 3
	cfg.Registry.Capacity = 16
	return cfg
}

// TestSimulator_RandomWorkload_HoldsStructuralInvariants checks, at the end of
// every tick, that each live process sits in exactly one place, queues respect
// their capacity and CPU progress only moves forward.
func TestSimulator_RandomWorkload_HoldsStructuralInvariants(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 1234} {
		cfg := stressConfig(seed)
		s := newGeneratedSimulator(t, cfg, 2000)

		elapsed := make(map[int]int64)
		gone := make(map[int]bool)
		s.Observer = func(snap sim.Snapshot) {
			resident := snap.Resident()
			seen := make(map[int]bool, len(resident))
			for _, pid := range resident {
				require.False(t, seen[pid], "seed %d tick %d: pid %d in two places", seed, snap.Tick, pid)
				seen[pid] = true
				require.False(t, gone[pid], "seed %d tick %d: pid %d reappeared", seed, snap.Tick, pid)

				p, ok := s.Registry.Lookup(pid)
				require.True(t, ok, "seed %d tick %d: pid %d not registered", seed, snap.Tick, pid)
				require.GreaterOrEqual(t, p.ElapsedTime, elapsed[pid], "seed %d: pid %d elapsed went backwards", seed, pid)
				require.LessOrEqual(t, p.ElapsedTime, p.ServiceTime)
				require.Equal(t, len(p.IO), p.PendingIO)
				elapsed[pid] = p.ElapsedTime
			}
			require.Equal(t, s.Registry.Len(), len(resident), "seed %d tick %d: registry out of sync", seed, snap.Tick)

			for pid := range elapsed {
				if !seen[pid] {
					gone[pid] = true
					delete(elapsed, pid)
				}
			}

			capacity := cfg.Queue.Capacity
			require.LessOrEqual(t, len(snap.High), capacity)
			require.LessOrEqual(t, len(snap.Low), capacity)
			for _, d := range snap.Devices {
				require.LessOrEqual(t, len(d.Waiting), capacity)
				if d.InService != nil {
					require.Less(t, d.Progress, d.Duration)
				}
			}
			if snap.CPU.Running != nil {
				require.Less(t, snap.CPU.QuantumUsed, cfg.Scheduler.Quantum)
			}
		}

		s.Run()

		m := s.Metrics
		assert.Equal(t, int64(2000), m.Ticks)
		assert.Positive(t, m.Terminated, "seed %d", seed)

		admitted := make(map[int]bool)
		droppedAfterAdmission, drops := 0, 0
		for _, r := range s.Trace.Transitions {
			switch r.Kind {
			case trace.KindArrival:
				admitted[r.PID] = true
			case trace.KindDrop:
				drops++
				if admitted[r.PID] {
					droppedAfterAdmission++
				}
			}
		}
		assert.Equal(t, m.TotalDropped(), drops)
		assert.Equal(t, m.Arrivals, len(admitted))
		assert.Equal(t, m.Arrivals, m.Terminated+droppedAfterAdmission+s.Registry.Len(),
			"seed %d: every admitted process is live, terminated or dropped", seed)
	}
}

func TestSimulator_RandomWorkload_RoutingRules(t *testing.T) {
	s := newGeneratedSimulator(t, stressConfig(99), 3000)

	s.Run()

	summary := trace.Summarize(s.Trace)
	require.Positive(t, summary.ByKind[trace.KindPreempt])
	require.Positive(t, summary.ByKind[trace.KindIOComplete])
	for _, r := range s.Trace.Transitions {
		switch r.Kind {
		case trace.KindPreempt:
			assert.Equal(t, "low", r.To, "tick %d pid %d", r.Tick, r.PID)
		case trace.KindArrival:
			assert.Equal(t, "high", r.To)
		case trace.KindIOComplete:
			want := "high"
			if r.From == string(sim.DeviceDisk) {
				want = "low"
			}
			assert.Equal(t, want, r.To, "tick %d pid %d from %s", r.Tick, r.PID, r.From)
		case trace.KindSelect:
			if r.To == "cpu" {
				assert.Contains(t, []string{"high", "low"}, r.From)
			}
		}
	}
}

func TestSimulator_SameSeed_IdenticalRuns(t *testing.T) {
	// GIVEN two simulators built from the same configuration and seed
	a := newGeneratedSimulator(t, stressConfig(5), 1500)
	b := newGeneratedSimulator(t, stressConfig(5), 1500)

	// WHEN both run to the horizon
	a.Run()
	b.Run()

	// THEN their transition histories and metrics match exactly
	require.NotEmpty(t, a.Trace.Transitions)
	assert.Equal(t, a.Trace.Transitions, b.Trace.Transitions)
	assert.Equal(t, a.Metrics, b.Metrics)
	assert.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestSimulator_DifferentSeeds_Diverge(t *testing.T) {
	a := newGeneratedSimulator(t, stressConfig(5), 500)
	b := newGeneratedSimulator(t, stressConfig(6), 500)

	a.Run()
	b.Run()

	assert.NotEqual(t, a.Trace.Transitions, b.Trace.Transitions)
}

func TestSimulator_ScriptedScenario_MatchesHandBuiltTimeline(t *testing.T) {
	// GIVEN the disk round-trip preset loaded through the workload package
	cfg := sim.DefaultConfig()
	src, err := workload.ScenarioDiskRoundTrip().Source(cfg.Devices)
	require.NoError(t, err)
	s, err := sim.NewSimulator(cfg, nil, src)
	require.NoError(t, err)
	s.Horizon = 20

	// WHEN run to the horizon
	s.Run()

	// THEN the single process terminated at tick 14 after one disk trip
	assert.Equal(t, 1, s.Metrics.Terminated)
	assert.Equal(t, 1, s.Metrics.IOCompletions[sim.DeviceDisk])
	assert.Equal(t, int64(14), s.Metrics.Turnaround)
	assert.Equal(t, 1, s.Metrics.Preemptions)
}
