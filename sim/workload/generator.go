package workload

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/rodrigo1808/process-scheduling-simulator/sim"
)

// PIDSource hands out pids that are unique among live processes.
// *sim.Registry satisfies it.
type PIDSource interface {
	NextPID() int
	Full() bool
}

// Generator is the random workload collaborator. Each tick it produces at
// most one process with probability ArrivalProbability. Implements sim.ArrivalSource.
// Deterministic given the same configuration and seed.
type Generator struct {
	cfg        sim.WorkloadConfig
	devices    sim.DeviceConfig
	pids       PIDSource
	arrivalRNG *rand.Rand
	shapeRNG   *rand.Rand
}

// NewGenerator creates a Generator from the workload and device sections of cfg.
// RNG streams are derived from cfg.Workload.Seed.
func NewGenerator(cfg sim.Config, pids PIDSource) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workload config: %w", err)
	}
	if pids == nil {
		return nil, fmt.Errorf("pid source must not be nil")
	}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Workload.Seed))
	return &Generator{
		cfg:        cfg.Workload,
		devices:    cfg.Devices,
		pids:       pids,
		arrivalRNG: rng.ForSubsystem(sim.SubsystemArrival),
		shapeRNG:   rng.ForSubsystem(sim.SubsystemWorkload),
	}, nil
}

// Arrivals draws the per-tick arrival. Returns nil when the draw fails or the
// process table is full.
func (g *Generator) Arrivals(tick int64) []*sim.Process {
	if g.arrivalRNG.Float64() >= g.cfg.ArrivalProbability {
		return nil
	}
	if g.pids.Full() {
		logrus.Debugf("[tick %07d] arrival skipped: process table full", tick)
		return nil
	}
	return []*sim.Process{g.NewProcess()}
}

// NewProcess synthesizes one process: service time uniform in
// [ServiceTimeMin, ServiceTimeMax], up to MaxIORequests IO requests with
// distinct, strictly increasing trigger instants in [1, service_time-1].
func (g *Generator) NewProcess() *sim.Process {
	span := g.cfg.ServiceTimeMax - g.cfg.ServiceTimeMin + 1
	service := g.cfg.ServiceTimeMin + g.shapeRNG.Int63n(span)

	maxIO := int64(g.cfg.MaxIORequests)
	if service-1 < maxIO {
		maxIO = service - 1
	}
	n := 0
	if maxIO > 0 {
		n = g.shapeRNG.Intn(int(maxIO) + 1)
	}

	triggers := sampleTriggers(g.shapeRNG, n, service)
	reqs := make([]sim.IORequest, n)
	for i, trigger := range triggers {
		kind := sim.DeviceKinds[g.shapeRNG.Intn(len(sim.DeviceKinds))]
		reqs[i] = sim.IORequest{
			Device:         kind,
			Duration:       g.devices.Duration(kind),
			TriggerInstant: trigger,
		}
	}
	return sim.NewProcess(g.pids.NextPID(), 0, service, reqs)
}

// sampleTriggers picks n distinct instants from [1, service-1], ascending.
// Floyd's algorithm: memory is O(n) whatever the service time.
func sampleTriggers(rng *rand.Rand, n int, service int64) []int64 {
	if n == 0 {
		return nil
	}
	upper := service - 1
	chosen := make(map[int64]bool, n)
	triggers := make([]int64, 0, n)
	for j := upper - int64(n) + 1; j <= upper; j++ {
		t := rng.Int63n(j) + 1
		if chosen[t] {
			t = j
		}
		chosen[t] = true
		triggers = append(triggers, t)
	}
	sort.Slice(triggers, func(i, j int) bool { return triggers[i] < triggers[j] })
	return triggers
}
