package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey is the master seed of a run. Two runs with the same key and
// configuration produce the same processes at the same ticks.
type SimulationKey int64

// NewSimulationKey wraps a seed.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// Subsystem names an independent random stream derived from the master seed.
type Subsystem string

const (
	// SubsystemWorkload drives process shapes: service time, IO count, trigger
	// instants and device kinds. Seeded with the master seed itself.
	SubsystemWorkload Subsystem = "workload"

	// SubsystemArrival drives the per-tick arrival draw. Separate from the shape
	// stream so the arrival probability does not change which shapes are drawn.
	SubsystemArrival Subsystem = "arrival"
)

// PartitionedRNG hands out one *rand.Rand per subsystem, each seeded from the
// master key, so draws on one stream never shift another.
//
// Thread-safety: NOT thread-safe. Owned by a single generator.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[Subsystem]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG with no streams opened yet.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{key: key, streams: make(map[Subsystem]*rand.Rand)}
}

// ForSubsystem returns the stream for name, creating it on first use.
// Repeated calls return the same instance.
func (p *PartitionedRNG) ForSubsystem(name Subsystem) *rand.Rand {
	if rng, ok := p.streams[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(p.seedFor(name)))
	p.streams[name] = rng
	return rng
}

// seedFor is the master seed for the workload stream and the master seed
// XOR fnv1a64(name) for every other stream.
func (p *PartitionedRNG) seedFor(name Subsystem) int64 {
	if name == SubsystemWorkload {
		return int64(p.key)
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return int64(p.key) ^ int64(h.Sum64())
}
