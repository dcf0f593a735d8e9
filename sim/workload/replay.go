package workload

import (
	"container/heap"

	"github.com/rodrigo1808/process-scheduling-simulator/sim"
)

type scriptedArrival struct {
	tick int64
	seq  int // insertion order, breaks ties between same-tick arrivals
	proc *sim.Process
}

// arrivalHeap implements heap.Interface and orders arrivals by tick, then insertion order.
type arrivalHeap []scriptedArrival

func (h arrivalHeap) Len() int { return len(h) }
func (h arrivalHeap) Less(i, j int) bool {
	if h[i].tick != h[j].tick {
		return h[i].tick < h[j].tick
	}
	return h[i].seq < h[j].seq
}
func (h arrivalHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *arrivalHeap) Push(x any) {
	*h = append(*h, x.(scriptedArrival))
}

func (h *arrivalHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// ScriptedSource replays a fixed set of processes, each released on its
// arrival tick. Implements sim.ArrivalSource.
type ScriptedSource struct {
	pending arrivalHeap
	seq     int
}

// NewScriptedSource creates an empty ScriptedSource.
func NewScriptedSource() *ScriptedSource {
	return &ScriptedSource{pending: make(arrivalHeap, 0)}
}

// Add schedules p to arrive at tick.
func (s *ScriptedSource) Add(tick int64, p *sim.Process) {
	heap.Push(&s.pending, scriptedArrival{tick: tick, seq: s.seq, proc: p})
	s.seq++
}

// Arrivals returns every process due at or before tick, in scheduled order.
func (s *ScriptedSource) Arrivals(tick int64) []*sim.Process {
	var out []*sim.Process
	for len(s.pending) > 0 && s.pending[0].tick <= tick {
		a := heap.Pop(&s.pending).(scriptedArrival)
		out = append(out, a.proc)
	}
	return out
}

// Len returns the number of processes not yet released.
func (s *ScriptedSource) Len() int {
	return len(s.pending)
}
