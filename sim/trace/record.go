// Package trace provides transition recording for post-run analysis of a simulation.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// Kind names a process transition.
type Kind string

const (
	KindArrival    Kind = "arrival"     // entered HIGH from the workload source
	KindSelect     Kind = "select"      // pulled from a queue into the CPU or a device slot
	KindDispatch   Kind = "dispatch"    // left the CPU for a device waiting queue
	KindPreempt    Kind = "preempt"     // quantum exhausted, demoted to LOW
	KindTerminate  Kind = "terminate"   // service time reached, left the system
	KindIOComplete Kind = "io_complete" // head IO request served, returned to a ready queue
	KindDrop       Kind = "drop"        // target queue full, process discarded
)

// Kinds lists every transition kind in lifecycle order.
var Kinds = []Kind{KindArrival, KindSelect, KindDispatch, KindPreempt, KindTerminate, KindIOComplete, KindDrop}

// TransitionRecord captures a single process movement between queues or slots.
type TransitionRecord struct {
	Tick   int64  `json:"tick"`
	PID    int    `json:"pid"`
	Kind   Kind   `json:"kind"`
	From   string `json:"from,omitempty"` // queue or slot left ("high", "low", "cpu", "disk", ...)
	To     string `json:"to,omitempty"`   // queue or slot entered
	Reason string `json:"reason,omitempty"`
}
