// Package sim provides the discrete time-step simulation engine for a
// preemptive two-level feedback CPU scheduler coupled with three
// single-server IO subsystems (disk, tape, printer).
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - process.go: Process and IORequest records, lifecycle states
//   - queue.go: BoundedQueue, the fixed-capacity FIFO behind every ready/waiting list
//   - scheduler.go: FeedbackScheduler (HIGH/LOW queues, CPU slot, quantum rules)
//   - device.go: DeviceServer, one generic type for all three device kinds
//   - simulator.go: the tick loop that composes the scheduler and the devices
//
// Supporting files: registry.go (process table, pid allocation), snapshot.go
// (per-tick structured view), metrics.go (counters), config.go, rng.go.
//
// # Tick Order
//
// One tick executes, strictly in this order:
//  1. ingest arrivals from the ArrivalSource into HIGH
//  2. select-then-advance each device (disk, tape, printer)
//  3. select-then-advance the CPU
//
// # Sub-packages
//
//   - sim/workload/: random workload generation and scripted YAML scenarios
//   - sim/trace/: transition recording and summaries
package sim
