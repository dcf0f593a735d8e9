package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrProcessNotFound is returned when a pid is not resident. Callers treat it as a no-op.
	ErrProcessNotFound = errors.New("process not found")
	// ErrRegistryFull is returned when the process table has no free slot.
	ErrRegistryFull = errors.New("process registry full")
	// ErrDuplicatePID is returned when a live process already holds the pid.
	ErrDuplicatePID = errors.New("duplicate pid")
)

// Registry is the process table. It guarantees pid uniqueness among live
// processes and bounds how many may be resident at once.
//
// Thread-safety: NOT thread-safe. Owned by a single Simulator.
type Registry struct {
	capacity  int
	processes map[int]*Process
	lastPID   int
}

// NewRegistry creates an empty registry holding at most capacity processes.
func NewRegistry(capacity int) *Registry {
	if capacity <= 0 {
		panic(fmt.Sprintf("NewRegistry: capacity must be > 0, got %d", capacity))
	}
	return &Registry{
		capacity:  capacity,
		processes: make(map[int]*Process),
	}
}

// NextPID returns a fresh pid, strictly greater than any pid seen so far.
func (r *Registry) NextPID() int {
	r.lastPID++
	return r.lastPID
}

// Register makes p resident.
func (r *Registry) Register(p *Process) error {
	if _, ok := r.processes[p.PID]; ok {
		return fmt.Errorf("register pid %d: %w", p.PID, ErrDuplicatePID)
	}
	if len(r.processes) >= r.capacity {
		return fmt.Errorf("register pid %d: %w", p.PID, ErrRegistryFull)
	}
	r.processes[p.PID] = p
	if p.PID > r.lastPID {
		r.lastPID = p.PID
	}
	return nil
}

// Remove drops pid from the table. Unknown pids yield ErrProcessNotFound and change nothing.
func (r *Registry) Remove(pid int) error {
	if _, ok := r.processes[pid]; !ok {
		return fmt.Errorf("remove pid %d: %w", pid, ErrProcessNotFound)
	}
	delete(r.processes, pid)
	return nil
}

// Lookup returns the resident process with the given pid.
func (r *Registry) Lookup(pid int) (*Process, bool) {
	p, ok := r.processes[pid]
	return p, ok
}

// Len returns the number of resident processes.
func (r *Registry) Len() int {
	return len(r.processes)
}

// Cap returns the table capacity.
func (r *Registry) Cap() int {
	return r.capacity
}

// Full reports whether Register would fail with ErrRegistryFull.
func (r *Registry) Full() bool {
	return len(r.processes) >= r.capacity
}
