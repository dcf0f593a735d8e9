// Defines the Process record that models a simulated job in the scheduler,
// together with the IO requests it issues against the disk, tape and printer servers.

package sim

import (
	"fmt"
)

// DeviceKind names one of the three single-server IO subsystems.
type DeviceKind string

const (
	DeviceDisk    DeviceKind = "disk"
	DeviceTape    DeviceKind = "tape"
	DevicePrinter DeviceKind = "printer"
)

// DeviceKinds lists every device in the fixed per-tick service order.
var DeviceKinds = []DeviceKind{DeviceDisk, DeviceTape, DevicePrinter}

// validDeviceKinds maps accepted device kind strings.
var validDeviceKinds = map[DeviceKind]bool{
	DeviceDisk:    true,
	DeviceTape:    true,
	DevicePrinter: true,
}

// IsValidDeviceKind returns true if the given string names a known device.
func IsValidDeviceKind(kind string) bool {
	return validDeviceKinds[DeviceKind(kind)]
}

// PriorityLevel identifies one of the two ready queues.
type PriorityLevel string

const (
	PriorityHigh PriorityLevel = "high"
	PriorityLow  PriorityLevel = "low"
)

// ProcessState represents the lifecycle state of a process.
type ProcessState string

const (
	StateNew        ProcessState = "new"
	StateReady      ProcessState = "ready"
	StateRunning    ProcessState = "running"
	StateBlocked    ProcessState = "blocked"
	StateTerminated ProcessState = "terminated"
	StateDropped    ProcessState = "dropped" // discarded on a full queue
)

// MaxIORequests is the hard upper bound on IO requests carried by one process.
const MaxIORequests = 3

// IORequest is a single demand for device service issued when the owning
// process has consumed TriggerInstant ticks of CPU.
type IORequest struct {
	Device         DeviceKind
	Duration       int64 // ticks of device service required
	TriggerInstant int64 // ElapsedTime value at which the process blocks on this IO
	Progress       int64 // ticks already served
}

// Process models a single job's lifecycle in the simulation.
// IO holds the requests not yet fully serviced, in trigger order; only IO[0]
// is ever inspected by the scheduler or served by a device.
type Process struct {
	PID         int   // Unique positive identifier, guaranteed by the Registry
	PPID        int   // Parent identifier (0 for generator-created processes)
	ServiceTime int64 // Total CPU ticks required
	ElapsedTime int64 // CPU ticks consumed so far

	Priority  PriorityLevel // Ready queue the process was last admitted to
	IO        []IORequest   // Outstanding IO requests, head first
	PendingIO int           // Number of IO requests not yet fully serviced

	State       ProcessState // new, ready, running, blocked, terminated, dropped
	ArrivalTick int64        // Tick at which the process entered the system
	FinishTick  int64        // Tick at which the process terminated (0 while live)
}

// NewProcess creates a process in the "new" state with no CPU time consumed.
// The IO slice is copied so the caller may reuse it.
func NewProcess(pid, ppid int, serviceTime int64, io []IORequest) *Process {
	reqs := make([]IORequest, len(io))
	copy(reqs, io)
	return &Process{
		PID:         pid,
		PPID:        ppid,
		ServiceTime: serviceTime,
		Priority:    PriorityHigh,
		IO:          reqs,
		PendingIO:   len(reqs),
		State:       StateNew,
	}
}

// Validate checks the structural invariants of a freshly created process.
func (p *Process) Validate() error {
	if p.PID <= 0 {
		return fmt.Errorf("pid must be positive, got %d", p.PID)
	}
	if p.ServiceTime <= 0 {
		return fmt.Errorf("process %d: service time must be positive, got %d", p.PID, p.ServiceTime)
	}
	if p.ElapsedTime < 0 || p.ElapsedTime > p.ServiceTime {
		return fmt.Errorf("process %d: elapsed time %d outside [0, %d]", p.PID, p.ElapsedTime, p.ServiceTime)
	}
	if len(p.IO) > MaxIORequests {
		return fmt.Errorf("process %d: %d IO requests exceeds maximum of %d", p.PID, len(p.IO), MaxIORequests)
	}
	if p.PendingIO != len(p.IO) {
		return fmt.Errorf("process %d: pending IO count %d does not match %d requests", p.PID, p.PendingIO, len(p.IO))
	}
	prev := int64(0)
	for i, req := range p.IO {
		if !validDeviceKinds[req.Device] {
			return fmt.Errorf("process %d: IO %d has unknown device %q", p.PID, i, req.Device)
		}
		if req.Duration <= 0 {
			return fmt.Errorf("process %d: IO %d duration must be positive, got %d", p.PID, i, req.Duration)
		}
		if req.TriggerInstant <= prev {
			return fmt.Errorf("process %d: IO %d trigger %d must be > %d", p.PID, i, req.TriggerInstant, prev)
		}
		if req.TriggerInstant >= p.ServiceTime {
			return fmt.Errorf("process %d: IO %d trigger %d must be < service time %d", p.PID, i, req.TriggerInstant, p.ServiceTime)
		}
		prev = req.TriggerInstant
	}
	return nil
}

// HeadIO returns the next outstanding IO request, or nil if none remain.
func (p *Process) HeadIO() *IORequest {
	if len(p.IO) == 0 {
		return nil
	}
	return &p.IO[0]
}

// Finished reports whether the process has consumed all of its service time.
func (p *Process) Finished() bool {
	return p.ElapsedTime == p.ServiceTime
}

// IOTriggered reports whether the head IO request fires at the current elapsed time.
func (p *Process) IOTriggered() bool {
	head := p.HeadIO()
	return head != nil && head.TriggerInstant == p.ElapsedTime
}

// popHeadIO removes the completed head request; remaining requests shift forward.
func (p *Process) popHeadIO() {
	if len(p.IO) == 0 {
		return
	}
	p.IO = p.IO[1:]
	p.PendingIO--
}

// This method returns a human-readable string representation of a Process.
func (p Process) String() string {
	return fmt.Sprintf("Process: (PID: %d, State: %s, Elapsed: %d/%d, PendingIO: %d)", p.PID, p.State, p.ElapsedTime, p.ServiceTime, p.PendingIO)
}
