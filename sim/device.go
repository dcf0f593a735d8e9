package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// returnLevels routes a process back to a ready queue after its IO completes.
// Disk completions re-enter LOW; tape and printer completions re-enter HIGH.
var returnLevels = map[DeviceKind]PriorityLevel{
	DeviceDisk:    PriorityLow,
	DeviceTape:    PriorityHigh,
	DevicePrinter: PriorityHigh,
}

// ReturnLevel returns the ready queue a process re-enters after IO on kind.
func ReturnLevel(kind DeviceKind) PriorityLevel {
	level, ok := returnLevels[kind]
	if !ok {
		panic(fmt.Sprintf("unhandled device kind %q", kind))
	}
	return level
}

// DeviceServer is a single-server IO subsystem with a FIFO waiting queue.
// One type serves every device kind; only Kind and its return routing differ.
type DeviceServer struct {
	Kind  DeviceKind
	Queue *ProcessQueue
	// InService is the process being served, nil when idle.
	InService *Process
	// ServiceProgress counts ticks served on InService's head IO request.
	ServiceProgress int64
}

// NewDeviceServer creates an idle device with an empty waiting queue.
func NewDeviceServer(kind DeviceKind, queueCapacity int) *DeviceServer {
	if !validDeviceKinds[kind] {
		panic(fmt.Sprintf("NewDeviceServer: unknown device kind %q", kind))
	}
	return &DeviceServer{
		Kind:  kind,
		Queue: NewBoundedQueue[*Process](queueCapacity),
	}
}

// Enqueue places a blocked process on the waiting queue.
func (d *DeviceServer) Enqueue(p *Process) error {
	if err := d.Queue.Enqueue(p); err != nil {
		return fmt.Errorf("enqueue pid %d on %s: %w", p.PID, d.Kind, err)
	}
	p.State = StateBlocked
	return nil
}

// Idle reports whether the service slot is empty.
func (d *DeviceServer) Idle() bool {
	return d.InService == nil
}

// Select fills an idle slot from the waiting queue in plain FIFO order.
func (d *DeviceServer) Select() *Process {
	if d.InService != nil {
		return nil
	}
	p, ok := d.Queue.Dequeue()
	if !ok {
		return nil
	}
	d.InService = p
	d.ServiceProgress = 0
	return p
}

// Advance serves the head IO request of InService for one tick. When the
// request is complete it is removed from the process and the process is
// returned in the result with Transition == TransitionCompleted; the caller
// routes it to ReturnLevel(d.Kind).
func (d *DeviceServer) Advance() StepResult {
	p := d.InService
	if p == nil {
		return StepResult{Transition: TransitionIdle}
	}
	head := p.HeadIO()
	if head == nil {
		// nothing to serve; hand the process straight back
		logrus.Warnf("[%s] pid %d in service without pending IO", d.Kind, p.PID)
		d.release()
		return StepResult{Transition: TransitionCompleted, Process: p, To: string(ReturnLevel(d.Kind))}
	}
	d.ServiceProgress++
	head.Progress++
	if d.ServiceProgress < head.Duration {
		return StepResult{Transition: TransitionRunning, Process: p}
	}
	p.popHeadIO()
	d.release()
	return StepResult{Transition: TransitionCompleted, Process: p, To: string(ReturnLevel(d.Kind))}
}

// Step performs one select followed by one advance.
func (d *DeviceServer) Step() StepResult {
	selected := d.Select()
	if selected != nil {
		logrus.Debugf("[%s] selected pid %d", d.Kind, selected.PID)
	}
	res := d.Advance()
	res.Selected = selected != nil
	return res
}

func (d *DeviceServer) release() {
	d.InService = nil
	d.ServiceProgress = 0
}
