package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Transition describes what happened to the CPU or a device slot during one advance step.
type Transition string

const (
	TransitionIdle       Transition = "idle"       // slot empty, nothing selected
	TransitionRunning    Transition = "running"    // process keeps the slot into the next tick
	TransitionTerminated Transition = "terminated" // elapsed time reached service time
	TransitionDispatched Transition = "dispatched" // IO trigger reached, handed to a device
	TransitionPreempted  Transition = "preempted"  // quantum exhausted, demoted to LOW
	TransitionCompleted  Transition = "completed"  // device finished the head IO request
)

// StepResult reports the outcome of one select-then-advance step.
// Err is non-nil only when the process could not be handed to its next
// queue because that queue was full; the process has been dropped.
type StepResult struct {
	Transition Transition
	Process    *Process
	Selected   bool          // a process was pulled from a queue this step
	From       PriorityLevel // queue the selected process came from
	To         string        // destination queue for dispatch, preemption or completion
	Err        error
}

// Dispatcher accepts a process blocked on IO and places it on the waiting
// queue of the matching device.
type Dispatcher interface {
	Dispatch(p *Process, kind DeviceKind) error
}

// FeedbackScheduler is the two-level feedback CPU scheduler.
// It owns the HIGH and LOW ready queues and the single CPU slot.
type FeedbackScheduler struct {
	High *ProcessQueue
	Low  *ProcessQueue
	// Current is the running process, nil when the CPU is idle.
	Current *Process
	// QuantumUsed counts ticks Current has held the CPU since it was selected.
	QuantumUsed int64
	Quantum     int64
}

// NewFeedbackScheduler creates an idle scheduler with empty ready queues.
func NewFeedbackScheduler(quantum int64, queueCapacity int) *FeedbackScheduler {
	if quantum <= 0 {
		panic(fmt.Sprintf("NewFeedbackScheduler: quantum must be > 0, got %d", quantum))
	}
	return &FeedbackScheduler{
		High:    NewBoundedQueue[*Process](queueCapacity),
		Low:     NewBoundedQueue[*Process](queueCapacity),
		Quantum: quantum,
	}
}

// Queue returns the ready queue for the given level.
func (s *FeedbackScheduler) Queue(level PriorityLevel) *ProcessQueue {
	if level == PriorityLow {
		return s.Low
	}
	return s.High
}

// Admit places p at the tail of the ready queue for level.
// Returns ErrQueueFull (wrapped) if that queue is at capacity; p is then not queued.
func (s *FeedbackScheduler) Admit(p *Process, level PriorityLevel) error {
	if err := s.Queue(level).Enqueue(p); err != nil {
		return fmt.Errorf("admit pid %d to %s: %w", p.PID, level, err)
	}
	p.State = StateReady
	p.Priority = level
	return nil
}

// Idle reports whether the CPU slot is empty.
func (s *FeedbackScheduler) Idle() bool {
	return s.Current == nil
}

// Select fills an idle CPU from HIGH, then LOW. Returns the selected process,
// or nil if the CPU was already busy or both queues are empty.
func (s *FeedbackScheduler) Select() *Process {
	if s.Current != nil {
		return nil
	}
	p, ok := s.High.Dequeue()
	if !ok {
		p, ok = s.Low.Dequeue()
	}
	if !ok {
		return nil
	}
	p.State = StateRunning
	s.Current = p
	s.QuantumUsed = 0
	return p
}

// Advance runs Current for one tick and applies, in order: termination,
// IO dispatch, quantum preemption. IO dispatch wins over preemption when both
// fall on the same tick.
func (s *FeedbackScheduler) Advance(d Dispatcher) StepResult {
	p := s.Current
	if p == nil {
		return StepResult{Transition: TransitionIdle}
	}
	p.ElapsedTime++
	s.QuantumUsed++

	switch {
	case p.Finished():
		s.release()
		p.State = StateTerminated
		return StepResult{Transition: TransitionTerminated, Process: p}

	case p.IOTriggered():
		s.release()
		kind := p.HeadIO().Device
		res := StepResult{Transition: TransitionDispatched, Process: p, To: string(kind)}
		if err := d.Dispatch(p, kind); err != nil {
			res.Err = err
		}
		return res

	case s.QuantumUsed == s.Quantum:
		s.release()
		res := StepResult{Transition: TransitionPreempted, Process: p, To: string(PriorityLow)}
		if err := s.Admit(p, PriorityLow); err != nil {
			res.Err = err
		}
		return res

	default:
		return StepResult{Transition: TransitionRunning, Process: p}
	}
}

// Step performs one select followed by one advance.
func (s *FeedbackScheduler) Step(d Dispatcher) StepResult {
	var from PriorityLevel
	selected := s.Select()
	if selected != nil {
		from = selected.Priority
		logrus.Debugf("[cpu] selected pid %d from %s", selected.PID, from)
	}
	res := s.Advance(d)
	if selected != nil {
		res.Selected = true
		res.From = from
	}
	return res
}

func (s *FeedbackScheduler) release() {
	s.Current = nil
	s.QuantumUsed = 0
}
