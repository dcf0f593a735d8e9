// sim/simulator.go
package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/rodrigo1808/process-scheduling-simulator/sim/trace"
)

// ArrivalSource is the workload-generator collaborator. It is asked once per
// tick for zero or more fully formed processes arriving at that tick.
type ArrivalSource interface {
	Arrivals(tick int64) []*Process
}

// Observer receives the structured snapshot at the end of every tick.
type Observer func(Snapshot)

// Simulator is the core object that holds simulation time, the scheduler,
// the device servers and the tick loop. Each Simulator is independent;
// several may run side by side.
type Simulator struct {
	Clock   int64
	Horizon int64
	Config  Config
	// Scheduler owns HIGH, LOW and the CPU slot
	Scheduler *FeedbackScheduler
	// Devices are stepped in this order every tick: disk, tape, printer
	Devices  []*DeviceServer
	Registry *Registry
	Source   ArrivalSource
	Metrics  *Metrics
	Trace    *trace.SimulationTrace // nil disables tracing
	Observer Observer
}

// NewSimulator builds a simulator from a validated configuration.
// A nil registry is replaced by a fresh one sized from cfg.Registry.
// A nil source means arrivals only come through InjectArrival.
func NewSimulator(cfg Config, registry *Registry, source ArrivalSource) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	if registry == nil {
		registry = NewRegistry(cfg.Registry.Capacity)
	}
	devices := make([]*DeviceServer, 0, len(DeviceKinds))
	for _, kind := range DeviceKinds {
		devices = append(devices, NewDeviceServer(kind, cfg.Queue.Capacity))
	}
	return &Simulator{
		Clock:     0,
		Horizon:   math.MaxInt64,
		Config:    cfg,
		Scheduler: NewFeedbackScheduler(cfg.Scheduler.Quantum, cfg.Queue.Capacity),
		Devices:   devices,
		Registry:  registry,
		Source:    source,
		Metrics:   NewMetrics(),
	}, nil
}

// Device returns the server for kind, or nil if unknown.
func (sim *Simulator) Device(kind DeviceKind) *DeviceServer {
	for _, d := range sim.Devices {
		if d.Kind == kind {
			return d
		}
	}
	return nil
}

// Dispatch places p on the waiting queue of the matching device.
// Implements Dispatcher for the feedback scheduler.
func (sim *Simulator) Dispatch(p *Process, kind DeviceKind) error {
	d := sim.Device(kind)
	if d == nil {
		return fmt.Errorf("dispatch pid %d: unknown device %q", p.PID, kind)
	}
	return d.Enqueue(p)
}

// InjectArrival registers p and admits it to HIGH. Called between ticks, the
// process arrives on the next tick, Clock+1, the first tick that can select it.
// A process refused by the registry or dropped on a full HIGH queue is
// logged and counted; the error is returned for callers that care.
func (sim *Simulator) InjectArrival(p *Process) error {
	return sim.admitArrival(p, sim.Clock+1)
}

// admitArrival stamps p with tick and places it in HIGH.
func (sim *Simulator) admitArrival(p *Process, tick int64) error {
	if err := p.Validate(); err != nil {
		logrus.Warnf("[tick %07d] rejected arrival: %v", tick, err)
		sim.Metrics.Rejected++
		return err
	}
	if err := sim.Registry.Register(p); err != nil {
		logrus.Warnf("[tick %07d] rejected arrival: %v", tick, err)
		sim.Metrics.Rejected++
		return err
	}
	p.ArrivalTick = tick
	if err := sim.Scheduler.Admit(p, PriorityHigh); err != nil {
		sim.drop(p, string(PriorityHigh), err)
		return err
	}
	sim.Metrics.Arrivals++
	logrus.Debugf("[tick %07d] << Arrival: pid %d (service=%d, io=%d)", tick, p.PID, p.ServiceTime, p.PendingIO)
	sim.Trace.Record(trace.TransitionRecord{Tick: tick, PID: p.PID, Kind: trace.KindArrival, To: string(PriorityHigh)})
	return nil
}

// Tick executes exactly one simulation step: ingest arrivals into HIGH,
// select-then-advance every device in order, then select-then-advance the CPU.
func (sim *Simulator) Tick() {
	sim.Clock++

	if sim.Source != nil {
		for _, p := range sim.Source.Arrivals(sim.Clock) {
			_ = sim.admitArrival(p, sim.Clock)
		}
	}
	for _, d := range sim.Devices {
		sim.stepDevice(d)
	}
	sim.stepCPU()

	sim.Metrics.Ticks++
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		logrus.Tracef("[tick %07d] cpu=%v high=%v low=%v", sim.Clock, sim.Scheduler.Current, sim.Scheduler.High, sim.Scheduler.Low)
	}
	if sim.Observer != nil {
		sim.Observer(sim.Snapshot())
	}
}

// RunFor executes n ticks.
func (sim *Simulator) RunFor(n int64) {
	for i := int64(0); i < n; i++ {
		sim.Tick()
	}
}

// Run ticks until the clock reaches Horizon.
func (sim *Simulator) Run() {
	_ = sim.RunContext(context.Background())
}

// RunContext ticks until the clock reaches Horizon or ctx is cancelled.
// Cancellation is only observed between ticks.
func (sim *Simulator) RunContext(ctx context.Context) error {
	for sim.Clock < sim.Horizon {
		if err := ctx.Err(); err != nil {
			logrus.Infof("[tick %07d] Simulation interrupted", sim.Clock)
			return err
		}
		sim.Tick()
	}
	logrus.Infof("[tick %07d] Simulation ended", sim.Clock)
	return nil
}

func (sim *Simulator) stepDevice(d *DeviceServer) {
	res := d.Step()
	if res.Selected {
		sim.Trace.Record(trace.TransitionRecord{Tick: sim.Clock, PID: res.Process.PID, Kind: trace.KindSelect, From: string(d.Kind), To: string(d.Kind)})
	}
	if res.Transition == TransitionIdle {
		return
	}
	sim.Metrics.DeviceBusy[d.Kind]++
	if res.Transition != TransitionCompleted {
		return
	}

	p := res.Process
	sim.Metrics.IOCompletions[d.Kind]++
	level := ReturnLevel(d.Kind)
	if err := sim.Scheduler.Admit(p, level); err != nil {
		sim.drop(p, string(level), err)
		return
	}
	logrus.Debugf("[tick %07d] [%s] IO complete: pid %d -> %s", sim.Clock, d.Kind, p.PID, level)
	sim.Trace.Record(trace.TransitionRecord{Tick: sim.Clock, PID: p.PID, Kind: trace.KindIOComplete, From: string(d.Kind), To: string(level)})
}

func (sim *Simulator) stepCPU() {
	res := sim.Scheduler.Step(sim)
	if res.Selected {
		sim.Trace.Record(trace.TransitionRecord{Tick: sim.Clock, PID: res.Process.PID, Kind: trace.KindSelect, From: string(res.From), To: "cpu"})
	}
	if res.Transition == TransitionIdle {
		return
	}
	sim.Metrics.CPUBusy++
	p := res.Process

	switch res.Transition {
	case TransitionTerminated:
		p.FinishTick = sim.Clock
		sim.Metrics.Terminated++
		sim.Metrics.Turnaround += p.FinishTick - p.ArrivalTick + 1
		sim.Metrics.ServiceSum += p.ServiceTime
		if err := sim.Registry.Remove(p.PID); err != nil {
			logrus.Debugf("[tick %07d] %v", sim.Clock, err)
		}
		logrus.Debugf("[tick %07d] Finished pid %d (turnaround=%d)", sim.Clock, p.PID, p.FinishTick-p.ArrivalTick+1)
		sim.Trace.Record(trace.TransitionRecord{Tick: sim.Clock, PID: p.PID, Kind: trace.KindTerminate, From: "cpu"})

	case TransitionDispatched:
		if res.Err != nil {
			sim.drop(p, res.To, res.Err)
			return
		}
		sim.Metrics.Dispatches[DeviceKind(res.To)]++
		logrus.Debugf("[tick %07d] Dispatch pid %d -> %s (elapsed=%d)", sim.Clock, p.PID, res.To, p.ElapsedTime)
		sim.Trace.Record(trace.TransitionRecord{Tick: sim.Clock, PID: p.PID, Kind: trace.KindDispatch, From: "cpu", To: res.To})

	case TransitionPreempted:
		if res.Err != nil {
			sim.drop(p, res.To, res.Err)
			return
		}
		sim.Metrics.Preemptions++
		logrus.Debugf("[tick %07d] Preempt pid %d -> low (elapsed=%d)", sim.Clock, p.PID, p.ElapsedTime)
		sim.Trace.Record(trace.TransitionRecord{Tick: sim.Clock, PID: p.PID, Kind: trace.KindPreempt, From: "cpu", To: res.To})
	}
}

// drop discards a process that could not be queued. The process leaves the
// system: it is removed from the registry and never reappears.
func (sim *Simulator) drop(p *Process, queue string, err error) {
	logrus.Warnf("[tick %07d] dropped pid %d: %v", sim.Clock, p.PID, err)
	p.State = StateDropped
	sim.Metrics.Dropped[queue]++
	if rmErr := sim.Registry.Remove(p.PID); rmErr != nil {
		logrus.Debugf("[tick %07d] %v", sim.Clock, rmErr)
	}
	sim.Trace.Record(trace.TransitionRecord{Tick: sim.Clock, PID: p.PID, Kind: trace.KindDrop, To: queue, Reason: err.Error()})
}
