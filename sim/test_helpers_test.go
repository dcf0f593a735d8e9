package sim

import (
	"testing"

	"github.com/rodrigo1808/process-scheduling-simulator/sim/trace"
)

// tickArrivals is a scripted ArrivalSource keyed by arrival tick.
type tickArrivals map[int64][]*Process

func (a tickArrivals) Arrivals(tick int64) []*Process {
	return a[tick]
}

// recordingDispatcher captures dispatches and optionally fails them.
type recordingDispatcher struct {
	got  []DeviceKind
	pids []int
	err  error
}

func (d *recordingDispatcher) Dispatch(p *Process, kind DeviceKind) error {
	if d.err != nil {
		return d.err
	}
	d.got = append(d.got, kind)
	d.pids = append(d.pids, p.PID)
	return nil
}

func proc(pid int, service int64, io ...IORequest) *Process {
	return NewProcess(pid, 0, service, io)
}

func ioReq(kind DeviceKind, trigger, duration int64) IORequest {
	return IORequest{Device: kind, TriggerInstant: trigger, Duration: duration}
}

// newTestSimulator builds a simulator with the default config, optionally
// adjusted by mutate, tracing enabled, and arrivals from src.
func newTestSimulator(t *testing.T, src ArrivalSource, mutate func(*Config)) *Simulator {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := NewSimulator(cfg, nil, src)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	s.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelTransitions})
	return s
}

// runUntilTerminated ticks until p terminates or limit ticks pass.
func runUntilTerminated(t *testing.T, s *Simulator, p *Process, limit int64) {
	t.Helper()
	for i := int64(0); i < limit && p.State != StateTerminated; i++ {
		s.Tick()
	}
	if p.State != StateTerminated {
		t.Fatalf("pid %d not terminated after %d ticks (state=%s, elapsed=%d/%d)", p.PID, limit, p.State, p.ElapsedTime, p.ServiceTime)
	}
}

func kindsOf(records []trace.TransitionRecord) []trace.Kind {
	out := make([]trace.Kind, len(records))
	for i, r := range records {
		out[i] = r.Kind
	}
	return out
}
