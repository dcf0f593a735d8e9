package sim

// ProcessView is the observable state of a process occupying a slot.
type ProcessView struct {
	PID         int   `json:"pid"`
	ElapsedTime int64 `json:"elapsed_time"`
	ServiceTime int64 `json:"service_time"`
	PendingIO   int   `json:"pending_io"`
}

// CPUSnapshot captures the CPU slot. Running is nil when the CPU is idle.
type CPUSnapshot struct {
	Running     *ProcessView `json:"running,omitempty"`
	QuantumUsed int64        `json:"quantum_used"`
}

// DeviceSnapshot captures one device's slot and waiting queue.
// InService is nil when the device is idle.
type DeviceSnapshot struct {
	Kind      DeviceKind   `json:"kind"`
	InService *ProcessView `json:"in_service,omitempty"`
	Progress  int64        `json:"progress"`
	Duration  int64        `json:"duration,omitempty"` // duration of the head IO request being served
	Waiting   []int        `json:"waiting"`
}

// Snapshot is the structured per-tick view of the whole simulation.
type Snapshot struct {
	Tick    int64            `json:"tick"`
	CPU     CPUSnapshot      `json:"cpu"`
	High    []int            `json:"high"`
	Low     []int            `json:"low"`
	Devices []DeviceSnapshot `json:"devices"`
}

func viewOf(p *Process) *ProcessView {
	if p == nil {
		return nil
	}
	return &ProcessView{
		PID:         p.PID,
		ElapsedTime: p.ElapsedTime,
		ServiceTime: p.ServiceTime,
		PendingIO:   p.PendingIO,
	}
}

// Snapshot returns the current state. Devices appear in service order.
func (sim *Simulator) Snapshot() Snapshot {
	snap := Snapshot{
		Tick: sim.Clock,
		CPU: CPUSnapshot{
			Running:     viewOf(sim.Scheduler.Current),
			QuantumUsed: sim.Scheduler.QuantumUsed,
		},
		High:    PIDs(sim.Scheduler.High),
		Low:     PIDs(sim.Scheduler.Low),
		Devices: make([]DeviceSnapshot, 0, len(sim.Devices)),
	}
	for _, d := range sim.Devices {
		ds := DeviceSnapshot{
			Kind:      d.Kind,
			InService: viewOf(d.InService),
			Progress:  d.ServiceProgress,
			Waiting:   PIDs(d.Queue),
		}
		if d.InService != nil {
			if head := d.InService.HeadIO(); head != nil {
				ds.Duration = head.Duration
			}
		}
		snap.Devices = append(snap.Devices, ds)
	}
	return snap
}

// Resident returns every pid present in a queue or slot, in snapshot order.
func (s Snapshot) Resident() []int {
	var pids []int
	if s.CPU.Running != nil {
		pids = append(pids, s.CPU.Running.PID)
	}
	pids = append(pids, s.High...)
	pids = append(pids, s.Low...)
	for _, d := range s.Devices {
		if d.InService != nil {
			pids = append(pids, d.InService.PID)
		}
		pids = append(pids, d.Waiting...)
	}
	return pids
}
