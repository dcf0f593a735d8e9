// Tracks simulation-wide counters such as throughput, drops, preemptions
// and per-device utilization.

package sim

// Metrics aggregates statistics about the simulation
// for final reporting. Useful for evaluating scheduler behavior over time.
type Metrics struct {
	Ticks       int64 `json:"ticks"`        // Number of ticks executed
	Arrivals    int   `json:"arrivals"`     // Processes admitted to HIGH
	Rejected    int   `json:"rejected"`     // Arrivals refused by the registry
	Terminated  int   `json:"terminated"`   // Processes that consumed all service time
	Preemptions int   `json:"preemptions"`  // Quantum expiries that reached LOW (drops excluded)
	CPUBusy     int64 `json:"cpu_busy"`     // Ticks the CPU advanced a process
	Turnaround  int64 `json:"turnaround"`   // Sum of (finish - arrival + 1) over terminated processes
	ServiceSum  int64 `json:"service_sum"`  // Sum of service times over terminated processes

	Dropped       map[string]int       `json:"dropped"`        // queue name -> processes dropped on a full queue
	Dispatches    map[DeviceKind]int   `json:"dispatches"`     // device -> processes placed on the waiting queue (drops excluded)
	IOCompletions map[DeviceKind]int   `json:"io_completions"` // device -> IO requests fully served
	DeviceBusy    map[DeviceKind]int64 `json:"device_busy"`    // device -> ticks spent serving
}

// NewMetrics creates a Metrics with all maps initialized.
func NewMetrics() *Metrics {
	return &Metrics{
		Dropped:       make(map[string]int),
		Dispatches:    make(map[DeviceKind]int),
		IOCompletions: make(map[DeviceKind]int),
		DeviceBusy:    make(map[DeviceKind]int64),
	}
}

// TotalDropped returns the number of processes lost on full queues.
func (m *Metrics) TotalDropped() int {
	total := 0
	for _, n := range m.Dropped {
		total += n
	}
	return total
}

// AverageTurnaround returns the mean ticks-in-system of terminated processes.
func (m *Metrics) AverageTurnaround() float64 {
	if m.Terminated == 0 {
		return 0
	}
	return float64(m.Turnaround) / float64(m.Terminated)
}

// AverageWaiting returns the mean of (turnaround - service time) over terminated
// processes: ticks spent queued or on a device rather than on the CPU.
func (m *Metrics) AverageWaiting() float64 {
	if m.Terminated == 0 {
		return 0
	}
	return float64(m.Turnaround-m.ServiceSum) / float64(m.Terminated)
}

// CPUUtilization returns the fraction of ticks the CPU was busy.
func (m *Metrics) CPUUtilization() float64 {
	if m.Ticks == 0 {
		return 0
	}
	return float64(m.CPUBusy) / float64(m.Ticks)
}

// DeviceUtilization returns the fraction of ticks the given device was serving.
func (m *Metrics) DeviceUtilization(kind DeviceKind) float64 {
	if m.Ticks == 0 {
		return 0
	}
	return float64(m.DeviceBusy[kind]) / float64(m.Ticks)
}
