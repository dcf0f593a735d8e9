package workload

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rodrigo1808/process-scheduling-simulator/sim"
)

// ScenarioSpec is a scripted workload: a fixed list of processes with the
// tick at which each arrives. Loaded from YAML via LoadScenario(path).
type ScenarioSpec struct {
	Version   string        `yaml:"version"`
	Name      string        `yaml:"name"`
	Processes []ProcessSpec `yaml:"processes"`
}

// ProcessSpec describes one scripted process.
type ProcessSpec struct {
	PID         int      `yaml:"pid"`
	PPID        int      `yaml:"ppid,omitempty"`
	ArrivalTick int64    `yaml:"arrival_tick"`
	ServiceTime int64    `yaml:"service_time"`
	IO          []IOSpec `yaml:"io,omitempty"`
}

// IOSpec describes one scripted IO request. A zero Duration takes the
// device's configured duration.
type IOSpec struct {
	Device   string `yaml:"device"`
	Trigger  int64  `yaml:"trigger"`
	Duration int64  `yaml:"duration,omitempty"`
}

// LoadScenario reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenario(path string) (*ScenarioSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes a YAML scenario document.
func ParseScenario(data []byte) (*ScenarioSpec, error) {
	var spec ScenarioSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &spec, nil
}

// Validate checks fields that do not depend on the device table.
// Process-level invariants are checked again by Build once durations are resolved.
func (s *ScenarioSpec) Validate() error {
	if len(s.Processes) == 0 {
		return fmt.Errorf("scenario %q: at least one process required", s.Name)
	}
	seen := make(map[int]bool, len(s.Processes))
	for i, p := range s.Processes {
		prefix := fmt.Sprintf("processes[%d]", i)
		if p.PID <= 0 {
			return fmt.Errorf("%s: pid must be positive, got %d", prefix, p.PID)
		}
		if seen[p.PID] {
			return fmt.Errorf("%s: duplicate pid %d", prefix, p.PID)
		}
		seen[p.PID] = true
		if p.ArrivalTick < 1 {
			return fmt.Errorf("%s: arrival_tick must be >= 1, got %d", prefix, p.ArrivalTick)
		}
		if len(p.IO) > sim.MaxIORequests {
			return fmt.Errorf("%s: at most %d io requests allowed, got %d", prefix, sim.MaxIORequests, len(p.IO))
		}
		for j, io := range p.IO {
			if !sim.IsValidDeviceKind(io.Device) {
				return fmt.Errorf("%s.io[%d]: unknown device %q; valid: disk, tape, printer", prefix, j, io.Device)
			}
			if io.Duration < 0 {
				return fmt.Errorf("%s.io[%d]: duration must be non-negative, got %d", prefix, j, io.Duration)
			}
		}
	}
	return nil
}

// Build creates the scripted processes, resolving zero IO durations from devices.
func (s *ScenarioSpec) Build(devices sim.DeviceConfig) ([]*sim.Process, []int64, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}
	procs := make([]*sim.Process, 0, len(s.Processes))
	ticks := make([]int64, 0, len(s.Processes))
	for _, ps := range s.Processes {
		reqs := make([]sim.IORequest, 0, len(ps.IO))
		for _, io := range ps.IO {
			kind := sim.DeviceKind(io.Device)
			duration := io.Duration
			if duration == 0 {
				duration = devices.Duration(kind)
			}
			reqs = append(reqs, sim.IORequest{Device: kind, Duration: duration, TriggerInstant: io.Trigger})
		}
		p := sim.NewProcess(ps.PID, ps.PPID, ps.ServiceTime, reqs)
		if err := p.Validate(); err != nil {
			return nil, nil, fmt.Errorf("scenario %q: %w", s.Name, err)
		}
		procs = append(procs, p)
		ticks = append(ticks, ps.ArrivalTick)
	}
	return procs, ticks, nil
}

// Source builds a ScriptedSource releasing every process on its arrival tick.
func (s *ScenarioSpec) Source(devices sim.DeviceConfig) (*ScriptedSource, error) {
	procs, ticks, err := s.Build(devices)
	if err != nil {
		return nil, err
	}
	src := NewScriptedSource()
	for i, p := range procs {
		src.Add(ticks[i], p)
	}
	return src, nil
}
