package workload

import (
	"fmt"
	"sort"
)

// Built-in scenario presets for the canonical scheduler behaviors.
// Each returns a valid ScenarioSpec ready for use with ScenarioSpec.Source.

// ScenarioCPUBound is a single process with service time 12 and no IO.
// With quantum 5 it is preempted twice and terminates at tick 12.
func ScenarioCPUBound() *ScenarioSpec {
	return &ScenarioSpec{
		Version: "1", Name: "cpu-bound",
		Processes: []ProcessSpec{
			{PID: 1, ArrivalTick: 1, ServiceTime: 12},
		},
	}
}

// ScenarioDiskRoundTrip is a single process with service time 10 and one
// disk request triggered at elapsed time 3.
func ScenarioDiskRoundTrip() *ScenarioSpec {
	return &ScenarioSpec{
		Version: "1", Name: "disk-round-trip",
		Processes: []ProcessSpec{
			{PID: 1, ArrivalTick: 1, ServiceTime: 10, IO: []IOSpec{
				{Device: "disk", Trigger: 3, Duration: 5},
			}},
		},
	}
}

// ScenarioBurst releases n CPU-bound processes on tick 1, overflowing HIGH
// whenever n exceeds the queue capacity.
func ScenarioBurst(n int) *ScenarioSpec {
	procs := make([]ProcessSpec, n)
	for i := range procs {
		procs[i] = ProcessSpec{PID: i + 1, ArrivalTick: 1, ServiceTime: 8}
	}
	return &ScenarioSpec{Version: "1", Name: "burst", Processes: procs}
}

// ScenarioMixedIO interleaves CPU-bound and IO-bound processes across all
// three devices so both routing paths (LOW after disk, HIGH after tape and
// printer) are exercised.
func ScenarioMixedIO() *ScenarioSpec {
	return &ScenarioSpec{
		Version: "1", Name: "mixed-io",
		Processes: []ProcessSpec{
			{PID: 1, ArrivalTick: 1, ServiceTime: 20},
			{PID: 2, ArrivalTick: 1, ServiceTime: 9, IO: []IOSpec{
				{Device: "disk", Trigger: 2}, {Device: "printer", Trigger: 6},
			}},
			{PID: 3, ArrivalTick: 2, ServiceTime: 7, IO: []IOSpec{
				{Device: "tape", Trigger: 5},
			}},
			{PID: 4, ArrivalTick: 4, ServiceTime: 15, IO: []IOSpec{
				{Device: "disk", Trigger: 1}, {Device: "tape", Trigger: 4}, {Device: "printer", Trigger: 10},
			}},
			{PID: 5, ArrivalTick: 6, ServiceTime: 3},
		},
	}
}

// presets maps preset names to their constructors.
var presets = map[string]func() *ScenarioSpec{
	"cpu-bound":       ScenarioCPUBound,
	"disk-round-trip": ScenarioDiskRoundTrip,
	"burst":           func() *ScenarioSpec { return ScenarioBurst(15) },
	"mixed-io":        ScenarioMixedIO,
}

// Preset returns the named built-in scenario.
func Preset(name string) (*ScenarioSpec, error) {
	ctor, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario preset %q; valid: %v", name, PresetNames())
	}
	return ctor(), nil
}

// PresetNames returns the built-in preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
