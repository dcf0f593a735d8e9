package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.Queue.Capacity)
	assert.Equal(t, int64(5), cfg.Scheduler.Quantum)
	assert.Equal(t, int64(5), cfg.Devices.Duration(DeviceDisk))
	assert.Equal(t, int64(8), cfg.Devices.Duration(DeviceTape))
	assert.Equal(t, int64(14), cfg.Devices.Duration(DevicePrinter))
	assert.Equal(t, 0.2, cfg.Workload.ArrivalProbability)
	assert.Equal(t, MaxIORequests, cfg.Workload.MaxIORequests)
}

func TestConfig_Validate_RejectsInvalidFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero capacity", func(c *Config) { c.Queue.Capacity = 0 }, "queue.capacity"},
		{"zero quantum", func(c *Config) { c.Scheduler.Quantum = 0 }, "scheduler.quantum"},
		{"negative tape", func(c *Config) { c.Devices.TapeDuration = -1 }, "devices.tape"},
		{"probability above one", func(c *Config) { c.Workload.ArrivalProbability = 1.5 }, "arrival_probability"},
		{"negative probability", func(c *Config) { c.Workload.ArrivalProbability = -0.1 }, "arrival_probability"},
		{"zero service min", func(c *Config) { c.Workload.ServiceTimeMin = 0 }, "service_time_min"},
		{"inverted service range", func(c *Config) { c.Workload.ServiceTimeMax = 1 }, "service_time_max"},
		{"too many io", func(c *Config) { c.Workload.MaxIORequests = 4 }, "max_io_requests"},
		{"zero registry", func(c *Config) { c.Registry.Capacity = 0 }, "registry.capacity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.field)
			}
		})
	}
}

func TestDeviceConfig_Duration_UnknownKind_Panics(t *testing.T) {
	assert.Panics(t, func() { DefaultConfig().Devices.Duration(DeviceKind("floppy")) })
}
