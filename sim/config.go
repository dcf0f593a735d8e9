package sim

import (
	"fmt"
)

// QueueConfig sizes every bounded queue in the simulation.
type QueueConfig struct {
	Capacity int `yaml:"capacity" json:"capacity"` // shared by HIGH, LOW and each device waiting queue (must be > 0)
}

// SchedulerConfig groups feedback scheduler parameters.
type SchedulerConfig struct {
	Quantum int64 `yaml:"quantum" json:"quantum"` // max consecutive CPU ticks before preemption (must be > 0)
}

// DeviceConfig holds the per-kind IO duration table used when generating IO requests.
type DeviceConfig struct {
	DiskDuration    int64 `yaml:"disk" json:"disk"`
	TapeDuration    int64 `yaml:"tape" json:"tape"`
	PrinterDuration int64 `yaml:"printer" json:"printer"`
}

// Duration returns the configured service duration for the given device kind.
func (c DeviceConfig) Duration(kind DeviceKind) int64 {
	switch kind {
	case DeviceDisk:
		return c.DiskDuration
	case DeviceTape:
		return c.TapeDuration
	case DevicePrinter:
		return c.PrinterDuration
	default:
		panic(fmt.Sprintf("unhandled device kind %q", kind))
	}
}

// WorkloadConfig groups random workload generation parameters.
type WorkloadConfig struct {
	Seed               int64   `yaml:"seed" json:"seed"`
	ArrivalProbability float64 `yaml:"arrival_probability" json:"arrival_probability"` // per-tick chance of one new process, in [0, 1]
	ServiceTimeMin     int64   `yaml:"service_time_min" json:"service_time_min"`
	ServiceTimeMax     int64   `yaml:"service_time_max" json:"service_time_max"`
	MaxIORequests      int     `yaml:"max_io_requests" json:"max_io_requests"` // in [0, MaxIORequests]
}

// RegistryConfig bounds the process table.
type RegistryConfig struct {
	Capacity int `yaml:"capacity" json:"capacity"`
}

// Config is the full simulation configuration.
type Config struct {
	Queue     QueueConfig     `yaml:"queue" json:"queue"`
	Scheduler SchedulerConfig `yaml:"scheduler" json:"scheduler"`
	Devices   DeviceConfig    `yaml:"devices" json:"devices"`
	Workload  WorkloadConfig  `yaml:"workload" json:"workload"`
	Registry  RegistryConfig  `yaml:"registry" json:"registry"`
}

// DefaultConfig returns the reference configuration: queues of 10, quantum 5,
// disk/tape/printer durations 5/8/14, up to 3 IO requests, 20% arrival chance.
func DefaultConfig() Config {
	return Config{
		Queue:     QueueConfig{Capacity: 10},
		Scheduler: SchedulerConfig{Quantum: 5},
		Devices: DeviceConfig{
			DiskDuration:    5,
			TapeDuration:    8,
			PrinterDuration: 14,
		},
		Workload: WorkloadConfig{
			Seed:               42,
			ArrivalProbability: 0.2,
			ServiceTimeMin:     2,
			ServiceTimeMax:     20,
			MaxIORequests:      MaxIORequests,
		},
		Registry: RegistryConfig{Capacity: 64},
	}
}

// Validate returns an error describing the first invalid field, or nil.
func (c Config) Validate() error {
	if c.Queue.Capacity <= 0 {
		return fmt.Errorf("queue.capacity must be > 0, got %d", c.Queue.Capacity)
	}
	if c.Scheduler.Quantum <= 0 {
		return fmt.Errorf("scheduler.quantum must be > 0, got %d", c.Scheduler.Quantum)
	}
	for _, kind := range DeviceKinds {
		if d := c.Devices.Duration(kind); d <= 0 {
			return fmt.Errorf("devices.%s must be > 0, got %d", kind, d)
		}
	}
	w := c.Workload
	if w.ArrivalProbability < 0 || w.ArrivalProbability > 1 {
		return fmt.Errorf("workload.arrival_probability must be in [0, 1], got %g", w.ArrivalProbability)
	}
	if w.ServiceTimeMin <= 0 {
		return fmt.Errorf("workload.service_time_min must be > 0, got %d", w.ServiceTimeMin)
	}
	if w.ServiceTimeMax < w.ServiceTimeMin {
		return fmt.Errorf("workload.service_time_max (%d) must be >= service_time_min (%d)", w.ServiceTimeMax, w.ServiceTimeMin)
	}
	if w.MaxIORequests < 0 || w.MaxIORequests > MaxIORequests {
		return fmt.Errorf("workload.max_io_requests must be in [0, %d], got %d", MaxIORequests, w.MaxIORequests)
	}
	if c.Registry.Capacity <= 0 {
		return fmt.Errorf("registry.capacity must be > 0, got %d", c.Registry.Capacity)
	}
	return nil
}
