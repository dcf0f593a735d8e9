package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_EmptyRun_ZeroRatios(t *testing.T) {
	m := NewMetrics()
	assert.Equal(t, 0.0, m.AverageTurnaround())
	assert.Equal(t, 0.0, m.AverageWaiting())
	assert.Equal(t, 0.0, m.CPUUtilization())
	assert.Equal(t, 0.0, m.DeviceUtilization(DeviceDisk))
	assert.Equal(t, 0, m.TotalDropped())
}

func TestMetrics_Averages(t *testing.T) {
	m := NewMetrics()
	m.Ticks = 20
	m.CPUBusy = 15
	m.Terminated = 2
	m.Turnaround = 30
	m.ServiceSum = 18
	m.DeviceBusy[DeviceTape] = 5
	m.Dropped["high"] = 2
	m.Dropped["disk"] = 1

	assert.Equal(t, 15.0, m.AverageTurnaround())
	assert.Equal(t, 6.0, m.AverageWaiting())
	assert.Equal(t, 0.75, m.CPUUtilization())
	assert.Equal(t, 0.25, m.DeviceUtilization(DeviceTape))
	assert.Equal(t, 3, m.TotalDropped())
}

func TestMetrics_DiskRoundTrip_WaitingIncludesIO(t *testing.T) {
	// GIVEN a process with one 5-tick disk request
	q := proc(1, 10, ioReq(DeviceDisk, 3, 5))
	s := newTestSimulator(t, tickArrivals{1: {q}}, nil)

	// WHEN it runs to completion
	runUntilTerminated(t, s, q, 30)

	// THEN turnaround is 14 ticks, 10 on the CPU and 4 off it
	assert.Equal(t, 14.0, s.Metrics.AverageTurnaround())
	assert.Equal(t, 4.0, s.Metrics.AverageWaiting())
	assert.Equal(t, int64(10), s.Metrics.CPUBusy)
}
