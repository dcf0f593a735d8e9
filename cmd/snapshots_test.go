package cmd

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigo1808/process-scheduling-simulator/sim"
	"github.com/rodrigo1808/process-scheduling-simulator/sim/workload"
)

func TestSnapshotWriter_OneLinePerTick(t *testing.T) {
	// GIVEN a simulator observed by a snapshot writer
	cfg := sim.DefaultConfig()
	src, err := workload.ScenarioCPUBound().Source(cfg.Devices)
	require.NoError(t, err)
	s, err := sim.NewSimulator(cfg, nil, src)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "snaps.jsonl")
	sw, err := newSnapshotWriter(path)
	require.NoError(t, err)
	s.Observer = sw.Observe

	// WHEN six ticks run
	s.RunFor(6)
	require.NoError(t, sw.Close())

	// THEN the file holds six decodable snapshots in tick order
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	var ticks []int64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var snap sim.Snapshot
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &snap))
		ticks = append(ticks, snap.Tick)
		if snap.Tick == 5 {
			assert.Nil(t, snap.CPU.Running)
			assert.Equal(t, []int{1}, snap.Low)
		}
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6}, ticks)
}

func TestNewSnapshotWriter_BadPath(t *testing.T) {
	_, err := newSnapshotWriter(filepath.Join(t.TempDir(), "missing", "snaps.jsonl"))
	assert.Error(t, err)
}
