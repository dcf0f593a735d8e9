package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/rodrigo1808/process-scheduling-simulator/sim"
)

// snapshotWriter streams per-tick snapshots as JSON lines.
// After the first write error it stops writing and reports the error from Close.
type snapshotWriter struct {
	f   *os.File
	w   *bufio.Writer
	enc *json.Encoder
	err error
}

func newSnapshotWriter(path string) (*snapshotWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating snapshots file: %w", err)
	}
	w := bufio.NewWriter(f)
	return &snapshotWriter{f: f, w: w, enc: json.NewEncoder(w)}, nil
}

// Observe is a sim.Observer.
func (sw *snapshotWriter) Observe(snap sim.Snapshot) {
	if sw.err != nil {
		return
	}
	if err := sw.enc.Encode(snap); err != nil {
		sw.err = err
		logrus.Errorf("[tick %07d] snapshot write failed, disabling snapshots: %v", snap.Tick, err)
	}
}

// Close flushes buffered snapshots and closes the file.
func (sw *snapshotWriter) Close() error {
	flushErr := sw.w.Flush()
	closeErr := sw.f.Close()
	switch {
	case sw.err != nil:
		return sw.err
	case flushErr != nil:
		return flushErr
	default:
		return closeErr
	}
}
