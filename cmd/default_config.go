package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rodrigo1808/process-scheduling-simulator/sim"
)

// defaultsFilePath is the configuration file read when --config is not given.
const defaultsFilePath = "defaults.yaml"

// parseSimConfig decodes a YAML document over DefaultConfig, so omitted keys keep
// their defaults. Uses strict field checking: typos must cause errors.
func parseSimConfig(data []byte) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return sim.Config{}, fmt.Errorf("parsing config YAML: %w", err)
	}
	return cfg, nil
}

// loadSimConfig reads the configuration file at path. A missing file is only an
// error when the user asked for it explicitly; otherwise DefaultConfig is used.
func loadSimConfig(path string, explicit bool) (sim.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return sim.DefaultConfig(), nil
		}
		return sim.Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return parseSimConfig(data)
}
