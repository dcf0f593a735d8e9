package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rodrigo1808/process-scheduling-simulator/sim"
	"github.com/rodrigo1808/process-scheduling-simulator/sim/workload"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Work with scripted scenario files",
}

// --- procsim scenario export ---

var exportPresetName string

var scenarioExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a built-in scenario preset as YAML to stdout",
	Run: func(cmd *cobra.Command, args []string) {
		spec, err := workload.Preset(exportPresetName)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := writeScenario(os.Stdout, spec); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// --- procsim scenario validate ---

var scenarioValidateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check scenario files against the default device table",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		failed := false
		for _, path := range args {
			if err := validateScenarioFile(path, sim.DefaultConfig().Devices); err != nil {
				logrus.Errorf("%s: %v", path, err)
				failed = true
				continue
			}
			fmt.Printf("%s: ok\n", path)
		}
		if failed {
			os.Exit(1)
		}
	},
}

// writeScenario marshals a ScenarioSpec to YAML.
func writeScenario(w io.Writer, spec *workload.ScenarioSpec) error {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return fmt.Errorf("YAML marshal failed: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func validateScenarioFile(path string, devices sim.DeviceConfig) error {
	spec, err := workload.LoadScenario(path)
	if err != nil {
		return err
	}
	_, _, err = spec.Build(devices)
	return err
}

func init() {
	scenarioExportCmd.Flags().StringVar(&exportPresetName, "preset", "", "Preset name (cpu-bound, disk-round-trip, burst, mixed-io)")
	_ = scenarioExportCmd.MarkFlagRequired("preset")

	scenarioCmd.AddCommand(scenarioExportCmd)
	scenarioCmd.AddCommand(scenarioValidateCmd)
	rootCmd.AddCommand(scenarioCmd)
}
