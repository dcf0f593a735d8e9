package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/rodrigo1808/process-scheduling-simulator/sim"
	"github.com/rodrigo1808/process-scheduling-simulator/sim/trace"
)

func percent(f float64) string {
	return fmt.Sprintf("%.1f%%", 100*f)
}

// printReport renders the end-of-run metrics, per-device activity and, when
// tracing was enabled, a transition summary.
func printReport(w io.Writer, s *sim.Simulator) {
	m := s.Metrics

	_, _ = fmt.Fprintln(w, "Simulation summary")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk([][]string{
		{"Ticks", strconv.FormatInt(m.Ticks, 10)},
		{"Arrivals", strconv.Itoa(m.Arrivals)},
		{"Rejected", strconv.Itoa(m.Rejected)},
		{"Terminated", strconv.Itoa(m.Terminated)},
		{"Still resident", strconv.Itoa(s.Registry.Len())},
		{"Preemptions", strconv.Itoa(m.Preemptions)},
		{"Dropped (high)", strconv.Itoa(m.Dropped[string(sim.PriorityHigh)])},
		{"Dropped (low)", strconv.Itoa(m.Dropped[string(sim.PriorityLow)])},
		{"CPU utilization", percent(m.CPUUtilization())},
		{"Avg turnaround", fmt.Sprintf("%.2f", m.AverageTurnaround())},
		{"Avg waiting", fmt.Sprintf("%.2f", m.AverageWaiting())},
	})
	table.Render()

	_, _ = fmt.Fprintln(w, "Devices")
	rows := make([][]string, 0, len(sim.DeviceKinds))
	for _, kind := range sim.DeviceKinds {
		rows = append(rows, []string{
			string(kind),
			strconv.FormatInt(s.Config.Devices.Duration(kind), 10),
			strconv.Itoa(m.Dispatches[kind]),
			strconv.Itoa(m.IOCompletions[kind]),
			strconv.Itoa(m.Dropped[string(kind)]),
			percent(m.DeviceUtilization(kind)),
		})
	}
	devices := tablewriter.NewWriter(w)
	devices.SetHeader([]string{"Device", "Duration", "Dispatched", "Completed", "Dropped", "Utilization"})
	devices.AppendBulk(rows)
	devices.SetFooter([]string{"", "", "", "", "Total dropped", strconv.Itoa(m.TotalDropped())})
	devices.Render()

	if !s.Trace.Enabled() {
		return
	}
	summary := trace.Summarize(s.Trace)
	_, _ = fmt.Fprintln(w, "Transitions")
	transitions := tablewriter.NewWriter(w)
	transitions.SetHeader([]string{"Kind", "Count"})
	for _, kind := range trace.Kinds {
		transitions.Append([]string{string(kind), strconv.Itoa(summary.ByKind[kind])})
	}
	transitions.SetFooter([]string{fmt.Sprintf("%d processes", summary.UniquePIDs), strconv.Itoa(summary.TotalTransitions)})
	transitions.Render()
}
